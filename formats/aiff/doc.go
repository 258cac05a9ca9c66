// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files into audio.Track values using
// github.com/go-audio/aiff. Big-endian samples come out as little-endian
// PCM; 16, 24 and 32-bit files are supported.
package aiff
