// SPDX-License-Identifier: EPL-2.0

// Package flac decodes FLAC streams into audio.Track values using
// github.com/mewkiz/flac. Each chunk is one FLAC frame. Seeking uses the
// stream's seek table and trims the landing frame to the exact sample.
package flac
