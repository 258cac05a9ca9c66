// SPDX-License-Identifier: EPL-2.0

// Package session drives one file through an mf.Framework: it sniffs the
// header, wraps the host file in a read-only stream, resolves a media
// source, negotiates PCM output and then serves fixed-size reads, seeks and
// length queries in the host's time units.
//
// A Session is not safe for concurrent use. The host serializes all calls
// for one file.
package session
