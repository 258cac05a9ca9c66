// SPDX-License-Identifier: EPL-2.0

// Package mfbridge is a codec for host audio engines that only know how to
// pull bytes from a file handle and want PCM back. It hands the actual
// container parsing and decoding to a platform multimedia framework and
// bridges the two worlds:
//
//   - the host's file handle becomes a reference counted, read-only stream
//     the framework can seek in (package stream)
//   - the framework's byte stream, source resolver and source reader are
//     driven through a fixed open sequence (package session)
//   - the framework's 100ns ticks are converted to milliseconds, PCM frames
//     and PCM bytes (package timeconv)
//   - the framework's large, variably sized samples are buffered and
//     handed out in the small fixed reads the host asks for
//
// # Supported Formats
//
// File headers are sniffed before anything else. The container signatures
// (MPEG-4 audio and ASF/WMA) are always recognised; the Go-native framework
// in mf/native adds the formats it can decode itself:
//   - WAV (PCM 16/24/32-bit) via formats/wav
//   - AIFF (PCM 16/24/32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// MPEG-4 and WMA need a framework with a decoder registered for them.
//
// # Quick Start
//
// Register the codec's callback table with the host:
//
//	codec := mfbridge.New(mfbridge.Config{})
//	desc := codec.Description()
//
// The host then calls desc.Open with a CodecState carrying its file handle,
// and desc.Read, desc.SetPosition and so on for the lifetime of the sound.
//
// To decode a whole file without a host:
//
//	pcm, wf, err := mfbridge.DecodeFile("music.flac", mfbridge.Config{
//		OutputSampleRate: 16000,
//		DownmixMono:      true,
//	})
//
// # Errors
//
// The host only sees host.Result values. ResultFor maps them:
//   - no matching signature: ResultErrFormat
//   - any failure while building the pipeline: ResultErrFileBad
//   - any failure on an open sound: ResultErrPlugin
//
// Reaching the end of the stream is not an error: Read returns fewer
// samples than requested and ResultOK.
//
// # Diagnostics
//
// Details never travel in return values. They go to the *log.Logger in
// Config, prefixed with the operation and the session id.
package mfbridge
