// SPDX-License-Identifier: EPL-2.0

// Package mf describes the platform media framework a decode session runs on:
// byte streams, a source resolver, media sources, source readers, samples
// and memory buffers.
//
// Only interfaces and small value types live here. mf/native provides a
// pure Go implementation, and tests use the scripted fake in internal/mftest.
package mf
