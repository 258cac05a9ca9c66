// SPDX-License-Identifier: EPL-2.0

// Package stream adapts the host's pull-style file handle into a random
// access, read-only stream the platform framework can consume.
//
// ReadStream implements the whole Stream capability set:
//   - Read forwards to the file handle; hitting the end of the file is a soft
//     io.EOF, other failures wrap ErrInvalidStream
//   - Seek supports io.SeekStart, io.SeekCurrent and io.SeekEnd with 32-bit
//     offsets only, and never moves the cursor when it fails
//   - Write, Commit and Revert succeed without doing anything
//   - CopyTo copies into any writer except another ReadStream
//   - Clone, LockRegion and UnlockRegion always fail
//
// Ownership is shared with the framework through AddRef and Release. The
// stream becomes unusable once the last reference is dropped:
//
//	s := stream.NewReadStream(file, size)
//	bs := mf.NewByteStreamOnStream(s) // framework takes a reference
//	s.Release()                       // bridge drops its own
//	bs.Close()                        // count reaches zero
package stream
