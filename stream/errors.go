// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// ErrInvalidFunction is returned for unsupported operations, seeks out of
	// range and offsets wider than 32 bits.
	ErrInvalidFunction = errors.New("stream: invalid function")

	// ErrInvalidStream wraps any file read failure other than end of file.
	ErrInvalidStream = errors.New("stream: invalid stream")

	// ErrInvalidPointer is returned when copying into another ReadStream.
	ErrInvalidPointer = errors.New("stream: invalid destination")

	// ErrMediumFull is returned for sizes the 32-bit file interface cannot
	// express and for copies whose read fails.
	ErrMediumFull = errors.New("stream: medium full")

	// ErrReleased is returned by I/O on a stream whose last reference is gone.
	ErrReleased = errors.New("stream: released")
)
