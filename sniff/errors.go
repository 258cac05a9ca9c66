// SPDX-License-Identifier: EPL-2.0

package sniff

import "errors"

var (
	// ErrUnrecognized means no signature matched or the header was short.
	ErrUnrecognized = errors.New("sniff: unrecognized container signature")
	// ErrRewind means the file could not be put back at offset zero.
	ErrRewind = errors.New("sniff: rewind failed")
)
