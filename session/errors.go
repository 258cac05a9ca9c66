// SPDX-License-Identifier: EPL-2.0

package session

import "errors"

var (
	// ErrUnsupportedFormat means no signature matched the file header.
	ErrUnsupportedFormat = errors.New("session: unsupported format")
	// ErrBadFile means a pipeline stage after sniffing failed.
	ErrBadFile = errors.New("session: bad file")
	// ErrPlugin means an operation on an open session failed.
	ErrPlugin = errors.New("session: plugin error")
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("session: closed")
)
