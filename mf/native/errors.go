// SPDX-License-Identifier: EPL-2.0

package native

import "errors"

var (
	ErrForeignMediaSource = errors.New("native: media source was not created by this framework")
	ErrNoContentType      = errors.New("native: byte stream has no content type")
	ErrNilStream          = errors.New("native: nil stream")
	ErrNegativePosition   = errors.New("native: negative position")
)
