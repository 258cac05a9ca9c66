// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize      = errors.New("dst size must be multiple of channels")
	ErrInvalidFormat       = errors.New("invalid PCM format")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrNotSeekable         = errors.New("track is not seekable")
	ErrNegativeFrame       = errors.New("negative frame position")
)
