// SPDX-License-Identifier: EPL-2.0

package mf

import "errors"

var (
	ErrAttributeNotFound = errors.New("mf: attribute not found")
	ErrAttributeType     = errors.New("mf: attribute has a different type")

	ErrUnsupportedByteStream = errors.New("mf: no handler for byte stream")
	ErrNotMediaSource        = errors.New("mf: resolved object is not a media source")
	ErrInvalidMediaType      = errors.New("mf: invalid media type")
	ErrInvalidStreamIndex    = errors.New("mf: invalid stream index")
	ErrNoStreamSelected      = errors.New("mf: no stream selected")
	ErrShutdown              = errors.New("mf: object has been shut down")
	ErrReleased              = errors.New("mf: object has been released")

	ErrBufferLocked   = errors.New("mf: buffer is locked")
	ErrBufferUnlocked = errors.New("mf: buffer is not locked")
	ErrBufferTooSmall = errors.New("mf: buffer too small")
	ErrBufferLength   = errors.New("mf: length exceeds buffer capacity")
)
