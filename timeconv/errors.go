// SPDX-License-Identifier: EPL-2.0

package timeconv

import "errors"

var (
	ErrUnsupportedUnit = errors.New("timeconv: unsupported time unit")
	ErrInvalidFormat   = errors.New("timeconv: format has no frame size or byte rate")
)
