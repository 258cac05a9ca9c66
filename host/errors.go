// SPDX-License-Identifier: EPL-2.0

package host

import "errors"

var (
	ErrSeekOutOfRange = errors.New("seek offset past end of file")
	ErrFileTooLarge   = errors.New("file larger than 4 GiB")
)
