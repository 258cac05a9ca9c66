// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/mfbridge/formats/aiff"
)

// Example_errorHandling shows the error for input that is not AIFF.
func Example_errorHandling() {
	_, err := aiff.Decoder{}.Decode(bytes.NewReader([]byte("RIFF....WAVEfmt ")))
	if errors.Is(err, aiff.ErrNotAiffFile) {
		fmt.Println("not an AIFF file")
	}
	// Output:
	// not an AIFF file
}
