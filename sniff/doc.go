// SPDX-License-Identifier: EPL-2.0

// Package sniff classifies a file by the signature in its first 32 bytes.
//
// The content type it returns is attached to the byte stream so the
// platform framework's resolver picks a parser without probing:
//
//	ct, err := sniff.Sniff(file, sniff.DefaultSignatures)
//	if errors.Is(err, sniff.ErrUnrecognized) {
//	    // not ours
//	}
//
// Sniff always leaves the file positioned at offset zero.
package sniff
