// SPDX-License-Identifier: EPL-2.0

// Package native is a pure Go implementation of the mf framework. Its
// resolver picks a decoder from an audio.Registry by the byte stream's
// content type hint; its source reader serves one audio stream and can
// convert to 16-bit PCM at another rate or in mono when the requested
// media type asks for it.
//
//	fw := native.New()
//	bs, _ := fw.CreateByteStream(s)
//	bs.Attributes().SetString(mf.KeyContentType, sniff.ContentTypeWAV)
package native
