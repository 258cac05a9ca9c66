// SPDX-License-Identifier: EPL-2.0

package sniff

import (
	"bytes"
	"fmt"

	"github.com/ik5/mfbridge/host"
)

// HeaderSize is the number of leading bytes inspected.
const HeaderSize = 32

// Content types reported by the sniffer.
const (
	ContentTypeMP4    = "audio/mp4"
	ContentTypeWMA    = "audio/x-ms-wma"
	ContentTypeWAV    = "audio/wav"
	ContentTypeAIFF   = "audio/aiff"
	ContentTypeMPEG   = "audio/mpeg"
	ContentTypeOgg    = "audio/ogg"
	ContentTypeFLAC   = "audio/flac"
	ContentTypeAbsent = ""
)

// Signature is a fixed byte pattern expected at Offset in the header. When
// Mask is set only the bits it selects are compared.
type Signature struct {
	ContentType string
	Offset      int
	Magic       []byte
	Mask        []byte
}

func (s Signature) match(header []byte) bool {
	end := s.Offset + len(s.Magic)
	if s.Offset < 0 || end > len(header) {
		return false
	}
	window := header[s.Offset:end]
	if s.Mask == nil {
		return bytes.Equal(window, s.Magic)
	}
	for i, b := range s.Magic {
		if window[i]&s.Mask[i] != b&s.Mask[i] {
			return false
		}
	}
	return true
}

var (
	mp4Magic = []byte{0x00, 0x00, 0x00, 0x20, 0x66, 0x74, 0x79, 0x70, 0x4d, 0x34, 0x41, 0x20}
	wmaMagic = []byte{0x30, 0x26, 0xb2, 0x75, 0x8e, 0x66, 0xcf, 0x11, 0xa6, 0xd9, 0x00, 0xaa, 0x00, 0x62, 0xce, 0x6c}
)

// ContainerSignatures are the containers handed to the platform framework:
// MPEG-4 audio and ASF/WMA. The MPEG-4 box is also accepted 4 bytes in,
// and its "ftypM4A " brand is accepted behind any box size.
var ContainerSignatures = []Signature{
	{ContentType: ContentTypeMP4, Offset: 0, Magic: mp4Magic},
	{ContentType: ContentTypeMP4, Offset: 4, Magic: mp4Magic},
	{ContentType: ContentTypeMP4, Offset: 4, Magic: mp4Magic[4:]},
	{ContentType: ContentTypeWMA, Offset: 0, Magic: wmaMagic},
}

// NativeSignatures are formats the Go-native framework decodes itself.
var NativeSignatures = []Signature{
	{
		ContentType: ContentTypeWAV,
		Magic:       []byte("RIFF\x00\x00\x00\x00WAVE"),
		Mask:        []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff},
	},
	{
		ContentType: ContentTypeAIFF,
		Magic:       []byte("FORM\x00\x00\x00\x00AIFF"),
		Mask:        []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff},
	},
	{ContentType: ContentTypeOgg, Magic: []byte("OggS")},
	{ContentType: ContentTypeFLAC, Magic: []byte("fLaC")},
	{ContentType: ContentTypeMPEG, Magic: []byte("ID3")},
	// MPEG-1/2 layer III frame sync.
	{ContentType: ContentTypeMPEG, Magic: []byte{0xff, 0xe2}, Mask: []byte{0xff, 0xe6}},
}

// DefaultSignatures is what the bridge checks unless configured otherwise.
var DefaultSignatures = append(append([]Signature{}, ContainerSignatures...), NativeSignatures...)

// Match returns the content type of the first signature found in header.
func Match(header []byte, sigs []Signature) (string, bool) {
	for _, sig := range sigs {
		if sig.match(header) {
			return sig.ContentType, true
		}
	}
	return ContentTypeAbsent, false
}

// Sniff reads the first HeaderSize bytes of f and classifies them. f is
// rewound to offset zero before returning, whatever the outcome. A file too
// short to hold a full header is reported as unrecognized.
func Sniff(f host.FileHandle, sigs []Signature) (string, error) {
	header := make([]byte, HeaderSize)
	n, err := f.Read(header)

	contentType, ok := ContentTypeAbsent, false
	if err == nil && n == HeaderSize {
		contentType, ok = Match(header, sigs)
	}

	if serr := f.Seek(0); serr != nil {
		return ContentTypeAbsent, fmt.Errorf("%w: rewind: %w", ErrRewind, serr)
	}

	if err != nil || n < HeaderSize {
		return ContentTypeAbsent, fmt.Errorf("%w: header read returned %d bytes", ErrUnrecognized, n)
	}
	if !ok {
		return ContentTypeAbsent, fmt.Errorf("%w: % x", ErrUnrecognized, header)
	}
	return contentType, nil
}
