// SPDX-License-Identifier: EPL-2.0

package mf

// Major types.
const (
	MajorTypeAudio = "audio"
	MajorTypeVideo = "video"
)

// Audio subtypes.
const (
	SubtypePCM   = "pcm"
	SubtypeFloat = "float"
	SubtypeAAC   = "aac"
	SubtypeWMA   = "wma"
)

// Speaker position bits used in KeyChannelMask.
const (
	SpeakerFrontLeft          uint32 = 0x1
	SpeakerFrontRight         uint32 = 0x2
	SpeakerFrontCenter        uint32 = 0x4
	SpeakerLowFrequency       uint32 = 0x8
	SpeakerBackLeft           uint32 = 0x10
	SpeakerBackRight          uint32 = 0x20
	SpeakerFrontLeftOfCenter  uint32 = 0x40
	SpeakerFrontRightOfCenter uint32 = 0x80
	SpeakerBackCenter         uint32 = 0x100
	SpeakerSideLeft           uint32 = 0x200
	SpeakerSideRight          uint32 = 0x400
	SpeakerTopCenter          uint32 = 0x800
)

// MediaType describes a stream format. A partial media type sets only some
// keys and lets the source reader fill in the rest.
type MediaType struct {
	*Attributes
}

func NewMediaType() *MediaType {
	return &MediaType{Attributes: NewAttributes()}
}

// NewPartialAudioType is the hint used to ask a source reader for PCM audio.
func NewPartialAudioType(subtype string) *MediaType {
	mt := NewMediaType()
	mt.SetString(KeyMajorType, MajorTypeAudio)
	mt.SetString(KeySubtype, subtype)
	return mt
}

// Clone returns an independent copy.
func (m *MediaType) Clone() *MediaType {
	c := NewMediaType()
	m.CopyAllItems(c.Attributes)
	return c
}

// DefaultChannelMask is the conventional speaker layout for a channel count.
func DefaultChannelMask(channels int) uint32 {
	switch channels {
	case 1:
		return SpeakerFrontCenter
	case 2:
		return SpeakerFrontLeft | SpeakerFrontRight
	case 3:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter
	case 4:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerBackLeft | SpeakerBackRight
	case 5:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter | SpeakerBackLeft | SpeakerBackRight
	case 6:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter | SpeakerLowFrequency |
			SpeakerBackLeft | SpeakerBackRight
	case 8:
		return SpeakerFrontLeft | SpeakerFrontRight | SpeakerFrontCenter | SpeakerLowFrequency |
			SpeakerBackLeft | SpeakerBackRight | SpeakerSideLeft | SpeakerSideRight
	}
	return 0
}
