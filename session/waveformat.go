// SPDX-License-Identifier: EPL-2.0

package session

import (
	"github.com/ik5/mfbridge/host"
	"github.com/ik5/mfbridge/mf"
)

var soundFormats = map[uint32]host.SoundFormat{
	8:  host.SoundFormatPCM8,
	16: host.SoundFormatPCM16,
	24: host.SoundFormatPCM24,
	32: host.SoundFormatPCM32,
}

// speakerMap pairs platform speaker bits with host channel flags. Side
// speakers become the host's surround pair.
var speakerMap = []struct {
	speaker uint32
	channel host.ChannelMask
}{
	{mf.SpeakerFrontLeft, host.ChannelFrontLeft},
	{mf.SpeakerFrontRight, host.ChannelFrontRight},
	{mf.SpeakerFrontCenter, host.ChannelFrontCenter},
	{mf.SpeakerLowFrequency, host.ChannelLowFrequency},
	{mf.SpeakerBackLeft, host.ChannelBackLeft},
	{mf.SpeakerBackRight, host.ChannelBackRight},
	{mf.SpeakerBackCenter, host.ChannelBackCenter},
	{mf.SpeakerSideLeft, host.ChannelSurroundLeft},
	{mf.SpeakerSideRight, host.ChannelSurroundRight},
}

// SoundFormatFor maps a bit depth to the host's PCM format, SoundFormatNone
// when there is none.
func SoundFormatFor(bits uint32) host.SoundFormat {
	if f, ok := soundFormats[bits]; ok {
		return f
	}
	return host.SoundFormatNone
}

// ChannelMaskFor translates platform speaker bits. Bits without a host
// equivalent are dropped.
func ChannelMaskFor(speakers uint32) host.ChannelMask {
	var mask host.ChannelMask
	for _, m := range speakerMap {
		if speakers&m.speaker != 0 {
			mask |= m.channel
		}
	}
	return mask
}

// WaveFormat describes the negotiated output. The lengths are best effort:
// a length the source cannot report is left at zero.
func (s *Session) WaveFormat() (host.WaveFormat, error) {
	f, err := s.format()
	if err != nil {
		return host.WaveFormat{}, err
	}

	pcm, err := s.Length(host.TimeUnitPCM)
	if err != nil {
		s.logf("waveformat", "pcm length: %v", err)
	}
	raw, err := s.Length(host.TimeUnitRawBytes)
	if err != nil {
		s.logf("waveformat", "raw length: %v", err)
	}

	return host.WaveFormat{
		Format:       SoundFormatFor(f.bitsPerSample),
		Channels:     int(f.channels),
		Frequency:    int(f.sampleRate),
		LengthBytes:  raw,
		LengthPCM:    pcm,
		PCMBlockSize: f.samplesPerBlock,
		ChannelMask:  ChannelMaskFor(f.channelMask),
	}, nil
}

// AudioFormat is the negotiated output as the framework reports it.
type AudioFormat struct {
	Channels          int
	BitsPerSample     int
	SampleRate        int
	AvgBytesPerSecond int
	BlockAlignment    int
	ChannelMask       uint32
}

// AudioFormat queries the reader's current output type.
func (s *Session) AudioFormat() (AudioFormat, error) {
	f, err := s.format()
	if err != nil {
		return AudioFormat{}, err
	}
	return AudioFormat{
		Channels:          int(f.channels),
		BitsPerSample:     int(f.bitsPerSample),
		SampleRate:        int(f.sampleRate),
		AvgBytesPerSecond: int(f.avgBytesPerSec),
		BlockAlignment:    int(f.blockAlignment),
		ChannelMask:       f.channelMask,
	}, nil
}
