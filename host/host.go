// SPDX-License-Identifier: EPL-2.0

package host

import "fmt"

// Result is the status every codec callback hands back to the host engine.
type Result int

const (
	ResultOK Result = iota
	// ResultErrFormat means no decoder claims the file.
	ResultErrFormat
	// ResultErrFileBad means the file was claimed but could not be opened.
	ResultErrFileBad
	// ResultErrPlugin means a call on an open sound failed.
	ResultErrPlugin
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "OK"
	case ResultErrFormat:
		return "ERR_FORMAT"
	case ResultErrFileBad:
		return "ERR_FILE_BAD"
	case ResultErrPlugin:
		return "ERR_PLUGIN"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// TimeUnit selects how positions and lengths are expressed.
type TimeUnit uint32

const (
	// TimeUnitMS is milliseconds.
	TimeUnitMS TimeUnit = 0x00000001
	// TimeUnitPCM counts PCM frames (one value per channel).
	TimeUnitPCM TimeUnit = 0x00000002
	// TimeUnitPCMBytes counts decoded PCM bytes.
	TimeUnitPCMBytes TimeUnit = 0x00000004
	// TimeUnitRawBytes counts bytes of the encoded file.
	TimeUnitRawBytes TimeUnit = 0x00000008
)

func (u TimeUnit) String() string {
	switch u {
	case TimeUnitMS:
		return "ms"
	case TimeUnitPCM:
		return "pcm"
	case TimeUnitPCMBytes:
		return "pcm bytes"
	case TimeUnitRawBytes:
		return "raw bytes"
	}
	return fmt.Sprintf("TimeUnit(%#x)", uint32(u))
}

// SoundFormat is the sample encoding reported in a WaveFormat.
type SoundFormat int

const (
	SoundFormatNone SoundFormat = iota
	SoundFormatPCM8
	SoundFormatPCM16
	SoundFormatPCM24
	SoundFormatPCM32
)

func (f SoundFormat) String() string {
	switch f {
	case SoundFormatPCM8:
		return "PCM8"
	case SoundFormatPCM16:
		return "PCM16"
	case SoundFormatPCM24:
		return "PCM24"
	case SoundFormatPCM32:
		return "PCM32"
	}
	return "NONE"
}

// ChannelMask holds the host's speaker position flags.
type ChannelMask uint32

const (
	ChannelFrontLeft     ChannelMask = 0x00000001
	ChannelFrontRight    ChannelMask = 0x00000002
	ChannelFrontCenter   ChannelMask = 0x00000004
	ChannelLowFrequency  ChannelMask = 0x00000008
	ChannelSurroundLeft  ChannelMask = 0x00000010
	ChannelSurroundRight ChannelMask = 0x00000020
	ChannelBackLeft      ChannelMask = 0x00000040
	ChannelBackRight     ChannelMask = 0x00000080
	ChannelBackCenter    ChannelMask = 0x00000100
)

// WaveFormat describes a decoded sound to the host.
type WaveFormat struct {
	Name         string
	Format       SoundFormat
	Channels     int
	Frequency    int
	LengthBytes  uint32
	LengthPCM    uint32
	PCMBlockSize uint32
	ChannelMask  ChannelMask
}
