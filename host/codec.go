// SPDX-License-Identifier: EPL-2.0

package host

// FileHandle is the host's view of the file being opened. It is owned by the
// host and only ever read from.
type FileHandle interface {
	// Read fills p and returns the number of bytes read. A read that stops
	// short because the file ended returns io.EOF alongside the count.
	Read(p []byte) (n int, err error)
	// Seek moves the read cursor to an absolute offset.
	Seek(offset uint32) error
}

// CodecState is handed to every callback of a Description for one file.
type CodecState struct {
	File     FileHandle
	FileSize uint32

	// PluginData is set by Open and returned untouched on later calls.
	PluginData any
}

// Description is the callback table a codec registers with the host.
type Description struct {
	Name      string
	Version   uint32
	TimeUnits TimeUnit

	Open          func(state *CodecState) Result
	Close         func(state *CodecState) Result
	Read          func(state *CodecState, buf []byte, samples uint32) (uint32, Result)
	GetLength     func(state *CodecState, unit TimeUnit) (uint32, Result)
	SetPosition   func(state *CodecState, subsound int, position uint32, unit TimeUnit) Result
	GetPosition   func(state *CodecState, unit TimeUnit) (uint32, Result)
	SoundCreated  func(state *CodecState, subsound int) Result
	GetWaveFormat func(state *CodecState, index int) (WaveFormat, Result)
}

// Supports reports whether unit is in the description's time unit set.
func (d *Description) Supports(unit TimeUnit) bool {
	return d.TimeUnits&unit == unit
}
