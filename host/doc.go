// SPDX-License-Identifier: EPL-2.0

// Package host defines the contract between the bridge and the audio engine
// that loads it as a codec plugin.
//
// The engine knows nothing about containers. It opens a file, hands the codec
// a FileHandle with pull-style Read and absolute Seek, and afterwards drives
// the codec exclusively through the callbacks of a Description:
//
//	state := &host.CodecState{File: file, FileSize: file.Size()}
//	if res := desc.Open(state); res != host.ResultOK {
//	    return res
//	}
//	defer desc.Close(state)
//
//	wf, _ := desc.GetWaveFormat(state, 0)
//	buf := make([]byte, 1024*wf.Channels*2)
//	n, res := desc.Read(state, buf, 1024)
//
// Every callback answers with a Result. Reads that return fewer samples than
// requested with ResultOK signal the end of the stream.
//
// MemoryFile and File are ready-made FileHandles for tests and tools.
package host
