// SPDX-License-Identifier: EPL-2.0

// Command mfprobe opens an audio file through the mfbridge codec table, the
// way a host engine would, and reports what the codec says about it.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ik5/mfbridge"
	"github.com/ik5/mfbridge/host"
)

// version is set via ldflags at build time.
var version = "dev"

var CLI struct {
	Input    string `arg:"" name:"input" help:"Audio file to probe" type:"existingfile"`
	SeekMS   uint32 `name:"seek-ms" help:"Seek to this position (milliseconds) before reading" default:"0"`
	ReadSize uint32 `name:"read-size" help:"Samples requested per read" default:"4096"`
	Rate     int    `help:"Ask for output at this sample rate (0 keeps the decoded rate)" default:"0"`
	Mono     bool   `help:"Ask for mono output"`
	Verbose  bool   `short:"v" help:"Log codec diagnostics to stderr"`
	Version  kong.VersionFlag
}

type options struct {
	seekMS   uint32
	readSize uint32
	rate     int
	mono     bool
	logger   *log.Logger
}

func main() {
	kong.Parse(&CLI,
		kong.Name("mfprobe"),
		kong.Description("Decode an audio file through the mfbridge codec and report its format."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	opts := options{
		seekMS:   CLI.SeekMS,
		readSize: CLI.ReadSize,
		rate:     CLI.Rate,
		mono:     CLI.Mono,
		logger:   log.New(io.Discard, "", 0),
	}
	if CLI.Verbose {
		opts.logger = log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	}

	if err := probe(os.Stdout, CLI.Input, opts); err != nil {
		printError(err)
		os.Exit(1)
	}
}

func probe(w io.Writer, path string, opts options) error {
	if opts.readSize == 0 {
		return fmt.Errorf("read size must be positive")
	}

	f, err := host.OpenFile(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	desc := mfbridge.New(mfbridge.Config{
		Logger:           opts.logger,
		OutputSampleRate: opts.rate,
		DownmixMono:      opts.mono,
	}).Description()

	state := &host.CodecState{File: f, FileSize: f.Size()}
	if r := desc.Open(state); r != host.ResultOK {
		return fmt.Errorf("open: %v", r)
	}
	defer desc.Close(state)

	wf, r := desc.GetWaveFormat(state, 0)
	if r != host.ResultOK {
		return fmt.Errorf("wave format: %v", r)
	}

	rep := report{
		path:    path,
		codec:   desc.Name,
		format:  wf,
		lengths: make(map[host.TimeUnit]string),
	}
	for _, u := range []host.TimeUnit{host.TimeUnitMS, host.TimeUnitPCM, host.TimeUnitPCMBytes, host.TimeUnitRawBytes} {
		if n, r := desc.GetLength(state, u); r == host.ResultOK {
			rep.lengths[u] = fmt.Sprint(n)
		} else {
			rep.lengths[u] = r.String()
		}
	}

	if opts.seekMS > 0 {
		if r := desc.SetPosition(state, 0, opts.seekMS, host.TimeUnitMS); r != host.ResultOK {
			return fmt.Errorf("seek to %dms: %v", opts.seekMS, r)
		}
		rep.seekMS = opts.seekMS
	}

	frameSize := wf.Channels * bytesPerSample(wf.Format)
	if frameSize == 0 {
		return fmt.Errorf("unsupported sample format %v", wf.Format)
	}

	buf := make([]byte, int(opts.readSize)*frameSize)
	start := time.Now()
	for {
		n, r := desc.Read(state, buf, opts.readSize)
		if r != host.ResultOK {
			return fmt.Errorf("read after %d samples: %v", rep.samples, r)
		}
		rep.samples += uint64(n)
		rep.reads++
		if n < opts.readSize {
			break
		}
	}
	rep.elapsed = time.Since(start)

	if pos, r := desc.GetPosition(state, host.TimeUnitMS); r == host.ResultOK {
		rep.finalMS = pos
	}

	rep.print(w)
	return nil
}

func bytesPerSample(f host.SoundFormat) int {
	switch f {
	case host.SoundFormatPCM8:
		return 1
	case host.SoundFormatPCM16:
		return 2
	case host.SoundFormatPCM24:
		return 3
	case host.SoundFormatPCM32:
		return 4
	}
	return 0
}
