// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ik5/mfbridge/host"
)

var (
	accentColor = lipgloss.Color("#FFA500")
	errorColor  = lipgloss.Color("#A40000")
	mutedColor  = lipgloss.Color("#888888")
	textColor   = lipgloss.Color("#FFFFFF")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(textColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)

type report struct {
	path    string
	codec   string
	format  host.WaveFormat
	lengths map[host.TimeUnit]string

	seekMS  uint32
	samples uint64
	reads   int
	finalMS uint32
	elapsed time.Duration
}

func (r report) print(w io.Writer) {
	fmt.Fprintln(w, titleStyle.Render(r.path))
	row(w, "codec", r.codec)

	fmt.Fprintln(w, headerStyle.Render("Format"))
	row(w, "sample format", r.format.Format.String())
	row(w, "channels", fmt.Sprint(r.format.Channels))
	row(w, "frequency", fmt.Sprintf("%d Hz", r.format.Frequency))
	row(w, "channel mask", fmt.Sprintf("%#x", uint32(r.format.ChannelMask)))
	row(w, "block size", fmt.Sprint(r.format.PCMBlockSize))

	fmt.Fprintln(w, headerStyle.Render("Length"))
	for _, u := range []host.TimeUnit{host.TimeUnitMS, host.TimeUnitPCM, host.TimeUnitPCMBytes, host.TimeUnitRawBytes} {
		row(w, u.String(), r.lengths[u])
	}

	fmt.Fprintln(w, headerStyle.Render("Read"))
	if r.seekMS > 0 {
		row(w, "seek", fmt.Sprintf("%d ms", r.seekMS))
	}
	row(w, "samples", fmt.Sprint(r.samples))
	row(w, "reads", fmt.Sprint(r.reads))
	row(w, "final", fmt.Sprintf("%d ms", r.finalMS))
	row(w, "elapsed", r.elapsed.Round(time.Millisecond).String())
}

func row(w io.Writer, key, value string) {
	fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(key), valueStyle.Render(value)))
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("Error:"), err)
}
