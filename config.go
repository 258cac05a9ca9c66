// SPDX-License-Identifier: EPL-2.0

package mfbridge

import (
	"io"
	"log"

	"github.com/ik5/mfbridge/mf"
	"github.com/ik5/mfbridge/mf/native"
	"github.com/ik5/mfbridge/session"
	"github.com/ik5/mfbridge/sniff"
)

const (
	// DefaultName is the codec name reported to the host.
	DefaultName = "mfbridge Media Foundation Codec"
	// DefaultVersion is the codec version reported to the host.
	DefaultVersion uint32 = 0x00010000
)

// Config configures a Codec. The zero value is usable: it decodes with the
// Go-native framework, sniffs with sniff.DefaultSignatures and discards
// diagnostics.
type Config struct {
	// Name and Version are reported in the codec description.
	Name    string
	Version uint32

	// Framework builds the decode pipeline for every opened file.
	Framework mf.Framework

	// Logger receives diagnostics of every session.
	Logger *log.Logger

	// Signatures recognised when sniffing a file header.
	Signatures []sniff.Signature

	// OutputSampleRate asks for resampled output. 0 keeps the decoded rate.
	OutputSampleRate int

	// DownmixMono asks for single channel output.
	DownmixMono bool
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if c.Version == 0 {
		c.Version = DefaultVersion
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard, "", 0)
	}
	if c.Signatures == nil {
		c.Signatures = sniff.DefaultSignatures
	}
	if c.Framework == nil {
		c.Framework = native.New(native.WithLogger(c.Logger))
	}
	return c
}

func (c Config) session() session.Config {
	return session.Config{
		Framework:        c.Framework,
		Logger:           c.Logger,
		Signatures:       c.Signatures,
		OutputSampleRate: c.OutputSampleRate,
		DownmixMono:      c.DownmixMono,
	}
}
