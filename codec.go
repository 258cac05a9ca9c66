// SPDX-License-Identifier: EPL-2.0

package mfbridge

import (
	"errors"
	"io"

	"github.com/ik5/mfbridge/host"
	"github.com/ik5/mfbridge/session"
)

// TimeUnits are the units the codec accepts for lengths and positions.
const TimeUnits = host.TimeUnitMS | host.TimeUnitPCM | host.TimeUnitPCMBytes

// Codec adapts sessions to the host's callback table. Each opened file
// keeps its *session.Session in CodecState.PluginData.
type Codec struct {
	cfg Config
}

func New(cfg Config) *Codec {
	return &Codec{cfg: cfg.withDefaults()}
}

// Description returns the callback table to register with the host.
func (c *Codec) Description() *host.Description {
	return &host.Description{
		Name:      c.cfg.Name,
		Version:   c.cfg.Version,
		TimeUnits: TimeUnits,

		Open:          c.open,
		Close:         c.close,
		Read:          c.read,
		GetLength:     c.getLength,
		SetPosition:   c.setPosition,
		GetPosition:   c.getPosition,
		SoundCreated:  c.soundCreated,
		GetWaveFormat: c.getWaveFormat,
	}
}

// ResultFor maps an error of the session package to a host Result. nil and
// io.EOF are successes.
func ResultFor(err error) host.Result {
	switch {
	case err == nil, errors.Is(err, io.EOF):
		return host.ResultOK
	case errors.Is(err, session.ErrUnsupportedFormat):
		return host.ResultErrFormat
	case errors.Is(err, session.ErrBadFile):
		return host.ResultErrFileBad
	}
	return host.ResultErrPlugin
}

func (c *Codec) sessionOf(state *host.CodecState, op string) (*session.Session, bool) {
	if state == nil {
		c.cfg.Logger.Printf("[mfbridge::%s] nil codec state", op)
		return nil, false
	}
	s, ok := state.PluginData.(*session.Session)
	if !ok || s == nil {
		c.cfg.Logger.Printf("[mfbridge::%s] invalid plugin data %T", op, state.PluginData)
		return nil, false
	}
	return s, true
}

func (c *Codec) open(state *host.CodecState) host.Result {
	if state == nil || state.File == nil {
		c.cfg.Logger.Printf("[mfbridge::open] no file handle")
		return host.ResultErrFileBad
	}

	s, err := session.Open(state.File, state.FileSize, c.cfg.session())
	if err != nil {
		c.cfg.Logger.Printf("[mfbridge::open] %v", err)
		return ResultFor(err)
	}

	state.PluginData = s
	return host.ResultOK
}

func (c *Codec) close(state *host.CodecState) host.Result {
	if s, ok := c.sessionOf(state, "close"); ok {
		_ = s.Close()
		state.PluginData = nil
	}
	return host.ResultOK
}

func (c *Codec) read(state *host.CodecState, buf []byte, samples uint32) (uint32, host.Result) {
	s, ok := c.sessionOf(state, "read")
	if !ok {
		return 0, host.ResultErrPlugin
	}

	n, err := s.Read(buf, samples)
	if r := ResultFor(err); r != host.ResultOK {
		c.cfg.Logger.Printf("[mfbridge::read] %v", err)
		return n, r
	}
	return n, host.ResultOK
}

func (c *Codec) getLength(state *host.CodecState, unit host.TimeUnit) (uint32, host.Result) {
	s, ok := c.sessionOf(state, "getlength")
	if !ok {
		return 0, host.ResultErrPlugin
	}

	n, err := s.Length(unit)
	if err != nil {
		c.cfg.Logger.Printf("[mfbridge::getlength] %v", err)
		return 0, host.ResultErrPlugin
	}
	return n, host.ResultOK
}

func (c *Codec) setPosition(state *host.CodecState, _ int, position uint32, unit host.TimeUnit) host.Result {
	s, ok := c.sessionOf(state, "setposition")
	if !ok {
		return host.ResultErrPlugin
	}

	if err := s.SetPosition(position, unit); err != nil {
		c.cfg.Logger.Printf("[mfbridge::setposition] %v", err)
		return host.ResultErrPlugin
	}
	return host.ResultOK
}

func (c *Codec) getPosition(state *host.CodecState, unit host.TimeUnit) (uint32, host.Result) {
	s, ok := c.sessionOf(state, "getposition")
	if !ok {
		return 0, host.ResultErrPlugin
	}

	n, err := s.Position(unit)
	if err != nil {
		c.cfg.Logger.Printf("[mfbridge::getposition] %v", err)
		return 0, host.ResultErrPlugin
	}
	return n, host.ResultOK
}

func (c *Codec) soundCreated(*host.CodecState, int) host.Result {
	return host.ResultOK
}

func (c *Codec) getWaveFormat(state *host.CodecState, _ int) (host.WaveFormat, host.Result) {
	s, ok := c.sessionOf(state, "getwaveformat")
	if !ok {
		return host.WaveFormat{}, host.ResultErrPlugin
	}

	wf, err := s.WaveFormat()
	if err != nil {
		c.cfg.Logger.Printf("[mfbridge::getwaveformat] %v", err)
		return host.WaveFormat{}, host.ResultErrPlugin
	}
	return wf, host.ResultOK
}
