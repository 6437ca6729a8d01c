// =================================================================================
//
//			fox-audio - https://www.foxhollow.cc/projects/fox-audio/
//
//		 Fox Audio is a simple CLI utility for recording and playback of
//	  multitrack audio straight to disk by utilizing the JACK audio server
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package recorder

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"fox-recorder/display/theme"
	"fox-recorder/session"
	"fox-recorder/signals"
)

// PeakScope selects which meters a peak reset applies to.
type PeakScope int8

const (
	PeakRoute PeakScope = iota
	PeakGroup
	PeakAll
)

type PeakResetRequest struct {
	Strip *TrackStrip
	Scope PeakScope
}

// stripFixedWidth covers number, rec, In, Disk, M, G and the gaps between.
const stripFixedWidth = 3 + 2 + 3 + 5 + 2 + 1 + 2

// TrackStrip is the compact record control of one track: number, rec arm,
// monitoring, mute, name and group on one line, the level meter below.
type TrackStrip struct {
	session *session.Session
	track   *session.Track
	ctx     *LayoutContext

	meter       *LevelMeter
	clearMeters bool
	selected    bool

	conns signals.ConnectionList

	// Removed fires once the track dropped its references.
	Removed *signals.Signal[*TrackStrip]

	PeakResetRequested *signals.Signal[PeakResetRequest]
}

func NewTrackStrip(s *session.Session, t *session.Track, ctx *LayoutContext, opts Options) *TrackStrip {
	strip := &TrackStrip{
		session:            s,
		track:              t,
		ctx:                ctx,
		meter:              NewLevelMeter(opts.PeakHold),
		Removed:            signals.New[*TrackStrip](),
		PeakResetRequested: signals.New[PeakResetRequest](),
	}

	strip.conns.Add(t.PropertyChanged.Connect(strip.propertyChanged))
	strip.conns.Add(t.DropReferences.Connect(func(struct{}) { strip.dropReferences() }))

	ctx.setName(strip, t.Name())
	strip.updateSensitivity()

	return strip
}

func (s *TrackStrip) Track() *session.Track { return s.track }

func (s *TrackStrip) Meter() *LevelMeter { return s.meter }

func (s *TrackStrip) SetSelected(selected bool) {
	s.selected = selected
}

func (s *TrackStrip) propertyChanged(what session.Property) {
	if what.Contains(session.PropActive) {
		s.updateSensitivity()
	}

	if what.Contains(session.PropName) {
		s.ctx.setName(s, s.track.Name())
	}
}

func (s *TrackStrip) updateSensitivity() {
	s.meter.SetSensitive(s.track.Active())
}

func (s *TrackStrip) dropReferences() {
	s.Release()
	s.Removed.Emit(s)
}

// Release disconnects the strip from its track.
func (s *TrackStrip) Release() {
	s.conns.DropConnections()
	s.ctx.dropName(s)
}

// ResetPeakDisplay clears the meter on the next fast update.
func (s *TrackStrip) ResetPeakDisplay() {
	s.clearMeters = true
}

// FastUpdate refreshes the meter from the track and reports whether the meter
// needs drawing.
func (s *TrackStrip) FastUpdate() bool {
	cleared := s.clearMeters
	if s.clearMeters {
		s.meter.Clear()
		s.track.Meter().ResetMax()
		s.clearMeters = false
	}

	return s.meter.SetLevel(s.track.Meter().Level()) || cleared
}

// GroupChoices lists the groups a track can be assigned to, nil standing for
// no group.
func (s *TrackStrip) GroupChoices() []*session.RouteGroup {
	return append([]*session.RouteGroup{nil}, s.session.Groups()...)
}

// CycleGroup moves the track to the next group, wrapping to no group.
func (s *TrackStrip) CycleGroup() {
	choices := s.GroupChoices()
	next := choices[(slices.Index(choices, s.track.Group())+1)%len(choices)]
	s.session.AddToGroup(s.track, next)
}

// NewGroup puts the track into a freshly named group.
func (s *TrackStrip) NewGroup() {
	name := fmt.Sprintf("Group %d", len(s.session.Groups())+1)
	s.session.AddToGroup(s.track, s.session.NewGroup(name))
}

func (s *TrackStrip) Measure() (int, int) {
	return stripFixedWidth + s.ctx.NameWidth(), 2
}

func (s *TrackStrip) HandleKey(ev *tcell.EventKey) bool {
	t := s.track

	if ev.Key() == tcell.KeyCtrlG {
		s.session.RemoveFromGroup(t)
		return true
	}

	if ev.Key() != tcell.KeyRune {
		return false
	}

	switch ev.Rune() {
	case 'r':
		t.SetRecEnabled(!t.RecEnabled())
	case 'i':
		t.SetMonitorInput(!t.MonitorInput())
	case 'd':
		t.SetMonitorDisk(!t.MonitorDisk())
	case 'm':
		t.SetMuted(!t.Muted())
	case 'g':
		s.CycleGroup()
	case 'n':
		s.NewGroup()
	case 'G':
		s.session.RemoveFromGroup(t)
	case 'c':
		s.PeakResetRequested.Emit(PeakResetRequest{Strip: s, Scope: PeakRoute})
	case 'x':
		s.PeakResetRequested.Emit(PeakResetRequest{Strip: s, Scope: PeakGroup})
	case 'C':
		s.PeakResetRequested.Emit(PeakResetRequest{Strip: s, Scope: PeakAll})
	default:
		return false
	}

	return true
}

func (s *TrackStrip) Render(c Canvas, r Rect) {
	if r.Empty() {
		return
	}

	t := s.track
	base := tcell.StyleDefault.Background(theme.Background)
	if s.selected {
		base = base.Background(theme.SelectedBackground)
	}
	fill(c, r.Row(0), ' ', base)

	off := base.Foreground(theme.Insensitive)
	if !t.Active() {
		off = off.Dim(true)
	}
	toggle := func(on bool, color tcell.Color) tcell.Style {
		if on && t.Active() {
			return base.Foreground(color).Bold(true)
		}
		return off
	}

	x := r.X
	end := r.X + r.Width
	put := func(text string, style tcell.Style) {
		if x < end {
			x += drawText(c, x, r.Y, end-x, text, style) + 1
		}
	}

	put(fmt.Sprintf("%2d", t.Number()), base.Foreground(theme.TrackColor(t.Color())).Bold(true))
	put(string(theme.RuneRecord), toggle(t.RecEnabled(), theme.Red))
	put("In", toggle(t.MonitorInput(), theme.Green))
	put("Disk", toggle(t.MonitorDisk(), theme.Yellow))
	put("M", toggle(t.Muted(), theme.Yellow))

	nameWidth := s.ctx.NameWidth()
	nameStyle := base.Bold(s.selected)
	if !t.Active() {
		nameStyle = off
	}
	if x < end {
		drawText(c, x, r.Y, min(nameWidth, end-x), truncate(t.Name(), nameWidth), nameStyle)
		x += nameWidth + 1
	}

	put("G", toggle(t.Group() != nil, theme.Blue))

	if r.Height > 1 {
		s.meter.Render(c, r.Row(1))
	}
}
