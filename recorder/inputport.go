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
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"fox-recorder/audio"
	"fox-recorder/display/theme"
	"fox-recorder/signals"
)

// InputPort is the widget of one physical capture port: a header with the
// spill toggle and connection count, then either a level meter and scope or
// an event meter and monitor.
type InputPort struct {
	name string
	kind audio.PortKind

	active    bool
	count     int
	countText string
	selected  bool

	level LevelPair

	meter        *LevelMeter
	scope        *Scope
	eventMeter   *EventMeter
	eventMonitor *EventMonitor

	// Toggled fires after the user flipped the spill toggle.
	Toggled *signals.Signal[string]
}

func NewInputPort(name string, kind audio.PortKind, opts Options, sampleRate int) *InputPort {
	p := &InputPort{
		name:      name,
		kind:      kind,
		countText: "0",
		level:     LevelPair{Level: audio.MinDb, Peak: audio.MinDb},
		Toggled:   signals.New[string](),
	}

	if kind == audio.AudioPort {
		p.meter = NewLevelMeter(opts.PeakHold)
		p.scope = NewScope(opts, sampleRate)
	} else {
		p.eventMeter = NewEventMeter()
		p.eventMonitor = NewEventMonitor(opts.MonitorSize)
	}

	return p
}

func (p *InputPort) Name() string { return p.name }
func (p *InputPort) Kind() audio.PortKind { return p.kind }
func (p *InputPort) Count() int { return p.count }
func (p *InputPort) CountText() string { return p.countText }
func (p *InputPort) Level() LevelPair { return p.level }
func (p *InputPort) Spilled() bool { return p.active }

// ShortName drops the client prefix of the port name.
func (p *InputPort) ShortName() string {
	if _, port, ok := strings.Cut(p.name, ":"); ok {
		return port
	}

	return p.name
}

func (p *InputPort) SetSelected(selected bool) {
	p.selected = selected
}

// SetCount shows the number of tracks recording from the port. A port that
// feeds nothing cannot be spilled.
func (p *InputPort) SetCount(count int) {
	p.count = count
	p.countText = strconv.Itoa(count)

	if count == 0 {
		p.active = false
	}
}

// Spill turns the spill toggle on or off and returns the resulting state. It
// only stays on when already on, enabled and the port feeds a track.
func (p *InputPort) Spill(enable bool) bool {
	p.active = p.active && enable && p.countText != "0"

	return p.active
}

// Toggle flips the spill toggle as a click would.
func (p *InputPort) Toggle() {
	p.active = !p.active
	p.Toggled.Emit(p.name)
}

// Update applies engine data. Updates of the other port kind are ignored.
func (p *InputPort) Update(u Update) bool {
	switch u := u.(type) {
	case LevelPair:
		if p.meter == nil {
			return false
		}
		changed := p.level != u
		p.level = u
		return p.meter.SetLevel(u.Peak) || changed
	case ScopeBuffer:
		if p.scope == nil {
			return false
		}
		return p.scope.Update(u.Ring)
	case EventActivity:
		if p.eventMeter == nil {
			return false
		}
		return p.eventMeter.Update(u.Levels)
	case EventLog:
		if p.eventMonitor == nil {
			return false
		}
		return p.eventMonitor.Update(u.Ring)
	}

	return false
}

// ClearPeak drops the held meter values.
func (p *InputPort) ClearPeak() {
	if p.meter != nil {
		p.meter.Clear()
	}
}

func (p *InputPort) Measure() (int, int) {
	if p.kind == audio.AudioPort {
		w, h := p.scope.Measure()
		return max(w, 20), 2 + h
	}

	w, _ := p.eventMeter.Measure()
	mw, _ := p.eventMonitor.Measure()
	return max(w, mw), 5
}

func (p *InputPort) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		p.Toggle()
		return true
	}

	return false
}

func (p *InputPort) Render(c Canvas, r Rect) {
	if r.Empty() {
		return
	}

	base := tcell.StyleDefault.Background(theme.Background)
	if p.selected {
		base = base.Background(theme.SelectedBackground)
	}
	fill(c, r.Row(0), ' ', base)

	toggle, toggleStyle := theme.RuneSpillOff, base.Foreground(theme.Gray)
	if p.active {
		toggle, toggleStyle = theme.RuneSpillOn, base.Foreground(theme.SpillActive).Bold(true)
	}
	c.SetContent(r.X, r.Y, toggle, nil, toggleStyle)

	badge := fmt.Sprintf("[%s]", p.countText)
	nameWidth := max(r.Width-2-len(badge)-1, 0)
	drawText(c, r.X+2, r.Y, nameWidth, truncate(p.ShortName(), nameWidth), base.Bold(p.selected))

	countStyle := base.Foreground(theme.Gray)
	if p.count > 0 {
		countStyle = base.Foreground(theme.Green)
	}
	drawTextRight(c, r.X, r.Y, r.Width, badge, countStyle)

	body := Rect{X: r.X, Y: r.Y + 1, Width: r.Width, Height: r.Height - 1}
	if p.kind == audio.AudioPort {
		p.meter.Render(c, body.Row(0))
		p.scope.Render(c, Rect{X: body.X, Y: body.Y + 1, Width: body.Width, Height: body.Height - 1})
		return
	}

	p.eventMeter.Render(c, Rect{X: body.X, Y: body.Y, Width: body.Width, Height: min(body.Height, 2)})
	if body.Height > 2 {
		p.eventMonitor.Render(c, Rect{X: body.X, Y: body.Y + 2, Width: body.Width, Height: body.Height - 2})
	}
}
