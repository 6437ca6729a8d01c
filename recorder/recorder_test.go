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
	"context"
	"fmt"
	"slices"
	"testing"

	"github.com/gdamore/tcell/v2"
	"gitlab.com/gomidi/midi/v2"

	"fox-recorder/audio"
	"fox-recorder/model"
	"fox-recorder/session"
)

type fakeEngine struct {
	running  bool
	meters   map[string]*audio.PortMeter
	scopes   map[string]*audio.SampleRing
	levels   map[string]*audio.EventLevels
	monitors map[string]*audio.EventRing
	signals  *audio.EngineSignals
}

func newFakeEngine(audioPorts, eventPorts int) *fakeEngine {
	e := &fakeEngine{
		running:  true,
		meters:   make(map[string]*audio.PortMeter),
		scopes:   make(map[string]*audio.SampleRing),
		levels:   make(map[string]*audio.EventLevels),
		monitors: make(map[string]*audio.EventRing),
		signals:  audio.NewEngineSignals(),
	}

	for i := range audioPorts {
		name := fmt.Sprintf("system:capture_%d", i+1)
		e.meters[name] = audio.NewPortMeter()
		e.scopes[name] = audio.NewSampleRing(1 << 16)
	}
	for i := range eventPorts {
		name := fmt.Sprintf("system:midi_capture_%d", i+1)
		e.levels[name] = audio.NewEventLevels()
		e.monitors[name] = audio.NewEventRing(64)
	}

	return e
}

func (e *fakeEngine) Start(context.Context) error {
	e.running = true
	return nil
}

func (e *fakeEngine) Stop() { e.running = false }
func (e *fakeEngine) Running() bool { return e.running }
func (e *fakeEngine) SampleRate() int { return 48000 }
func (e *fakeEngine) InputMeters() map[string]*audio.PortMeter { return e.meters }
func (e *fakeEngine) InputScopes() map[string]*audio.SampleRing { return e.scopes }
func (e *fakeEngine) EventMeters() map[string]*audio.EventLevels { return e.levels }
func (e *fakeEngine) EventMonitors() map[string]*audio.EventRing { return e.monitors }
func (e *fakeEngine) Connect(string, string) error { return nil }
func (e *fakeEngine) Disconnect(string, string) error { return nil }
func (e *fakeEngine) Signals() *audio.EngineSignals { return e.signals }

type cell struct {
	ch    rune
	style tcell.Style
}

type fakeCanvas map[[2]int]cell

func (c fakeCanvas) SetContent(x, y int, ch rune, _ []rune, style tcell.Style) {
	c[[2]int{x, y}] = cell{ch, style}
}

func (c fakeCanvas) row(y, width int) string {
	runes := make([]rune, width)
	for x := range width {
		runes[x] = c[[2]int{x, y}].ch
	}

	return string(runes)
}

func bandSession() *session.Session {
	return session.FromProfile(&model.Profile{
		Name: "band",
		Channels: []model.ProfileChannel{
			{ChannelName: "Kick", Ports: []string{"system:capture_2"}},
			{ChannelName: "Snare", Ports: []string{"system:capture_3"}},
			{ChannelName: "Bass", Ports: []string{"system:capture_2", "system:capture_3"}},
			{ChannelName: "Room", Ports: []string{"system:capture_2"}, Hidden: true},
		},
	})
}

func newTestPanel(t *testing.T, s *session.Session) (*Panel, *fakeEngine) {
	t.Helper()

	engine := newFakeEngine(4, 1)
	p := NewPanel(engine, DefaultOptions(), nil)
	p.SetMapped(true)
	p.SetSession(s)
	p.AllocateRecArea(1000)

	return p, engine
}

func stripNames(placements []Placement) []string {
	names := make([]string, 0, len(placements))
	for _, pl := range placements {
		names = append(names, pl.Strip.Track().Name())
	}

	return names
}

func TestStartUpdatingBuildsPorts(t *testing.T) {
	p, _ := newTestPanel(t, bandSession())

	ports := p.Ports()
	if len(ports) != 5 {
		t.Fatalf("expected 5 ports, got %d", len(ports))
	}
	if ports[0].Kind() != audio.AudioPort || ports[4].Kind() != audio.EventPort {
		t.Fatalf("audio ports must precede event ports")
	}

	counts := map[string]int{
		"system:capture_1": 0,
		"system:capture_2": 3,
		"system:capture_3": 2,
	}
	for name, want := range counts {
		if got := p.Port(name).Count(); got != want {
			t.Errorf("%s: count %d, want %d", name, got, want)
		}
	}
}

func TestSpillUnconnectedPortRefused(t *testing.T) {
	p, _ := newTestPanel(t, bandSession())

	p.ToggleSpill("system:capture_1")

	if p.Port("system:capture_1").Spilled() {
		t.Fatalf("port without tracks stayed spilled")
	}
	if len(p.SpillNames()) != 0 {
		t.Fatalf("spill set changed: %v", p.SpillNames())
	}
	if got := stripNames(p.Placements()); !slices.Equal(got, []string{"Kick", "Snare", "Bass"}) {
		t.Fatalf("layout changed: %v", got)
	}
}

func TestSpillFiltersStrips(t *testing.T) {
	p, _ := newTestPanel(t, bandSession())

	p.ToggleSpill("system:capture_3")

	if !slices.Equal(p.SpillNames(), []string{"system:capture_3"}) {
		t.Fatalf("unexpected spill set %v", p.SpillNames())
	}
	if got := stripNames(p.Placements()); !slices.Equal(got, []string{"Snare", "Bass"}) {
		t.Fatalf("spilled layout %v", got)
	}

	p.ToggleSpill("system:capture_3")

	if len(p.SpillNames()) != 0 {
		t.Fatalf("spill not cleared")
	}
	if got := stripNames(p.Placements()); len(got) != 3 {
		t.Fatalf("full layout not restored: %v", got)
	}
}

func TestConnectionCountClearsSpill(t *testing.T) {
	p, engine := newTestPanel(t, bandSession())

	p.ToggleSpill("system:capture_2")
	p.ToggleSpill("system:capture_3")
	if len(p.SpillNames()) != 2 {
		t.Fatalf("expected two spilled ports, got %v", p.SpillNames())
	}

	engine.signals.PortConnectedOrDisconnected.Emit(audio.PortConnection{
		Source:      "system:capture_1",
		Destination: "fox:in_1",
		Connected:   true,
	})

	if len(p.SpillNames()) != 0 {
		t.Fatalf("spill survived a connection change")
	}
	for _, port := range p.Ports() {
		if port.Spilled() {
			t.Fatalf("%s still spilled", port.Name())
		}
	}
}

func TestEngineStopClearsSpill(t *testing.T) {
	p, engine := newTestPanel(t, bandSession())

	p.ToggleSpill("system:capture_3")
	if got := stripNames(p.Placements()); !slices.Equal(got, []string{"Snare", "Bass"}) {
		t.Fatalf("spill not applied: %v", got)
	}

	engine.signals.Stopped.Emit(struct{}{})

	if len(p.SpillNames()) != 0 {
		t.Fatalf("spill survived the engine stop: %v", p.SpillNames())
	}
	if got := stripNames(p.Placements()); !slices.Equal(got, []string{"Kick", "Snare", "Bass"}) {
		t.Fatalf("layout still filtered: %v", got)
	}
}

func TestInputPortSpillRules(t *testing.T) {
	tests := []struct {
		name   string
		active bool
		count  int
		enable bool
		want   bool
	}{
		{"on and connected", true, 2, true, true},
		{"on without tracks", true, 0, true, false},
		{"off stays off", false, 2, true, false},
		{"disable", true, 2, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			port := NewInputPort("system:capture_1", audio.AudioPort, DefaultOptions(), 48000)
			port.SetCount(tt.count)
			port.active = tt.active

			if got := port.Spill(tt.enable); got != tt.want || port.Spilled() != tt.want {
				t.Fatalf("Spill(%v) = %v, want %v", tt.enable, got, tt.want)
			}
		})
	}
}

func TestSetCountZeroDeactivates(t *testing.T) {
	port := NewInputPort("system:capture_1", audio.AudioPort, DefaultOptions(), 48000)
	port.SetCount(1)
	port.Toggle()

	port.SetCount(0)

	if port.Spilled() || port.CountText() != "0" {
		t.Fatalf("count 0 must turn the toggle off")
	}
}

func fiveTrackSession() *session.Session {
	channels := make([]model.ProfileChannel, 5)
	for i := range channels {
		channels[i] = model.ProfileChannel{
			ChannelName: fmt.Sprintf("T%d", i+1),
			Ports:       []string{fmt.Sprintf("system:capture_%d", i+1)},
		}
	}

	return session.FromProfile(&model.Profile{Name: "five", Channels: channels})
}

func TestGridPlacement(t *testing.T) {
	p, _ := newTestPanel(t, fiveTrackSession())

	box := p.Context().BoxWidth()
	p.AllocateRecArea(box*2 + box/2)

	want := [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0, 2}}
	placements := p.Placements()
	if len(placements) != len(want) {
		t.Fatalf("expected %d placements, got %d", len(want), len(placements))
	}

	for i, pl := range placements {
		if pl.Column != want[i][0] || pl.Row != want[i][1] {
			t.Errorf("strip %d at (%d,%d), want %v", i, pl.Column, pl.Row, want[i])
		}
	}

	if p.Context().Columns() != 2 {
		t.Fatalf("cached columns %d", p.Context().Columns())
	}
}

func TestAllocateRelayoutsOnColumnBoundary(t *testing.T) {
	p, _ := newTestPanel(t, fiveTrackSession())
	box := p.Context().BoxWidth()
	p.AllocateRecArea(box * 2)

	layouts := 0
	p.LayoutChanged.Connect(func([]Placement) { layouts++ })

	tests := []struct {
		width int
		want  int
	}{
		{box*2 + 1, 0},
		{box*3 - 1, 0},
		{box * 3, 1},
		{box*3 + 5, 1},
		{box*3 - 1, 2},
	}

	for _, tt := range tests {
		p.AllocateRecArea(tt.width)
		if layouts != tt.want {
			t.Fatalf("width %d: %d relayouts, want %d", tt.width, layouts, tt.want)
		}
	}
}

func TestPresentationChangeRelayout(t *testing.T) {
	s := bandSession()
	p, _ := newTestPanel(t, s)

	layouts := 0
	p.LayoutChanged.Connect(func([]Placement) { layouts++ })

	s.RouteByName("Room").SetOrder(10)
	if layouts != 0 {
		t.Fatalf("order change without reordering relayouted")
	}

	s.RouteByName("Bass").SetOrder(-1)
	if layouts != 1 {
		t.Fatalf("reorder did not relayout")
	}
	if got := stripNames(p.Placements()); got[0] != "Bass" {
		t.Fatalf("unexpected order %v", got)
	}

	s.RouteByName("Room").SetHidden(false)
	if layouts != 2 || len(p.Placements()) != 4 {
		t.Fatalf("hidden change not applied")
	}
}

func TestRemoveRouteRemovesStrip(t *testing.T) {
	s := bandSession()
	p, _ := newTestPanel(t, s)

	s.RemoveRoute(s.RouteByName("Snare"))

	if got := stripNames(p.Placements()); !slices.Equal(got, []string{"Kick", "Bass"}) {
		t.Fatalf("unexpected strips %v", got)
	}
	if len(p.Strips()) != 3 {
		t.Fatalf("expected 3 strips including the hidden one, got %d", len(p.Strips()))
	}
}

func TestSessionReplaceRemovesStrips(t *testing.T) {
	p, _ := newTestPanel(t, bandSession())

	cleared := 0
	p.LayoutChanged.Connect(func(pl []Placement) {
		if pl == nil {
			cleared++
		}
	})

	next := session.FromProfile(&model.Profile{
		Name: "duo",
		Channels: []model.ProfileChannel{
			{ChannelName: "Vocals", Ports: []string{"system:capture_1"}},
		},
	})
	p.SetSession(next)

	if cleared != 0 {
		t.Fatalf("replacing a live session cleared in bulk %d times", cleared)
	}
	if got := stripNames(p.Placements()); !slices.Equal(got, []string{"Vocals"}) {
		t.Fatalf("unexpected strips %v", got)
	}
	if len(p.stripConns) != 1 || len(p.ctx.names) != 1 {
		t.Fatalf("old strips not released: %d conns, %d names", len(p.stripConns), len(p.ctx.names))
	}

	p.SetSession(nil)

	if len(p.Strips()) != 0 || len(p.Placements()) != 0 || len(p.stripConns) != 0 {
		t.Fatalf("detach left strips behind")
	}
}

func TestSessionCloseClearsStrips(t *testing.T) {
	s := bandSession()
	p, _ := newTestPanel(t, s)

	cleared := 0
	p.LayoutChanged.Connect(func(pl []Placement) {
		if pl == nil {
			cleared++
		}
	})

	s.Close()

	if cleared != 1 {
		t.Fatalf("expected a single bulk clear, got %d", cleared)
	}
	if len(p.Strips()) != 0 || p.Session() != nil {
		t.Fatalf("panel still holds the session")
	}
	if p.Title() != "Recorder" {
		t.Fatalf("title %q", p.Title())
	}
}

func TestTitleTracksDirtyState(t *testing.T) {
	s := bandSession()
	p, _ := newTestPanel(t, s)

	if p.Title() != "band - Recorder" {
		t.Fatalf("title %q", p.Title())
	}

	s.RouteByName("Kick").SetMuted(true)

	if p.Title() != "*band - Recorder" {
		t.Fatalf("dirty title %q", p.Title())
	}
}

func TestDivider(t *testing.T) {
	p := NewPanel(newFakeEngine(0, 0), DefaultOptions(), nil)

	if p.Divider() != DefaultDivider {
		t.Fatalf("default divider %v", p.Divider())
	}
	if p.SetDivider(1.5) || p.Divider() != DefaultDivider {
		t.Fatalf("divider above 1 accepted")
	}
	if !p.SetDivider(0.5) || p.Divider() != 0.5 {
		t.Fatalf("valid divider rejected")
	}

	p.RestoreDivider(0)
	if p.Divider() != DefaultDivider {
		t.Fatalf("unset divider not defaulted")
	}
}

func TestTickFeedsWidgets(t *testing.T) {
	s := bandSession()
	p, engine := newTestPanel(t, s)

	engine.meters["system:capture_2"].Set(-6, -6)
	engine.levels["system:midi_capture_1"].Hit(3, 1)
	engine.monitors["system:midi_capture_1"].Write(midi.NoteOn(3, 60, 100))

	p.Tick()

	if got := p.Port("system:capture_2").Level().Peak; got != -6 {
		t.Fatalf("port level %v", got)
	}
	if got := s.RouteByName("Kick").Meter().Level(); got != -6 {
		t.Fatalf("track meter %v", got)
	}
	if got := p.Strips()[0].Meter().Level(); got != -6 {
		t.Fatalf("strip meter %v", got)
	}

	midiPort := p.Port("system:midi_capture_1")
	if midiPort.eventMeter.Levels()[3] != 1 {
		t.Fatalf("event meter not fed")
	}
	if len(midiPort.eventMonitor.Tokens()) != 1 {
		t.Fatalf("event monitor not fed")
	}
}

func TestTickReportsChanges(t *testing.T) {
	p, engine := newTestPanel(t, bandSession())
	p.Tick()

	if p.Tick() {
		t.Fatalf("tick without engine data reported a change")
	}

	engine.meters["system:capture_2"].Set(-12, -12)
	if !p.Tick() {
		t.Fatalf("meter change not reported")
	}
	if p.Tick() {
		t.Fatalf("unchanged meter reported twice")
	}

	engine.scopes["system:capture_1"].Write(make([]float32, 20000))
	if !p.Tick() {
		t.Fatalf("scope data not reported")
	}
}

func TestTickUnmappedOnlyDrainsScopes(t *testing.T) {
	p, engine := newTestPanel(t, bandSession())
	p.SetMapped(false)

	ring := engine.scopes["system:capture_1"]
	ring.Write(make([]float32, 20000))
	engine.meters["system:capture_1"].Set(-3, -3)

	p.Tick()

	if ring.Available() >= p.Port("system:capture_1").scope.SamplesPerPixel() {
		t.Fatalf("scope not drained while hidden")
	}
	if got := p.Port("system:capture_1").Level().Peak; got != audio.MinDb {
		t.Fatalf("meter updated while hidden: %v", got)
	}
}

func TestPeakReset(t *testing.T) {
	s := bandSession()
	p, engine := newTestPanel(t, s)

	engine.meters["system:capture_2"].Set(-1, -1)
	p.Tick()

	strip := p.Strips()[0]
	if strip.Meter().LongTermMax() != -1 {
		t.Fatalf("long term max %v", strip.Meter().LongTermMax())
	}

	engine.meters["system:capture_2"].Set(-40, -40)
	strip.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModNone))
	p.Tick()

	if strip.Meter().LongTermMax() != -40 {
		t.Fatalf("peak not reset, long term max %v", strip.Meter().LongTermMax())
	}
}

func TestStripKeys(t *testing.T) {
	s := bandSession()
	p, _ := newTestPanel(t, s)
	strip := p.Strips()[0]
	kick := strip.Track()

	press := func(r rune) {
		strip.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}

	press('r')
	press('m')
	press('n')
	if !kick.RecEnabled() || !kick.Muted() || kick.Group() == nil {
		t.Fatalf("strip keys not applied")
	}

	strip.HandleKey(tcell.NewEventKey(tcell.KeyCtrlG, 0, tcell.ModCtrl))
	if kick.Group() != nil {
		t.Fatalf("modifier group key did not remove from group")
	}

	press('g')
	if kick.Group() == nil || kick.Group().Name() != "Group 1" {
		t.Fatalf("group cycling failed")
	}
}

func TestScopeUpdate(t *testing.T) {
	opts := DefaultOptions()
	opts.ScopeWidth = 10
	opts.ScopeRows = 2
	scope := NewScope(opts, 100)

	if spp := scope.SamplesPerPixel(); spp != 50 {
		t.Fatalf("samples per pixel %d", spp)
	}

	ring := audio.NewSampleRing(1024)
	ring.Write(make([]float32, 49))

	before := slices.Clone(scope.image)
	if scope.Update(ring) || !slices.Equal(before, scope.image) || scope.xpos != 0 {
		t.Fatalf("partial column changed the image")
	}
	if scope.Update(ring) {
		t.Fatalf("second update without data reported a change")
	}

	ring.Write(make([]float32, 1))
	if !scope.Update(ring) || scope.xpos != 1 || ring.Available() != 0 {
		t.Fatalf("column not drawn, xpos %d", scope.xpos)
	}
	if scope.image[2*10] != pixelWave {
		t.Fatalf("silence not drawn on the zero line")
	}

	loud := make([]float32, 50)
	for i := range loud {
		loud[i] = 1
	}
	ring.Write(loud)

	if !scope.Update(ring) || scope.xpos != 2 {
		t.Fatalf("second column not drawn, xpos %d", scope.xpos)
	}
	if scope.image[1] != pixelClip {
		t.Fatalf("full scale column not marked as clipping")
	}
}

func TestScopeRenderPutsNewestRight(t *testing.T) {
	opts := DefaultOptions()
	opts.ScopeWidth = 4
	opts.ScopeRows = 1
	opts.ShowClip = false
	scope := NewScope(opts, 4)

	ring := audio.NewSampleRing(64)
	ring.Write([]float32{1, -1, 0, 0, 0})
	if !scope.Update(ring) {
		t.Fatalf("column not drawn")
	}

	canvas := fakeCanvas{}
	scope.Render(canvas, Rect{Width: 4, Height: 1})

	if got := []rune(canvas.row(0, 4)); got[3] != '█' || got[0] != '─' {
		t.Fatalf("unexpected scope row %q", string(got))
	}
}

func TestScopeRenderNarrowKeepsNewest(t *testing.T) {
	opts := DefaultOptions()
	opts.ScopeWidth = 4
	opts.ScopeRows = 1
	opts.ShowClip = false
	scope := NewScope(opts, 4)

	ring := audio.NewSampleRing(64)
	ring.Write([]float32{1, -1, 0, 0, 0})
	if !scope.Update(ring) {
		t.Fatalf("column not drawn")
	}

	canvas := fakeCanvas{}
	scope.Render(canvas, Rect{Width: 2, Height: 1})

	if got := []rune(canvas.row(0, 2)); got[1] != '█' || got[0] != '─' {
		t.Fatalf("newest column not at the right edge: %q", string(got))
	}
	if _, ok := canvas[[2]int{2, 0}]; ok {
		t.Fatalf("drew outside the area")
	}
}

func TestFormatEvent(t *testing.T) {
	tests := []struct {
		name string
		msg  midi.Message
		want Token
	}{
		{"note on", midi.NoteOn(0, 60, 100), Token{"01♩ On", fmt.Sprintf(" %4s ", midi.Note(60).String())}},
		{"note off", midi.NoteOff(9, 36), Token{"10♩Off", fmt.Sprintf(" %4s ", midi.Note(36).String())}},
		{"poly pressure", midi.PolyAfterTouch(1, 64, 20), Token{"02♩ KP", fmt.Sprintf(" %4s ", midi.Note(64).String())}},
		{"control change", midi.ControlChange(2, 7, 127), Token{"03 CC ", "07  7f"}},
		{"program change", midi.ProgramChange(15, 10), Token{"16 PC ", "  0a  "}},
		{"channel pressure", midi.AfterTouch(4, 33), Token{"05 KP ", "  21  "}},
		{"pitch bend", midi.Pitchbend(0, 0), Token{"01 PB ", " 2000 "}},
		{"sysex", midi.Message{0xF0, 0x7E, 0x7F}, Token{"Sys.Ex", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ev audio.Event
			ev.Size = uint8(copy(ev.Data[:], tt.msg))

			got, ok := FormatEvent(ev)
			if !ok || got != tt.want {
				t.Fatalf("got %+v (%v), want %+v", got, ok, tt.want)
			}
		})
	}

	if _, ok := FormatEvent(audio.Event{Data: [3]byte{0x40}, Size: 1}); ok {
		t.Fatalf("data byte formatted as event")
	}
}

func TestEventMonitorRendersNewestRight(t *testing.T) {
	ring := audio.NewEventRing(16)
	ring.Write(midi.ControlChange(0, 1, 2))
	ring.Write(midi.ProgramChange(0, 5))

	monitor := NewEventMonitor(8)
	if !monitor.Update(ring) {
		t.Fatalf("no events read")
	}
	if monitor.Update(ring) {
		t.Fatalf("stale read reported new events")
	}

	canvas := fakeCanvas{}
	monitor.Render(canvas, Rect{Width: 10, Height: 2})

	if got := canvas.row(0, 10); got[len(got)-6:] != "01 PC " {
		t.Fatalf("newest event not at the right edge: %q", got)
	}
	if _, ok := canvas[[2]int{0, 0}]; ok {
		t.Fatalf("older event drawn although it did not fit")
	}
}

func TestSlotLabel(t *testing.T) {
	if SlotLabel(0) != "C1" || SlotLabel(15) != "C16" || SlotLabel(audio.SystemSlot) != "SyS" {
		t.Fatalf("unexpected labels")
	}
}

func TestLayoutContextNameWidth(t *testing.T) {
	ctx := NewLayoutContext()
	resized := 0
	ctx.OnResize(func() { resized++ })

	ctx.setName("a", "Kick")
	if ctx.NameWidth() != minNameWidth || resized != 0 {
		t.Fatalf("short name changed the width")
	}

	ctx.setName("b", "Overheads Left")
	if ctx.NameWidth() != 14 || resized != 1 {
		t.Fatalf("width %d, resized %d", ctx.NameWidth(), resized)
	}

	ctx.setName("c", "An extremely long channel name")
	if ctx.NameWidth() != maxNameWidth {
		t.Fatalf("width not clamped: %d", ctx.NameWidth())
	}

	ctx.dropName("c")
	if ctx.NameWidth() != 14 || resized != 3 {
		t.Fatalf("dropping the widest name: width %d, resized %d", ctx.NameWidth(), resized)
	}

	ctx.dropName("a")
	if resized != 3 {
		t.Fatalf("dropping a short name resized")
	}
}

func TestSnapshot(t *testing.T) {
	s := bandSession()
	p, _ := newTestPanel(t, s)
	p.ToggleSpill("system:capture_3")

	snap := p.Snapshot()

	if snap.Title != "band - Recorder" || len(snap.Ports) != 5 {
		t.Fatalf("unexpected snapshot header %+v", snap)
	}
	if !slices.Equal(snap.Spill, []string{"system:capture_3"}) {
		t.Fatalf("spill %v", snap.Spill)
	}
	if len(snap.Strips) != 2 || snap.Strips[1].Name != "Bass" || snap.Strips[1].Column != 1 {
		t.Fatalf("strips %+v", snap.Strips)
	}
	if snap.Ports[4].Kind != "midi" {
		t.Fatalf("event port kind %q", snap.Ports[4].Kind)
	}
}
