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
	"log/slog"
	"slices"
	"strings"

	"github.com/gdamore/tcell/v2"

	"fox-recorder/audio"
	"fox-recorder/session"
	"fox-recorder/signals"
	"fox-recorder/util"
)

// DefaultDivider is the share of the height given to the track strips.
const DefaultDivider = 0.75

// Placement is the grid cell of one visible strip.
type Placement struct {
	Strip  *TrackStrip
	Column int
	Row    int
}

type focusArea int8

const (
	focusStrips focusArea = iota
	focusPorts
)

// Panel is the recorder overview: the input ports of the engine along the
// bottom and the track strips of the session in a grid above. It is driven
// from the UI thread only; engine signals arrive through the dispatcher.
type Panel struct {
	engine     audio.Engine
	dispatcher signals.Dispatcher
	opts       Options
	ctx        *LayoutContext

	session *session.Session

	ports     map[string]*InputPort
	portOrder []*InputPort
	strips    []*TrackStrip
	spill     map[string]struct{}

	placements []Placement
	layoutCols int

	updating bool
	mapped   bool
	divider  float64
	title    string

	focus         focusArea
	selectedStrip int
	selectedPort  int

	engineConns  signals.ConnectionList
	sessionConns signals.ConnectionList
	stripConns   map[*TrackStrip]*signals.ConnectionList

	TitleChanged    *signals.Signal[string]
	LayoutChanged   *signals.Signal[[]Placement]
	PortsChanged    *signals.Signal[[]*InputPort]
	ResizeRequested *signals.Signal[struct{}]
	DividerChanged  *signals.Signal[float64]
}

func NewPanel(engine audio.Engine, opts Options, dispatcher signals.Dispatcher) *Panel {
	if dispatcher == nil {
		dispatcher = signals.Immediate
	}

	p := &Panel{
		engine:          engine,
		dispatcher:      dispatcher,
		opts:            opts,
		ctx:             NewLayoutContext(),
		ports:           make(map[string]*InputPort),
		spill:           make(map[string]struct{}),
		divider:         DefaultDivider,
		stripConns:      make(map[*TrackStrip]*signals.ConnectionList),
		TitleChanged:    signals.New[string](),
		LayoutChanged:   signals.New[[]Placement](),
		PortsChanged:    signals.New[[]*InputPort](),
		ResizeRequested: signals.New[struct{}](),
		DividerChanged:  signals.New[float64](),
	}

	p.ctx.OnResize(p.updateRecTableLayout)

	sig := engine.Signals()
	p.engineConns.Add(sig.Running.ConnectVia(dispatcher, func(struct{}) { p.StartUpdating() }))
	p.engineConns.Add(sig.Stopped.ConnectVia(dispatcher, func(struct{}) { p.StopUpdating() }))
	p.engineConns.Add(sig.Halted.ConnectVia(dispatcher, func(reason string) {
		slog.Warn("Audio engine halted: " + reason)
		p.StopUpdating()
	}))
	p.engineConns.Add(sig.PortConnectedOrDisconnected.ConnectVia(dispatcher, p.PortConnectedOrDisconnected))

	p.updateTitle()

	return p
}

func (p *Panel) Session() *session.Session { return p.session }
func (p *Panel) Context() *LayoutContext { return p.ctx }
func (p *Panel) Title() string { return p.title }
func (p *Panel) Updating() bool { return p.updating }
func (p *Panel) Strips() []*TrackStrip { return slices.Clone(p.strips) }
func (p *Panel) Placements() []Placement { return slices.Clone(p.placements) }
func (p *Panel) Ports() []*InputPort { return slices.Clone(p.portOrder) }
func (p *Panel) Port(name string) *InputPort { return p.ports[name] }

// SpillNames returns the ports currently selected for spilling, sorted.
func (p *Panel) SpillNames() []string {
	names := make([]string, 0, len(p.spill))
	for name := range p.spill {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Close disconnects the panel from the engine and the session.
func (p *Panel) Close() {
	p.StopUpdating()
	p.SetSession(nil)
	p.engineConns.DropConnections()
}

// SetSession attaches the panel to a session, or detaches it with nil.
func (p *Panel) SetSession(s *session.Session) {
	if p.session != nil {
		p.sessionConns.DropConnections()
		if p.session.DeletionInProgress() {
			p.clearStrips()
		} else {
			for len(p.strips) > 0 {
				p.removeStrip(p.strips[len(p.strips)-1])
			}
		}
	}

	p.session = s
	if s == nil {
		p.updateTitle()
		return
	}

	p.sessionConns.Add(s.RouteAdded.Connect(p.addRoutes))
	p.sessionConns.Add(s.PresentationChanged.Connect(p.PresentationInfoChanged))
	p.sessionConns.Add(s.InputChanged.Connect(func(*session.Track) { p.updateConnectionCounts() }))
	p.sessionConns.Add(s.DirtyChanged.Connect(func(bool) { p.updateTitle() }))
	p.sessionConns.Add(s.GoingAway.Connect(func(struct{}) { p.SessionGoingAway() }))

	p.addRoutes(s.Routes())

	if p.engine.Running() {
		p.StartUpdating()
	} else {
		p.updateConnectionCounts()
	}

	p.updateTitle()
}

// SessionGoingAway detaches from a session that is being closed.
func (p *Panel) SessionGoingAway() {
	p.sessionConns.DropConnections()
	p.clearStrips()
	p.session = nil
	p.updateTitle()
}

func (p *Panel) updateTitle() {
	title := "Recorder"
	if p.session != nil {
		dirty := ""
		if p.session.Dirty() {
			dirty = "*"
		}
		title = dirty + p.session.SnapshotName() + " - Recorder"
	}

	if title == p.title {
		return
	}

	p.title = title
	p.TitleChanged.Emit(title)
}

// StartUpdating rebuilds the input port widgets from the engine and begins
// taking ticks.
func (p *Panel) StartUpdating() {
	if len(p.ports) > 0 {
		p.StopUpdating()
	}

	rate := p.engine.SampleRate()

	audioPorts := sortedKeys(p.engine.InputMeters())
	eventPorts := sortedKeys(p.engine.EventMeters())

	for _, name := range audioPorts {
		p.addPort(NewInputPort(name, audio.AudioPort, p.opts, rate))
	}
	for _, name := range eventPorts {
		p.addPort(NewInputPort(name, audio.EventPort, p.opts, rate))
	}

	p.updateConnectionCounts()
	p.updating = true
	p.selectedPort = min(p.selectedPort, max(len(p.portOrder)-1, 0))
	p.updateSelection()

	util.TraceLog("Recorder panel updating", "audio", len(audioPorts), "midi", len(eventPorts))
	p.PortsChanged.Emit(p.Ports())
}

func (p *Panel) addPort(port *InputPort) {
	port.Toggled.Connect(p.SpillPort)
	p.ports[port.Name()] = port
	p.portOrder = append(p.portOrder, port)
}

// StopUpdating stops taking ticks and drops the port widgets.
func (p *Panel) StopUpdating() {
	wasUpdating := p.updating || len(p.ports) > 0

	p.updating = false
	clear(p.ports)
	p.portOrder = nil

	if len(p.spill) > 0 {
		clear(p.spill)
		p.updateRecTableLayout()
	}

	if wasUpdating {
		p.PortsChanged.Emit(nil)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// SetMapped tells the panel whether it is on screen. Hidden panels keep
// draining scope buffers but skip everything else.
func (p *Panel) SetMapped(mapped bool) {
	p.mapped = mapped
}

func (p *Panel) Mapped() bool { return p.mapped }

// Tick pulls new engine data into the widgets and reports whether any of them
// changed.
func (p *Panel) Tick() bool {
	if !p.updating {
		return false
	}

	changed := false
	for name, ring := range p.engine.InputScopes() {
		if port, ok := p.ports[name]; ok {
			changed = port.Update(ScopeBuffer{Ring: ring}) || changed
		}
	}

	if !p.mapped {
		return false
	}

	meters := p.engine.InputMeters()
	for name, m := range meters {
		if port, ok := p.ports[name]; ok {
			changed = port.Update(LevelPair{Level: m.Level(), Peak: m.Peak()}) || changed
		}
	}

	for name, levels := range p.engine.EventMeters() {
		if port, ok := p.ports[name]; ok {
			changed = port.Update(EventActivity{Levels: levels.Snapshot(p.opts.EventDecay)}) || changed
		}
	}

	for name, ring := range p.engine.EventMonitors() {
		if port, ok := p.ports[name]; ok {
			changed = port.Update(EventLog{Ring: ring}) || changed
		}
	}

	if p.session != nil {
		p.session.UpdateMeters(meters)
	}

	for _, strip := range p.strips {
		changed = strip.FastUpdate() || changed
	}

	return changed
}

// SpillPort brings the spill selection in line with the port's toggle.
func (p *Panel) SpillPort(name string) {
	port, ok := p.ports[name]
	if !ok {
		return
	}

	spilled := false
	if port.Spilled() {
		spilled = port.Spill(true)
		if !spilled {
			return
		}
	}

	update := false
	if spilled {
		if _, exists := p.spill[name]; !exists {
			p.spill[name] = struct{}{}
			update = true
		}
	} else if _, exists := p.spill[name]; exists {
		delete(p.spill, name)
		update = true
	}

	if update {
		p.updateRecTableLayout()
	}
}

// ToggleSpill flips the spill state of a port.
func (p *Panel) ToggleSpill(name string) {
	if port, ok := p.ports[name]; ok {
		port.Toggle()
	}
}

// SetConnectionCount refreshes the badge of one port. Any count change while
// ports are spilled ends the spill.
func (p *Panel) SetConnectionCount(name string) {
	if p.session == nil {
		return
	}

	port, ok := p.ports[name]
	if !ok {
		return
	}

	port.SetCount(p.session.ConnectedCount(name))

	if len(p.spill) > 0 {
		for _, other := range p.portOrder {
			other.Spill(false)
		}
		clear(p.spill)
		p.updateRecTableLayout()
	}
}

func (p *Panel) updateConnectionCounts() {
	for _, port := range p.portOrder {
		p.SetConnectionCount(port.Name())
	}
}

// PortConnectedOrDisconnected refreshes the ports on either end.
func (p *Panel) PortConnectedOrDisconnected(pc audio.PortConnection) {
	if _, ok := p.ports[pc.Source]; ok {
		p.SetConnectionCount(pc.Source)
	}
	if _, ok := p.ports[pc.Destination]; ok {
		p.SetConnectionCount(pc.Destination)
	}
}

func (p *Panel) addRoutes(routes []*session.Track) {
	tracks := make([]*session.Track, 0, len(routes))
	for _, r := range routes {
		if r.IsTrack() {
			tracks = append(tracks, r)
		}
	}
	session.SortByPresentation(tracks)

	for _, t := range tracks {
		strip := NewTrackStrip(p.session, t, p.ctx, p.opts)

		conns := &signals.ConnectionList{}
		conns.Add(strip.Removed.Connect(p.removeStrip))
		conns.Add(strip.PeakResetRequested.Connect(p.peakResetRequested))
		p.stripConns[strip] = conns

		p.strips = append(p.strips, strip)
	}

	p.sortStrips()
	p.updateRecTableLayout()
	p.updateSelection()
}

func (p *Panel) sortStrips() {
	slices.SortStableFunc(p.strips, compareStrips)
}

func compareStrips(a, b *TrackStrip) int {
	ta, tb := a.Track(), b.Track()
	if ta.Order() != tb.Order() {
		return ta.Order() - tb.Order()
	}
	if ta.ID() < tb.ID() {
		return -1
	}
	if ta.ID() > tb.ID() {
		return 1
	}
	return 0
}

func (p *Panel) dropStrip(strip *TrackStrip) {
	strip.Release()
	if conns, ok := p.stripConns[strip]; ok {
		conns.DropConnections()
		delete(p.stripConns, strip)
	}
}

// removeStrip drops a strip whose track went away, or every strip at once
// while the session is being torn down.
func (p *Panel) removeStrip(strip *TrackStrip) {
	if p.session == nil || p.session.DeletionInProgress() {
		p.clearStrips()
		return
	}

	idx := slices.Index(p.strips, strip)
	if idx < 0 {
		return
	}

	p.strips = slices.Delete(p.strips, idx, idx+1)
	p.dropStrip(strip)
	p.updateRecTableLayout()
	p.updateSelection()
}

func (p *Panel) clearStrips() {
	if len(p.strips) == 0 && len(p.placements) == 0 {
		return
	}

	for _, strip := range p.strips {
		p.dropStrip(strip)
	}

	p.strips = nil
	p.placements = nil
	p.selectedStrip = 0
	p.LayoutChanged.Emit(nil)
}

// PresentationInfoChanged relayouts when a strip was hidden or shown, or when
// an order change actually moved a strip.
func (p *Panel) PresentationInfoChanged(pc session.PresentationChange) {
	if pc.What.Contains(session.PropHidden) {
		p.updateRecTableLayout()
		return
	}

	if !pc.What.Contains(session.PropOrder) {
		return
	}

	sorted := slices.Clone(p.strips)
	slices.SortStableFunc(sorted, compareStrips)
	if slices.Equal(sorted, p.strips) {
		return
	}

	p.strips = sorted
	p.updateRecTableLayout()
}

func (p *Panel) visible(strip *TrackStrip) bool {
	t := strip.Track()
	if t.Hidden() {
		return false
	}

	if len(p.spill) == 0 {
		return true
	}

	return t.ConnectedToAny(p.SpillNames())
}

// updateRecTableLayout places the visible strips row major. The first
// visible strip sets the cell width; the column count follows from the
// available width.
func (p *Panel) updateRecTableLayout() {
	placements := make([]Placement, 0, len(p.strips))
	columns := -1
	resize := false
	col, row := 0, 0

	for _, strip := range p.strips {
		if !p.visible(strip) {
			continue
		}

		if columns < 0 {
			w, _ := strip.Measure()
			box := w + stripPadding
			if p.ctx.boxWidth != box {
				resize = true
			}
			p.ctx.boxWidth = box
			columns = p.ctx.availableWidth / box
			p.layoutCols = columns
		}

		placements = append(placements, Placement{Strip: strip, Column: col, Row: row})

		col++
		if col >= columns {
			col = 0
			row++
		}
	}

	if columns > 0 {
		p.ctx.columns = columns
	}

	p.placements = placements
	p.LayoutChanged.Emit(slices.Clone(placements))

	if resize {
		p.ResizeRequested.Emit(struct{}{})
	}
}

// UpdateLayout forces a relayout.
func (p *Panel) UpdateLayout() {
	p.updateRecTableLayout()
}

// AllocateRecArea records the width of the strip area and relayouts when
// the number of columns that fit changed.
func (p *Panel) AllocateRecArea(width int) {
	p.ctx.availableWidth = width

	if p.ctx.boxWidth > 0 && p.layoutCols == width/p.ctx.boxWidth {
		return
	}

	p.updateRecTableLayout()
}

// RecAreaSizeRequest is the size the strip area would like: room for two
// columns and every placed row.
func (p *Panel) RecAreaSizeRequest() (width, height int) {
	rows, stripHeight := 0, 2
	for _, pl := range p.placements {
		rows = max(rows, pl.Row+1)
		_, stripHeight = pl.Strip.Measure()
	}

	return p.ctx.boxWidth * 2, rows * stripHeight
}

func (p *Panel) Divider() float64 { return p.divider }

// SetDivider moves the split between strips and ports. Values outside 0..1
// are rejected.
func (p *Panel) SetDivider(fraction float64) bool {
	if fraction < 0 || fraction > 1 {
		return false
	}

	if fraction == p.divider {
		return true
	}

	p.divider = fraction
	p.DividerChanged.Emit(fraction)

	return true
}

// RestoreDivider applies a saved divider position, falling back to the
// default for unset or invalid values.
func (p *Panel) RestoreDivider(fraction float64) {
	if fraction <= 0 || !p.SetDivider(fraction) {
		p.SetDivider(DefaultDivider)
	}
}

// ResetAllPeakDisplays clears the held peaks of every strip and port.
func (p *Panel) ResetAllPeakDisplays() {
	for _, strip := range p.strips {
		strip.ResetPeakDisplay()
	}
	for _, port := range p.portOrder {
		port.ClearPeak()
	}
}

func (p *Panel) ResetRoutePeakDisplays(t *session.Track) {
	for _, strip := range p.strips {
		if strip.Track() == t {
			strip.ResetPeakDisplay()
		}
	}
}

func (p *Panel) ResetGroupPeakDisplays(g *session.RouteGroup) {
	if g == nil {
		return
	}

	for _, strip := range p.strips {
		if strip.Track().Group() == g {
			strip.ResetPeakDisplay()
		}
	}
}

func (p *Panel) peakResetRequested(req PeakResetRequest) {
	switch req.Scope {
	case PeakAll:
		p.ResetAllPeakDisplays()
	case PeakGroup:
		if g := req.Strip.Track().Group(); g != nil {
			p.ResetGroupPeakDisplays(g)
			return
		}
		p.ResetRoutePeakDisplays(req.Strip.Track())
	default:
		p.ResetRoutePeakDisplays(req.Strip.Track())
	}
}

// SelectedStrip returns the strip keyboard input goes to, if any.
func (p *Panel) SelectedStrip() *TrackStrip {
	if p.focus != focusStrips || len(p.placements) == 0 {
		return nil
	}

	return p.placements[min(p.selectedStrip, len(p.placements)-1)].Strip
}

func (p *Panel) SelectedPort() *InputPort {
	if p.focus != focusPorts || len(p.portOrder) == 0 {
		return nil
	}

	return p.portOrder[min(p.selectedPort, len(p.portOrder)-1)]
}

func (p *Panel) updateSelection() {
	selStrip := p.SelectedStrip()
	for _, strip := range p.strips {
		strip.SetSelected(strip == selStrip)
	}

	selPort := p.SelectedPort()
	for _, port := range p.portOrder {
		port.SetSelected(port == selPort)
	}
}

// HandleKey moves the selection and forwards everything else to the
// selected widget.
func (p *Panel) HandleKey(ev *tcell.EventKey) bool {
	handled := true

	switch ev.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		if p.focus == focusStrips {
			p.focus = focusPorts
		} else {
			p.focus = focusStrips
		}
	case tcell.KeyLeft:
		p.moveSelection(-1)
	case tcell.KeyRight:
		p.moveSelection(1)
	case tcell.KeyUp:
		p.moveSelection(-max(p.ctx.columns, 1))
	case tcell.KeyDown:
		p.moveSelection(max(p.ctx.columns, 1))
	default:
		handled = false
	}

	if !handled {
		if strip := p.SelectedStrip(); strip != nil {
			handled = strip.HandleKey(ev)
		} else if port := p.SelectedPort(); port != nil {
			handled = port.HandleKey(ev)
		}
	}

	p.updateSelection()

	return handled
}

func (p *Panel) moveSelection(delta int) {
	clamp := func(v, n int) int {
		return min(max(v, 0), max(n-1, 0))
	}

	if p.focus == focusStrips {
		p.selectedStrip = clamp(p.selectedStrip+delta, len(p.placements))
		return
	}

	// the port list is a single column
	if delta > 1 {
		delta = 1
	} else if delta < -1 {
		delta = -1
	}
	p.selectedPort = clamp(p.selectedPort+delta, len(p.portOrder))
}

// Describe is a one line summary for the status bar.
func (p *Panel) Describe() string {
	var b strings.Builder
	b.WriteString(p.title)

	if len(p.spill) > 0 {
		b.WriteString(" | spill: ")
		b.WriteString(strings.Join(p.SpillNames(), ", "))
	}

	return b.String()
}
