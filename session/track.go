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
package session

import (
	"slices"

	"fox-recorder/audio"
	"fox-recorder/signals"
)

type Kind int8

const (
	AudioTrack Kind = iota
	MidiTrack
	Bus
)

// Property is a bit set naming what changed on a track.
type Property uint32

const (
	PropName Property = 1 << iota
	PropNumber
	PropHidden
	PropOrder
	PropActive
	PropRecEnable
	PropMute
	PropMonitoring
	PropGroup
	PropColor
	PropInputs
)

func (p Property) Contains(other Property) bool {
	return p&other != 0
}

// Track is one route of the session. Tracks are owned by the session and
// must only be mutated on the UI thread.
type Track struct {
	session *Session

	id           uint64
	name         string
	number       int
	order        int
	hidden       bool
	active       bool
	kind         Kind
	recEnabled   bool
	muted        bool
	monitorInput bool
	monitorDisk  bool
	group        *RouteGroup
	color        int
	inputs       []string

	meter *audio.PortMeter

	PropertyChanged *signals.Signal[Property]
	DropReferences  *signals.Signal[struct{}]
}

type TrackOptions struct {
	Name   string
	Kind   Kind
	Order  int
	Hidden bool
	Active bool
	Color  int
	Inputs []string
}

func newTrack(id uint64, opts TrackOptions) *Track {
	return &Track{
		id:              id,
		name:            opts.Name,
		order:           opts.Order,
		hidden:          opts.Hidden,
		active:          opts.Active,
		kind:            opts.Kind,
		color:           opts.Color,
		inputs:          slices.Clone(opts.Inputs),
		meter:           audio.NewPortMeter(),
		PropertyChanged: signals.New[Property](),
		DropReferences:  signals.New[struct{}](),
	}
}

func (t *Track) ID() uint64 { return t.id }
func (t *Track) Name() string { return t.name }
func (t *Track) Number() int { return t.number }
func (t *Track) Order() int { return t.order }
func (t *Track) Hidden() bool { return t.hidden }
func (t *Track) Active() bool { return t.active }
func (t *Track) Kind() Kind { return t.kind }
func (t *Track) IsTrack() bool { return t.kind != Bus }
func (t *Track) RecEnabled() bool { return t.recEnabled }
func (t *Track) Muted() bool { return t.muted }
func (t *Track) Color() int { return t.color }
func (t *Track) Group() *RouteGroup {
	return t.group
}

func (t *Track) MonitorInput() bool { return t.monitorInput }
func (t *Track) MonitorDisk() bool { return t.monitorDisk }

// Meter is the combined level of the track's inputs.
func (t *Track) Meter() *audio.PortMeter {
	return t.meter
}

func (t *Track) Inputs() []string {
	return slices.Clone(t.inputs)
}

// ConnectedTo reports whether the track records from the given port.
func (t *Track) ConnectedTo(port string) bool {
	return slices.Contains(t.inputs, port)
}

// ConnectedToAny reports whether the track records from any of the ports.
func (t *Track) ConnectedToAny(ports []string) bool {
	return slices.ContainsFunc(ports, t.ConnectedTo)
}

func (t *Track) changed(what Property) {
	t.PropertyChanged.Emit(what)

	if t.session != nil {
		t.session.trackChanged(t, what)
	}
}

func (t *Track) SetName(name string) {
	if t.name == name {
		return
	}
	t.name = name
	t.changed(PropName)
}

func (t *Track) SetHidden(hidden bool) {
	if t.hidden == hidden {
		return
	}
	t.hidden = hidden
	t.changed(PropHidden)
}

func (t *Track) SetOrder(order int) {
	if t.order == order {
		return
	}
	t.order = order
	t.changed(PropOrder)
}

func (t *Track) SetActive(active bool) {
	if t.active == active {
		return
	}
	t.active = active
	t.changed(PropActive)
}

func (t *Track) SetRecEnabled(enabled bool) {
	if t.recEnabled == enabled || (enabled && !t.active) {
		return
	}
	t.recEnabled = enabled
	t.changed(PropRecEnable)
}

func (t *Track) SetMuted(muted bool) {
	if t.muted == muted {
		return
	}
	t.muted = muted
	t.changed(PropMute)
}

func (t *Track) SetMonitorInput(on bool) {
	if t.monitorInput == on {
		return
	}
	t.monitorInput = on
	t.changed(PropMonitoring)
}

func (t *Track) SetMonitorDisk(on bool) {
	if t.monitorDisk == on {
		return
	}
	t.monitorDisk = on
	t.changed(PropMonitoring)
}

func (t *Track) SetColor(color int) {
	if t.color == color {
		return
	}
	t.color = color
	t.changed(PropColor)
}

func (t *Track) SetInputs(inputs []string) {
	if slices.Equal(t.inputs, inputs) {
		return
	}
	t.inputs = slices.Clone(inputs)
	t.changed(PropInputs)
}

func (t *Track) setNumber(number int) {
	if t.number == number {
		return
	}
	t.number = number
	t.PropertyChanged.Emit(PropNumber)
}

// updateMeter folds the levels of the track's inputs into its meter.
func (t *Track) updateMeter(meters map[string]*audio.PortMeter) {
	level := float32(audio.MinDb)
	found := false

	for _, input := range t.inputs {
		if m, ok := meters[input]; ok {
			level = max(level, m.Level())
			found = true
		}
	}

	if !found {
		return
	}

	t.meter.Set(level, level)
}

// RouteGroup is a named set of tracks that share peak resets and selection.
type RouteGroup struct {
	name   string
	tracks []*Track
}

func (g *RouteGroup) Name() string {
	return g.name
}

func (g *RouteGroup) Tracks() []*Track {
	return slices.Clone(g.tracks)
}

func (g *RouteGroup) add(t *Track) {
	if !slices.Contains(g.tracks, t) {
		g.tracks = append(g.tracks, t)
	}
}

func (g *RouteGroup) remove(t *Track) {
	g.tracks = slices.DeleteFunc(g.tracks, func(o *Track) bool { return o == t })
}
