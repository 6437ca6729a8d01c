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
package audio

import (
	"context"
	"maps"
	"sync"

	"fox-recorder/signals"
)

type PortKind int8

const (
	AudioPort PortKind = iota
	EventPort
)

func (k PortKind) String() string {
	if k == EventPort {
		return "midi"
	}

	return "audio"
}

// PortConnection describes a connect or disconnect between two ports.
type PortConnection struct {
	Source      string
	Destination string
	Connected   bool
}

type EngineSignals struct {
	Running *signals.Signal[struct{}]
	Stopped *signals.Signal[struct{}]
	Halted  *signals.Signal[string]
	Xrun    *signals.Signal[uint64]

	PortConnectedOrDisconnected *signals.Signal[PortConnection]
}

func NewEngineSignals() *EngineSignals {
	return &EngineSignals{
		Running:                     signals.New[struct{}](),
		Stopped:                     signals.New[struct{}](),
		Halted:                      signals.New[string](),
		Xrun:                        signals.New[uint64](),
		PortConnectedOrDisconnected: signals.New[PortConnection](),
	}
}

// Engine is the audio side of the recorder: it owns the input ports and
// publishes their meter, scope and event data keyed by physical port name.
type Engine interface {
	Start(ctx context.Context) error
	Stop()
	Running() bool
	SampleRate() int

	InputMeters() map[string]*PortMeter
	InputScopes() map[string]*SampleRing
	EventMeters() map[string]*EventLevels
	EventMonitors() map[string]*EventRing

	Connect(source, destination string) error
	Disconnect(source, destination string) error

	Signals() *EngineSignals
}

// ScopeSeconds is the window one scope width covers.
const ScopeSeconds = 5

// engineData is the shared port bookkeeping of every engine implementation.
type engineData struct {
	lock sync.RWMutex

	running    bool
	sampleRate int

	meters   map[string]*PortMeter
	scopes   map[string]*SampleRing
	levels   map[string]*EventLevels
	monitors map[string]*EventRing

	signals *EngineSignals
}

func newEngineData() engineData {
	return engineData{
		meters:   make(map[string]*PortMeter),
		scopes:   make(map[string]*SampleRing),
		levels:   make(map[string]*EventLevels),
		monitors: make(map[string]*EventRing),
		signals:  NewEngineSignals(),
	}
}

func (d *engineData) addAudioPort(name string) (*PortMeter, *SampleRing) {
	d.lock.Lock()
	defer d.lock.Unlock()

	meter := NewPortMeter()
	// one second of headroom so a slow UI tick never starves the scope
	scope := NewSampleRing(max(d.sampleRate, 4096))

	d.meters[name] = meter
	d.scopes[name] = scope

	return meter, scope
}

func (d *engineData) addEventPort(name string) (*EventLevels, *EventRing) {
	d.lock.Lock()
	defer d.lock.Unlock()

	levels := NewEventLevels()
	monitor := NewEventRing(64)

	d.levels[name] = levels
	d.monitors[name] = monitor

	return levels, monitor
}

func (d *engineData) clearPorts() {
	d.lock.Lock()
	defer d.lock.Unlock()

	clear(d.meters)
	clear(d.scopes)
	clear(d.levels)
	clear(d.monitors)
}

func (d *engineData) setRunning(running bool) {
	d.lock.Lock()
	d.running = running
	d.lock.Unlock()
}

func (d *engineData) Running() bool {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.running
}

func (d *engineData) SampleRate() int {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return d.sampleRate
}

func (d *engineData) InputMeters() map[string]*PortMeter {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return maps.Clone(d.meters)
}

func (d *engineData) InputScopes() map[string]*SampleRing {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return maps.Clone(d.scopes)
}

func (d *engineData) EventMeters() map[string]*EventLevels {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return maps.Clone(d.levels)
}

func (d *engineData) EventMonitors() map[string]*EventRing {
	d.lock.RLock()
	defer d.lock.RUnlock()

	return maps.Clone(d.monitors)
}

func (d *engineData) Signals() *EngineSignals {
	return d.signals
}
