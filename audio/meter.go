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
	"math"
	"sync/atomic"
)

const (
	// MinDb is the floor reported for silence.
	MinDb = -200.0

	// EventSlots is 16 MIDI channels plus one slot for system messages.
	EventSlots = 17

	// SystemSlot collects every non-channel event.
	SystemSlot = 16
)

type atomicFloat struct {
	bits atomic.Uint32
}

func (f *atomicFloat) Load() float32 {
	return math.Float32frombits(f.bits.Load())
}

func (f *atomicFloat) Store(v float32) {
	f.bits.Store(math.Float32bits(v))
}

// raise stores v if it is above the current value. Safe against a concurrent
// reader resetting the value.
func (f *atomicFloat) raise(v float32) {
	for {
		old := f.bits.Load()
		if math.Float32frombits(old) >= v {
			return
		}
		if f.bits.CompareAndSwap(old, math.Float32bits(v)) {
			return
		}
	}
}

// PortMeter holds the most recent level and the held peak of one port, in dB.
// The realtime thread writes, the UI thread reads.
type PortMeter struct {
	level atomicFloat
	peak  atomicFloat
}

func NewPortMeter() *PortMeter {
	m := &PortMeter{}
	m.level.Store(MinDb)
	m.peak.Store(MinDb)

	return m
}

func (m *PortMeter) Set(level, peak float32) {
	m.level.Store(level)
	m.peak.raise(peak)
}

func (m *PortMeter) Level() float32 {
	return m.level.Load()
}

func (m *PortMeter) Peak() float32 {
	return m.peak.Load()
}

// ResetMax drops the held peak back to the current level.
func (m *PortMeter) ResetMax() {
	m.peak.Store(m.level.Load())
}

// EventLevels tracks recent activity per MIDI channel plus the system slot,
// each in the range 0..1.
type EventLevels struct {
	slots [EventSlots]atomicFloat
}

func NewEventLevels() *EventLevels {
	return &EventLevels{}
}

// Hit records activity on a slot.
func (l *EventLevels) Hit(slot int, value float32) {
	if slot < 0 || slot >= EventSlots {
		return
	}

	l.slots[slot].raise(min(value, 1))
}

// Snapshot returns the current activity and decays every slot by the given
// factor for the next read.
func (l *EventLevels) Snapshot(decay float32) [EventSlots]float32 {
	var out [EventSlots]float32

	for i := range l.slots {
		slot := &l.slots[i]
		old := slot.bits.Load()
		value := math.Float32frombits(old)
		out[i] = value

		next := value * decay
		if next < 0.01 {
			next = 0
		}

		// a failed swap means the writer raised the slot in between, keep that
		slot.bits.CompareAndSwap(old, math.Float32bits(next))
	}

	return out
}

// EventSlot maps a raw MIDI message to its activity slot and level.
func EventSlot(data []byte) (int, float32) {
	if len(data) == 0 {
		return -1, 0
	}

	status := data[0]
	if status < 0x80 {
		return -1, 0
	}
	if status >= 0xF0 {
		return SystemSlot, 1
	}

	channel := int(status & 0x0F)

	if status&0xF0 == 0x90 && len(data) > 2 && data[2] > 0 {
		return channel, max(float32(data[2])/127.0, 0.25)
	}

	return channel, 0.5
}
