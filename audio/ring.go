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
	"sync/atomic"
)

func roundPow2(size int) int {
	n := 1
	for n < size {
		n <<= 1
	}

	return n
}

// SampleRing is a single-producer single-consumer sample buffer feeding a
// waveform scope. The writer never blocks: samples that do not fit are
// dropped and counted.
type SampleRing struct {
	buf   []float32
	mask  uint64
	write atomic.Uint64
	read  atomic.Uint64

	overruns atomic.Uint64
}

func NewSampleRing(size int) *SampleRing {
	size = roundPow2(size)

	return &SampleRing{
		buf:  make([]float32, size),
		mask: uint64(size - 1),
	}
}

func (r *SampleRing) Size() int {
	return len(r.buf)
}

// Write appends samples. Only the realtime thread may call it.
func (r *SampleRing) Write(samples []float32) int {
	w := r.write.Load()
	free := uint64(len(r.buf)) - (w - r.read.Load())

	n := uint64(len(samples))
	if n > free {
		r.overruns.Add(n - free)
		n = free
	}

	for i := uint64(0); i < n; i++ {
		r.buf[(w+i)&r.mask] = samples[i]
	}

	r.write.Store(w + n)

	return int(n)
}

// Available is the number of unread samples.
func (r *SampleRing) Available() int {
	return int(r.write.Load() - r.read.Load())
}

// Read consumes exactly n samples and returns their envelope. When fewer than
// n samples are available nothing is consumed and ok is false.
func (r *SampleRing) Read(n int) (minimum, maximum float32, ok bool) {
	if n <= 0 {
		return 0, 0, false
	}

	rd := r.read.Load()
	if r.write.Load()-rd < uint64(n) {
		return 0, 0, false
	}

	minimum = r.buf[rd&r.mask]
	maximum = minimum

	for i := uint64(1); i < uint64(n); i++ {
		s := r.buf[(rd+i)&r.mask]
		minimum = min(minimum, s)
		maximum = max(maximum, s)
	}

	r.read.Store(rd + uint64(n))

	return minimum, maximum, true
}

// Overruns is the number of samples dropped because the reader fell behind.
func (r *SampleRing) Overruns() uint64 {
	return r.overruns.Load()
}

// Event is one raw MIDI message as kept by an EventRing. Sysex payloads are
// truncated to their first bytes, only the marker matters for display.
type Event struct {
	Data [3]byte
	Size uint8
}

func (e Event) Bytes() []byte {
	return e.Data[:e.Size]
}

func (e Event) Empty() bool {
	return e.Size == 0
}

func packEvent(data []byte) uint32 {
	n := min(len(data), 3)
	packed := uint32(n) << 24

	for i := 0; i < n; i++ {
		packed |= uint32(data[i]) << (8 * i)
	}

	return packed
}

func unpackEvent(packed uint32) Event {
	ev := Event{Size: uint8(packed >> 24)}
	for i := range ev.Data {
		ev.Data[i] = byte(packed >> (8 * i))
	}

	return ev
}

// EventRing keeps the most recent MIDI events of one port. The writer
// overwrites the oldest entries; the reader only copies when something new
// arrived since its last read.
type EventRing struct {
	events []atomic.Uint32
	mask   uint64
	write  atomic.Uint64

	lastRead uint64
}

func NewEventRing(size int) *EventRing {
	size = roundPow2(size)

	return &EventRing{
		events: make([]atomic.Uint32, size),
		mask:   uint64(size - 1),
	}
}

// Write stores one event. Only the realtime thread may call it.
func (r *EventRing) Write(data []byte) {
	if len(data) == 0 {
		return
	}

	w := r.write.Load()
	r.events[w&r.mask].Store(packEvent(data))
	r.write.Store(w + 1)
}

// Read fills dst newest first and zeroes the unused tail. It returns false,
// leaving dst untouched, when no event arrived since the previous call.
func (r *EventRing) Read(dst []Event) bool {
	w := r.write.Load()
	if w == r.lastRead {
		return false
	}
	r.lastRead = w

	count := min(uint64(len(dst)), w, uint64(len(r.events)))

	for i := range dst {
		if uint64(i) < count {
			dst[i] = unpackEvent(r.events[(w-1-uint64(i))&r.mask].Load())
		} else {
			dst[i] = Event{}
		}
	}

	return true
}
