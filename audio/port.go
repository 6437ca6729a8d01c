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
	"fmt"

	"github.com/xthexder/go-jack"
)

// Port is one of our registered JACK input ports together with the physical
// capture port feeding it.
type Port struct {
	kind     PortKind
	myName   string
	jackName string
	jackPort *jack.Port

	// audio ports
	meter   *PortMeter
	scope   *SampleRing
	scratch []float32

	// midi ports
	levels  *EventLevels
	monitor *EventRing
}

func newPort(kind PortKind, index int, jackName string) *Port {
	prefix := "in"
	if kind == EventPort {
		prefix = "midi_in"
	}

	return &Port{
		kind:     kind,
		myName:   fmt.Sprintf("%s_%d", prefix, index),
		jackName: jackName,
	}
}

func (port *Port) Name() string {
	return port.jackName
}

// process reads one cycle of data from the port. Runs on the JACK thread.
func (port *Port) process(nframes uint32) {
	if port.jackPort == nil {
		return
	}

	if port.kind == EventPort {
		for _, event := range port.jackPort.GetMidiEvents(nframes) {
			slot, level := EventSlot(event.Buffer)
			port.levels.Hit(slot, level)
			port.monitor.Write(event.Buffer)
		}

		return
	}

	samples := port.jackPort.GetBuffer(nframes)

	if cap(port.scratch) < len(samples) {
		port.scratch = make([]float32, len(samples))
	}
	port.scratch = port.scratch[:len(samples)]

	for i, sample := range samples {
		port.scratch[i] = float32(sample)
	}

	level := PeakDb(port.scratch)
	port.meter.Set(level, level)
	port.scope.Write(port.scratch)
}
