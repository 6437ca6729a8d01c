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
	"fox-recorder/audio"
)

// Update is one piece of engine data pushed into an input port widget. It is
// one of LevelPair, ScopeBuffer, EventActivity or EventLog.
type Update interface {
	update()
}

// LevelPair is the current and held peak level of an audio port, in dB.
type LevelPair struct {
	Level float32
	Peak  float32
}

// ScopeBuffer hands the port's sample ring to the scope, which drains it.
type ScopeBuffer struct {
	Ring *audio.SampleRing
}

// EventActivity is the per channel activity of an event port.
type EventActivity struct {
	Levels [audio.EventSlots]float32
}

// EventLog hands the port's recent event ring to the monitor.
type EventLog struct {
	Ring *audio.EventRing
}

func (LevelPair) update()     {}
func (ScopeBuffer) update()   {}
func (EventActivity) update() {}
func (EventLog) update()      {}
