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
	"testing"
	"time"

	"fox-recorder/model"
)

func TestSimulatedEnginePorts(t *testing.T) {
	e := NewSimulatedEngine(&model.SimulationOptions{
		EnableSimulation: true,
		ChannelCount:     2,
		MidiPortCount:    1,
	})

	running, stopped := 0, 0
	e.Signals().Running.Connect(func(struct{}) { running++ })
	e.Signals().Stopped.Connect(func(struct{}) { stopped++ })

	if err := e.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if running != 1 || !e.Running() {
		t.Fatalf("engine did not report running")
	}

	scopes := e.InputScopes()
	if len(scopes) != 2 || len(e.InputMeters()) != 2 {
		t.Fatalf("expected 2 audio ports, got %d", len(scopes))
	}
	if _, ok := e.EventMonitors()["system:midi_capture_1"]; !ok {
		t.Fatalf("missing midi port: %v", e.EventMonitors())
	}

	scope := scopes["system:capture_1"]
	deadline := time.Now().Add(2 * time.Second)
	for scope.Available() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("simulation produced no samples")
		}
		time.Sleep(10 * time.Millisecond)
	}

	e.Stop()

	if stopped != 1 || e.Running() {
		t.Fatalf("engine did not stop")
	}
	if len(e.InputScopes()) != 0 {
		t.Fatalf("ports survived Stop")
	}
}

func TestSimulatedEngineConnectNotifies(t *testing.T) {
	e := NewSimulatedEngine(&model.SimulationOptions{})

	var got PortConnection
	e.Signals().PortConnectedOrDisconnected.Connect(func(c PortConnection) { got = c })

	e.Disconnect("system:capture_1", "fox:in_1")

	if got.Source != "system:capture_1" || got.Connected {
		t.Fatalf("unexpected notification %+v", got)
	}
}

func TestPeakDb(t *testing.T) {
	if got := PeakDb([]float32{0.5, -1, 0.25}); got != 0 {
		t.Fatalf("expected 0 dB, got %v", got)
	}
	if got := PeakDb(make([]float32, 16)); got != MinDb {
		t.Fatalf("expected floor for silence, got %v", got)
	}
}
