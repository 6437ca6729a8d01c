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
package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fox-recorder/audio"
	"fox-recorder/display"
	"fox-recorder/model"
)

func TestRunNeedsProfile(t *testing.T) {
	if err := Run(&model.CommandLineArgs{}); !errors.Is(err, ErrNoProfile) {
		t.Errorf("expected ErrNoProfile, got %v", err)
	}
}

func TestExistingParent(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a")
	os.Mkdir(nested, 0755)

	tests := []struct {
		name string
		path string
		want string
	}{
		{"existing", nested, nested},
		{"missing leaf", filepath.Join(nested, "b", "c"), nested},
		{"relative", "does-not-exist/below", "."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existingParent(tt.path); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNewEngine(t *testing.T) {
	config := &model.Config{
		JackClientName: "fox",
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: true,
			ChannelCount:     1000,
			MidiPortCount:    -2,
		},
	}

	engine := newEngine(config, &model.Profile{})
	if _, ok := engine.(*audio.SimulatedEngine); !ok {
		t.Fatalf("expected a simulated engine, got %T", engine)
	}
	if config.SimulationOptions.ChannelCount != maxSimulatedPorts || config.SimulationOptions.MidiPortCount != 0 {
		t.Errorf("expected clamped options, got %+v", config.SimulationOptions)
	}

	config.SimulationOptions.EnableSimulation = false
	if _, ok := newEngine(config, &model.Profile{}).(*audio.JackEngine); !ok {
		t.Error("expected a jack engine")
	}
}

func TestNewUI(t *testing.T) {
	config := &model.Config{OutputType: model.OutputJSON, Recorder: &model.RecorderOptions{}}
	if _, ok := newUI(config).(*display.JsonUI); !ok {
		t.Error("expected the json ui")
	}

	config.OutputType = model.OutputTUI
	if _, ok := newUI(config).(*display.Tui); !ok {
		t.Error("expected the tui")
	}
}

func TestConnectEngineStatus(t *testing.T) {
	ui := &statusRecorder{}
	engine := audio.NewSimulatedEngine(&model.SimulationOptions{ChannelCount: 1})

	connectEngineStatus(ui, engine)

	engine.Signals().Xrun.Emit(4)
	engine.Signals().Halted.Emit("gone")

	if ui.xruns != 4 {
		t.Errorf("expected 4 xruns, got %d", ui.xruns)
	}
	if ui.status != display.StatusHalted {
		t.Errorf("expected halted, got %s", ui.status)
	}
}

// statusRecorder is a UI that runs queued work immediately.
type statusRecorder struct {
	display.JsonUI

	status     display.Status
	sampleRate int
	xruns      uint64
}

func (r *statusRecorder) Queue(fn func()) { fn() }
func (r *statusRecorder) SetEngineStatus(s display.Status) { r.status = s }
func (r *statusRecorder) SetSampleRate(rate int) { r.sampleRate = rate }
func (r *statusRecorder) SetXrunCount(count uint64) { r.xruns = count }
