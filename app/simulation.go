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
	"fmt"
	"log/slog"

	"fox-recorder/audio"
	"fox-recorder/model"
)

const maxSimulatedPorts = 256

func newSimulatedEngine(options *model.SimulationOptions) *audio.SimulatedEngine {
	if options.ChannelCount < 0 {
		options.ChannelCount = 0
	}
	if options.ChannelCount > maxSimulatedPorts {
		slog.Warn(fmt.Sprintf("Limiting simulation to %d audio ports", maxSimulatedPorts))
		options.ChannelCount = maxSimulatedPorts
	}
	if options.MidiPortCount < 0 {
		options.MidiPortCount = 0
	}

	source := "generated signals"
	if options.SourceFile != "" {
		source = options.SourceFile
	}

	slog.Info(fmt.Sprintf("Simulating %d audio and %d midi ports from %s", options.ChannelCount, options.MidiPortCount, source))
	if options.FreezeMeters {
		slog.Info("Simulated meters are frozen")
	}

	return audio.NewSimulatedEngine(options)
}
