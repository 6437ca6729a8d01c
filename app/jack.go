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

// newEngine picks the simulated engine when simulation is enabled, JACK
// otherwise.
func newEngine(config *model.Config, profile *model.Profile) audio.Engine {
	if config.SimulationOptions != nil && config.SimulationOptions.EnableSimulation {
		return newSimulatedEngine(config.SimulationOptions)
	}

	return newJackEngine(config, profile)
}

func newJackEngine(config *model.Config, profile *model.Profile) *audio.JackEngine {
	server := profile.AudioServer

	if server.AutoStart {
		if config.JackdBinary == "" {
			slog.Warn("auto_start is set but no jackd binary was found")
		} else {
			slog.Info(fmt.Sprintf("JACK server: %s, driver %s, %d Hz, %d frames per period", config.JackdBinary, server.Driver, server.SampleRate, server.FramesPerPeriod))
		}
	}

	return audio.NewJackEngine(config, profile)
}
