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
	"time"

	"fox-recorder/audio"
	"fox-recorder/model"
	"fox-recorder/util"
)

// Options controls how the panel's widgets draw.
type Options struct {
	ScopeWidth  int
	ScopeRows   int
	Seconds     float64
	LogScale    bool
	ShowClip    bool
	ClipLevel   float64 // amplitude
	PeakHold    time.Duration
	EventDecay  float32
	MonitorSize int
}

func DefaultOptions() Options {
	return Options{
		ScopeWidth:  36,
		ScopeRows:   2,
		Seconds:     audio.ScopeSeconds,
		ShowClip:    true,
		ClipLevel:   util.DbToAmplitude(-0.0933967),
		PeakHold:    750 * time.Millisecond,
		EventDecay:  0.9,
		MonitorSize: 32,
	}
}

// OptionsFromConfig applies the recorder section of the config on top of the
// defaults.
func OptionsFromConfig(cfg *model.RecorderOptions) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}

	if cfg.ScopeWidth > 0 {
		opts.ScopeWidth = cfg.ScopeWidth
	}
	if cfg.WaveformClipLevel != 0 {
		opts.ClipLevel = util.DbToAmplitude(cfg.WaveformClipLevel)
	}
	if cfg.PeakHoldMs > 0 {
		opts.PeakHold = time.Duration(cfg.PeakHoldMs) * time.Millisecond
	}

	opts.ShowClip = cfg.ShowWaveformClipping
	opts.LogScale = cfg.LogarithmicWaveform

	return opts
}
