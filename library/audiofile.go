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
package library

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-audio/wav"
)

// minimumFileSize separates real audio from error pages saved by a failed
// download.
const minimumFileSize = 256

// AudioInfo is what the tag database remembers about a wav file.
type AudioInfo struct {
	SampleRate int     `yaml:"sample_rate"`
	Channels   int     `yaml:"channels"`
	BitDepth   int     `yaml:"bit_depth"`
	Duration   float64 `yaml:"duration"`
}

// CheckAudioFile reports whether path holds a usable download. Files too
// small to be audio are deleted.
func CheckAudioFile(path string) bool {
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return false
	}

	if stat.Size() > minimumFileSize {
		return true
	}

	slog.Warn(fmt.Sprintf("Removing %s, %d bytes is too small for audio", path, stat.Size()))
	os.Remove(path)

	return false
}

// InspectAudioFile reads the header of a wav file.
func InspectAudioFile(path string) (*AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}

	duration, err := decoder.Duration()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &AudioInfo{
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
		Duration:   duration.Seconds(),
	}, nil
}
