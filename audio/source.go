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
	"errors"
	"fmt"
	"os"

	"github.com/go-audio/transforms"
	"github.com/go-audio/wav"
)

// WavSource loops the channels of a wav file as simulated capture signals.
type WavSource struct {
	SampleRate int
	channels   [][]float32
	positions  map[int]int
}

func LoadWavSource(path string) (*WavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	floatBuf := buf.AsFloatBuffer()
	transforms.NormalizeMax(floatBuf)

	channelCount := floatBuf.Format.NumChannels
	if channelCount < 1 || len(floatBuf.Data) < channelCount {
		return nil, errors.New("wav file contains no audio")
	}

	frames := len(floatBuf.Data) / channelCount
	source := &WavSource{
		SampleRate: floatBuf.Format.SampleRate,
		channels:   make([][]float32, channelCount),
		positions:  make(map[int]int),
	}

	for ch := range channelCount {
		source.channels[ch] = make([]float32, frames)
		for frame := range frames {
			source.channels[ch][frame] = float32(floatBuf.Data[frame*channelCount+ch])
		}
	}

	return source, nil
}

func (s *WavSource) Channels() int {
	return len(s.channels)
}

// Fill writes the next samples of a channel into dst, wrapping at the end of
// the file. Ports beyond the file's channel count reuse channels round robin.
func (s *WavSource) Fill(port int, dst []float32) {
	ch := port % len(s.channels)
	data := s.channels[ch]
	pos := s.positions[port]

	for i := range dst {
		dst[i] = data[pos]
		pos++
		if pos >= len(data) {
			pos = 0
		}
	}

	s.positions[port] = pos
}
