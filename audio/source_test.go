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
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeStereoWav(t *testing.T, path string, frames int) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: 44100},
		SourceBitDepth: 16,
		Data:           make([]int, frames*2),
	}
	for frame := range frames {
		buf.Data[frame*2] = 1000
		buf.Data[frame*2+1] = -500
	}

	enc := wav.NewEncoder(f, 44100, 16, 2, 1)
	if err := enc.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestWavSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.wav")
	writeStereoWav(t, path, 10)

	source, err := LoadWavSource(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if source.SampleRate != 44100 || source.Channels() != 2 {
		t.Fatalf("unexpected source: %d Hz, %d channels", source.SampleRate, source.Channels())
	}

	left := make([]float32, 15)
	source.Fill(0, left)
	if left[0] <= 0 || left[14] != left[0] {
		t.Errorf("expected the left channel to loop a positive level, got %v", left)
	}

	right := make([]float32, 4)
	source.Fill(1, right)
	if right[0] >= 0 {
		t.Errorf("expected a negative right channel, got %v", right)
	}

	// ports past the channel count reuse channels
	third := make([]float32, 4)
	source.Fill(2, third)
	if third[0] != left[0] {
		t.Errorf("expected port 2 to follow the left channel, got %v", third)
	}
}

func TestWavSourceRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wav")
	os.WriteFile(path, []byte("definitely not a wav file"), 0644)

	if _, err := LoadWavSource(path); err == nil {
		t.Error("expected an error")
	}
}
