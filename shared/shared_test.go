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
package shared

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type logLine struct {
	level   slog.Level
	message string
}

type recordingUI struct {
	lines []logLine
}

func (r *recordingUI) WriteLevelLog(level slog.Level, message string) {
	r.lines = append(r.lines, logLine{level, message})
}

func TestUiLogHandler(t *testing.T) {
	tests := []struct {
		name string
		log  func(l *slog.Logger)
		want string
	}{
		{
			name: "plain",
			log:  func(l *slog.Logger) { l.Info("engine started") },
			want: "engine started",
		},
		{
			name: "attrs",
			log:  func(l *slog.Logger) { l.With("port", "system:capture_1").Info("spill", "count", 2) },
			want: "spill port=system:capture_1 count=2",
		},
		{
			name: "group",
			log:  func(l *slog.Logger) { l.WithGroup("library").Info("download", "id", 42) },
			want: "download library.id=42",
		},
		{
			name: "nested group attr",
			log:  func(l *slog.Logger) { l.Info("meter", slog.Group("peak", "db", -6)) },
			want: "meter peak.db=-6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ui := &recordingUI{}
			tt.log(slog.New(NewUiLogHandler(ui, slog.LevelInfo, nil)))

			if len(ui.lines) != 1 || ui.lines[0].message != tt.want {
				t.Errorf("got %+v, want %q", ui.lines, tt.want)
			}
		})
	}
}

func TestUiLogHandlerLevels(t *testing.T) {
	ui := &recordingUI{}
	var errors []string

	logger := slog.New(NewUiLogHandler(ui, slog.LevelInfo, func(message string) {
		errors = append(errors, message)
	}))

	logger.Debug("hidden")
	logger.Warn("careful")
	logger.Error("broken", "code", 3)

	if len(ui.lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", ui.lines)
	}
	if ui.lines[1].level != slog.LevelError {
		t.Errorf("expected an error line, got %v", ui.lines[1].level)
	}
	if len(errors) != 1 || errors[0] != "broken code=3" {
		t.Errorf("unexpected error callbacks %v", errors)
	}
}

func TestFanoutHandler(t *testing.T) {
	verbose := &recordingUI{}
	quiet := &recordingUI{}

	logger := slog.New(NewFanoutHandler(
		NewUiLogHandler(verbose, slog.LevelDebug, nil),
		NewUiLogHandler(quiet, slog.LevelWarn, nil),
	)).With("session", "band")

	logger.Debug("tick")
	logger.Warn("xrun")

	if len(verbose.lines) != 2 {
		t.Errorf("expected both records in the verbose handler, got %+v", verbose.lines)
	}
	if len(quiet.lines) != 1 || quiet.lines[0].message != "xrun session=band" {
		t.Errorf("expected only the warning in the quiet handler, got %+v", quiet.lines)
	}

	if logger.Enabled(context.Background(), slog.Level(-10)) {
		t.Error("no handler accepts trace records")
	}
}

func TestFileHandler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fox.log")

	handler, closer, err := NewFileHandler(path, slog.LevelInfo)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	slog.New(handler).Info("profile reloaded", "tracks", 4)
	closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if !strings.Contains(string(data), `msg="profile reloaded" tracks=4`) {
		t.Errorf("unexpected log file content %q", data)
	}
}
