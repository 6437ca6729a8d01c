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
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

var (
	stockStderr *os.File
	stockStdout *os.File
)

//------------------------------------------------------------------
// public functions
//------------------------------------------------------------------

// CaptureStdio redirects os.Stdout and os.Stderr into slog while the
// terminal belongs to the UI. The returned function restores both.
func CaptureStdio() (restore func()) {
	stockStdout = os.Stdout
	stockStderr = os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
		return func() {}
	}
	go logProcessor(stdoutR, slog.LevelInfo)

	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		fmt.Fprintln(stockStderr, err)
		stdoutW.Close()
		return func() {}
	}
	go logProcessor(stderrR, slog.LevelError)

	os.Stdout = stdoutW
	os.Stderr = stderrW

	return func() {
		os.Stdout = stockStdout
		os.Stderr = stockStderr
		stdoutW.Close()
		stderrW.Close()
	}
}

// NewFileHandler opens path for appending and returns a text handler
// writing to it.
func NewFileHandler(path string, level slog.Level) (slog.Handler, io.Closer, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}), file, nil
}

//------------------------------------------------------------------
// private functions
//------------------------------------------------------------------

func logProcessor(pipe io.ReadCloser, level slog.Level) {
	defer pipe.Close()

	scanner := bufio.NewScanner(pipe)

	for scanner.Scan() {
		slog.Log(context.Background(), level, scanner.Text())
	}
}
