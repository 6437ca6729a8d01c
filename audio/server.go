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
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"fox-recorder/model"
)

// JackServer controls a jackd process started on behalf of the recorder.
type JackServer struct {
	binary           string
	verbose          bool
	driver           string
	device           string
	sampleRate       int
	samplesPerPeriod int

	cmd *exec.Cmd
}

func NewServer(config *model.Config, profile *model.Profile) *JackServer {
	return &JackServer{
		binary:           config.JackdBinary,
		verbose:          config.VerboseJackServer,
		driver:           profile.AudioServer.Driver,
		device:           profile.AudioServer.Device,
		sampleRate:       profile.AudioServer.SampleRate,
		samplesPerPeriod: profile.AudioServer.FramesPerPeriod,
	}
}

func (server *JackServer) arguments() []string {
	args := make([]string, 0, 6)

	if server.verbose {
		args = append(args, "-v")
	}

	args = append(args, fmt.Sprintf("-d%s", server.driver))

	if server.device != "" {
		args = append(args, fmt.Sprintf("-d%s", server.device))
	}
	if server.sampleRate > 0 {
		args = append(args, fmt.Sprintf("-r%d", server.sampleRate))
	}
	if server.samplesPerPeriod > 0 {
		args = append(args, fmt.Sprintf("-p%d", server.samplesPerPeriod))
	}

	return args
}

// StartServer launches jackd and blocks until its driver reports running,
// the process exits or ctx is done.
func (server *JackServer) StartServer(ctx context.Context) error {
	if server.binary == "" {
		return errors.New("no jackd binary found, set jackd_binary in the config")
	}

	slog.Info("Starting JACK server...")

	server.cmd = exec.Command(server.binary, server.arguments()...)
	stdout, err := server.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("jackd stdout: %w", err)
	}

	if err = server.cmd.Start(); err != nil {
		return fmt.Errorf("start jackd: %w", err)
	}

	ready := make(chan struct{})
	exited := make(chan struct{})

	go func() {
		defer close(exited)

		signalled := false
		scanner := bufio.NewScanner(stdout)

		for scanner.Scan() {
			line := scanner.Text()
			slog.Debug("jackd: " + line)

			if !signalled && strings.Contains(line, "driver is running") {
				signalled = true
				close(ready)
			}
		}
	}()

	select {
	case <-ready:
		slog.Info("JACK server running")
		return nil
	case <-exited:
		return errors.New("jackd exited before its driver started")
	case <-ctx.Done():
		server.StopServer()
		return ctx.Err()
	}
}

func (server *JackServer) StopServer() {
	if server == nil || server.cmd == nil || server.cmd.Process == nil {
		return
	}

	slog.Info("Stopping JACK server")

	if err := server.cmd.Process.Kill(); err != nil {
		slog.Warn("Failed to kill jackd: " + err.Error())
	}
	server.cmd.Wait()
	server.cmd = nil
}
