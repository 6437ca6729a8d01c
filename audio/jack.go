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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"fox-recorder/model"

	"github.com/xthexder/go-jack"
)

// JackEngine meters every physical capture port of a JACK server.
type JackEngine struct {
	engineData

	clientName    string
	capturePrefix string
	autoStart     bool

	server *JackServer
	client *jack.Client
	ports  []*Port

	xruns atomic.Uint64
}

func NewJackEngine(config *model.Config, profile *model.Profile) *JackEngine {
	return &JackEngine{
		engineData:    newEngineData(),
		clientName:    config.JackClientName,
		capturePrefix: config.HardwarePortConnectionPrefix,
		autoStart:     profile.AudioServer.AutoStart,
		server:        NewServer(config, profile),
	}
}

func (e *JackEngine) Start(ctx context.Context) error {
	if e.Running() {
		return nil
	}

	if e.autoStart {
		if err := e.server.StartServer(ctx); err != nil {
			return err
		}
	}

	jack.SetErrorFunction(func(message string) { slog.Error("JACK: " + message) })
	jack.SetInfoFunction(func(message string) { slog.Debug("JACK: " + message) })

	slog.Info("Connecting to JACK server")

	client, status := jack.ClientOpen(e.clientName, jack.NoStartServer)
	if status != 0 {
		return fmt.Errorf("open jack client: %s", jack.StrError(status))
	}
	e.client = client

	e.lock.Lock()
	e.sampleRate = int(client.GetSampleRate())
	e.lock.Unlock()

	e.registerPorts(jack.DEFAULT_AUDIO_TYPE, AudioPort)
	e.registerPorts(jack.DEFAULT_MIDI_TYPE, EventPort)

	if code := client.SetProcessCallback(e.process); code != 0 {
		return fmt.Errorf("set process callback: %s", jack.StrError(code))
	}

	client.SetXRunCallback(e.xrun)
	client.SetPortConnectCallback(e.portConnect)
	client.OnShutdown(e.shutdown)

	if code := client.Activate(); code != 0 {
		return fmt.Errorf("activate client: %s", jack.StrError(code))
	}

	for _, port := range e.ports {
		own := fmt.Sprintf("%s:%s", e.clientName, port.myName)
		if code := client.Connect(port.jackName, own); code != 0 {
			slog.Warn(fmt.Sprintf("Failed to connect %s to %s: %s", port.jackName, own, jack.StrError(code)))
			continue
		}
		slog.Debug(fmt.Sprintf("Connected port %s to port %s", port.jackName, own))
	}

	e.setRunning(true)
	e.signals.Running.Emit(struct{}{})

	return nil
}

func (e *JackEngine) registerPorts(portType string, kind PortKind) {
	physical := e.client.GetPorts("", portType, jack.PortIsOutput|jack.PortIsPhysical)

	index := 0
	for _, name := range physical {
		if kind == AudioPort && e.capturePrefix != "" && !strings.HasPrefix(name, e.capturePrefix) {
			continue
		}

		index++
		port := newPort(kind, index, name)
		port.jackPort = e.client.PortRegister(port.myName, portType, jack.PortIsInput, 0)

		if port.jackPort == nil {
			slog.Warn("Failed to register port " + port.myName)
			continue
		}

		if kind == AudioPort {
			port.meter, port.scope = e.addAudioPort(name)
		} else {
			port.levels, port.monitor = e.addEventPort(name)
		}

		slog.Debug(fmt.Sprintf("Registered %s port %s for %s", kind, port.myName, name))
		e.ports = append(e.ports, port)
	}
}

func (e *JackEngine) process(nframes uint32) int {
	for _, port := range e.ports {
		port.process(nframes)
	}

	return 0
}

func (e *JackEngine) xrun() int {
	e.signals.Xrun.Emit(e.xruns.Add(1))

	return 0
}

func (e *JackEngine) portConnect(a, b jack.PortId, connected bool) {
	pa := e.client.GetPortById(a)
	pb := e.client.GetPortById(b)

	if pa == nil || pb == nil {
		return
	}

	e.signals.PortConnectedOrDisconnected.Emit(PortConnection{
		Source:      pa.GetName(),
		Destination: pb.GetName(),
		Connected:   connected,
	})
}

func (e *JackEngine) shutdown() {
	slog.Warn("JACK connection shutting down")

	e.client = nil
	e.ports = nil
	e.clearPorts()
	e.setRunning(false)

	e.signals.Halted.Emit("JACK server shut down")
}

func (e *JackEngine) Stop() {
	if !e.Running() {
		return
	}

	if e.client != nil {
		e.client.Close()
		e.client = nil
	}

	e.ports = nil
	e.clearPorts()
	e.setRunning(false)
	e.server.StopServer()

	e.signals.Stopped.Emit(struct{}{})
}

func (e *JackEngine) Connect(source, destination string) error {
	if e.client == nil {
		return errors.New("jack client not running")
	}

	if code := e.client.Connect(source, destination); code != 0 {
		return fmt.Errorf("connect %s to %s: %s", source, destination, jack.StrError(code))
	}

	return nil
}

func (e *JackEngine) Disconnect(source, destination string) error {
	if e.client == nil {
		return errors.New("jack client not running")
	}

	if code := e.client.Disconnect(source, destination); code != 0 {
		return fmt.Errorf("disconnect %s from %s: %s", source, destination, jack.StrError(code))
	}

	return nil
}

// Xruns is the number of xruns reported since Start.
func (e *JackEngine) Xruns() uint64 {
	return e.xruns.Load()
}
