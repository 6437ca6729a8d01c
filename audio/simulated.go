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
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"fox-recorder/model"

	"gitlab.com/gomidi/midi/v2"
)

const simulationPeriod = 20 * time.Millisecond

// SimulatedEngine produces fake capture ports for running the UI without a
// JACK server.
type SimulatedEngine struct {
	engineData

	options *model.SimulationOptions
	source  *WavSource

	audioPorts []string
	eventPorts []string

	stop chan struct{}
	done sync.WaitGroup
}

func NewSimulatedEngine(options *model.SimulationOptions) *SimulatedEngine {
	return &SimulatedEngine{
		engineData: newEngineData(),
		options:    options,
	}
}

func (e *SimulatedEngine) Start(ctx context.Context) error {
	if e.Running() {
		return nil
	}

	sampleRate := 48000

	if e.options.SourceFile != "" {
		source, err := LoadWavSource(e.options.SourceFile)
		if err != nil {
			return fmt.Errorf("simulation source: %w", err)
		}

		e.source = source
		sampleRate = source.SampleRate
		slog.Info(fmt.Sprintf("Simulating %d ports from %s", e.options.ChannelCount, e.options.SourceFile))
	}

	e.lock.Lock()
	e.sampleRate = sampleRate
	e.lock.Unlock()

	e.audioPorts = e.audioPorts[:0]
	for i := range e.options.ChannelCount {
		name := fmt.Sprintf("system:capture_%d", i+1)
		e.addAudioPort(name)
		e.audioPorts = append(e.audioPorts, name)
	}

	e.eventPorts = e.eventPorts[:0]
	for i := range e.options.MidiPortCount {
		name := fmt.Sprintf("system:midi_capture_%d", i+1)
		e.addEventPort(name)
		e.eventPorts = append(e.eventPorts, name)
	}

	e.stop = make(chan struct{})
	e.setRunning(true)

	e.done.Add(1)
	go e.run(ctx, e.stop)

	e.signals.Running.Emit(struct{}{})

	return nil
}

func (e *SimulatedEngine) run(ctx context.Context, stop chan struct{}) {
	defer e.done.Done()

	blockSize := e.SampleRate() * int(simulationPeriod) / int(time.Second)
	block := make([]float32, blockSize)
	amplitudes := make([]float64, len(e.audioPorts))
	phases := make([]float64, len(e.audioPorts))

	meters := e.InputMeters()
	scopes := e.InputScopes()
	levels := e.EventMeters()
	monitors := e.EventMonitors()

	t := time.NewTicker(simulationPeriod)
	defer t.Stop()

	frozen := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-t.C:
		}

		for i, name := range e.audioPorts {
			if e.source != nil {
				e.source.Fill(i, block)
			} else {
				// random walk of the amplitude around a per-port base level
				if !frozen {
					amplitudes[i] = math.Max(0, math.Min(1, amplitudes[i]+(rand.Float64()-0.5)*0.2))
				}
				step := 2 * math.Pi * float64(110*(i+1)) / float64(e.SampleRate())
				for s := range block {
					phases[i] += step
					block[s] = float32(amplitudes[i]*math.Sin(phases[i]) + (rand.Float64()-0.5)*0.01)
				}
				phases[i] = math.Mod(phases[i], 2*math.Pi)
			}

			level := PeakDb(block)
			meters[name].Set(level, level)
			scopes[name].Write(block)
		}

		if !frozen {
			for _, name := range e.eventPorts {
				if rand.IntN(4) != 0 {
					continue
				}

				msg := randomMessage()
				slot, level := EventSlot(msg)
				levels[name].Hit(slot, level)
				monitors[name].Write(msg)
			}
		}

		if e.options.FreezeMeters {
			frozen = true
		}
	}
}

func randomMessage() midi.Message {
	channel := uint8(rand.IntN(16))
	key := uint8(36 + rand.IntN(48))

	switch rand.IntN(9) {
	case 0, 1, 2:
		return midi.NoteOn(channel, key, uint8(1+rand.IntN(127)))
	case 3, 4:
		return midi.NoteOff(channel, key)
	case 5:
		return midi.ControlChange(channel, uint8(rand.IntN(120)), uint8(rand.IntN(128)))
	case 6:
		return midi.ProgramChange(channel, uint8(rand.IntN(128)))
	case 7:
		return midi.Pitchbend(channel, int16(rand.IntN(16384)-8192))
	default:
		if rand.IntN(2) == 0 {
			return midi.AfterTouch(channel, uint8(rand.IntN(128)))
		}
		return midi.PolyAfterTouch(channel, key, uint8(rand.IntN(128)))
	}
}

func (e *SimulatedEngine) Stop() {
	if !e.Running() {
		return
	}

	close(e.stop)
	e.done.Wait()

	e.clearPorts()
	e.setRunning(false)

	e.signals.Stopped.Emit(struct{}{})
}

func (e *SimulatedEngine) Connect(source, destination string) error {
	e.signals.PortConnectedOrDisconnected.Emit(PortConnection{Source: source, Destination: destination, Connected: true})
	return nil
}

func (e *SimulatedEngine) Disconnect(source, destination string) error {
	e.signals.PortConnectedOrDisconnected.Emit(PortConnection{Source: source, Destination: destination, Connected: false})
	return nil
}
