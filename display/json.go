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
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fox-recorder/reaper"
	"fox-recorder/recorder"
)

const (
	jsonReportInterval = 1 * time.Second
	jsonQueueSize      = 256
)

//
// types
//

// JsonUI prints the recorder state as JSON lines, optionally mirroring every
// line to websocket clients.
type JsonUI struct {
	output      io.Writer
	outputLock  sync.Mutex
	broadcaster *Broadcaster

	tickInterval   time.Duration
	reportInterval time.Duration

	panel *recorder.Panel

	work            chan func()
	stop            chan struct{}
	shutdownChannel chan struct{}
	stopOnce        sync.Once
	started         bool

	statusEngine      Status
	statusSampleRate  int
	statusSessionName string
	statusErrorCount  int
	statusXrunCount   uint64

	metricDiskUsedPct int
}

//
// constructor
//

func NewJsonUI(output io.Writer, tickInterval time.Duration, broadcaster *Broadcaster) *JsonUI {
	return &JsonUI{
		output:          output,
		broadcaster:     broadcaster,
		tickInterval:    tickInterval,
		reportInterval:  jsonReportInterval,
		work:            make(chan func(), jsonQueueSize),
		stop:            make(chan struct{}),
		shutdownChannel: make(chan struct{}),
		statusEngine:    StatusStarting,
	}
}

func (j *JsonUI) Initialize(panel *recorder.Panel) {
	j.panel = panel
	panel.SetMapped(true)
}

func (j *JsonUI) Start() {
	j.started = true
	reaper.Register("json ui")

	go j.excecuteLoop()
}

func (j *JsonUI) excecuteLoop() {
	defer reaper.Done("json ui")
	defer close(j.shutdownChannel)

	slog.Debug("JSON loop started")

	tick := time.NewTicker(j.tickInterval)
	defer tick.Stop()

	report := time.NewTicker(j.reportInterval)
	defer report.Stop()

	for {
		select {
		case fn := <-j.work:
			fn()

		case <-tick.C:
			if j.panel != nil {
				j.panel.Tick()
			}

		case <-report.C:
			j.report()

		case <-j.stop:
			j.drain()
			j.report()
			slog.Debug("JSON UI shut down")
			return
		}
	}
}

// drain runs whatever was queued before the stop request.
func (j *JsonUI) drain() {
	for {
		select {
		case fn := <-j.work:
			fn()
		default:
			return
		}
	}
}

func (j *JsonUI) report() {
	j.printJson(messageStatus, j.getStatus())
	if j.panel != nil {
		j.printJson(messageLevels, j.getLevels())
	}
}

func (j *JsonUI) Shutdown() {
	slog.Debug("Shutting down JSON UI")
	j.stopOnce.Do(func() { close(j.stop) })

	if !j.started {
		return
	}

	slog.Debug("Waiting for JSON UI to shut down")
	j.WaitForShutdown()
}

func (j *JsonUI) IsShutdown() bool {
	select {
	case <-j.shutdownChannel:
		return true
	default:
		return false
	}
}

func (j *JsonUI) WaitForShutdown() {
	<-j.shutdownChannel
}

// Queue runs fn on the JSON loop. Work queued after shutdown is dropped.
func (j *JsonUI) Queue(fn func()) {
	select {
	case j.work <- fn:
	case <-j.shutdownChannel:
	}
}

func (j *JsonUI) SetEngineStatus(status Status) {
	j.statusEngine = status
}

func (j *JsonUI) SetSampleRate(rate int) {
	j.statusSampleRate = rate
}

func (j *JsonUI) SetSessionName(value string) {
	j.statusSessionName = value
}

func (j *JsonUI) SetXrunCount(count uint64) {
	j.statusXrunCount = count
}

func (j *JsonUI) SetDiskUsage(percent int) {
	j.metricDiskUsedPct = percent
}

func (j *JsonUI) IncrementErrorCount() {
	j.statusErrorCount += 1
}

func (j *JsonUI) WriteLevelLog(level slog.Level, message string) {
	logObj := JsonLog{
		MessageType: messageLog,

		Date:    time.Now().Format(time.RFC3339),
		Level:   level.String(),
		Message: message,
	}

	j.printJson(messageLog, logObj)
}

//
// private functions
//

func (j *JsonUI) printJson(kind string, v any) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		// logging here would recurse through the log handler
		kind = messageLog
		jsonBytes = []byte(`{"message_type":"log","level":"ERROR","message":"marshal failed"}`)
	}

	j.outputLock.Lock()
	fmt.Fprintln(j.output, string(jsonBytes))
	j.outputLock.Unlock()

	if j.broadcaster == nil {
		return
	}

	if kind == messageLog {
		j.broadcaster.Broadcast(jsonBytes)
	} else {
		j.broadcaster.Publish(kind, jsonBytes)
	}
}

func (j *JsonUI) getStatus() *JsonStatus {
	title := ""
	if j.panel != nil {
		title = j.panel.Title()
	}

	return &JsonStatus{
		MessageType: messageStatus,

		Status:      j.statusEngine.String(),
		SampleRate:  j.statusSampleRate,
		SessionName: j.statusSessionName,
		Title:       title,
		ErrorCount:  j.statusErrorCount,
		XrunCount:   j.statusXrunCount,

		DiskUsedPct: j.metricDiskUsedPct,
	}
}

func (j *JsonUI) getLevels() *JsonLevels {
	return &JsonLevels{
		MessageType: messageLevels,
		Snapshot:    j.panel.Snapshot(),
	}
}
