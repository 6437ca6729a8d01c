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
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fox-recorder/audio"
	"fox-recorder/model"
	"fox-recorder/recorder"
	"fox-recorder/signals"

	"github.com/gorilla/websocket"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusStarting, "Starting"},
		{StatusRunning, "Running"},
		{StatusHalted, "Halted"},
		{StatusShuttingDown, "Shutting Down"},
		{Status(42), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.status.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDividerWeights(t *testing.T) {
	tests := []struct {
		fraction  float64
		rec, port int
	}{
		{0.75, 75, 25},
		{0.5, 50, 50},
		{0, 1, 99},
		{1, 99, 1},
	}

	for _, tt := range tests {
		rec, port := dividerWeights(tt.fraction)
		if rec != tt.rec || port != tt.port {
			t.Errorf("%v: got %d/%d, want %d/%d", tt.fraction, rec, port, tt.rec, tt.port)
		}
	}
}

func newTestPanel() *recorder.Panel {
	engine := audio.NewSimulatedEngine(&model.SimulationOptions{ChannelCount: 2})
	return recorder.NewPanel(engine, recorder.DefaultOptions(), signals.Immediate)
}

// jsonLines decodes every line of out into a generic map.
func jsonLines(t *testing.T, out string) []map[string]any {
	t.Helper()

	var lines []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var line map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("invalid json line %q: %v", scanner.Text(), err)
		}
		lines = append(lines, line)
	}

	return lines
}

func TestJsonUIReportsOnShutdown(t *testing.T) {
	var out bytes.Buffer

	ui := NewJsonUI(&out, 10*time.Millisecond, nil)
	ui.Initialize(newTestPanel())
	ui.SetSessionName("band")
	ui.SetEngineStatus(StatusRunning)
	ui.Start()

	done := make(chan struct{})
	ui.Queue(func() {
		ui.SetXrunCount(3)
		ui.IncrementErrorCount()
		close(done)
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued work never ran")
	}

	ui.Shutdown()

	if !ui.IsShutdown() {
		t.Fatal("expected the UI to be shut down")
	}

	var status, levels map[string]any
	for _, line := range jsonLines(t, out.String()) {
		switch line["message_type"] {
		case "status":
			status = line
		case "levels":
			levels = line
		}
	}

	if status == nil || levels == nil {
		t.Fatalf("expected status and levels lines, got %q", out.String())
	}

	if status["session_name"] != "band" || status["status"] != "Running" {
		t.Errorf("unexpected status %v", status)
	}
	if status["xrun_count"] != float64(3) || status["error_count"] != float64(1) {
		t.Errorf("unexpected counters %v", status)
	}
	if levels["title"] != "Recorder" {
		t.Errorf("expected the panel snapshot to be flattened into levels, got %v", levels)
	}
}

func TestJsonUIWriteLevelLog(t *testing.T) {
	var out bytes.Buffer

	ui := NewJsonUI(&out, time.Second, nil)
	ui.WriteLevelLog(slog.LevelWarn, "port vanished")

	lines := jsonLines(t, out.String())
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}

	if lines[0]["message_type"] != "log" || lines[0]["level"] != "WARN" || lines[0]["message"] != "port vanished" {
		t.Errorf("unexpected log line %v", lines[0])
	}
}

func dialBroadcaster(t *testing.T, b *Broadcaster) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	srv := httptest.NewServer(b)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		srv.Close()
		t.Fatalf("dial: %v", err)
	}

	return srv, conn
}

func readMessage(t *testing.T, conn *websocket.Conn) string {
	t.Helper()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	return string(data)
}

func TestBroadcasterReplaysRetainedMessages(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	b.Publish("status", []byte(`{"message_type":"status","n":1}`))
	b.Publish("status", []byte(`{"message_type":"status","n":2}`))
	b.Publish("levels", []byte(`{"message_type":"levels"}`))

	srv, conn := dialBroadcaster(t, b)
	defer srv.Close()
	defer conn.Close()

	if got := readMessage(t, conn); got != `{"message_type":"levels"}` {
		t.Errorf("expected levels first, got %s", got)
	}
	if got := readMessage(t, conn); got != `{"message_type":"status","n":2}` {
		t.Errorf("expected the latest status, got %s", got)
	}

	if b.ClientCount() != 1 {
		t.Errorf("expected 1 client, got %d", b.ClientCount())
	}

	b.Broadcast([]byte(`{"message_type":"log"}`))
	if got := readMessage(t, conn); got != `{"message_type":"log"}` {
		t.Errorf("unexpected broadcast %s", got)
	}
}

func TestJsonUIMirrorsToBroadcaster(t *testing.T) {
	var out bytes.Buffer

	b := NewBroadcaster()
	defer b.Close()

	ui := NewJsonUI(&out, time.Second, b)
	ui.SetSessionName("band")
	ui.report()

	srv, conn := dialBroadcaster(t, b)
	defer srv.Close()
	defer conn.Close()

	var status JsonStatus
	if err := json.Unmarshal([]byte(readMessage(t, conn)), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if status.MessageType != "status" || status.SessionName != "band" {
		t.Errorf("unexpected status %+v", status)
	}
}
