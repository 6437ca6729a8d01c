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
package custom

import (
	"strings"
	"testing"

	"fox-recorder/audio"
	"fox-recorder/model"
	"fox-recorder/recorder"
	"fox-recorder/session"
	"fox-recorder/signals"

	"github.com/gdamore/tcell/v2"
)

type sizedWidget struct {
	width, height int
}

func (w sizedWidget) Render(recorder.Canvas, recorder.Rect) {}
func (w sizedWidget) Measure() (int, int) { return w.width, w.height }
func (w sizedWidget) HandleKey(*tcell.EventKey) bool { return false }

func TestFlowLayout(t *testing.T) {
	widgets := []recorder.Widget{
		sizedWidget{20, 3},
		sizedWidget{20, 3},
		sizedWidget{20, 5},
		sizedWidget{60, 2},
	}

	got := FlowLayout(widgets, recorder.Rect{X: 2, Y: 1, Width: 45, Height: 10})
	want := []recorder.Rect{
		{X: 2, Y: 1, Width: 20, Height: 3},
		{X: 23, Y: 1, Width: 20, Height: 3},
		{X: 2, Y: 5, Width: 20, Height: 5},
		{X: 2, Y: 11, Width: 45, Height: 2},
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("widget %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScrollOffset(t *testing.T) {
	tests := []struct {
		name                         string
		current, top, bottom, height int
		want                         int
	}{
		{"visible", 0, 2, 4, 10, 0},
		{"above", 6, 2, 4, 10, 2},
		{"below", 0, 12, 14, 10, 4},
		{"no room", 3, 12, 14, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scrollOffset(tt.current, tt.top, tt.bottom, tt.height); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStatusMeterClampsValue(t *testing.T) {
	meter := NewStatusMeter(10, "Disk", 0, "%")

	meter.UpdateThresholds(150, 80, 90)
	if meter.Value() != 100 {
		t.Errorf("expected 100, got %d", meter.Value())
	}

	meter.SetCurrentValue(-3)
	if meter.Value() != 0 {
		t.Errorf("expected 0, got %d", meter.Value())
	}
}

func TestStatusTextValue(t *testing.T) {
	field := NewStatusTextField(10, "Engine", "Starting")
	field.SetCurrentValue("Running")

	if field.Value() != "Running" {
		t.Errorf("expected Running, got %q", field.Value())
	}
}

func bandPanel(t *testing.T) *recorder.Panel {
	t.Helper()

	engine := audio.NewSimulatedEngine(&model.SimulationOptions{ChannelCount: 2})
	panel := recorder.NewPanel(engine, recorder.DefaultOptions(), signals.Immediate)

	panel.SetSession(session.FromProfile(&model.Profile{
		Name:     "band",
		Snapshot: "band",
		Channels: []model.ProfileChannel{
			{ChannelName: "Kick", Ports: []string{"system:capture_1"}},
			{ChannelName: "Snare", Ports: []string{"system:capture_2"}},
		},
	}))

	return panel
}

func screenText(screen tcell.SimulationScreen) string {
	width, height := screen.Size()

	var b strings.Builder
	for y := range height {
		for x := range width {
			r, _, _, _ := screen.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteRune('\n')
	}

	return b.String()
}

func TestRecAreaDrawsStrips(t *testing.T) {
	panel := bandPanel(t)

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(120, 20)

	area := NewRecArea(panel)
	area.SetRect(0, 0, 120, 20)
	area.Draw(screen)

	if got := panel.Context().AvailableWidth(); got != 118 {
		t.Errorf("expected the inner width to be allocated, got %d", got)
	}

	rects := area.StripRects(recorder.Rect{X: 1, Y: 1, Width: 118, Height: 18})
	strips := panel.Strips()
	if len(strips) != 2 {
		t.Fatalf("expected 2 strips, got %d", len(strips))
	}

	box := panel.Context().BoxWidth()
	if rects[strips[0]].X != 2 || rects[strips[1]].X != 2+box {
		t.Errorf("unexpected strip columns: %+v %+v", rects[strips[0]], rects[strips[1]])
	}
	if rects[strips[0]].Y != 1 || rects[strips[1]].Y != 1 {
		t.Errorf("expected both strips on the first row")
	}

	text := screenText(screen)
	for _, name := range []string{"Kick", "Snare"} {
		if !strings.Contains(text, name) {
			t.Errorf("expected %s on screen", name)
		}
	}
}
