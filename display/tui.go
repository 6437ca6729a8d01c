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
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"fox-recorder/display/custom"
	"fox-recorder/display/theme"
	"fox-recorder/reaper"
	"fox-recorder/recorder"
	"fox-recorder/signals"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

//
// constants
//

const (
	layoutStatusItemHeaderWidth = 14
	layoutStatusRowCount        = 3
	layoutStatusLeftWidth       = 44

	dividerStep = 0.05
)

//
// types
//

type Tui struct {
	app             *cview.Application
	shutdownChannel chan struct{}
	stop            chan struct{}
	redraw          chan struct{}
	stopOnce        sync.Once
	started         bool

	tickInterval time.Duration

	panel *recorder.Panel
	conns signals.ConnectionList

	errorCount int
	showingLog bool

	gridApp      *cview.Grid
	flexRecorder *cview.Flex
	recArea      *custom.RecArea
	portList     *custom.PortList
	tvLogs       *cview.TextView

	tvEngineStatus *custom.StatusText
	tvSampleRate   *custom.StatusText
	tvSessionName  *custom.StatusText
	tvErrorCount   *custom.StatusText
	tvXrunCount    *custom.StatusText
	tvSpill        *custom.StatusText
	spillText      string

	statusMeterDiskUsed *custom.StatusMeter
}

//
// constructor
//

func NewTui(tickInterval time.Duration) *Tui {
	return &Tui{
		shutdownChannel: make(chan struct{}),
		stop:            make(chan struct{}),
		redraw:          make(chan struct{}, 1),
		tickInterval:    tickInterval,
	}
}

//
// lifecycle managment
//

func (tui *Tui) Initialize(panel *recorder.Panel) {
	tui.app = cview.NewApplication()
	defer tui.app.HandlePanic()

	tui.panel = panel

	statusRows := make([]int, layoutStatusRowCount)
	for i := range layoutStatusRowCount {
		statusRows[i] = 1
	}

	//
	// main application grid
	tui.gridApp = cview.NewGrid()
	tui.gridApp.SetPadding(0, 0, 0, 0)
	tui.gridApp.SetColumns(-1)
	tui.gridApp.SetBorders(true)
	tui.gridApp.SetBordersColor(theme.BorderColor)
	tui.gridApp.SetRows(layoutStatusRowCount, -1)
	tui.gridApp.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	//
	// status area
	gridStatus := cview.NewGrid()
	gridStatus.SetPadding(0, 0, 1, 1)
	gridStatus.SetColumns(layoutStatusLeftWidth, -1)
	gridStatus.SetRows(statusRows...)
	gridStatus.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	tui.tvEngineStatus = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Engine", "")
	tui.tvSampleRate = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Sample Rate", "-")
	tui.tvXrunCount = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Xruns", "0")
	tui.tvSessionName = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Session", "")
	tui.tvErrorCount = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Errors", "0")
	tui.statusMeterDiskUsed = custom.NewStatusMeter(layoutStatusItemHeaderWidth, "Library Disk", 0, "%")
	tui.tvSpill = custom.NewStatusTextField(layoutStatusItemHeaderWidth, "Spill", "-")

	gridStatus.AddItem(tui.tvEngineStatus.GetGrid(), 0, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSampleRate.GetGrid(), 1, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvXrunCount.GetGrid(), 2, 0, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSessionName.GetGrid(), 0, 1, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.statusMeterDiskUsed.GetGrid(), 1, 1, 1, 1, 0, 0, false)
	gridStatus.AddItem(tui.tvSpill.GetGrid(), 2, 1, 1, 1, 0, 0, false)

	tui.gridApp.AddItem(gridStatus, 0, 0, 1, 1, 0, 0, false)

	//
	// recorder page: strips above, input ports below
	tui.recArea = custom.NewRecArea(panel)
	tui.portList = custom.NewPortList(panel)

	recWeight, portWeight := dividerWeights(panel.Divider())
	tui.flexRecorder = cview.NewFlex()
	tui.flexRecorder.SetDirection(cview.FlexRow)
	tui.flexRecorder.AddItem(tui.recArea, 0, recWeight, false)
	tui.flexRecorder.AddItem(tui.portList, 0, portWeight, false)

	//
	// log output view, swapped in with F2
	tui.tvLogs = cview.NewTextView()
	tui.tvLogs.SetPadding(0, 0, 0, 0)
	tui.tvLogs.SetDynamicColors(true)
	tui.tvLogs.SetScrollable(true)

	tui.gridApp.AddItem(tui.flexRecorder, 1, 0, 1, 1, 0, 0, true)
	panel.SetMapped(true)

	tui.conns.Add(panel.DividerChanged.Connect(tui.dividerChanged))
	tui.setTitle(panel.Title())
	tui.conns.Add(panel.TitleChanged.Connect(tui.setTitle))

	tui.app.SetRoot(tui.gridApp, true)
}

func (tui *Tui) Start() {
	tui.started = true
	reaper.Register("tui")

	go func() {
		defer tui.app.HandlePanic()

		// Capture user input
		tui.app.SetInputCapture(tui.eventHandler)

		if err := tui.app.Run(); err != nil {
			panic(err)
		}

		close(tui.shutdownChannel)
		reaper.Done("tui")
	}()

	go tui.excecuteLoop()
}

func (tui *Tui) Shutdown() {
	slog.Debug("Shutting down TUI")
	tui.stopOnce.Do(func() { close(tui.stop) })
	tui.conns.DropConnections()

	if !tui.started {
		return
	}

	tui.app.Stop()

	slog.Debug("Waiting for TUI to shut down")
	tui.WaitForShutdown()
}

func (tui *Tui) IsShutdown() bool {
	select {
	case <-tui.shutdownChannel:
		return true
	default:
		return false
	}
}

func (tui *Tui) WaitForShutdown() {
	<-tui.shutdownChannel
}

// Queue runs fn on the cview event loop and redraws afterwards.
func (tui *Tui) Queue(fn func()) {
	if tui.app == nil || tui.IsShutdown() {
		return
	}

	tui.app.QueueUpdateDraw(fn)
}

//
// private functions
//

func (tui *Tui) eventHandler(event *tcell.EventKey) *tcell.EventKey {
	// Anything handled here will be executed on the main thread
	switch event.Key() {
	case tcell.KeyCtrlC:
		go reaper.Reap()
		return nil

	case tcell.KeyF2:
		tui.toggleLogView()
		return nil

	case tcell.KeyRune:
		switch event.Rune() {
		case '+':
			tui.panel.SetDivider(math.Min(tui.panel.Divider()+dividerStep, 1))
			return nil
		case '-':
			tui.panel.SetDivider(math.Max(tui.panel.Divider()-dividerStep, 0))
			return nil
		}
	}

	if !tui.showingLog && tui.panel.HandleKey(event) {
		return nil
	}

	return event
}

// toggleLogView swaps the recorder page for the log output. The panel stops
// drawing while hidden; its scopes keep draining.
func (tui *Tui) toggleLogView() {
	tui.showingLog = !tui.showingLog

	if tui.showingLog {
		tui.gridApp.RemoveItem(tui.flexRecorder)
		tui.gridApp.AddItem(tui.tvLogs, 1, 0, 1, 1, 0, 0, true)
		tui.app.SetFocus(tui.tvLogs)
	} else {
		tui.gridApp.RemoveItem(tui.tvLogs)
		tui.gridApp.AddItem(tui.flexRecorder, 1, 0, 1, 1, 0, 0, true)
		tui.app.SetFocus(tui.flexRecorder)
	}

	tui.panel.SetMapped(!tui.showingLog)
}

func (tui *Tui) setTitle(title string) {
	tui.recArea.SetTitle(" " + title + " ")
}

func (tui *Tui) dividerChanged(fraction float64) {
	recWeight, portWeight := dividerWeights(fraction)
	tui.flexRecorder.ResizeItem(tui.recArea, 0, recWeight)
	tui.flexRecorder.ResizeItem(tui.portList, 0, portWeight)
}

// dividerWeights turns the divider fraction into flex proportions. Neither
// side disappears completely.
func dividerWeights(fraction float64) (int, int) {
	rec := min(max(int(math.Round(fraction*100)), 1), 99)
	return rec, 100 - rec
}

func (tui *Tui) excecuteLoop() {
	defer tui.app.HandlePanic()

	slog.Debug("TUI loop started")

	ticker := time.NewTicker(tui.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-tui.stop:
			slog.Info("TUI shutting down")
			return
		case <-reaper.Context().Done():
			return
		case <-ticker.C:
			tui.app.QueueUpdate(tui.tick)
		case <-tui.redraw:
			tui.app.Draw()
		}
	}
}

// tick runs on the UI goroutine and asks the loop for a draw only when
// something visible changed.
func (tui *Tui) tick() {
	changed := tui.panel.Tick()

	spill := strings.Join(tui.panel.SpillNames(), ", ")
	if spill != tui.spillText {
		tui.spillText = spill
		changed = true

		if spill == "" {
			tui.tvSpill.SetCurrentValue("-")
			tui.tvSpill.SetColor(cview.Styles.PrimaryTextColor)
		} else {
			tui.tvSpill.SetCurrentValue(spill)
			tui.tvSpill.SetColor(theme.SpillActive)
		}
	}

	if changed {
		select {
		case tui.redraw <- struct{}{}:
		default:
		}
	}
}

//
// status update functions
//

func (tui *Tui) SetEngineStatus(status Status) {
	var icon rune
	var color tcell.Color

	switch status {
	case StatusStarting, StatusShuttingDown:
		icon = theme.RuneClock
		color = theme.Yellow
	case StatusStopped:
		icon = theme.RuneStop
		color = theme.Gray
	case StatusRunning:
		icon = theme.RunePlay
		color = theme.Green
	case StatusHalted, StatusFailed:
		icon = theme.RuneFailed
		color = theme.Red
	default:
		panic(fmt.Sprintf("invalid status value provided: %d", status))
	}

	tui.tvEngineStatus.SetCurrentValue(string(icon) + " " + status.String())
	tui.tvEngineStatus.SetColor(color)
}

func (tui *Tui) SetSampleRate(rate int) {
	if rate <= 0 {
		tui.tvSampleRate.SetCurrentValue("-")
		return
	}

	tui.tvSampleRate.SetCurrentValue(fmt.Sprintf("%d Hz", rate))
}

func (tui *Tui) SetSessionName(value string) {
	tui.tvSessionName.SetCurrentValue(value)
}

func (tui *Tui) SetXrunCount(count uint64) {
	tui.tvXrunCount.SetCurrentValue(fmt.Sprintf("%d", count))

	if count > 0 {
		tui.tvXrunCount.SetColor(theme.Yellow)
	}
}

func (tui *Tui) SetDiskUsage(percent int) {
	tui.statusMeterDiskUsed.UpdateThresholds(percent, 80, 90)
}

func (tui *Tui) IncrementErrorCount() {
	tui.errorCount++
	tui.tvErrorCount.SetCurrentValue(fmt.Sprintf("%d", tui.errorCount))

	if tui.errorCount > 0 {
		tui.tvErrorCount.SetColor(theme.Red)
	}
}

//
// logging
//

func (tui *Tui) WriteLevelLog(level slog.Level, message string) {
	if tui.tvLogs == nil {
		return
	}

	color := "-"

	if level >= slog.LevelError {
		color = "#" + theme.RedRGB + "::b"
	} else if level >= slog.LevelWarn {
		color = "#" + theme.YellowRGB
	} else if level <= slog.LevelDebug {
		color = "#" + theme.GrayRGB
	}

	tui.tvLogs.Write([]byte(fmt.Sprintf("[%s][%s[] [%s[] %s[-:-:-]\n", color, time.Now().Format("2006-01-02 15:04:05"), level.String(), cview.Escape(message))))
}
