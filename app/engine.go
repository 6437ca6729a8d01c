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
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"fox-recorder/audio"
	"fox-recorder/display"
	"fox-recorder/model"
	"fox-recorder/reaper"
	"fox-recorder/recorder"
	"fox-recorder/session"
	"fox-recorder/shared"
	"fox-recorder/util"
)

const (
	defaultTickInterval = 40 * time.Millisecond
	shutdownTimeout     = 3 * time.Second
)

// newUI builds the front end the config asks for. JSON output can be
// mirrored to websocket clients.
func newUI(config *model.Config) display.UI {
	tickInterval := defaultTickInterval
	if config.Recorder != nil && config.Recorder.UpdateIntervalMs > 0 {
		tickInterval = time.Duration(config.Recorder.UpdateIntervalMs) * time.Millisecond
	}

	if config.OutputType != model.OutputJSON {
		return display.NewTui(tickInterval)
	}

	var broadcaster *display.Broadcaster
	if config.Listen != "" {
		broadcaster = display.NewBroadcaster()
		broadcaster.Listen(config.Listen)
		reaper.Callback("websocket", broadcaster.Close)
	}

	return display.NewJsonUI(os.Stdout, tickInterval, broadcaster)
}

// configureLogger routes slog into the UI and, when requested, a log file.
// The returned function undoes everything it set up.
func configureLogger(ui display.UI, config *model.Config, logFile string) (func(), error) {
	level := slog.Level(config.LogLevel)

	var handler slog.Handler = shared.NewUiLogHandler(ui, level, func(string) {
		// the handler may run on the UI goroutine itself
		go ui.Queue(ui.IncrementErrorCount)
	})

	var closer io.Closer
	if logFile != "" {
		fileHandler, c, err := shared.NewFileHandler(logFile, min(level, slog.LevelDebug))
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}

		handler = shared.NewFanoutHandler(handler, fileHandler)
		closer = c
	}

	previous := slog.Default()
	slog.SetDefault(slog.New(handler))

	// the terminal belongs to the tui, so stray prints go to the log instead
	restore := func() {}
	if config.OutputType == model.OutputTUI {
		restore = shared.CaptureStdio()
	}

	return func() {
		restore()
		slog.SetDefault(previous)
		if closer != nil {
			closer.Close()
		}
	}, nil
}

// runEngine starts the recorder for profile and blocks until it is reaped.
func runEngine(config *model.Config, profile *model.Profile, logFile string) error {
	ui := newUI(config)

	undoLogger, err := configureLogger(ui, config, logFile)
	if err != nil {
		return err
	}
	defer undoLogger()

	settings := util.LoadSettings(config.SettingsFile)

	engine := newEngine(config, profile)
	panel := recorder.NewPanel(engine, recorder.OptionsFromConfig(config.Recorder), ui)
	panel.RestoreDivider(settings.RecorderPanePosition)

	sess := session.FromProfile(profile)

	ui.Initialize(panel)
	ui.SetEngineStatus(display.StatusStarting)
	ui.SetSessionName(sess.Name())
	panel.SetSession(sess)

	ui.Start()
	reaper.Callback("ui", ui.Shutdown)

	reaper.Callback("settings", func() {
		settings.RecorderPanePosition = panel.Divider()
		if err := util.SaveSettings(config.SettingsFile, settings); err != nil {
			slog.Error("Saving settings failed: " + err.Error())
		}
	})

	stopSignals := shared.CatchSignals(func(sig os.Signal) {
		slog.Info("Caught " + sig.String() + ", shutting down")
		go reaper.Reap()
	})
	defer stopSignals()

	connectEngineStatus(ui, engine)

	if err := session.WatchProfile(reaper.Context(), profile.Path, func() {
		fresh, err := util.ReloadProfile(profile)
		if err != nil {
			slog.Error("Reloading profile failed: " + err.Error())
			return
		}

		slog.Info("Profile " + profile.Path + " changed, reloading")
		ui.Queue(func() { sess.Sync(fresh) })
	}); err != nil {
		slog.Warn(err.Error())
	}

	startStatistics(ui, config)

	if err := engine.Start(reaper.Context()); err != nil {
		slog.Error("Starting audio engine failed: " + err.Error())
		ui.Queue(func() { ui.SetEngineStatus(display.StatusFailed) })
	}

	reaper.Callback("audio engine", engine.Stop)
	reaper.Callback("shutdown status", func() {
		ui.Queue(func() { ui.SetEngineStatus(display.StatusShuttingDown) })
	})

	ui.WaitForShutdown()
	reaper.Reap()

	waitWithTimeout(reaper.Wait, shutdownTimeout)
	sess.Close()

	return nil
}

func waitWithTimeout(wait func(), timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		slog.Warn("Gave up waiting for background work to finish")
	}
}

// connectEngineStatus mirrors engine state into the status area.
func connectEngineStatus(ui display.UI, engine audio.Engine) {
	sig := engine.Signals()

	sig.Running.ConnectVia(ui, func(struct{}) {
		ui.SetEngineStatus(display.StatusRunning)
		ui.SetSampleRate(engine.SampleRate())
	})
	sig.Stopped.ConnectVia(ui, func(struct{}) {
		ui.SetEngineStatus(display.StatusStopped)
		ui.SetSampleRate(0)
	})
	sig.Halted.ConnectVia(ui, func(string) {
		ui.SetEngineStatus(display.StatusHalted)
		ui.SetSampleRate(0)
	})
	sig.Xrun.ConnectVia(ui, ui.SetXrunCount)
}
