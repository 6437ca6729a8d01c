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
	"log/slog"

	"fox-recorder/recorder"
)

// UI is a front end for the recorder panel. Everything except Queue and
// WriteLevelLog must be called on the UI goroutine, which is what Queue
// schedules onto. A UI therefore also serves as the signals.Dispatcher for
// engine and session signals.
type UI interface {
	Initialize(panel *recorder.Panel)
	Start()
	Shutdown()
	IsShutdown() bool
	WaitForShutdown()

	Queue(fn func())

	SetEngineStatus(status Status)
	SetSampleRate(rate int)
	SetSessionName(value string)
	SetXrunCount(count uint64)
	SetDiskUsage(percent int)
	IncrementErrorCount()

	WriteLevelLog(level slog.Level, message string)
}
