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
	"fox-recorder/recorder"
)

const (
	messageStatus = "status"
	messageLevels = "levels"
	messageLog    = "log"
)

type JsonStatus struct {
	MessageType string `json:"message_type"`

	Status      string `json:"status"`
	SampleRate  int    `json:"sample_rate"`
	SessionName string `json:"session_name"`
	Title       string `json:"title"`
	ErrorCount  int    `json:"error_count"`
	XrunCount   uint64 `json:"xrun_count"`

	DiskUsedPct int `json:"disk_used_pct"`
}

type JsonLog struct {
	MessageType string `json:"message_type"`

	Date    string `json:"date"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// JsonLevels carries the panel snapshot: ports with their connection count
// and spill state, and the visible strips with their grid position.
type JsonLevels struct {
	MessageType string `json:"message_type"`

	recorder.Snapshot
}
