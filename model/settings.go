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
package model

// DefaultRecorderPanePosition is the share of the height given to the track
// strips when no valid setting is stored.
const DefaultRecorderPanePosition = 0.75

// Settings is UI state persisted between runs.
type Settings struct {
	RecorderPanePosition float64 `yaml:"recorder-vpane-pos,omitempty"`
	LibraryAccessToken   string  `yaml:"library-access-token,omitempty"`
}
