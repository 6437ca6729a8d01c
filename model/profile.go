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

type Profile struct {
	Name        string             `yaml:"name"`
	Snapshot    string             `yaml:"snapshot"`
	AudioServer ProfileAudioServer `yaml:"audio_server"`
	Channels    []ProfileChannel   `yaml:"channels"`

	// resolved at load time, not read from the file
	Path string `yaml:"-"`
}

type ProfileAudioServer struct {
	AutoStart       bool   `yaml:"auto_start"`
	Driver          string `yaml:"driver"`
	Device          string `yaml:"device"`
	SampleRate      int    `yaml:"sample_rate"`
	FramesPerPeriod int    `yaml:"frames_per_period"`
}

// ProfileChannel describes one recordable track.
type ProfileChannel struct {
	ChannelName  string   `yaml:"channel_name"`
	Ports        []string `yaml:"ports"`
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Hidden       bool     `yaml:"hidden,omitempty"`
	Midi         bool     `yaml:"midi,omitempty"`
	Bus          bool     `yaml:"bus,omitempty"`
	Group        string   `yaml:"group,omitempty"`
	Color        int      `yaml:"color,omitempty"`
	Order        *int     `yaml:"order,omitempty"`
	RecordArmed  bool     `yaml:"record_armed,omitempty"`
	MonitorInput bool     `yaml:"monitor_input,omitempty"`
	MonitorDisk  bool     `yaml:"monitor_disk,omitempty"`
	Muted        bool     `yaml:"muted,omitempty"`
}

// IsEnabled treats a missing enabled key as enabled.
func (c ProfileChannel) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
