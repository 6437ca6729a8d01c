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
package session

import (
	"log/slog"

	"fox-recorder/model"
)

func trackOptions(index int, channel model.ProfileChannel) TrackOptions {
	kind := AudioTrack
	if channel.Bus {
		kind = Bus
	} else if channel.Midi {
		kind = MidiTrack
	}

	order := index
	if channel.Order != nil {
		order = *channel.Order
	}

	return TrackOptions{
		Name:   channel.ChannelName,
		Kind:   kind,
		Order:  order,
		Hidden: channel.Hidden,
		Active: channel.IsEnabled(),
		Color:  channel.Color,
		Inputs: channel.Ports,
	}
}

func (s *Session) applyChannel(t *Track, channel model.ProfileChannel) {
	if channel.Group == "" {
		s.RemoveFromGroup(t)
	} else {
		s.AddToGroup(t, s.NewGroup(channel.Group))
	}
}

// FromProfile builds a session holding one route per profile channel.
func FromProfile(profile *model.Profile) *Session {
	s := New(profile.Name, profile.Snapshot)

	routes := make([]*Track, 0, len(profile.Channels))
	for i, channel := range profile.Channels {
		t := s.NewTrack(trackOptions(i, channel))
		t.recEnabled = channel.RecordArmed && t.active
		t.muted = channel.Muted
		t.monitorInput = channel.MonitorInput
		t.monitorDisk = channel.MonitorDisk
		routes = append(routes, t)
	}

	s.AddRoutes(routes...)

	for i, channel := range profile.Channels {
		s.applyChannel(routes[i], channel)
	}

	s.SetDirty(false)

	return s
}

// Sync applies a reloaded profile: channels are matched by name, vanished
// ones are removed, new ones added and the rest updated in place.
func (s *Session) Sync(profile *model.Profile) {
	wanted := make(map[string]int, len(profile.Channels))
	for i, channel := range profile.Channels {
		wanted[channel.ChannelName] = i
	}

	for _, r := range s.Routes() {
		if _, ok := wanted[r.name]; !ok {
			slog.Info("Profile reload removed track " + r.name)
			s.RemoveRoute(r)
		}
	}

	added := make([]*Track, 0)
	addedChannels := make([]model.ProfileChannel, 0)

	for i, channel := range profile.Channels {
		opts := trackOptions(i, channel)

		existing := s.RouteByName(channel.ChannelName)
		if existing == nil {
			t := s.NewTrack(opts)
			added = append(added, t)
			addedChannels = append(addedChannels, channel)
			continue
		}

		existing.SetActive(opts.Active)
		existing.SetColor(opts.Color)
		existing.SetInputs(opts.Inputs)
		existing.SetOrder(opts.Order)
		existing.SetHidden(opts.Hidden)
		s.applyChannel(existing, channel)
	}

	if len(added) > 0 {
		slog.Info("Profile reload added tracks", "count", len(added))
		s.AddRoutes(added...)

		for i, t := range added {
			s.applyChannel(t, addedChannels[i])
		}
	}

	if profile.Snapshot != "" && profile.Snapshot != s.snapshot {
		s.SetSnapshotName(profile.Snapshot)
	}
}
