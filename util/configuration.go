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
package util

import (
	"errors"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"fox-recorder/model"
)

const (
	DefaultConfigFile   = "fox.yml"
	DefaultSettingsFile = ConfigDirectory + "/fox.settings"
	profileSuffix       = ".profile"
)

func DefaultConfig() *model.Config {
	return &model.Config{
		JackdBinary:                  "",
		VerboseJackServer:            false,
		JackClientName:               "fox",
		ProfileDirectory:             "",
		SettingsFile:                 DefaultSettingsFile,
		LogLevel:                     int(slog.LevelInfo),
		OutputType:                   model.OutputTUI,
		HardwarePortConnectionPrefix: "system:capture_",
		Recorder: &model.RecorderOptions{
			UpdateIntervalMs:     40,
			ScopeWidth:           36,
			ShowWaveformClipping: true,
			WaveformClipLevel:    -0.0933967,
			LogarithmicWaveform:  false,
			PeakHoldMs:           750,
		},
		Library: &model.LibraryOptions{
			BaseURL:           "https://freesound.org/apiv2",
			DownloadDirectory: "~/Music/fox/library",
			DatabaseFile:      ConfigDirectory + "/library.yml",
		},
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: false,
			FreezeMeters:     false,
			ChannelCount:     8,
			MidiPortCount:    2,
		},
	}
}

// ReadConfig loads the config file (when one exists) over the defaults and
// applies command line overrides.
func ReadConfig(args *model.CommandLineArgs) (*model.Config, error) {
	outputTypes := make([]string, 0, len(model.OutputTypeMap))
	for key := range model.OutputTypeMap {
		outputTypes = append(outputTypes, key)
	}
	slices.Sort(outputTypes)

	requestedOutputType, ok := model.OutputTypeMap[strings.ToLower(args.OutputType)]
	if args.OutputType != "" && !ok {
		return nil, fmt.Errorf("invalid output type specified: %s. Valid options: %s", args.OutputType, strings.Join(outputTypes, ", "))
	}

	config := DefaultConfig()

	configFile := args.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	if _, err := ReadYamlFile(config, configFile); err != nil {
		// only an explicitly requested config file has to exist
		if args.ConfigFile != "" || !errors.Is(err, ErrNoYamlFile) {
			return nil, err
		}
		slog.Debug("No config file found, using defaults")
	}

	if config.JackdBinary == "" {
		config.JackdBinary = FindJackdBinary()
	}

	if args.OutputType != "" {
		config.OutputType = requestedOutputType
	}
	if args.Listen != "" {
		config.Listen = args.Listen
	}

	sim := config.SimulationOptions
	if args.Simulate {
		sim.EnableSimulation = true
	}
	if args.SimulateFreezeMeters {
		sim.FreezeMeters = true
	}
	if args.SimulateChannelCount > 0 {
		sim.ChannelCount = args.SimulateChannelCount
	}
	if args.SimulateMidiCount >= 0 {
		sim.MidiPortCount = args.SimulateMidiCount
	}
	if args.SimulateSource != "" {
		sim.SourceFile = args.SimulateSource
	}

	return config, nil
}

// ReadProfile loads a session profile by name or path.
func ReadProfile(config *model.Config, profileName string) (*model.Profile, error) {
	if profileName == "" {
		return nil, errors.New("profile not specified")
	}

	if !strings.HasSuffix(profileName, profileSuffix) {
		profileName += profileSuffix
	}

	if config.ProfileDirectory != "" && !path.IsAbs(profileName) && !strings.HasPrefix(profileName, "~/") {
		dir, err := ResolveHomeDirPath(config.ProfileDirectory)
		if err != nil {
			return nil, err
		}
		if candidate := path.Join(dir, profileName); FileExists(candidate) {
			profileName = candidate
		}
	}

	profile := &model.Profile{}

	filePath, err := ReadYamlFile(profile, profileName)
	if err != nil {
		return nil, fmt.Errorf("read profile %s: %w", profileName, err)
	}

	profile.Path = filePath
	if profile.Name == "" {
		profile.Name = strings.TrimSuffix(path.Base(filePath), profileSuffix)
	}
	if profile.Snapshot == "" {
		profile.Snapshot = profile.Name
	}

	return profile, nil
}

// ReloadProfile reads an already resolved profile file again.
func ReloadProfile(profile *model.Profile) (*model.Profile, error) {
	fresh := &model.Profile{}

	if _, err := ReadYamlFile(fresh, profile.Path); err != nil {
		return nil, err
	}

	fresh.Path = profile.Path
	if fresh.Name == "" {
		fresh.Name = profile.Name
	}
	if fresh.Snapshot == "" {
		fresh.Snapshot = fresh.Name
	}

	return fresh, nil
}

func LoadSettings(filePath string) *model.Settings {
	settings := &model.Settings{}

	resolved, err := ResolveHomeDirPath(filePath)
	if err != nil || !FileExists(resolved) {
		return settings
	}

	if _, err := ReadYamlFile(settings, resolved); err != nil {
		slog.Warn("Ignoring unreadable settings: " + err.Error())
		return &model.Settings{}
	}

	return settings
}

func SaveSettings(filePath string, settings *model.Settings) error {
	return WriteYamlFile(settings, filePath)
}
