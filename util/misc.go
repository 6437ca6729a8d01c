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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v2"
)

// ErrNoYamlFile is returned when none of the lookup locations holds the file.
var ErrNoYamlFile = errors.New("no yaml file found")

// ConfigDirectory is where per-user files live.
const ConfigDirectory = "~/.config/fox"

func FileExists(path string) bool {
	// if an error occurred or its a directory, we throw up
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return false
	}

	return true
}

func DirectoryExists(testDir string) bool {
	if stat, err := os.Stat(testDir); err != nil || !stat.IsDir() {
		return false
	}

	return true
}

func ResolveHomeDirPath(testPath string) (string, error) {
	resolved, err := homedir.Expand(testPath)
	if err != nil {
		return "", fmt.Errorf("could not resolve home dir in %s: %w", testPath, err)
	}

	return resolved, nil
}

// FindYamlFile resolves a file name the way every fox file is looked up:
// absolute and "~/" paths as given, otherwise next to the binary, then the
// working directory, then the user config directory.
func FindYamlFile(fileName string) (string, error) {
	if path.IsAbs(fileName) {
		if FileExists(fileName) {
			return fileName, nil
		}
		return "", fmt.Errorf("the specified yaml file does not exist: %s", fileName)
	}

	if strings.HasPrefix(fileName, "~/") {
		resolved, err := ResolveHomeDirPath(fileName)
		if err != nil {
			return "", err
		}
		if FileExists(resolved) {
			return resolved, nil
		}
		return "", fmt.Errorf("the specified yaml file does not exist: %s", resolved)
	}

	candidates := make([]string, 0, 3)

	// check path where executable lives
	if binPath, err := os.Executable(); err == nil {
		candidates = append(candidates, path.Join(filepath.Dir(binPath), fileName))
	}

	// check working directory
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, path.Join(cwd, fileName))
	}

	// check user config directory
	if configDir, err := ResolveHomeDirPath(ConfigDirectory); err == nil {
		candidates = append(candidates, path.Join(configDir, fileName))
	}

	for _, candidate := range candidates {
		if FileExists(candidate) {
			return candidate, nil
		}
	}

	return "", ErrNoYamlFile
}

func ReadYamlFile(cfg interface{}, fileName string) (string, error) {
	filePath, err := FindYamlFile(fileName)
	if err != nil {
		return "", err
	}

	slog.Info("Reading yaml from " + filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err = decoder.Decode(cfg); err != nil {
		return "", fmt.Errorf("parse %s: %w", filePath, err)
	}

	return filePath, nil
}

// WriteYamlFile writes cfg through a temp file so a crash never leaves a
// truncated file behind.
func WriteYamlFile(cfg interface{}, filePath string) error {
	filePath, err := ResolveHomeDirPath(filePath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return err
	}

	return nil
}

func TraceLog(message string, args ...any) {
	slog.Log(context.Background(), slog.Level(-10), message, args...)
}

func FormatSize(bytes uint64) string {
	suffix := []string{"B", "KiB", "MiB", "GiB", "TiB"}

	i := 0
	value := float64(bytes)

	for value >= 1024 && i < len(suffix)-1 {
		value /= 1024
		i++
	}

	return fmt.Sprintf("%.02f %s", value, suffix[i])
}

func FormatDuration(duration float64) string {
	hours := int(duration) / 3600
	duration -= float64(hours) * 3600

	minutes := int(duration) / 60
	duration -= float64(minutes) * 60

	seconds := int(duration)
	duration -= float64(seconds)

	mseconds := int(duration * 1000)

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, mseconds)
}

func FindJackdBinary() string {
	possiblePaths := []string{
		"/usr/bin/jackd",
		"/usr/local/bin/jackd",
		"/opt/homebrew/bin/jackd",
	}

	for _, path := range possiblePaths {
		if FileExists(path) {
			return path
		}
	}

	return ""
}
