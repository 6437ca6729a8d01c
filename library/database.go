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
package library

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"

	"fox-recorder/util"

	"gopkg.in/yaml.v2"
)

// Entry describes one downloaded file.
type Entry struct {
	SoundID int        `yaml:"sound_id"`
	Name    string     `yaml:"name"`
	License string     `yaml:"license,omitempty"`
	Tags    []string   `yaml:"tags,omitempty"`
	Audio   *AudioInfo `yaml:"audio,omitempty"`
}

// Database maps downloaded file paths to their tags, kept in a yaml file.
type Database struct {
	path string

	lock    sync.Mutex
	entries map[string]*Entry
}

type databaseFile struct {
	Entries map[string]*Entry `yaml:"entries"`
}

// OpenDatabase loads the database at path. A missing file is an empty
// database.
func OpenDatabase(path string) (*Database, error) {
	resolved, err := util.ResolveHomeDirPath(path)
	if err != nil {
		return nil, err
	}

	db := &Database{
		path:    resolved,
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(resolved)
	if errors.Is(err, os.ErrNotExist) {
		return db, nil
	}
	if err != nil {
		return nil, err
	}

	var file databaseFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse %s: %w", resolved, err)
	}

	for filePath, entry := range file.Entries {
		if entry != nil {
			db.entries[filePath] = entry
		}
	}

	return db, nil
}

func (db *Database) Set(path string, entry *Entry) {
	db.lock.Lock()
	defer db.lock.Unlock()

	db.entries[path] = entry
}

func (db *Database) Get(path string) (*Entry, bool) {
	db.lock.Lock()
	defer db.lock.Unlock()

	entry, ok := db.entries[path]
	return entry, ok
}

// FindTag returns the sorted paths of every file carrying tag.
func (db *Database) FindTag(tag string) []string {
	db.lock.Lock()
	defer db.lock.Unlock()

	var paths []string
	for path, entry := range db.entries {
		if slices.ContainsFunc(entry.Tags, func(t string) bool { return strings.EqualFold(t, tag) }) {
			paths = append(paths, path)
		}
	}
	slices.Sort(paths)

	return paths
}

func (db *Database) Len() int {
	db.lock.Lock()
	defer db.lock.Unlock()

	return len(db.entries)
}

func (db *Database) Save() error {
	db.lock.Lock()
	defer db.lock.Unlock()

	return util.WriteYamlFile(databaseFile{Entries: db.entries}, db.path)
}
