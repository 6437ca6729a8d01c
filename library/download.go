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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"fox-recorder/signals"
	"fox-recorder/util"
)

var ErrBusy = errors.New("a download is already running")

type DownloadResult struct {
	Sound *Sound
	Path  string
	Err   error
}

// Downloader fetches one sound at a time into the library directory and
// records it in the tag database. Completion is emitted on Finished through
// the dispatcher.
type Downloader struct {
	client     *Client
	directory  string
	db         *Database
	dispatcher signals.Dispatcher

	lock sync.Mutex
	busy bool
	done sync.WaitGroup

	cancel   atomic.Bool
	received atomic.Int64
	total    atomic.Int64

	Finished *signals.Signal[DownloadResult]
}

func NewDownloader(client *Client, directory string, db *Database, dispatcher signals.Dispatcher) *Downloader {
	if dispatcher == nil {
		dispatcher = signals.Immediate
	}

	return &Downloader{
		client:     client,
		directory:  directory,
		db:         db,
		dispatcher: dispatcher,
		Finished:   signals.New[DownloadResult](),
	}
}

// FileName is where a sound ends up: "<id>-<name>" inside the library
// directory.
func (d *Downloader) FileName(sound *Sound) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(sound.Name)
	return filepath.Join(d.directory, fmt.Sprintf("%d-%s", sound.ID, name))
}

// Start downloads sound in the background. A file that is already present
// finishes immediately.
func (d *Downloader) Start(ctx context.Context, sound *Sound) error {
	path := d.FileName(sound)

	if CheckAudioFile(path) {
		slog.Info("Already downloaded: " + path)
		d.finish(DownloadResult{Sound: sound, Path: path})
		return nil
	}

	if d.client.AccessToken() == "" {
		return ErrNotAuthorized
	}

	d.lock.Lock()
	if d.busy {
		d.lock.Unlock()
		return ErrBusy
	}
	d.busy = true
	d.lock.Unlock()

	d.cancel.Store(false)
	d.received.Store(0)
	d.total.Store(sound.Filesize)

	d.done.Add(1)
	go d.worker(ctx, sound, path)

	return nil
}

// Cancel stops the running download at its next write.
func (d *Downloader) Cancel() {
	d.cancel.Store(true)
}

func (d *Downloader) Wait() {
	d.done.Wait()
}

func (d *Downloader) Busy() bool {
	d.lock.Lock()
	defer d.lock.Unlock()

	return d.busy
}

// Progress returns received and expected bytes of the running download.
func (d *Downloader) Progress() (received, total int64) {
	return d.received.Load(), d.total.Load()
}

func (d *Downloader) worker(ctx context.Context, sound *Sound, path string) {
	defer d.done.Done()

	err := d.fetch(ctx, sound, path)
	if err == nil {
		d.record(ctx, sound, path)
	}

	d.lock.Lock()
	d.busy = false
	d.lock.Unlock()

	d.finish(DownloadResult{Sound: sound, Path: path, Err: err})
}

func (d *Downloader) finish(result DownloadResult) {
	d.dispatcher.Queue(func() { d.Finished.Emit(result) })
}

func (d *Downloader) fetch(ctx context.Context, sound *Sound, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create library directory: %w", err)
	}

	resp, err := d.client.open(ctx, sound.Download)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.ContentLength > 0 {
		d.total.Store(resp.ContentLength)
	}

	partPath := path + ".part"
	out, err := os.Create(partPath)
	if err != nil {
		return err
	}

	_, err = io.Copy(io.MultiWriter(out, &progressWriter{d}), resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(partPath)
		if errors.Is(err, ErrCancelled) {
			return ErrCancelled
		}
		return fmt.Errorf("download %d: %w", sound.ID, err)
	}

	if !CheckAudioFile(partPath) {
		return fmt.Errorf("download %d: file too small", sound.ID)
	}

	return os.Rename(partPath, path)
}

// record stores tags and wav details of a finished download.
func (d *Downloader) record(ctx context.Context, sound *Sound, path string) {
	if d.db == nil {
		return
	}

	tags := sound.Tags
	if len(tags) == 0 {
		if full, err := d.client.Sound(ctx, sound.ID); err == nil {
			tags = full.Tags
		} else {
			slog.Warn(fmt.Sprintf("No tags for sound %d: %s", sound.ID, err))
		}
	}

	entry := &Entry{
		SoundID: sound.ID,
		Name:    sound.Name,
		License: sound.License,
		Tags:    tags,
	}

	if info, err := InspectAudioFile(path); err == nil {
		entry.Audio = info
	} else {
		slog.Debug("Not inspecting " + path + ": " + err.Error())
	}

	d.db.Set(path, entry)
	if err := d.db.Save(); err != nil {
		slog.Error("Saving library database failed: " + err.Error())
	}
}

type progressWriter struct {
	d *Downloader
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	if pw.d.cancel.Load() {
		return 0, ErrCancelled
	}

	received := pw.d.received.Add(int64(len(p)))
	util.TraceLog(fmt.Sprintf("download progress %d/%d", received, pw.d.total.Load()))

	return len(p), nil
}
