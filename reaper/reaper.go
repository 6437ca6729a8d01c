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
package reaper

import (
	"context"
	"log/slog"
	"slices"
	"sync"
)

var (
	lock          sync.Mutex
	reaped        bool
	callbacks     []callback
	registrations []string
	waitgroup     sync.WaitGroup

	reapContext, cancelReap = context.WithCancel(context.Background())
)

type callback struct {
	name         string
	callbackFunc func()
}

// Context is cancelled as soon as a reap starts. Long running goroutines
// select on it instead of polling Reaped.
func Context() context.Context {
	return reapContext
}

func Reaped() bool {
	lock.Lock()
	defer lock.Unlock()

	return reaped
}

// Reap cancels the shared context and runs the registered callbacks, last
// registered first. Only the first call does anything.
func Reap() {
	lock.Lock()
	if reaped {
		lock.Unlock()
		return
	}
	reaped = true

	callbacksReversed := slices.Clone(callbacks)
	lock.Unlock()

	cancelReap()
	slices.Reverse(callbacksReversed)

	for _, callback := range callbacksReversed {
		slog.Info("reaper: calling reap callback for '" + callback.name + "'")
		callback.callbackFunc()
	}
}

func Callback(name string, callbackFunc func()) {
	lock.Lock()
	defer lock.Unlock()

	callbacks = append(callbacks, callback{
		name:         name,
		callbackFunc: callbackFunc,
	})
}

func Register(name string) {
	lock.Lock()
	defer lock.Unlock()

	if slices.Contains(registrations, name) {
		slog.Warn("reaper: already registered '" + name + "'")
		return
	}

	registrations = append(registrations, name)
	waitgroup.Add(1)
	slog.Debug("reaper: registered '" + name + "'")
}

func Done(name string) {
	lock.Lock()
	defer lock.Unlock()

	if !slices.Contains(registrations, name) {
		slog.Warn("reaper: already done or doesn't exist: '" + name + "'")
		return
	}

	registrations = slices.DeleteFunc(registrations, func(test string) bool {
		return test == name
	})

	slog.Debug("reaper: done: '" + name + "'")
	waitgroup.Done()
}

// Wait blocks until every registered goroutine called Done.
func Wait() {
	waitgroup.Wait()
}
