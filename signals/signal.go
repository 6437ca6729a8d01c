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
package signals

import (
	"slices"
	"sync"
)

// Dispatcher moves a slot invocation onto another goroutine, normally the UI
// thread. cview's Application.QueueUpdateDraw fits this shape.
type Dispatcher interface {
	Queue(fn func())
}

type immediate struct{}

func (immediate) Queue(fn func()) { fn() }

// Immediate runs queued functions inline on the emitting goroutine.
var Immediate Dispatcher = immediate{}

// DispatcherFunc adapts a plain function to the Dispatcher interface.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Queue(fn func()) { f(fn) }

type slot[T any] struct {
	id         uint64
	dispatcher Dispatcher
	fn         func(T)
}

// Signal is a typed notification source with any number of connected slots.
type Signal[T any] struct {
	lock   sync.Mutex
	nextID uint64
	slots  []slot[T]
}

func New[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Connect registers fn to be called synchronously on every Emit.
func (s *Signal[T]) Connect(fn func(T)) *Connection {
	return s.ConnectVia(Immediate, fn)
}

// ConnectVia registers fn to be called through the dispatcher on every Emit.
func (s *Signal[T]) ConnectVia(dispatcher Dispatcher, fn func(T)) *Connection {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.nextID++
	id := s.nextID
	s.slots = append(s.slots, slot[T]{id: id, dispatcher: dispatcher, fn: fn})

	return &Connection{
		disconnect: func() { s.remove(id) },
	}
}

// Emit calls every slot connected at the time of the call. Slots may
// disconnect themselves or others while being called.
func (s *Signal[T]) Emit(value T) {
	s.lock.Lock()
	slots := slices.Clone(s.slots)
	s.lock.Unlock()

	for _, sl := range slots {
		if !s.connected(sl.id) {
			continue
		}

		fn := sl.fn
		sl.dispatcher.Queue(func() { fn(value) })
	}
}

func (s *Signal[T]) Len() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.slots)
}

func (s *Signal[T]) connected(id uint64) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return slices.ContainsFunc(s.slots, func(sl slot[T]) bool { return sl.id == id })
}

func (s *Signal[T]) remove(id uint64) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.slots = slices.DeleteFunc(s.slots, func(sl slot[T]) bool { return sl.id == id })
}

// Connection is the handle returned by Connect.
type Connection struct {
	once       sync.Once
	disconnect func()
}

// Disconnect removes the slot. Calling it more than once is harmless.
func (c *Connection) Disconnect() {
	if c == nil {
		return
	}

	c.once.Do(c.disconnect)
}

// ConnectionList owns a set of connections that are released together.
type ConnectionList struct {
	lock        sync.Mutex
	connections []*Connection
}

func (l *ConnectionList) Add(c *Connection) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.connections = append(l.connections, c)
}

func (l *ConnectionList) Len() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.connections)
}

// DropConnections disconnects every connection in the list and empties it.
func (l *ConnectionList) DropConnections() {
	l.lock.Lock()
	connections := l.connections
	l.connections = nil
	l.lock.Unlock()

	for _, c := range connections {
		c.Disconnect()
	}
}
