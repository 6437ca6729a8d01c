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

import "testing"

type queueDispatcher struct {
	queued []func()
}

func (d *queueDispatcher) Queue(fn func()) { d.queued = append(d.queued, fn) }

func (d *queueDispatcher) run() {
	for _, fn := range d.queued {
		fn()
	}
	d.queued = nil
}

func TestSignalEmit(t *testing.T) {
	s := New[int]()

	var got []int
	s.Connect(func(v int) { got = append(got, v) })
	s.Connect(func(v int) { got = append(got, v*10) })

	s.Emit(3)

	if len(got) != 2 || got[0] != 3 || got[1] != 30 {
		t.Fatalf("unexpected slot calls: %v", got)
	}
}

func TestConnectionDisconnect(t *testing.T) {
	s := New[string]()

	calls := 0
	c := s.Connect(func(string) { calls++ })

	s.Emit("a")
	c.Disconnect()
	c.Disconnect()
	s.Emit("b")

	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no slots left, got %d", s.Len())
	}
}

func TestDisconnectDuringEmit(t *testing.T) {
	s := New[struct{}]()

	var second *Connection
	secondCalls := 0

	s.Connect(func(struct{}) { second.Disconnect() })
	second = s.Connect(func(struct{}) { secondCalls++ })

	s.Emit(struct{}{})

	if secondCalls != 0 {
		t.Fatalf("slot disconnected mid-emit was still called")
	}
}

func TestConnectVia(t *testing.T) {
	s := New[int]()
	d := &queueDispatcher{}

	got := 0
	s.ConnectVia(d, func(v int) { got = v })

	s.Emit(7)
	if got != 0 {
		t.Fatalf("slot ran before the dispatcher drained")
	}

	d.run()
	if got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
}

func TestConnectionListDropConnections(t *testing.T) {
	a := New[int]()
	b := New[int]()

	var list ConnectionList
	list.Add(a.Connect(func(int) {}))
	list.Add(b.Connect(func(int) {}))
	list.Add(b.Connect(func(int) {}))

	if list.Len() != 3 {
		t.Fatalf("expected 3 connections, got %d", list.Len())
	}

	list.DropConnections()

	if a.Len() != 0 || b.Len() != 0 {
		t.Fatalf("slots survived DropConnections: a=%d b=%d", a.Len(), b.Len())
	}
	if list.Len() != 0 {
		t.Fatalf("list not emptied")
	}
}
