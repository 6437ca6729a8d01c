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
	"cmp"
	"slices"

	"fox-recorder/audio"
	"fox-recorder/signals"
)

// PresentationChange reports a hidden or order change of one route.
type PresentationChange struct {
	Track *Track
	What  Property
}

// Session is the set of routes being recorded.
type Session struct {
	name     string
	snapshot string
	dirty    bool

	routes []*Track
	groups []*RouteGroup
	nextID uint64

	deletionInProgress bool

	RouteAdded          *signals.Signal[[]*Track]
	PresentationChanged *signals.Signal[PresentationChange]
	InputChanged        *signals.Signal[*Track]
	DirtyChanged        *signals.Signal[bool]
	GoingAway           *signals.Signal[struct{}]
}

func New(name, snapshot string) *Session {
	if snapshot == "" {
		snapshot = name
	}

	return &Session{
		name:                name,
		snapshot:            snapshot,
		RouteAdded:          signals.New[[]*Track](),
		PresentationChanged: signals.New[PresentationChange](),
		InputChanged:        signals.New[*Track](),
		DirtyChanged:        signals.New[bool](),
		GoingAway:           signals.New[struct{}](),
	}
}

func (s *Session) Name() string { return s.name }
func (s *Session) SnapshotName() string { return s.snapshot }
func (s *Session) Dirty() bool { return s.dirty }

// DeletionInProgress is true while Close is tearing the session down.
func (s *Session) DeletionInProgress() bool {
	return s.deletionInProgress
}

func (s *Session) SetSnapshotName(snapshot string) {
	s.snapshot = snapshot
	s.DirtyChanged.Emit(s.dirty)
}

func (s *Session) SetDirty(dirty bool) {
	if s.dirty == dirty {
		return
	}
	s.dirty = dirty
	s.DirtyChanged.Emit(dirty)
}

// NewTrack creates a route that belongs to the session once passed to
// AddRoutes.
func (s *Session) NewTrack(opts TrackOptions) *Track {
	s.nextID++
	return newTrack(s.nextID, opts)
}

// Routes returns every route, tracks and busses, in insertion order.
func (s *Session) Routes() []*Track {
	return slices.Clone(s.routes)
}

// Tracks returns only the recordable routes.
func (s *Session) Tracks() []*Track {
	tracks := make([]*Track, 0, len(s.routes))
	for _, r := range s.routes {
		if r.IsTrack() {
			tracks = append(tracks, r)
		}
	}

	return tracks
}

func (s *Session) RouteByName(name string) *Track {
	for _, r := range s.routes {
		if r.name == name {
			return r
		}
	}

	return nil
}

func (s *Session) AddRoutes(routes ...*Track) {
	if len(routes) == 0 {
		return
	}

	for _, r := range routes {
		r.session = s
		s.routes = append(s.routes, r)
	}

	s.renumber()
	s.SetDirty(true)
	s.RouteAdded.Emit(slices.Clone(routes))
}

// RemoveRoute drops a route. Holders of the track learn about it through
// DropReferences.
func (s *Session) RemoveRoute(t *Track) {
	idx := slices.Index(s.routes, t)
	if idx < 0 {
		return
	}

	s.routes = slices.Delete(s.routes, idx, idx+1)
	if t.group != nil {
		t.group.remove(t)
		t.group = nil
	}

	t.DropReferences.Emit(struct{}{})
	t.session = nil

	s.renumber()
	s.SetDirty(true)
}

// Close tears the session down: every route drops its references while
// DeletionInProgress reports true, then GoingAway fires.
func (s *Session) Close() {
	s.deletionInProgress = true

	routes := s.routes
	s.routes = nil
	s.groups = nil

	for _, r := range routes {
		r.DropReferences.Emit(struct{}{})
		r.session = nil
	}

	s.GoingAway.Emit(struct{}{})
}

// ConnectedCount is the number of tracks recording from the port.
func (s *Session) ConnectedCount(port string) int {
	count := 0
	for _, r := range s.routes {
		if r.IsTrack() && r.ConnectedTo(port) {
			count++
		}
	}

	return count
}

// UpdateMeters refreshes every track meter from the engine's input meters.
func (s *Session) UpdateMeters(meters map[string]*audio.PortMeter) {
	for _, r := range s.routes {
		r.updateMeter(meters)
	}
}

func (s *Session) Groups() []*RouteGroup {
	return slices.Clone(s.groups)
}

func (s *Session) GroupByName(name string) *RouteGroup {
	for _, g := range s.groups {
		if g.name == name {
			return g
		}
	}

	return nil
}

// NewGroup returns the group with the given name, creating it when needed.
func (s *Session) NewGroup(name string) *RouteGroup {
	if g := s.GroupByName(name); g != nil {
		return g
	}

	g := &RouteGroup{name: name}
	s.groups = append(s.groups, g)
	s.SetDirty(true)

	return g
}

func (s *Session) AddToGroup(t *Track, g *RouteGroup) {
	if t.group == g {
		return
	}

	if t.group != nil {
		t.group.remove(t)
	}

	t.group = g
	if g != nil {
		g.add(t)
	}

	t.changed(PropGroup)
}

func (s *Session) RemoveFromGroup(t *Track) {
	s.AddToGroup(t, nil)
}

// renumber assigns track numbers in presentation order.
func (s *Session) renumber() {
	tracks := s.Tracks()
	SortByPresentation(tracks)

	for i, t := range tracks {
		t.setNumber(i + 1)
	}
}

func (s *Session) trackChanged(t *Track, what Property) {
	s.SetDirty(true)

	if what.Contains(PropOrder) {
		s.renumber()
	}

	if what.Contains(PropHidden | PropOrder) {
		s.PresentationChanged.Emit(PresentationChange{Track: t, What: what})
	}

	if what.Contains(PropInputs) {
		s.InputChanged.Emit(t)
	}
}

// SortByPresentation orders routes by order key, ties broken by creation.
func SortByPresentation(tracks []*Track) {
	slices.SortStableFunc(tracks, func(a, b *Track) int {
		if c := cmp.Compare(a.order, b.order); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
}
