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
package recorder

// PortSnapshot is the JSON view of one input port.
type PortSnapshot struct {
	Name    string  `json:"name"`
	Kind    string  `json:"kind"`
	Count   int     `json:"count"`
	Spilled bool    `json:"spilled"`
	Level   float32 `json:"level"`
	Peak    float32 `json:"peak"`
}

// StripSnapshot is the JSON view of one visible track strip.
type StripSnapshot struct {
	Name         string  `json:"name"`
	Number       int     `json:"number"`
	Column       int     `json:"column"`
	Row          int     `json:"row"`
	Active       bool    `json:"active"`
	RecEnabled   bool    `json:"rec_enabled"`
	Muted        bool    `json:"muted"`
	MonitorInput bool    `json:"monitor_input"`
	MonitorDisk  bool    `json:"monitor_disk"`
	Group        string  `json:"group,omitempty"`
	Level        float32 `json:"level"`
	MaxLevel     float32 `json:"max_level"`
}

type Snapshot struct {
	Title   string          `json:"title"`
	Columns int             `json:"columns"`
	Spill   []string        `json:"spill,omitempty"`
	Ports   []PortSnapshot  `json:"ports"`
	Strips  []StripSnapshot `json:"strips"`
}

// Snapshot captures what the panel currently shows.
func (p *Panel) Snapshot() Snapshot {
	snap := Snapshot{
		Title:   p.title,
		Columns: p.ctx.columns,
		Spill:   p.SpillNames(),
		Ports:   make([]PortSnapshot, 0, len(p.portOrder)),
		Strips:  make([]StripSnapshot, 0, len(p.placements)),
	}

	for _, port := range p.portOrder {
		level := port.Level()
		snap.Ports = append(snap.Ports, PortSnapshot{
			Name:    port.Name(),
			Kind:    port.Kind().String(),
			Count:   port.Count(),
			Spilled: port.Spilled(),
			Level:   level.Level,
			Peak:    level.Peak,
		})
	}

	for _, pl := range p.placements {
		t := pl.Strip.Track()
		group := ""
		if g := t.Group(); g != nil {
			group = g.Name()
		}

		snap.Strips = append(snap.Strips, StripSnapshot{
			Name:         t.Name(),
			Number:       t.Number(),
			Column:       pl.Column,
			Row:          pl.Row,
			Active:       t.Active(),
			RecEnabled:   t.RecEnabled(),
			Muted:        t.Muted(),
			MonitorInput: t.MonitorInput(),
			MonitorDisk:  t.MonitorDisk(),
			Group:        group,
			Level:        pl.Strip.Meter().Level(),
			MaxLevel:     pl.Strip.Meter().LongTermMax(),
		})
	}

	return snap
}
