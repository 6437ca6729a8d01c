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

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"fox-recorder/audio"
	"fox-recorder/display/theme"
)

// EventMeter shows recent activity of the 16 MIDI channels and of system
// messages as a row of bars with a label row below.
type EventMeter struct {
	levels [audio.EventSlots]float32
}

func NewEventMeter() *EventMeter {
	return &EventMeter{}
}

// SlotLabel names a slot the way the tooltips of a channel strip do.
func SlotLabel(slot int) string {
	if slot == audio.SystemSlot {
		return "SyS"
	}

	return fmt.Sprintf("C%d", slot+1)
}

func shortSlotLabel(slot, width int) string {
	switch {
	case width >= 3:
		return SlotLabel(slot)
	case width == 2 && slot == audio.SystemSlot:
		return "Sy"
	case width == 2:
		return fmt.Sprintf("%02d", slot+1)
	case slot == audio.SystemSlot:
		return "S"
	default:
		return strings.ToUpper(fmt.Sprintf("%x", slot))
	}
}

// SlotColor is the bar color of a slot, shifting from dark blue at channel 1
// to pale at the system slot.
func SlotColor(slot int) tcell.Color {
	chn := float64(slot) / 16
	r := min(1, chn/1.2)
	g := min(1, 0.1+chn/1.5)
	b := min(1, 0.1+chn/1.75)

	return tcell.NewRGBColor(int32(r*255), int32(g*255), int32(b*255))
}

// Update stores new levels and reports whether anything changed.
func (m *EventMeter) Update(levels [audio.EventSlots]float32) bool {
	if levels == m.levels {
		return false
	}
	m.levels = levels

	return true
}

func (m *EventMeter) Levels() [audio.EventSlots]float32 {
	return m.levels
}

func (m *EventMeter) Measure() (int, int) {
	return audio.EventSlots * 2, 2
}

func (m *EventMeter) HandleKey(*tcell.EventKey) bool {
	return false
}

func (m *EventMeter) Render(c Canvas, r Rect) {
	if r.Empty() {
		return
	}

	cellWidth := min(max(r.Width/audio.EventSlots, 1), 4)
	base := tcell.StyleDefault.Background(theme.Background)
	steps := len(theme.ActivityRunes) - 1

	for slot := 0; slot < audio.EventSlots; slot++ {
		x := r.X + slot*cellWidth
		if x+cellWidth > r.X+r.Width {
			break
		}

		level := min(max(m.levels[slot], 0), 1)
		bar := theme.ActivityRunes[int(math.Ceil(float64(level)*float64(steps)))]
		style := base.Foreground(SlotColor(slot))
		for i := 0; i < cellWidth; i++ {
			c.SetContent(x+i, r.Y, bar, nil, style)
		}

		if r.Height > 1 {
			drawText(c, x, r.Y+1, cellWidth, shortSlotLabel(slot, cellWidth), base.Foreground(theme.Gray))
		}
	}
}
