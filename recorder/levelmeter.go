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
	"time"

	"github.com/gdamore/tcell/v2"

	"fox-recorder/audio"
	"fox-recorder/display/theme"
	"fox-recorder/util"
)

const meterMaxWidth = 5

// LevelMeter is a horizontal peak meter with a held peak marker and a long
// term maximum printed at the right.
type LevelMeter struct {
	level       float32
	peak        float32
	longTermMax float32

	peakHold time.Duration
	lastPeak time.Time
	now      func() time.Time

	sensitive bool
}

func NewLevelMeter(peakHold time.Duration) *LevelMeter {
	m := &LevelMeter{
		peakHold:  peakHold,
		now:       time.Now,
		sensitive: true,
	}
	m.Clear()

	return m
}

// Clear drops the held peak and the long term maximum.
func (m *LevelMeter) Clear() {
	m.level = audio.MinDb
	m.peak = audio.MinDb
	m.longTermMax = audio.MinDb
	m.lastPeak = time.Time{}
}

func (m *LevelMeter) SetSensitive(sensitive bool) {
	m.sensitive = sensitive
}

// SetLevel reports whether the displayed level or peak moved.
func (m *LevelMeter) SetLevel(level float32) bool {
	prevLevel, prevPeak := m.level, m.peak
	m.level = max(level, audio.MinDb)
	m.longTermMax = max(m.longTermMax, m.level)

	now := m.now()
	if m.level > m.peak || now.Sub(m.lastPeak) > m.peakHold {
		m.peak = m.level
		m.lastPeak = now
	}

	return m.level != prevLevel || m.peak != prevPeak
}

func (m *LevelMeter) Level() float32 { return m.level }
func (m *LevelMeter) Peak() float32 { return m.peak }
func (m *LevelMeter) LongTermMax() float32 { return m.longTermMax }

func (m *LevelMeter) Measure() (int, int) {
	return 16 + meterMaxWidth, 1
}

func (m *LevelMeter) HandleKey(*tcell.EventKey) bool {
	return false
}

func (m *LevelMeter) Render(c Canvas, r Rect) {
	if r.Empty() {
		return
	}

	bar := r.Width
	if r.Width > meterMaxWidth*2 {
		bar = r.Width - meterMaxWidth
	}

	filled := int(math.Round(util.MeterDeflection(float64(m.level)) * float64(bar)))
	peakCell := int(math.Round(util.MeterDeflection(float64(m.peak))*float64(bar))) - 1

	base := tcell.StyleDefault.Background(theme.Background)

	for i := 0; i < bar; i++ {
		color := theme.ColorForLevel(cellLevel(i, bar))
		if !m.sensitive {
			color = theme.Insensitive
		}

		switch {
		case i == peakCell && m.peak > audio.MinDb:
			c.SetContent(r.X+i, r.Y, theme.RuneMeterFilled, nil, base.Foreground(color).Bold(true))
		case i < filled:
			c.SetContent(r.X+i, r.Y, theme.RuneMeterFilled, nil, base.Foreground(color))
		default:
			c.SetContent(r.X+i, r.Y, theme.RuneMeterEmpty, nil, base.Foreground(theme.MeterEmpty).Dim(true))
		}
	}

	if bar == r.Width {
		return
	}

	text := "  -∞"
	if m.longTermMax > audio.MinDb {
		text = fmt.Sprintf("%4.0f", math.Abs(float64(m.longTermMax)))
	}
	drawTextRight(c, r.X+bar, r.Y, meterMaxWidth, text,
		base.Foreground(theme.ColorForLevel(m.longTermMax)).Bold(true))
}

// cellLevel is the lowest dB value that lights cell i of a bar of width
// cells, found by walking the deflection curve.
func cellLevel(i, width int) float32 {
	target := float64(i+1) / float64(width)
	for db := -70.0; db < 6; db += 0.5 {
		if util.MeterDeflection(db) >= target {
			return float32(db)
		}
	}

	return 6
}
