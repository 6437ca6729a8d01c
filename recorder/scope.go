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
	"math"

	"github.com/gdamore/tcell/v2"

	"fox-recorder/audio"
	"fox-recorder/display/theme"
	"fox-recorder/util"
)

const (
	pixelEmpty uint8 = iota
	pixelWave
	pixelClip
)

// Scope is a scrolling min/max waveform of one audio input. Columns are drawn
// into an off-screen image that wraps around; xpos is the column written next
// and therefore also the oldest one on screen. Every cell holds two vertical
// pixels drawn with half block glyphs.
type Scope struct {
	width  int
	height int // pixels, two per row
	image  []uint8
	xpos   int

	sampleRate int
	seconds    float64
	logScale   bool
	showClip   bool
	clipLevel  float64
}

func NewScope(opts Options, sampleRate int) *Scope {
	s := &Scope{
		sampleRate: sampleRate,
		seconds:    opts.Seconds,
		logScale:   opts.LogScale,
		showClip:   opts.ShowClip,
		clipLevel:  opts.ClipLevel,
	}
	s.resize(opts.ScopeWidth, opts.ScopeRows)

	return s
}

func (s *Scope) resize(width, rows int) {
	s.width = max(width, 1)
	s.height = max(rows, 1) * 2
	s.image = make([]uint8, s.width*s.height)
	s.xpos = 0
}

// SetWidth changes the number of columns. The history is discarded.
func (s *Scope) SetWidth(width int) {
	if width == s.width {
		return
	}
	s.resize(width, s.height/2)
}

// SamplesPerPixel is the number of samples folded into one column so that a
// full width covers the configured number of seconds.
func (s *Scope) SamplesPerPixel() int {
	return max(1, int(s.seconds*float64(s.sampleRate))/s.width)
}

// Update drains complete columns from the ring into the image. It returns
// false, leaving the image untouched, when less than one column of samples is
// waiting.
func (s *Scope) Update(ring *audio.SampleRing) bool {
	if ring == nil {
		return false
	}

	spp := s.SamplesPerPixel()
	drew := false

	for {
		lo, hi, ok := ring.Read(spp)
		if !ok {
			break
		}
		s.drawColumn(float64(lo), float64(hi))
		drew = true
	}

	return drew
}

func (s *Scope) pixelRow(v float64) int {
	half := float64(s.height) / 2
	y := int(math.Round(half - half*v))

	return min(max(y, 0), s.height-1)
}

func (s *Scope) drawColumn(lo, hi float64) {
	for y := 0; y < s.height; y++ {
		s.image[y*s.width+s.xpos] = pixelEmpty
	}

	value := pixelWave
	if s.showClip && (hi >= s.clipLevel || -lo >= s.clipLevel) {
		value = pixelClip
	}

	if s.logScale {
		lo = util.LogScale(lo)
		hi = util.LogScale(hi)
	}

	top := s.pixelRow(hi)
	bottom := s.pixelRow(lo)
	for y := top; y <= bottom; y++ {
		s.image[y*s.width+s.xpos] = value
	}

	s.xpos = (s.xpos + 1) % s.width
}

func (s *Scope) Measure() (int, int) {
	return s.width, s.height / 2
}

func (s *Scope) HandleKey(*tcell.EventKey) bool {
	return false
}

// Render copies the image twice, once shifted left by xpos and once by
// xpos-width, so the newest column ends up at the right edge. A narrower area
// shows only the newest columns.
func (s *Scope) Render(c Canvas, r Rect) {
	if r.Empty() {
		return
	}

	skip := max(s.width-r.Width, 0)
	s.copyColumns(c, r, s.xpos, s.width, -skip)
	s.copyColumns(c, r, 0, s.xpos, s.width-s.xpos-skip)
}

func (s *Scope) copyColumns(c Canvas, r Rect, from, to, dx int) {
	rows := min(r.Height, s.height/2)

	for col := from; col < to; col++ {
		x := col - from + dx
		if x < 0 {
			continue
		}
		if x >= r.Width {
			return
		}

		for row := 0; row < rows; row++ {
			ch, style := s.cell(col, row)
			c.SetContent(r.X+x, r.Y+row, ch, nil, style)
		}
	}
}

func pixelColor(v uint8) tcell.Color {
	if v == pixelClip {
		return theme.ScopeClip
	}

	return theme.ScopeWave
}

func (s *Scope) cell(col, row int) (rune, tcell.Style) {
	upper := s.image[(row*2)*s.width+col]
	lower := s.image[(row*2+1)*s.width+col]
	style := tcell.StyleDefault.Background(theme.Background)

	switch {
	case upper == pixelEmpty && lower == pixelEmpty:
		if row == s.height/4 {
			return theme.RuneZeroLine, style.Foreground(theme.ScopeZero)
		}
		return ' ', style
	case upper == lower:
		return theme.RuneFullBlock, style.Foreground(pixelColor(upper))
	case lower == pixelEmpty:
		return theme.RuneUpperHalf, style.Foreground(pixelColor(upper))
	case upper == pixelEmpty:
		return theme.RuneLowerHalf, style.Foreground(pixelColor(lower))
	default:
		return theme.RuneUpperHalf, style.Foreground(pixelColor(upper)).Background(pixelColor(lower))
	}
}
