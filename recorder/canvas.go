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
	"github.com/gdamore/tcell/v2"
)

// Canvas is the drawing surface widgets render to. tcell.Screen satisfies it.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type Rect struct {
	X, Y, Width, Height int
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Row returns the single line at offset dy, clipped to r.
func (r Rect) Row(dy int) Rect {
	if dy < 0 || dy >= r.Height {
		return Rect{X: r.X, Y: r.Y + dy}
	}

	return Rect{X: r.X, Y: r.Y + dy, Width: r.Width, Height: 1}
}

// Widget is anything the recorder panel lays out. Render draws into the given
// area, Measure reports the natural size in cells.
type Widget interface {
	Render(c Canvas, r Rect)
	Measure() (width, height int)
	HandleKey(ev *tcell.EventKey) bool
}

// drawText prints text at x,y and returns the number of cells used. Text
// wider than width is cut off.
func drawText(c Canvas, x, y, width int, text string, style tcell.Style) int {
	used := 0
	for _, ch := range text {
		if used >= width {
			break
		}
		c.SetContent(x+used, y, ch, nil, style)
		used++
	}

	return used
}

// drawTextRight prints text right aligned inside width cells.
func drawTextRight(c Canvas, x, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	if len(runes) > width {
		runes = runes[len(runes)-width:]
	}

	drawText(c, x+width-len(runes), y, width, string(runes), style)
}

func fill(c Canvas, r Rect, ch rune, style tcell.Style) {
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			c.SetContent(x, y, ch, nil, style)
		}
	}
}

// truncate shortens s to width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:max(width, 0)])
	}

	return string(runes[:width-1]) + "…"
}
