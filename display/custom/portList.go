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
package custom

import (
	"fox-recorder/display/theme"
	"fox-recorder/recorder"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

const portGap = 1

// PortList draws the input ports of a recorder panel left to right,
// wrapping into further lines when the width runs out.
type PortList struct {
	*cview.Box

	panel  *recorder.Panel
	scroll int
}

func NewPortList(panel *recorder.Panel) *PortList {
	list := &PortList{
		Box:   cview.NewBox(),
		panel: panel,
	}
	list.SetBorder(true)
	list.SetBorderColor(theme.BorderColor)
	list.SetTitle(" Inputs ")
	list.SetTitleAlign(cview.AlignLeft)
	list.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	return list
}

func (l *PortList) Draw(screen tcell.Screen) {
	if l.panel.SelectedPort() != nil {
		l.SetBorderColor(theme.SpillActive)
	} else {
		l.SetBorderColor(theme.BorderColor)
	}

	l.Box.Draw(screen)

	r := canvasRect(l.Box)
	if r.Empty() {
		return
	}

	ports := l.panel.Ports()
	widgets := make([]recorder.Widget, len(ports))
	for i, port := range ports {
		widgets[i] = port
	}

	rects := FlowLayout(widgets, r)

	if selected := l.panel.SelectedPort(); selected != nil {
		for i, port := range ports {
			if port == selected {
				top := rects[i].Y - r.Y
				l.scroll = scrollOffset(l.scroll, top, top+rects[i].Height, r.Height)
			}
		}
	}

	for i, port := range ports {
		pr := rects[i]
		pr.Y -= l.scroll
		if pr.Y < r.Y || pr.Y+pr.Height > r.Y+r.Height {
			continue
		}
		port.Render(screen, pr)
	}
}

// FlowLayout places widgets at their measured size left to right inside r,
// starting a new line when the next one does not fit. Lines grow downward
// without limit; callers clip.
func FlowLayout(widgets []recorder.Widget, r recorder.Rect) []recorder.Rect {
	rects := make([]recorder.Rect, len(widgets))

	x, y, lineHeight := r.X, r.Y, 0
	for i, w := range widgets {
		width, height := w.Measure()
		width = min(width, r.Width)

		if x > r.X && x+width > r.X+r.Width {
			x = r.X
			y += lineHeight + portGap
			lineHeight = 0
		}

		rects[i] = recorder.Rect{X: x, Y: y, Width: width, Height: height}
		x += width + portGap
		lineHeight = max(lineHeight, height)
	}

	return rects
}
