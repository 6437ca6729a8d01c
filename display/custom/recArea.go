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

// RecArea draws the track strip grid of a recorder panel. The width it gets
// is reported back to the panel, which picks the column count.
type RecArea struct {
	*cview.Box

	panel  *recorder.Panel
	scroll int
}

func NewRecArea(panel *recorder.Panel) *RecArea {
	area := &RecArea{
		Box:   cview.NewBox(),
		panel: panel,
	}
	area.SetBorder(true)
	area.SetBorderColor(theme.BorderColor)
	area.SetTitle(" Recorder ")
	area.SetTitleAlign(cview.AlignLeft)
	area.SetBackgroundColor(cview.Styles.PrimitiveBackgroundColor)

	return area
}

func (a *RecArea) Draw(screen tcell.Screen) {
	if a.panel.SelectedStrip() != nil {
		a.SetBorderColor(theme.SpillActive)
	} else {
		a.SetBorderColor(theme.BorderColor)
	}

	a.Box.Draw(screen)

	r := canvasRect(a.Box)
	if r.Empty() {
		return
	}

	a.panel.AllocateRecArea(r.Width)

	rects := a.StripRects(r)

	if selected := a.panel.SelectedStrip(); selected != nil {
		if sr, ok := rects[selected]; ok {
			top := sr.Y - r.Y
			a.scroll = scrollOffset(a.scroll, top, top+sr.Height, r.Height)
		}
	}

	for strip, sr := range rects {
		sr.Y -= a.scroll
		if sr.Y < r.Y || sr.Y+sr.Height > r.Y+r.Height {
			continue
		}
		strip.Render(screen, sr)
	}
}

// StripRects places every visible strip inside r, before scrolling.
func (a *RecArea) StripRects(r recorder.Rect) map[*recorder.TrackStrip]recorder.Rect {
	boxWidth := a.panel.Context().BoxWidth()
	rects := make(map[*recorder.TrackStrip]recorder.Rect)

	for _, pl := range a.panel.Placements() {
		_, height := pl.Strip.Measure()

		rects[pl.Strip] = recorder.Rect{
			X:      r.X + pl.Column*boxWidth + 1,
			Y:      r.Y + pl.Row*height,
			Width:  min(boxWidth-2, r.Width-pl.Column*boxWidth-1),
			Height: height,
		}
	}

	return rects
}
