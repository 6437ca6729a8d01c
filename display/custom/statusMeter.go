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
	"fmt"

	"fox-recorder/display/theme"

	"code.rocketnine.space/tslocum/cview"
	"github.com/gdamore/tcell/v2"
)

// StatusMeter is a labeled progress bar for percentages in the status area.
type StatusMeter struct {
	unit       string
	value      int
	grid       *cview.Grid
	headerView *cview.TextView
	meterView  *cview.ProgressBar
	valueView  *cview.TextView
}

func NewStatusMeter(headerWidth int, name string, initialValue int, unit string) *StatusMeter {
	meter := StatusMeter{
		grid: cview.NewGrid(),
		unit: unit,
	}

	meter.grid.SetPadding(0, 0, 0, 0)
	meter.grid.SetColumns(headerWidth, -1, 7)
	meter.grid.SetRows(1)

	meter.headerView = cview.NewTextView()
	meter.headerView.SetTextAlign(cview.AlignRight)
	meter.headerView.Write([]byte(fmt.Sprintf("%s: ", name)))
	meter.grid.AddItem(meter.headerView, 0, 0, 1, 1, 0, 0, false)

	meter.meterView = cview.NewProgressBar()
	meter.meterView.SetFilledRune(theme.RuneMeterFilled)
	meter.meterView.SetEmptyRune(theme.RuneMeterEmpty)
	meter.meterView.SetEmptyColor(theme.MeterEmpty)
	meter.grid.AddItem(meter.meterView, 0, 1, 1, 1, 0, 0, false)

	meter.valueView = cview.NewTextView()
	meter.valueView.SetPadding(0, 0, 1, 0)
	meter.grid.AddItem(meter.valueView, 0, 2, 1, 1, 0, 0, false)

	meter.SetCurrentValue(initialValue)

	return &meter
}

func (meter *StatusMeter) SetCurrentValue(value int) {
	meter.value = min(max(value, 0), 100)
	meter.meterView.SetProgress(meter.value)

	meter.valueView.Clear()
	meter.valueView.Write([]byte(fmt.Sprintf("%d %s", meter.value, meter.unit)))
}

func (meter *StatusMeter) Value() int {
	return meter.value
}

func (meter *StatusMeter) SetColor(color tcell.Color) {
	meter.meterView.SetFilledColor(color)
}

// UpdateThresholds sets the value and colors the bar green up to warnPct,
// yellow up to cautionPct and red above.
func (meter *StatusMeter) UpdateThresholds(value, warnPct, cautionPct int) {
	color := theme.Red

	if value <= warnPct {
		color = theme.Green
	} else if value <= cautionPct {
		color = theme.Yellow
	}

	meter.SetCurrentValue(value)
	meter.SetColor(color)
}

func (meter *StatusMeter) GetGrid() *cview.Grid {
	return meter.grid
}
