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
	"fox-recorder/recorder"

	"code.rocketnine.space/tslocum/cview"
)

// canvasRect is the inner rect of a box as a recorder rect.
func canvasRect(box *cview.Box) recorder.Rect {
	x, y, width, height := box.GetInnerRect()
	return recorder.Rect{X: x, Y: y, Width: width, Height: height}
}

// scrollOffset returns the first line to show so that the line range
// [top, bottom) stays inside a window of the given height.
func scrollOffset(current, top, bottom, height int) int {
	if height <= 0 {
		return 0
	}

	if top < current {
		return top
	}
	if bottom > current+height {
		return bottom - height
	}

	return current
}
