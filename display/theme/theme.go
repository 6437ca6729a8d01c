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
package theme

import (
	"github.com/gdamore/tcell/v2"
)

const (
	Blue         = tcell.ColorBlue
	BlueRGB      = "0000FF"
	Green        = tcell.Color71
	GreenRGB     = "5FAF5F"
	Pink         = tcell.Color131
	PinkRGB      = "AF5F5F"
	Red          = tcell.Color124
	RedRGB       = "AF0000"
	SoftGreen    = tcell.Color72
	SoftGreenRGB = "5FAF87"
	Yellow       = tcell.Color142
	YellowRGB    = "AFAF00"
	Gray         = tcell.ColorGray
	GrayRGB      = "808080"
	Orange       = tcell.Color172

	BorderColor = tcell.Color243

	Background          = tcell.ColorDefault
	AlternateBackground = tcell.Color233
	SelectedBackground  = tcell.Color236
	Insensitive         = tcell.Color240
	MeterEmpty          = tcell.Color237

	ScopeWave = tcell.Color107
	ScopeClip = tcell.Color160
	ScopeZero = tcell.Color238

	SpillActive = tcell.Color214
)

// TrackColors is the palette track color indexes refer to.
var TrackColors = []tcell.Color{
	tcell.Color67,
	tcell.Color136,
	tcell.Color96,
	tcell.Color66,
	tcell.Color131,
	tcell.Color101,
	tcell.Color60,
	tcell.Color109,
}

func TrackColor(index int) tcell.Color {
	if index < 0 {
		index = -index
	}

	return TrackColors[index%len(TrackColors)]
}

// LevelColor is the meter color used at and above a level in dB.
type LevelColor struct {
	Level float32
	Color tcell.Color
}

// LevelColors is ordered loudest first.
var LevelColors = []LevelColor{
	{0, Red},
	{-2, Pink},
	{-6, Yellow},
	{-18, Green},
	{-200, SoftGreen},
}

func ColorForLevel(level float32) tcell.Color {
	for _, lc := range LevelColors {
		if level >= lc.Level {
			return lc.Color
		}
	}

	return SoftGreen
}

const (
	RuneClock  = rune(9201) // ⏱
	RunePause  = rune(9208) // ⏸
	RunePlay   = rune(9205) // ⏵
	RuneRecord = rune(9210) // ⏺
	RuneStop   = rune(9209) // ⏹
	RuneFailed = rune(9932) // ⛌

	RuneMeterFilled = rune(9607) // ▇
	RuneMeterEmpty  = rune(9617) // ░
	RuneUpperHalf   = rune(9600) // ▀
	RuneLowerHalf   = rune(9604) // ▄
	RuneFullBlock   = rune(9608) // █
	RuneZeroLine    = rune(9472) // ─
	RuneQuarterNote = rune(9833) // ♩

	RuneSpillOn  = rune(9673) // ◉
	RuneSpillOff = rune(9675) // ○
)

// ActivityRunes renders a 0..1 level as a growing bar.
var ActivityRunes = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
