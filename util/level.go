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
package util

import "math"

// MinusInfinityDb stands in for the level of digital silence.
const MinusInfinityDb = -200.0

func AmplitudeToDb(amplitude float64) float64 {
	if amplitude <= 0 {
		return MinusInfinityDb
	}

	return math.Log10(amplitude) * 20.0
}

func DbToAmplitude(db float64) float64 {
	if db <= MinusInfinityDb {
		return 0
	}

	return math.Pow(10, db/20.0)
}

// LogScale compresses an amplitude in -1..1 for the logarithmic waveform
// view: the level in dB is mapped so -192 dB lands on 0 and 0 dB on 1, with
// the sign of the sample kept.
func LogScale(amplitude float64) float64 {
	sign := 1.0
	if amplitude < 0 {
		sign = -1.0
	}

	db := AmplitudeToDb(math.Abs(amplitude))
	if db < -192 {
		return 0
	}

	return sign * math.Pow((db+192)/192, 8)
}

// MeterDeflection maps a dB value to a 0..1 meter position. The curve follows
// the usual DAW meter scale: finer resolution near 0 dB, coarse below -40.
func MeterDeflection(db float64) float64 {
	var def float64

	switch {
	case db < -70:
		def = 0
	case db < -60:
		def = (db + 70) * 0.25
	case db < -50:
		def = (db+60)*0.5 + 2.5
	case db < -40:
		def = (db+50)*0.75 + 7.5
	case db < -30:
		def = (db+40)*1.5 + 15
	case db < -20:
		def = (db+30)*2 + 30
	case db < 6:
		def = (db+20)*2.5 + 50
	default:
		def = 115
	}

	return def / 115
}
