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

	"github.com/gdamore/tcell/v2"
	"gitlab.com/gomidi/midi/v2"

	"fox-recorder/audio"
	"fox-recorder/display/theme"
)

const (
	tokenWidth = 6
	tokenGap   = 1
)

// Token is the two line rendering of one event.
type Token struct {
	Top    string
	Bottom string
}

// FormatEvent renders an event as a fixed width token. Unknown or truncated
// events report false.
func FormatEvent(ev audio.Event) (Token, bool) {
	data := ev.Bytes()
	if len(data) == 0 {
		return Token{}, false
	}

	msg := midi.Message(data)
	var ch, key, value uint8
	note := fmt.Sprintf("%c", theme.RuneQuarterNote)

	switch data[0] & 0xF0 {
	case 0x80:
		if !msg.GetNoteOff(&ch, &key, &value) {
			return Token{}, false
		}
		return Token{fmt.Sprintf("%02d%sOff", ch+1, note), fmt.Sprintf(" %4s ", midi.Note(key).String())}, true
	case 0x90:
		if len(data) < 3 {
			return Token{}, false
		}
		// velocity 0 keeps the note on label; the raw bytes are used so
		// that note-off aliasing does not apply
		ch, key = data[0]&0x0F, data[1]
		return Token{fmt.Sprintf("%02d%s On", ch+1, note), fmt.Sprintf(" %4s ", midi.Note(key).String())}, true
	case 0xA0:
		if !msg.GetPolyAfterTouch(&ch, &key, &value) {
			return Token{}, false
		}
		return Token{fmt.Sprintf("%02d%s KP", ch+1, note), fmt.Sprintf(" %4s ", midi.Note(key).String())}, true
	case 0xB0:
		if !msg.GetControlChange(&ch, &key, &value) {
			return Token{}, false
		}
		return Token{fmt.Sprintf("%02d CC ", ch+1), fmt.Sprintf("%02x  %02x", key, value)}, true
	case 0xC0:
		if !msg.GetProgramChange(&ch, &value) {
			return Token{}, false
		}
		return Token{fmt.Sprintf("%02d PC ", ch+1), fmt.Sprintf("  %02x  ", value)}, true
	case 0xD0:
		if !msg.GetAfterTouch(&ch, &value) {
			return Token{}, false
		}
		return Token{fmt.Sprintf("%02d KP ", ch+1), fmt.Sprintf("  %02x  ", value)}, true
	case 0xE0:
		var rel int16
		var abs uint16
		if !msg.GetPitchBend(&ch, &rel, &abs) {
			return Token{}, false
		}
		return Token{fmt.Sprintf("%02d PB ", ch+1), fmt.Sprintf(" %04x ", abs)}, true
	}

	if data[0] == 0xF0 {
		return Token{"Sys.Ex", ""}, true
	}

	return Token{}, false
}

// EventMonitor lists the most recent events of one event port, newest on
// the right, as many as fit.
type EventMonitor struct {
	events []audio.Event
}

func NewEventMonitor(size int) *EventMonitor {
	return &EventMonitor{events: make([]audio.Event, max(size, 1))}
}

// Update reads the ring and reports whether new events arrived.
func (m *EventMonitor) Update(ring *audio.EventRing) bool {
	if ring == nil {
		return false
	}

	return ring.Read(m.events)
}

// Tokens returns the formatted events, newest first.
func (m *EventMonitor) Tokens() []Token {
	tokens := make([]Token, 0, len(m.events))
	for _, ev := range m.events {
		if ev.Empty() {
			break
		}
		if tok, ok := FormatEvent(ev); ok {
			tokens = append(tokens, tok)
		}
	}

	return tokens
}

func (m *EventMonitor) Measure() (int, int) {
	return 6 * (tokenWidth + tokenGap), 2
}

func (m *EventMonitor) HandleKey(*tcell.EventKey) bool {
	return false
}

func (m *EventMonitor) Render(c Canvas, r Rect) {
	if r.Empty() {
		return
	}

	base := tcell.StyleDefault.Background(theme.Background)
	x := r.X + r.Width

	for _, tok := range m.Tokens() {
		x -= tokenWidth
		if x < r.X {
			return
		}

		drawText(c, x, r.Y, tokenWidth, tok.Top, base.Foreground(theme.Yellow))
		if r.Height > 1 {
			drawText(c, x, r.Y+1, tokenWidth, tok.Bottom, base)
		}

		x -= tokenGap
	}
}
