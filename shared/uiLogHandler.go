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
package shared

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// LevelLogWriter is the part of a UI that shows log lines.
type LevelLogWriter interface {
	WriteLevelLog(level slog.Level, message string)
}

// UiLogHandler sends log records to the UI as a single line, attributes
// appended as key=value. Error records also go to errorCallback.
type UiLogHandler struct {
	level         slog.Leveler
	ui            LevelLogWriter
	errorCallback func(string)

	attrs string
	group string
}

func NewUiLogHandler(out LevelLogWriter, level slog.Leveler, errorCallback func(string)) *UiLogHandler {
	return &UiLogHandler{
		level:         level,
		ui:            out,
		errorCallback: errorCallback,
	}
}

func (h *UiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteString(h.attrs)

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&b, h.group, a)
		return true
	})

	message := b.String()
	h.ui.WriteLevelLog(r.Level, message)

	if r.Level >= slog.LevelError && h.errorCallback != nil {
		h.errorCallback(message)
	}

	return nil
}

func (h *UiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *UiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		writeAttr(&b, h.group, a)
	}

	clone := *h
	clone.attrs = b.String()

	return &clone
}

func (h *UiLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.group = h.group + name + "."

	return &clone
}

func writeAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		prefix := group
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			writeAttr(b, prefix, ga)
		}
		return
	}

	fmt.Fprintf(b, " %s%s=%v", group, a.Key, a.Value.Any())
}
