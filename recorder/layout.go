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

const (
	defaultBoxWidth = 220
	defaultColumns  = 2

	minNameWidth = 6
	maxNameWidth = 20

	stripPadding = 2
)

// LayoutContext holds the sizes widgets of one panel share: the common width
// of the track name column and the cached strip grid geometry.
type LayoutContext struct {
	boxWidth       int
	columns        int
	availableWidth int

	names map[any]int

	resized func()
}

func NewLayoutContext() *LayoutContext {
	return &LayoutContext{
		boxWidth: defaultBoxWidth,
		columns:  defaultColumns,
		names:    make(map[any]int),
	}
}

// BoxWidth is the width of one strip cell including padding.
func (c *LayoutContext) BoxWidth() int { return c.boxWidth }
func (c *LayoutContext) Columns() int { return c.columns }
func (c *LayoutContext) AvailableWidth() int { return c.availableWidth }

// NameWidth is the widest registered name, clamped so very long names do not
// stretch every strip.
func (c *LayoutContext) NameWidth() int {
	width := minNameWidth
	for _, w := range c.names {
		width = max(width, w)
	}

	return min(width, maxNameWidth)
}

// setName registers the name width of a widget. A change of the common width
// asks the owner to lay out again.
func (c *LayoutContext) setName(key any, name string) {
	before := c.NameWidth()
	c.names[key] = len([]rune(name))

	if c.NameWidth() != before && c.resized != nil {
		c.resized()
	}
}

func (c *LayoutContext) dropName(key any) {
	before := c.NameWidth()
	delete(c.names, key)

	if c.NameWidth() != before && c.resized != nil {
		c.resized()
	}
}

// OnResize sets the callback run when a shared size changes.
func (c *LayoutContext) OnResize(fn func()) {
	c.resized = fn
}
