// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/label.go
// Summary: Single-line static text.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// Label draws one line of text, truncated to its width. A zero width sizes
// the label to its text.
type Label struct {
	core.BaseWidget
	Text  string
	Style tcell.Style
}

func NewLabel(x, y, w, h int, text string) *Label {
	l := &Label{
		Text:  text,
		Style: theming.Get().Style("surface_fg", tcell.ColorWhite, "surface_bg", tcell.ColorBlack),
	}
	if w <= 0 {
		w = core.TextWidth(text)
	}
	if h <= 0 {
		h = 1
	}
	l.SetPosition(x, y)
	l.Resize(w, h)
	return l
}

// SetText replaces the text without changing the size.
func (l *Label) SetText(s string) { l.Text = s }

func (l *Label) Draw(p *core.Painter) {
	p.Fill(l.Rect, ' ', l.Style)
	p.WithClip(l.Rect).DrawText(l.Rect.X, l.Rect.Y, l.Text, l.Style)
}
