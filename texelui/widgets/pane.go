// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/pane.go
// Summary: Solid background fill.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// Pane fills its rect with a background style.
type Pane struct {
	core.BaseWidget
	Style tcell.Style
}

// NewPane creates a pane. A zero style picks the theme surface colours.
func NewPane(x, y, w, h int, style tcell.Style) *Pane {
	if style == tcell.StyleDefault {
		style = theming.Get().Style("surface_fg", tcell.ColorWhite, "surface_bg", tcell.ColorBlack)
	}
	p := &Pane{Style: style}
	p.SetPosition(x, y)
	p.Resize(w, h)
	return p
}

func (p *Pane) Draw(painter *core.Painter) {
	painter.Fill(p.Rect, ' ', p.EffectiveStyle(p.Style))
}
