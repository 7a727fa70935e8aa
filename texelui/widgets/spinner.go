// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/spinner.go
// Summary: Busy indicator advanced by explicit ticks.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

var spinnerFrames = []rune{'⠋', '⠙', '⠹', '⠸', '⠼', '⠴', '⠦', '⠧', '⠇', '⠏'}

// Spinner draws a rotating glyph followed by a caption.
type Spinner struct {
	core.BaseWidget
	Text  string
	Style tcell.Style
	frame int
	inv   func(core.Rect)
}

func NewSpinner(x, y int, text string) *Spinner {
	tm := theming.Get()
	s := &Spinner{
		Text:  text,
		Style: tm.Style("scroll_thumb", tcell.ColorAqua, "surface_bg", tcell.ColorBlack),
	}
	s.SetPosition(x, y)
	s.Resize(core.TextWidth(text)+2, 1)
	return s
}

// Tick advances to the next frame.
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
	if s.inv != nil {
		s.inv(s.Rect)
	}
}

// Frame returns the glyph currently shown.
func (s *Spinner) Frame() rune { return spinnerFrames[s.frame] }

func (s *Spinner) SetInvalidator(fn func(core.Rect)) { s.inv = fn }

func (s *Spinner) Draw(p *core.Painter) {
	p.Fill(s.Rect, ' ', s.Style)
	p.SetCell(s.Rect.X, s.Rect.Y, s.Frame(), s.Style)
	p.WithClip(s.Rect).DrawText(s.Rect.X+2, s.Rect.Y, s.Text, s.Style)
}
