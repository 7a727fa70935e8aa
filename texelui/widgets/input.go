// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/input.go
// Summary: Single-line text input with placeholder.

package widgets

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// Input edits one line of text. Text scrolls horizontally to keep the caret visible.
type Input struct {
	core.BaseWidget
	Text             string
	Placeholder      string
	Caret            int
	Style            tcell.Style
	PlaceholderStyle tcell.Style
	OnChange         func(text string)
	OnSubmit         func(text string)

	off int
	inv func(core.Rect)
}

func NewInput(x, y, w int) *Input {
	tm := theming.Get()
	bg := tm.Color("input_bg", tcell.ColorBlack)
	in := &Input{
		Style:            tcell.StyleDefault.Background(bg).Foreground(tm.Color("input_fg", tcell.ColorWhite)),
		PlaceholderStyle: tcell.StyleDefault.Background(bg).Foreground(tm.Color("placeholder_fg", tcell.ColorGray)),
	}
	in.SetPosition(x, y)
	in.Resize(w, 1)
	in.SetFocusable(true)
	return in
}

// SetText replaces the text and puts the caret at the end.
func (in *Input) SetText(s string) {
	in.Text = s
	in.Caret = len([]rune(s))
	in.scroll()
	in.invalidate()
}

// Resize re-scrolls so the caret stays visible at the new width.
func (in *Input) Resize(w, h int) {
	in.BaseWidget.Resize(w, h)
	in.off = 0
	in.scroll()
}

func (in *Input) SetInvalidator(fn func(core.Rect)) { in.inv = fn }

func (in *Input) invalidate() {
	if in.inv != nil {
		in.inv(in.Rect)
	}
}

// scroll keeps the caret inside the visible window, measured in columns.
func (in *Input) scroll() {
	runes := []rune(in.Text)
	in.Caret = max(0, min(in.Caret, len(runes)))
	if in.Caret < in.off {
		in.off = in.Caret
	}
	for in.off < in.Caret && runewidth.StringWidth(string(runes[in.off:in.Caret])) >= in.Rect.W {
		in.off++
	}
}

func (in *Input) Draw(p *core.Painter) {
	style := in.EffectiveStyle(in.Style)
	p.Fill(in.Rect, ' ', style)
	clip := p.WithClip(in.Rect)
	if in.Text == "" && in.Placeholder != "" {
		clip.DrawText(in.Rect.X, in.Rect.Y, in.Placeholder, in.PlaceholderStyle)
	} else {
		runes := []rune(in.Text)
		if in.off < len(runes) {
			clip.DrawText(in.Rect.X, in.Rect.Y, string(runes[in.off:]), style)
		}
	}
	if in.IsFocused() {
		runes := []rune(in.Text)
		cx := in.Rect.X + runewidth.StringWidth(string(runes[min(in.off, in.Caret):in.Caret]))
		ch := ' '
		if in.Caret < len(runes) {
			ch = runes[in.Caret]
		}
		fg, bg, _ := style.Decompose()
		clip.SetCell(cx, in.Rect.Y, ch, tcell.StyleDefault.Foreground(bg).Background(fg))
	}
}

func (in *Input) HandleKey(ev *tcell.EventKey) bool {
	runes := []rune(in.Text)
	in.Caret = max(0, min(in.Caret, len(runes)))
	switch ev.Key() {
	case tcell.KeyLeft:
		in.Caret--
	case tcell.KeyRight:
		in.Caret++
	case tcell.KeyHome:
		in.Caret = 0
	case tcell.KeyEnd:
		in.Caret = len(runes)
	case tcell.KeyEnter:
		if in.OnSubmit != nil {
			in.OnSubmit(in.Text)
			return true
		}
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if in.Caret == 0 {
			return false
		}
		in.Caret--
		in.edit(append(runes[:in.Caret], runes[in.Caret+1:]...))
		return true
	case tcell.KeyDelete:
		if in.Caret >= len(runes) {
			return false
		}
		in.edit(append(runes[:in.Caret], runes[in.Caret+1:]...))
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		next := make([]rune, 0, len(runes)+1)
		next = append(next, runes[:in.Caret]...)
		next = append(next, ev.Rune())
		next = append(next, runes[in.Caret:]...)
		in.Caret++
		in.edit(next)
		return true
	default:
		return false
	}
	in.scroll()
	in.invalidate()
	return true
}

func (in *Input) edit(runes []rune) {
	in.Text = string(runes)
	in.scroll()
	in.invalidate()
	if in.OnChange != nil {
		in.OnChange(in.Text)
	}
}

// HandleMouse moves the caret to the clicked column.
func (in *Input) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !in.HitTest(x, y) || ev.Buttons()&tcell.Button1 == 0 {
		return false
	}
	runes := []rune(in.Text)
	col, i := 0, in.off
	for i < len(runes) && col+runewidth.RuneWidth(runes[i]) <= x-in.Rect.X {
		col += runewidth.RuneWidth(runes[i])
		i++
	}
	in.Caret = i
	in.invalidate()
	return true
}
