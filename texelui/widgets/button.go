// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/button.go
// Summary: Push button activated by Enter, Space or a click.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// Button shows a centred caption and calls OnPress when activated.
// A disabled button draws greyed out and ignores input.
type Button struct {
	core.BaseWidget
	Text          string
	Style         tcell.Style
	DisabledStyle tcell.Style
	OnPress       func()

	disabled bool
	inv      func(core.Rect)
}

// NewButton creates a button. Width is the caption plus padding when w is zero.
func NewButton(x, y, w int, text string) *Button {
	tm := theming.Get()
	fg := tm.Color("button_fg", tcell.ColorBlack)
	b := &Button{
		Text:          text,
		Style:         tcell.StyleDefault.Foreground(fg).Background(tm.Color("button_bg", tcell.ColorTeal)),
		DisabledStyle: tcell.StyleDefault.Foreground(tm.Color("muted_fg", tcell.ColorGray)).Background(tm.Color("button_disabled_bg", tcell.ColorDarkGray)),
	}
	b.SetFocusedStyle(tcell.StyleDefault.Foreground(fg).Background(tm.Color("focus_bg", tcell.ColorAqua)).Bold(true), true)
	if w <= 0 {
		w = core.TextWidth(text) + 4
	}
	b.SetPosition(x, y)
	b.Resize(w, 1)
	b.SetFocusable(true)
	return b
}

// SetDisabled toggles the disabled state. Disabled buttons cannot take focus.
func (b *Button) SetDisabled(d bool) {
	if b.disabled == d {
		return
	}
	b.disabled = d
	b.SetFocusable(!d)
	if d {
		b.Blur()
	}
	b.invalidate()
}

// Disabled reports whether the button is disabled.
func (b *Button) Disabled() bool { return b.disabled }

// SetText replaces the caption.
func (b *Button) SetText(s string) {
	b.Text = s
	b.invalidate()
}

func (b *Button) SetInvalidator(fn func(core.Rect)) { b.inv = fn }

func (b *Button) invalidate() {
	if b.inv != nil {
		b.inv(b.Rect)
	}
}

func (b *Button) Draw(p *core.Painter) {
	style := b.EffectiveStyle(b.Style)
	if b.disabled {
		style = b.DisabledStyle
	}
	p.Fill(b.Rect, ' ', style)
	tw := core.TextWidth(b.Text)
	x := b.Rect.X + max((b.Rect.W-tw)/2, 0)
	p.WithClip(b.Rect).DrawText(x, b.Rect.Y, b.Text, style)
}

func (b *Button) HandleKey(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == ' ') {
		return b.press()
	}
	return false
}

func (b *Button) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	if !b.HitTest(x, y) {
		return false
	}
	if ev.Buttons()&tcell.Button1 != 0 {
		return b.press()
	}
	return false
}

func (b *Button) press() bool {
	if b.disabled {
		return false
	}
	if b.OnPress != nil {
		b.OnPress()
	}
	return true
}
