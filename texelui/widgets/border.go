// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/border.go
// Summary: Box border with an optional title and a single child in its client area.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// Border draws a border around its Rect and lays out an optional child inside.
type Border struct {
	core.BaseWidget
	Style      tcell.Style
	TitleStyle tcell.Style
	Title      string
	Charset    [6]rune // h, v, tl, tr, bl, br
	Child      core.Widget
}

func NewBorder(x, y, w, h int, style tcell.Style) *Border {
	tm := theming.Get()
	if style == tcell.StyleDefault {
		style = tm.Style("card_border", tcell.ColorGray, "surface_bg", tcell.ColorBlack)
	}
	_, bg, _ := style.Decompose()
	b := &Border{
		Style:      style,
		TitleStyle: tcell.StyleDefault.Foreground(tm.Color("title_fg", tcell.ColorWhite)).Background(bg).Bold(true),
		Charset:    [6]rune{'─', '│', '╭', '╮', '╰', '╯'},
	}
	b.SetPosition(x, y)
	b.Resize(w, h)
	return b
}

// ClientRect returns the area inside the border.
func (b *Border) ClientRect() core.Rect {
	r := b.Rect
	if r.W < 2 || r.H < 2 {
		return core.Rect{X: r.X, Y: r.Y}
	}
	return core.Rect{X: r.X + 1, Y: r.Y + 1, W: r.W - 2, H: r.H - 2}
}

func (b *Border) SetChild(w core.Widget) {
	b.Child = w
	b.layout()
}

func (b *Border) layout() {
	if b.Child == nil {
		return
	}
	cr := b.ClientRect()
	b.Child.SetPosition(cr.X, cr.Y)
	b.Child.Resize(cr.W, cr.H)
}

func (b *Border) SetPosition(x, y int) {
	b.BaseWidget.SetPosition(x, y)
	b.layout()
}

func (b *Border) Resize(w, h int) {
	b.BaseWidget.Resize(w, h)
	b.layout()
}

func (b *Border) Draw(p *core.Painter) {
	_, bg, _ := b.Style.Decompose()
	p.Fill(b.ClientRect(), ' ', tcell.StyleDefault.Background(bg))
	p.DrawBorder(b.Rect, b.Style, b.Charset)
	if b.Title != "" && b.Rect.W > 4 {
		title := " " + b.Title + " "
		p.WithClip(core.Rect{X: b.Rect.X + 2, Y: b.Rect.Y, W: b.Rect.W - 4, H: 1}).
			DrawText(b.Rect.X+2, b.Rect.Y, title, b.TitleStyle)
	}
	if b.Child != nil {
		b.Child.Draw(p.WithClip(b.ClientRect()))
	}
}

// VisitChildren implements core.ChildContainer.
func (b *Border) VisitChildren(f func(core.Widget)) {
	if b.Child != nil {
		f(b.Child)
	}
}

// SetInvalidator forwards the invalidator to the child.
func (b *Border) SetInvalidator(fn func(core.Rect)) {
	if ia, ok := b.Child.(core.InvalidationAware); ok {
		ia.SetInvalidator(fn)
	}
}

// HandleMouse forwards to the child.
func (b *Border) HandleMouse(ev *tcell.EventMouse) bool {
	if ma, ok := b.Child.(core.MouseAware); ok {
		return ma.HandleMouse(ev)
	}
	return false
}

// CycleFocus delegates to the child.
func (b *Border) CycleFocus(forward bool) bool {
	if fc, ok := b.Child.(core.FocusCycler); ok {
		return fc.CycleFocus(forward)
	}
	return false
}
