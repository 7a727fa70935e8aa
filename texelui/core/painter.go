// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/painter.go
// Summary: Clipped drawing primitives over a cell framebuffer.

package core

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is a single framebuffer cell.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Painter draws into a framebuffer, discarding anything outside its clip.
type Painter struct {
	buf  [][]Cell
	clip Rect
}

// NewPainter returns a painter over buf restricted to clip.
func NewPainter(buf [][]Cell, clip Rect) *Painter {
	return &Painter{buf: buf, clip: clip}
}

// Clip returns the current clip rectangle.
func (p *Painter) Clip() Rect { return p.clip }

// WithClip returns a painter sharing the buffer whose clip is the intersection of the
// current clip and r.
func (p *Painter) WithClip(r Rect) *Painter {
	return &Painter{buf: p.buf, clip: p.clip.Intersect(r)}
}

// SetCell writes one cell if it is inside both the clip and the buffer.
func (p *Painter) SetCell(x, y int, ch rune, style tcell.Style) {
	if !p.clip.Contains(x, y) {
		return
	}
	if y < 0 || y >= len(p.buf) || x < 0 || x >= len(p.buf[y]) {
		return
	}
	p.buf[y][x] = Cell{Ch: ch, Style: style}
}

// Fill paints every cell of r with ch.
func (p *Painter) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(p.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, y, ch, style)
		}
	}
}

// DrawText writes s starting at (x, y) and returns the number of columns used.
// Wide runes occupy two columns; the trailing column is blanked.
func (p *Painter) DrawText(x, y int, s string, style tcell.Style) int {
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		p.SetCell(x+col, y, r, style)
		if w == 2 {
			p.SetCell(x+col+1, y, 0, style)
		}
		col += w
	}
	return col
}

// DrawBorder draws a box around r using charset (h, v, tl, tr, bl, br).
func (p *Painter) DrawBorder(r Rect, style tcell.Style, charset [6]rune) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1 := r.X + r.W - 1
	y1 := r.Y + r.H - 1
	for x := r.X + 1; x < x1; x++ {
		p.SetCell(x, r.Y, charset[0], style)
		p.SetCell(x, y1, charset[0], style)
	}
	for y := r.Y + 1; y < y1; y++ {
		p.SetCell(r.X, y, charset[1], style)
		p.SetCell(x1, y, charset[1], style)
	}
	p.SetCell(r.X, r.Y, charset[2], style)
	p.SetCell(x1, r.Y, charset[3], style)
	p.SetCell(r.X, y1, charset[4], style)
	p.SetCell(x1, y1, charset[5], style)
}

// TextWidth returns the display width of s in columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}
