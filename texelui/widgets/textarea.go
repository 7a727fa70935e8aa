// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/textarea.go
// Summary: Multi-line text editor with placeholder and internal scrolling.

package widgets

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// TextArea is a minimal multiline text editor with its own viewport.
type TextArea struct {
	core.BaseWidget
	Lines            []string
	CaretX           int
	CaretY           int
	OffX             int
	OffY             int
	Style            tcell.Style
	PlaceholderStyle tcell.Style
	Placeholder      string
	OnChange         func(text string)

	inv func(core.Rect)
}

func NewTextArea(x, y, w, h int) *TextArea {
	tm := theming.Get()
	bg := tm.Color("input_bg", tcell.ColorBlack)
	ta := &TextArea{
		Lines:            []string{""},
		Style:            tcell.StyleDefault.Background(bg).Foreground(tm.Color("input_fg", tcell.ColorWhite)),
		PlaceholderStyle: tcell.StyleDefault.Background(bg).Foreground(tm.Color("placeholder_fg", tcell.ColorGray)),
	}
	ta.SetFocusedStyle(tcell.StyleDefault.Background(tm.Color("focus_bg", bg)).Foreground(tm.Color("input_fg", tcell.ColorWhite)), false)
	ta.SetPosition(x, y)
	ta.Resize(w, h)
	ta.SetFocusable(true)
	return ta
}

// Text returns the content joined with newlines.
func (t *TextArea) Text() string { return strings.Join(t.Lines, "\n") }

// SetText replaces the content and moves the caret to the end.
func (t *TextArea) SetText(s string) {
	t.Lines = strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	t.CaretY = len(t.Lines) - 1
	t.CaretX = len([]rune(t.Lines[t.CaretY]))
	t.OffX, t.OffY = 0, 0
	t.clampCaret()
	t.ensureVisible()
	t.invalidateViewport()
}

// Resize rescrolls from the top-left so the caret stays in view.
func (t *TextArea) Resize(w, h int) {
	t.BaseWidget.Resize(w, h)
	t.OffX, t.OffY = 0, 0
	t.clampCaret()
	t.ensureVisible()
}

// SetInvalidator allows the UI manager to inject a dirty-region invalidator.
func (t *TextArea) SetInvalidator(fn func(core.Rect)) { t.inv = fn }

func (t *TextArea) clampCaret() {
	if len(t.Lines) == 0 {
		t.Lines = []string{""}
	}
	t.CaretY = max(0, min(t.CaretY, len(t.Lines)-1))
	t.CaretX = max(0, min(t.CaretX, len([]rune(t.Lines[t.CaretY]))))
}

func (t *TextArea) ensureVisible() {
	if t.CaretX < t.OffX {
		t.OffX = t.CaretX
	}
	if t.Rect.W > 0 && t.CaretX >= t.OffX+t.Rect.W {
		t.OffX = t.CaretX - t.Rect.W + 1
	}
	if t.CaretY < t.OffY {
		t.OffY = t.CaretY
	}
	if t.Rect.H > 0 && t.CaretY >= t.OffY+t.Rect.H {
		t.OffY = t.CaretY - t.Rect.H + 1
	}
	t.OffX = max(t.OffX, 0)
	t.OffY = max(t.OffY, 0)
}

func (t *TextArea) empty() bool { return len(t.Lines) == 1 && t.Lines[0] == "" }

func (t *TextArea) Draw(p *core.Painter) {
	style := t.EffectiveStyle(t.Style)
	p.Fill(t.Rect, ' ', style)
	clip := p.WithClip(t.Rect)

	if t.empty() && t.Placeholder != "" {
		for row, line := range wrapText(t.Placeholder, t.Rect.W) {
			if row >= t.Rect.H {
				break
			}
			clip.DrawText(t.Rect.X, t.Rect.Y+row, line, t.PlaceholderStyle)
		}
	} else {
		for row := 0; row < t.Rect.H; row++ {
			ly := t.OffY + row
			if ly >= len(t.Lines) {
				break
			}
			visible := []rune(t.Lines[ly])
			if t.OffX < len(visible) {
				clip.DrawText(t.Rect.X, t.Rect.Y+row, string(visible[t.OffX:]), style)
			}
		}
	}

	// Caret: underlying rune in reverse video.
	if t.IsFocused() {
		cx := t.CaretX - t.OffX
		cy := t.CaretY - t.OffY
		if cx >= 0 && cy >= 0 && cx < t.Rect.W && cy < t.Rect.H {
			ch := ' '
			line := []rune(t.Lines[t.CaretY])
			if t.CaretX < len(line) {
				ch = line[t.CaretX]
			}
			fg, bg, _ := style.Decompose()
			p.SetCell(t.Rect.X+cx, t.Rect.Y+cy, ch, tcell.StyleDefault.Background(fg).Foreground(bg))
		}
	}
}

// HandleMouse places the caret on click and scrolls on wheel.
func (t *TextArea) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	lx := x - t.Rect.X
	ly := y - t.Rect.Y
	if lx < 0 || ly < 0 || lx >= t.Rect.W || ly >= t.Rect.H {
		return false
	}
	btn := ev.Buttons()
	if btn&(tcell.WheelUp|tcell.WheelDown) != 0 {
		if btn&tcell.WheelUp != 0 && t.OffY > 0 {
			t.OffY--
		}
		if btn&tcell.WheelDown != 0 && t.OffY+t.Rect.H < len(t.Lines) {
			t.OffY++
		}
		t.invalidateViewport()
		return true
	}
	if btn&tcell.Button1 != 0 {
		t.CaretY = t.OffY + ly
		t.CaretX = t.OffX + lx
		t.clampCaret()
		t.ensureVisible()
		t.invalidateViewport()
		return true
	}
	return false
}

func (t *TextArea) insertText(s string) {
	for _, r := range s {
		if r == '\n' {
			t.splitLine()
			continue
		}
		line := []rune(t.Lines[t.CaretY])
		line = append(line[:t.CaretX], append([]rune{r}, line[t.CaretX:]...)...)
		t.Lines[t.CaretY] = string(line)
		t.CaretX++
	}
	t.changed()
}

func (t *TextArea) splitLine() {
	line := []rune(t.Lines[t.CaretY])
	head, tail := string(line[:t.CaretX]), string(line[t.CaretX:])
	t.Lines[t.CaretY] = head
	t.Lines = append(t.Lines[:t.CaretY+1], append([]string{tail}, t.Lines[t.CaretY+1:]...)...)
	t.CaretY++
	t.CaretX = 0
}

func (t *TextArea) changed() {
	t.clampCaret()
	t.ensureVisible()
	t.invalidateViewport()
	if t.OnChange != nil {
		t.OnChange(t.Text())
	}
}

func (t *TextArea) invalidateViewport() {
	if t.inv != nil {
		t.inv(t.Rect)
	}
}
