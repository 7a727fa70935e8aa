// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/textarea_keys.go
// Summary: Keyboard editing for TextArea.

package widgets

import (
	"github.com/gdamore/tcell/v2"
)

// HandleKey implements caret movement and editing.
func (t *TextArea) HandleKey(ev *tcell.EventKey) bool {
	t.clampCaret()
	switch ev.Key() {
	case tcell.KeyLeft:
		t.CaretX--
	case tcell.KeyRight:
		t.CaretX++
	case tcell.KeyUp:
		if t.CaretY == 0 {
			return false
		}
		t.CaretY--
	case tcell.KeyDown:
		if t.CaretY >= len(t.Lines)-1 {
			return false
		}
		t.CaretY++
	case tcell.KeyHome:
		t.CaretX = 0
	case tcell.KeyEnd:
		t.CaretX = 1 << 30
	case tcell.KeyEnter:
		t.splitLine()
		t.changed()
		return true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if t.CaretX > 0 {
			line := []rune(t.Lines[t.CaretY])
			t.Lines[t.CaretY] = string(append(line[:t.CaretX-1], line[t.CaretX:]...))
			t.CaretX--
		} else if t.CaretY > 0 {
			prev := t.Lines[t.CaretY-1]
			t.CaretX = len([]rune(prev))
			t.Lines[t.CaretY-1] = prev + t.Lines[t.CaretY]
			t.Lines = append(t.Lines[:t.CaretY], t.Lines[t.CaretY+1:]...)
			t.CaretY--
		} else {
			return false
		}
		t.changed()
		return true
	case tcell.KeyDelete:
		line := []rune(t.Lines[t.CaretY])
		if t.CaretX < len(line) {
			t.Lines[t.CaretY] = string(append(line[:t.CaretX], line[t.CaretX+1:]...))
		} else if t.CaretY < len(t.Lines)-1 {
			t.Lines[t.CaretY] += t.Lines[t.CaretY+1]
			t.Lines = append(t.Lines[:t.CaretY+1], t.Lines[t.CaretY+2:]...)
		} else {
			return false
		}
		t.changed()
		return true
	case tcell.KeyRune:
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) != 0 {
			return false
		}
		t.insertText(string(ev.Rune()))
		return true
	default:
		return false
	}

	t.clampCaret()
	t.ensureVisible()
	t.invalidateViewport()
	return true
}
