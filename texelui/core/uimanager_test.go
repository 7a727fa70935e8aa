// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package core_test

import (
	"os"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/texelui/core"
	"github.com/framegrace/proposer/texelui/widgets"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "core-test-config")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func TestUIManagerRendersPaneAndTextArea(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(20, 5)

	pane := widgets.NewPane(0, 0, 20, 5, tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	ui.AddWidget(pane)

	ta := widgets.NewTextArea(1, 1, 18, 3)
	b := widgets.NewBorder(0, 0, 20, 5, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	b.SetChild(ta)
	ui.AddWidget(b)
	ui.Focus(ta)

	buf := ui.Render()
	if len(buf) != 5 || len(buf[0]) != 20 {
		t.Fatalf("unexpected buffer size %dx%d", len(buf[0]), len(buf))
	}
}

type miniWidget struct {
	core.BaseWidget
	toggled bool
}

func (m *miniWidget) Draw(p *core.Painter) {
	ch := 'X'
	if m.toggled {
		ch = 'Y'
	}
	p.Fill(m.Rect, ch, tcell.StyleDefault)
}

// Typing invalidates only the text area; the rest of the frame is kept.
func TestUIManagerDirtyClipsRestrictDraw(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(10, 4)
	b := widgets.NewBorder(0, 0, 10, 4, tcell.StyleDefault)
	ta := widgets.NewTextArea(0, 0, 8, 2)
	b.SetChild(ta)
	ui.AddWidget(b)
	ui.Render()

	ui.Focus(ta)
	ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', 0))
	buf := ui.Render()
	if got := buf[1][1].Ch; got != 'a' {
		t.Fatalf("expected 'a' at (1,1), got %q", string(got))
	}
}

// Clicking should focus the inner TextArea, not the border, and allow typing.
func TestClickToFocusInnerWidget(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(10, 4)
	b := widgets.NewBorder(0, 0, 10, 4, tcell.StyleDefault)
	ta := widgets.NewTextArea(1, 1, 8, 2)
	b.SetChild(ta)
	ui.AddWidget(b)

	ui.HandleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(1, 1, tcell.ButtonNone, 0))
	if ui.Focused() != ta {
		t.Fatalf("focused = %T, want text area", ui.Focused())
	}
	ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', 0))
	buf := ui.Render()
	if got := buf[1][1].Ch; got != 'a' {
		t.Fatalf("expected 'a' at (1,1), got %q", string(got))
	}
}

// If a widget consumes keys but doesn't invalidate, UIManager falls back to full redraw.
func TestUIManagerKeyFallbackRedraw(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(6, 3)
	mw := &miniWidget{}
	mw.SetPosition(1, 1)
	mw.Resize(1, 1)
	mw.SetFocusable(true)
	ui.AddWidget(mw)

	buf := ui.Render()
	if got := buf[1][1].Ch; got != 'X' {
		t.Fatalf("expected 'X', got %q", string(got))
	}

	ui.Focus(mw)
	mw.toggled = true
	ui.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'z', 0))
	buf = ui.Render()
	if got := buf[1][1].Ch; got != 'Y' {
		t.Fatalf("expected 'Y' after fallback redraw, got %q", string(got))
	}
}

func TestUIManagerTabCyclesAcrossCards(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(40, 10)

	left := widgets.NewForm(0, 0, 20)
	a := widgets.NewInput(0, 0, 10)
	b := widgets.NewInput(0, 0, 10)
	left.Add(a, 1)
	left.Add(b, 1)
	leftCard := widgets.NewBorder(0, 0, 20, 10, tcell.StyleDefault)
	leftCard.SetChild(left)

	right := widgets.NewForm(0, 0, 20)
	btn := widgets.NewButton(0, 0, 0, "Copy")
	right.Add(btn, 1)
	rightCard := widgets.NewBorder(20, 0, 20, 10, tcell.StyleDefault)
	rightCard.SetChild(right)

	ui.AddWidget(leftCard)
	ui.AddWidget(rightCard)

	tab := tcell.NewEventKey(tcell.KeyTab, 0, 0)
	want := []core.Widget{a, b, btn, a}
	for i, w := range want {
		if !ui.HandleKey(tab) {
			t.Fatalf("tab %d not handled", i)
		}
		if ui.Focused() != w {
			t.Fatalf("tab %d: focused %T, want %T", i, ui.Focused(), w)
		}
	}
	if btn.IsFocused() {
		t.Error("previous stop should be blurred")
	}

	ui.HandleKey(tcell.NewEventKey(tcell.KeyBacktab, 0, 0))
	if ui.Focused() != btn {
		t.Errorf("backtab: focused %T, want button", ui.Focused())
	}
}

type recordingListener struct {
	moves []int
	ups   int
}

func (r *recordingListener) PointerMove(_, y int) { r.moves = append(r.moves, y) }
func (r *recordingListener) PointerUp(_, _ int)   { r.ups++ }

func TestPointerCaptureReceivesEventsAnywhere(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(10, 10)
	mw := &miniWidget{}
	mw.Resize(2, 2)
	ui.AddWidget(mw)

	l := &recordingListener{}
	release := ui.CapturePointer(l)
	if ui.PointerCaptures() != 1 {
		t.Fatalf("PointerCaptures = %d, want 1", ui.PointerCaptures())
	}

	ui.HandleMouse(tcell.NewEventMouse(50, 3, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(-4, 7, tcell.Button1, 0))
	ui.HandleMouse(tcell.NewEventMouse(99, 99, tcell.ButtonNone, 0))

	if len(l.moves) != 2 || l.moves[0] != 3 || l.moves[1] != 7 {
		t.Errorf("moves = %v, want [3 7]", l.moves)
	}
	if l.ups != 1 {
		t.Errorf("ups = %d, want 1", l.ups)
	}
	if ui.PointerCaptures() != 0 {
		t.Errorf("capture should be released after pointer-up")
	}

	// Later events go to the normal routing only.
	ui.HandleMouse(tcell.NewEventMouse(5, 5, tcell.Button1, 0))
	if len(l.moves) != 2 {
		t.Errorf("released listener got more moves: %v", l.moves)
	}
	release()
	release()
}

func TestPointerCaptureRelease(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(10, 10)
	l := &recordingListener{}
	release := ui.CapturePointer(l)
	release()
	ui.HandleMouse(tcell.NewEventMouse(1, 1, tcell.Button1, 0))
	if len(l.moves) != 0 || ui.PointerCaptures() != 0 {
		t.Errorf("released capture still active: moves=%v captures=%d", l.moves, ui.PointerCaptures())
	}

	ui.CapturePointer(&recordingListener{})
	ui.CapturePointer(&recordingListener{})
	ui.ReleasePointers()
	if ui.PointerCaptures() != 0 {
		t.Errorf("PointerCaptures after ReleasePointers = %d", ui.PointerCaptures())
	}
}

func TestRefreshNotifier(t *testing.T) {
	ui := core.NewUIManager()
	ch := make(chan bool, 1)
	ui.SetRefreshNotifier(ch)
	ui.Resize(4, 4)
	select {
	case <-ch:
	default:
		t.Fatal("Resize should request a refresh")
	}
	ui.Invalidate(core.Rect{})
	select {
	case <-ch:
		t.Fatal("empty invalidation should not request a refresh")
	default:
	}
	ui.Invalidate(core.Rect{W: 1, H: 1})
	ui.Invalidate(core.Rect{W: 1, H: 1}) // coalesced, must not block
	<-ch
}

func TestUIManagerUpdateRunsLockedAndRefreshes(t *testing.T) {
	ui := core.NewUIManager()
	ui.Resize(4, 1)
	w := &miniWidget{}
	w.Resize(4, 1)
	ui.AddWidget(w)
	ui.Render()

	ch := make(chan bool, 1)
	ui.SetRefreshNotifier(ch)
	done := make(chan struct{})
	go func() {
		ui.Update(func() { w.toggled = true })
		close(done)
	}()
	<-done
	select {
	case <-ch:
	default:
		t.Error("Update did not request a refresh")
	}
	if got := ui.Render()[0][0].Ch; got != 'Y' {
		t.Errorf("cell = %q, want Y", got)
	}
}
