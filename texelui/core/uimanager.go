// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/uimanager.go
// Summary: Widget tree owner: focus, mouse routing, pointer capture and framebuffer composition.

package core

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
)

// UIManager owns a small widget tree and composes it to a buffer.
type UIManager struct {
	mu        sync.Mutex // protects widgets, focus, capture, buffer
	dirtyMu   sync.Mutex // protects dirty list and notifier
	pointerMu sync.Mutex // protects pointer grants
	W, H      int
	widgets   []Widget // later entries draw on top
	bgStyle   tcell.Style
	notifier  chan<- bool
	focused   Widget
	buf       [][]Cell
	dirty     []Rect
	capture   Widget
	grants    []*pointerGrant
}

type pointerGrant struct {
	listener PointerListener
	released bool
}

func NewUIManager() *UIManager {
	tm := theming.Get()
	bg := tm.Color("surface_bg", tcell.ColorBlack)
	fg := tm.Color("surface_fg", tcell.ColorWhite)
	return &UIManager{
		bgStyle: tcell.StyleDefault.Background(bg).Foreground(fg),
	}
}

func (u *UIManager) SetRefreshNotifier(ch chan<- bool) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.notifier = ch
}

func (u *UIManager) RequestRefresh() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.requestRefreshLocked()
}

func (u *UIManager) Resize(w, h int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	u.W, u.H = w, h
	// Resize framebuffer and invalidate all
	u.buf = nil
	u.invalidateAllLocked()
}

func (u *UIManager) AddWidget(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.widgets = append(u.widgets, w)
	u.propagate(w)
	u.dirtyMu.Lock()
	u.invalidateAllLocked()
	u.dirtyMu.Unlock()
}

// Adopt wires the invalidator and pointer capturer into a subtree that was
// attached after AddWidget (e.g. a child swapped into a container).
func (u *UIManager) Adopt(w Widget) {
	if w == nil {
		return
	}
	u.propagate(w)
}

func (u *UIManager) propagate(w Widget) {
	if ia, ok := w.(InvalidationAware); ok {
		ia.SetInvalidator(u.Invalidate)
	}
	if pa, ok := w.(PointerCaptureAware); ok {
		pa.SetPointerCapturer(u)
	}
	if hc, ok := w.(HiddenChildContainer); ok {
		hc.VisitAllChildren(func(child Widget) { u.propagate(child) })
	} else if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) { u.propagate(child) })
	}
}

func (u *UIManager) Focus(w Widget) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.focusLocked(w)
}

// Focused returns the focused widget, or nil.
func (u *UIManager) Focused() Widget {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.focused
}

func (u *UIManager) focusLocked(w Widget) {
	if w == nil || !w.Focusable() {
		return
	}
	if u.focused == w {
		return
	}
	if u.focused != nil {
		u.focused.Blur()
	}
	u.focused = w
	u.focused.Focus()
}

func (u *UIManager) HandleKey(ev *tcell.EventKey) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.focused != nil && u.focused.HandleKey(ev) {
		u.dirtyMu.Lock()
		if len(u.dirty) == 0 {
			u.invalidateAllLocked()
		} else {
			u.requestRefreshLocked()
		}
		u.dirtyMu.Unlock()
		return true
	}

	// Tab/Shift-Tab: delegate to root container's focus cycling
	if ev.Key() == tcell.KeyTab || ev.Key() == tcell.KeyBacktab {
		forward := ev.Key() == tcell.KeyTab && ev.Modifiers()&tcell.ModShift == 0
		if u.cycleFocusLocked(forward) {
			u.dirtyMu.Lock()
			u.invalidateAllLocked()
			u.dirtyMu.Unlock()
			return true
		}
	}

	return false
}

// cycleFocusLocked finds the appropriate FocusCycler and cycles focus.
func (u *UIManager) cycleFocusLocked(forward bool) bool {
	if fc, ok := u.focused.(FocusCycler); ok {
		if fc.CycleFocus(forward) {
			u.syncFocusLocked()
			return true
		}
	}

	for _, w := range u.widgets {
		if fc, ok := w.(FocusCycler); ok {
			if u.focused != nil && containsWidget(w, u.focused) {
				if fc.CycleFocus(forward) {
					u.syncFocusLocked()
					return true
				}
			}
		}
	}

	return u.cycleRootWidgetsLocked(forward)
}

// syncFocusLocked records the widget a container focused internally.
func (u *UIManager) syncFocusLocked() {
	for _, w := range u.widgets {
		if f := findFocused(w); f != nil {
			if u.focused != nil && u.focused != f {
				u.focused.Blur()
			}
			u.focused = f
			return
		}
	}
}

func findFocused(w Widget) Widget {
	if cc, ok := w.(ChildContainer); ok {
		var found Widget
		cc.VisitChildren(func(child Widget) {
			if found == nil {
				found = findFocused(child)
			}
		})
		if found != nil {
			return found
		}
	}
	if fs, ok := w.(FocusState); ok && fs.IsFocused() {
		return w
	}
	return nil
}

func containsWidget(w, target Widget) bool {
	if w == target {
		return true
	}
	if cc, ok := w.(ChildContainer); ok {
		found := false
		cc.VisitChildren(func(child Widget) {
			if !found && containsWidget(child, target) {
				found = true
			}
		})
		return found
	}
	return false
}

// cycleRootWidgetsLocked cycles focus among root-level widgets.
func (u *UIManager) cycleRootWidgetsLocked(forward bool) bool {
	if len(u.widgets) == 0 {
		return false
	}

	currentIdx := -1
	for i, w := range u.widgets {
		if u.focused != nil && containsWidget(w, u.focused) {
			currentIdx = i
			break
		}
	}

	n := len(u.widgets)
	for offset := 1; offset <= n; offset++ {
		var idx int
		if forward {
			idx = (currentIdx + offset + n) % n
		} else {
			idx = (currentIdx - offset + 2*n) % n
		}
		w := u.widgets[idx]
		if fc, ok := w.(FocusCycler); ok && !w.Focusable() {
			if u.focused != nil {
				u.focused.Blur()
				u.focused = nil
			}
			fc.CycleFocus(forward)
			u.syncFocusLocked()
			if u.focused != nil {
				return true
			}
			continue
		}
		if w.Focusable() {
			u.focusLocked(w)
			return true
		}
	}

	return false
}

// CapturePointer routes every subsequent pointer move and the next pointer-up
// to l, wherever the pointer is. The grant ends on pointer-up or when release
// is called, whichever comes first.
func (u *UIManager) CapturePointer(l PointerListener) (release func()) {
	if l == nil {
		return func() {}
	}
	g := &pointerGrant{listener: l}
	u.pointerMu.Lock()
	u.grants = append(u.grants, g)
	u.pointerMu.Unlock()
	return func() { u.releaseGrant(g) }
}

func (u *UIManager) releaseGrant(g *pointerGrant) {
	u.pointerMu.Lock()
	defer u.pointerMu.Unlock()
	if g.released {
		return
	}
	g.released = true
	for i, other := range u.grants {
		if other == g {
			u.grants = append(u.grants[:i], u.grants[i+1:]...)
			break
		}
	}
}

// PointerCaptures returns the number of live pointer grants.
func (u *UIManager) PointerCaptures() int {
	u.pointerMu.Lock()
	defer u.pointerMu.Unlock()
	return len(u.grants)
}

// ReleasePointers drops every pointer grant without notifying listeners.
// Used on teardown.
func (u *UIManager) ReleasePointers() {
	u.pointerMu.Lock()
	for _, g := range u.grants {
		g.released = true
	}
	u.grants = nil
	u.pointerMu.Unlock()

	u.mu.Lock()
	u.capture = nil
	u.mu.Unlock()
}

// dispatchPointer delivers the event to pointer grants. Returns false when no
// grant is live.
func (u *UIManager) dispatchPointer(x, y int, down bool) bool {
	u.pointerMu.Lock()
	grants := make([]*pointerGrant, len(u.grants))
	copy(grants, u.grants)
	u.pointerMu.Unlock()
	if len(grants) == 0 {
		return false
	}

	// Listeners mutate widgets, so they run with the tree locked. They may
	// release their own grant; that only takes pointerMu.
	u.mu.Lock()
	for _, g := range grants {
		if down {
			g.listener.PointerMove(x, y)
			continue
		}
		g.listener.PointerUp(x, y)
		u.releaseGrant(g)
	}
	if !down {
		u.capture = nil
	}
	u.mu.Unlock()
	u.InvalidateAll()
	return true
}

// HandleMouse routes mouse events for click-to-focus, pointer capture and capture drags.
func (u *UIManager) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()
	nowDown := buttons&tcell.Button1 != 0

	if u.dispatchPointer(x, y, nowDown) {
		return true
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	prevIsDown := u.capture != nil

	// Start capture on press over a widget
	if !prevIsDown && nowDown {
		if w := u.topmostAtLocked(x, y); w != nil {
			u.focusLocked(w)
			u.capture = w
			if mw, ok := w.(MouseAware); ok {
				_ = mw.HandleMouse(ev)
			}
			u.dirtyMu.Lock()
			u.invalidateAllLocked()
			u.dirtyMu.Unlock()
			return true
		}
		return false
	}

	// While captured, forward all mouse events
	if u.capture != nil {
		if mw, ok := u.capture.(MouseAware); ok {
			_ = mw.HandleMouse(ev)
		}
		if prevIsDown && !nowDown {
			u.capture = nil
		}
		u.dirtyMu.Lock()
		u.invalidateAllLocked()
		u.dirtyMu.Unlock()
		return true
	}

	// Wheel-only events over topmost
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		if w := u.topmostAtLocked(x, y); w != nil {
			if mw, ok := w.(MouseAware); ok {
				_ = mw.HandleMouse(ev)
				u.dirtyMu.Lock()
				u.invalidateAllLocked()
				u.dirtyMu.Unlock()
				return true
			}
		}
	}

	// Mouse move events (no buttons pressed) - forward for hover tracking
	if buttons == tcell.ButtonNone {
		handled := false
		for _, w := range u.widgets {
			handled = forwardHover(w, ev) || handled
		}
		if handled {
			u.dirtyMu.Lock()
			u.requestRefreshLocked()
			u.dirtyMu.Unlock()
		}
		return handled
	}

	return false
}

// forwardHover lets every mouse-aware widget see plain moves so hover state
// can be cleared when the pointer leaves.
func forwardHover(w Widget, ev *tcell.EventMouse) bool {
	handled := false
	if mw, ok := w.(MouseAware); ok {
		handled = mw.HandleMouse(ev)
	}
	if _, isHitTester := w.(HitTester); isHitTester {
		return handled
	}
	if cc, ok := w.(ChildContainer); ok {
		cc.VisitChildren(func(child Widget) {
			handled = forwardHover(child, ev) || handled
		})
	}
	return handled
}

func (u *UIManager) topmostAtLocked(x, y int) Widget {
	for i := len(u.widgets) - 1; i >= 0; i-- {
		if w := deepHit(u.widgets[i], x, y); w != nil {
			return w
		}
	}
	return nil
}

func deepHit(w Widget, x, y int) Widget {
	if ht, ok := w.(HitTester); ok {
		if dw := ht.WidgetAt(x, y); dw != nil {
			return dw
		}
	}
	if cc, ok := w.(ChildContainer); ok {
		var res Widget
		cc.VisitChildren(func(child Widget) {
			if res != nil {
				return
			}
			if dw := deepHit(child, x, y); dw != nil {
				res = dw
			}
		})
		if res != nil {
			return res
		}
	}
	if w.HitTest(x, y) {
		if _, ok := w.(MouseAware); ok || w.Focusable() {
			return w
		}
	}
	return nil
}

// Update runs fn with the widget tree locked and schedules a full redraw.
// Goroutines other than the event loop use it to mutate widgets.
func (u *UIManager) Update(fn func()) {
	u.mu.Lock()
	fn()
	u.mu.Unlock()
	u.InvalidateAll()
}

// Invalidate marks a region for redraw.
// Thread-safe.
func (u *UIManager) Invalidate(r Rect) {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()

	if r.Empty() {
		return
	}
	u.dirty = append(u.dirty, r)
	u.requestRefreshLocked()
}

// InvalidateAll marks the whole surface for redraw.
func (u *UIManager) InvalidateAll() {
	u.dirtyMu.Lock()
	defer u.dirtyMu.Unlock()
	u.invalidateAllLocked()
}

// Internal helper - assumes dirtyMu is held
func (u *UIManager) invalidateAllLocked() {
	u.dirty = append(u.dirty, Rect{X: 0, Y: 0, W: u.W, H: u.H})
	u.requestRefreshLocked()
}

// Internal helper - assumes dirtyMu is held
func (u *UIManager) requestRefreshLocked() {
	if u.notifier == nil {
		return
	}
	select {
	case u.notifier <- true:
	default:
	}
}

func (u *UIManager) ensureBufferLocked() {
	h := u.H
	w := u.W
	if u.buf != nil && len(u.buf) == h && (h == 0 || len(u.buf[0]) == w) {
		return
	}
	u.buf = make([][]Cell, h)
	for y := 0; y < h; y++ {
		row := make([]Cell, w)
		for x := 0; x < w; x++ {
			row[x] = Cell{Ch: ' ', Style: u.bgStyle}
		}
		u.buf[y] = row
	}
}

// Render updates dirty regions and returns the framebuffer.
func (u *UIManager) Render() [][]Cell {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.ensureBufferLocked()

	u.dirtyMu.Lock()
	dirtyCopy := u.dirty
	u.dirty = nil
	u.dirtyMu.Unlock()

	full := Rect{X: 0, Y: 0, W: u.W, H: u.H}
	if len(dirtyCopy) == 0 {
		// No specific dirty regions requested: compose full frame.
		dirtyCopy = []Rect{full}
	}

	for _, clip := range mergeRects(dirtyCopy) {
		clip = clip.Intersect(full)
		if clip.Empty() {
			continue
		}

		p := NewPainter(u.buf, clip)
		p.Fill(clip, ' ', u.bgStyle)
		for _, w := range u.widgets {
			wx, wy := w.Position()
			ww, wh := w.Size()
			if rectsOverlap(Rect{X: wx, Y: wy, W: ww, H: wh}, clip) {
				w.Draw(p)
			}
		}
	}
	return u.buf
}
