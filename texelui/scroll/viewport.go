// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/viewport.go
// Summary: Viewport widget with a custom scrollbar track and draggable thumb.
// Observes its content's size, recomputes scroll state and redraws the thumb.

package scroll

import (
	"log"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// DefaultMinThumb is the smallest thumb extent, in rows.
const DefaultMinThumb = 1

// DefaultWheelStep is the number of rows scrolled per wheel notch.
const DefaultWheelStep = 3

// Viewport shows a child widget in a fixed-size box and scrolls it vertically.
// Instead of indicators it draws a track on its right edge with a thumb that
// can be dragged, and clicking the track jumps to the matching position.
//
// The child sizes itself vertically: Resize(w, h) on the child sets the width
// and the child reports its full content height through Size(). Children
// implementing core.SizeObservable are re-measured whenever they report a change.
type Viewport struct {
	core.BaseWidget
	Style           tcell.Style
	TrackColor      tcell.Color
	ThumbColor      tcell.Color
	ThumbHoverColor tcell.Color

	// MinThumb floors the thumb extent, in rows.
	MinThumb int
	// WheelStep is the number of rows scrolled per wheel notch.
	WheelStep int
	// TrackWidth is the number of columns reserved for the track when it is shown.
	TrackWidth int

	child         core.Widget
	cancelObserve func()
	state         State
	inv           func(core.Rect)
	capturer      core.PointerCapturer
	drag          *DragSession
	buttonDown    bool
	hover         bool
	measuring     bool
	lastFocused   core.Widget
}

// NewViewport creates a viewport with the given bounds and theme colours.
func NewViewport(x, y, w, h int) *Viewport {
	tm := theming.Get()
	v := &Viewport{
		Style: tcell.StyleDefault.
			Foreground(tm.Color("text_fg", tcell.ColorWhite)).
			Background(tm.Color("text_bg", tcell.ColorBlack)),
		TrackColor:      tm.Color("scroll_track", tcell.NewHexColor(0x111827)),
		ThumbColor:      tm.Color("scroll_thumb", tcell.NewHexColor(0x06b6d4)),
		ThumbHoverColor: tm.Color("scroll_thumb_hover", tcell.NewHexColor(0x0891b2)),
		MinThumb:        DefaultMinThumb,
		WheelStep:       DefaultWheelStep,
		TrackWidth:      1,
	}
	v.SetPosition(x, y)
	v.BaseWidget.Resize(w, h)
	v.state = NewState(0, h)
	v.SetFocusable(true)
	return v
}

// SetChild mounts child as the scrolled content, replacing (and unsubscribing
// from) any previous child. Passing nil unmounts the current child.
func (v *Viewport) SetChild(child core.Widget) {
	if v.cancelObserve != nil {
		v.cancelObserve()
		v.cancelObserve = nil
	}
	v.child = child
	v.lastFocused = nil
	if child != nil {
		if v.inv != nil {
			if ia, ok := child.(core.InvalidationAware); ok {
				ia.SetInvalidator(v.inv)
			}
		}
		if so, ok := child.(core.SizeObservable); ok {
			v.cancelObserve = so.ObserveSize(func(int, int) { v.Refresh() })
		}
	}
	v.state = v.state.WithOffset(0)
	v.Refresh()
}

// Child returns the mounted child, or nil.
func (v *Viewport) Child() core.Widget { return v.child }

// Close unmounts the viewport: it stops observing the child and ends any drag
// so no pointer capture outlives the widget.
func (v *Viewport) Close() {
	if v.cancelObserve != nil {
		v.cancelObserve()
		v.cancelObserve = nil
	}
	if v.drag != nil {
		v.drag.end()
	}
}

// Refresh re-measures the child and viewport and recomputes the scroll state.
// It is called for every size, content and scroll notification.
func (v *Viewport) Refresh() {
	if v.measuring {
		return
	}
	v.measuring = true
	defer func() { v.measuring = false }()

	if v.child == nil {
		v.state = NewState(0, v.Rect.H)
		v.afterRecompute()
		return
	}

	fullW := v.Rect.W
	v.child.Resize(fullW, 0)
	_, contentH := v.child.Size()
	if contentH > v.Rect.H && v.Rect.H > 0 && v.TrackWidth > 0 && fullW > v.TrackWidth {
		// Reserve the gutter; narrower content can only get taller.
		v.child.Resize(fullW-v.TrackWidth, 0)
		_, contentH = v.child.Size()
	}

	v.state = v.state.WithContentHeight(contentH).WithViewportHeight(v.Rect.H)
	v.afterRecompute()
}

func (v *Viewport) afterRecompute() {
	if !v.state.CanScroll() {
		v.hover = false
		if v.drag != nil {
			v.drag.end()
		}
	}
	if v.child != nil {
		v.child.SetPosition(v.Rect.X, v.Rect.Y-v.state.Offset)
	}
	v.invalidate()
}

// State returns the current scroll state.
func (v *Viewport) State() State { return v.state }

// ScrollOffset returns the current scroll offset in rows.
func (v *Viewport) ScrollOffset() int { return v.state.Offset }

// ContentHeight returns the last measured content height.
func (v *Viewport) ContentHeight() int { return v.state.ContentHeight }

// TrackVisible reports whether the track and thumb are shown.
func (v *Viewport) TrackVisible() bool {
	return v.state.CanScroll() && v.Rect.W > 0
}

// TrackRect returns the track bounds. It is empty when the track is hidden.
func (v *Viewport) TrackRect() core.Rect {
	if !v.TrackVisible() {
		return core.Rect{X: v.Rect.X + v.Rect.W, Y: v.Rect.Y}
	}
	tw := min(v.trackWidth(), v.Rect.W)
	return core.Rect{X: v.Rect.X + v.Rect.W - tw, Y: v.Rect.Y, W: tw, H: v.Rect.H}
}

func (v *Viewport) trackWidth() int {
	if v.TrackWidth <= 0 {
		return 1
	}
	return v.TrackWidth
}

// ContentRect returns the area the child is drawn into.
func (v *Viewport) ContentRect() core.Rect {
	r := v.Rect
	if v.TrackVisible() {
		r.W -= v.TrackRect().W
	}
	return r
}

// Thumb returns the current thumb geometry relative to the top of the track,
// and whether the thumb is shown.
func (v *Viewport) Thumb() (Thumb, bool) {
	if !v.TrackVisible() {
		return Thumb{}, false
	}
	return v.state.Thumb(float64(v.MinThumb)), true
}

// Dragging reports whether a thumb drag is in progress.
func (v *Viewport) Dragging() bool { return v.drag != nil }

// ScrollTo sets the scroll offset directly, clamped to the content.
func (v *Viewport) ScrollTo(offset int) {
	v.setState(v.state.WithOffset(offset))
}

// ScrollBy scrolls by delta rows (positive = down).
func (v *Viewport) ScrollBy(delta int) {
	v.setState(v.state.ScrollBy(delta))
}

// ScrollToRow scrolls the minimum amount needed to make row visible.
func (v *Viewport) ScrollToRow(row int) {
	v.setState(v.state.ScrollTo(row))
}

// ScrollToTop scrolls to the top of the content.
func (v *Viewport) ScrollToTop() { v.setState(v.state.ScrollToTop()) }

// ScrollToBottom scrolls to the bottom of the content.
func (v *Viewport) ScrollToBottom() { v.setState(v.state.ScrollToBottom()) }

// setState applies a scroll position change and re-renders when it moved.
func (v *Viewport) setState(s State) {
	if s.Offset == v.state.Offset {
		return
	}
	v.state = s
	v.afterRecompute()
}

// SetInvalidator sets the invalidation callback.
func (v *Viewport) SetInvalidator(fn func(core.Rect)) {
	v.inv = fn
	if v.child != nil {
		if ia, ok := v.child.(core.InvalidationAware); ok {
			ia.SetInvalidator(fn)
		}
	}
}

// SetPointerCapturer implements core.PointerCaptureAware.
func (v *Viewport) SetPointerCapturer(c core.PointerCapturer) { v.capturer = c }

func (v *Viewport) invalidate() {
	if v.inv != nil {
		v.inv(v.Rect)
	}
}

// SetPosition moves the viewport and its child.
func (v *Viewport) SetPosition(x, y int) {
	v.BaseWidget.SetPosition(x, y)
	if v.child != nil {
		v.child.SetPosition(x, y-v.state.Offset)
	}
}

// Resize updates the viewport box and re-measures the child.
func (v *Viewport) Resize(w, h int) {
	v.BaseWidget.Resize(w, h)
	v.Refresh()
}

// Draw renders the visible slice of the child and the track.
func (v *Viewport) Draw(painter *core.Painter) {
	rect := v.Rect
	painter.Fill(rect, ' ', v.Style)

	if v.child != nil {
		// Only auto-scroll when focus changes so wheel and drag do not fight back.
		current := findFocused(v.child)
		if current != v.lastFocused {
			v.lastFocused = current
			if current != nil {
				v.EnsureFocusedVisible()
			}
		}
		v.child.SetPosition(rect.X, rect.Y-v.state.Offset)
		v.child.Draw(painter.WithClip(v.ContentRect()))
	}

	if thumb, ok := v.Thumb(); ok {
		color := v.ThumbColor
		if v.hover || v.drag != nil {
			color = v.ThumbHoverColor
		}
		drawTrack(painter, v.TrackRect(), thumb, v.TrackColor, color)
	}
}

// HandleKey scrolls on paging keys and routes everything else to the child.
func (v *Viewport) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyPgUp:
		v.ScrollBy(-max(v.Rect.H, 1))
		return true
	case tcell.KeyPgDn:
		v.ScrollBy(max(v.Rect.H, 1))
		return true
	case tcell.KeyHome:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			v.ScrollToTop()
			return true
		}
	case tcell.KeyEnd:
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			v.ScrollToBottom()
			return true
		}
	}

	if v.child != nil && v.child.HandleKey(ev) {
		v.EnsureFocusedVisible()
		return true
	}

	switch ev.Key() {
	case tcell.KeyUp:
		if v.state.CanScrollUp() {
			v.ScrollBy(-1)
			return true
		}
	case tcell.KeyDown:
		if v.state.CanScrollDown() {
			v.ScrollBy(1)
			return true
		}
	}
	return false
}

// HandleMouse implements wheel scrolling, track clicks, thumb drags and hover.
func (v *Viewport) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	buttons := ev.Buttons()
	down := buttons&tcell.Button1 != 0

	// Without a UI manager the drag is fed from our own event stream.
	if v.drag != nil && v.capturer == nil {
		if down {
			v.drag.PointerMove(x, y)
		} else {
			v.drag.PointerUp(x, y)
		}
		return true
	}

	pressed := down && !v.buttonDown
	released := !down && v.buttonDown
	v.buttonDown = down

	if !v.HitTest(x, y) && !released {
		return v.setHover(false)
	}

	if buttons&tcell.WheelUp != 0 {
		v.ScrollBy(-v.wheelStep())
		return true
	}
	if buttons&tcell.WheelDown != 0 {
		v.ScrollBy(v.wheelStep())
		return true
	}

	onTrack := v.TrackVisible() && v.TrackRect().Contains(x, y)
	if buttons == tcell.ButtonNone && !released {
		return v.setHover(onTrack && v.onThumb(y))
	}

	if pressed && onTrack {
		if v.onThumb(y) {
			v.beginDrag(y)
		} else {
			v.clickTrack(y)
		}
		return true
	}

	if v.child != nil {
		if ma, ok := v.child.(core.MouseAware); ok {
			if ma.HandleMouse(ev) {
				v.invalidate()
			}
		}
	}
	return true
}

func (v *Viewport) wheelStep() int {
	if v.WheelStep <= 0 {
		return DefaultWheelStep
	}
	return v.WheelStep
}

func (v *Viewport) setHover(h bool) bool {
	if v.hover == h {
		return false
	}
	v.hover = h
	v.invalidate()
	return true
}

// onThumb reports whether screen row y overlaps the thumb.
func (v *Viewport) onThumb(y int) bool {
	thumb, ok := v.Thumb()
	if !ok {
		return false
	}
	row := float64(y - v.Rect.Y)
	return row+1 > thumb.Offset && row < thumb.End()
}

// trackFraction maps screen row y to clickY / trackHeight.
func (v *Viewport) trackFraction(y int) float64 {
	h := v.TrackRect().H
	if h <= 0 {
		return 0
	}
	return float64(y-v.Rect.Y) / float64(h)
}

func (v *Viewport) clickTrack(y int) {
	target := v.state.OffsetAtFraction(v.trackFraction(y))
	log.Printf("[VIEWPORT] track click row=%d offset=%d->%d", y-v.Rect.Y, v.state.Offset, target)
	v.ScrollTo(target)
}

func (v *Viewport) beginDrag(y int) {
	if v.drag != nil {
		v.drag.end()
	}
	d := &DragSession{StartPointerY: y, StartOffset: v.state.Offset, owner: v}
	v.drag = d
	if v.capturer != nil {
		d.release = v.capturer.CapturePointer(d)
	}
	v.invalidate()
}

func (v *Viewport) dragTo(d *DragSession, y int) {
	if v.drag != d {
		return
	}
	v.ScrollTo(v.state.DragOffset(d.StartOffset, y-d.StartPointerY, float64(v.MinThumb)))
}

func (v *Viewport) dragEnded(d *DragSession) {
	if v.drag != d {
		return
	}
	v.drag = nil
	v.buttonDown = false
	v.invalidate()
}

// EnsureFocusedVisible scrolls to make the focused widget inside the child visible.
func (v *Viewport) EnsureFocusedVisible() {
	if v.child == nil {
		return
	}
	focused := findFocused(v.child)
	if focused == nil {
		return
	}
	_, wy := focused.Position()
	_, wh := focused.Size()
	contentY := wy - v.Rect.Y + v.state.Offset
	if v.state.IsRowVisible(contentY) && v.state.IsRowVisible(contentY+wh-1) {
		return
	}
	v.ScrollToRow(contentY + wh - 1)
	v.ScrollToRow(contentY)
}

// CycleFocus delegates focus traversal to the child.
func (v *Viewport) CycleFocus(forward bool) bool {
	fc, ok := v.child.(core.FocusCycler)
	if !ok {
		return false
	}
	if fc.CycleFocus(forward) {
		v.EnsureFocusedVisible()
		return true
	}
	return false
}

// VisitChildren implements core.ChildContainer.
func (v *Viewport) VisitChildren(f func(core.Widget)) {
	if v.child != nil {
		f(v.child)
	}
}

// WidgetAt implements core.HitTester. The viewport keeps mouse events for
// itself and routes them to the child in HandleMouse.
func (v *Viewport) WidgetAt(x, y int) core.Widget {
	if !v.HitTest(x, y) {
		return nil
	}
	return v
}

func findFocused(w core.Widget) core.Widget {
	if cc, ok := w.(core.ChildContainer); ok {
		var found core.Widget
		cc.VisitChildren(func(child core.Widget) {
			if found == nil {
				found = findFocused(child)
			}
		})
		if found != nil {
			return found
		}
	}
	if fs, ok := w.(core.FocusState); ok && fs.IsFocused() {
		return w
	}
	return nil
}
