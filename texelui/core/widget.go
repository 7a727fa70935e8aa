// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/widget.go
// Summary: Widget contract, base implementation and optional capabilities.

package core

import "github.com/gdamore/tcell/v2"

// Widget is the minimal contract for drawable UI elements.
type Widget interface {
	SetPosition(x, y int)
	Position() (int, int)
	Resize(w, h int)
	Size() (int, int)
	Draw(p *Painter)
	Focusable() bool
	Focus()
	Blur()
	HandleKey(ev *tcell.EventKey) bool
	HitTest(x, y int) bool
}

// BaseWidget provides common fields/behaviour for widgets.
type BaseWidget struct {
	Rect          Rect
	focused       bool
	focusable     bool
	focusStyle    tcell.Style
	hasFocusStyle bool
}

func (b *BaseWidget) SetPosition(x, y int) { b.Rect.X, b.Rect.Y = x, y }
func (b *BaseWidget) Position() (int, int) { return b.Rect.X, b.Rect.Y }
func (b *BaseWidget) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b.Rect.W, b.Rect.H = w, h
}
func (b *BaseWidget) Size() (int, int)    { return b.Rect.W, b.Rect.H }
func (b *BaseWidget) Focusable() bool     { return b.focusable }
func (b *BaseWidget) SetFocusable(f bool) { b.focusable = f }
func (b *BaseWidget) Focus() {
	if b.focusable {
		b.focused = true
	}
}
func (b *BaseWidget) Blur()                             { b.focused = false }
func (b *BaseWidget) IsFocused() bool                   { return b.focused }
func (b *BaseWidget) HitTest(x, y int) bool             { return b.Rect.Contains(x, y) }
func (b *BaseWidget) HandleKey(ev *tcell.EventKey) bool { return false }

// SetFocusedStyle configures the style used while focused. When enabled is false the
// normal style is used regardless of focus.
func (b *BaseWidget) SetFocusedStyle(style tcell.Style, enabled bool) {
	b.focusStyle = style
	b.hasFocusStyle = enabled
}

// EffectiveStyle returns the focused style when focused, otherwise base.
func (b *BaseWidget) EffectiveStyle(base tcell.Style) tcell.Style {
	if b.focused && b.hasFocusStyle {
		return b.focusStyle
	}
	return base
}

// MouseAware widgets can consume mouse events directly.
type MouseAware interface {
	HandleMouse(ev *tcell.EventMouse) bool
}

// InvalidationAware widgets accept an invalidation callback to mark dirty regions.
type InvalidationAware interface {
	SetInvalidator(func(Rect))
}

// ChildContainer allows recursive operations over widget trees without
// depending on concrete widget packages.
type ChildContainer interface {
	VisitChildren(func(Widget))
}

// HiddenChildContainer is implemented by containers whose VisitChildren skips
// hidden children. VisitAllChildren includes them, so wiring done at attach
// time still reaches widgets that are shown later.
type HiddenChildContainer interface {
	VisitAllChildren(func(Widget))
}

// HitTester allows a container to return the deepest widget under a point.
type HitTester interface {
	WidgetAt(x, y int) Widget
}

// FocusState exposes whether a widget currently holds focus.
type FocusState interface {
	IsFocused() bool
}

// FocusCycler containers move focus among their children. CycleFocus returns
// false when focus would leave the container.
type FocusCycler interface {
	CycleFocus(forward bool) bool
}

// SizeObservable widgets notify observers when their size changes, including
// changes caused by content mutation (e.g. text reflow).
type SizeObservable interface {
	ObserveSize(fn func(w, h int)) (cancel func())
}

// PointerListener receives every pointer event while it holds pointer capture,
// regardless of which widget is under the pointer.
type PointerListener interface {
	PointerMove(x, y int)
	PointerUp(x, y int)
}

// PointerCapturer grants document-level pointer capture. The returned release
// func is idempotent.
type PointerCapturer interface {
	CapturePointer(l PointerListener) (release func())
}

// PointerCaptureAware widgets accept the capturer owned by their UI manager.
type PointerCaptureAware interface {
	SetPointerCapturer(PointerCapturer)
}
