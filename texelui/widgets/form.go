// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/form.go
// Summary: Vertical column layout with rows, fill rows, visibility and focus cycling.

package widgets

import (
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/texelui/core"
)

type formRow struct {
	items   []core.Widget
	heights []int
	fill    bool
	hidden  bool
}

func (r *formRow) height() int {
	h := 0
	for _, ih := range r.heights {
		h = max(h, ih)
	}
	return h
}

// Form stacks rows of widgets top to bottom. Single-widget rows are stretched
// to the form width; multi-widget rows keep their widths and are laid out left
// to right. A fill row takes whatever height the fixed rows leave over.
//
// When resized to a height smaller than its content the form keeps its natural
// height, so it can be placed in a scroll.Viewport.
type Form struct {
	core.BaseWidget
	Gap int

	rows  []*formRow
	reqH  int
	lastH int
	obs   core.Observers
	inv   func(core.Rect)
}

func NewForm(x, y, w int) *Form {
	f := &Form{Gap: 0}
	f.SetPosition(x, y)
	f.BaseWidget.Resize(w, 0)
	return f
}

// Add appends a row holding a single stretched widget of height h
// (h <= 0 keeps the widget's current height).
func (f *Form) Add(w core.Widget, h int) {
	if h <= 0 {
		_, h = w.Size()
	}
	f.rows = append(f.rows, &formRow{items: []core.Widget{w}, heights: []int{h}})
	f.relayout()
}

// AddRow appends a row of widgets placed side by side at their own sizes.
func (f *Form) AddRow(ws ...core.Widget) {
	r := &formRow{items: ws}
	for _, w := range ws {
		_, h := w.Size()
		r.heights = append(r.heights, h)
	}
	f.rows = append(f.rows, r)
	f.relayout()
}

// AddFill appends a row whose widget takes the remaining height (at least min).
func (f *Form) AddFill(w core.Widget, min int) {
	f.rows = append(f.rows, &formRow{items: []core.Widget{w}, heights: []int{min}, fill: true})
	f.relayout()
}

// SetVisible shows or hides the row containing w.
func (f *Form) SetVisible(w core.Widget, visible bool) {
	for _, r := range f.rows {
		for _, item := range r.items {
			if item == w && r.hidden == visible {
				r.hidden = !visible
				if r.hidden {
					blurTree(r)
				}
				f.relayout()
				return
			}
		}
	}
}

// Visible reports whether w is in a shown row.
func (f *Form) Visible(w core.Widget) bool {
	for _, r := range f.rows {
		for _, item := range r.items {
			if item == w {
				return !r.hidden
			}
		}
	}
	return false
}

func blurTree(r *formRow) {
	for _, item := range r.items {
		visitTree(item, func(w core.Widget) { w.Blur() })
	}
}

func visitTree(w core.Widget, fn func(core.Widget)) {
	fn(w)
	if cc, ok := w.(core.ChildContainer); ok {
		cc.VisitChildren(func(c core.Widget) { visitTree(c, fn) })
	}
}

// NaturalHeight returns the height needed by the visible rows.
func (f *Form) NaturalHeight() int {
	h, n := 0, 0
	for _, r := range f.rows {
		if r.hidden {
			continue
		}
		h += r.height()
		n++
	}
	if n > 1 {
		h += f.Gap * (n - 1)
	}
	return h
}

func (f *Form) Resize(w, h int) {
	f.reqH = max(h, 0)
	f.BaseWidget.Resize(w, f.Rect.H)
	f.relayout()
}

func (f *Form) SetPosition(x, y int) {
	f.BaseWidget.SetPosition(x, y)
	f.relayout()
}

// relayout positions every visible row and updates the form height.
func (f *Form) relayout() {
	natural := f.NaturalHeight()
	height := max(f.reqH, natural)
	extra := height - natural
	fills := 0
	for _, r := range f.rows {
		if r.fill && !r.hidden {
			fills++
		}
	}

	y := f.Rect.Y
	for _, r := range f.rows {
		if r.hidden {
			continue
		}
		rh := r.height()
		if r.fill && fills > 0 {
			share := extra / fills
			rh += share
			extra -= share
			fills--
		}
		if len(r.items) == 1 {
			r.items[0].SetPosition(f.Rect.X, y)
			r.items[0].Resize(f.Rect.W, rh)
		} else {
			x := f.Rect.X
			for _, item := range r.items {
				iw, ih := item.Size()
				item.SetPosition(x, y)
				item.Resize(iw, ih)
				x += iw + 1
			}
		}
		y += rh + f.Gap
	}
	f.BaseWidget.Resize(f.Rect.W, height)
	if height != f.lastH {
		f.lastH = height
		f.obs.Notify(f.Rect.W, height)
	}
	if f.inv != nil {
		f.inv(f.Rect)
	}
}

// ObserveSize implements core.SizeObservable.
func (f *Form) ObserveSize(fn func(w, h int)) func() { return f.obs.Add(fn) }

func (f *Form) SetInvalidator(fn func(core.Rect)) {
	f.inv = fn
	for _, r := range f.rows {
		for _, item := range r.items {
			if ia, ok := item.(core.InvalidationAware); ok {
				ia.SetInvalidator(fn)
			}
		}
	}
}

func (f *Form) Draw(p *core.Painter) {
	for _, r := range f.rows {
		if r.hidden {
			continue
		}
		for _, item := range r.items {
			item.Draw(p)
		}
	}
}

// VisitChildren implements core.ChildContainer over visible rows.
func (f *Form) VisitChildren(fn func(core.Widget)) {
	for _, r := range f.rows {
		if r.hidden {
			continue
		}
		for _, item := range r.items {
			fn(item)
		}
	}
}

// VisitAllChildren implements core.HiddenChildContainer.
func (f *Form) VisitAllChildren(fn func(core.Widget)) {
	for _, r := range f.rows {
		for _, item := range r.items {
			fn(item)
		}
	}
}

// WidgetAt implements core.HitTester.
func (f *Form) WidgetAt(x, y int) core.Widget {
	var hit core.Widget
	f.VisitChildren(func(w core.Widget) {
		if hit != nil || !w.HitTest(x, y) {
			return
		}
		if ht, ok := w.(core.HitTester); ok {
			if inner := ht.WidgetAt(x, y); inner != nil {
				hit = inner
				return
			}
		}
		hit = w
	})
	return hit
}

// focusables lists focusable widgets in visual order. Focusable containers
// count as a single stop.
func (f *Form) focusables() []core.Widget {
	var out []core.Widget
	var walk func(core.Widget)
	walk = func(w core.Widget) {
		if w.Focusable() {
			out = append(out, w)
			return
		}
		if cc, ok := w.(core.ChildContainer); ok {
			cc.VisitChildren(walk)
		}
	}
	f.VisitChildren(walk)
	return out
}

// Focused returns the focused widget inside the form, or nil.
func (f *Form) Focused() core.Widget {
	for _, w := range f.focusables() {
		if fs, ok := w.(core.FocusState); ok && fs.IsFocused() {
			return w
		}
	}
	return nil
}

// FocusWidget focuses w and blurs the previously focused widget.
func (f *Form) FocusWidget(w core.Widget) {
	if cur := f.Focused(); cur != nil && cur != w {
		cur.Blur()
	}
	w.Focus()
	if f.inv != nil {
		f.inv(f.Rect)
	}
}

// CycleFocus implements core.FocusCycler. It returns false when focus would
// move past the first or last stop.
func (f *Form) CycleFocus(forward bool) bool {
	stops := f.focusables()
	if len(stops) == 0 {
		return false
	}
	cur := -1
	for i, w := range stops {
		if fs, ok := w.(core.FocusState); ok && fs.IsFocused() {
			cur = i
			break
		}
	}
	if cur >= 0 {
		if fc, ok := stops[cur].(core.FocusCycler); ok && fc.CycleFocus(forward) {
			return true
		}
	}
	next := cur + 1
	if !forward {
		if cur < 0 {
			next = len(stops) - 1
		} else {
			next = cur - 1
		}
	}
	if next < 0 || next >= len(stops) {
		return false
	}
	if cur >= 0 {
		stops[cur].Blur()
	}
	stops[next].Focus()
	if f.inv != nil {
		f.inv(f.Rect)
	}
	return true
}

// HandleKey forwards to the focused widget.
func (f *Form) HandleKey(ev *tcell.EventKey) bool {
	if w := f.Focused(); w != nil {
		return w.HandleKey(ev)
	}
	return false
}

// HandleMouse focuses the widget under a press and forwards the event. It is
// used when the form is nested in a widget that keeps mouse routing to itself.
func (f *Form) HandleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	var target core.Widget
	f.VisitChildren(func(w core.Widget) {
		if target == nil && w.HitTest(x, y) {
			target = w
		}
	})
	if target == nil {
		return false
	}
	if ev.Buttons()&tcell.Button1 != 0 && target.Focusable() {
		f.FocusWidget(target)
	}
	if ma, ok := target.(core.MouseAware); ok {
		return ma.HandleMouse(ev)
	}
	return true
}
