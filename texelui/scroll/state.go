// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/state.go
// Summary: Immutable vertical scroll state (offset, content and viewport extents).

package scroll

// State is the scroll position of a viewport over its content, in rows.
// Offset is always within [0, MaxOffset()].
type State struct {
	ContentHeight  int
	ViewportHeight int
	Offset         int
}

// NewState returns a state scrolled to the top.
func NewState(contentHeight, viewportHeight int) State {
	return State{
		ContentHeight:  max(contentHeight, 0),
		ViewportHeight: max(viewportHeight, 0),
	}
}

// MaxOffset returns the largest valid offset.
func (s State) MaxOffset() int {
	return max(s.ContentHeight-s.ViewportHeight, 0)
}

func (s State) clamp() State {
	if s.Offset > s.MaxOffset() {
		s.Offset = s.MaxOffset()
	}
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// WithContentHeight returns s with a new content height, keeping the offset in range.
func (s State) WithContentHeight(h int) State {
	s.ContentHeight = max(h, 0)
	return s.clamp()
}

// WithViewportHeight returns s with a new viewport height, keeping the offset in range.
func (s State) WithViewportHeight(h int) State {
	s.ViewportHeight = max(h, 0)
	return s.clamp()
}

// WithOffset returns s scrolled to offset, clamped to the content bounds.
func (s State) WithOffset(offset int) State {
	s.Offset = offset
	return s.clamp()
}

// ScrollBy scrolls by delta rows (positive = down).
func (s State) ScrollBy(delta int) State {
	return s.WithOffset(s.Offset + delta)
}

// ScrollTo scrolls the minimum amount needed to make row visible.
func (s State) ScrollTo(row int) State {
	if s.ViewportHeight <= 0 {
		return s
	}
	if row < s.Offset {
		return s.WithOffset(row)
	}
	if row >= s.Offset+s.ViewportHeight {
		return s.WithOffset(row - s.ViewportHeight + 1)
	}
	return s
}

// ScrollToCentered scrolls so that row sits in the middle of the viewport.
func (s State) ScrollToCentered(row int) State {
	return s.WithOffset(row - s.ViewportHeight/2)
}

// ScrollToTop scrolls to the first row.
func (s State) ScrollToTop() State { return s.WithOffset(0) }

// ScrollToBottom scrolls so the last row is at the bottom of the viewport.
func (s State) ScrollToBottom() State { return s.WithOffset(s.MaxOffset()) }

// IsRowVisible reports whether content row is inside the viewport.
func (s State) IsRowVisible(row int) bool {
	return row >= s.Offset && row < s.Offset+s.ViewportHeight
}

// CanScroll reports whether the content overflows a laid-out viewport.
// A zero-height viewport (not yet laid out) never scrolls.
func (s State) CanScroll() bool {
	return s.ViewportHeight > 0 && s.ContentHeight > s.ViewportHeight
}

// CanScrollUp reports whether there is content above the viewport.
func (s State) CanScrollUp() bool { return s.CanScroll() && s.Offset > 0 }

// CanScrollDown reports whether there is content below the viewport.
func (s State) CanScrollDown() bool { return s.CanScroll() && s.Offset < s.MaxOffset() }
