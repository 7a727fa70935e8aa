// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/geometry.go
// Summary: Thumb geometry and pointer-to-offset mapping derived from State.

package scroll

import "math"

// Thumb is the position of the scrollbar thumb along a track that spans the
// viewport. Offset and Extent are in the same units as the State.
type Thumb struct {
	Offset float64
	Extent float64
}

// End returns the position just past the thumb.
func (t Thumb) End() float64 { return t.Offset + t.Extent }

// Thumb derives the thumb geometry. The extent is proportional to the visible
// share of the content, floored at minExtent and never larger than the track.
// The zero Thumb is returned when the content does not overflow.
func (s State) Thumb(minExtent float64) Thumb {
	if !s.CanScroll() {
		return Thumb{}
	}
	track := float64(s.ViewportHeight)
	extent := track * track / float64(s.ContentHeight)
	if extent < minExtent {
		extent = minExtent
	}
	if extent > track {
		extent = track
	}
	offset := float64(s.Offset) / float64(s.MaxOffset()) * (track - extent)
	return Thumb{Offset: offset, Extent: extent}
}

// OffsetAtFraction maps a fractional track position to a scroll offset.
// The fraction is clamped to [0, 1].
func (s State) OffsetAtFraction(fraction float64) int {
	if !s.CanScroll() || math.IsNaN(fraction) {
		return 0
	}
	fraction = math.Max(0, math.Min(1, fraction))
	return int(math.Round(fraction * float64(s.MaxOffset())))
}

// DragRatio returns how many content rows one row of thumb movement scrolls.
// When the thumb fills the whole track there is no room to move it, so the
// full track length is mapped to the full scroll range instead.
func (s State) DragRatio(minExtent float64) float64 {
	if !s.CanScroll() {
		return 0
	}
	room := float64(s.ViewportHeight) - s.Thumb(minExtent).Extent
	if room <= 0 {
		return float64(s.MaxOffset()) / float64(s.ViewportHeight)
	}
	return float64(s.MaxOffset()) / room
}

// DragOffset returns the offset reached by dragging the thumb deltaY rows from
// a drag that started at startOffset. The result is clamped to the content.
func (s State) DragOffset(startOffset, deltaY int, minExtent float64) int {
	delta := math.Round(float64(deltaY) * s.DragRatio(minExtent))
	return s.WithOffset(startOffset + int(delta)).Offset
}
