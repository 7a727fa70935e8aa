// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import (
	"math"
	"testing"
)

func TestState_ClampsOffset(t *testing.T) {
	s := NewState(100, 10)

	s = s.ScrollBy(20)
	if s.Offset != 20 {
		t.Errorf("Offset = %d, want 20", s.Offset)
	}
	s = s.ScrollBy(1000)
	if s.Offset != 90 {
		t.Errorf("Offset = %d, want 90", s.Offset)
	}
	s = s.ScrollBy(-1000)
	if s.Offset != 0 {
		t.Errorf("Offset = %d, want 0", s.Offset)
	}

	// Shrinking content pulls the offset back in range.
	s = s.WithOffset(90).WithContentHeight(50)
	if s.Offset != 40 {
		t.Errorf("Offset after shrink = %d, want 40", s.Offset)
	}
}

func TestState_ScrollToMinimalMovement(t *testing.T) {
	s := NewState(100, 10).ScrollTo(50)
	if s.Offset != 41 {
		t.Errorf("Offset = %d, want 41", s.Offset)
	}
	if got := s.ScrollTo(45).Offset; got != 41 {
		t.Errorf("Offset after visible row = %d, want 41", got)
	}
	if got := s.ScrollTo(3).Offset; got != 3 {
		t.Errorf("Offset after row above = %d, want 3", got)
	}
	if got := s.ScrollToCentered(50).Offset; got != 45 {
		t.Errorf("ScrollToCentered = %d, want 45", got)
	}
}

func TestState_CanScroll(t *testing.T) {
	tests := []struct {
		name             string
		content, view    int
		offset           int
		scroll, up, down bool
	}{
		{"fits", 10, 10, 0, false, false, false},
		{"smaller", 3, 10, 0, false, false, false},
		{"unmeasured", 100, 0, 0, false, false, false},
		{"top", 100, 10, 0, true, false, true},
		{"middle", 100, 10, 40, true, true, true},
		{"bottom", 100, 10, 90, true, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(tt.content, tt.view).WithOffset(tt.offset)
			if s.CanScroll() != tt.scroll || s.CanScrollUp() != tt.up || s.CanScrollDown() != tt.down {
				t.Errorf("CanScroll/Up/Down = %v/%v/%v, want %v/%v/%v",
					s.CanScroll(), s.CanScrollUp(), s.CanScrollDown(), tt.scroll, tt.up, tt.down)
			}
		})
	}
}

func TestThumb_ProportionalExtent(t *testing.T) {
	s := NewState(1000, 400)
	th := s.Thumb(20)
	if th.Extent != 160 {
		t.Errorf("Extent = %v, want 160", th.Extent)
	}
	if th.Offset != 0 {
		t.Errorf("Offset = %v, want 0", th.Offset)
	}

	th = s.WithOffset(300).Thumb(20)
	if th.Offset != 120 {
		t.Errorf("Offset at half = %v, want 120", th.Offset)
	}
	th = s.ScrollToBottom().Thumb(20)
	if th.End() != 400 {
		t.Errorf("End at bottom = %v, want 400", th.End())
	}
}

func TestThumb_HiddenWhenContentFits(t *testing.T) {
	for _, content := range []int{0, 1, 399, 400} {
		s := NewState(content, 400)
		if s.CanScroll() {
			t.Errorf("content %d: CanScroll = true, want false", content)
		}
		if th := s.Thumb(20); th != (Thumb{}) {
			t.Errorf("content %d: Thumb = %+v, want zero", content, th)
		}
	}
}

func TestThumb_MinimumExtent(t *testing.T) {
	th := NewState(100000, 400).Thumb(20)
	if th.Extent != 20 {
		t.Errorf("Extent = %v, want 20", th.Extent)
	}
}

func TestThumb_StaysInsideTrack(t *testing.T) {
	const minThumb = 20.0
	for _, view := range []int{1, 5, 19, 20, 21, 100, 400} {
		for _, content := range []int{view + 1, view * 2, view*3 + 7, 10000} {
			s := NewState(content, view)
			for _, off := range []int{0, 1, s.MaxOffset() / 3, s.MaxOffset() / 2, s.MaxOffset()} {
				th := s.WithOffset(off).Thumb(minThumb)
				if th.Offset < 0 {
					t.Fatalf("c=%d v=%d off=%d: thumb offset %v < 0", content, view, off, th.Offset)
				}
				if th.End() > float64(view)+1e-9 {
					t.Fatalf("c=%d v=%d off=%d: thumb end %v > track %d", content, view, off, th.End(), view)
				}
				if float64(view) >= minThumb && th.Extent < minThumb {
					t.Fatalf("c=%d v=%d off=%d: extent %v < min", content, view, off, th.Extent)
				}
			}
		}
	}
}

func TestOffsetAtFraction(t *testing.T) {
	s := NewState(1000, 400)
	tests := []struct {
		fraction float64
		want     int
	}{
		{0, 0},
		{0.5, 300},
		{1, 600},
		{-0.3, 0},
		{1.7, 600},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := s.OffsetAtFraction(tt.fraction); got != tt.want {
			t.Errorf("OffsetAtFraction(%v) = %d, want %d", tt.fraction, got, tt.want)
		}
	}

	// Seeking to the same point twice lands on the same offset.
	first := s.OffsetAtFraction(0.37)
	second := s.WithOffset(first).OffsetAtFraction(0.37)
	if first != second {
		t.Errorf("repeat seek = %d, want %d", second, first)
	}

	if got := NewState(10, 400).OffsetAtFraction(0.5); got != 0 {
		t.Errorf("non-scrollable seek = %d, want 0", got)
	}
}

func TestDragRatioAndOffset(t *testing.T) {
	s := NewState(1000, 400)
	if r := s.DragRatio(20); r != 2.5 {
		t.Errorf("DragRatio = %v, want 2.5", r)
	}
	if got := s.DragOffset(0, 80, 20); got != 200 {
		t.Errorf("DragOffset(0, +80) = %d, want 200", got)
	}
	if got := s.DragOffset(500, 80, 20); got != 600 {
		t.Errorf("DragOffset(500, +80) = %d, want 600 (clamped)", got)
	}
	if got := s.DragOffset(100, -80, 20); got != 0 {
		t.Errorf("DragOffset(100, -80) = %d, want 0 (clamped)", got)
	}
}

func TestDragOffset_RoundTrip(t *testing.T) {
	s := NewState(1000, 300) // ratio 700/210, not an integer
	for _, d := range []int{1, 7, 13, 40} {
		there := s.DragOffset(100, d, 1)
		back := s.WithOffset(there).DragOffset(there, -d, 1)
		if back != 100 {
			t.Errorf("drag +%d then -%d = %d, want 100", d, d, back)
		}
	}
}

func TestDragRatio_ThumbFillsTrack(t *testing.T) {
	// Minimum larger than the track: the thumb is capped at the full track.
	s := NewState(11, 10)
	th := s.Thumb(20)
	if th.Extent != 10 {
		t.Fatalf("Extent = %v, want 10", th.Extent)
	}
	r := s.DragRatio(20)
	if math.IsInf(r, 0) || math.IsNaN(r) {
		t.Fatalf("DragRatio = %v, want finite", r)
	}
	if got := s.DragOffset(0, 10, 20); got != 1 {
		t.Errorf("DragOffset over full track = %d, want 1", got)
	}
}

func TestDragRatio_NotScrollable(t *testing.T) {
	if r := NewState(5, 10).DragRatio(1); r != 0 {
		t.Errorf("DragRatio = %v, want 0", r)
	}
	if got := NewState(5, 10).DragOffset(0, 50, 1); got != 0 {
		t.Errorf("DragOffset = %d, want 0", got)
	}
}
