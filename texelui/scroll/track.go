// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/track.go
// Summary: Draws the scrollbar track and thumb with eighth-block precision.

package scroll

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/texelui/core"
)

// lowerBlocks[n] fills the bottom n eighths of a cell.
var lowerBlocks = [9]rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// drawTrack paints the track column(s) in r and the thumb on top of it.
// The thumb is quantised to eighths of a row so small offsets still move it.
func drawTrack(p *core.Painter, r core.Rect, thumb Thumb, track, thumbColor tcell.Color) {
	trackStyle := tcell.StyleDefault.Background(track).Foreground(track)
	p.Fill(r, ' ', trackStyle)

	top := int(math.Round(thumb.Offset * 8))
	bottom := int(math.Round(thumb.End() * 8))
	if bottom-top < 8 && r.H > 0 {
		// Keep at least a full row of thumb visible.
		bottom = min(top+8, r.H*8)
		top = bottom - 8
	}

	for row := 0; row < r.H; row++ {
		cellTop, cellBottom := row*8, row*8+8
		lo, hi := max(top, cellTop), min(bottom, cellBottom)
		if hi <= lo {
			continue
		}
		var ch rune
		style := tcell.StyleDefault
		switch {
		case lo == cellTop && hi == cellBottom:
			ch = lowerBlocks[8]
			style = style.Foreground(thumbColor).Background(thumbColor)
		case hi == cellBottom:
			// Thumb starts part way down the cell: fill from the bottom.
			ch = lowerBlocks[hi-lo]
			style = style.Foreground(thumbColor).Background(track)
		case lo == cellTop:
			// Thumb ends part way down: paint the uncovered bottom in track colour.
			ch = lowerBlocks[cellBottom-hi]
			style = style.Foreground(track).Background(thumbColor)
		default:
			ch = lowerBlocks[8]
			style = style.Foreground(thumbColor).Background(thumbColor)
		}
		for x := r.X; x < r.X+r.W; x++ {
			p.SetCell(x, r.Y+row, ch, style)
		}
	}
}
