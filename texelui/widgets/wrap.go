// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/wrap.go
// Summary: Word wrapping by display width.

package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// span is a half-open rune range of the source text.
type span struct{ start, end int }

// wrapSpans splits text into display lines no wider than width columns.
// Lines break at spaces where possible; words longer than the width are split.
// Newlines always break and are not part of any span.
func wrapSpans(text []rune, width int) []span {
	var out []span
	base := 0
	for {
		end := base
		for end < len(text) && text[end] != '\n' {
			end++
		}
		out = append(out, wrapParagraph(text, base, end, width)...)
		if end >= len(text) {
			return out
		}
		base = end + 1
	}
}

func wrapParagraph(text []rune, start, end, width int) []span {
	if start == end || width <= 0 {
		return []span{{start, end}}
	}
	var out []span
	for start < end {
		col, i := 0, start
		for i < end {
			w := runewidth.RuneWidth(text[i])
			if col+w > width {
				break
			}
			col += w
			i++
		}
		if i == end {
			out = append(out, span{start, end})
			break
		}
		brk := i
		if text[i] != ' ' {
			for j := i - 1; j > start; j-- {
				if text[j] == ' ' {
					brk = j
					break
				}
			}
		}
		if brk == start {
			brk = start + 1 // a single rune wider than the line
		}
		out = append(out, span{start, brk})
		start = brk
		for start < end && text[start] == ' ' {
			start++
		}
	}
	return out
}

// wrapText is wrapSpans for callers that only need the strings.
func wrapText(s string, width int) []string {
	runes := []rune(s)
	spans := wrapSpans(runes, width)
	lines := make([]string, len(spans))
	for i, sp := range spans {
		lines[i] = strings.TrimRight(string(runes[sp.start:sp.end]), " ")
	}
	return lines
}
