// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/widgets/textview.go
// Summary: Read-only wrapped text whose height follows its content.
// Optionally colourised with a chroma lexer and style.

package widgets

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/texelui/core"
)

// TextView shows text wrapped to its width. Resize only sets the width; the
// height is always the number of wrapped lines. Size observers are notified
// whenever the text or the wrapping changes.
type TextView struct {
	core.BaseWidget
	Style tcell.Style

	text   []rune
	styles []tcell.Style // per rune, nil without highlighting
	spans  []span
	lexer  chroma.Lexer
	theme  *chroma.Style
	obs    core.Observers
	inv    func(core.Rect)
}

func NewTextView(x, y, w int) *TextView {
	tv := &TextView{
		Style: theming.Get().Style("text_fg", tcell.ColorWhite, "text_bg", tcell.ColorBlack),
	}
	tv.SetPosition(x, y)
	tv.Resize(w, 0)
	return tv
}

// SetHighlighter enables syntax colouring. A nil lexer disables it. An empty
// style name uses the theme's highlight_style.
func (tv *TextView) SetHighlighter(lexer chroma.Lexer, styleName string) {
	tv.lexer = lexer
	if styleName == "" {
		styleName = theming.Get().String("highlight_style", "catppuccin-mocha")
	}
	tv.theme = styles.Get(styleName)
	tv.update()
}

// SetText replaces the content.
func (tv *TextView) SetText(s string) {
	tv.text = []rune(strings.ReplaceAll(s, "\r\n", "\n"))
	tv.update()
}

// Text returns the content.
func (tv *TextView) Text() string { return string(tv.text) }

// LineCount returns the number of wrapped lines.
func (tv *TextView) LineCount() int { return len(tv.spans) }

// Line returns wrapped line i without trailing spaces.
func (tv *TextView) Line(i int) string {
	if i < 0 || i >= len(tv.spans) {
		return ""
	}
	sp := tv.spans[i]
	return strings.TrimRight(string(tv.text[sp.start:sp.end]), " ")
}

// ObserveSize implements core.SizeObservable.
func (tv *TextView) ObserveSize(fn func(w, h int)) func() { return tv.obs.Add(fn) }

func (tv *TextView) SetInvalidator(fn func(core.Rect)) { tv.inv = fn }

// Resize sets the wrap width. The height argument is ignored.
func (tv *TextView) Resize(w, _ int) {
	if w == tv.Rect.W && tv.spans != nil {
		return
	}
	tv.BaseWidget.Resize(w, tv.Rect.H)
	tv.reflow(true)
}

func (tv *TextView) update() {
	tv.highlight()
	tv.reflow(false)
	tv.obs.Notify(tv.Rect.W, tv.Rect.H)
	if tv.inv != nil {
		tv.inv(tv.Rect)
	}
}

func (tv *TextView) reflow(notify bool) {
	tv.spans = wrapSpans(tv.text, tv.Rect.W)
	h := len(tv.spans)
	if len(tv.text) == 0 {
		h = 0
	}
	changed := h != tv.Rect.H
	tv.BaseWidget.Resize(tv.Rect.W, h)
	if notify && changed {
		tv.obs.Notify(tv.Rect.W, tv.Rect.H)
	}
}

func (tv *TextView) highlight() {
	tv.styles = nil
	if tv.lexer == nil || len(tv.text) == 0 {
		return
	}
	theme := tv.theme
	if theme == nil {
		theme = styles.Fallback
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(tv.lexer), nil, string(tv.text))
	if err != nil {
		return
	}
	base := theme.Get(chroma.Text).Colour
	tv.styles = make([]tcell.Style, len(tv.text))
	for i := range tv.styles {
		tv.styles[i] = tv.Style
	}
	pos := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		st := tokenStyle(tv.Style, theme.Get(tok.Type), base)
		for range tok.Value {
			if pos >= len(tv.styles) {
				break
			}
			tv.styles[pos] = st
			pos++
		}
	}
}

// tokenStyle applies a chroma entry over base. Colours equal to the style's
// plain text colour keep the widget foreground.
func tokenStyle(base tcell.Style, entry chroma.StyleEntry, text chroma.Colour) tcell.Style {
	st := base
	if entry.Colour.IsSet() && entry.Colour != text {
		st = st.Foreground(tcell.NewRGBColor(int32(entry.Colour.Red()), int32(entry.Colour.Green()), int32(entry.Colour.Blue())))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
	}
	return st
}

// StyleAt returns the style of rune i of the text.
func (tv *TextView) StyleAt(i int) tcell.Style {
	if tv.styles == nil || i < 0 || i >= len(tv.styles) {
		return tv.Style
	}
	return tv.styles[i]
}

func (tv *TextView) Draw(p *core.Painter) {
	p.Fill(tv.Rect, ' ', tv.Style)
	clip := p.Clip()
	for row, sp := range tv.spans {
		y := tv.Rect.Y + row
		if y < clip.Y || y >= clip.Y+clip.H {
			continue
		}
		x := tv.Rect.X
		for i := sp.start; i < sp.end; i++ {
			x += p.DrawText(x, y, string(tv.text[i]), tv.StyleAt(i))
		}
	}
}
