// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/proposer/viewer.go
// Summary: Read-only file viewer used by -view, highlighted via DetectLexer.

package proposer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/config"
	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/proposal"
	"github.com/framegrace/proposer/texelui/adapter"
	"github.com/framegrace/proposer/texelui/core"
	"github.com/framegrace/proposer/texelui/scroll"
	"github.com/framegrace/proposer/texelui/widgets"
)

// Viewer shows one file in a scroll viewport.
type Viewer struct {
	*adapter.UIApp

	ui     *core.UIManager
	card   *widgets.Border
	view   *scroll.Viewport
	text   *widgets.TextView
	status *widgets.Label
	lang   string
}

// NewViewer loads path and picks a highlighter for it.
func NewViewer(path string, settings config.Settings) (*Viewer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	ui := core.NewUIManager()
	v := &Viewer{
		UIApp: adapter.NewUIApp(filepath.Base(path), ui),
		ui:    ui,
		lang:  "plain text",
	}

	v.text = widgets.NewTextView(0, 0, 1)
	if lexer := proposal.DetectLexer(path, data); lexer != nil {
		v.text.SetHighlighter(lexer, settings.HighlightStyle)
		v.lang = lexer.Config().Name
	}
	v.text.SetText(string(data))

	v.view = scroll.NewViewport(0, 0, 1, 1)
	v.view.MinThumb = settings.MinThumb
	if settings.WheelStep > 0 {
		v.view.WheelStep = settings.WheelStep
	}
	if settings.TrackWidth > 0 {
		v.view.TrackWidth = settings.TrackWidth
	}
	v.view.SetChild(v.text)

	v.card = widgets.NewBorder(0, 0, 1, 1, tcell.StyleDefault)
	v.card.Title = filepath.Base(path)
	v.card.SetChild(v.view)

	v.status = widgets.NewLabel(0, 0, 1, 1, "")
	v.status.Style = theming.Get().Style("muted_fg", tcell.ColorGray, "surface_bg", tcell.ColorBlack)

	ui.AddWidget(v.card)
	ui.AddWidget(v.status)
	ui.Focus(v.view)

	v.OnResize(func(w, h int) {
		ui.Update(func() {
			v.card.SetPosition(0, 0)
			v.card.Resize(w, max(h-1, 0))
			v.status.SetPosition(0, max(h-1, 0))
			v.status.Resize(w, 1)
			v.updateStatus()
		})
	})
	v.OnStop(func() { ui.Update(v.view.Close) })
	return v, nil
}

// Language returns the name of the lexer in use.
func (v *Viewer) Language() string { return v.lang }

// HandleKey adds q to quit; everything else scrolls the viewport.
func (v *Viewer) HandleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyRune && ev.Rune() == 'q' {
		v.Stop()
		return
	}
	v.UIApp.HandleKey(ev)
	v.ui.Update(v.updateStatus)
}

// HandleMouse keeps the position readout in step with wheel and thumb scrolling.
func (v *Viewer) HandleMouse(ev *tcell.EventMouse) {
	v.UIApp.HandleMouse(ev)
	v.ui.Update(v.updateStatus)
}

func (v *Viewer) updateStatus() {
	st := v.view.State()
	last := min(st.Offset+st.ViewportHeight, st.ContentHeight)
	v.status.SetText(fmt.Sprintf(" %s · rows %d-%d of %d · q quit", v.lang, min(st.Offset+1, last), last, st.ContentHeight))
}
