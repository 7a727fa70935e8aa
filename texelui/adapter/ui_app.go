// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/adapter/ui_app.go
// Summary: Adapts a UIManager to the core.App runtime contract.

package adapter

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/texelui/core"
)

// UIApp adapts a UIManager to core.App.
type UIApp struct {
	title    string
	ui       *core.UIManager
	stopCh   chan struct{}
	stopOnce sync.Once
	onResize func(w, h int)
	onStop   func()
}

var _ core.App = (*UIApp)(nil)

func NewUIApp(title string, ui *core.UIManager) *UIApp {
	if ui == nil {
		ui = core.NewUIManager()
	}
	return &UIApp{title: title, ui: ui, stopCh: make(chan struct{})}
}

func (a *UIApp) Run() error { <-a.stopCh; return nil }

// Stop ends Run, releases pointer captures and runs the stop hook once.
func (a *UIApp) Stop() {
	a.stopOnce.Do(func() {
		a.ui.ReleasePointers()
		if a.onStop != nil {
			a.onStop()
		}
		close(a.stopCh)
	})
}

// Done is closed once Stop has been called.
func (a *UIApp) Done() <-chan struct{} { return a.stopCh }

// OnResize registers the layout callback run after the UI is resized.
func (a *UIApp) OnResize(fn func(w, h int)) { a.onResize = fn }

// OnStop registers a teardown callback.
func (a *UIApp) OnStop(fn func()) { a.onStop = fn }

func (a *UIApp) Resize(cols, rows int) {
	a.ui.Resize(cols, rows)
	if a.onResize != nil {
		a.onResize(cols, rows)
	}
}

func (a *UIApp) Render() [][]core.Cell { return a.ui.Render() }

func (a *UIApp) GetTitle() string {
	if a.title == "" {
		return "Proposer"
	}
	return a.title
}

func (a *UIApp) HandleKey(ev *tcell.EventKey) { a.ui.HandleKey(ev) }

func (a *UIApp) HandleMouse(ev *tcell.EventMouse) { a.ui.HandleMouse(ev) }

func (a *UIApp) SetRefreshNotifier(ch chan<- bool) { a.ui.SetRefreshNotifier(ch) }

// UI exposes the manager for composition.
func (a *UIApp) UI() *core.UIManager { return a.ui }
