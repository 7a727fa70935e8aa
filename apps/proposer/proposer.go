// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/proposer/proposer.go
// Summary: Proposal generator screen: brief form on the left, scrolled result on the right.
// Usage: Built by the devshell registry and cmd/proposer.

package proposer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/config"
	"github.com/framegrace/proposer/internal/theming"
	"github.com/framegrace/proposer/proposal"
	"github.com/framegrace/proposer/texelui/adapter"
	"github.com/framegrace/proposer/texelui/core"
	"github.com/framegrace/proposer/texelui/scroll"
	"github.com/framegrace/proposer/texelui/widgets"
)

const (
	generateCaption = "✨ Generate AI Proposal"
	busyCaption     = "Generating Proposal..."
	keysHint        = "Tab next · ^G generate · ^Y copy · ^S save · ^R reload config · ^C quit"
	spinInterval    = 100 * time.Millisecond
)

// Swapped out in tests.
var (
	copyText       = proposal.Copy
	clipboardReady = proposal.ClipboardAvailable
	saveProposal   = proposal.Download
	loadSettings   = func() (config.Settings, error) {
		err := config.Reload()
		return config.Load(), err
	}
)

// Options configures a proposer App.
type Options struct {
	Settings config.Settings
	Brief    proposal.Brief
	// Now stamps download file names; defaults to time.Now.
	Now func() time.Time
}

// App is the interactive proposal generator.
type App struct {
	*adapter.UIApp

	ui       *core.UIManager
	gen      *proposal.Generator
	settings config.Settings
	now      func() time.Time

	formCard     *widgets.Border
	formView     *scroll.Viewport
	form         *widgets.Form
	client       *widgets.Input
	title        *widgets.Input
	description  *widgets.TextArea
	budgetLabel  *widgets.Label
	timelineLbl  *widgets.Label
	budget       *widgets.Input
	timeline     *widgets.Input
	deliverables *widgets.TextArea
	generateBtn  *widgets.Button
	errLine      *widgets.Label

	outCard     *widgets.Border
	out         *widgets.Form
	copyBtn     *widgets.Button
	downloadBtn *widgets.Button
	spinner     *widgets.Spinner
	hint        *widgets.TextView
	resultView  *scroll.Viewport
	result      *widgets.TextView

	status *widgets.Label

	busy     bool
	cancel   context.CancelFunc
	proposal string
}

// New builds the proposer screen. The form is prefilled from opts.Brief.
func New(opts Options) *App {
	ui := core.NewUIManager()
	a := &App{
		UIApp:    adapter.NewUIApp("Proposer", ui),
		ui:       ui,
		gen:      proposal.NewGenerator(opts.Settings.GeneratorDelay),
		settings: opts.Settings,
		now:      opts.Now,
	}
	if a.now == nil {
		a.now = time.Now
	}
	tm := theming.Get()
	muted := tm.Style("muted_fg", tcell.ColorGray, "surface_bg", tcell.ColorBlack)

	a.buildForm(muted)
	a.buildOutput(muted)

	a.status = widgets.NewLabel(0, 0, 1, 1, keysHint)
	a.status.Style = muted

	ui.AddWidget(a.formCard)
	ui.AddWidget(a.outCard)
	ui.AddWidget(a.status)
	a.setBrief(opts.Brief)
	ui.Focus(a.client)

	a.OnResize(func(w, h int) { ui.Update(func() { a.layout(w, h) }) })
	a.OnStop(func() {
		ui.Update(func() {
			if a.cancel != nil {
				a.cancel()
			}
			a.formView.Close()
			a.resultView.Close()
		})
	})
	return a
}

func (a *App) newViewport() *scroll.Viewport {
	v := scroll.NewViewport(0, 0, 1, 1)
	a.configureViewport(v)
	return v
}

func (a *App) configureViewport(v *scroll.Viewport) {
	v.MinThumb = a.settings.MinThumb
	if a.settings.WheelStep > 0 {
		v.WheelStep = a.settings.WheelStep
	}
	if a.settings.TrackWidth > 0 {
		v.TrackWidth = a.settings.TrackWidth
	}
}

func (a *App) buildForm(muted tcell.Style) {
	label := func(s string) *widgets.Label { return widgets.NewLabel(0, 0, 0, 1, s) }
	input := func(placeholder string) *widgets.Input {
		in := widgets.NewInput(0, 0, 1)
		in.Placeholder = placeholder
		return in
	}
	area := func(placeholder string, rows int) *widgets.TextArea {
		ta := widgets.NewTextArea(0, 0, 1, rows)
		ta.Placeholder = placeholder
		return ta
	}

	a.client = input("Enter client or company name")
	a.title = input("e.g., Website Redesign Project")
	a.description = area("Describe the project, goals, and objectives...", 4)
	a.budgetLabel = label("Budget")
	a.timelineLbl = label("Timeline")
	a.budget = input("e.g., $10,000")
	a.timeline = input("e.g., 3 months")
	a.deliverables = area("List the main deliverables (one per line)", 3)
	a.generateBtn = widgets.NewButton(0, 0, 0, generateCaption)
	a.generateBtn.OnPress = a.generate
	a.errLine = label("")
	a.errLine.Style = theming.Get().Style("error_fg", tcell.ColorRed, "surface_bg", tcell.ColorBlack)

	subtitle := label("Fill in the details below to generate your proposal")
	subtitle.Style = muted
	footer := label("Developed by Hasnain Babar")
	footer.Style = muted

	f := widgets.NewForm(0, 0, 1)
	f.Add(subtitle, 1)
	f.Add(label(""), 1)
	f.Add(label("Client Name"), 1)
	f.Add(a.client, 1)
	f.Add(label("Project Title"), 1)
	f.Add(a.title, 1)
	f.Add(label("Project Description"), 1)
	f.Add(a.description, 4)
	f.AddRow(a.budgetLabel, a.timelineLbl)
	f.AddRow(a.budget, a.timeline)
	f.Add(label("Key Deliverables"), 1)
	f.Add(a.deliverables, 3)
	f.Add(label(""), 1)
	f.AddRow(a.generateBtn)
	f.Add(a.errLine, 1)
	f.Add(footer, 1)
	f.SetVisible(a.errLine, false)
	a.form = f

	a.formView = a.newViewport()
	a.formView.SetChild(f)
	a.formCard = widgets.NewBorder(0, 0, 1, 1, tcell.StyleDefault)
	a.formCard.Title = "Project Details"
	a.formCard.SetChild(a.formView)
}

func (a *App) buildOutput(muted tcell.Style) {
	a.copyBtn = widgets.NewButton(0, 0, 0, "📋 Copy")
	a.copyBtn.OnPress = a.copyProposal
	a.downloadBtn = widgets.NewButton(0, 0, 0, "💾 Download")
	a.downloadBtn.OnPress = a.downloadProposal

	a.spinner = widgets.NewSpinner(0, 0, "AI is crafting your proposal...")
	a.hint = widgets.NewTextView(0, 0, 1)
	a.hint.Style = muted
	a.hint.SetText(`Fill in the form and click "Generate AI Proposal" to create your proposal`)

	a.result = widgets.NewTextView(0, 0, 1)
	a.result.SetHighlighter(proposal.Lexer, a.settings.HighlightStyle)
	a.resultView = a.newViewport()
	a.resultView.SetChild(a.result)

	subtitle := widgets.NewLabel(0, 0, 0, 1, "Your AI-generated proposal will appear here")
	subtitle.Style = muted

	f := widgets.NewForm(0, 0, 1)
	f.Add(subtitle, 1)
	f.AddRow(a.copyBtn, a.downloadBtn)
	f.Add(a.spinner, 1)
	f.Add(a.hint, 3)
	f.AddFill(a.resultView, 1)
	a.out = f

	a.outCard = widgets.NewBorder(0, 0, 1, 1, tcell.StyleDefault)
	a.outCard.Title = "Generated Proposal"
	a.outCard.SetChild(f)
	a.syncOutput()
}

// layout places the two cards side by side above the status line.
func (a *App) layout(w, h int) {
	bodyH := max(h-1, 0)
	leftW := w / 2

	// Budget and Timeline share a row inside the scrolled form.
	inner := max(leftW-2-a.formView.TrackWidth, 2)
	half := max((inner-1)/2, 1)
	for _, wd := range []core.Widget{a.budgetLabel, a.budget} {
		wd.Resize(half, 1)
	}
	for _, wd := range []core.Widget{a.timelineLbl, a.timeline} {
		wd.Resize(inner-half-1, 1)
	}

	a.formCard.SetPosition(0, 0)
	a.formCard.Resize(leftW, bodyH)
	a.outCard.SetPosition(leftW, 0)
	a.outCard.Resize(w-leftW, bodyH)
	a.status.SetPosition(0, bodyH)
	a.status.Resize(w, 1)
	a.formView.EnsureFocusedVisible()
}

func (a *App) setBrief(b proposal.Brief) {
	a.client.SetText(b.ClientName)
	a.title.SetText(b.ProjectTitle)
	a.description.SetText(b.ProjectDescription)
	a.budget.SetText(b.Budget)
	a.timeline.SetText(b.Timeline)
	a.deliverables.SetText(b.Deliverables)
}

// Brief returns the form contents.
func (a *App) Brief() proposal.Brief {
	return proposal.Brief{
		ClientName:         a.client.Text,
		ProjectTitle:       a.title.Text,
		ProjectDescription: a.description.Text(),
		Budget:             a.budget.Text,
		Timeline:           a.timeline.Text,
		Deliverables:       a.deliverables.Text(),
	}
}

// Proposal returns the last generated proposal, or "".
func (a *App) Proposal() string { return a.proposal }

// Busy reports whether a generation is running.
func (a *App) Busy() bool { return a.busy }

// HandleKey runs the global shortcuts before the focused widget sees the key.
func (a *App) HandleKey(ev *tcell.EventKey) {
	var action func()
	switch ev.Key() {
	case tcell.KeyCtrlG:
		action = a.generate
	case tcell.KeyCtrlY:
		action = a.copyProposal
	case tcell.KeyCtrlS:
		action = a.downloadProposal
	case tcell.KeyEscape:
		action = a.abort
	case tcell.KeyCtrlR:
		action = a.reloadSettings
	}
	if action != nil {
		a.ui.Update(action)
		return
	}
	a.UIApp.HandleKey(ev)
}

// HandlePaste types pasted text into the focused field.
func (a *App) HandlePaste(data []byte) {
	for _, r := range string(data) {
		switch r {
		case '\r':
		case '\n':
			a.UIApp.HandleKey(tcell.NewEventKey(tcell.KeyEnter, 0, 0))
		default:
			a.UIApp.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, 0))
		}
	}
}

// The actions below run with the UI locked: from widget callbacks inside the
// UIManager or through ui.Update.

func (a *App) generate() {
	if a.busy {
		a.setStatus("A proposal is already being generated")
		return
	}
	a.setError("")
	a.proposal = ""
	a.result.SetText("")

	done := make(chan struct{})
	cancel, err := a.gen.Start(context.Background(), a.Brief(), func(text string, err error) {
		close(done)
		a.ui.Update(func() { a.finish(text, err) })
	})
	if err != nil {
		a.setError(err.Error())
		return
	}
	a.busy = true
	a.cancel = cancel
	a.generateBtn.SetText(busyCaption)
	a.generateBtn.SetDisabled(true)
	a.setStatus("Generating proposal...")
	a.syncOutput()
	go a.spin(done)
}

func (a *App) spin(done <-chan struct{}) {
	t := time.NewTicker(spinInterval)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			a.ui.Update(a.spinner.Tick)
		}
	}
}

func (a *App) finish(text string, err error) {
	a.busy = false
	a.cancel = nil
	a.generateBtn.SetText(generateCaption)
	a.generateBtn.SetDisabled(false)
	switch {
	case errors.Is(err, context.Canceled):
		a.setStatus("Generation cancelled")
	case err != nil:
		log.Printf("[PROPOSER] generation failed: %v", err)
		a.setError("Failed to generate proposal. Please try again.")
	default:
		a.proposal = text
		a.result.SetText(text)
		a.resultView.ScrollToTop()
		a.setStatus("Proposal generated")
	}
	a.syncOutput()
}

func (a *App) abort() {
	if a.cancel != nil {
		a.cancel()
	}
}

func (a *App) copyProposal() {
	if err := copyText(a.proposal); err != nil {
		a.setError(fmt.Sprintf("Copy failed: %v", err))
		return
	}
	a.setError("")
	a.setStatus("Proposal copied to clipboard!")
}

func (a *App) downloadProposal() {
	path, err := saveProposal(a.settings.ExportDir, a.client.Text, a.proposal, a.now())
	if err != nil {
		a.setError(fmt.Sprintf("Download failed: %v", err))
		return
	}
	a.setError("")
	a.setStatus("Saved " + path)
}

// reloadSettings re-reads proposer.json and applies it to the running screen.
// Flag overrides from the command line are replaced by the file's values.
func (a *App) reloadSettings() {
	if a.busy {
		a.setStatus("Wait for the current proposal before reloading")
		return
	}
	s, err := loadSettings()
	if err != nil {
		log.Printf("[PROPOSER] reload config: %v", err)
		a.setStatus(fmt.Sprintf("Reload failed: %v", err))
		return
	}
	a.settings = s
	a.gen.Delay = s.GeneratorDelay
	a.configureViewport(a.formView)
	a.configureViewport(a.resultView)
	a.result.SetHighlighter(proposal.Lexer, s.HighlightStyle)
	if a.ui.W > 0 && a.ui.H > 0 {
		a.layout(a.ui.W, a.ui.H)
	}
	a.setStatus("Settings reloaded")
}

// syncOutput shows exactly one of spinner, empty hint or result.
func (a *App) syncOutput() {
	has := a.proposal != ""
	a.copyBtn.SetDisabled(!clipboardReady())
	a.out.SetVisible(a.copyBtn, has && !a.busy)
	a.out.SetVisible(a.spinner, a.busy)
	a.out.SetVisible(a.hint, !has && !a.busy)
	a.out.SetVisible(a.resultView, has && !a.busy)
}

func (a *App) setError(msg string) {
	a.errLine.SetText(msg)
	a.form.SetVisible(a.errLine, msg != "")
	if msg != "" {
		a.setStatus(msg)
	}
}

func (a *App) setStatus(msg string) {
	if msg == "" {
		msg = keysHint
	}
	a.status.SetText(msg)
}
