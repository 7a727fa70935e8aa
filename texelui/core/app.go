// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/app.go
// Summary: Runtime contract between an application and the screen loop hosting it.

package core

import "github.com/gdamore/tcell/v2"

// App is what a screen loop drives. Run blocks until Stop is called.
// Apps with a HandleMouse(*tcell.EventMouse) method also receive mouse events.
type App interface {
	Run() error
	Stop()
	Resize(cols, rows int)
	Render() [][]Cell
	GetTitle() string
	HandleKey(ev *tcell.EventKey)
	SetRefreshNotifier(refreshChan chan<- bool)
}
