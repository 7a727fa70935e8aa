// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/scroll/drag.go
// Summary: Thumb drag session holding pointer capture for the lifetime of a drag.

package scroll

// DragSession is an active thumb drag. It exists from pointer-down on the
// thumb until the next pointer-up or viewport teardown, and holds the pointer
// capture for exactly that long.
type DragSession struct {
	StartPointerY int
	StartOffset   int

	owner   *Viewport
	release func()
	ended   bool
}

// PointerMove implements core.PointerListener.
func (d *DragSession) PointerMove(_, y int) {
	if d.ended {
		return
	}
	d.owner.dragTo(d, y)
}

// PointerUp implements core.PointerListener.
func (d *DragSession) PointerUp(_, _ int) {
	d.end()
}

// end terminates the session and releases its capture. Safe to call twice.
func (d *DragSession) end() {
	if d.ended {
		return
	}
	d.ended = true
	if d.release != nil {
		d.release()
		d.release = nil
	}
	d.owner.dragEnded(d)
}
