// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proposal/clipboard.go
// Summary: Copies proposal text to the system clipboard.

package proposal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrEmpty is returned when there is no proposal text to copy or save.
var ErrEmpty = errors.New("proposal: nothing to export")

// ErrNoClipboard is returned when no clipboard utility is installed.
var ErrNoClipboard = errors.New("proposal: no clipboard utility (install xclip, xsel or wl-clipboard)")

// Swapped out in tests.
var (
	writeClipboard       = clipboard.WriteAll
	clipboardUnsupported = func() bool { return clipboard.Unsupported }
)

// ClipboardAvailable reports whether a clipboard backend was found.
func ClipboardAvailable() bool { return !clipboardUnsupported() }

// Copy places text on the system clipboard.
func Copy(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmpty
	}
	if !ClipboardAvailable() {
		return ErrNoClipboard
	}
	if err := writeClipboard(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
