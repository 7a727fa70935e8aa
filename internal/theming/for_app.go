// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/for_app.go
// Summary: Theme colour lookup backed by the "theme" config section.

package theming

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/config"
)

// Theme resolves named colours. The zero value resolves every key to its fallback.
type Theme struct {
	section config.Section
}

// Get returns the theme of the system config.
func Get() Theme {
	return FromConfig(config.System())
}

// FromConfig returns the theme stored in cfg's "theme" section.
func FromConfig(cfg config.Config) Theme {
	return Theme{section: cfg.Section("theme")}
}

// Color returns the colour stored under key, or fallback when the key is
// missing or does not parse.
func (t Theme) Color(key string, fallback tcell.Color) tcell.Color {
	if t.section == nil {
		return fallback
	}
	raw, ok := t.section[key].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return fallback
	}
	c := tcell.GetColor(strings.TrimSpace(raw))
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}

// String returns the string stored under key, or fallback.
func (t Theme) String(key, fallback string) string {
	if t.section == nil {
		return fallback
	}
	if v, ok := t.section[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

// Style builds a style from a foreground and background key pair.
func (t Theme) Style(fgKey string, fgFallback tcell.Color, bgKey string, bgFallback tcell.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(t.Color(fgKey, fgFallback)).
		Background(t.Color(bgKey, bgFallback))
}
