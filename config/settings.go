// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/settings.go
// Summary: Typed view of the proposer configuration sections.

package config

import "time"

// Settings is the resolved, typed configuration used by the app.
type Settings struct {
	GeneratorDelay time.Duration
	ExportDir      string
	MinThumb       int
	WheelStep      int
	TrackWidth     int
	HighlightStyle string
}

// DefaultSettings mirrors defaults/proposer.json for callers that run without a store.
func DefaultSettings() Settings {
	return Settings{
		GeneratorDelay: 2 * time.Second,
		MinThumb:       1,
		WheelStep:      3,
		TrackWidth:     1,
		HighlightStyle: "catppuccin-mocha",
	}
}

// SettingsFrom resolves Settings from cfg, falling back to DefaultSettings for
// missing or invalid values.
func SettingsFrom(cfg Config) Settings {
	s := DefaultSettings()
	s.GeneratorDelay = cfg.GetMillis("generator", "delay_ms", s.GeneratorDelay)
	s.ExportDir = cfg.GetString("export", "dir", s.ExportDir)
	if v := cfg.GetInt("viewport", "min_thumb", s.MinThumb); v >= 0 {
		s.MinThumb = v
	}
	if v := cfg.GetInt("viewport", "wheel_step", s.WheelStep); v > 0 {
		s.WheelStep = v
	}
	if v := cfg.GetInt("viewport", "track_width", s.TrackWidth); v > 0 {
		s.TrackWidth = v
	}
	s.HighlightStyle = cfg.GetString("theme", "highlight_style", s.HighlightStyle)
	return s
}

// Store writes s into cfg, creating sections as needed. SettingsFrom(cfg)
// returns s afterwards.
func (s Settings) Store(cfg Config) {
	set := func(name, key string, v interface{}) {
		section, ok := asSection(cfg[name])
		if !ok {
			section = make(Section)
			cfg[name] = section
		}
		section[key] = v
	}
	set("generator", "delay_ms", float64(s.GeneratorDelay)/float64(time.Millisecond))
	set("export", "dir", s.ExportDir)
	set("viewport", "min_thumb", s.MinThumb)
	set("viewport", "wheel_step", s.WheelStep)
	set("viewport", "track_width", s.TrackWidth)
	set("theme", "highlight_style", s.HighlightStyle)
}

// Load returns the settings of the system config.
func Load() Settings {
	return SettingsFrom(System())
}
