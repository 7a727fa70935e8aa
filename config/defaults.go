// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/defaults.go
// Summary: Default values merged into every loaded configuration.

package config

// applySystemDefaults fills keys missing from cfg with the embedded defaults,
// so configs written by older builds pick up new sections.
func applySystemDefaults(cfg Config) {
	if cfg == nil {
		return
	}
	def, err := embeddedSystemDefaults()
	if err != nil || def == nil {
		return
	}
	for name := range def {
		if section := def.Section(name); section != nil {
			cfg.RegisterDefaults(name, section)
		}
	}
}
