// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/clone.go
// Summary: Copies of config maps, so callers can edit without touching the store.

package config

// Clone copies cfg one level deep: every section gets its own map, leaf values
// are shared.
func Clone(cfg Config) Config {
	if cfg == nil {
		return nil
	}
	out := make(Config, len(cfg))
	for name, raw := range cfg {
		if section, ok := asSection(raw); ok {
			out[name] = cloneSection(section)
			continue
		}
		out[name] = raw
	}
	return out
}

func asSection(raw interface{}) (Section, bool) {
	switch v := raw.(type) {
	case Section:
		return v, true
	case map[string]interface{}:
		return Section(v), true
	}
	return nil, false
}

func cloneSection(s Section) Section {
	out := make(Section, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
