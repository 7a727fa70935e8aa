// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package theming

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/proposer/config"
)

func TestColorParsesHexAndNames(t *testing.T) {
	tm := FromConfig(config.Config{
		"theme": map[string]interface{}{
			"scroll_thumb": "#06b6d4",
			"error_fg":     "red",
			"broken":       "not-a-colour",
			"number":       float64(3),
		},
	})

	if got, want := tm.Color("scroll_thumb", tcell.ColorWhite), tcell.NewHexColor(0x06b6d4); got != want {
		t.Errorf("scroll_thumb = %v, want %v", got, want)
	}
	if got := tm.Color("error_fg", tcell.ColorWhite); got != tcell.ColorRed {
		t.Errorf("error_fg = %v, want red", got)
	}
	if got := tm.Color("broken", tcell.ColorBlue); got != tcell.ColorBlue {
		t.Errorf("broken = %v, want fallback", got)
	}
	if got := tm.Color("number", tcell.ColorBlue); got != tcell.ColorBlue {
		t.Errorf("number = %v, want fallback", got)
	}
	if got := tm.Color("missing", tcell.ColorGreen); got != tcell.ColorGreen {
		t.Errorf("missing = %v, want fallback", got)
	}
}

func TestZeroThemeUsesFallbacks(t *testing.T) {
	var tm Theme
	if got := tm.Color("anything", tcell.ColorYellow); got != tcell.ColorYellow {
		t.Errorf("Color = %v, want fallback", got)
	}
	if got := tm.String("highlight_style", "monokai"); got != "monokai" {
		t.Errorf("String = %q, want fallback", got)
	}
}
