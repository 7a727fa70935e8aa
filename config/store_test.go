// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func resetStore() {
	once = sync.Once{}
	system = nil
	loadErr = nil
}

func TestSystemDefaultsWritten(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	cfg := System()
	if got := cfg.GetInt("generator", "delay_ms", 0); got != 2000 {
		t.Fatalf("generator.delay_ms = %d, want 2000", got)
	}

	path, err := systemConfigPath()
	if err != nil {
		t.Fatalf("systemConfigPath: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if disk.Section("viewport") == nil {
		t.Fatalf("expected viewport section to be present")
	}
}

func TestSaveSystemWritesUpdates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetStore()

	SetSystem(Config{
		"export": map[string]interface{}{"dir": "/tmp/out"},
	})
	path, err := SaveSystem()
	if err != nil {
		t.Fatalf("SaveSystem: %v", err)
	}
	if want, _ := systemConfigPath(); path != want {
		t.Errorf("SaveSystem path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read system config: %v", err)
	}

	var disk Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatalf("unmarshal system config: %v", err)
	}
	if got := disk.GetString("export", "dir", ""); got != "/tmp/out" {
		t.Fatalf("export.dir = %q, want /tmp/out", got)
	}
	// Defaults are merged into sections the caller left out.
	if got := disk.GetInt("viewport", "wheel_step", 0); got != 3 {
		t.Fatalf("viewport.wheel_step = %d, want 3", got)
	}
}

func TestExistingConfigKeepsUserValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetStore()

	path := filepath.Join(dir, "proposer", systemConfigName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{"generator":{"delay_ms":50}}`), 0644); err != nil {
		t.Fatal(err)
	}

	s := Load()
	if s.GeneratorDelay != 50*time.Millisecond {
		t.Errorf("GeneratorDelay = %v, want 50ms", s.GeneratorDelay)
	}
	if s.WheelStep != 3 {
		t.Errorf("WheelStep = %d, want default 3", s.WheelStep)
	}
	if err := Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

func TestCorruptConfigReportsErrorAndUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetStore()

	path := filepath.Join(dir, "proposer", systemConfigName)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(`{not json`), 0644); err != nil {
		t.Fatal(err)
	}

	if Err() == nil {
		t.Fatal("expected load error for corrupt config")
	}
	if got := Load().MinThumb; got != 1 {
		t.Errorf("MinThumb = %d, want 1", got)
	}
	// The broken file is left for the user to fix.
	data, _ := os.ReadFile(path)
	if string(data) != `{not json` {
		t.Errorf("corrupt config was overwritten: %q", data)
	}
}

func TestSettingsFromRejectsInvalidValues(t *testing.T) {
	cfg := Config{
		"viewport": map[string]interface{}{
			"wheel_step":  float64(0),
			"track_width": "2",
			"min_thumb":   float64(-4),
		},
		"generator": map[string]interface{}{"delay_ms": float64(-1)},
	}
	s := SettingsFrom(cfg)
	if s.WheelStep != 3 {
		t.Errorf("WheelStep = %d, want 3", s.WheelStep)
	}
	if s.TrackWidth != 2 {
		t.Errorf("TrackWidth = %d, want 2", s.TrackWidth)
	}
	if s.MinThumb != 1 {
		t.Errorf("MinThumb = %d, want 1", s.MinThumb)
	}
	if s.GeneratorDelay != 2*time.Second {
		t.Errorf("GeneratorDelay = %v, want 2s", s.GeneratorDelay)
	}
}

func TestReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	resetStore()

	if got := Load().WheelStep; got != 3 {
		t.Fatalf("WheelStep = %d, want 3", got)
	}
	path := filepath.Join(dir, "proposer", systemConfigName)
	if err := os.WriteFile(path, []byte(`{"viewport":{"wheel_step":7}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if got := Load().WheelStep; got != 7 {
		t.Errorf("WheelStep after reload = %d, want 7", got)
	}

	if err := os.WriteFile(path, []byte(`{`), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Reload(); err == nil || Err() == nil {
		t.Error("Reload of a corrupt file should report an error")
	}
}

func TestSettingsStoreRoundTrip(t *testing.T) {
	want := Settings{
		GeneratorDelay: 1500 * time.Microsecond,
		ExportDir:      "/srv/proposals",
		MinThumb:       2,
		WheelStep:      5,
		TrackWidth:     2,
		HighlightStyle: "monokai",
	}
	cfg := Config{"viewport": map[string]interface{}{"wheel_step": float64(1)}}
	want.Store(cfg)
	if got := SettingsFrom(cfg); got != want {
		t.Errorf("SettingsFrom(Store) = %+v, want %+v", got, want)
	}
	if got := cfg.GetFloat("generator", "delay_ms", 0); got != 1.5 {
		t.Errorf("delay_ms = %v, want 1.5", got)
	}
}

func TestCloneCopiesSections(t *testing.T) {
	orig := Config{
		"export": map[string]interface{}{"dir": "a"},
		"flag":   true,
	}
	c := Clone(orig)
	c.Section("export")["dir"] = "b"
	if got := orig.GetString("export", "dir", ""); got != "a" {
		t.Errorf("original changed: dir = %q", got)
	}
	if c["flag"] != true {
		t.Errorf("scalar not copied: %v", c["flag"])
	}
}
