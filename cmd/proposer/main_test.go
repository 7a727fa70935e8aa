// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/framegrace/proposer/config"
)

func writeBrief(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "brief.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPrintProposalToStdout(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out, errOut bytes.Buffer
	opts := options{brief: writeBrief(t, "client_name: Acme\nbudget: $3k\n"), delay: -1}
	if err := printProposal(opts, &out, &errOut); err != nil {
		t.Fatalf("printProposal: %v", err)
	}
	if !strings.HasPrefix(out.String(), "PROPOSAL FOR ACME\n") || !strings.Contains(out.String(), "Total Investment: $3k") {
		t.Errorf("stdout = %q", out.String())
	}
	if errOut.Len() != 0 {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestPrintProposalToDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	if err := printProposal(options{out: dir, delay: -1}, &out, &errOut); err != nil {
		t.Fatalf("printProposal: %v", err)
	}
	matches, _ := filepath.Glob(filepath.Join(dir, "proposal-client-*.txt"))
	if len(matches) != 1 {
		t.Fatalf("exports = %v", matches)
	}
	if !strings.Contains(errOut.String(), matches[0]) {
		t.Errorf("stderr = %q", errOut.String())
	}
}

func TestAppOptionsOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	o, err := appOptions(options{out: "/tmp/x", delay: 0})
	if err != nil {
		t.Fatal(err)
	}
	if o.Settings.ExportDir != "/tmp/x" || o.Settings.GeneratorDelay != 0 {
		t.Errorf("settings = %+v", o.Settings)
	}
	o, _ = appOptions(options{delay: -1})
	if o.Settings.GeneratorDelay != 2*time.Second {
		t.Errorf("default delay = %v", o.Settings.GeneratorDelay)
	}
	if _, err := appOptions(options{brief: writeBrief(t, "nope: 1\n"), delay: -1}); err == nil {
		t.Error("invalid brief accepted")
	}
}

func TestSetupLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "p.log")
	f, err := setupLogging(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}()
	log.Printf("[PROPOSER] hello")
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "[PROPOSER] hello") {
		t.Errorf("log file = %q", data)
	}
}

func TestSaveSettingsWritesOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	before := config.Clone(config.System())
	t.Cleanup(func() { config.SetSystem(before) })

	var errOut bytes.Buffer
	if err := saveSettings(options{out: "/srv/out", delay: 250 * time.Millisecond}, &errOut); err != nil {
		t.Fatalf("saveSettings: %v", err)
	}
	path := filepath.Join(dir, "proposer", "proposer.json")
	if !strings.Contains(errOut.String(), path) {
		t.Errorf("stderr = %q, want %s", errOut.String(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var disk config.Config
	if err := json.Unmarshal(data, &disk); err != nil {
		t.Fatal(err)
	}
	s := config.SettingsFrom(disk)
	if s.ExportDir != "/srv/out" || s.GeneratorDelay != 250*time.Millisecond {
		t.Errorf("saved settings = %+v", s)
	}
	// Without overrides the in-memory store now serves the saved values.
	if got := settings(options{delay: -1}).ExportDir; got != "/srv/out" {
		t.Errorf("ExportDir = %q, want /srv/out", got)
	}
}
