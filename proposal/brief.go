// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proposal/brief.go
// Summary: Project brief collected by the form, loadable from YAML.

package proposal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Brief holds the client and project details a proposal is rendered from.
// Every field is optional; empty fields fall back to template defaults.
type Brief struct {
	ClientName         string `yaml:"client_name,omitempty"`
	ProjectTitle       string `yaml:"project_title,omitempty"`
	ProjectDescription string `yaml:"project_description,omitempty"`
	Budget             string `yaml:"budget,omitempty"`
	Timeline           string `yaml:"timeline,omitempty"`
	Deliverables       string `yaml:"deliverables,omitempty"`
}

// LoadBrief reads a YAML brief. Unknown keys are rejected so typos surface
// instead of silently producing fallback text. An empty file is an empty brief.
func LoadBrief(path string) (Brief, error) {
	var b Brief
	f, err := os.Open(path)
	if err != nil {
		return b, fmt.Errorf("open brief: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil && !errors.Is(err, io.EOF) {
		return Brief{}, fmt.Errorf("parse brief %s: %w", path, err)
	}
	return b, nil
}
