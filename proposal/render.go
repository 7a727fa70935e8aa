// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proposal/render.go
// Summary: Fixed proposal template with per-field fallbacks.

package proposal

import (
	"strings"
	"text/template"
)

const proposalTemplate = `PROPOSAL FOR {{or (upper .ClientName) "CLIENT"}}

Project Title: {{or .ProjectTitle "Untitled Project"}}

EXECUTIVE SUMMARY

This proposal outlines our approach to deliver {{or .ProjectTitle "your project"}} for {{or .ClientName "your organization"}}. We are committed to providing exceptional value and ensuring project success through our proven methodology and expertise.

PROJECT OVERVIEW

{{or .ProjectDescription "Project description will be detailed here based on your requirements."}}

SCOPE OF WORK

Our comprehensive approach includes:
{{or .Deliverables "• Detailed deliverables will be specified based on project requirements"}}

TIMELINE

{{or .Timeline "Project timeline will be determined based on scope and requirements"}}

INVESTMENT

{{if .Budget}}Total Investment: {{.Budget}}{{else}}Investment details will be provided based on project scope{{end}}

NEXT STEPS

1. Review and approval of this proposal
2. Contract signing and project kickoff
3. Regular progress updates and milestone reviews

We look forward to partnering with you on this exciting project.

Best regards,
Your Team`

var tmpl = template.Must(template.New("proposal").
	Funcs(template.FuncMap{"upper": strings.ToUpper}).
	Parse(proposalTemplate))

// Render interpolates b into the proposal template. Field values are inserted
// verbatim; only empty fields are replaced by their fallback text.
func Render(b Brief) string {
	var sb strings.Builder
	// The template is static and only reads string fields.
	if err := tmpl.Execute(&sb, b); err != nil {
		panic(err)
	}
	return sb.String()
}
