// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proposal/lexer.go
// Summary: Chroma lexer for proposal text and language detection for view mode.

package proposal

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-enry/go-enry/v2"
)

// Lexer highlights rendered proposals: the title line, section headings,
// field labels, numbered steps, bullets and money amounts.
var Lexer = lexers.Register(chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Proposal",
		Aliases:   []string{"proposal"},
		Filenames: []string{"proposal-*.txt"},
		MimeTypes: []string{"text/x-proposal"},
	},
	proposalRules,
))

func proposalRules() chroma.Rules {
	return chroma.Rules{
		"root": {
			{Pattern: `^PROPOSAL FOR .*$`, Type: chroma.GenericHeading},
			{Pattern: `^[A-Z][A-Z &]+$`, Type: chroma.GenericSubheading},
			{Pattern: `^(Project Title|Total Investment)(:)`, Type: chroma.ByGroups(chroma.NameAttribute, chroma.Punctuation)},
			{Pattern: `^\d+\.`, Type: chroma.LiteralNumber},
			{Pattern: `^[ \t]*[•*-]`, Type: chroma.Operator},
			{Pattern: `\$[\d,]+(\.\d+)?`, Type: chroma.LiteralNumber},
			{Pattern: `\n`, Type: chroma.Text},
			{Pattern: `.`, Type: chroma.Text},
		},
	}
}

// DetectLexer picks a lexer for a file shown in view mode. Proposal exports
// get Lexer; anything else is classified by go-enry and mapped to the chroma
// lexer of the same language. It returns nil when nothing fits.
func DetectLexer(filename string, content []byte) chroma.Lexer {
	base := filepath.Base(filename)
	if ok, _ := filepath.Match("proposal-*.txt", base); ok {
		return Lexer
	}
	if lang := enry.GetLanguage(base, content); lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	return lexers.Match(base)
}
