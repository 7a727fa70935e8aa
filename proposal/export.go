// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proposal/export.go
// Summary: Download file naming and writing.

package proposal

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// Filename returns proposal-<client>-<unix millis>.txt. The client name is
// reduced to a safe file name component; an empty result becomes "client".
func Filename(client string, now time.Time) string {
	name := sanitize(client)
	if name == "" {
		name = "client"
	}
	return fmt.Sprintf("proposal-%s-%d.txt", name, now.UnixMilli())
}

// sanitize keeps letters, digits, '.', '_' and '-', folding every other run of
// characters into a single '-'.
func sanitize(s string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.TrimSpace(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.':
			sb.WriteRune(r)
			dash = false
		case !dash:
			sb.WriteByte('-')
			dash = true
		}
	}
	return strings.Trim(sb.String(), "-.")
}

// Download writes text to dir/Filename(client, now) and returns the path.
// An empty dir means the current directory.
func Download(dir, client, text string, now time.Time) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmpty
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, Filename(client, now))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("write proposal: %w", err)
	}
	log.Printf("[PROPOSER] saved proposal to %s", path)
	return path, nil
}
