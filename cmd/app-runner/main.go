// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/app-runner/main.go
// Summary: Runs any registered app by name, for development.
// Usage: app-runner -app viewer README.md

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/framegrace/proposer/internal/devshell"
)

func main() {
	appName := flag.String("app", "", "name of the app to run ("+strings.Join(devshell.Names(), ", ")+")")
	flag.Parse()
	if *appName == "" {
		fmt.Fprintf(os.Stderr, "usage: app-runner -app <%s> [args]\n", strings.Join(devshell.Names(), "|"))
		os.Exit(2)
	}
	if err := devshell.RunApp(*appName, flag.Args()); err != nil {
		log.Fatalf("run failed: %v", err)
	}
}
