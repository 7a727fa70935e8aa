// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/proposer/main.go
// Summary: Entry point: interactive proposal generator, file viewer or plain print mode.
// Usage: proposer [-brief file.yaml] [-out dir] [-delay 2s] [-print] [-view file] [-log path] [-write-config]

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"github.com/framegrace/proposer/apps/proposer"
	"github.com/framegrace/proposer/config"
	"github.com/framegrace/proposer/internal/devshell"
	"github.com/framegrace/proposer/proposal"
	"github.com/framegrace/proposer/texelui/core"
)

type options struct {
	brief   string
	out     string
	delay   time.Duration
	print   bool
	view    string
	logPath string
	save    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.brief, "brief", "", "YAML brief used to prefill the form")
	flag.StringVar(&opts.out, "out", "", "directory downloads are written to (overrides config)")
	flag.DurationVar(&opts.delay, "delay", -1, "simulated generation time (default from config)")
	flag.BoolVar(&opts.print, "print", false, "render the brief to stdout instead of opening the UI")
	flag.StringVar(&opts.view, "view", "", "open a file read-only in the scroll viewer")
	flag.StringVar(&opts.logPath, "log", "", "log file path (default under the config dir)")
	flag.BoolVar(&opts.save, "write-config", false, "store -out and -delay in proposer.json and exit")
	flag.Parse()

	if opts.save {
		if err := saveSettings(opts, os.Stderr); err != nil {
			log.Fatalf("proposer: %v", err)
		}
		return
	}

	if opts.print || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printProposal(opts, os.Stdout, os.Stderr); err != nil {
			log.Fatalf("proposer: %v", err)
		}
		return
	}

	logFile, err := setupLogging(opts.logPath)
	if err != nil {
		log.Fatalf("proposer: logging: %v", err)
	}
	defer logFile.Close()

	if err := config.Err(); err != nil {
		log.Printf("Config: %v (using defaults)", err)
	}

	if opts.view != "" {
		err = devshell.RunApp("viewer", []string{opts.view})
	} else {
		err = devshell.Run(func([]string) (core.App, error) {
			o, err := appOptions(opts)
			if err != nil {
				return nil, err
			}
			return proposer.New(o), nil
		}, nil)
	}
	if err != nil {
		log.Printf("proposer: %v", err)
		fmt.Fprintf(os.Stderr, "proposer: %v\n", err)
		os.Exit(1)
	}
}

// settings resolves config settings and applies flag overrides.
func settings(opts options) config.Settings {
	s := config.Load()
	if opts.out != "" {
		s.ExportDir = opts.out
	}
	if opts.delay >= 0 {
		s.GeneratorDelay = opts.delay
	}
	return s
}

// saveSettings persists the flag overrides so later runs pick them up.
func saveSettings(opts options, stderr io.Writer) error {
	cfg := config.Clone(config.System())
	settings(opts).Store(cfg)
	config.SetSystem(cfg)
	path, err := config.SaveSystem()
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "wrote %s\n", path)
	return nil
}

// appOptions adds the brief, if any, to the resolved settings.
func appOptions(opts options) (proposer.Options, error) {
	o := proposer.Options{Settings: settings(opts)}
	if opts.brief != "" {
		b, err := proposal.LoadBrief(opts.brief)
		if err != nil {
			return o, err
		}
		o.Brief = b
	}
	return o, nil
}

// printProposal renders the brief without the UI. With -out the proposal is
// saved as a download and the path is reported on stderr.
func printProposal(opts options, stdout, stderr io.Writer) error {
	o, err := appOptions(opts)
	if err != nil {
		return err
	}
	text := proposal.Render(o.Brief)
	if opts.out == "" {
		_, err := fmt.Fprintln(stdout, text)
		return err
	}
	path, err := proposal.Download(o.Settings.ExportDir, o.Brief.ClientName, text, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "saved %s\n", path)
	return nil
}

func setupLogging(path string) (*os.File, error) {
	if path == "" {
		dir, err := config.LogDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "proposer.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, err
	}
	log.SetOutput(file)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return file, nil
}
