// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: System configuration store for proposer.

package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
)

const systemConfigName = "proposer.json"

// Config stores configuration sections as JSON-compatible data.
type Config map[string]interface{}

// Section stores key/value pairs for a configuration section.
type Section map[string]interface{}

var (
	mu      sync.RWMutex
	once    sync.Once
	system  Config
	loadErr error
)

// Err returns the most recent system config load error.
func Err() error {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return loadErr
}

// System returns the system configuration (proposer.json).
func System() Config {
	once.Do(initStore)
	mu.RLock()
	defer mu.RUnlock()
	return system
}

// Reload re-reads proposer.json, e.g. after the user edited it while the app
// runs. On error the store keeps defaults and Err reports the failure.
func Reload() error {
	once.Do(initStore)
	mu.Lock()
	defer mu.Unlock()
	loadErr = loadSystemLocked()
	return loadErr
}

// SaveSystem writes the in-memory system config to proposer.json and returns
// the path written.
func SaveSystem() (string, error) {
	once.Do(initStore)
	path, err := systemConfigPath()
	if err != nil {
		return "", err
	}
	mu.RLock()
	defer mu.RUnlock()
	if err := writeConfig(path, system); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	log.Printf("Config: Saved system config to %s", path)
	return path, nil
}

// SetSystem replaces the in-memory system config with a copy of cfg, filling
// keys it lacks from the embedded defaults. Nothing is written to disk.
func SetSystem(cfg Config) {
	once.Do(initStore)
	next := Clone(cfg)
	if next == nil {
		next = make(Config)
	}
	applySystemDefaults(next)
	mu.Lock()
	system = next
	mu.Unlock()
}

func initStore() {
	mu.Lock()
	defer mu.Unlock()
	system = make(Config)
	loadErr = loadSystemLocked()
}

func readConfig(path string) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}

func writeConfig(path string, cfg Config) error {
	if cfg == nil {
		cfg = make(Config)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
