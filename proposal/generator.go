// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: proposal/generator.go
// Summary: Simulated proposal generation behind a fixed delay.

package proposal

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// DefaultDelay is the simulated generation time.
const DefaultDelay = 2 * time.Second

// ErrBusy is returned by Start while a generation is already running.
var ErrBusy = errors.New("proposal: generation already in progress")

// Generator produces proposals after Delay. At most one asynchronous
// generation runs at a time.
type Generator struct {
	Delay time.Duration

	mu   sync.Mutex
	busy bool
}

// NewGenerator returns a generator; a negative delay uses DefaultDelay.
func NewGenerator(delay time.Duration) *Generator {
	if delay < 0 {
		delay = DefaultDelay
	}
	return &Generator{Delay: delay}
}

// Generate waits for the delay and renders b. It returns ctx.Err() if the
// context ends first.
func (g *Generator) Generate(ctx context.Context, b Brief) (string, error) {
	start := time.Now()
	if g.Delay > 0 {
		timer := time.NewTimer(g.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			log.Printf("[PROPOSER] generation cancelled after %s: %v", time.Since(start).Round(time.Millisecond), ctx.Err())
			return "", ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}
	text := Render(b)
	log.Printf("[PROPOSER] generated proposal for %q (%d bytes) in %s", b.ClientName, len(text), time.Since(start).Round(time.Millisecond))
	return text, nil
}

// Start runs Generate on its own goroutine and calls done with the result.
// The returned cancel func aborts the wait; done then receives context.Canceled.
func (g *Generator) Start(ctx context.Context, b Brief, done func(string, error)) (context.CancelFunc, error) {
	g.mu.Lock()
	if g.busy {
		g.mu.Unlock()
		return nil, ErrBusy
	}
	g.busy = true
	g.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	go func() {
		text, err := g.Generate(ctx, b)
		g.mu.Lock()
		g.busy = false
		g.mu.Unlock()
		cancel()
		if done != nil {
			done(text, err)
		}
	}()
	return cancel, nil
}

// Busy reports whether an asynchronous generation is running.
func (g *Generator) Busy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.busy
}
