// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: texelui/core/observers.go
// Summary: Registration list for size observers.

package core

import (
	"sort"
	"sync"
)

// Observers is a set of size observers. The zero value is ready to use.
type Observers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func(w, h int)
}

// Add registers fn and returns a func that unregisters it. Calling cancel
// more than once is a no-op.
func (o *Observers) Add(fn func(w, h int)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	o.mu.Lock()
	if o.fns == nil {
		o.fns = make(map[int]func(w, h int))
	}
	id := o.next
	o.next++
	o.fns[id] = fn
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.fns, id)
			o.mu.Unlock()
		})
	}
}

// Len returns the number of registered observers.
func (o *Observers) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

// Notify calls every registered observer in registration order. Observers
// may cancel themselves while being notified.
func (o *Observers) Notify(w, h int) {
	o.mu.Lock()
	ids := make([]int, 0, len(o.fns))
	for id := range o.fns {
		ids = append(ids, id)
	}
	o.mu.Unlock()
	sort.Ints(ids)

	for _, id := range ids {
		o.mu.Lock()
		fn := o.fns[id]
		o.mu.Unlock()
		if fn != nil {
			fn(w, h)
		}
	}
}
