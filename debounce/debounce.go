/*
	Copyright 2025 the slicerviz authors
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package debounce provides a timer-based coalescing queue for rapid event
// streams: triggers within the window collapse to the latest, which is
// flushed once the window expires.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces values triggered within a fixed window, invoking its
// callback with the latest value once the window elapses without a new
// trigger.
type Debouncer[T any] struct {
	window time.Duration
	fn     func(T)

	mu      sync.Mutex
	timer   *time.Timer
	latest  T
	pending bool
	stopped bool
}

// New returns a Debouncer invoking fn with the latest triggered value after
// each quiet window.
func New[T any](window time.Duration, fn func(T)) *Debouncer[T] {
	return &Debouncer[T]{window: window, fn: fn}
}

// Trigger records v as the latest value and restarts the window.
func (d *Debouncer[T]) Trigger(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.latest = v
	d.pending = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, d.fire)
}

// Flush invokes the callback immediately if a trigger is pending, without
// waiting for the window to expire.
func (d *Debouncer[T]) Flush() {
	d.fire()
}

// Stop cancels any pending trigger and prevents further ones.  Intended for
// dispose paths.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	v := d.latest
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fn(v)
}
