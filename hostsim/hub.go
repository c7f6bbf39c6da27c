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

package hostsim

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Hub fans data updates out to a set of hosted visuals, which may be
// entirely different visual types sharing one report surface.
type Hub struct {
	mu sync.Mutex
	// Maps visual names to their hosts.
	hosts map[string]*Host
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{hosts: map[string]*Host{}}
}

// Register adds a named host to the hub.  Names must be unique.
func (hub *Hub) Register(name string, h *Host) error {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	if _, ok := hub.hosts[name]; ok {
		return fmt.Errorf("multiple hosts registered under '%s'", name)
	}
	hub.hosts[name] = h
	return nil
}

// Lookup returns the named host, or an error if none is registered.
func (hub *Hub) Lookup(name string) (*Host, error) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	h, ok := hub.hosts[name]
	if !ok {
		return nil, fmt.Errorf("no host registered under '%s'", name)
	}
	return h, nil
}

// Broadcast pushes an update through every registered host concurrently,
// returning the first error encountered.
func (hub *Hub) Broadcast(ctx context.Context) error {
	hub.mu.Lock()
	hosts := make([]*Host, 0, len(hub.hosts))
	for _, h := range hub.hosts {
		hosts = append(hosts, h)
	}
	hub.mu.Unlock()
	errg, ctx := errgroup.WithContext(ctx)
	for _, h := range hosts {
		func(h *Host) {
			errg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				return h.PushUpdate()
			})
		}(h)
	}
	return errg.Wait()
}
