// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"slices"
	"sync"
)

// Factory creates a new renderer instance.
type Factory func() Renderer

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{"wgpu", "software"}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a new renderer of the named backend.
// Returns nil if the backend is not registered.
func Get(name string) Renderer {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default returns a renderer of the best available backend.
// Returns nil if no backends are registered.
func Default() Renderer {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if r := factory(); r != nil {
				return r
			}
		}
	}

	// Fallback: first available by name.
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if r := backends[name](); r != nil {
			return r
		}
	}

	return nil
}

// Lookup returns a renderer of the named backend, or the default backend if
// name is empty.
func Lookup(name string) (Renderer, error) {
	var r Renderer
	if name == "" {
		r = Default()
	} else {
		r = Get(name)
	}
	if r == nil {
		return nil, ErrBackendNotAvailable
	}
	return r, nil
}
