// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framebuffers holds the per-output effect framebuffers.
//
// Effect framebuffers are produced by an upstream pipeline stage (for
// example, a blur pass run once per output per frame) and sampled by render
// elements at draw time. This package only stores and returns them: it never
// renders or allocates textures.
package framebuffers

import (
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/effects/output"
	"github.com/gogpu/effects/render"
)

// Source resolves the blurred-background texture of an output.
//
// Render elements depend on Source rather than on Store so that tests can
// supply a fake.
type Source interface {
	// BlurTexture returns the latest blurred texture for the output, or
	// false if none has been produced yet.
	BlurTexture(id output.ID) (render.Texture, bool)
}

// Framebuffers is the set of effect textures of one output.
type Framebuffers struct {
	// OptimizedBlur is the blurred copy of the output's background layers.
	OptimizedBlur render.Texture
}

// Store is a registry of Framebuffers keyed by output.
//
// Store is safe for concurrent use: producers update it while render loops
// read from it.
type Store struct {
	mu  sync.RWMutex
	fbs map[output.ID]Framebuffers
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{fbs: make(map[output.ID]Framebuffers)}
}

var defaultStore = NewStore()

// Default returns the process-wide store.
func Default() *Store {
	return defaultStore
}

// Set replaces the framebuffers of an output.
func (s *Store) Set(id output.ID, fb Framebuffers) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fbs[id] = fb
}

// SetBlur replaces the blurred texture of an output.
func (s *Store) SetBlur(id output.ID, tex render.Texture) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fb := s.fbs[id]
	fb.OptimizedBlur = tex
	s.fbs[id] = fb
}

// Get returns the framebuffers of an output.
func (s *Store) Get(id output.ID) (Framebuffers, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fb, ok := s.fbs[id]
	return fb, ok
}

// Remove forgets an output, typically when it is disconnected.
func (s *Store) Remove(id output.ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fbs, id)
}

// Outputs returns the outputs that have framebuffers, ordered by ID.
func (s *Store) Outputs() []output.ID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]output.ID, 0, len(s.fbs))
	for id := range s.fbs {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b output.ID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// BlurTexture implements Source.
func (s *Store) BlurTexture(id output.ID) (render.Texture, bool) {
	fb, ok := s.Get(id)
	if !ok || fb.OptimizedBlur == nil {
		return nil, false
	}
	return fb.OptimizedBlur, true
}

// Ensure Store implements Source.
var _ Source = (*Store)(nil)
