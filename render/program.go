// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"slices"

	"github.com/gogpu/gpucontext"
)

// Program is a shader program a frame can run for a textured-quad draw.
//
// Source holds the WGSL text. SPIRV is filled in by a compiler for GPU
// backends and stays nil for backends that interpret programs by name.
type Program struct {
	// Name identifies the program within a Programs registry.
	Name string

	// Source is the WGSL source of the program.
	Source string

	// Uniforms lists the names of the uniforms the program declares, in
	// declaration order.
	Uniforms []string

	// SPIRV is the compiled module, or nil if not compiled.
	SPIRV []uint32
}

// Declares reports whether the program declares a uniform called name.
func (p *Program) Declares(name string) bool {
	return slices.Contains(p.Uniforms, name)
}

// Compiled reports whether SPIR-V code is available.
func (p *Program) Compiled() bool {
	return len(p.SPIRV) > 0
}

// Programs is a registry of named shader programs.
//
// It is safe for concurrent use.
type Programs struct {
	reg *gpucontext.Registry[*Program]
}

// NewPrograms creates an empty program registry.
func NewPrograms() *Programs {
	return &Programs{reg: gpucontext.NewRegistry[*Program]()}
}

// Register adds p under p.Name, replacing any program of the same name.
func (ps *Programs) Register(p *Program) {
	ps.reg.Register(p.Name, func() *Program { return p })
}

// Unregister removes the program called name.
func (ps *Programs) Unregister(name string) {
	ps.reg.Unregister(name)
}

// Get returns the program called name, or nil.
func (ps *Programs) Get(name string) *Program {
	return ps.reg.Get(name)
}

// Has reports whether a program called name is registered.
func (ps *Programs) Has(name string) bool {
	return ps.reg.Has(name)
}

// Names returns the registered program names in sorted order.
func (ps *Programs) Names() []string {
	names := ps.reg.Available()
	slices.Sort(names)
	return names
}

// Len returns the number of registered programs.
func (ps *Programs) Len() int {
	return ps.reg.Count()
}
