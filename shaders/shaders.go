// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shaders provides the shader programs used by effect elements and
// the lookup of those programs from a frame.
package shaders

import (
	_ "embed"
	"fmt"
	"slices"

	"github.com/gogpu/naga"

	"github.com/gogpu/effects/render"
)

// Program names.
const (
	// BlurFinish rounds the corners of a blurred region and adds dithering
	// noise. Uniforms: geo, alpha, noise, corner_radius.
	BlurFinish = "blur_finish"
)

// Uniform names of the BlurFinish program.
const (
	UniformGeo          = "geo"
	UniformAlpha        = "alpha"
	UniformNoise        = "noise"
	UniformCornerRadius = "corner_radius"
)

//go:embed blur_finish.wgsl
var blurFinishSource string

var blurFinishUniforms = []string{UniformGeo, UniformAlpha, UniformNoise, UniformCornerRadius}

// BlurFinishSource returns the WGSL source of the BlurFinish program.
func BlurFinishSource() string {
	return blurFinishSource
}

// NewBlurFinish returns an uncompiled BlurFinish program.
func NewBlurFinish() *render.Program {
	return &render.Program{
		Name:     BlurFinish,
		Source:   blurFinishSource,
		Uniforms: slices.Clone(blurFinishUniforms),
	}
}

// Install registers the programs of this package in ps.
// Programs are registered uncompiled; GPU backends call Compile.
func Install(ps *render.Programs) {
	ps.Register(NewBlurFinish())
}

// Compile compiles p.Source to SPIR-V with naga and stores the result in
// p.SPIRV.
func Compile(p *render.Program) error {
	spirvBytes, err := naga.Compile(p.Source)
	if err != nil {
		return fmt.Errorf("shaders: failed to compile %s: %w", p.Name, err)
	}
	if len(spirvBytes)%4 != 0 {
		return fmt.Errorf("shaders: %s: SPIR-V size %d is not a multiple of 4", p.Name, len(spirvBytes))
	}

	// SPIR-V is a little-endian word stream.
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	p.SPIRV = code
	return nil
}

// CompileAll compiles every program registered in ps.
func CompileAll(ps *render.Programs) error {
	for _, name := range ps.Names() {
		p := ps.Get(name)
		if p == nil || p.Compiled() {
			continue
		}
		if err := Compile(p); err != nil {
			return err
		}
	}
	return nil
}

// Set is the view of a frame's shader registry used by effect elements.
// A nil field means the program is not available on that frame.
type Set struct {
	BlurFinish *render.Program
}

// FromFrame returns the effect programs available to frame.
func FromFrame(frame render.Frame) Set {
	ps := frame.Programs()
	if ps == nil {
		return Set{}
	}
	return Set{BlurFinish: ps.Get(BlurFinish)}
}
