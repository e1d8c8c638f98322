// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaders

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

// BlurFinishUniformSize is the byte size of the WGSL BlurFinishUniforms
// block: vec4 geo, then alpha, noise, corner_radius and one padding float.
const BlurFinishUniformSize = 32

// CheckUniforms reports whether uniforms may be passed to program.
// A nil program accepts no uniforms; otherwise every uniform must be
// declared by the program.
func CheckUniforms(program *render.Program, uniforms []render.Uniform) error {
	if program == nil {
		if len(uniforms) > 0 {
			return fmt.Errorf("%w: uniforms without a program", render.ErrUnknownUniform)
		}
		return nil
	}
	for _, u := range uniforms {
		if !program.Declares(u.Name) {
			return fmt.Errorf("%w: %q in program %s", render.ErrUnknownUniform, u.Name, program.Name)
		}
	}
	return nil
}

// BlurFinishUniforms holds the uniform values of the BlurFinish program.
type BlurFinishUniforms struct {
	Geo          render.Float4
	Alpha        float32
	Noise        float32
	CornerRadius float32
}

// PlainUniforms returns the BlurFinish uniforms that reduce the program to
// a blit of dst scaled by alpha.
func PlainUniforms(dst geom.PhysicalRect, alpha float32) BlurFinishUniforms {
	return BlurFinishUniforms{Geo: geoOf(dst), Alpha: alpha}
}

// ParseBlurFinish reads the BlurFinish uniforms. Missing values default to
// geo = dst, alpha 1, no noise and square corners.
func ParseBlurFinish(uniforms []render.Uniform, dst geom.PhysicalRect) (BlurFinishUniforms, error) {
	p := BlurFinishUniforms{Geo: geoOf(dst), Alpha: 1}

	for _, u := range uniforms {
		switch u.Name {
		case UniformGeo:
			v, ok := u.Value.(render.Float4)
			if !ok {
				return p, uniformTypeError(u, 4)
			}
			p.Geo = v
		case UniformAlpha, UniformNoise, UniformCornerRadius:
			v, ok := u.Value.(render.Float1)
			if !ok {
				return p, uniformTypeError(u, 1)
			}
			switch u.Name {
			case UniformAlpha:
				p.Alpha = float32(v)
			case UniformNoise:
				p.Noise = float32(v)
			default:
				p.CornerRadius = float32(v)
			}
		default:
			return p, fmt.Errorf("%w: %q in program %s", render.ErrUnknownUniform, u.Name, BlurFinish)
		}
	}
	return p, nil
}

// Bytes packs u in the layout of the WGSL uniform block.
func (u BlurFinishUniforms) Bytes() []byte {
	buf := make([]byte, BlurFinishUniformSize)
	vals := [...]float32{u.Geo[0], u.Geo[1], u.Geo[2], u.Geo[3], u.Alpha, u.Noise, u.CornerRadius}
	for i, v := range vals {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

func geoOf(dst geom.PhysicalRect) render.Float4 {
	return render.Float4{float32(dst.X), float32(dst.Y), float32(dst.W), float32(dst.H)}
}

func uniformTypeError(u render.Uniform, want int) error {
	got := 0
	if u.Value != nil {
		got = u.Value.Components()
	}
	return fmt.Errorf("%w: %q has %d components, want %d", render.ErrUnknownUniform, u.Name, got, want)
}
