// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

// UniformValue is the value of a shader uniform.
// It is implemented by Float1, Float2, Float4 and Int1.
type UniformValue interface {
	// Components returns the number of scalar components.
	Components() int

	uniformValue()
}

// Float1 is a single float uniform.
type Float1 float32

// Float2 is a vec2<f32> uniform.
type Float2 [2]float32

// Float4 is a vec4<f32> uniform.
type Float4 [4]float32

// Int1 is a single i32 uniform.
type Int1 int32

func (Float1) Components() int { return 1 }
func (Float2) Components() int { return 2 }
func (Float4) Components() int { return 4 }
func (Int1) Components() int   { return 1 }

func (Float1) uniformValue() {}
func (Float2) uniformValue() {}
func (Float4) uniformValue() {}
func (Int1) uniformValue()   {}

// Uniform is a named value passed to a shader program.
type Uniform struct {
	Name  string
	Value UniformValue
}

// NewUniform creates a uniform.
func NewUniform(name string, v UniformValue) Uniform {
	return Uniform{Name: name, Value: v}
}

// LookupUniform returns the value of the uniform called name.
func LookupUniform(uniforms []Uniform, name string) (UniformValue, bool) {
	for _, u := range uniforms {
		if u.Name == name {
			return u.Value, true
		}
	}
	return nil, false
}
