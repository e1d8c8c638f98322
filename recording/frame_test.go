// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package recording

import (
	"errors"
	"testing"

	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/render"
)

type stubTexture struct{}

func (stubTexture) Width() int  { return 4 }
func (stubTexture) Height() int { return 4 }

func TestFrameRecordsCalls(t *testing.T) {
	f := NewFrame()
	if f.ContextID().IsZero() {
		t.Error("default frame should have a context ID")
	}
	if f.Programs() == nil {
		t.Error("default frame should have a program registry")
	}

	damage := []geom.PhysicalRect{{X: 0, Y: 0, W: 2, H: 2}}
	uniforms := []render.Uniform{render.NewUniform("alpha", render.Float1(0.5))}
	prog := &render.Program{Name: "p", Uniforms: []string{"alpha"}}

	err := f.RenderTextureFromTo(stubTexture{}, geom.BufferRect{W: 4, H: 4},
		geom.PhysicalRect{X: 1, Y: 1, W: 4, H: 4}, damage, nil, geom.Normal, 1, prog, uniforms)
	if err != nil {
		t.Fatalf("RenderTextureFromTo() = %v", err)
	}

	// Mutating the caller's slices must not alter the record.
	damage[0].W = 99
	uniforms[0].Name = "changed"

	calls := f.Calls()
	if len(calls) != 1 {
		t.Fatalf("len(Calls()) = %d, want 1", len(calls))
	}
	c := calls[0]
	if c.Damage[0].W != 2 {
		t.Errorf("recorded damage was aliased: %+v", c.Damage)
	}
	if v, ok := c.Uniform("alpha"); !ok || v != render.Float1(0.5) {
		t.Errorf("Uniform(alpha) = %v, %v", v, ok)
	}
	if c.Program != prog || c.Dst.X != 1 || c.Alpha != 1 {
		t.Errorf("unexpected call: %+v", c)
	}
	if c.Opaque != nil {
		t.Errorf("nil opaque should stay nil, got %v", c.Opaque)
	}
}

func TestFrameWithError(t *testing.T) {
	want := errors.New("gpu lost")
	f := NewFrame(WithError(want))

	err := f.RenderTextureFromTo(stubTexture{}, geom.BufferRect{}, geom.PhysicalRect{}, nil, nil, geom.Normal, 1, nil, nil)
	if !errors.Is(err, want) {
		t.Errorf("RenderTextureFromTo() = %v, want %v", err, want)
	}
	if len(f.Calls()) != 1 {
		t.Error("failing draw should still be recorded")
	}
}

func TestFrameOptionsAndReset(t *testing.T) {
	id := render.NewContextID()
	ps := render.NewPrograms()
	f := NewFrame(WithContextID(id), WithPrograms(ps))

	if f.ContextID() != id || f.Programs() != ps {
		t.Error("options not applied")
	}

	_ = f.RenderTextureFromTo(stubTexture{}, geom.BufferRect{}, geom.PhysicalRect{}, nil, nil, geom.Normal, 1, nil, nil)
	_ = f.Finish()
	if f.Finishes() != 1 {
		t.Errorf("Finishes() = %d, want 1", f.Finishes())
	}

	f.Reset()
	if len(f.Calls()) != 0 || f.Finishes() != 0 {
		t.Error("Reset() should clear calls and finishes")
	}
}

func TestFrameResetKeepsEarlierCalls(t *testing.T) {
	f := NewFrame()
	first := geom.PhysicalRect{W: 1, H: 1}
	_ = f.RenderTextureFromTo(stubTexture{}, geom.BufferRect{}, first, nil, nil, geom.Normal, 1, nil, nil)
	before := f.Calls()

	f.Reset()
	second := geom.PhysicalRect{X: 5, W: 2, H: 2}
	_ = f.RenderTextureFromTo(stubTexture{}, geom.BufferRect{}, second, nil, nil, geom.Normal, 1, nil, nil)

	if len(before) != 1 || before[0].Dst != first {
		t.Errorf("calls taken before Reset = %+v, want one draw to %v", before, first)
	}
	if got := f.Calls(); len(got) != 1 || got[0].Dst != second {
		t.Errorf("Calls() after Reset = %+v, want one draw to %v", got, second)
	}
}
