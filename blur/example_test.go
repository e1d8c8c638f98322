// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur_test

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/effects/backend/software"
	"github.com/gogpu/effects/blur"
	"github.com/gogpu/effects/framebuffers"
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/output"
	"github.com/gogpu/effects/recording"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// ExampleElement shows the per-frame update of a blur element and the draw
// call it issues.
func ExampleElement() {
	out := output.New("eDP-1", geom.PhysicalSize{W: 1920, H: 1080}, 2)

	// The blurred framebuffer is produced elsewhere; a recording frame
	// accepts any texture.
	store := framebuffers.NewStore()
	store.SetBlur(out.ID, software.NewRenderer().NewTexture(image.NewRGBA(image.Rect(0, 0, 1920, 1080))))

	programs := render.NewPrograms()
	shaders.Install(programs)
	frame := recording.NewFrame(recording.WithPrograms(programs))

	elem := blur.New(store, blur.WithCornerRadius(8))
	elem.Resize(geom.Sz(200, 100), out.Scale)
	elem.Bind(frame, geom.Pt(20, 10), 0.05, out.ID)

	dst := elem.Geometry(out.GeomScale())
	if err := elem.Draw(frame, elem.Src(), dst, []geom.PhysicalRect{{W: dst.W, H: dst.H}}, nil); err != nil {
		fmt.Println("draw failed:", err)
		return
	}

	call := frame.Calls()[0]
	fmt.Println("dst:", call.Dst)
	fmt.Println("program:", call.Program.Name)
	fmt.Println("uniforms:", len(call.Uniforms))
	// Output:
	// dst: {40 20 400 200}
	// program: blur_finish
	// uniforms: 4
}

// ExampleElement_software draws a rounded blur panel with the software
// backend.
func ExampleElement_software() {
	r := software.NewRenderer()
	out := output.New("HDMI-A-1", geom.PhysicalSize{W: 64, H: 64}, 1)

	blurred := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for i := range blurred.Pix {
		blurred.Pix[i] = 0xff
	}
	store := framebuffers.NewStore()
	store.SetBlur(out.ID, r.NewTexture(blurred))

	elem := blur.New(store, blur.WithCornerRadius(6))
	elem.Resize(geom.Sz(32, 32), out.Scale)
	elem.Bind(r, geom.Pt(16, 16), 0, out.ID)

	target := render.NewPixmapTarget(64, 64)
	target.Clear(color.Black)

	frame, err := r.BeginFrame(target)
	if err != nil {
		fmt.Println("begin frame failed:", err)
		return
	}
	dst := elem.Geometry(out.GeomScale())
	if err := elem.Draw(frame, elem.Src(), dst, []geom.PhysicalRect{{W: dst.W, H: dst.H}}, nil); err != nil {
		fmt.Println("draw failed:", err)
		return
	}
	if err := frame.Finish(); err != nil {
		fmt.Println("finish failed:", err)
		return
	}

	img := target.Image()
	fmt.Println("center:", img.RGBAAt(32, 32))
	fmt.Println("corner:", img.RGBAAt(16, 16))
	// Output:
	// center: {255 255 255 255}
	// corner: {0 0 0 255}
}
