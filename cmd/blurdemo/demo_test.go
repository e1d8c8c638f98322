// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"image"
	"io"
	"log/slog"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"

	"github.com/gogpu/effects/geom"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFlags(t *testing.T) {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg)
	err := fs.Parse([]string{
		"--width=320", "--height", "200", "--scale=1.5",
		"--noise=0.2", "--corner-radius=4", "--sigma=3",
		"--frames=2", "--composite", "-o", "out/frame.png", "-v",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := config{
		Width: 320, Height: 200, Scale: 1.5,
		Noise: 0.2, CornerRadius: 4, Sigma: 3,
		Frames: 2, Backend: "software", Composite: true,
		Output: "out/frame.png", Verbose: true,
	}
	if cfg != want {
		t.Errorf("config = %+v, want %+v", cfg, want)
	}
}

func renderToMemory(t *testing.T, cfg config) image.Image {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := run(cfg, fs, quietLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	f, err := fs.Open(cfg.Output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()

	img, err := imaging.Decode(f)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != cfg.Width || b.Dy() != cfg.Height {
		t.Fatalf("output size = %dx%d, want %dx%d", b.Dx(), b.Dy(), cfg.Width, cfg.Height)
	}
	return img
}

func smallConfig() config {
	cfg := defaultConfig()
	cfg.Width = 64
	cfg.Height = 48
	cfg.Sigma = 2
	cfg.Frames = 3
	cfg.CornerRadius = 4
	cfg.Output = "frames/last.png"
	return cfg
}

func TestRunWritesPNG(t *testing.T) {
	cfg := smallConfig()
	img := renderToMemory(t, cfg)

	// Outside the panel the backdrop shows through unchanged.
	want := backdropImage(cfg.Width, cfg.Height).RGBAAt(1, 1)
	r, g, b, a := img.At(1, 1).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || uint8(a>>8) != 255 {
		t.Errorf("pixel (1,1) = %v, want backdrop %v", img.At(1, 1), want)
	}
}

func TestRunCompositeMatchesDirect(t *testing.T) {
	direct := smallConfig()
	comp := smallConfig()
	comp.Composite = true

	a := imaging.Clone(renderToMemory(t, direct))
	b := imaging.Clone(renderToMemory(t, comp))

	for i := range a.Pix {
		d := int(a.Pix[i]) - int(b.Pix[i])
		if d > 1 || d < -1 {
			t.Fatalf("composite output differs from direct at byte %d: %d vs %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestRunInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config)
	}{
		{"zero width", func(c *config) { c.Width = 0 }},
		{"negative scale", func(c *config) { c.Scale = -1 }},
		{"unknown backend", func(c *config) { c.Backend = "vulkan" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mutate(&cfg)
			if err := run(cfg, afero.NewMemMapFs(), quietLogger()); err == nil {
				t.Error("run() should fail")
			}
		})
	}
}

func TestLayoutSlides(t *testing.T) {
	s, err := newScene(smallConfig())
	if err != nil {
		t.Fatalf("newScene() error = %v", err)
	}

	first, size := s.layout(0)
	last, _ := s.layout(2)

	if first.X != 0 {
		t.Errorf("first frame X = %v, want 0", first.X)
	}
	if want := 64 - size.W; last.X != want {
		t.Errorf("last frame X = %v, want %v", last.X, want)
	}
	if size != geom.Sz(32, 16) {
		t.Errorf("panel size = %v, want 32x16", size)
	}
}
