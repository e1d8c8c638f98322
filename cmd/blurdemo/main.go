// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command blurdemo renders a moving blur element over a synthetic backdrop
// and writes the last frame as a PNG.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	flag "github.com/spf13/pflag"
	_ "github.com/gogpu/wgpu/hal/vulkan"

	"github.com/gogpu/effects"
	_ "github.com/gogpu/effects/backend/software"
	_ "github.com/gogpu/effects/backend/wgpu"
)

func main() {
	cfg := defaultConfig()
	fs := newFlagSet(&cfg)
	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	effects.SetLogger(logger)

	if err := run(cfg, afero.NewOsFs(), logger); err != nil {
		fmt.Fprintf(os.Stderr, "blurdemo: %v\n", err)
		os.Exit(1)
	}
}

// config holds the demo settings.
type config struct {
	Width          int
	Height         int
	Scale          float64
	Noise          float32
	CornerRadius   float32
	Sigma          float64
	Frames         int
	Backend        string
	Composite      bool
	CompileShaders bool
	Output         string
	Verbose        bool
}

func defaultConfig() config {
	return config{
		Width:        800,
		Height:       600,
		Scale:        1,
		Noise:        0.05,
		CornerRadius: 16,
		Sigma:        12,
		Frames:       8,
		Backend:      "software",
		Output:       "blurdemo.png",
	}
}

func newFlagSet(cfg *config) *flag.FlagSet {
	fs := flag.NewFlagSet("blurdemo", flag.ContinueOnError)
	fs.IntVar(&cfg.Width, "width", cfg.Width, "output width in physical pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "output height in physical pixels")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "output scale")
	fs.Float32Var(&cfg.Noise, "noise", cfg.Noise, "dithering noise amplitude in [0, 1]")
	fs.Float32Var(&cfg.CornerRadius, "corner-radius", cfg.CornerRadius, "corner radius in physical pixels (0 disables rounding)")
	fs.Float64Var(&cfg.Sigma, "sigma", cfg.Sigma, "gaussian blur sigma of the backdrop")
	fs.IntVar(&cfg.Frames, "frames", cfg.Frames, "number of frames to render")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "rendering backend: software or wgpu (empty selects the default)")
	fs.BoolVar(&cfg.Composite, "composite", cfg.Composite, "render through an intermediate composite frame")
	fs.BoolVar(&cfg.CompileShaders, "compile-shaders", cfg.CompileShaders, "compile the effect shaders to SPIR-V and report their size")
	fs.StringVarP(&cfg.Output, "output", "o", cfg.Output, "output PNG file")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "enable debug logging")
	return fs
}
