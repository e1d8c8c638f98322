// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/spf13/afero"

	"github.com/gogpu/effects/backend"
	"github.com/gogpu/effects/backend/composite"
	"github.com/gogpu/effects/blur"
	"github.com/gogpu/effects/damage"
	"github.com/gogpu/effects/framebuffers"
	"github.com/gogpu/effects/geom"
	"github.com/gogpu/effects/output"
	"github.com/gogpu/effects/render"
	"github.com/gogpu/effects/shaders"
)

// errNoUpload is returned for backends that cannot create textures from images.
var errNoUpload = errors.New("backend cannot upload textures")

// scene is the demo state shared by all frames.
type scene struct {
	cfg      config
	out      *output.Output
	renderer backend.Renderer
	target   *render.PixmapTarget
	tracker  *damage.Tracker
	backdrop *backdrop
	elem     *blur.Element
}

// run renders cfg.Frames frames and writes the last one to cfg.Output on fs.
func run(cfg config, fs afero.Fs, log *slog.Logger) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Scale <= 0 {
		return fmt.Errorf("invalid scale %v", cfg.Scale)
	}

	if cfg.CompileShaders {
		if err := compileShaders(log); err != nil {
			return err
		}
	}

	s, err := newScene(cfg)
	if err != nil {
		return err
	}
	log.Info("scene ready",
		slog.String("backend", s.renderer.Name()),
		slog.String("adapter", s.renderer.Device().AdapterInfo().Name),
		slog.String("output", s.out.ID.String()),
		slog.Bool("composite", cfg.Composite))

	for i := range cfg.Frames {
		res, err := s.renderFrame(i)
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		log.Debug("frame",
			slog.Int("index", i),
			slog.Int("damage", len(res.Damage)),
			slog.Int("drawn", res.Drawn),
			slog.Bool("dirty", s.elem.Dirty()))
	}

	if err := writePNG(fs, cfg.Output, s.target.Image()); err != nil {
		return err
	}
	log.Info("wrote frame", slog.String("path", cfg.Output), slog.Int("frames", cfg.Frames))
	return nil
}

func newScene(cfg config) (*scene, error) {
	r, err := backend.Lookup(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", cfg.Backend, err)
	}
	up, ok := r.(backend.TextureUploader)
	if !ok {
		return nil, fmt.Errorf("backend %q: %w", r.Name(), errNoUpload)
	}

	out := output.New("demo", geom.PhysicalSize{W: cfg.Width, H: cfg.Height}, cfg.Scale)

	backdropImg := backdropImage(cfg.Width, cfg.Height)
	backdropTex, err := up.Upload(backdropImg)
	if err != nil {
		return nil, fmt.Errorf("upload backdrop: %w", err)
	}
	blurredTex, err := up.Upload(imaging.Blur(backdropImg, cfg.Sigma))
	if err != nil {
		return nil, fmt.Errorf("upload blurred backdrop: %w", err)
	}

	store := framebuffers.NewStore()
	store.SetBlur(out.ID, blurredTex)

	tracker, err := damage.NewTracker(out.Mode, out.GeomScale())
	if err != nil {
		return nil, err
	}

	return &scene{
		cfg:      cfg,
		out:      out,
		renderer: r,
		target:   render.NewPixmapTarget(cfg.Width, cfg.Height),
		tracker:  tracker,
		backdrop: newBackdrop(backdropTex, out.Mode),
		elem:     blur.New(store, blur.WithCornerRadius(cfg.CornerRadius)),
	}, nil
}

// layout returns the logical location and size of the blur panel in frame i.
// The panel is half the output wide and slides left to right.
func (s *scene) layout(i int) (geom.Point, geom.Size) {
	logical := s.out.LogicalSize()
	size := geom.Sz(logical.W/2, logical.H/3)

	travel := logical.W - size.W
	t := 0.0
	if s.cfg.Frames > 1 {
		t = float64(i) / float64(s.cfg.Frames-1)
	}
	return geom.Pt(travel*t, (logical.H-size.H)/2), size
}

func (s *scene) renderFrame(i int) (damage.Result, error) {
	loc, size := s.layout(i)
	s.elem.Resize(size, s.out.Scale)
	s.elem.Bind(s.renderer, loc, s.cfg.Noise, s.out.ID)

	if s.cfg.Composite {
		return s.renderComposite()
	}
	return s.renderDirect()
}

func (s *scene) renderDirect() (damage.Result, error) {
	frame, err := s.renderer.BeginFrame(s.target)
	if err != nil {
		return damage.Result{}, err
	}
	res, err := damage.Render(s.tracker, frame, []render.RenderElement[render.Frame]{s.backdrop, s.elem})
	if err != nil {
		return res, err
	}
	return res, frame.Finish()
}

func (s *scene) renderComposite() (damage.Result, error) {
	frame, err := composite.NewRenderer(s.renderer).BeginFrame(s.target)
	if err != nil {
		return damage.Result{}, err
	}
	elements := []render.RenderElement[*composite.Frame]{
		composite.Adapt(s.backdrop),
		s.elem.Composite(),
	}
	res, err := damage.Render(s.tracker, frame, elements)
	if err != nil {
		return res, err
	}
	return res, frame.Finish()
}

func compileShaders(log *slog.Logger) error {
	ps := render.NewPrograms()
	shaders.Install(ps)
	if err := shaders.CompileAll(ps); err != nil {
		return err
	}
	for _, name := range ps.Names() {
		log.Info("compiled shader", slog.String("program", name), slog.Int("words", len(ps.Get(name).SPIRV)))
	}
	return nil
}

func writePNG(fs afero.Fs, path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
