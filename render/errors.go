// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
)

// Common backend errors, wrapped in *BackendError.
var (
	// ErrUnsupportedTexture is returned when a texture was not created by
	// the backend executing the draw.
	ErrUnsupportedTexture = errors.New("render: unsupported texture")

	// ErrUnsupportedTransform is returned for transforms the backend cannot apply.
	ErrUnsupportedTransform = errors.New("render: unsupported transform")

	// ErrUnknownProgram is returned when a program is not known to the backend.
	ErrUnknownProgram = errors.New("render: unknown program")

	// ErrUnknownUniform is returned when a uniform is not declared by the
	// program, or uniforms are given without a program.
	ErrUnknownUniform = errors.New("render: unknown uniform")

	// ErrFrameFinished is returned when a frame is used after Finish.
	ErrFrameFinished = errors.New("render: frame already finished")
)

// BackendError is the error returned by frames when a draw fails.
// It is surfaced verbatim by render elements.
type BackendError struct {
	// Backend is the name of the failing backend (e.g., "software").
	Backend string

	// Op is the failing operation (e.g., "render_texture").
	Op string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *BackendError) Unwrap() error {
	return e.Err
}
