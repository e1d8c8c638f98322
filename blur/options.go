// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package blur

// Option configures an Element during creation.
//
// Example:
//
//	elem := blur.New(store, blur.WithCornerRadius(12))
type Option func(*elementOptions)

type elementOptions struct {
	cornerRadius float32
}

func defaultOptions() elementOptions {
	return elementOptions{cornerRadius: 0}
}

// WithCornerRadius sets the initial corner radius in physical pixels.
// A radius of 0 draws the blurred region without the finishing shader.
func WithCornerRadius(r float32) Option {
	return func(o *elementOptions) {
		o.cornerRadius = r
	}
}
