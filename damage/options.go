// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package damage

// DefaultMaxRects is the default damage rectangle budget per frame.
const DefaultMaxRects = 16

// DefaultCapacity is the default number of elements remembered between frames.
const DefaultCapacity = 256

// Option configures a Tracker.
type Option func(*trackerOptions)

type trackerOptions struct {
	maxRects int
	capacity int
}

func defaultOptions() trackerOptions {
	return trackerOptions{
		maxRects: DefaultMaxRects,
		capacity: DefaultCapacity,
	}
}

// WithMaxRects sets the number of damage rectangles above which a frame
// falls back to damaging the whole output.
func WithMaxRects(n int) Option {
	return func(o *trackerOptions) {
		o.maxRects = n
	}
}

// WithCapacity sets how many elements the tracker remembers. Elements beyond
// the capacity are forgotten least recently used first; a forgotten element
// is treated as new when it shows up again.
func WithCapacity(n int) Option {
	return func(o *trackerOptions) {
		o.capacity = n
	}
}
