// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package recording provides a render.Frame that records draw calls instead
// of executing them.
//
// A recording frame stands in for a GPU frame wherever the question is "what
// would have been drawn": element tests, damage tracking tests and dry runs
// of a render loop.
//
// # Basic Usage
//
//	frame := recording.NewFrame(recording.WithPrograms(programs))
//
//	elem.Draw(frame, elem.Src(), dst, damage, nil)
//
//	for _, call := range frame.Calls() {
//	    fmt.Println(call.Dst, call.Program, call.Uniforms)
//	}
//
// # Failure Injection
//
// WithError makes every draw return the given error after recording the
// call, which exercises error propagation through elements and backends.
package recording
