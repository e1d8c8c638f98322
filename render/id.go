// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/rs/xid"

// ID identifies a render element across frames.
//
// IDs are minted once with NewID and never reused, so a render loop can key
// per-element bookkeeping on them. The zero value is not a valid element ID.
type ID struct {
	id xid.ID
}

// NewID returns a new globally unique element ID.
func NewID() ID {
	return ID{id: xid.New()}
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id.id.IsNil()
}

// String returns the textual form of id.
func (id ID) String() string {
	return id.id.String()
}

// CommitCounter is an element's content version. It only moves forward.
type CommitCounter uint64

// Increment advances the counter by one.
func (c *CommitCounter) Increment() {
	*c++
}

// Since returns how many commits happened after prev.
// It returns 0 if prev is not older than c.
func (c CommitCounter) Since(prev CommitCounter) uint64 {
	if prev >= c {
		return 0
	}
	return uint64(c - prev)
}

// ContextID identifies the GPU context that owns a renderer's resources.
// It is only meaningful for equality: two renderers sharing a context report
// the same ContextID. The zero value means "no context".
type ContextID struct {
	id xid.ID
}

// NewContextID returns a new unique context ID.
func NewContextID() ContextID {
	return ContextID{id: xid.New()}
}

// IsZero reports whether c is the zero value.
func (c ContextID) IsZero() bool {
	return c.id.IsNil()
}

// String returns the textual form of c.
func (c ContextID) String() string {
	return c.id.String()
}
