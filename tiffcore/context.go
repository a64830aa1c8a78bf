// Package tiffcore implements the recursive IFD walker (spec.md §4.2) and
// the abstract Handler contract it calls back into (spec.md §4.3). It owns
// no vendor or EXIF-specific knowledge; exifhandler supplies that by
// implementing Handler.
package tiffcore

import (
    "encoding/binary"

    "github.com/jrm-1535/tiffmeta/bytereader"
)

// Context carries everything an IFD walk needs beyond the handler: the
// underlying random-access reader, the current byte order, the current
// base offset (for nested scopes whose internal pointers are relative to a
// sub-region), and the set of already-visited IFD offsets shared by every
// derivation within one top-level walk, used to break cycles (spec.md §3
// "Reader Context"). Derivations produce a new Context; the original is
// never mutated.
type Context struct {
    Reader  *bytereader.Reader
    visited map[uint32]bool // shared across every derivation of one top-level walk
}

// NewContext starts a fresh top-level walk context over r.
func NewContext(r *bytereader.Reader) *Context {
    return &Context{Reader: r, visited: make(map[uint32]bool)}
}

// WithByteOrder derives a context sharing the same visited set but reading
// through a byte-order-flipped view of the reader (e.g. the Sony Type6
// and Ricoh makernotes force big-endian regardless of the parent's order).
func (c *Context) WithByteOrder(order binary.ByteOrder) *Context {
    return &Context{Reader: c.Reader.WithByteOrder(order), visited: c.visited}
}

// WithBaseOffset derives a context sharing the same visited set but whose
// offset zero is delta bytes further into the buffer (used when a
// makernote's internal offsets are relative to its own start rather than
// the TIFF header).
func (c *Context) WithBaseOffset(delta uint32) *Context {
    return &Context{Reader: c.Reader.WithBaseOffset(delta), visited: c.visited}
}

// MarkVisited records absOffset (relative to the context's base) as visited
// and reports whether it was already present — the cycle-prevention check
// from spec.md §4.2 step 1.
func (c *Context) MarkVisited(absOffset uint32) (alreadyVisited bool) {
    key := c.Reader.Base() + absOffset
    if c.visited[key] {
        return true
    }
    c.visited[key] = true
    return false
}
