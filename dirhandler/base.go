// Package dirhandler implements the shared Handler Stack (spec.md §3): a
// directory stack whose top is the "current" directory, and the flat,
// push-order list of every directory produced during a walk. exifhandler
// embeds Base and adds EXIF-specific dispatch on top of it.
package dirhandler

import "github.com/jrm-1535/tiffmeta/directory"

// Base tracks an ordered stack of directories (the top is current) and the
// full set of pushed directories in push order, per spec.md §3 "Handler
// Stack". A directory's parent is whatever was current at the moment it
// was pushed, which is nil for the very first (root) directory.
type Base struct {
    stack    []*directory.Directory
    produced []*directory.Directory
}

// PushDirectory creates a new directory of kind, parents it to whatever is
// currently on top of the stack (nil if the stack is empty), pushes it,
// and records it in the produced list.
func (b *Base) PushDirectory(kind directory.Kind) *directory.Directory {
    d := directory.New(kind)
    if cur := b.Current(); cur != nil {
        d.SetParent(cur)
    }
    b.stack = append(b.stack, d)
    b.produced = append(b.produced, d)
    return d
}

// PopDirectory pops the current directory, restoring whatever was pushed
// before it. A pop on an empty stack is a no-op.
func (b *Base) PopDirectory() {
    if len(b.stack) == 0 {
        return
    }
    b.stack = b.stack[:len(b.stack)-1]
}

// Current returns the top of the directory stack, or nil if empty.
func (b *Base) Current() *directory.Directory {
    if len(b.stack) == 0 {
        return nil
    }
    return b.stack[len(b.stack)-1]
}

// Error records err against the current directory, or silently drops it if
// there is none (only possible before the root directory is pushed).
func (b *Base) Error(err error) {
    if cur := b.Current(); cur != nil {
        cur.AddError(err)
    }
}

// Directories returns every directory pushed during the walk, in push
// order — the output contract of spec.md §6.
func (b *Base) Directories() []*directory.Directory {
    return b.produced
}

// Attach appends an already-complete directory (produced by an external
// collaborator — IPTC/ICC/Photoshop/XMP/JPEG — or by GeoTIFF or PrintIM
// unpacking) to the output list
// with the given parent, without pushing it onto the directory stack: it
// does not become "current" and nothing will be stored into it by the
// ongoing walk (spec.md §6 "the core attaches with parent = current").
func (b *Base) Attach(d *directory.Directory, parent *directory.Directory) {
    d.SetParent(parent)
    b.produced = append(b.produced, d)
}
