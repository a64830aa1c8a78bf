package makernote

import (
    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

var (
    tagKodakModel       = uint16(0x00)
    tagKodakQuality     = uint16(0x01)
    tagKodakBurstMode   = uint16(0x02)
    tagKodakImageWidth  = uint16(0x03)
    tagKodakImageHeight = uint16(0x04)
    tagKodakYearCreated = uint16(0x05)
    tagKodakISO         = uint16(0x10)
)

// decodeKodak decodes the common prefix of a Kodak makernote: a fixed
// 8-byte model string followed by a handful of fixed-offset scalar fields
// (spec.md §4.8's "sequences of fixed-offset reads into well-known tag
// IDs"). off is the absolute offset of the makernote body, already past
// the 8-byte "KDK INFO"-style signature the recogniser matched on.
func decodeKodak(ctx *tiffcore.Context, dir *directory.Directory, off uint32) {
    r := ctx.Reader

    if s, err := r.String(off, 8, bytereader.UTF8); err == nil {
        dir.Set(tagKodakModel, directory.NewString(trimNUL(s)))
    } else {
        dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading Kodak model field"))
        return
    }

    if v, err := r.Uint16(off + 8); err == nil {
        dir.Set(tagKodakQuality, directory.NewUint16(v))
    }
    if v, err := r.Uint16(off + 10); err == nil {
        dir.Set(tagKodakBurstMode, directory.NewUint16(v))
    }
    if v, err := r.Uint32(off + 12); err == nil {
        dir.Set(tagKodakImageWidth, directory.NewUint32(v))
    }
    if v, err := r.Uint32(off + 16); err == nil {
        dir.Set(tagKodakImageHeight, directory.NewUint32(v))
    }
    if v, err := r.Uint16(off + 20); err == nil {
        dir.Set(tagKodakYearCreated, directory.NewUint16(v))
    }
    if v, err := r.Uint16(off + 22); err == nil {
        dir.Set(tagKodakISO, directory.NewUint16(v))
    }
}

func trimNUL(s string) string {
    for i, c := range s {
        if c == 0 {
            return s[:i]
        }
    }
    return s
}
