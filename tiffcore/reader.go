package tiffcore

import (
    "encoding/binary"

    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
)

// standardFormatSize is the per-component byte size for the twelve
// baseline TIFF type codes (ported from the teacher's getTiffTypeSize
// table in exif.go, _UnsignedByte.._Double).
var standardFormatSize = map[uint16]uint32{
    1: 1, // UnsignedByte
    2: 1, // ASCIIString (count is already in bytes)
    3: 2, // UnsignedShort
    4: 4, // UnsignedLong
    5: 8, // UnsignedRational
    6: 1, // SignedByte
    7: 1, // Undefined (count is already in bytes)
    8: 2, // SignedShort
    9: 4, // SignedLong
    10: 8, // SignedRational
    11: 4, // Float
    12: 8, // Double
}

// Walk reads the TIFF byte-order mark and marker, dispatches to h, and
// walks IFD0 plus its follower chain. It returns a non-nil error only for
// conditions detected before any directory exists to record them against
// (spec.md §4.2): an unrecognised byte-order mark or an unrecognised
// marker. Every other failure is recorded on the relevant directory and
// Walk returns nil so the caller always has a usable (if error-bearing)
// directory tree, per spec.md §7's "the walk always completes" contract.
func Walk(r *bytereader.Reader, h Handler) error {
    markBytes, err := r.Bytes(0, 2)
    if err != nil {
        return ifderr.Wrap(ifderr.TIFFBadByteOrder, err, "reading byte-order mark")
    }

    var order binary.ByteOrder
    switch string(markBytes) {
    case "II":
        order = binary.LittleEndian
    case "MM":
        order = binary.BigEndian
    default:
        return ifderr.Newf(ifderr.TIFFBadByteOrder, "unrecognised byte-order mark %q", markBytes)
    }
    r = r.WithByteOrder(order)

    marker, err := r.Uint16(2)
    if err != nil {
        return ifderr.Wrap(ifderr.TIFFBadMarker, err, "reading TIFF marker")
    }

    std, rootKind, err := h.ProcessTIFFMarker(marker)
    if err != nil {
        return ifderr.Wrap(ifderr.TIFFBadMarker, err, "dispatching TIFF marker")
    }

    var ifd0Offset uint64
    if std == StandardBigTIFF {
        if _, err := r.Uint16(4); err != nil { // offset byte size field, unused beyond validation
            return ifderr.Wrap(ifderr.IOTruncated, err, "reading BigTIFF header")
        }
        ifd0Offset, err = r.Uint64(8)
    } else {
        var v uint32
        v, err = r.Uint32(4)
        ifd0Offset = uint64(v)
    }
    if err != nil {
        return ifderr.Wrap(ifderr.IOTruncated, err, "reading first IFD offset")
    }

    ctx := NewContext(r)
    dir := h.PushDirectory(rootKind)
    offset := uint32(ifd0Offset)
    firstFollower := true

    for offset != 0 {
        next := walkIFD(ctx, h, std, offset, dir)
        if next == 0 {
            break
        }
        kind, ok := h.NextFollowerKind()
        if !ok {
            break
        }
        if !firstFollower {
            h.PopDirectory() // keep every follower's parent = root, not its predecessor
        }
        firstFollower = false
        dir = h.PushDirectory(kind)
        offset = next
    }
    return nil
}

// WalkEmbeddedIFD walks one IFD at offset (relative to ctx's current base)
// into dir, which the caller must already have pushed via
// h.PushDirectory. It is the entry point the makernote decoders use to
// recurse without going through the top-level Walk, which
// expects a fresh byte-order mark and marker. The returned offset (the
// embedded IFD's own next-IFD field) is conventionally ignored by callers:
// embedded IFDs don't chain the way IFD0/IFD1/IFD2 do (spec.md §4.5).
func WalkEmbeddedIFD(ctx *Context, h Handler, std Standard, offset uint32, dir *directory.Directory) uint32 {
    return walkIFD(ctx, h, std, offset, dir)
}

// walkIFD reads one IFD at offset into dir (already pushed by the caller)
// and returns the absolute offset of the next IFD in its chain, or 0 if
// there is none or a fatal per-IFD condition occurred. It never returns an
// error: every failure is recorded on dir via h.Error/dir.AddError and
// processing continues with whatever can still be read (spec.md §4.2,
// §7).
func walkIFD(ctx *Context, h Handler, std Standard, offset uint32, dir *directory.Directory) uint32 {
    if ctx.MarkVisited(offset) {
        dir.AddError(ifderr.Newf(ifderr.TIFFCycle, "IFD at offset %#x already visited", offset))
        return 0
    }

    var count uint64
    var err error
    if std == StandardBigTIFF {
        count, err = ctx.Reader.Uint64(offset)
    } else {
        var c16 uint16
        c16, err = ctx.Reader.Uint16(offset)
        count = uint64(c16)
    }
    if err != nil {
        dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading IFD entry count"))
        return 0
    }

    entrySize := std.EntrySize()
    entriesStart := offset + std.CountSize()
    inlineFieldSize := std.OffsetSize()
    inlineFieldOffsetInEntry := entrySize - inlineFieldSize

    for i := uint64(0); i < count; i++ {
        entryOffset := entriesStart + uint32(i)*entrySize

        tag, err := ctx.Reader.Uint16(entryOffset)
        if err != nil {
            dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading tag id"))
            continue
        }
        format, err := ctx.Reader.Uint16(entryOffset + 2)
        if err != nil {
            dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading format code"))
            continue
        }

        var compCount uint64
        if std == StandardBigTIFF {
            compCount, err = ctx.Reader.Uint64(entryOffset + 4)
        } else {
            var c32 uint32
            c32, err = ctx.Reader.Uint32(entryOffset + 4)
            compCount = uint64(c32)
        }
        if err != nil {
            dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading component count"))
            continue
        }

        var byteCount uint32
        if bc, ok := h.TryCustomProcessFormat(tag, format, uint32(compCount)); ok {
            byteCount = bc
        } else if size, ok := standardFormatSize[format]; ok {
            byteCount = size * uint32(compCount)
        } else {
            dir.AddError(ifderr.Newf(ifderr.TIFFUnknownFormat, "tag %#04x has unknown format %d", tag, format))
            continue
        }

        inlineField := entryOffset + inlineFieldOffsetInEntry
        var valueOffset uint32
        if byteCount <= inlineFieldSize {
            valueOffset = inlineField
        } else if std == StandardBigTIFF {
            v, err := ctx.Reader.Uint64(inlineField)
            if err != nil {
                dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading value offset"))
                continue
            }
            valueOffset = uint32(v)
        } else {
            v, err := ctx.Reader.Uint32(inlineField)
            if err != nil {
                dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading value offset"))
                continue
            }
            valueOffset = v
        }

        if kind, enter := h.TryEnterSubIFD(tag); enter {
            sub := h.PushDirectory(kind)
            subOffset := valueOffset
            if byteCount == 4*uint32(compCount) {
                // A 4-byte-per-component entry holds the sub-IFD's offset;
                // any other shape holds the sub-IFD in place.
                p, err := ctx.Reader.Uint32(valueOffset)
                if err != nil {
                    sub.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading sub-IFD offset"))
                    h.PopDirectory()
                    continue
                }
                subOffset = p
            }
            walkIFD(ctx, h, std, subOffset, sub)
            h.PopDirectory()
            continue
        }

        handled, err := h.CustomProcessTag(ctx, tag, format, valueOffset, byteCount)
        if err != nil {
            dir.AddError(err)
            continue
        }
        if handled {
            continue
        }

        val, err := decodeStandardValue(ctx.Reader, format, valueOffset, uint32(compCount), byteCount)
        if err != nil {
            dir.AddError(err)
            continue
        }
        dir.Set(tag, val)
    }

    if endErr := h.EndingIFD(ctx, dir); endErr != nil {
        dir.AddError(endErr)
    }

    nextOffsetPos := entriesStart + uint32(count)*entrySize
    var next uint64
    if std == StandardBigTIFF {
        next, err = ctx.Reader.Uint64(nextOffsetPos)
    } else {
        var n32 uint32
        n32, err = ctx.Reader.Uint32(nextOffsetPos)
        next = uint64(n32)
    }
    if err != nil {
        dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading next-IFD offset"))
        return 0
    }

    return uint32(next)
}

// decodeStandardValue decodes one entry's value per the standard TIFF
// format table (spec.md §4.2 step 8): RATIONAL/SRATIONAL become (num,den)
// pairs, ASCII trims trailing NULs, UNDEFINED stays raw bytes, and
// single-element arrays collapse to scalars (handled inside the
// directory.NewXxxs constructors).
func decodeStandardValue(r *bytereader.Reader, format uint16, offset, count, byteCount uint32) (directory.Value, error) {
    switch format {
    case 1: // UnsignedByte
        b, err := r.Bytes(offset, count)
        if err != nil {
            return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading byte array")
        }
        u := make([]uint8, len(b))
        copy(u, b)
        return directory.NewUint8s(u), nil
    case 2: // ASCIIString
        b, err := r.Bytes(offset, byteCount)
        if err != nil {
            return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading ASCII string")
        }
        s := trimTrailingNULs(b)
        return directory.NewString(s), nil
    case 3: // UnsignedShort
        out := make([]uint16, count)
        for i := range out {
            v, err := r.Uint16(offset + uint32(i)*2)
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading short array")
            }
            out[i] = v
        }
        return directory.NewUint16s(out), nil
    case 4, 13: // UnsignedLong, and the 4-byte-per-component custom pointer type
        out := make([]uint32, count)
        for i := range out {
            v, err := r.Uint32(offset + uint32(i)*4)
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading long array")
            }
            out[i] = v
        }
        return directory.NewUint32s(out), nil
    case 5: // UnsignedRational
        out := make([]directory.URational, count)
        for i := range out {
            num, err := r.Uint32(offset + uint32(i)*8)
            if err == nil {
                out[i].Num = num
                out[i].Den, err = r.Uint32(offset + uint32(i)*8 + 4)
            }
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading unsigned rational array")
            }
        }
        return directory.NewURationals(out), nil
    case 6: // SignedByte
        b, err := r.Bytes(offset, count)
        if err != nil {
            return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading signed byte array")
        }
        out := make([]int8, len(b))
        for i, v := range b {
            out[i] = int8(v)
        }
        return directory.NewInt8s(out), nil
    case 7: // Undefined
        b, err := r.Bytes(offset, byteCount)
        if err != nil {
            return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading undefined bytes")
        }
        out := make([]byte, len(b))
        copy(out, b)
        return directory.NewBytes(out), nil
    case 8: // SignedShort
        out := make([]int16, count)
        for i := range out {
            v, err := r.Int16(offset + uint32(i)*2)
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading signed short array")
            }
            out[i] = v
        }
        return directory.NewInt16s(out), nil
    case 9: // SignedLong
        out := make([]int32, count)
        for i := range out {
            v, err := r.Int32(offset + uint32(i)*4)
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading signed long array")
            }
            out[i] = v
        }
        return directory.NewInt32s(out), nil
    case 10: // SignedRational
        out := make([]directory.SRational, count)
        for i := range out {
            num, err := r.Int32(offset + uint32(i)*8)
            if err == nil {
                out[i].Num = num
                var den int32
                den, err = r.Int32(offset + uint32(i)*8 + 4)
                out[i].Den = den
            }
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading signed rational array")
            }
        }
        return directory.NewSRationals(out), nil
    case 11: // Float
        out := make([]float32, count)
        for i := range out {
            v, err := r.Float32(offset + uint32(i)*4)
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading float array")
            }
            out[i] = v
        }
        return directory.NewFloat32s(out), nil
    case 12: // Double
        out := make([]float64, count)
        for i := range out {
            v, err := r.Float64(offset + uint32(i)*8)
            if err != nil {
                return directory.Value{}, ifderr.Wrap(ifderr.IOTruncated, err, "reading double array")
            }
            out[i] = v
        }
        return directory.NewFloat64s(out), nil
    }
    return directory.Value{}, ifderr.Newf(ifderr.TIFFUnknownFormat, "format %d has no decoder", format)
}

func trimTrailingNULs(b []byte) string {
    end := len(b)
    for end > 0 && b[end-1] == 0 {
        end--
    }
    return string(b[:end])
}
