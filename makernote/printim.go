package makernote

import (
    "encoding/binary"

    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

var tagPrintImVersion = uint16(0x00)

// DecodePrintIM decodes a PrintIM (Print Image Matching) block at base,
// per spec.md §4.6, into its own directory.KindPrintIM directory ready to
// be attached with parent = the directory that held the PrintIM tag (it is
// never merged into that directory directly: PrintIM's own entry tags are
// small sequential indices that could otherwise silently collide with a
// vendor makernote's own small-integer tag space via Directory.Set's
// replace-on-duplicate rule). Preconditions: byteCount >= 16 and bytes
// [0..12) start with "PrintIM". If the entry count read at +14 implies a
// block larger than byteCount, the reader's byte order is flipped and the
// count re-read once; if still inconsistent the mismatch is recorded and
// decoding stops.
func DecodePrintIM(ctx *tiffcore.Context, base, byteCount uint32) *directory.Directory {
    dir := directory.New(directory.KindPrintIM)
    r := ctx.Reader

    header, err := r.Bytes(base, 12)
    if err != nil || !hasPrefix(header, "PrintIM") {
        dir.AddError(ifderr.Newf(ifderr.VendorBadHeader, "PrintIM signature missing at offset %#x", base))
        return dir
    }
    if byteCount < 16 {
        dir.AddError(ifderr.Newf(ifderr.VendorBadSize, "PrintIM block too small: %d bytes", byteCount))
        return dir
    }
    dir.Set(tagPrintImVersion, directory.NewString(string(header[8:12])))

    count, err := r.Uint16(base + 14)
    if err != nil {
        dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading PrintIM entry count"))
        return dir
    }

    active := r
    if 16+uint32(count)*6 > byteCount {
        flipped := ctx.WithByteOrder(flipByteOrder(r.ByteOrder()))
        count2, err2 := flipped.Reader.Uint16(base + 14)
        if err2 != nil || 16+uint32(count2)*6 > byteCount {
            dir.AddError(ifderr.Newf(ifderr.VendorBadSize, "PrintIM entry count %d inconsistent with byte count %d under either byte order", count, byteCount))
            return dir
        }
        active = flipped.Reader
        count = count2
    }

    for i := uint32(0); i < uint32(count); i++ {
        entryOff := base + 16 + i*6
        tag, err1 := active.Uint16(entryOff)
        value, err2 := active.Uint32(entryOff + 2)
        if err1 != nil || err2 != nil {
            dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err1, "reading PrintIM entry"))
            continue
        }
        dir.Set(tag, directory.NewUint32(value))
    }
    return dir
}

func flipByteOrder(o binary.ByteOrder) binary.ByteOrder {
    if o == binary.LittleEndian {
        return binary.BigEndian
    }
    return binary.LittleEndian
}
