package makernote

import (
    "encoding/binary"
    "fmt"
    "strconv"

    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

// reconyxHyperFireVersion is the MakerNoteVersion value (little-endian u16
// at the start of the makernote) that identifies a classic Reconyx
// HyperFire trail-camera makernote, per the recogniser table row in
// spec.md §4.5 ("read-u16(offset) = Reconyx HyperFire version constant").
// The spec names the check but not the literal; this is the value
// publicly documented for that camera family.
const reconyxHyperFireVersion = 0xf101

// ultraFireMakernoteID and ultraFirePublicID are the two constants an
// UltraFire makernote is expected to carry right after its ASCII prefix;
// a mismatch is recorded as vendor-bad-header without aborting the walk
// (spec.md §4.8, scenario 4 in §8).
const (
    ultraFireMakernoteID = 0xf103
    ultraFirePublicID    = 0x07d1
)

var (
    tagReconyxMakerNoteVersion = uint16(0x00)
    tagReconyxFirmwareVersion  = uint16(0x01)
    tagReconyxTriggerMode      = uint16(0x02)
    tagReconyxSequence         = uint16(0x03)
    tagReconyxEventNumber      = uint16(0x04)
    tagReconyxDateTime         = uint16(0x05)
    tagReconyxAmbientTemp      = uint16(0x0b)
    tagReconyxSerialNumber     = uint16(0x0e)
    tagReconyxUserLabel        = uint16(0x10)
)

// decodeReconyxHyperFire decodes a classic Reconyx HyperFire makernote: a
// sequence of fixed-offset little-endian reads into well-known tag IDs
// (spec.md §4.8).
func decodeReconyxHyperFire(ctx *tiffcore.Context, dir *directory.Directory, off uint32) {
    r := ctx.WithByteOrder(binary.LittleEndian).Reader
    readU16 := func(o uint32) (uint16, bool) {
        v, err := r.Uint16(off + o)
        if err != nil {
            dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading Reconyx HyperFire field"))
            return 0, false
        }
        return v, true
    }

    if v, ok := readU16(0); ok {
        dir.Set(tagReconyxMakerNoteVersion, directory.NewUint16(v))
    }

    major, ok1 := readU16(2)
    minor, ok2 := readU16(4)
    yearField, ok3 := readU16(6)
    dateField, ok4 := readU16(8)
    if ok1 && ok2 {
        parts := []uint16{major, minor, 0, 0}
        if ok3 && ok4 {
            if build, err := strconv.Atoi(fmt.Sprintf("%x%x", yearField, dateField)); err == nil {
                parts[3] = uint16(build)
            } else {
                dir.AddError(ifderr.Wrap(ifderr.VendorBadDatetime, err, "parsing HyperFire build component"))
                parts = parts[:3]
            }
        }
        dir.Set(tagReconyxFirmwareVersion, directory.NewVersion(directory.Version{Parts: parts}))
    }

    if v, ok := readU16(10); ok {
        dir.Set(tagReconyxTriggerMode, directory.NewUint16(v))
    }
    if v, ok := readU16(12); ok {
        dir.Set(tagReconyxSequence, directory.NewUint16(v))
    }
    if lo, ok := readU16(16); ok {
        if hi, ok2 := readU16(18); ok2 {
            dir.Set(tagReconyxEventNumber, directory.NewUint32(uint32(hi)<<16|uint32(lo)))
        }
    }

    sec, secOK := readU16(20)
    min, minOK := readU16(22)
    hour, hourOK := readU16(24)
    day, dayOK := readU16(26)
    month, monthOK := readU16(28)
    year, yearOK := readU16(30)
    if secOK && minOK && hourOK && dayOK && monthOK && yearOK {
        if dt, ok := validateReconyxDateTime(int(year), int(month), int(day), int(hour), int(min), int(sec)); ok {
            dir.Set(tagReconyxDateTime, directory.NewDateTime(dt))
        } else {
            dir.AddError(ifderr.Newf(ifderr.VendorBadDatetime, "invalid Reconyx HyperFire date/time fields"))
        }
    }

    if v, ok := readU16(32); ok {
        dir.Set(tagReconyxAmbientTemp, directory.NewInt16(int16(v)))
    }

    if s, err := r.NullTerminated(off+34, 30); err == nil {
        dir.Set(tagReconyxSerialNumber, directory.NewString(string(s)))
    }
    if s, err := r.String(off+64, 44, bytereader.UTF16LE); err == nil {
        dir.Set(tagReconyxUserLabel, directory.NewString(s))
    }
}

// decodeReconyxHyperFire2 shares HyperFire's field layout in this port;
// later firmware revisions add fields the teacher's source never modelled,
// so only the common prefix is decoded.
func decodeReconyxHyperFire2(ctx *tiffcore.Context, dir *directory.Directory, off uint32) {
    decodeReconyxHyperFire(ctx, dir, off)
}

// decodeReconyxUltraFire decodes a Reconyx UltraFire makernote. UltraFire
// integers are big-endian on the wire regardless of the parent TIFF's byte
// order and must be read through a byte-order override (spec.md §4.8).
func decodeReconyxUltraFire(ctx *tiffcore.Context, dir *directory.Directory, off uint32) {
    be := ctx.WithByteOrder(binary.BigEndian)
    r := be.Reader

    if s, err := r.NullTerminated(off, 9); err == nil {
        dir.Set(tagReconyxSerialNumber, directory.NewString(string(s)))
    }

    makernoteID, err1 := r.Uint16(off + 9)
    publicID, err2 := r.Uint16(off + 11)
    if err1 != nil || err2 != nil {
        dir.AddError(ifderr.Newf(ifderr.VendorBadHeader, "UltraFire makernote truncated before ID fields"))
        return
    }
    if makernoteID != ultraFireMakernoteID || publicID != ultraFirePublicID {
        dir.AddError(ifderr.Newf(ifderr.VendorBadHeader, "UltraFire makernote ID mismatch: got %#04x/%#04x", makernoteID, publicID))
        return
    }

    if v, err := r.Uint16(off + 13); err == nil {
        dir.Set(tagReconyxMakerNoteVersion, directory.NewUint16(v))
    }
    sec, secErr := r.Uint16(off + 15)
    min, minErr := r.Uint16(off + 17)
    hour, hourErr := r.Uint16(off + 19)
    day, dayErr := r.Uint16(off + 21)
    month, monthErr := r.Uint16(off + 23)
    year, yearErr := r.Uint16(off + 25)
    if secErr == nil && minErr == nil && hourErr == nil && dayErr == nil && monthErr == nil && yearErr == nil {
        if dt, ok := validateReconyxDateTime(int(year), int(month), int(day), int(hour), int(min), int(sec)); ok {
            dir.Set(tagReconyxDateTime, directory.NewDateTime(dt))
        } else {
            dir.AddError(ifderr.Newf(ifderr.VendorBadDatetime, "invalid UltraFire date/time fields"))
        }
    }
}

// validateReconyxDateTime applies the range checks from spec.md §4.8:
// sec<60, min<60, hour<24, 1<=month<=12, 1<=day<=31, year plausible.
func validateReconyxDateTime(year, month, day, hour, min, sec int) (directory.DateTime, bool) {
    if sec < 0 || sec >= 60 || min < 0 || min >= 60 || hour < 0 || hour >= 24 ||
        month < 1 || month > 12 || day < 1 || day > 31 || year < 1990 || year > 2100 {
        return directory.DateTime{}, false
    }
    return directory.DateTime{Year: year, Month: month, Day: day, Hour: hour, Minute: min, Second: sec}, true
}
