// Package makernote implements the vendor makernote recogniser table and
// decoders (spec.md §4.5-§4.8). The dispatcher is handed the reader
// context positioned at the makernote's absolute offset plus the camera
// Make string from EXIF IFD0 (if any), and either walks the makernote as a
// nested IFD or runs a fixed-layout binary decoder, according to whichever
// recognizer entry matches first.
package makernote

import (
    "encoding/binary"

    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

// order overrides the context's byte order for the duration of one
// makernote decode; orderNone leaves the parent's order untouched.
type order int

const (
    orderNone order = iota
    orderLittle
    orderBig
)

// entry is one row of the recogniser table: match decides whether this
// vendor applies given the 12-byte probe and camera Make string; apply
// performs the IFD push-and-walk or runs a binary decoder. Grounded on the
// teacher's own sequential if/else vendor dispatch in nikon.go/apple.go,
// generalised into the "recogniser table is data" shape spec.md §9
// prescribes.
type entry struct {
    name  string
    match func(probe []byte, make string) bool
    apply func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, makernoteOffset uint32, probe []byte)
}

func hasPrefix(b []byte, s string) bool {
    return len(b) >= len(s) && string(b[:len(s)]) == s
}

func startsWith(s, prefix string) bool {
    return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// pushAndWalkIFD pushes a directory of kind and walks it as a nested
// classic-TIFF IFD at absOffset, optionally overriding the byte order
// and/or shifting the context's base to baseAbs first (0 means no shift).
// Embedded makernote IFDs are always classic 12-byte-entry TIFF, never
// BigTIFF, regardless of the outer file's Standard.
func pushAndWalkIFD(ctx *tiffcore.Context, h tiffcore.Handler, kind directory.Kind, absOffset uint32, ord order, baseAbs uint32, hasBaseShift bool) {
    derived := ctx
    switch ord {
    case orderLittle:
        derived = derived.WithByteOrder(binary.LittleEndian)
    case orderBig:
        derived = derived.WithByteOrder(binary.BigEndian)
    }
    offset := absOffset
    if hasBaseShift {
        derived = derived.WithBaseOffset(baseAbs)
        offset = absOffset - baseAbs
    }
    dir := h.PushDirectory(kind)
    tiffcore.WalkEmbeddedIFD(derived, h, tiffcore.StandardTIFF, offset, dir)
    h.PopDirectory()
}

func pushAndDecodeBinary(h tiffcore.Handler, kind directory.Kind, decode func(dir *directory.Directory)) {
    dir := h.PushDirectory(kind)
    decode(dir)
    h.PopDirectory()
}

var table []entry

func init() {
    table = []entry{
        {
            name: "Olympus (OLYMP/EPSON/AGFA)",
            match: func(probe []byte, make string) bool {
                return hasPrefix(probe, "OLYMP\x00") || hasPrefix(probe, "EPSON") || hasPrefix(probe, "AGFA")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindOlympus, off+8, orderNone, 0, false)
            },
        },
        {
            name: "Olympus (OLYMPUS\\0II)",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "OLYMPUS\x00II") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindOlympus, off+12, orderNone, off, true)
            },
        },
        {
            name: "Olympus (Minolta make)",
            match: func(probe []byte, make string) bool { return startsWith(make, "MINOLTA") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindOlympus, off, orderNone, 0, false)
            },
        },
        {
            name: "Nikon Type1",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "NIKON") && hasPrefix(probe, "Nikon") && len(probe) > 6 && probe[6] == 1
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindNikonType1, off+8, orderNone, 0, false)
            },
        },
        {
            name: "Nikon Type2 (versioned probe)",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "NIKON") && hasPrefix(probe, "Nikon") && len(probe) > 6 && probe[6] == 2
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindNikonType2, off+18, orderNone, off+10, true)
            },
        },
        {
            name: "Nikon Type2 (no version probe)",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "NIKON") && !hasPrefix(probe, "Nikon")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindNikonType2, off, orderNone, 0, false)
            },
        },
        {
            name: "Sony Type1 (CAM/DSC probe)",
            match: func(probe []byte, make string) bool {
                return hasPrefix(probe, "SONY CAM") || hasPrefix(probe, "SONY DSC")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindSonyType1, off+12, orderNone, 0, false)
            },
        },
        {
            name: "Sony Type1 (no header)",
            match: func(probe []byte, make string) bool {
                if !startsWith(make, "SONY") {
                    return false
                }
                return !(len(probe) >= 2 && probe[0] == 0x01 && probe[1] == 0x00)
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindSonyType1, off, orderNone, 0, false)
            },
        },
        {
            name: "Sony Type6",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "SEMC MS\x00\x00\x00\x00\x00") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindSonyType6, off+20, orderBig, 0, false)
            },
        },
        {
            name: "Sigma/Foveon",
            match: func(probe []byte, make string) bool {
                return hasPrefix(probe, "SIGMA\x00\x00\x00") || hasPrefix(probe, "FOVEON\x00\x00")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindSigma, off+10, orderNone, 0, false)
            },
        },
        {
            name: "Kodak",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "KDK") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                ord := orderNone
                if hasPrefix(probe, "KDK INFO") {
                    ord = orderBig
                }
                decodeCtx := ctx
                if ord == orderBig {
                    decodeCtx = ctx.WithByteOrder(binary.BigEndian)
                }
                pushAndDecodeBinary(h, directory.KindKodak, func(dir *directory.Directory) {
                    decodeKodak(decodeCtx, dir, off+8)
                })
            },
        },
        {
            name: "Canon",
            match: func(probe []byte, make string) bool { return make == "Canon" },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindCanon, off, orderNone, 0, false)
            },
        },
        {
            name: "Casio Type2 (QVC probe)",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "CASIO") && hasPrefix(probe, "QVC\x00\x00\x00")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindCasioType2, off+6, orderNone, 0, false)
            },
        },
        {
            name: "Casio Type1",
            match: func(probe []byte, make string) bool { return startsWith(make, "CASIO") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindCasioType1, off, orderNone, 0, false)
            },
        },
        {
            name: "Fujifilm",
            match: func(probe []byte, make string) bool {
                return hasPrefix(probe, "FUJIFILM") || make == "FUJIFILM"
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                little := ctx.WithByteOrder(binary.LittleEndian)
                rel, err := little.Reader.Int32(off + 8)
                if err != nil {
                    return
                }
                pushAndWalkIFD(little, h, directory.KindFujifilm, off+uint32(rel), orderLittle, off, true)
            },
        },
        {
            name: "Kyocera",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "KYOCERA") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindKyocera, off+22, orderNone, 0, false)
            },
        },
        {
            name: "Leica Type5",
            match: func(probe []byte, make string) bool {
                if !hasPrefix(probe, "LEICA\x00") || len(probe) < 8 {
                    return false
                }
                switch probe[6] {
                case 1, 4, 5, 6, 7:
                    return probe[7] == 0
                }
                return false
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindLeicaType5, off+8, orderNone, off, true)
            },
        },
        {
            name: "Leica Camera AG",
            match: func(probe []byte, make string) bool { return make == "Leica Camera AG" },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindLeica, off+8, orderLittle, 0, false)
            },
        },
        {
            name: "Panasonic (Leica make)",
            match: func(probe []byte, make string) bool { return make == "LEICA" },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindPanasonic, off+8, orderLittle, 0, false)
            },
        },
        {
            name: "Panasonic",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "Panasonic\x00\x00\x00") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindPanasonic, off+12, orderNone, 0, false)
            },
        },
        {
            name: "CasioType2 (AOC probe)",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "AOC\x00") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindCasioType2, off+6, orderNone, off, true)
            },
        },
        {
            name: "Pentax/Asahi",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "PENTAX") || startsWith(make, "ASAHI")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindPentax, off, orderNone, off, true)
            },
        },
        {
            name: "Sanyo",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "SANYO\x00\x01\x00") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindSanyo, off+8, orderNone, off, true)
            },
        },
        {
            name: "Ricoh (textual, ignored)",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "RICOH") && (hasPrefix(probe, "Rv") || hasPrefix(probe, "Rev"))
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                // Textual Ricoh makernotes carry nothing IFD-shaped; the
                // recogniser matches them only so they are not mistakenly
                // retried against later rules, per spec.md §4.5.
            },
        },
        {
            name: "Ricoh",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "RICOH") && hasPrefix(probe, "RICOH")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindRicoh, off+8, orderBig, off, true)
            },
        },
        {
            name: "Pentax Type2 (via Ricoh)",
            match: func(probe []byte, make string) bool {
                return startsWith(make, "RICOH") && hasPrefix(probe, "PENTAX \x00II")
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindPentaxType2, off+10, orderLittle, off, true)
            },
        },
        {
            name: "Apple",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "Apple iOS\x00") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindApple, off+14, orderBig, off, true)
            },
        },
        {
            name: "Reconyx HyperFire",
            match: func(probe []byte, make string) bool {
                return len(probe) >= 2 && binary.LittleEndian.Uint16(probe) == reconyxHyperFireVersion
            },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndDecodeBinary(h, directory.KindReconyxHyperFire, func(dir *directory.Directory) {
                    decodeReconyxHyperFire(ctx, dir, off)
                })
            },
        },
        {
            name: "Reconyx UltraFire",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "RECONYXUF") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndDecodeBinary(h, directory.KindReconyxUltraFire, func(dir *directory.Directory) {
                    decodeReconyxUltraFire(ctx, dir, off)
                })
            },
        },
        {
            name: "Reconyx HyperFire2",
            match: func(probe []byte, make string) bool { return hasPrefix(probe, "RECONYXH2") },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndDecodeBinary(h, directory.KindReconyxHyperFire2, func(dir *directory.Directory) {
                    decodeReconyxHyperFire2(ctx, dir, off)
                })
            },
        },
        {
            name: "Samsung Type2",
            match: func(probe []byte, make string) bool { return make == "SAMSUNG" },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindSamsungType2, off, orderNone, 0, false)
            },
        },
        {
            name: "DJI",
            match: func(probe []byte, make string) bool { return make == "DJI" },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindDJI, off, orderNone, 0, false)
            },
        },
        {
            name: "FLIR",
            match: func(probe []byte, make string) bool { return make == "FLIR Systems" },
            apply: func(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, off uint32, probe []byte) {
                pushAndWalkIFD(ctx, h, directory.KindFLIR, off, orderNone, 0, false)
            },
        },
    }
}

// Dispatch probes the makernote at makernoteOffset and, if a recogniser
// matches, pushes and populates the appropriate vendor directory. It
// reports whether any recogniser matched; an unmatched makernote is not an
// error (spec.md §7) — the caller falls back to storing the tag's raw
// bytes.
func Dispatch(ctx *tiffcore.Context, h tiffcore.Handler, std tiffcore.Standard, makernoteOffset uint32, cameraMake string) bool {
    const probeLen = 12
    avail := ctx.Reader.Len()
    if avail > makernoteOffset {
        avail -= makernoteOffset
    } else {
        avail = 0
    }
    n := uint32(probeLen)
    if avail < n {
        n = avail
    }
    probe, err := ctx.Reader.Bytes(makernoteOffset, n)
    if err != nil {
        probe = nil
    }

    for _, e := range table {
        if e.match(probe, cameraMake) {
            e.apply(ctx, h, std, makernoteOffset, probe)
            return true
        }
    }
    return false
}
