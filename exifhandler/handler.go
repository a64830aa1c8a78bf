// Package exifhandler implements tiffcore.Handler for EXIF/TIFF/Panasonic
// Raw/Olympus ORF documents (spec.md §4.4): marker dispatch, sub-IFD
// promotion, the follower-IFD chain, the nine-step custom-tag pipeline,
// and GeoTIFF unpacking. It builds on dirhandler.Base for the directory
// stack and delegates vendor makernote decoding to package makernote.
package exifhandler

import (
    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/dirhandler"
    "github.com/jrm-1535/tiffmeta/ifderr"
    "github.com/jrm-1535/tiffmeta/makernote"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

// printIMWhitelist is the small set of vendor directories in which tag
// 0x0E00 also triggers the PrintIM heuristic (spec.md §4.4 step 6),
// alongside the standard PrintImageMatchingInfo tag. The spec names a
// "small whitelist" without enumerating it; this set covers the makers
// most commonly documented to carry an 0x0E00 PrintIM pointer (see
// DESIGN.md).
var printIMWhitelist = map[directory.Kind]bool{
    directory.KindCanon:      true,
    directory.KindCasioType1: true,
    directory.KindCasioType2: true,
    directory.KindOlympus:    true,
}

// Handler is the stateful tiffcore.Handler for one top-level walk. The
// five external readers are optional; leave any nil to fall back to raw
// byte storage for the tags that would have triggered it.
type Handler struct {
    dirhandler.Base

    std        tiffcore.Standard
    cameraMake string

    IPTC      IPTCReader
    ICC       ICCReader
    Photoshop PhotoshopReader
    XMP       XMPReader
    JPEG      JPEGReader
}

// New creates a Handler with no external readers configured.
func New() *Handler {
    return &Handler{}
}

func (h *Handler) ProcessTIFFMarker(marker uint16) (tiffcore.Standard, directory.Kind, error) {
    switch marker {
    case 0x002A:
        h.std = tiffcore.StandardTIFF
        return tiffcore.StandardTIFF, directory.KindExifIFD0, nil
    case 0x002B:
        h.std = tiffcore.StandardBigTIFF
        return tiffcore.StandardBigTIFF, directory.KindExifIFD0, nil
    case 0x4F52, 0x5352: // Olympus ORF
        h.std = tiffcore.StandardTIFF
        return tiffcore.StandardTIFF, directory.KindExifIFD0, nil
    case 0x0055: // Panasonic Raw
        h.std = tiffcore.StandardTIFF
        return tiffcore.StandardTIFF, directory.KindPanasonicRawIFD0, nil
    }
    return tiffcore.StandardTIFF, directory.KindUnknown,
        ifderr.Newf(ifderr.TIFFBadMarker, "unrecognised TIFF marker %#04x", marker)
}

func (h *Handler) TryEnterSubIFD(tag uint16) (directory.Kind, bool) {
    cur := h.Current()
    if cur == nil {
        return directory.KindUnknown, false
    }
    if tag == tagSubIFDOffset {
        return directory.KindExifSubIFD, true
    }
    switch cur.Kind() {
    case directory.KindExifIFD0, directory.KindPanasonicRawIFD0:
        switch tag {
        case tagExifSubIFDOffset:
            return directory.KindExifSubIFD, true
        case tagGpsInfoOffset:
            return directory.KindGPS, true
        }
    case directory.KindExifSubIFD:
        if tag == tagInteropOffset {
            return directory.KindInterop, true
        }
    case directory.KindOlympus:
        if kind, ok := olympusSubKind(tag); ok {
            return kind, true
        }
    }
    return directory.KindUnknown, false
}

// olympusSubKind maps the seven Olympus sub-IFD promotion tags to their
// named directory kinds (spec.md §4.4). Both the sub-IFD promotion rule
// (§4.2/6, handled here via TryEnterSubIFD) and the custom-tag rule
// (§4.4 step 7) name the same seven tags; since tiffcore always offers a
// tag to TryEnterSubIFD before CustomProcessTag, resolving all seven here
// makes step 7's handling of them unreachable by construction. That is
// treated as intentional: the two call sites describe one promotion rule,
// not two (see DESIGN.md).
func olympusSubKind(tag uint16) (directory.Kind, bool) {
    switch tag {
    case tagOlympusEquipment:
        return directory.KindOlympusEquipment, true
    case tagOlympusCameraSettings:
        return directory.KindOlympusCameraSettings, true
    case tagOlympusRawDevelopment:
        return directory.KindOlympusRawDevelopment, true
    case tagOlympusRawDevelopment2:
        return directory.KindOlympusRawDevelopment2, true
    case tagOlympusImageProcessing:
        return directory.KindOlympusImageProcessing, true
    case tagOlympusFocusInfo:
        return directory.KindOlympusFocusInfo, true
    case tagOlympusRawInfo:
        return directory.KindOlympusRawInfo, true
    }
    return directory.KindUnknown, false
}

// NextFollowerKind always follows the chain: Thumbnail right after IFD0,
// Image for every subsequent follower (spec.md §4.4).
func (h *Handler) NextFollowerKind() (directory.Kind, bool) {
    cur := h.Current()
    if cur != nil && cur.Kind() == directory.KindExifIFD0 {
        return directory.KindThumbnail, true
    }
    return directory.KindImage, true
}

func (h *Handler) TryCustomProcessFormat(tag, format uint16, count uint32) (uint32, bool) {
    switch format {
    case 13: // vendor-specific 4-byte-per-component pointer type
        return 4 * count, true
    case 0: // entry preserved for later custom handling, no inline bytes
        return 0, true
    }
    return 0, false
}

func (h *Handler) CustomProcessTag(ctx *tiffcore.Context, tag, format uint16, valueOffset, byteCount uint32) (bool, error) {
    cur := h.Current()
    if cur == nil {
        return false, nil
    }
    kind := cur.Kind()

    // Capture the camera Make as soon as it is seen so a same-pass
    // recursion into EXIF SubIFD (and its MakerNote tag) can already see
    // it; TIFF entries are ascending by tag, and Make (0x10f) sorts before
    // ExifSubIFDOffset (0x8769), so this runs before that recursion in any
    // well-formed file (see DESIGN.md).
    if tag == tagMake && (kind == directory.KindExifIFD0 || kind == directory.KindPanasonicRawIFD0) {
        if s, err := ctx.Reader.String(valueOffset, byteCount, bytereader.UTF8); err == nil {
            h.cameraMake = trimMakeNUL(s)
        }
        return false, nil // let tiffcore also store it as a normal ASCII tag
    }

    // Step 1: makernote dispatch.
    if tag == tagMakerNote && kind == directory.KindExifSubIFD {
        return makernote.Dispatch(ctx, h, h.std, valueOffset, h.cameraMake), nil
    }

    // Step 2: IPTC.
    if tag == tagIptcNaa && kind == directory.KindExifIFD0 {
        if h.IPTC == nil {
            return false, nil
        }
        marker, err := ctx.Reader.Uint8(valueOffset)
        if err != nil || marker != 0x1C {
            return false, nil
        }
        return h.attachFromReader(ctx, cur, valueOffset, byteCount, h.IPTC.ReadIPTC, "IPTC")
    }

    // Step 3: ICC.
    if tag == tagInterColorProfile {
        if h.ICC == nil {
            return false, nil
        }
        return h.attachFromReader(ctx, cur, valueOffset, byteCount, h.ICC.ReadICC, "ICC")
    }

    // Step 4: Photoshop IRB.
    if tag == tagPhotoshopSettings && kind == directory.KindExifIFD0 {
        if h.Photoshop == nil {
            return false, nil
        }
        return h.attachFromReader(ctx, cur, valueOffset, byteCount, h.Photoshop.ReadPhotoshop, "Photoshop")
    }

    // Step 5: XMP, over null-terminated bytes.
    if tag == tagApplicationNotes && (kind == directory.KindExifIFD0 || kind == directory.KindExifSubIFD) {
        if h.XMP == nil {
            return false, nil
        }
        data, err := ctx.Reader.NullTerminated(valueOffset, byteCount)
        if err != nil {
            return false, ifderr.Wrap(ifderr.IOTruncated, err, "reading XMP block")
        }
        dirs, err := h.XMP.ReadXMP(data)
        if err != nil {
            return false, ifderr.Wrap(ifderr.VendorUnsupported, err, "XMP reader failed")
        }
        for _, d := range dirs {
            h.Attach(d, cur)
        }
        return true, nil
    }

    // Step 6: PrintIM heuristic.
    if tag == tagPrintImageMatching || (tag == tagPrintIMWhitelisted && printIMWhitelist[kind]) {
        printIM := makernote.DecodePrintIM(ctx, valueOffset, byteCount)
        h.Attach(printIM, cur)
        return true, nil
    }

    // Step 7 (Olympus's seven tags) is unreachable here; see
    // olympusSubKind's doc comment.

    // Step 8: Panasonic Raw fixed-stride binary blocks.
    if kind == directory.KindPanasonicRawIFD0 {
        switch tag {
        case tagPanasonicWbInfo:
            makernote.DecodePanasonicRawBlock(ctx, cur, valueOffset, byteCount, makernote.WbInfoBlock)
            return true, nil
        case tagPanasonicWbInfo2:
            makernote.DecodePanasonicRawBlock(ctx, cur, valueOffset, byteCount, makernote.WbInfo2Block)
            return true, nil
        case tagPanasonicDistortInfo:
            makernote.DecodePanasonicRawBlock(ctx, cur, valueOffset, byteCount, makernote.DistortionInfoBlock)
            return true, nil
        case tagPanasonicJpgFromRaw:
            if h.JPEG == nil {
                return false, nil
            }
            return h.attachFromReader(ctx, cur, valueOffset, byteCount, h.JPEG.ReadJPEG, "embedded JpgFromRaw")
        }
    }

    return false, nil
}

// attachFromReader slices [valueOffset, valueOffset+byteCount), invokes
// read, and attaches every resulting directory to parent, matching the
// general external-reader contract from spec.md §6.
func (h *Handler) attachFromReader(ctx *tiffcore.Context, parent *directory.Directory, valueOffset, byteCount uint32, read func([]byte) ([]*directory.Directory, error), label string) (bool, error) {
    data, err := ctx.Reader.Bytes(valueOffset, byteCount)
    if err != nil {
        return false, ifderr.Wrap(ifderr.IOTruncated, err, "reading "+label+" block")
    }
    dirs, err := read(data)
    if err != nil {
        return false, ifderr.Wrap(ifderr.VendorUnsupported, err, label+" reader failed")
    }
    for _, d := range dirs {
        h.Attach(d, parent)
    }
    return true, nil
}

// EndingIFD re-reads the camera Make from the finished directory if the
// early capture in CustomProcessTag left it empty, and runs
// GeoTIFF unpacking once EXIF IFD0 is fully read (spec.md §4.4).
func (h *Handler) EndingIFD(ctx *tiffcore.Context, dir *directory.Directory) error {
    if dir.Kind() != directory.KindExifIFD0 && dir.Kind() != directory.KindPanasonicRawIFD0 {
        return nil
    }
    if h.cameraMake == "" {
        if v, ok := dir.Get(tagMake); ok {
            if s, isStr := v.String(); isStr {
                h.cameraMake = s
            }
        }
    }
    if dir.Kind() != directory.KindExifIFD0 {
        return nil
    }
    if v, ok := dir.Get(tagGeoTiffGeoKeys); ok {
        if arr, isArr := v.Uint16Array(); isArr {
            geo := unpackGeoTIFF(dir, arr)
            h.Attach(geo, dir)
        }
    }
    return nil
}

func trimMakeNUL(s string) string {
    for i, c := range s {
        if c == 0 {
            return s[:i]
        }
    }
    return s
}
