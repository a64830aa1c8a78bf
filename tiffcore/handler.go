package tiffcore

import "github.com/jrm-1535/tiffmeta/directory"

// Standard distinguishes the on-disk IFD entry shape: standard 4-byte
// offsets/12-byte entries versus BigTIFF's 8-byte offsets/20-byte entries.
type Standard int

const (
    StandardTIFF Standard = iota
    StandardBigTIFF
)

// EntrySize reports the on-disk size of one IFD entry for this standard.
func (s Standard) EntrySize() uint32 {
    if s == StandardBigTIFF {
        return 20
    }
    return 12
}

// CountSize reports the on-disk size of an IFD's leading entry count.
func (s Standard) CountSize() uint32 {
    if s == StandardBigTIFF {
        return 8
    }
    return 2
}

// OffsetSize reports the on-disk size of an IFD offset (inline value size
// threshold, next-IFD pointer size).
func (s Standard) OffsetSize() uint32 {
	if s == StandardBigTIFF {
		return 8
	}
	return 4
}

// Handler is the abstract contract the TIFF reader calls back into while
// walking IFDs (spec.md §4.3). Implementations are stateful; Walk holds no
// per-handler state beyond the Context it threads through. All tag-ID,
// format and byte-count interpretation beyond the standard TIFF type table
// is delegated here so tiffcore itself stays EXIF/vendor agnostic.
type Handler interface {
    // ProcessTIFFMarker recognises the 16-bit marker following the byte
    // order mark and reports which on-disk standard it implies, together
    // with the Kind of the root directory the walker should push for IFD0
    // (spec.md §4.4's marker table: standard EXIF, BigTIFF, Olympus ORF,
    // Panasonic Raw all share the walk but differ in root Kind/Standard).
    ProcessTIFFMarker(marker uint16) (std Standard, rootKind directory.Kind, err error)

    // TryEnterSubIFD reports whether tag points at a nested IFD that should
    // be walked recursively right now, and if so which Kind the pushed
    // directory should carry (ExifSubIFD, GPS, Interop, the Olympus
    // sub-directories...). The walker itself pushes/pops; the handler only
    // classifies.
    TryEnterSubIFD(tag uint16) (kind directory.Kind, enter bool)

    // NextFollowerKind is asked once an IFD's chain offset has been read.
    // ok reports whether the walker should follow it at all (IFD0 always
    // does; embedded sub-IFDs never reach here); kind is the directory Kind
    // for the IFD about to be walked (Thumbnail after IFD0, Image for any
    // IFD beyond that).
    NextFollowerKind() (kind directory.Kind, ok bool)

    // CustomProcessTag gives the handler first refusal on an entry once its
    // value offset and byte count are known. handled reports whether the
    // handler fully consumed the entry (makernotes, IPTC/ICC/XMP/Photoshop
    // hand-off, PrintIM blocks, Panasonic Raw binary blocks...); if
    // false, tiffcore decodes and stores the value itself per the standard
    // format table.
    CustomProcessTag(ctx *Context, tag, format uint16, valueOffset, byteCount uint32) (handled bool, err error)

    // TryCustomProcessFormat lets the handler override the standard
    // format-code -> per-component-byte-count table (format 13 is a
    // vendor-specific 4-byte-per-component pointer type). ok is false to
    // fall back to the standard table.
    TryCustomProcessFormat(tag, format uint16, count uint32) (byteCount uint32, ok bool)

    // EndingIFD runs once all of an IFD's entries have been processed,
    // before any follower IFD is read (GeoTIFF unpacking hooks in here).
    EndingIFD(ctx *Context, dir *directory.Directory) error

    // PushDirectory creates and pushes a new directory of the given kind,
    // making it the current directory for subsequent stores, and returns it
    // so the caller can attach tags via non-Handler means if needed
    // (vendor decoders populate the returned directory directly).
    PushDirectory(kind directory.Kind) *directory.Directory

    // PopDirectory pops the current directory, restoring whatever was
    // pushed before it.
    PopDirectory()

    // Error records err against whichever directory is current without
    // aborting the walk.
    Error(err error)
}
