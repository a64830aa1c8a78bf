// Package tiffmeta extracts the TIFF/EXIF tag tree from a positioned
// random-access buffer: byte order mark, marker, IFD0, its follower chain,
// and every sub-directory and vendor makernote reachable from it (see
// SPEC_FULL.md). Parse is the sole entry point; everything else is
// package-level configuration or the external-reader hooks exifhandler
// exposes for IPTC/ICC/Photoshop/XMP/embedded-JPEG collaborators.
package tiffmeta

import (
    "encoding/binary"

    log "github.com/dsoprea/go-logging"
    "github.com/pkg/errors"

    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/exifhandler"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

var parseLogger = log.NewLogger("tiffmeta.parse")

// Options configures Parse. The zero value has every setting off and no
// external readers.
type Options struct {
    maxDirectoryDepth int
    strictUnknownTags bool
    warnings          bool

    iptc      exifhandler.IPTCReader
    icc       exifhandler.ICCReader
    photoshop exifhandler.PhotoshopReader
    xmp       exifhandler.XMPReader
    jpeg      exifhandler.JPEGReader
}

// Option configures an Options value; see the With* functions below.
type Option func(*Options)

// WithMaxDirectoryDepth stores a maximum sub-IFD depth in Options. Parse
// does not read it: the walk's recursion depth is not capped.
func WithMaxDirectoryDepth(depth int) Option {
    return func(o *Options) { o.maxDirectoryDepth = depth }
}

// WithStrictUnknownTags stores a strictness flag in Options. Parse does not
// read it: an entry whose format code is neither in the standard table nor
// claimed by the handler is always skipped with a tiff-unknown-format error
// on its directory, whatever the flag.
func WithStrictUnknownTags(strict bool) Option {
    return func(o *Options) { o.strictUnknownTags = strict }
}

// WithWarnings, when enabled, makes Parse log every error recorded on the
// returned directories at debug level through the package logger. It does
// not change what is recorded on the directories.
func WithWarnings(warn bool) Option {
    return func(o *Options) { o.warnings = warn }
}

// WithIPTCReader, WithICCReader, WithPhotoshopReader, WithXMPReader and
// WithJPEGReader wire the five external-format collaborators spec.md §6
// calls out of scope for the core. Leaving any unset means the tag that
// would have triggered it falls through to raw byte storage.
func WithIPTCReader(r exifhandler.IPTCReader) Option {
    return func(o *Options) { o.iptc = r }
}

func WithICCReader(r exifhandler.ICCReader) Option {
    return func(o *Options) { o.icc = r }
}

func WithPhotoshopReader(r exifhandler.PhotoshopReader) Option {
    return func(o *Options) { o.photoshop = r }
}

func WithXMPReader(r exifhandler.XMPReader) Option {
    return func(o *Options) { o.xmp = r }
}

func WithJPEGReader(r exifhandler.JPEGReader) Option {
    return func(o *Options) { o.jpeg = r }
}

// Parse walks data as a TIFF/EXIF document starting at offset 0 (for
// embedded EXIF inside a JPEG APP1 segment, the caller slices data to
// start right after the "Exif\0\0" signature) and returns the full list of
// directories in push order, per spec.md §6's output contract.
//
// Parse itself never returns a non-nil error: a catastrophic failure (bad
// byte-order mark, unrecognised marker) yields a single error-bearing
// directory instead, per spec.md §7's "the walk always completes"
// contract. The error return exists so a future caller-side failure mode
// (e.g. a depth-cap violation surfaced before any directory exists) has
// somewhere to go without an API break.
func Parse(data []byte, opts ...Option) ([]*directory.Directory, error) {
    o := &Options{}
    for _, opt := range opts {
        opt(o)
    }

    h := exifhandler.New()
    h.IPTC = o.iptc
    h.ICC = o.icc
    h.Photoshop = o.photoshop
    h.XMP = o.xmp
    h.JPEG = o.jpeg

    r := bytereader.New(data, binary.LittleEndian) // overwritten by Walk once the byte-order mark is read
    if err := tiffcore.Walk(r, h); err != nil {
        wrapped := errors.Wrap(err, "tiffmeta: top-level TIFF walk failed")
        parseLogger.Warningf(nil, "%s", wrapped)

        fallback := directory.New(directory.KindUnknown)
        fallback.AddError(err)
        return []*directory.Directory{fallback}, nil
    }

    dirs := h.Directories()
    if o.warnings {
        for _, d := range dirs {
            for _, e := range d.Errors() {
                parseLogger.Debugf(nil, "%s: %s", d.Kind(), e)
            }
        }
    }
    return dirs, nil
}
