// Package ifderr defines the closed set of error kinds the TIFF/EXIF core
// records against a directory or returns from a byte read.
package ifderr

import "fmt"

// Kind is a closed set of error categories produced while walking a TIFF/
// EXIF document. Errors detected while decoding a specific tag or vendor
// block are recorded on the directory and processing continues with the
// next entry; errors from the byte reader propagate until the enclosing IFD
// walk catches them.
type Kind int

const (
    IOTruncated       Kind = iota // read past the end of the supplied data
    IOInvalidOffset               // offset outside the addressable range
    TIFFBadMarker                 // byte-order mark ok, but the 16-bit marker is unrecognised
    TIFFBadByteOrder              // neither "II" nor "MM"
    TIFFCycle                     // an IFD offset was visited twice
    TIFFUnknownFormat             // tag format code not in the standard table and not claimed by the handler
    VendorBadHeader               // makernote/vendor header bytes don't match the expected signature
    VendorBadSize                 // vendor block declares a size inconsistent with its byte count
    VendorBadDatetime             // vendor-specific date/time fields fail validation
    VendorUnsupported             // recognised vendor layout the decoder declines to interpret further
)

var kindNames = [...]string{
    "io-truncated",
    "io-invalid-offset",
    "tiff-bad-marker",
    "tiff-bad-byte-order",
    "tiff-cycle",
    "tiff-unknown-format",
    "vendor-bad-header",
    "vendor-bad-size",
    "vendor-bad-datetime",
    "vendor-unsupported",
}

func (k Kind) String() string {
    if int(k) < 0 || int(k) >= len(kindNames) {
        return fmt.Sprintf("ifderr.Kind(%d)", int(k))
    }
    return kindNames[k]
}

// Error is the concrete error type recorded on a directory or returned by a
// byte reader. Err, when set, is the underlying cause (e.g. an io error);
// Unwrap exposes it so callers can still errors.Is/As through it.
type Error struct {
    Kind Kind
    Msg  string
    Err  error
}

func New(kind Kind, msg string) *Error {
    return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
    return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, msg string) *Error {
    return &Error{Kind: kind, Msg: msg, Err: err}
}

func (e *Error) Error() string {
    if e.Err != nil {
        return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
    }
    return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
    return e.Err
}

// Is lets errors.Is match on Kind alone, the way callers typically care
// whether a tiff-cycle or io-truncated error occurred, not the exact message.
func (e *Error) Is(target error) bool {
    t, ok := target.(*Error)
    if !ok {
        return false
    }
    return t.Kind == e.Kind
}
