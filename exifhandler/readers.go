package exifhandler

import "github.com/jrm-1535/tiffmeta/directory"

// The five external format readers spec.md §6 calls out of scope: each
// takes raw bytes already sliced to the relevant block and returns zero or
// more directories, which the handler attaches with parent set to whatever
// directory's tag triggered the call. All five are optional — a nil
// reader simply means the triggering tag falls through to tiffcore's
// standard raw-value storage instead of being consumed here.
type (
    IPTCReader interface {
        ReadIPTC(data []byte) ([]*directory.Directory, error)
    }
    ICCReader interface {
        ReadICC(data []byte) ([]*directory.Directory, error)
    }
    PhotoshopReader interface {
        ReadPhotoshop(data []byte) ([]*directory.Directory, error)
    }
    XMPReader interface {
        ReadXMP(data []byte) ([]*directory.Directory, error)
    }
    JPEGReader interface {
        ReadJPEG(data []byte) ([]*directory.Directory, error)
    }
)
