package tiffmeta

import (
    "encoding/binary"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/directory"
)

func minimalTIFF(marker uint16) []byte {
    data := make([]byte, 8)
    data[0], data[1] = 'I', 'I'
    binary.LittleEndian.PutUint16(data[2:], marker)
    binary.LittleEndian.PutUint32(data[4:], 8)
    data = append(data, 0, 0)       // zero entry count
    data = append(data, 0, 0, 0, 0) // zero next-IFD pointer
    return data
}

// TestMinimalTIFFProducesOneEmptyDirectory reproduces spec.md §8 scenario 1.
func TestMinimalTIFFProducesOneEmptyDirectory(t *testing.T) {
    dirs, err := Parse(minimalTIFF(0x002A))
    require.NoError(t, err)
    require.Len(t, dirs, 1)
    require.Equal(t, directory.KindExifIFD0, dirs[0].Kind())
    require.Equal(t, 0, dirs[0].Len())
    require.Empty(t, dirs[0].Errors())
}

// TestBadByteOrderMarkYieldsSingleErrorDirectory exercises the "walk always
// completes" contract of spec.md §7: a catastrophic pre-handler failure
// never surfaces as a Go error, it surfaces as a single error-bearing
// directory instead.
func TestBadByteOrderMarkYieldsSingleErrorDirectory(t *testing.T) {
    data := []byte{'X', 'X', 0x2A, 0x00, 8, 0, 0, 0}
    dirs, err := Parse(data)
    require.NoError(t, err)
    require.Len(t, dirs, 1)
    require.Equal(t, directory.KindUnknown, dirs[0].Kind())
    require.NotEmpty(t, dirs[0].Errors())
}

// TestUnrecognisedMarkerYieldsSingleErrorDirectory covers the same
// fallback contract for a marker tiffcore/exifhandler don't recognise.
func TestUnrecognisedMarkerYieldsSingleErrorDirectory(t *testing.T) {
    dirs, err := Parse(minimalTIFF(0x9999))
    require.NoError(t, err)
    require.Len(t, dirs, 1)
    require.Equal(t, directory.KindUnknown, dirs[0].Kind())
    require.NotEmpty(t, dirs[0].Errors())
}

// TestOptionsAreAccepted checks that Parse accepts the With* options
// without error and still returns the single IFD0 directory.
func TestOptionsAreAccepted(t *testing.T) {
    dirs, err := Parse(minimalTIFF(0x002A),
        WithMaxDirectoryDepth(4),
        WithStrictUnknownTags(true),
        WithWarnings(true),
    )
    require.NoError(t, err)
    require.Len(t, dirs, 1)
}
