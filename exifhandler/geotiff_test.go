package exifhandler

import (
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/directory"
)

// TestUnpackGeoTIFFMatchesSpecScenario reproduces spec.md §8 scenario 5:
// GeoKeys [1,1,0,2, 1024,0,1,2, 3072,34737,5,4] with tag 34737 holding
// string "abc|de|fgh|" should yield key 1024=2 and key 3072="de|fg", and
// should remove tags 34737 and 34735 (the GeoKeys tag itself) from IFD0.
func TestUnpackGeoTIFFMatchesSpecScenario(t *testing.T) {
    ifd0 := directory.New(directory.KindExifIFD0)
    ifd0.Set(tagGeoTiffAsciiParams, directory.NewString("abc|de|fgh|"))
    geoKeys := []uint16{1, 1, 0, 2, 1024, 0, 1, 2, 3072, 34737, 5, 4}
    ifd0.Set(tagGeoTiffGeoKeys, directory.NewUint16s(geoKeys))

    geo := unpackGeoTIFF(ifd0, geoKeys)

    v, ok := geo.Get(1024)
    require.True(t, ok)
    u, ok := v.Uint32()
    require.True(t, ok)
    require.Equal(t, uint32(2), u)

    v, ok = geo.Get(3072)
    require.True(t, ok)
    s, ok := v.String()
    require.True(t, ok)
    require.Equal(t, "de|fg", s)

    require.Empty(t, geo.Errors())

    _, hasAscii := ifd0.Get(tagGeoTiffAsciiParams)
    require.False(t, hasAscii)
    _, hasGeoKeys := ifd0.Get(tagGeoTiffGeoKeys)
    require.False(t, hasGeoKeys)
}

func TestUnpackGeoTIFFRecordsErrorOnTruncatedHeader(t *testing.T) {
    ifd0 := directory.New(directory.KindExifIFD0)
    geo := unpackGeoTIFF(ifd0, []uint16{1, 1, 0})
    require.NotEmpty(t, geo.Errors())
}

func TestUnpackGeoTIFFInlineValueNeedsNoSourceLookup(t *testing.T) {
    ifd0 := directory.New(directory.KindExifIFD0)
    geoKeys := []uint16{1, 1, 0, 1, 42, 0, 1, 7}
    geo := unpackGeoTIFF(ifd0, geoKeys)

    v, ok := geo.Get(42)
    require.True(t, ok)
    u, ok := v.Uint32()
    require.True(t, ok)
    require.Equal(t, uint32(7), u)
    require.Empty(t, geo.Errors())
}
