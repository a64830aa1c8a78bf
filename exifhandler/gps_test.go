package exifhandler

import (
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/directory"
)

// TestGeoLocationMatchesSpecScenario reproduces spec.md §8 scenario 2:
// latitude (51,1)(30,1)(0,1) with ref "N" is approximately 51.5 degrees.
func TestGeoLocationMatchesSpecScenario(t *testing.T) {
    gps := directory.New(directory.KindGPS)
    gps.Set(tagGPSLatitudeRef, directory.NewString("N"))
    gps.Set(tagGPSLatitude, directory.NewURationals([]directory.URational{
        {Num: 51, Den: 1}, {Num: 30, Den: 1}, {Num: 0, Den: 1},
    }))
    gps.Set(tagGPSLongitudeRef, directory.NewString("W"))
    gps.Set(tagGPSLongitude, directory.NewURationals([]directory.URational{
        {Num: 1, Den: 1}, {Num: 0, Den: 1}, {Num: 0, Den: 1},
    }))

    lat, lon, ok := GeoLocation(gps)
    require.True(t, ok)
    require.InDelta(t, 51.5, lat, 0.001)
    require.InDelta(t, -1.0, lon, 0.001)
}

func TestGeoLocationFalseForNonGPSDirectory(t *testing.T) {
    dir := directory.New(directory.KindExifIFD0)
    _, _, ok := GeoLocation(dir)
    require.False(t, ok)
}

func TestGeoLocationFalseWhenLatitudeMissing(t *testing.T) {
    gps := directory.New(directory.KindGPS)
    _, _, ok := GeoLocation(gps)
    require.False(t, ok)
}
