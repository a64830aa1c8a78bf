package exifhandler

import (
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
)

// unpackGeoTIFF implements spec.md §4.4's GeoTIFF unpacking: ifd0 is the
// directory that just finished and carries TagGeoTiffGeoKeys as a u16
// array. It consumes the GeoKeyDirectory and any IFD0 tags the directory
// entries point at, removes the consumed tags from ifd0, and returns the
// resulting GeoTIFF directory ready to be attached with parent = ifd0.
func unpackGeoTIFF(ifd0 *directory.Directory, geoKeys []uint16) *directory.Directory {
    geo := directory.New(directory.KindGeoTIFF)

    if len(geoKeys) < 4 {
        geo.AddError(ifderr.Newf(ifderr.VendorBadSize, "GeoTIFF key directory header truncated: %d entries", len(geoKeys)))
        return geo
    }

    numKeys := int(geoKeys[3])
    consumed := map[uint16]bool{}

    entriesAvailable := (len(geoKeys) - 4) / 4
    if numKeys > entriesAvailable {
        geo.AddError(ifderr.Newf(ifderr.VendorBadSize, "GeoTIFF declares %d keys but only %d present", numKeys, entriesAvailable))
        numKeys = entriesAvailable
    }

    for i := 0; i < numKeys; i++ {
        base := 4 + i*4
        keyID := geoKeys[base]
        tiffTagLocation := geoKeys[base+1]
        valueCount := geoKeys[base+2]
        valueOffset := geoKeys[base+3]

        if tiffTagLocation == 0 {
            geo.Set(keyID, directory.NewUint16(valueOffset))
            continue
        }

        srcVal, ok := ifd0.Get(tiffTagLocation)
        if !ok {
            geo.AddError(ifderr.Newf(ifderr.VendorBadHeader, "GeoTIFF key %d references missing IFD0 tag %#04x", keyID, tiffTagLocation))
            continue
        }

        if s, isString := srcVal.String(); isString {
            // Strings use a non-strict (<=) extent check, preserved as an
            // intentional asymmetry with the array case below (spec.md §9
            // Open Questions: do not guess intent).
            if uint32(valueOffset)+uint32(valueCount) > uint32(len(s)) {
                geo.AddError(ifderr.Newf(ifderr.IOInvalidOffset, "GeoTIFF key %d string slice [%d:%d) exceeds source of length %d", keyID, valueOffset, uint32(valueOffset)+uint32(valueCount), len(s)))
                continue
            }
            slice := s[valueOffset : uint32(valueOffset)+uint32(valueCount)]
            slice = trimTrailingPipe(slice)
            geo.Set(keyID, directory.NewString(slice))
            consumed[tiffTagLocation] = true
            continue
        }

        if arr, isArray := srcVal.Uint16Array(); isArray {
            // Arrays use a strict (<) extent check, per the same preserved
            // asymmetry.
            if uint32(valueOffset)+uint32(valueCount) >= uint32(len(arr)) {
                geo.AddError(ifderr.Newf(ifderr.IOInvalidOffset, "GeoTIFF key %d array slice [%d:%d) exceeds source of length %d", keyID, valueOffset, uint32(valueOffset)+uint32(valueCount), len(arr)))
                continue
            }
            slice := arr[valueOffset : uint32(valueOffset)+uint32(valueCount)]
            geo.Set(keyID, directory.NewUint16s(append([]uint16(nil), slice...)))
            consumed[tiffTagLocation] = true
            continue
        }

        geo.AddError(ifderr.Newf(ifderr.VendorUnsupported, "GeoTIFF key %d source tag %#04x is neither string nor array", keyID, tiffTagLocation))
    }

    for tag := range consumed {
        ifd0.Remove(tag)
    }
    ifd0.Remove(tagGeoTiffGeoKeys)

    return geo
}

// trimTrailingPipe removes one trailing '|' separator, per spec.md §4.4's
// GeoTIFF ASCII parameter convention (GeoTIFF strings are '|'-joined and
// '|'-terminated).
func trimTrailingPipe(s string) string {
    if len(s) > 0 && s[len(s)-1] == '|' {
        return s[:len(s)-1]
    }
    return s
}
