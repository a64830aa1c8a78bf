package exifhandler

import "github.com/jrm-1535/tiffmeta/directory"

const (
    tagGPSLatitudeRef  = 0x01
    tagGPSLatitude     = 0x02
    tagGPSLongitudeRef = 0x03
    tagGPSLongitude    = 0x04
)

// GeoLocation converts a GPS directory's latitude/longitude rational
// triples (degrees, minutes, seconds) plus their hemisphere refs into
// signed decimal degrees, per spec.md §8 scenario 2. ok is false if gps is
// nil, not a GPS-kind directory, or is missing either coordinate.
func GeoLocation(gps *directory.Directory) (lat, lon float64, ok bool) {
    if gps == nil || gps.Kind() != directory.KindGPS {
        return 0, 0, false
    }
    lat, okLat := dms(gps, tagGPSLatitude, tagGPSLatitudeRef, "S")
    lon, okLon := dms(gps, tagGPSLongitude, tagGPSLongitudeRef, "W")
    if !okLat || !okLon {
        return 0, 0, false
    }
    return lat, lon, true
}

func dms(dir *directory.Directory, valueTag, refTag uint16, negativeRef string) (float64, bool) {
    v, ok := dir.Get(valueTag)
    if !ok {
        return 0, false
    }
    var parts []directory.URational
    switch v.Kind {
    case directory.VArrayURational:
        parts = v.Raw.([]directory.URational)
    case directory.VURational:
        parts = []directory.URational{v.Raw.(directory.URational)}
    default:
        return 0, false
    }
    if len(parts) != 3 {
        return 0, false
    }

    degrees := ratio(parts[0])
    minutes := ratio(parts[1])
    seconds := ratio(parts[2])
    deg := degrees + minutes/60 + seconds/3600

    if refVal, ok := dir.Get(refTag); ok {
        if ref, isString := refVal.String(); isString && ref == negativeRef {
            deg = -deg
        }
    }
    return deg, true
}

func ratio(r directory.URational) float64 {
    if r.Den == 0 {
        return 0
    }
    return float64(r.Num) / float64(r.Den)
}
