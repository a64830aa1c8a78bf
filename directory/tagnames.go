package directory

import "fmt"

// tagTables maps a Kind to its tag-id -> name table. Kinds that share a
// table (e.g. every directory that can carry baseline TIFF tags) register
// the same map value. Vendor directories register only the tags this
// module curates by hand; everything else falls back to a hex placeholder
// (spec.md §9 design notes — the recogniser table is data, not a
// full re-derivation of every vendor's private dictionary).
var tagTables = map[Kind]map[uint16]string{}

func registerTable(kinds []Kind, table map[uint16]string) {
    for _, k := range kinds {
        tagTables[k] = table
    }
}

// TagName returns the curated name for tag within kind, or a hex
// placeholder ("tag-0x1234") when the table has no entry.
func TagName(kind Kind, tag uint16) string {
    if table, ok := tagTables[kind]; ok {
        if name, ok := table[tag]; ok {
            return name
        }
    }
    return fmt.Sprintf("tag-%#04x", tag)
}

// baselineTIFFTags is the standard TIFF 6.0 / EXIF IFD0 tag set, ported
// from the teacher's constant table (exif.go/parse.go _ImageWidth..
// _ReferenceBlackWhite, _Copyright).
var baselineTIFFTags = map[uint16]string{
    0x100: "ImageWidth",
    0x101: "ImageLength",
    0x102: "BitsPerSample",
    0x103: "Compression",
    0x106: "PhotometricInterpretation",
    0x107: "Threshholding",
    0x108: "CellWidth",
    0x109: "CellLength",
    0x10a: "FillOrder",
    0x10d: "DocumentName",
    0x10e: "ImageDescription",
    0x10f: "Make",
    0x110: "Model",
    0x111: "StripOffsets",
    0x112: "Orientation",
    0x115: "SamplesPerPixel",
    0x116: "RowsPerStrip",
    0x117: "StripByteCounts",
    0x118: "MinSampleValue",
    0x119: "MaxSampleValue",
    0x11a: "XResolution",
    0x11b: "YResolution",
    0x11c: "PlanarConfiguration",
    0x11d: "PageName",
    0x11e: "XPosition",
    0x11f: "YPosition",
    0x120: "FreeOffsets",
    0x121: "FreeByteCounts",
    0x122: "GrayResponseUnit",
    0x123: "GrayResponseCurve",
    0x128: "ResolutionUnit",
    0x129: "PageNumber",
    0x12d: "TransferFunction",
    0x131: "Software",
    0x132: "DateTime",
    0x13b: "Artist",
    0x13c: "HostComputer",
    0x13e: "WhitePoint",
    0x13f: "PrimaryChromaticities",
    0x140: "ColorMap",
    0x141: "HalftoneHints",
    0x142: "TileWidth",
    0x143: "TileLength",
    0x144: "TileOffsets",
    0x145: "TileByteCounts",
    0x14a: "SubIFDOffset",
    0x152: "ExtraSamples",
    0x153: "SampleFormat",
    0x201: "JPEGInterchangeFormat",
    0x202: "JPEGInterchangeFormatLength",
    0x211: "YCbCrCoefficients",
    0x212: "YCbCrSubSampling",
    0x213: "YCbCrPositioning",
    0x214: "ReferenceBlackWhite",
    0x8298: "Copyright",
    0x8769: "ExifSubIFDOffset",
    0x8825: "GpsInfoOffset",
    0x83bb: "IptcNaa",
    0x8649: "PhotoshopSettings",
    0x8773: "InterColorProfile",
    0x9c9b: "ApplicationNotes",
    0xc4a5: "PrintImageMatchingInfo",
    0x882a: "TimeZoneOffset",
    0x87af: "GeoTiffDirectory",
    0x87b0: "GeoTiffDoubleParams",
    0x87b1: "GeoTiffAsciiParams",
}

// exifSubIFDTags extends the baseline set with the EXIF private tag
// dictionary (exposure, ISO, lens, maker note pointer...), ported from
// parse.go's _ExposureTime.._LensModel block.
var exifSubIFDTags = mergeTags(baselineTIFFTags, map[uint16]string{
    0x829a: "ExposureTime",
    0x829d: "FNumber",
    0x8822: "ExposureProgram",
    0x8827: "ISOSpeedRatings",
    0x9000: "ExifVersion",
    0x9003: "DateTimeOriginal",
    0x9004: "DateTimeDigitized",
    0x9010: "OffsetTime",
    0x9011: "OffsetTimeOriginal",
    0x9012: "OffsetTimeDigitized",
    0x9101: "ComponentsConfiguration",
    0x9102: "CompressedBitsPerPixel",
    0x9201: "ShutterSpeedValue",
    0x9202: "ApertureValue",
    0x9203: "BrightnessValue",
    0x9204: "ExposureBiasValue",
    0x9205: "MaxApertureValue",
    0x9206: "SubjectDistance",
    0x9207: "MeteringMode",
    0x9208: "LightSource",
    0x9209: "Flash",
    0x920a: "FocalLength",
    0x9214: "SubjectArea",
    0x927c: "MakerNote",
    0x9286: "UserComment",
    0x9290: "SubsecTime",
    0x9291: "SubsecTimeOriginal",
    0x9292: "SubsecTimeDigitized",
    0xa000: "FlashpixVersion",
    0xa001: "ColorSpace",
    0xa002: "PixelXDimension",
    0xa003: "PixelYDimension",
    0xa005: "InteropOffset",
    0xa214: "SubjectLocation",
    0xa217: "SensingMethod",
    0xa300: "FileSource",
    0xa301: "SceneType",
    0xa302: "CFAPattern",
    0xa401: "CustomRendered",
    0xa402: "ExposureMode",
    0xa403: "WhiteBalance",
    0xa404: "DigitalZoomRatio",
    0xa405: "FocalLengthIn35mmFilm",
    0xa406: "SceneCaptureType",
    0xa407: "GainControl",
    0xa408: "Contrast",
    0xa409: "Saturation",
    0xa40a: "Sharpness",
    0xa40c: "SubjectDistanceRange",
    0xa420: "ImageUniqueID",
    0xa432: "LensSpecification",
    0xa433: "LensMake",
    0xa434: "LensModel",
})

var interopTags = map[uint16]string{
    0x01: "InteroperabilityIndex",
    0x02: "InteroperabilityVersion",
}

var gpsTags = map[uint16]string{
    0x00: "GPSVersionID",
    0x01: "GPSLatitudeRef",
    0x02: "GPSLatitude",
    0x03: "GPSLongitudeRef",
    0x04: "GPSLongitude",
    0x05: "GPSAltitudeRef",
    0x06: "GPSAltitude",
    0x07: "GPSTimeStamp",
    0x08: "GPSSatellites",
    0x09: "GPSStatus",
    0x0a: "GPSMeasureMode",
    0x0b: "GPSDOP",
    0x0c: "GPSSpeedRef",
    0x0d: "GPSSpeed",
    0x0e: "GPSTrackRef",
    0x0f: "GPSTrack",
    0x10: "GPSImgDirectionRef",
    0x11: "GPSImgDirection",
    0x12: "GPSMapDatum",
    0x13: "GPSDestLatitudeRef",
    0x14: "GPSDestLatitude",
    0x15: "GPSDestLongitudeRef",
    0x16: "GPSDestLongitude",
    0x17: "GPSDestBearingRef",
    0x18: "GPSDestBearing",
    0x19: "GPSDestDistanceRef",
    0x1a: "GPSDestDistance",
    0x1b: "GPSProcessingMethod",
    0x1c: "GPSAreaInformation",
    0x1d: "GPSDateStamp",
    0x1e: "GPSDifferential",
}

// appleTags covers the curated subset of Apple maker-note tags ported from
// apple.go's _Apple001.._AppleImageUniqueID constant block.
var appleTags = map[uint16]string{
    0x0001: "AppleRunTimeFlags",
    0x0002: "ApplePropertyList",
    0x0003: "AppleRunTime",
    0x0008: "AppleAccelerationVector",
    0x000a: "AppleHDRImageType",
    0x000b: "BurstUUID",
    0x000e: "AppleOrientation",
    0x0011: "AppleMediaGroupUUID",
    0x0015: "AppleImageUniqueID",
}

// nikonType2Tags covers the curated subset of Nikon type 2/3 maker-note
// tags ported from nikon.go's storeNikon3* dispatch.
var nikonType2Tags = map[uint16]string{
    0x0001: "NikonMakerNoteVersion",
    0x0002: "NikonISOSpeed",
    0x0004: "NikonQuality",
    0x0005: "NikonWhiteBalance",
    0x0007: "NikonFocusMode",
    0x000b: "NikonWhiteBalanceBias",
    0x0011: "NikonPreviewIFD",
    0x001d: "NikonSerialNumber",
    0x0083: "NikonLensType",
    0x0084: "NikonLensInfo",
    0x0093: "NikonNEFCompression",
    0x00a7: "NikonShutterCount",
}

func mergeTags(base map[uint16]string, extra map[uint16]string) map[uint16]string {
    out := make(map[uint16]string, len(base)+len(extra))
    for k, v := range base {
        out[k] = v
    }
    for k, v := range extra {
        out[k] = v
    }
    return out
}

func init() {
    registerTable([]Kind{KindExifIFD0, KindThumbnail, KindImage, KindPanasonicRawIFD0}, baselineTIFFTags)
    registerTable([]Kind{KindExifSubIFD}, exifSubIFDTags)
    registerTable([]Kind{KindInterop}, interopTags)
    registerTable([]Kind{KindGPS}, gpsTags)
    registerTable([]Kind{KindApple}, appleTags)
    registerTable([]Kind{KindNikonType2}, nikonType2Tags)
}
