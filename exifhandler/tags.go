package exifhandler

// Tag IDs the handler itself branches on (spec.md §4.4). Everything else
// passes through to tiffcore's standard decode and directory.TagName for
// display; these are singled out because they change control flow, not
// just presentation.
const (
    tagMake             = 0x010f
    tagSubIFDOffset     = 0x014a
    tagExifSubIFDOffset = 0x8769
    tagGpsInfoOffset    = 0x8825
    tagInteropOffset    = 0xa005

    tagMakerNote = 0x927c

    tagIptcNaa              = 0x83bb
    tagInterColorProfile    = 0x8773
    tagPhotoshopSettings    = 0x8649
    tagApplicationNotes     = 0x9c9b
    tagPrintImageMatching   = 0xc4a5
    tagPrintIMWhitelisted   = 0x0e00

    tagGeoTiffGeoKeys       = 0x87af
    tagGeoTiffDoubleParams  = 0x87b0
    tagGeoTiffAsciiParams   = 0x87b1

    tagPanasonicWbInfo        = 0x0024
    tagPanasonicWbInfo2       = 0x0025
    tagPanasonicDistortInfo   = 0x0079
    tagPanasonicJpgFromRaw    = 0x002e
)

// Olympus makernote sub-IFD promotion tags (spec.md §4.4): seven tag IDs,
// each pointing at a nested IFD holding a named subset of Olympus fields.
// Values are the publicly documented Olympus makernote tag IDs for these
// blocks; no pack example implements Olympus, so they are not grounded in
// teacher code beyond the recognizer-table shape (see DESIGN.md).
const (
    tagOlympusEquipment        = 0x2010
    tagOlympusCameraSettings   = 0x2020
    tagOlympusRawDevelopment   = 0x2030
    tagOlympusRawDevelopment2  = 0x2031
    tagOlympusImageProcessing  = 0x2040
    tagOlympusFocusInfo        = 0x2050
    tagOlympusRawInfo          = 0x3000
)
