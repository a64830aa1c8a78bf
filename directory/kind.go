// Package directory implements the keyed, ordered tag collection produced
// by a TIFF/IFD walk: Directory (spec.md §3 "Directory"), its closed set of
// Value types, and the Kind enumeration distinguishing IFD flavours.
package directory

import "fmt"

// Kind distinguishes IFD flavours: standard EXIF directories, vendor
// makernote directories, the GeoTIFF directory the EXIF handler unpacks
// itself, and the external-reader attachments (IPTC/ICC/XMP/Photoshop) the
// core invokes through a narrow interface but does not itself decode.
type Kind int

const (
    KindUnknown Kind = iota

    // Standard EXIF/TIFF directories.
    KindExifIFD0
    KindExifSubIFD
    KindInterop
    KindGPS
    KindThumbnail // IFD1, following IFD0
    KindImage     // IFD2+, multi-page TIFF follower directories
    KindPanasonicRawIFD0

    // Vendor makernote directories, one per spec.md §4.5 recognition table
    // entry plus the seven Olympus sub-directories from §4.4.
    KindOlympus
    KindOlympusEquipment
    KindOlympusCameraSettings
    KindOlympusRawDevelopment
    KindOlympusRawDevelopment2
    KindOlympusImageProcessing
    KindOlympusFocusInfo
    KindOlympusRawInfo
    KindNikonType1
    KindNikonType2
    KindCanon
    KindSonyType1
    KindSonyType6
    KindSigma
    KindKodak
    KindCasioType1
    KindCasioType2
    KindFujifilm
    KindKyocera
    KindLeicaType5
    KindLeica
    KindPanasonic
    KindPentax
    KindPentaxType2
    KindSanyo
    KindRicoh
    KindSamsungType2
    KindDJI
    KindFLIR
    KindApple
    KindReconyxHyperFire
    KindReconyxHyperFire2
    KindReconyxUltraFire
    KindPrintIM

    // Attached directories, with parent set to the directory whose tags
    // produced them: GeoTIFF (unpacked by the EXIF handler from IFD0) and
    // the output of the external-reader collaborators.
    KindGeoTIFF
    KindIPTC
    KindICC
    KindXMP
    KindPhotoshop
)

var kindNames = [...]string{
    "Unknown",
    "EXIF IFD0",
    "EXIF SubIFD",
    "Interoperability",
    "GPS",
    "Thumbnail",
    "Image",
    "Panasonic Raw IFD0",
    "Olympus",
    "Olympus Equipment",
    "Olympus CameraSettings",
    "Olympus RawDevelopment",
    "Olympus RawDevelopment2",
    "Olympus ImageProcessing",
    "Olympus FocusInfo",
    "Olympus RawInfo",
    "Nikon Type1",
    "Nikon Type2",
    "Canon",
    "Sony Type1",
    "Sony Type6",
    "Sigma",
    "Kodak",
    "Casio Type1",
    "Casio Type2",
    "Fujifilm",
    "Kyocera",
    "Leica Type5",
    "Leica",
    "Panasonic",
    "Pentax",
    "Pentax Type2",
    "Sanyo",
    "Ricoh",
    "Samsung Type2",
    "DJI",
    "FLIR",
    "Apple",
    "Reconyx HyperFire",
    "Reconyx HyperFire2",
    "Reconyx UltraFire",
    "PrintIM",
    "GeoTIFF",
    "IPTC",
    "ICC",
    "XMP",
    "Photoshop",
}

func (k Kind) String() string {
    if int(k) < 0 || int(k) >= len(kindNames) {
        return fmt.Sprintf("Kind(%d)", int(k))
    }
    return kindNames[k]
}
