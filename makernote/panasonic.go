package makernote

import (
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

// PanasonicRawBlock configures one Panasonic Raw fixed-stride binary block
// decode (spec.md §4.7): Names gives the curated subset of indices this
// block knows how to label; Signed and ArrayLength control how each
// labelled run is grouped and decoded.
type PanasonicRawBlock struct {
    Names       map[uint16]string
    Signed      bool
    ArrayLength int
}

// Known curated blocks for the three Panasonic Raw IFD0 tags spec.md §4.4
// step 8 names. Field names are representative; Panasonic's private
// encoding for these tags is not publicly exhaustive, so only the leading,
// well-attested fields are labelled — everything else is left unlabelled
// and skipped by the grouping loop below.
var (
    WbInfoBlock = PanasonicRawBlock{
        Names: map[uint16]string{
            0: "WBType1", 1: "WBRedGain1", 2: "WBBlueGain1",
            3: "WBType2", 4: "WBRedGain2", 5: "WBBlueGain2",
        },
        Signed:      false,
        ArrayLength: 3,
    }
    WbInfo2Block = PanasonicRawBlock{
        Names: map[uint16]string{
            0: "WB2Type1", 1: "WB2RedGain1", 2: "WB2GreenGain1", 3: "WB2BlueGain1",
        },
        Signed:      false,
        ArrayLength: 4,
    }
    DistortionInfoBlock = PanasonicRawBlock{
        Names: map[uint16]string{
            0: "DistortionParam02", 1: "DistortionParam04",
            2: "DistortionParam09", 3: "DistortionParam11",
        },
        Signed:      true,
        ArrayLength: 2,
    }
)

// DecodePanasonicRawBlock decodes one Panasonic Raw binary block at
// tagValueOffset into dir, using synthetic small tag IDs (the block-
// relative index) per spec.md §4.7: item stride is 2 bytes; an index with
// a curated name whose successor also has one stores a single scalar;
// otherwise it stores an ArrayLength-element run and skips past it.
func DecodePanasonicRawBlock(ctx *tiffcore.Context, dir *directory.Directory, tagValueOffset, byteCount uint32, block PanasonicRawBlock) {
    const stride = 2
    r := ctx.Reader

    for i := uint32(0); i < byteCount; i++ {
        if _, known := block.Names[uint16(i)]; !known {
            continue
        }
        _, nextKnown := block.Names[uint16(i+1)]
        if nextKnown {
            v, err := readPanasonicScalar(r, tagValueOffset+i*stride, block.Signed)
            if err != nil {
                dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading Panasonic Raw block scalar"))
                continue
            }
            dir.Set(uint16(i), v)
            continue
        }

        vals, err := readPanasonicArray(r, tagValueOffset+i*stride, block.ArrayLength, block.Signed)
        if err != nil {
            dir.AddError(ifderr.Wrap(ifderr.IOTruncated, err, "reading Panasonic Raw block array"))
            continue
        }
        dir.Set(uint16(i), vals)
        i += uint32(block.ArrayLength) - 1
    }
}

func readPanasonicScalar(r interface {
    Uint16(uint32) (uint16, error)
    Int16(uint32) (int16, error)
}, offset uint32, signed bool) (directory.Value, error) {
    if signed {
        v, err := r.Int16(offset)
        if err != nil {
            return directory.Value{}, err
        }
        return directory.NewInt16(v), nil
    }
    v, err := r.Uint16(offset)
    if err != nil {
        return directory.Value{}, err
    }
    return directory.NewUint16(v), nil
}

func readPanasonicArray(r interface {
    Uint16(uint32) (uint16, error)
    Int16(uint32) (int16, error)
}, offset uint32, length int, signed bool) (directory.Value, error) {
    if signed {
        out := make([]int16, length)
        for i := range out {
            v, err := r.Int16(offset + uint32(i)*2)
            if err != nil {
                return directory.Value{}, err
            }
            out[i] = v
        }
        return directory.NewInt16s(out), nil
    }
    out := make([]uint16, length)
    for i := range out {
        v, err := r.Uint16(offset + uint32(i)*2)
        if err != nil {
            return directory.Value{}, err
        }
        out[i] = v
    }
    return directory.NewUint16s(out), nil
}
