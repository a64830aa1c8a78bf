package makernote

import (
    "encoding/binary"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/ifderr"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

// TestDecodeReconyxUltraFireWrongMakernoteID reproduces spec.md §8 scenario
// 4: an UltraFire makernote carrying the right ASCII prefix but the wrong
// makernote ID records a vendor-bad-header error without aborting, and the
// directory still carries whatever it decoded before the mismatch (the
// serial number label).
func TestDecodeReconyxUltraFireWrongMakernoteID(t *testing.T) {
    data := []byte("ABCDEFGH\x00") // 9-byte NULL-terminated serial, off 0..9
    data = binary.BigEndian.AppendUint16(data, 0x1234) // wrong makernoteID at off+9
    data = binary.BigEndian.AppendUint16(data, 0x07d1) // publicID, correct but irrelevant once ID mismatches

    ctx := tiffcore.NewContext(bytereader.New(data, binary.LittleEndian))
    dir := directory.New(directory.KindReconyxUltraFire)

    decodeReconyxUltraFire(ctx, dir, 0)

    require.Len(t, dir.Errors(), 1)
    ifdErr, ok := dir.Errors()[0].(*ifderr.Error)
    require.True(t, ok)
    require.Equal(t, ifderr.VendorBadHeader, ifdErr.Kind)

    v, ok := dir.Get(tagReconyxSerialNumber)
    require.True(t, ok)
    s, ok := v.String()
    require.True(t, ok)
    require.Equal(t, "ABCDEFGH", s)
}

func TestDecodeReconyxUltraFireValidHeaderDecodesDateTime(t *testing.T) {
    data := []byte("SERIAL01\x00")
    data = binary.BigEndian.AppendUint16(data, ultraFireMakernoteID)
    data = binary.BigEndian.AppendUint16(data, ultraFirePublicID)
    data = binary.BigEndian.AppendUint16(data, 1) // MakerNoteVersion
    data = binary.BigEndian.AppendUint16(data, 30) // sec
    data = binary.BigEndian.AppendUint16(data, 15) // min
    data = binary.BigEndian.AppendUint16(data, 12) // hour
    data = binary.BigEndian.AppendUint16(data, 4)  // day
    data = binary.BigEndian.AppendUint16(data, 7)  // month
    data = binary.BigEndian.AppendUint16(data, 2024) // year

    ctx := tiffcore.NewContext(bytereader.New(data, binary.LittleEndian))
    dir := directory.New(directory.KindReconyxUltraFire)

    decodeReconyxUltraFire(ctx, dir, 0)

    require.Empty(t, dir.Errors())
    v, ok := dir.Get(tagReconyxDateTime)
    require.True(t, ok)
    dt, ok := v.Raw.(directory.DateTime)
    require.True(t, ok)
    require.Equal(t, 2024, dt.Year)
    require.Equal(t, 7, dt.Month)
    require.Equal(t, 4, dt.Day)
}
