package makernote

import (
    "encoding/binary"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
    "github.com/jrm-1535/tiffmeta/tiffcore"
)

// fakeHandler is a minimal tiffcore.Handler used to drive Dispatch in
// isolation from exifhandler (which itself imports makernote, so it cannot
// be imported back here), mirroring tiffcore's own fakeHandler test double.
type fakeHandler struct {
    stack    []*directory.Directory
    produced []*directory.Directory
}

func (h *fakeHandler) ProcessTIFFMarker(marker uint16) (tiffcore.Standard, directory.Kind, error) {
    return tiffcore.StandardTIFF, directory.KindExifIFD0, nil
}
func (h *fakeHandler) TryEnterSubIFD(tag uint16) (directory.Kind, bool) { return directory.KindUnknown, false }
func (h *fakeHandler) NextFollowerKind() (directory.Kind, bool)         { return directory.KindUnknown, false }
func (h *fakeHandler) CustomProcessTag(ctx *tiffcore.Context, tag, format uint16, valueOffset, byteCount uint32) (bool, error) {
    return false, nil
}
func (h *fakeHandler) TryCustomProcessFormat(tag, format uint16, count uint32) (uint32, bool) {
    return 0, false
}
func (h *fakeHandler) EndingIFD(ctx *tiffcore.Context, dir *directory.Directory) error { return nil }

func (h *fakeHandler) PushDirectory(kind directory.Kind) *directory.Directory {
    d := directory.New(kind)
    h.stack = append(h.stack, d)
    h.produced = append(h.produced, d)
    return d
}
func (h *fakeHandler) PopDirectory() { h.stack = h.stack[:len(h.stack)-1] }
func (h *fakeHandler) Error(err error) {}

// buildIFD encodes one little-endian classic-TIFF IFD body (no file
// header): entry count, entries (tag, format, count=1, inline value), next
// pointer.
func buildIFD(entries [][3]uint32, next uint32) []byte {
    var body []byte
    body = binary.LittleEndian.AppendUint16(body, uint16(len(entries)))
    for _, e := range entries {
        body = binary.LittleEndian.AppendUint16(body, uint16(e[0]))
        body = binary.LittleEndian.AppendUint16(body, uint16(e[1]))
        body = binary.LittleEndian.AppendUint32(body, 1)
        body = binary.LittleEndian.AppendUint32(body, e[2])
    }
    body = binary.LittleEndian.AppendUint32(body, next)
    return body
}

// TestDispatchOlympusPrefixWalksIFDAtOffsetPlusEight reproduces spec.md §8
// scenario 3: a makernote whose first six bytes are "OLYMP\0" at offset M
// pushes an Olympus directory and walks the IFD at M+8.
func TestDispatchOlympusPrefixWalksIFDAtOffsetPlusEight(t *testing.T) {
    signature := append([]byte("OLYMP\x00"), 0, 0) // pad to 8 bytes
    ifd := buildIFD(nil, 0)
    data := append(signature, ifd...)

    ctx := tiffcore.NewContext(bytereader.New(data, binary.LittleEndian))
    h := &fakeHandler{}

    matched := Dispatch(ctx, h, tiffcore.StandardTIFF, 0, "OLYMPUS CORPORATION")
    require.True(t, matched)
    require.Len(t, h.produced, 1)
    require.Equal(t, directory.KindOlympus, h.produced[0].Kind())
    require.Equal(t, 0, h.produced[0].Len())
    require.Empty(t, h.produced[0].Errors())
}

// TestDispatchOlympusWalksPopulatedIFD confirms tags inside the nested IFD
// actually reach the pushed directory, not just that the walk completed.
func TestDispatchOlympusWalksPopulatedIFD(t *testing.T) {
    signature := append([]byte("OLYMP\x00"), 0, 0)
    ifd := buildIFD([][3]uint32{{0x0200, 3, 7}}, 0) // arbitrary SHORT tag
    data := append(signature, ifd...)

    ctx := tiffcore.NewContext(bytereader.New(data, binary.LittleEndian))
    h := &fakeHandler{}

    matched := Dispatch(ctx, h, tiffcore.StandardTIFF, 0, "OLYMPUS CORPORATION")
    require.True(t, matched)
    v, ok := h.produced[0].Get(0x0200)
    require.True(t, ok)
    u, ok := v.Uint32()
    require.True(t, ok)
    require.Equal(t, uint32(7), u)
}

func TestDispatchUnrecognisedMakernoteReturnsFalseWithoutPushing(t *testing.T) {
    data := []byte("NothingRecognisable_____________")
    ctx := tiffcore.NewContext(bytereader.New(data, binary.LittleEndian))
    h := &fakeHandler{}

    matched := Dispatch(ctx, h, tiffcore.StandardTIFF, 0, "An Unknown Camera Corp")
    require.False(t, matched)
    require.Empty(t, h.produced)
}

func TestDispatchCanonMakeWalksIFDAtMakernoteOffset(t *testing.T) {
    ifd := buildIFD(nil, 0)
    ctx := tiffcore.NewContext(bytereader.New(ifd, binary.LittleEndian))
    h := &fakeHandler{}

    matched := Dispatch(ctx, h, tiffcore.StandardTIFF, 0, "Canon")
    require.True(t, matched)
    require.Equal(t, directory.KindCanon, h.produced[0].Kind())
}
