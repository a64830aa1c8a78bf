package tiffcore

import (
    "encoding/binary"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/bytereader"
    "github.com/jrm-1535/tiffmeta/directory"
)

// fakeHandler is a minimal Handler used to drive Walk in isolation from
// exifhandler, mirroring the teacher's own table-driven unit tests for
// parse.go's IFD walk.
type fakeHandler struct {
    root        directory.Kind
    enterTags   map[uint16]directory.Kind
    stack       []*directory.Directory
    produced    []*directory.Directory
    followerLeft int
    followerKind directory.Kind
    recorded    []error
}

func newFakeHandler(root directory.Kind) *fakeHandler {
    return &fakeHandler{root: root, enterTags: map[uint16]directory.Kind{}}
}

func (h *fakeHandler) ProcessTIFFMarker(marker uint16) (Standard, directory.Kind, error) {
    return StandardTIFF, h.root, nil
}

func (h *fakeHandler) TryEnterSubIFD(tag uint16) (directory.Kind, bool) {
    if kind, ok := h.enterTags[tag]; ok {
        return kind, true
    }
    return directory.KindUnknown, false
}

func (h *fakeHandler) NextFollowerKind() (directory.Kind, bool) {
    if h.followerLeft <= 0 {
        return directory.KindUnknown, false
    }
    h.followerLeft--
    return h.followerKind, true
}

func (h *fakeHandler) CustomProcessTag(ctx *Context, tag, format uint16, valueOffset, byteCount uint32) (bool, error) {
    return false, nil
}

func (h *fakeHandler) TryCustomProcessFormat(tag, format uint16, count uint32) (uint32, bool) {
    return 0, false
}

func (h *fakeHandler) EndingIFD(ctx *Context, dir *directory.Directory) error { return nil }

func (h *fakeHandler) PushDirectory(kind directory.Kind) *directory.Directory {
    d := directory.New(kind)
    h.stack = append(h.stack, d)
    h.produced = append(h.produced, d)
    return d
}

func (h *fakeHandler) PopDirectory() {
    h.stack = h.stack[:len(h.stack)-1]
}

func (h *fakeHandler) Error(err error) {
    h.recorded = append(h.recorded, err)
}

// buildIFD encodes one little-endian standard-TIFF IFD body: entry count,
// entries (tag, format, count=1, inline 4-byte value), and a next-IFD
// offset. It does not include the 8-byte file header.
func buildIFD(entries [][3]uint32, next uint32) []byte {
    var body []byte
    body = binary.LittleEndian.AppendUint16(body, uint16(len(entries)))
    for _, e := range entries {
        body = binary.LittleEndian.AppendUint16(body, uint16(e[0])) // tag
        body = binary.LittleEndian.AppendUint16(body, uint16(e[1])) // format
        body = binary.LittleEndian.AppendUint32(body, 1)            // component count
        body = binary.LittleEndian.AppendUint32(body, e[2])         // inline value
    }
    body = binary.LittleEndian.AppendUint32(body, next)
    return body
}

// header builds the 8-byte little-endian TIFF file header pointing at
// ifd0Offset.
func header(ifd0Offset uint32) []byte {
    h := make([]byte, 8)
    h[0], h[1] = 'I', 'I'
    binary.LittleEndian.PutUint16(h[2:], 42)
    binary.LittleEndian.PutUint32(h[4:], ifd0Offset)
    return h
}

func TestWalkEmptyIFD(t *testing.T) {
    data := append(header(8), buildIFD(nil, 0)...)
    r := bytereader.New(data, binary.LittleEndian)
    h := newFakeHandler(directory.KindExifIFD0)

    err := Walk(r, h)
    require.NoError(t, err)
    require.Len(t, h.produced, 1)
    require.Equal(t, directory.KindExifIFD0, h.produced[0].Kind())
    require.Equal(t, 0, h.produced[0].Len())
}

func TestWalkDecodesInlineShortEntry(t *testing.T) {
    ifd := buildIFD([][3]uint32{{0x100, 3, 1920}}, 0) // ImageWidth, UnsignedShort
    data := append(header(8), ifd...)
    r := bytereader.New(data, binary.LittleEndian)
    h := newFakeHandler(directory.KindExifIFD0)

    err := Walk(r, h)
    require.NoError(t, err)
    v, ok := h.produced[0].Get(0x100)
    require.True(t, ok)
    u, ok := v.Uint32()
    require.True(t, ok)
    require.Equal(t, uint32(1920), u)
}

func TestWalkFollowsThumbnailChain(t *testing.T) {
    ifd1 := buildIFD(nil, 0)
    ifd0Offset := uint32(8)
    ifd0 := buildIFD(nil, 0) // placeholder next, patched below
    ifd1Offset := ifd0Offset + uint32(len(ifd0))

    ifd0 = buildIFD(nil, ifd1Offset)
    data := append(header(ifd0Offset), ifd0...)
    data = append(data, ifd1...)

    r := bytereader.New(data, binary.LittleEndian)
    h := newFakeHandler(directory.KindExifIFD0)
    h.followerLeft = 1
    h.followerKind = directory.KindThumbnail

    err := Walk(r, h)
    require.NoError(t, err)
    require.Len(t, h.produced, 2)
    require.Equal(t, directory.KindExifIFD0, h.produced[0].Kind())
    require.Equal(t, directory.KindThumbnail, h.produced[1].Kind())
}

func TestWalkBadByteOrderMarkIsReported(t *testing.T) {
    data := []byte{'X', 'X', 0, 0, 0, 0, 0, 0}
    r := bytereader.New(data, binary.LittleEndian)
    h := newFakeHandler(directory.KindExifIFD0)

    err := Walk(r, h)
    require.Error(t, err)
    require.Empty(t, h.produced)
}

func TestWalkRecordsCycleWithoutAborting(t *testing.T) {
    // A sub-IFD entry that points back at IFD0's own offset must be caught
    // by the visited-offset guard instead of recursing forever.
    ifd0 := buildIFD([][3]uint32{{0x14a, 4, 8}}, 0) // SubIFDOffset -> offset 8 (itself)
    data := append(header(8), ifd0...)

    r := bytereader.New(data, binary.LittleEndian)
    h := newFakeHandler(directory.KindExifIFD0)
    h.enterTags[0x14a] = directory.KindExifSubIFD

    err := Walk(r, h)
    require.NoError(t, err)
    require.Len(t, h.produced, 2) // IFD0 and the (cycle-truncated) sub-IFD
    require.Len(t, h.produced[1].Errors(), 1)
}
