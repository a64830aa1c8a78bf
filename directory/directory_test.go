package directory

import (
    "testing"

    "github.com/stretchr/testify/require"
)

func TestSetReplacesWithoutMovingOrder(t *testing.T) {
    d := New(KindExifIFD0)
    d.Set(0x10f, NewString("Canon"))
    d.Set(0x110, NewString("EOS"))
    d.Set(0x10f, NewString("Nikon")) // replace first tag

    entries := d.Entries()
    require.Len(t, entries, 2)
    require.Equal(t, uint16(0x10f), entries[0].Tag)
    v, _ := entries[0].Value.String()
    require.Equal(t, "Nikon", v)
    require.Equal(t, uint16(0x110), entries[1].Tag)
}

func TestSingleElementArrayCollapsesToScalar(t *testing.T) {
    v := NewUint16s([]uint16{7})
    require.Equal(t, VUint16, v.Kind)
    u, ok := v.Uint32()
    require.True(t, ok)
    require.Equal(t, uint32(7), u)
}

func TestMultiElementArrayStaysArray(t *testing.T) {
    v := NewUint16s([]uint16{1, 2, 3})
    require.Equal(t, VArrayUint16, v.Kind)
}

func TestErrorsAreRecordedNotDiscarded(t *testing.T) {
    d := New(KindGPS)
    d.AddError(errTest("boom"))
    require.Len(t, d.Errors(), 1)
}

func TestParentIsWeakReference(t *testing.T) {
    parent := New(KindExifIFD0)
    child := New(KindExifSubIFD)
    child.SetParent(parent)
    require.Same(t, parent, child.Parent())
}

func TestTagNameFallsBackToHex(t *testing.T) {
    d := New(KindCanon)
    require.Equal(t, "tag-0x1234", d.TagName(0x1234))
}

func TestTagNameCuratedEntry(t *testing.T) {
    d := New(KindGPS)
    require.Equal(t, "GPSLatitude", d.TagName(0x02))
}

type errTest string

func (e errTest) Error() string { return string(e) }
