package bytereader

import (
    "encoding/binary"
    "testing"

    "github.com/stretchr/testify/require"

    "github.com/jrm-1535/tiffmeta/ifderr"
)

func TestUint16RoundTrip(t *testing.T) {
    data := []byte{0x01, 0x02, 0x03, 0x04}
    le := New(data, binary.LittleEndian)
    v, err := le.Uint16(0)
    require.NoError(t, err)
    require.Equal(t, uint16(0x0201), v)

    be := le.WithByteOrder(binary.BigEndian)
    v, err = be.Uint16(0)
    require.NoError(t, err)
    require.Equal(t, uint16(0x0102), v)
}

func TestWithBaseOffsetIsZeroCopyAndAdditive(t *testing.T) {
    data := []byte{0, 0, 0, 0, 0xAA, 0xBB, 0, 0}
    r := New(data, binary.BigEndian)
    shifted := r.WithBaseOffset(4)
    v, err := shifted.Uint16(0)
    require.NoError(t, err)
    require.Equal(t, uint16(0xAABB), v)

    // deriving again stacks the offsets rather than replacing them
    reshifted := shifted.WithBaseOffset(0)
    v2, err := reshifted.Uint16(0)
    require.NoError(t, err)
    require.Equal(t, v, v2)

    // the original reader is untouched
    orig, err := r.Uint16(0)
    require.NoError(t, err)
    require.Equal(t, uint16(0), orig)
}

func TestOutOfBoundsReadIsIOTruncated(t *testing.T) {
    r := New([]byte{1, 2, 3}, binary.LittleEndian)
    _, err := r.Uint32(0)
    require.Error(t, err)
    require.ErrorIs(t, err, ifderr.New(ifderr.IOTruncated, ""))
}

func TestNullTerminatedStopsAtZero(t *testing.T) {
    r := New([]byte{'h', 'i', 0, 'X', 'X'}, binary.LittleEndian)
    b, err := r.NullTerminated(0, 5)
    require.NoError(t, err)
    require.Equal(t, "hi", string(b))
}

func TestNullTerminatedNoZeroReturnsAllBytes(t *testing.T) {
    r := New([]byte{'h', 'i', 'y', 'a'}, binary.LittleEndian)
    b, err := r.NullTerminated(0, 4)
    require.NoError(t, err)
    require.Equal(t, "hiya", string(b))
}

func TestFixed16_16(t *testing.T) {
    r := New([]byte{0x00, 0x02, 0x80, 0x00}, binary.BigEndian)
    v, err := r.Fixed16_16(0)
    require.NoError(t, err)
    require.InDelta(t, 2.5, v, 0.0001)
}

func TestUTF16LEString(t *testing.T) {
    // "Hi" as UTF-16LE
    r := New([]byte{'H', 0, 'i', 0}, binary.LittleEndian)
    s, err := r.String(0, 4, UTF16LE)
    require.NoError(t, err)
    require.Equal(t, "Hi", s)
}

func TestSequentialSkipAndRead(t *testing.T) {
    r := New([]byte{0xDE, 0xAD, 0xBE, 0xEF}, binary.BigEndian)
    seq := r.Sequential()
    require.NoError(t, seq.Skip(2))
    v, err := seq.Uint16()
    require.NoError(t, err)
    require.Equal(t, uint16(0xBEEF), v)

    require.False(t, seq.TrySkip(1))
    require.True(t, seq.IsCloserToEnd(1))
}
