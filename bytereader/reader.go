// Package bytereader implements the two byte-access capabilities the TIFF
// core consumes through a narrow interface: random access (read at an
// absolute offset) and sequential (read-and-advance). Both honour a current
// byte order and support zero-copy derived views with a flipped byte order
// or a shifted base offset.
package bytereader

import (
    "encoding/binary"
    "math"
    "unicode/utf16"

    "github.com/jrm-1535/tiffmeta/ifderr"
)

// StringEncoding selects how Reader.String interprets raw bytes.
type StringEncoding int

const (
    UTF8 StringEncoding = iota
    UTF16LE
    UTF16BE
)

// Reader is a random-access view over an in-memory buffer. Offsets passed to
// its methods are relative to Base; the underlying slice is never copied by
// a derivation, only the byte order or base offset changes.
type Reader struct {
    data  []byte
    order binary.ByteOrder
    base  uint32
}

// New creates a Reader over data with the given byte order and a base
// offset of zero.
func New(data []byte, order binary.ByteOrder) *Reader {
    return &Reader{data: data, order: order}
}

// ByteOrder reports the reader's current byte order.
func (r *Reader) ByteOrder() binary.ByteOrder { return r.order }

// Base reports the reader's current base offset.
func (r *Reader) Base() uint32 { return r.base }

// Len reports the number of bytes addressable from offset 0 relative to the
// reader's current base (i.e. the size of the underlying buffer minus base).
func (r *Reader) Len() uint32 {
    if uint32(len(r.data)) <= r.base {
        return 0
    }
    return uint32(len(r.data)) - r.base
}

// WithByteOrder derives a new Reader sharing the same underlying buffer and
// base offset, but with the given byte order. Zero-copy.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
    return &Reader{data: r.data, order: order, base: r.base}
}

// WithBaseOffset derives a new Reader sharing the same underlying buffer and
// byte order, whose absolute offset zero is delta bytes further into the
// buffer than the receiver's. Zero-copy.
func (r *Reader) WithBaseOffset(delta uint32) *Reader {
    return &Reader{data: r.data, order: r.order, base: r.base + delta}
}

func (r *Reader) slice(offset, count uint32) ([]byte, error) {
    start := r.base + offset
    if start < offset {
        return nil, ifderr.Newf(ifderr.IOInvalidOffset, "offset overflow at %d+%d", r.base, offset)
    }
    end := start + count
    if end < start {
        return nil, ifderr.Newf(ifderr.IOInvalidOffset, "byte count overflow at %d+%d", start, count)
    }
    if uint64(end) > uint64(len(r.data)) {
        return nil, ifderr.Newf(ifderr.IOTruncated, "read [%d:%d) exceeds buffer of length %d", start, end, len(r.data))
    }
    return r.data[start:end], nil
}

func (r *Reader) Uint8(offset uint32) (uint8, error) {
    b, err := r.slice(offset, 1)
    if err != nil {
        return 0, err
    }
    return b[0], nil
}

func (r *Reader) Int8(offset uint32) (int8, error) {
    v, err := r.Uint8(offset)
    return int8(v), err
}

func (r *Reader) Uint16(offset uint32) (uint16, error) {
    b, err := r.slice(offset, 2)
    if err != nil {
        return 0, err
    }
    return r.order.Uint16(b), nil
}

func (r *Reader) Int16(offset uint32) (int16, error) {
    v, err := r.Uint16(offset)
    return int16(v), err
}

func (r *Reader) Uint32(offset uint32) (uint32, error) {
    b, err := r.slice(offset, 4)
    if err != nil {
        return 0, err
    }
    return r.order.Uint32(b), nil
}

func (r *Reader) Int32(offset uint32) (int32, error) {
    v, err := r.Uint32(offset)
    return int32(v), err
}

func (r *Reader) Uint64(offset uint32) (uint64, error) {
    b, err := r.slice(offset, 8)
    if err != nil {
        return 0, err
    }
    return r.order.Uint64(b), nil
}

func (r *Reader) Int64(offset uint32) (int64, error) {
    v, err := r.Uint64(offset)
    return int64(v), err
}

func (r *Reader) Float32(offset uint32) (float32, error) {
    v, err := r.Uint32(offset)
    if err != nil {
        return 0, err
    }
    return math.Float32frombits(v), nil
}

func (r *Reader) Float64(offset uint32) (float64, error) {
    v, err := r.Uint64(offset)
    if err != nil {
        return 0, err
    }
    return math.Float64frombits(v), nil
}

// Bytes returns count raw bytes starting at offset. The returned slice
// aliases the reader's underlying buffer; callers must copy it before
// mutating.
func (r *Reader) Bytes(offset, count uint32) ([]byte, error) {
    return r.slice(offset, count)
}

// String reads count bytes at offset and decodes them per enc.
func (r *Reader) String(offset, count uint32, enc StringEncoding) (string, error) {
    b, err := r.slice(offset, count)
    if err != nil {
        return "", err
    }
    return decodeString(b, enc, r.order)
}

func decodeString(b []byte, enc StringEncoding, order binary.ByteOrder) (string, error) {
    switch enc {
    case UTF16LE, UTF16BE:
        bo := binary.ByteOrder(binary.LittleEndian)
        if enc == UTF16BE {
            bo = binary.BigEndian
        }
        if len(b)%2 != 0 {
            b = b[:len(b)-1]
        }
        units := make([]uint16, len(b)/2)
        for i := range units {
            units[i] = bo.Uint16(b[i*2:])
        }
        return string(utf16.Decode(units)), nil
    default:
        return string(b), nil
    }
}

// NullTerminated reads up to max bytes starting at offset and returns the
// bytes up to (but excluding) the first zero byte. If no zero byte is found
// within max bytes, all max bytes are returned.
func (r *Reader) NullTerminated(offset, max uint32) ([]byte, error) {
    b, err := r.slice(offset, max)
    if err != nil {
        return nil, err
    }
    for i, c := range b {
        if c == 0 {
            out := make([]byte, i)
            copy(out, b[:i])
            return out, nil
        }
    }
    out := make([]byte, len(b))
    copy(out, b)
    return out, nil
}

// Fixed16_16 reads a signed S15.16 fixed-point value: the top 16 bits are
// the signed integer part, the bottom 16 bits are the fractional numerator
// over 65536. See spec GLOSSARY "S15.16". The 32-bit word is read in the
// reader's current byte order, so one code path serves both orders;
// reader_test.go covers a big-endian input only.
func (r *Reader) Fixed16_16(offset uint32) (float64, error) {
    raw, err := r.Uint32(offset)
    if err != nil {
        return 0, err
    }
    hi := int16(raw >> 16)
    lo := uint16(raw & 0xffff)
    return float64(hi) + float64(lo)/65536.0, nil
}

// Sequential returns a SeqReader over the receiver starting at offset 0.
func (r *Reader) Sequential() *SeqReader {
    return &SeqReader{r: r}
}
