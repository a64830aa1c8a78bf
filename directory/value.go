package directory

import "fmt"

// ValueKind identifies which alternative of the closed Value set is held.
// The set is fixed by spec.md §3: signed/unsigned 8/16/32/64-bit integers,
// 32/64-bit float, rational (signed/unsigned), raw bytes, string, a
// composite date/time, and a version triple/quad — each either a scalar or
// an array. A single-element array collapses to a scalar per spec.md §4.2
// step 8, so VArrayXxx kinds never appear with length 1.
type ValueKind int

const (
    VUint8 ValueKind = iota
    VInt8
    VUint16
    VInt16
    VUint32
    VInt32
    VUint64
    VInt64
    VFloat32
    VFloat64
    VURational
    VSRational
    VBytes
    VString
    VDateTime
    VVersion

    VArrayUint8
    VArrayInt8
    VArrayUint16
    VArrayInt16
    VArrayUint32
    VArrayInt32
    VArrayUint64
    VArrayInt64
    VArrayFloat32
    VArrayFloat64
    VArrayURational
    VArraySRational
)

// URational is an unsigned rational: numerator over denominator, both
// preserved verbatim and never normalised (spec.md §6).
type URational struct {
    Num, Den uint32
}

func (r URational) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// SRational is the signed counterpart of URational.
type SRational struct {
    Num, Den int32
}

func (r SRational) String() string { return fmt.Sprintf("%d/%d", r.Num, r.Den) }

// DateTime is a composite date/time value assembled by a vendor decoder
// (e.g. Reconyx) from discrete fields, as opposed to an EXIF ASCII
// date-time string, which is stored as VString.
type DateTime struct {
    Year, Month, Day     int
    Hour, Minute, Second int
}

// Version is a 3- or 4-part version number (e.g. assembled Reconyx
// firmware version, spec.md §4.8).
type Version struct {
    Parts []uint16
}

func (v Version) String() string {
    s := ""
    for i, p := range v.Parts {
        if i > 0 {
            s += "."
        }
        s += fmt.Sprintf("%d", p)
    }
    return s
}

// Value is a tagged union over the closed set described above. Raw holds
// the concrete Go representation; Kind says which alternative it is so
// callers needn't type-switch blind.
type Value struct {
    Kind ValueKind
    Raw  interface{}
}

func NewUint8(v uint8) Value     { return Value{VUint8, v} }
func NewInt8(v int8) Value       { return Value{VInt8, v} }
func NewUint16(v uint16) Value   { return Value{VUint16, v} }
func NewInt16(v int16) Value     { return Value{VInt16, v} }
func NewUint32(v uint32) Value   { return Value{VUint32, v} }
func NewInt32(v int32) Value     { return Value{VInt32, v} }
func NewUint64(v uint64) Value   { return Value{VUint64, v} }
func NewInt64(v int64) Value     { return Value{VInt64, v} }
func NewFloat32(v float32) Value { return Value{VFloat32, v} }
func NewFloat64(v float64) Value { return Value{VFloat64, v} }
func NewURational(v URational) Value { return Value{VURational, v} }
func NewSRational(v SRational) Value { return Value{VSRational, v} }
func NewBytes(v []byte) Value    { return Value{VBytes, v} }
func NewString(v string) Value   { return Value{VString, v} }
func NewDateTime(v DateTime) Value { return Value{VDateTime, v} }
func NewVersion(v Version) Value { return Value{VVersion, v} }

// NewUint8s builds an array value, collapsing a single-element slice to a
// scalar per spec.md §4.2 step 8.
func NewUint8s(v []uint8) Value {
    if len(v) == 1 {
        return NewUint8(v[0])
    }
    return Value{VArrayUint8, v}
}

func NewInt8s(v []int8) Value {
    if len(v) == 1 {
        return NewInt8(v[0])
    }
    return Value{VArrayInt8, v}
}

func NewUint16s(v []uint16) Value {
    if len(v) == 1 {
        return NewUint16(v[0])
    }
    return Value{VArrayUint16, v}
}

func NewInt16s(v []int16) Value {
    if len(v) == 1 {
        return NewInt16(v[0])
    }
    return Value{VArrayInt16, v}
}

func NewUint32s(v []uint32) Value {
    if len(v) == 1 {
        return NewUint32(v[0])
    }
    return Value{VArrayUint32, v}
}

func NewInt32s(v []int32) Value {
    if len(v) == 1 {
        return NewInt32(v[0])
    }
    return Value{VArrayInt32, v}
}

func NewUint64s(v []uint64) Value {
    if len(v) == 1 {
        return NewUint64(v[0])
    }
    return Value{VArrayUint64, v}
}

func NewInt64s(v []int64) Value {
    if len(v) == 1 {
        return NewInt64(v[0])
    }
    return Value{VArrayInt64, v}
}

func NewFloat32s(v []float32) Value {
    if len(v) == 1 {
        return NewFloat32(v[0])
    }
    return Value{VArrayFloat32, v}
}

func NewFloat64s(v []float64) Value {
    if len(v) == 1 {
        return NewFloat64(v[0])
    }
    return Value{VArrayFloat64, v}
}

func NewURationals(v []URational) Value {
    if len(v) == 1 {
        return NewURational(v[0])
    }
    return Value{VArrayURational, v}
}

func NewSRationals(v []SRational) Value {
    if len(v) == 1 {
        return NewSRational(v[0])
    }
    return Value{VArraySRational, v}
}

// Uint32 extracts a scalar unsigned long, widening from any unsigned
// integer scalar kind; ok is false for arrays or non-integer kinds.
func (v Value) Uint32() (uint32, bool) {
    switch v.Kind {
    case VUint8:
        return uint32(v.Raw.(uint8)), true
    case VUint16:
        return uint32(v.Raw.(uint16)), true
    case VUint32:
        return v.Raw.(uint32), true
    }
    return 0, false
}

// String extracts a VString payload; ok is false otherwise.
func (v Value) String() (string, bool) {
    if v.Kind != VString {
        return "", false
    }
    return v.Raw.(string), true
}

// Uint16Array extracts a VArrayUint16 (or the scalar form widened to a
// single-element slice), used by GeoTIFF's GeoKeyDirectory decoding.
func (v Value) Uint16Array() ([]uint16, bool) {
    switch v.Kind {
    case VArrayUint16:
        return v.Raw.([]uint16), true
    case VUint16:
        return []uint16{v.Raw.(uint16)}, true
    }
    return nil, false
}
