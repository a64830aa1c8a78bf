package bytereader

import "github.com/jrm-1535/tiffmeta/ifderr"

// SeqReader wraps a Reader with a cursor, advancing after every read. It is
// the sequential counterpart to Reader's random-access operations; both
// share the same underlying buffer.
type SeqReader struct {
    r   *Reader
    pos uint32
}

func (s *SeqReader) Pos() uint32 { return s.pos }

// IsCloserToEnd reports whether fewer than n bytes remain after the cursor.
func (s *SeqReader) IsCloserToEnd(n uint32) bool {
    return s.r.Len()-s.pos < n
}

// Skip advances the cursor by n bytes, failing if that runs past the end of
// the underlying buffer.
func (s *SeqReader) Skip(n uint32) error {
    if s.IsCloserToEnd(n) {
        return ifderr.Newf(ifderr.IOTruncated, "cannot skip %d bytes at position %d", n, s.pos)
    }
    s.pos += n
    return nil
}

// TrySkip advances the cursor by n bytes and reports whether it succeeded;
// on failure the cursor is left unchanged.
func (s *SeqReader) TrySkip(n uint32) bool {
    if s.IsCloserToEnd(n) {
        return false
    }
    s.pos += n
    return true
}

func (s *SeqReader) Uint8() (uint8, error) {
    v, err := s.r.Uint8(s.pos)
    if err == nil {
        s.pos++
    }
    return v, err
}

func (s *SeqReader) Int8() (int8, error) {
    v, err := s.r.Int8(s.pos)
    if err == nil {
        s.pos++
    }
    return v, err
}

func (s *SeqReader) Uint16() (uint16, error) {
    v, err := s.r.Uint16(s.pos)
    if err == nil {
        s.pos += 2
    }
    return v, err
}

func (s *SeqReader) Int16() (int16, error) {
    v, err := s.r.Int16(s.pos)
    if err == nil {
        s.pos += 2
    }
    return v, err
}

func (s *SeqReader) Uint32() (uint32, error) {
    v, err := s.r.Uint32(s.pos)
    if err == nil {
        s.pos += 4
    }
    return v, err
}

func (s *SeqReader) Int32() (int32, error) {
    v, err := s.r.Int32(s.pos)
    if err == nil {
        s.pos += 4
    }
    return v, err
}

func (s *SeqReader) Uint64() (uint64, error) {
    v, err := s.r.Uint64(s.pos)
    if err == nil {
        s.pos += 8
    }
    return v, err
}

func (s *SeqReader) Int64() (int64, error) {
    v, err := s.r.Int64(s.pos)
    if err == nil {
        s.pos += 8
    }
    return v, err
}

func (s *SeqReader) Bytes(count uint32) ([]byte, error) {
    b, err := s.r.Bytes(s.pos, count)
    if err == nil {
        s.pos += count
    }
    return b, err
}

func (s *SeqReader) String(count uint32, enc StringEncoding) (string, error) {
    str, err := s.r.String(s.pos, count, enc)
    if err == nil {
        s.pos += count
    }
    return str, err
}

func (s *SeqReader) NullTerminated(max uint32) ([]byte, error) {
    b, err := s.r.NullTerminated(s.pos, max)
    if err != nil {
        return nil, err
    }
    s.pos += uint32(len(b))
    if uint32(len(b)) < max {
        s.pos++ // consume the trailing NUL itself when present
    }
    return b, nil
}
