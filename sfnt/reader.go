// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// reader is the Binary Reader: a cursor over an in-memory font stream
// decoding big-endian primitives and the two fixed-point formats the
// rest of this package needs. It generalizes the teacher's data
// []byte + u8/u16/u32 idiom with signed and wide reads and an
// absolute Seek, both of which the hinting tables (cvt, name, hdmx)
// require.
type reader struct {
	b   []byte
	pos int
}

func newReader(b []byte) *reader { return &reader{b: b} }

func (r *reader) remaining() int { return len(r.b) - r.pos }

func (r *reader) seek(pos int) error {
	if pos < 0 || pos > len(r.b) {
		return MalformedDataError("seek out of range")
	}
	r.pos = pos
	return nil
}

func (r *reader) need(n int) error {
	if n < 0 || r.remaining() < n {
		return MalformedDataError("short read")
	}
	return nil
}

func (r *reader) skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

func (r *reader) u8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.b[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) i8() (int8, error) {
	v, err := r.u8()
	return int8(v), err
}

func (r *reader) u16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := uint16(r.b[r.pos])<<8 | uint16(r.b[r.pos+1])
	r.pos += 2
	return v, nil
}

func (r *reader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *reader) u32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := uint32(r.b[r.pos])<<24 | uint32(r.b[r.pos+1])<<16 | uint32(r.b[r.pos+2])<<8 | uint32(r.b[r.pos+3])
	r.pos += 4
	return v, nil
}

func (r *reader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

func (r *reader) u64() (uint64, error) {
	hi, err := r.u32()
	if err != nil {
		return 0, err
	}
	lo, err := r.u32()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (r *reader) tag() (string, error) {
	if err := r.need(4); err != nil {
		return "", err
	}
	s := string(r.b[r.pos : r.pos+4])
	r.pos += 4
	return s, nil
}

// f2dot14 reads a 16-bit 2.14 fixed-point number.
func (r *reader) f2dot14() (F2Dot14, error) {
	v, err := r.i16()
	return F2Dot14(v), err
}

// f16dot16AsF26dot6 reads a 32-bit 16.16 fixed-point value and
// converts it to the VM's F26Dot6 by dropping its 10 lowest fraction
// bits.
func (r *reader) f16dot16AsF26dot6() (F26Dot6, error) {
	v, err := r.i32()
	if err != nil {
		return 0, err
	}
	return F26Dot6(v >> 10), nil
}

// bytes returns a sub-slice [pos, pos+n) without copying, advancing
// the cursor past it.
func (r *reader) bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.b[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}
