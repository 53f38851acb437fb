package wld

import (
	"encoding/binary"
	"fmt"
	"math"
)

// reader is a bounds-checked little-endian cursor over a fragment body.
// The first short read latches an error and every later read returns a
// zero value, so codecs can run straight through their field lists and
// check err once at the end. Loops driven by counts read from the body
// must test ok so a hostile count cannot spin past the end of the buffer.
type reader struct {
	buf  []byte
	off  int
	fail error
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

func (r *reader) ok() bool { return r.fail == nil }

func (r *reader) err() error { return r.fail }

func (r *reader) remaining() int { return len(r.buf) - r.off }

// take returns the next n bytes without copying, or latches ErrTruncated.
func (r *reader) take(n int) []byte {
	if r.fail != nil {
		return nil
	}
	if n < 0 || n > len(r.buf)-r.off {
		r.fail = fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrTruncated, n, r.off, len(r.buf)-r.off)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *reader) i8() int8 { return int8(r.u8()) }

func (r *reader) u16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *reader) i16() int16 { return int16(r.u16()) }

func (r *reader) u32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *reader) i32() int32 { return int32(r.u32()) }

func (r *reader) f32() float32 { return math.Float32frombits(r.u32()) }

func (r *reader) vec2() [2]float32 { return [2]float32{r.f32(), r.f32()} }

func (r *reader) vec3() [3]float32 { return [3]float32{r.f32(), r.f32(), r.f32()} }

// bytes copies out the next n bytes.
func (r *reader) bytes(n int) []byte {
	b := r.take(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// rest copies out everything left in the body and leaves the cursor at the
// end. Codecs use it for trailing blobs whose length is not declared.
func (r *reader) rest() []byte {
	return r.bytes(len(r.buf) - r.off)
}

// count validates an element count read from the body against the bytes
// actually remaining, so a hostile count fails before any allocation.
// elemSize is the minimum encoded size of one element.
func (r *reader) count(n uint32, elemSize int) int {
	if r.fail != nil {
		return 0
	}
	if int64(n)*int64(elemSize) > int64(len(r.buf)-r.off) {
		r.fail = fmt.Errorf("%w: %d elements of %d bytes at offset %d, have %d",
			ErrTruncated, n, elemSize, r.off, len(r.buf)-r.off)
		return 0
	}
	return int(n)
}

func (r *reader) u32s(n uint32) []uint32 {
	c := r.count(n, 4)
	if c == 0 {
		return nil
	}
	out := make([]uint32, c)
	for i := range out {
		out[i] = r.u32()
	}
	return out
}

func (r *reader) f32s(n uint32) []float32 {
	c := r.count(n, 4)
	if c == 0 {
		return nil
	}
	out := make([]float32, c)
	for i := range out {
		out[i] = r.f32()
	}
	return out
}

// writer accumulates a little-endian fragment body. Only string
// transcoding can fail; the first failure latches and finish reports it.
type writer struct {
	buf  []byte
	fail error
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 64)}
}

func (w *writer) u8(v uint8) { w.buf = append(w.buf, v) }

func (w *writer) i8(v int8) { w.u8(uint8(v)) }

func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }

func (w *writer) i16(v int16) { w.u16(uint16(v)) }

func (w *writer) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *writer) i32(v int32) { w.u32(uint32(v)) }

func (w *writer) f32(v float32) { w.u32(math.Float32bits(v)) }

func (w *writer) vec2(v [2]float32) {
	w.f32(v[0])
	w.f32(v[1])
}

func (w *writer) vec3(v [3]float32) {
	w.f32(v[0])
	w.f32(v[1])
	w.f32(v[2])
}

func (w *writer) bytes(b []byte) { w.buf = append(w.buf, b...) }

func (w *writer) u32s(vs []uint32) {
	for _, v := range vs {
		w.u32(v)
	}
}

func (w *writer) f32s(vs []float32) {
	for _, v := range vs {
		w.f32(v)
	}
}

func (w *writer) finish() ([]byte, error) {
	if w.fail != nil {
		return nil, w.fail
	}
	return w.buf, nil
}

// pad4 returns the number of zero bytes needed to bring n up to a
// multiple of four.
func pad4(n int) int { return (4 - n%4) % 4 }
