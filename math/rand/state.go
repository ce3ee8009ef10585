package rand

import (
	"encoding/binary"

	"lukechampine.com/uint128"
)

// Snapshots are the concatenation of a family's words in declaration order,
// each little-endian at its native width (128-bit words as Lo then Hi),
// followed by its cursors as little-endian uint32 values. Every family type
// documents its own layout.

type stateWriter struct {
	buf []byte
}

func (w *stateWriter) u32(xs ...uint32) {
	for _, x := range xs {
		w.buf = binary.LittleEndian.AppendUint32(w.buf, x)
	}
}

func (w *stateWriter) u64(xs ...uint64) {
	for _, x := range xs {
		w.buf = binary.LittleEndian.AppendUint64(w.buf, x)
	}
}

func (w *stateWriter) u128(xs ...uint128.Uint128) {
	for _, x := range xs {
		w.u64(x.Lo, x.Hi)
	}
}

func (w *stateWriter) cursor(i int) {
	w.u32(uint32(i))
}

// stateReader decodes a snapshot. The first failure sticks in err and every
// later read becomes a no-op, so callers check err once at the end.
type stateReader struct {
	buf []byte
	err error
}

func (r *stateReader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf) < n {
		r.err = invalidState("snapshot truncated")
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func (r *stateReader) u32(p *uint32) {
	if b := r.take(4); b != nil {
		*p = binary.LittleEndian.Uint32(b)
	}
}

func (r *stateReader) u32s(dst []uint32) {
	for i := range dst {
		r.u32(&dst[i])
	}
}

func (r *stateReader) u64(p *uint64) {
	if b := r.take(8); b != nil {
		*p = binary.LittleEndian.Uint64(b)
	}
}

func (r *stateReader) u64s(dst []uint64) {
	for i := range dst {
		r.u64(&dst[i])
	}
}

func (r *stateReader) u128(p *uint128.Uint128) {
	var lo, hi uint64
	r.u64(&lo)
	r.u64(&hi)
	if r.err == nil {
		*p = uint128.New(lo, hi)
	}
}

// cursor reads an index that must lie in [0, limit).
func (r *stateReader) cursor(limit int) int {
	var c uint32
	r.u32(&c)
	if r.err == nil && int64(c) >= int64(limit) {
		r.err = invalidState("cursor %d out of range [0, %d)", c, limit)
		return 0
	}
	return int(c)
}

// finish reports trailing bytes as an error.
func (r *stateReader) finish() error {
	if r.err == nil && len(r.buf) != 0 {
		r.err = invalidState("%d trailing bytes in snapshot", len(r.buf))
	}
	return r.err
}
