package collection

import (
	"encoding/binary"
	"errors"

	"github.com/MercuryProtocol-labs/collection/pkg/types"
)

// errTruncatedData is returned when a record or instruction payload ends
// before its declared fields do.
var errTruncatedData = errors.New("truncated data")

// borshWriter accumulates the borsh wire form of a record: integers
// little-endian, strings and vectors length-prefixed with a u32, options
// tagged with a single byte.
type borshWriter struct {
	buf []byte
}

func (w *borshWriter) writeU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *borshWriter) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *borshWriter) writeU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func (w *borshWriter) writeString(s string) {
	w.writeU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *borshWriter) writePubkey(pk types.Pubkey) {
	w.buf = append(w.buf, pk[:]...)
}

func (w *borshWriter) writeStringOption(s *string) {
	if s == nil {
		w.writeU8(0)
		return
	}
	w.writeU8(1)
	w.writeString(*s)
}

func (w *borshWriter) writeStringVecOption(v *[]string) {
	if v == nil {
		w.writeU8(0)
		return
	}
	w.writeU8(1)
	w.writeU32(uint32(len(*v)))
	for _, s := range *v {
		w.writeString(s)
	}
}

// borshReader consumes the borsh wire form field by field. The first
// short read sticks: every later read returns a zero value, and the
// caller checks err() once after the last field. Trailing bytes beyond
// the final field are ignored.
type borshReader struct {
	data []byte
	pos  int
	bad  bool
}

func (r *borshReader) err() error {
	if r.bad {
		return errTruncatedData
	}
	return nil
}

func (r *borshReader) take(n int) []byte {
	if r.bad || r.pos+n > len(r.data) {
		r.bad = true
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *borshReader) readU8() uint8 {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *borshReader) readU32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *borshReader) readU64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *borshReader) readString() string {
	n := r.readU32()
	return string(r.take(int(n)))
}

func (r *borshReader) readPubkey() types.Pubkey {
	var pk types.Pubkey
	copy(pk[:], r.take(32))
	return pk
}

func (r *borshReader) readStringOption() *string {
	if r.readU8() == 0 {
		return nil
	}
	s := r.readString()
	if r.bad {
		return nil
	}
	return &s
}

func (r *borshReader) readStringVecOption() *[]string {
	if r.readU8() == 0 {
		return nil
	}
	n := r.readU32()
	v := []string{}
	for i := uint32(0); i < n && !r.bad; i++ {
		v = append(v, r.readString())
	}
	if r.bad {
		return nil
	}
	return &v
}
