package objgen

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// source is what a Reader pulls bytes from.
type source interface {
	io.Reader
	io.ByteReader
}

// minBufferSize is the smallest read buffer NewReaderSize accepts.
const minBufferSize = 16

// Reader decodes the fixed-layout primitives of an object's binary form.
// The first error is latched and every later read is a no-op, so decoding
// code can check Err once after a run of reads.
type Reader struct {
	src     source
	count   int64
	err     error
	order   binary.ByteOrder
	scratch [8]byte
}

var _ source = (*Reader)(nil)

// NewReaderSize wraps r for decoding.
//
// In-memory and already buffered sources are read directly. Any other
// source is read one request at a time when size is zero, which never
// consumes past the last byte decoded, or through a bufio.Reader of the
// given size otherwise.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	switch src := r.(type) {
	case *Reader:
		return &Reader{src: src.src, count: src.count, order: src.order}, nil
	case *bufio.Reader:
		if size > 0 && src.Size() < size {
			return nil, ErrAlreadyBuffered
		}
		return &Reader{src: src, order: Order}, nil
	case source:
		return &Reader{src: src, order: Order}, nil
	}

	switch {
	case size == 0:
		return &Reader{src: &byteAtATime{r: r}, order: Order}, nil
	case size < minBufferSize:
		return nil, ErrSizeTooSmall
	}
	return &Reader{src: bufio.NewReaderSize(r, size), order: Order}, nil
}

// NewReader wraps r without adding a buffer.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, 0)
}

// WithByteOrder overrides the package default Order.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }
func (r *Reader) IsEOF() bool  { return r.err == io.EOF }

func (r *Reader) setError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

// Fail latches err unless an earlier error is already recorded.
// Load code uses it to report malformed field data.
func (r *Reader) Fail(err error) {
	r.setError(err)
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.src.Read(p)
	r.count += int64(n)
	r.setError(err)
	return n, r.err
}

// ReadByte implements io.ByteReader.
func (r *Reader) ReadByte() (byte, error) {
	if r.err != nil {
		return 0, r.err
	}
	b, err := r.src.ReadByte()
	if err != nil {
		r.err = err
		return 0, err
	}
	r.count++
	return b, nil
}

// fill reads exactly len(p) bytes. A short read is io.ErrUnexpectedEOF,
// an empty one at the end of the source is io.EOF.
func (r *Reader) fill(p []byte) bool {
	if r.err != nil {
		return false
	}
	if len(p) == 0 {
		return true
	}
	n, err := io.ReadFull(r.src, p)
	r.count += int64(n)
	r.setError(err)
	return r.err == nil
}

func (r *Reader) fixed(n int) []byte {
	if !r.fill(r.scratch[:n]) {
		return nil
	}
	return r.scratch[:n]
}

// ReadBytes reads n bytes into a new slice.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	buf := make([]byte, n)
	if !r.fill(buf) {
		return nil
	}
	return buf
}

// ReadString reads n bytes as a string.
func (r *Reader) ReadString(n int) string {
	return string(r.ReadBytes(n))
}

// ReadBytesTo fills dest completely.
func (r *Reader) ReadBytesTo(dest []byte) {
	r.fill(dest)
}

func (r *Reader) ReadBool(dest *bool) {
	if b := r.fixed(1); b != nil {
		*dest = b[0] != 0
	}
}

func (r *Reader) ReadUint8(dest *uint8) {
	if b := r.fixed(1); b != nil {
		*dest = b[0]
	}
}

func (r *Reader) ReadInt8(dest *int8) {
	if b := r.fixed(1); b != nil {
		*dest = int8(b[0])
	}
}

func (r *Reader) ReadUint16(dest *uint16) {
	if b := r.fixed(2); b != nil {
		*dest = r.order.Uint16(b)
	}
}

func (r *Reader) ReadInt16(dest *int16) {
	if b := r.fixed(2); b != nil {
		*dest = int16(r.order.Uint16(b))
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	if b := r.fixed(4); b != nil {
		*dest = r.order.Uint32(b)
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	if b := r.fixed(4); b != nil {
		*dest = int32(r.order.Uint32(b))
	}
}

func (r *Reader) ReadUint64(dest *uint64) {
	if b := r.fixed(8); b != nil {
		*dest = r.order.Uint64(b)
	}
}

func (r *Reader) ReadInt64(dest *int64) {
	if b := r.fixed(8); b != nil {
		*dest = int64(r.order.Uint64(b))
	}
}

func (r *Reader) ReadFloat32(dest *float32) {
	if b := r.fixed(4); b != nil {
		*dest = math.Float32frombits(r.order.Uint32(b))
	}
}

func (r *Reader) ReadFloat64(dest *float64) {
	if b := r.fixed(8); b != nil {
		*dest = math.Float64frombits(r.order.Uint64(b))
	}
}
