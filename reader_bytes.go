package objgen

import "io"

// BytesReader reads from a byte slice and exposes its position, so the
// bytes left after a decode can be inspected without copying.
type BytesReader struct {
	B []byte // source slice
	N int    // current read position
}

func NewBytesReader(b []byte) *BytesReader {
	return &BytesReader{B: b}
}

// Read implements io.Reader.
func (r *BytesReader) Read(p []byte) (int, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	n := copy(p, r.B[r.N:])
	r.N += n
	return n, nil
}

// ReadByte implements io.ByteReader.
func (r *BytesReader) ReadByte() (byte, error) {
	if r.N >= len(r.B) {
		return 0, io.EOF
	}
	b := r.B[r.N]
	r.N++
	return b, nil
}

// Remaining returns the unread part of the slice.
func (r *BytesReader) Remaining() []byte {
	return r.B[min(r.N, len(r.B)):]
}
