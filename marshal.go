package objgen

import "bytes"

// Marshal returns the stream form of obj as a new byte slice.
func Marshal(obj Object, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Save(&buf, obj, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal loads obj from data written by Marshal. Trailing bytes after the
// object must be zero padding.
func Unmarshal(data []byte, obj Object, opts ...Option) error {
	o := newOptions(false, opts)
	br := NewBytesReader(data)
	rd, err := NewReader(br)
	if err != nil {
		return err
	}
	if err := load(rd, obj, o.flat); err != nil {
		return err
	}
	return CheckTrailingZeros(br)
}

// MarshalTo writes the stream form of obj into dst without allocating and
// returns the number of bytes used. A dst too small fails with
// io.ErrShortWrite.
func MarshalTo(dst []byte, obj Object, opts ...Option) (int, error) {
	bw := NewBytesWriter(dst)
	if err := Save(bw, obj, opts...); err != nil {
		return bw.Len(), err
	}
	return bw.Len(), nil
}
