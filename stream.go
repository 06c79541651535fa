package objgen

import (
	"fmt"
	"io"
	"math"
)

// InStream pairs a byte stream with the dynamic sizes of the collection
// fields it carries. Sizes are consumed in field declaration order.
type InStream struct {
	// Stream carries the fixed-layout field data.
	Stream *Reader
	// DynamicSizes holds the sizes not yet consumed by the pass.
	DynamicSizes []uint16
	// Flat reports whether references to persistent objects carry only
	// their identity.
	Flat bool
}

// NewInStream wraps r with an empty dynamic size list.
// The caller keeps ownership of r.
func NewInStream(r io.Reader) (*InStream, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	return &InStream{Stream: rd}, nil
}

// PopSize consumes the next dynamic size.
func (in *InStream) PopSize() (uint16, error) {
	if len(in.DynamicSizes) == 0 {
		in.Stream.Fail(ErrSizeListUnderflow)
		return 0, ErrSizeListUnderflow
	}
	size := in.DynamicSizes[0]
	in.DynamicSizes = in.DynamicSizes[1:]
	return size, nil
}

// Err returns the first error recorded by the pass.
func (in *InStream) Err() error {
	return in.Stream.Err()
}

// OutStream pairs a byte stream with the dynamic sizes of the collection
// fields written to it. Sizes are appended in field declaration order.
type OutStream struct {
	// Stream receives the fixed-layout field data.
	Stream *Writer
	// DynamicSizes collects one size per collection field written.
	DynamicSizes []uint16
	// Flat reports whether references to persistent objects are written
	// as their identity only.
	Flat bool
}

// NewOutStream wraps w with an empty dynamic size list.
// The caller keeps ownership of w and must Flush before using its contents.
func NewOutStream(w io.Writer) (*OutStream, error) {
	wr, err := NewWriter(w)
	if err != nil {
		return nil, err
	}
	return &OutStream{Stream: wr}, nil
}

// PushSize records the size of a variable-length field.
func (out *OutStream) PushSize(n int) error {
	if n < 0 || n > math.MaxUint16 {
		err := fmt.Errorf("%w: %d", ErrSizeOverflow, n)
		out.Stream.Fail(err)
		return err
	}
	out.DynamicSizes = append(out.DynamicSizes, uint16(n))
	return nil
}

// Flush pushes buffered field data to the wrapped stream.
func (out *OutStream) Flush() error {
	return out.Stream.Flush()
}

// Err returns the first error recorded by the pass.
func (out *OutStream) Err() error {
	return out.Stream.Err()
}
