package objgen

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
)

// sink is what a Writer pushes bytes to.
type sink interface {
	io.Writer
	io.ByteWriter
}

type flusher interface {
	Flush() error
}

// Writer encodes the fixed-layout primitives of an object's binary form.
// The first error is latched and every later write is a no-op.
type Writer struct {
	dst     sink
	count   int64
	err     error
	order   binary.ByteOrder
	scratch [8]byte
	// nested writers share a parent's sink and leave flushing to it.
	nested bool
}

var _ sink = (*Writer)(nil)

// NewWriterSize wraps w for encoding.
//
// In-memory sinks and packets are written directly. A *Writer or a
// *bufio.Writer is shared and never flushed by the new Writer. Any other
// io.Writer is buffered with the given size and must be flushed with
// Flush or Result.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	switch dst := w.(type) {
	case *Writer:
		return &Writer{dst: dst.dst, order: dst.order, nested: true}, nil
	case *bufio.Writer:
		if size > 0 && dst.Size() < size {
			return nil, ErrAlreadyBuffered
		}
		return &Writer{dst: dst, order: Order, nested: true}, nil
	case sink:
		return &Writer{dst: dst, order: Order}, nil
	}
	return &Writer{dst: bufio.NewWriterSize(w, size), order: Order}, nil
}

// NewWriter wraps w with the default buffer size.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, 0)
}

// WithByteOrder overrides the package default Order.
func (w *Writer) WithByteOrder(order binary.ByteOrder) *Writer {
	w.order = order
	return w
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

// Fail latches err unless an earlier error is already recorded.
// Save code uses it to report fields that cannot be encoded.
func (w *Writer) Fail(err error) {
	w.setError(err)
}

// Flush pushes buffered bytes to the wrapped io.Writer. It is a no-op for
// nested writers and unbuffered sinks.
func (w *Writer) Flush() error {
	if w.nested || w.err != nil {
		return w.err
	}
	if f, ok := w.dst.(flusher); ok {
		w.setError(f.Flush())
	}
	return w.err
}

// Result flushes and reports the bytes written along with the latched error.
func (w *Writer) Result() (int64, error) {
	_ = w.Flush()
	return w.count, w.err
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.dst.Write(p)
	w.count += int64(n)
	w.setError(err)
	return n, w.err
}

// WriteString writes the bytes of s.
func (w *Writer) WriteString(s string) (int, error) {
	if s == "" || w.err != nil {
		return 0, w.err
	}
	if sw, ok := w.dst.(io.StringWriter); ok {
		n, err := sw.WriteString(s)
		w.count += int64(n)
		w.setError(err)
		return n, w.err
	}
	return w.Write([]byte(s))
}

// WriteByte implements io.ByteWriter.
func (w *Writer) WriteByte(c byte) error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.WriteByte(c); err != nil {
		w.err = err
		return err
	}
	w.count++
	return nil
}

// WriteBytes writes p as is.
func (w *Writer) WriteBytes(p []byte) {
	if len(p) == 0 {
		return
	}
	_, _ = w.Write(p)
}

func (w *Writer) WriteBool(v bool) {
	if v {
		_ = w.WriteByte(1)
	} else {
		_ = w.WriteByte(0)
	}
}

func (w *Writer) WriteUint8(v uint8) { _ = w.WriteByte(v) }
func (w *Writer) WriteInt8(v int8)   { _ = w.WriteByte(uint8(v)) }

func (w *Writer) WriteUint16(v uint16) {
	w.order.PutUint16(w.scratch[:2], v)
	_, _ = w.Write(w.scratch[:2])
}

func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

func (w *Writer) WriteUint32(v uint32) {
	w.order.PutUint32(w.scratch[:4], v)
	_, _ = w.Write(w.scratch[:4])
}

func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

func (w *Writer) WriteUint64(v uint64) {
	w.order.PutUint64(w.scratch[:8], v)
	_, _ = w.Write(w.scratch[:8])
}

func (w *Writer) WriteInt64(v int64)     { w.WriteUint64(uint64(v)) }
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }
