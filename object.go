package objgen

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/beevik/etree"
	"github.com/google/uuid"
)

// Object is implemented by every class built from a schema definition.
// An object can be saved to and loaded from a byte stream, a packet and an
// XML element, and the three forms describe the same field values.
type Object interface {
	// IsValid checks if the object is currently in a valid state. When
	// recursive is true, referenced objects are checked as well.
	IsValid(recursive bool) bool

	// Load reads the object's fields from a stream wrapper. Collection
	// sizes are taken from the wrapper's dynamic size list.
	Load(in *InStream) error

	// Save writes the object's fields to a stream wrapper. Collection
	// sizes are appended to the wrapper's dynamic size list.
	Save(out *OutStream) error

	// LoadXML reads the object's fields from the children of root.
	LoadXML(doc *etree.Document, root *etree.Element) error

	// SaveXML writes the object's fields as children of root.
	SaveXML(doc *etree.Document, root *etree.Element) error

	// DynamicSizeCount is the number of variable-length fields of the
	// schema, the minimum number of dynamic sizes needed to load an
	// instance.
	DynamicSizeCount() uint16
}

// Persistent is an Object with an identity of its own. Flat passes write
// references to persistent objects as the identity only.
type Persistent interface {
	Object
	UUID() uuid.UUID
	SetUUID(id uuid.UUID)
}

// PersistentObject provides the identity half of Persistent for embedding.
type PersistentObject struct {
	uuid uuid.UUID
}

// NewPersistentObject returns an identity initialized with a random UUID.
func NewPersistentObject() PersistentObject {
	return PersistentObject{uuid: uuid.New()}
}

func (p *PersistentObject) UUID() uuid.UUID      { return p.uuid }
func (p *PersistentObject) SetUUID(id uuid.UUID) { p.uuid = id }
func (p *PersistentObject) IsNull() bool         { return p.uuid == uuid.Nil }

// Option configures a stream or packet pass.
type Option func(*options)

type options struct {
	flat bool
}

// Flat selects identity-only references to persistent objects.
func Flat(flat bool) Option {
	return func(o *options) { o.flat = flat }
}

func newOptions(flat bool, opts []Option) options {
	o := options{flat: flat}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Save writes obj to w as a dynamic size header followed by the field data:
//
//	[n: u16][size_1 .. size_n: u16][payload]
//
// References are embedded in full unless Flat(true) is given.
func Save(w io.Writer, obj Object, opts ...Option) error {
	o := newOptions(false, opts)
	return saveTo(w, obj, o.flat)
}

// Load reads obj from r as written by Save. A malformed or truncated stream
// is reported as an error; obj is then left partially loaded.
func Load(r io.Reader, obj Object, opts ...Option) error {
	o := newOptions(false, opts)
	rd, err := NewReader(r)
	if err != nil {
		return err
	}
	return load(rd, obj, o.flat)
}

// SavePacket writes obj at the current position of p. Packets default to
// flat references. On failure the packet is cut back to its prior size.
func SavePacket(p *Packet, obj Object, opts ...Option) error {
	o := newOptions(true, opts)
	size, pos := p.Size(), p.Tell()
	if err := saveTo(p, obj, o.flat); err != nil {
		p.truncate(size, pos)
		return err
	}
	return nil
}

// LoadPacket reads obj from the current position of p. Packets default to
// flat references. On failure the read position of p is restored.
func LoadPacket(p *Packet, obj Object, opts ...Option) error {
	o := newOptions(true, opts)
	start := p.Tell()
	rd, err := NewReader(p)
	if err != nil {
		return err
	}
	if err := load(rd, obj, o.flat); err != nil {
		_, _ = p.Seek(int64(start), io.SeekStart)
		return err
	}
	return nil
}

func saveTo(w io.Writer, obj Object, flat bool) error {
	wr, err := NewWriter(w)
	if err != nil {
		return err
	}
	if err := save(wr, obj, flat); err != nil {
		return err
	}
	_, err = wr.Result()
	return err
}

// save stages the payload so that the dynamic size header can precede it.
func save(wr *Writer, obj Object, flat bool) error {
	if obj == nil {
		return ErrNilObject
	}

	buf := bytesBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bytesBufPool.Put(buf)

	out, err := NewOutStream(buf)
	if err != nil {
		return err
	}
	out.Flat = flat
	if err := obj.Save(out); err != nil {
		return err
	}
	if err := out.Flush(); err != nil {
		return err
	}
	if len(out.DynamicSizes) > math.MaxUint16 {
		return fmt.Errorf("%w: %d", ErrTooManySizes, len(out.DynamicSizes))
	}

	// Header and payload go out in one write so a packet either takes
	// the whole object or nothing.
	frame := bytesBufPool.Get().(*bytes.Buffer)
	frame.Reset()
	defer bytesBufPool.Put(frame)

	fw := &Writer{dst: frame, order: wr.order}
	fw.WriteUint16(uint16(len(out.DynamicSizes)))
	for _, size := range out.DynamicSizes {
		fw.WriteUint16(size)
	}
	fw.WriteBytes(buf.Bytes())
	if err := fw.Err(); err != nil {
		return err
	}

	wr.WriteBytes(frame.Bytes())
	return wr.Err()
}

func load(rd *Reader, obj Object, flat bool) error {
	if obj == nil {
		return ErrNilObject
	}

	var n uint16
	rd.ReadUint16(&n)
	if err := rd.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	if minimum := obj.DynamicSizeCount(); n < minimum {
		return fmt.Errorf("%w: got %d, need at least %d", ErrSizeCountMismatch, n, minimum)
	}

	sizes := make([]uint16, n)
	for i := range sizes {
		rd.ReadUint16(&sizes[i])
	}
	if err := rd.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}

	in := &InStream{Stream: rd, DynamicSizes: sizes, Flat: flat}
	if err := obj.Load(in); err != nil {
		return err
	}
	if err := rd.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}
	if len(in.DynamicSizes) != 0 {
		return fmt.Errorf("%w: %d left", ErrSizeListOverflow, len(in.DynamicSizes))
	}
	return nil
}
