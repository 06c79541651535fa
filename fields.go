package objgen

import (
	"reflect"

	"github.com/google/uuid"
)

// Reference markers written ahead of every reference field.
const (
	refAbsent  uint8 = 0
	refPresent uint8 = 1
)

// WriteString writes s with its length taken out into the dynamic size list.
func WriteString(out *OutStream, s string) error {
	if err := out.PushSize(len(s)); err != nil {
		return err
	}
	_, _ = out.Stream.WriteString(s)
	return out.Err()
}

// ReadString reads a string written by WriteString.
func ReadString(in *InStream) (string, error) {
	n, err := in.PopSize()
	if err != nil {
		return "", err
	}
	s := in.Stream.ReadString(int(n))
	return s, in.Err()
}

// WriteList writes the element count into the dynamic size list, then every
// element in order through write.
func WriteList[T any](out *OutStream, items []T, write func(*OutStream, T) error) error {
	if err := out.PushSize(len(items)); err != nil {
		return err
	}
	for _, item := range items {
		if err := write(out, item); err != nil {
			return err
		}
	}
	return out.Err()
}

// ReadList reads a list written by WriteList.
func ReadList[T any](in *InStream, read func(*InStream) (T, error)) ([]T, error) {
	n, err := in.PopSize()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, in.Err()
	}
	items := make([]T, 0, n)
	for i := 0; i < int(n); i++ {
		item, err := read(in)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, in.Err()
}

// WriteRef writes a reference field. Persistent targets are written as their
// UUID, followed by their fields unless the pass is flat. Other targets are
// always embedded.
func WriteRef[T Object](out *OutStream, ref T) error {
	if isNilObject(ref) {
		out.Stream.WriteUint8(refAbsent)
		return out.Err()
	}
	out.Stream.WriteUint8(refPresent)
	if p, ok := any(ref).(Persistent); ok {
		id := p.UUID()
		out.Stream.WriteBytes(id[:])
		if out.Flat {
			return out.Err()
		}
	}
	if err := ref.Save(out); err != nil {
		return err
	}
	return out.Err()
}

// ReadRef reads a reference written by WriteRef, building the target with
// factory. A flat pass restores only the identity of persistent targets.
func ReadRef[T Object](in *InStream, factory func() T) (T, error) {
	var zero T
	var marker uint8
	in.Stream.ReadUint8(&marker)
	if err := in.Err(); err != nil {
		return zero, err
	}
	switch marker {
	case refAbsent:
		return zero, nil
	case refPresent:
	default:
		in.Stream.Fail(ErrInvalidPresence)
		return zero, ErrInvalidPresence
	}

	obj := factory()
	if p, ok := any(obj).(Persistent); ok {
		var id uuid.UUID
		in.Stream.ReadBytesTo(id[:])
		if err := in.Err(); err != nil {
			return zero, err
		}
		p.SetUUID(id)
		if in.Flat {
			return obj, nil
		}
	}
	if err := obj.Load(in); err != nil {
		return zero, err
	}
	return obj, in.Err()
}

// isNilObject reports whether obj is nil or wraps a nil pointer.
func isNilObject(obj Object) bool {
	if obj == nil {
		return true
	}
	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return v.IsNil()
	}
	return false
}
