package objgen

import (
	"fmt"
	"io"
)

// maxBatchPrealloc bounds the slice allocated up front from an untrusted count.
const maxBatchPrealloc = 1024

// SaveBinaryData writes objs as a count-prefixed batch:
//
//	[count: u32][obj_1]..[obj_count]
//
// Every object is written in its nested stream form. The batch is
// homogeneous: no type tag is written per element.
func SaveBinaryData[T Object](w io.Writer, objs []T) error {
	wr, err := NewWriter(w)
	if err != nil {
		return err
	}
	wr.WriteUint32(uint32(len(objs)))
	for i, obj := range objs {
		if isNilObject(obj) {
			return fmt.Errorf("objgen: batch element %d: %w", i, ErrNilObject)
		}
		if err := save(wr, obj, false); err != nil {
			return fmt.Errorf("objgen: batch element %d: %w", i, err)
		}
	}
	_, err = wr.Result()
	return err
}

// LoadBinaryData reads a batch written by SaveBinaryData, calling factory
// once per element for an empty instance to load into. If any element fails
// the whole batch fails and no objects are returned.
func LoadBinaryData[T Object](r io.Reader, factory func() T) ([]T, error) {
	rd, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	var count uint32
	rd.ReadUint32(&count)
	if err := rd.Err(); err != nil {
		return nil, fmt.Errorf("%w: batch count: %w", ErrTruncatedData, err)
	}

	objs := make([]T, 0, min(count, maxBatchPrealloc))
	for i := uint32(0); i < count; i++ {
		obj := factory()
		if err := load(rd, obj, false); err != nil {
			return nil, fmt.Errorf("objgen: batch element %d: %w", i, err)
		}
		objs = append(objs, obj)
	}
	return objs, nil
}
