package objgen

import (
	"encoding/binary"
	"fmt"
	"io"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is the default byte order of objects and packets.
	Order binary.ByteOrder = LE
)

// MaxPadding is the most trailing bytes CheckTrailingZeros inspects.
// Anything longer is not padding.
const MaxPadding = 1024

// CheckZeros verifies that every byte of b is zero.
func CheckZeros(b []byte) error {
	if len(b) > MaxPadding {
		return fmt.Errorf("%w: %d bytes exceed the %d byte padding limit", ErrTrailingData, len(b), MaxPadding)
	}
	for i, c := range b {
		if c != 0 {
			return fmt.Errorf("%w: non-zero byte 0x%02x at offset %d", ErrTrailingData, c, i)
		}
	}
	return nil
}

// CheckTrailingZeros verifies that whatever is left in r is zero padding.
func CheckTrailingZeros(r io.Reader) error {
	if br, ok := r.(*BytesReader); ok {
		return CheckZeros(br.Remaining())
	}
	rest, err := io.ReadAll(io.LimitReader(r, MaxPadding+1))
	if err != nil {
		return err
	}
	return CheckZeros(rest)
}
