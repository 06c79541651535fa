package objgen

import "io"

// byteAtATime gives a plain io.Reader the io.ByteReader a Reader needs
// without buffering ahead of what has been decoded.
type byteAtATime struct {
	r   io.Reader
	one [1]byte
}

func (b *byteAtATime) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b *byteAtATime) ReadByte() (byte, error) {
	if _, err := io.ReadFull(b.r, b.one[:]); err != nil {
		return 0, err
	}
	return b.one[0], nil
}
