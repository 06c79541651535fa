package objgen

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MaxPacketSize is the largest payload a Packet holds.
const MaxPacketSize = 16384

// Packet is a length-aware byte buffer exchanged over the network.
// Reads and writes share one position, so a packet is normally filled
// first, then rewound and read back.
type Packet struct {
	data []byte
	pos  int
}

var (
	_ io.ReadWriteSeeker = (*Packet)(nil)
	_ io.ByteReader      = (*Packet)(nil)
	_ io.ByteWriter      = (*Packet)(nil)
)

// NewPacket returns an empty packet.
func NewPacket() *Packet {
	return &Packet{data: make([]byte, 0, 256)}
}

// NewReadOnlyPacket returns a packet holding a copy of data, positioned at
// its start. Data longer than MaxPacketSize is rejected.
func NewReadOnlyPacket(data []byte) (*Packet, error) {
	if len(data) > MaxPacketSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, len(data))
	}
	return &Packet{data: append([]byte(nil), data...)}, nil
}

// Size returns the number of bytes held by the packet.
func (p *Packet) Size() int { return len(p.data) }

// Tell returns the current position.
func (p *Packet) Tell() int { return p.pos }

// Left returns the number of bytes between the position and the end.
func (p *Packet) Left() int { return len(p.data) - p.pos }

// Data returns the packet contents. The slice is only valid until the
// next write.
func (p *Packet) Data() []byte { return p.data }

// Rewind moves the position back to the start.
func (p *Packet) Rewind() { p.pos = 0 }

// Clear empties the packet.
func (p *Packet) Clear() {
	p.data = p.data[:0]
	p.pos = 0
}

// Skip advances the position by n bytes.
func (p *Packet) Skip(n int) error {
	if n < 0 || n > p.Left() {
		return fmt.Errorf("%w: skip %d with %d left", ErrTruncatedData, n, p.Left())
	}
	p.pos += n
	return nil
}

// Seek implements io.Seeker within the bounds of the packet.
func (p *Packet) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(p.pos) + offset
	case io.SeekEnd:
		abs = int64(len(p.data)) + offset
	default:
		return int64(p.pos), ErrInvalidWhence
	}
	if abs < 0 || abs > int64(len(p.data)) {
		return int64(p.pos), ErrInvalidSeek
	}
	p.pos = int(abs)
	return abs, nil
}

// Write writes b at the position, growing the packet as needed. A write
// that would exceed MaxPacketSize writes nothing.
func (p *Packet) Write(b []byte) (int, error) {
	end := p.pos + len(b)
	if end > MaxPacketSize {
		return 0, fmt.Errorf("%w: %d bytes", ErrPacketOverflow, end)
	}
	if end > len(p.data) {
		p.data = append(p.data, make([]byte, end-len(p.data))...)
	}
	copy(p.data[p.pos:], b)
	p.pos = end
	return len(b), nil
}

func (p *Packet) WriteByte(c byte) error {
	_, err := p.Write([]byte{c})
	return err
}

func (p *Packet) WriteU16Little(v uint16) error {
	return p.writeOrdered(binary.LittleEndian.AppendUint16(nil, v))
}

func (p *Packet) WriteU32Little(v uint32) error {
	return p.writeOrdered(binary.LittleEndian.AppendUint32(nil, v))
}

func (p *Packet) writeOrdered(b []byte) error {
	_, err := p.Write(b)
	return err
}

// Read implements io.Reader from the position.
func (p *Packet) Read(b []byte) (int, error) {
	if p.pos >= len(p.data) {
		return 0, io.EOF
	}
	n := copy(b, p.data[p.pos:])
	p.pos += n
	return n, nil
}

func (p *Packet) ReadByte() (byte, error) {
	if p.pos >= len(p.data) {
		return 0, io.EOF
	}
	c := p.data[p.pos]
	p.pos++
	return c, nil
}

func (p *Packet) ReadU16Little() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(p, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func (p *Packet) ReadU32Little() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(p, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// WriteFrame writes the packet to w as a length-prefixed frame:
// a little-endian u32 byte count followed by the packet data.
func (p *Packet) WriteFrame(w io.Writer) (int64, error) {
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(p.data)))
	n, err := w.Write(header[:])
	if err != nil {
		return int64(n), fmt.Errorf("objgen: write frame header: %w", err)
	}
	m, err := w.Write(p.data)
	if err != nil {
		return int64(n + m), fmt.Errorf("objgen: write frame body: %w", err)
	}
	return int64(n + m), nil
}

// ReadPacket reads one frame written by WriteFrame.
func ReadPacket(r io.Reader) (*Packet, error) {
	var header [4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("objgen: read frame header: %w", err)
	}
	length := binary.LittleEndian.Uint32(header[:])
	if length > MaxPacketSize {
		return nil, fmt.Errorf("%w: frame of %d bytes", ErrPacketTooLarge, length)
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: read frame body: %w", ErrTruncatedData, err)
	}
	return &Packet{data: data}, nil
}

// truncate drops everything past size and moves the position to pos.
func (p *Packet) truncate(size, pos int) {
	p.data = p.data[:size]
	p.pos = pos
}
