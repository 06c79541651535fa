package objgen

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamRoundTrip(t *testing.T) {
	for _, flat := range []bool{false, true} {
		c := sampleCharacter()
		c.Account = nil

		var buf bytes.Buffer
		require.NoError(t, Save(&buf, c, Flat(flat)))

		loaded := newCharacter()
		require.NoError(t, Load(&buf, loaded, Flat(flat)))
		assert.Equal(t, c, loaded)
		assert.Zero(t, buf.Len(), "load must consume exactly what save wrote")
	}
}

func TestNestedRoundTripEmbedsReference(t *testing.T) {
	c := sampleCharacter()
	data, err := Marshal(c)
	require.NoError(t, err)

	loaded := newCharacter()
	require.NoError(t, Unmarshal(data, loaded))
	assert.Equal(t, c, loaded)
	assert.Equal(t, c.Account.UUID(), loaded.Account.UUID())
}

func TestEncodingIsDeterministic(t *testing.T) {
	c := sampleCharacter()
	first, err := Marshal(c)
	require.NoError(t, err)
	second, err := Marshal(c)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDynamicSizeAccounting(t *testing.T) {
	c := sampleCharacter()
	c.Account = nil
	require.EqualValues(t, 3, c.DynamicSizeCount())

	var buf bytes.Buffer
	out, err := NewOutStream(&buf)
	require.NoError(t, err)
	require.NoError(t, c.Save(out))
	require.NoError(t, out.Flush())
	// Name, then the two list counts; the empty title adds its own size.
	assert.Equal(t, []uint16{6, 3, 2, 14, 0}, out.DynamicSizes)

	c.Titles = nil
	buf.Reset()
	out, err = NewOutStream(&buf)
	require.NoError(t, err)
	require.NoError(t, c.Save(out))
	require.NoError(t, out.Flush())
	require.Len(t, out.DynamicSizes, 3)

	in, err := NewInStream(&buf)
	require.NoError(t, err)
	in.DynamicSizes = append([]uint16(nil), out.DynamicSizes...)
	require.Len(t, in.DynamicSizes, 3)

	loaded := newCharacter()
	require.NoError(t, loaded.Load(in))
	assert.Empty(t, in.DynamicSizes, "every size must be consumed")
	assert.Equal(t, c.Name, loaded.Name)
	assert.Equal(t, c.Skills, loaded.Skills)
}

func TestSizeHeaderMatchesDynamicSizeCount(t *testing.T) {
	p := &profile{Level: 5, Nick: "neo", Scores: []uint32{1, 2, 3, 4}, Motto: "carpe"}
	data, err := Marshal(p)
	require.NoError(t, err)

	n := binary.LittleEndian.Uint16(data)
	require.EqualValues(t, p.DynamicSizeCount(), n)
	sizes := []uint16{
		binary.LittleEndian.Uint16(data[2:]),
		binary.LittleEndian.Uint16(data[4:]),
		binary.LittleEndian.Uint16(data[6:]),
	}
	assert.Equal(t, []uint16{3, 4, 5}, sizes)

	loaded := &profile{}
	require.NoError(t, Unmarshal(data, loaded))
	assert.Equal(t, p, loaded)

	empty := &profile{Nick: "x"}
	data, err = Marshal(empty)
	require.NoError(t, err)
	assert.EqualValues(t, 3, binary.LittleEndian.Uint16(data))
	loaded = &profile{}
	require.NoError(t, Unmarshal(data, loaded))
	assert.Equal(t, empty, loaded)
}

func TestNilListsRoundTrip(t *testing.T) {
	c := sampleCharacter()
	c.Skills, c.Titles = nil, nil
	data, err := Marshal(c)
	require.NoError(t, err)

	loaded := newCharacter()
	require.NoError(t, Unmarshal(data, loaded))
	assert.Nil(t, loaded.Skills)
	assert.Nil(t, loaded.Titles)
	assert.Equal(t, c, loaded)
}

func TestFlatReferenceCarriesIdentityOnly(t *testing.T) {
	c := sampleCharacter()

	flat, err := Marshal(c, Flat(true))
	require.NoError(t, err)
	nested, err := Marshal(c, Flat(false))
	require.NoError(t, err)
	assert.Less(t, len(flat), len(nested))

	loaded := newCharacter()
	require.NoError(t, Unmarshal(flat, loaded, Flat(true)))
	require.NotNil(t, loaded.Account)
	assert.Equal(t, c.Account.UUID(), loaded.Account.UUID())
	assert.Empty(t, loaded.Account.Name)
	assert.Zero(t, loaded.Account.Level)
	assert.Equal(t, c.Name, loaded.Name)
}

func TestNilReferenceRoundTrip(t *testing.T) {
	c := sampleCharacter()
	c.Account = nil
	data, err := Marshal(c, Flat(true))
	require.NoError(t, err)

	loaded := newCharacter()
	loaded.Account = sampleAccount()
	require.NoError(t, Unmarshal(data, loaded, Flat(true)))
	assert.Nil(t, loaded.Account)
}

func TestTruncatedLoadFails(t *testing.T) {
	for _, c := range []*character{sampleCharacter(), {Name: "x", Account: nil}} {
		data, err := Marshal(c)
		require.NoError(t, err)

		for cut := 1; cut <= len(data); cut++ {
			truncated := data[:len(data)-cut]
			err := Load(bytes.NewReader(truncated), newCharacter())
			assert.Error(t, err, "truncated by %d bytes", cut)
		}
	}
}

func TestLoadRejectsMismatchedSizes(t *testing.T) {
	c := sampleCharacter()
	c.Account = nil
	data, err := Marshal(c)
	require.NoError(t, err)

	n := int(binary.LittleEndian.Uint16(data))
	header, payload := data[2:2+2*n], data[2+2*n:]

	t.Run("UnconsumedSize", func(t *testing.T) {
		var crafted []byte
		crafted = binary.LittleEndian.AppendUint16(crafted, uint16(n+1))
		crafted = append(crafted, header...)
		crafted = append(crafted, 0, 0)
		crafted = append(crafted, payload...)

		err := Load(bytes.NewReader(crafted), newCharacter())
		assert.ErrorIs(t, err, ErrSizeListOverflow)
	})

	t.Run("HeaderBelowMinimum", func(t *testing.T) {
		crafted := binary.LittleEndian.AppendUint16(nil, 2)
		crafted = append(crafted, header[:4]...)
		crafted = append(crafted, payload...)

		err := Load(bytes.NewReader(crafted), newCharacter())
		assert.ErrorIs(t, err, ErrSizeCountMismatch)
	})

	t.Run("MissingSize", func(t *testing.T) {
		in, err := NewInStream(bytes.NewReader(nil))
		require.NoError(t, err)
		_, err = ReadString(in)
		assert.ErrorIs(t, err, ErrSizeListUnderflow)
		assert.ErrorIs(t, in.Err(), ErrSizeListUnderflow)
	})
}

func TestInvalidReferenceMarker(t *testing.T) {
	c := sampleCharacter()
	c.Account = nil
	data, err := Marshal(c)
	require.NoError(t, err)

	data[len(data)-1] = 9
	err = Load(bytes.NewReader(data), newCharacter())
	assert.ErrorIs(t, err, ErrInvalidPresence)
}

func TestUnmarshalTrailingData(t *testing.T) {
	c := sampleCharacter()
	data, err := Marshal(c)
	require.NoError(t, err)

	require.NoError(t, Unmarshal(append(data, 0, 0, 0), newCharacter()))

	err = Unmarshal(append(data, 0, 1), newCharacter())
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestStringLongerThanSizeFails(t *testing.T) {
	c := sampleCharacter()
	c.Name = string(make([]byte, 70000))
	_, err := Marshal(c)
	assert.ErrorIs(t, err, ErrSizeOverflow)
}

func TestNilObject(t *testing.T) {
	assert.ErrorIs(t, Save(io.Discard, nil), ErrNilObject)
	assert.ErrorIs(t, Load(bytes.NewReader(nil), nil), ErrNilObject)
}

func TestIsValid(t *testing.T) {
	c := sampleCharacter()
	assert.True(t, c.IsValid(true))

	c.Account.Name = ""
	assert.False(t, c.IsValid(true))
	assert.True(t, c.IsValid(false), "non-recursive check ignores references")

	// Invalid objects still save.
	c.Name = ""
	assert.False(t, c.IsValid(false))
	_, err := Marshal(c)
	assert.NoError(t, err)
}

// onlyReader hides every interface but io.Reader.
type onlyReader struct{ r io.Reader }

func (o onlyReader) Read(p []byte) (int, error) { return o.r.Read(p) }

func TestLoadDoesNotOverRead(t *testing.T) {
	first, second := sampleCharacter(), sampleCharacter()
	second.ID, second.Name = 8, "Nemechi"

	var buf bytes.Buffer
	require.NoError(t, Save(&buf, first))
	require.NoError(t, Save(&buf, second))

	src := onlyReader{&buf}
	a, b := newCharacter(), newCharacter()
	require.NoError(t, Load(src, a))
	require.NoError(t, Load(src, b))
	assert.Equal(t, first, a)
	assert.Equal(t, second, b)
}

func TestMarshalTo(t *testing.T) {
	c := sampleCharacter()
	want, err := Marshal(c)
	require.NoError(t, err)

	dst := make([]byte, len(want))
	n, err := MarshalTo(dst, c)
	require.NoError(t, err)
	assert.Equal(t, want, dst[:n])

	_, err = MarshalTo(make([]byte, len(want)-1), c)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}
