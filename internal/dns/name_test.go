package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNameRoundTrip(t *testing.T) {
	n, err := ParseName("www.example.com")
	require.NoError(t, err)
	require.Len(t, n, 3)
	assert.Equal(t, "www", string(n[0]))
	assert.Equal(t, "example", string(n[1]))
	assert.Equal(t, "com", string(n[2]))
	assert.Equal(t, "www.example.com.", n.String())
}

func TestParseNameTrailingDotOptional(t *testing.T) {
	withDot, err := ParseName("example.com.")
	require.NoError(t, err)
	withoutDot, err := ParseName("example.com")
	require.NoError(t, err)
	assert.Equal(t, withDot.String(), withoutDot.String())
}

func TestParseNameRoot(t *testing.T) {
	n, err := ParseName(".")
	require.NoError(t, err)
	assert.Empty(t, n)
	assert.Equal(t, ".", n.String())
}

func TestParseNameEmptyLabelRejected(t *testing.T) {
	_, err := ParseName("www..com")
	assert.ErrorIs(t, err, ErrInvalidLabelType)
}

func TestParseNameLabelTooLong(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	_, err := ParseName(string(long) + ".com")
	assert.ErrorIs(t, err, ErrLabelTooLong)
}

func TestEncodeDecodeNameNoCompression(t *testing.T) {
	n, err := ParseName("mail.example.com")
	require.NoError(t, err)

	w := newWriter()
	require.NoError(t, EncodeName(w, n))

	r := newReader(w.bytes())
	decoded, err := decodeName(r, allocRaw, nil)
	require.NoError(t, err)
	assert.Equal(t, n.String(), decoded.String())
	assert.Equal(t, len(w.bytes()), r.absOffset())
}

func TestDecodeNameAllocNoneSkipsButAdvances(t *testing.T) {
	n, err := ParseName("example.com")
	require.NoError(t, err)
	w := newWriter()
	require.NoError(t, EncodeName(w, n))

	r := newReader(w.bytes())
	decoded, err := decodeName(r, allocNone, nil)
	require.NoError(t, err)
	assert.Nil(t, decoded)
	assert.Equal(t, len(w.bytes()), r.absOffset())
}

func TestDecodeNameReservedLabelBits(t *testing.T) {
	msg := []byte{0x40, 'x'} // 01xxxxxx is reserved
	r := newReader(msg)
	_, err := decodeName(r, allocRaw, nil)
	assert.ErrorIs(t, err, ErrInvalidLabelType)
}

func TestDecodeNamePointerOutOfBounds(t *testing.T) {
	msg := []byte{0xC0, 0xFF} // points past the 2-byte buffer
	r := newReader(msg)
	_, err := decodeName(r, allocRaw, nil)
	assert.ErrorIs(t, err, ErrInvalidPointer)
}

func TestDecodeNamePooled(t *testing.T) {
	// Two back-to-back names, the second a pointer to the first.
	msg := []byte{
		3, 'f', 'o', 'o', 0, // offset 0, 5 bytes
		0xC0, 0x00, // offset 5, pointer to 0
	}

	pool := NewNamePool()
	r := newReader(msg)
	first, err := decodeName(r, allocPool, pool)
	require.NoError(t, err)
	assert.Equal(t, "foo.", first.String())

	second, err := decodeName(r, allocPool, pool)
	require.NoError(t, err)
	assert.Equal(t, "foo.", second.String())
	assert.Equal(t, len(msg), r.absOffset())
}

func TestEncodeNameTooLong(t *testing.T) {
	// 5 labels of 63 bytes each plus length bytes exceeds 255 bytes.
	label := make([]byte, 63)
	for i := range label {
		label[i] = 'a'
	}
	n := Name{Label(label), Label(label), Label(label), Label(label), Label(label)}
	w := newWriter()
	err := EncodeName(w, n)
	assert.ErrorIs(t, err, ErrNameTooLong)
}
