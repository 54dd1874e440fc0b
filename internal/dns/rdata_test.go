package dns

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeRData(t *testing.T, rd RData) []byte {
	t.Helper()
	w := newWriter()
	require.NoError(t, rd.Encode(w))
	return w.bytes()
}

func TestRDataARoundTrip(t *testing.T) {
	rd := RData{Type: TypeA, A: net.IPv4(192, 0, 2, 1)}
	b := encodeRData(t, rd)
	require.Len(t, b, 4)

	opaque := OpaqueRData{Bytes: b, AbsOffset: 0}
	decoded, err := opaque.FromOpaque(TypeA, b, allocRaw, nil)
	require.NoError(t, err)
	assert.Equal(t, net.IPv4(192, 0, 2, 1).To4(), decoded.A.To4())
}

func TestRDataAAAARoundTrip(t *testing.T) {
	ip := net.ParseIP("2001:db8::1")
	rd := RData{Type: TypeAAAA, AAAA: ip}
	b := encodeRData(t, rd)
	require.Len(t, b, 16)

	opaque := OpaqueRData{Bytes: b, AbsOffset: 0}
	decoded, err := opaque.FromOpaque(TypeAAAA, b, allocRaw, nil)
	require.NoError(t, err)
	assert.True(t, ip.Equal(decoded.AAAA))
}

func TestRDataAMissingData(t *testing.T) {
	rd := RData{Type: TypeA}
	w := newWriter()
	err := rd.Encode(w)
	assert.ErrorIs(t, err, ErrMissingData)
}

func TestRDataSOARoundTrip(t *testing.T) {
	mname := mustNameFor(t, "ns1.example.com")
	rname := mustNameFor(t, "hostmaster.example.com")
	rd := RData{Type: TypeSOA, SOA: SOAData{
		MName: mname, RName: rname,
		Serial: 2024010100, Refresh: 7200, Retry: 3600, Expire: 1209600, Minimum: 300,
	}}
	b := encodeRData(t, rd)

	opaque := OpaqueRData{Bytes: b, AbsOffset: 0}
	decoded, err := opaque.FromOpaque(TypeSOA, b, allocRaw, nil)
	require.NoError(t, err)
	assert.Equal(t, uint32(2024010100), decoded.SOA.Serial)
	assert.Equal(t, mname.String(), decoded.SOA.MName.String())
	assert.Equal(t, rname.String(), decoded.SOA.RName.String())
}

func TestRDataCNAMERoundTrip(t *testing.T) {
	target := mustNameFor(t, "canonical.example.com")
	rd := RData{Type: TypeCNAME, CNAME: target}
	b := encodeRData(t, rd)

	opaque := OpaqueRData{Bytes: b, AbsOffset: 0}
	decoded, err := opaque.FromOpaque(TypeCNAME, b, allocRaw, nil)
	require.NoError(t, err)
	assert.Equal(t, target.String(), decoded.CNAME.String())
}

func TestRDataUnsupportedType(t *testing.T) {
	opaque := OpaqueRData{Bytes: []byte{1, 2}, AbsOffset: 0}
	_, err := opaque.FromOpaque(TypeHINFO, []byte{1, 2}, allocRaw, nil)
	assert.ErrorIs(t, err, ErrUnsupportedResourceType)
}

func TestRDataUnknownType(t *testing.T) {
	opaque := OpaqueRData{Bytes: []byte{1, 2}, AbsOffset: 0}
	_, err := opaque.FromOpaque(RecordType(9999), []byte{1, 2}, allocRaw, nil)
	assert.ErrorIs(t, err, ErrUnknownResourceType)
}

func TestRDataTXTMaxLengthString(t *testing.T) {
	s := make([]byte, 255)
	for i := range s {
		s[i] = 'a'
	}
	rd := RData{Type: TypeTXT, TXT: [][]byte{s}}
	b := encodeRData(t, rd)
	require.Len(t, b, 1+255)

	opaque := OpaqueRData{Bytes: b, AbsOffset: 0}
	decoded, err := opaque.FromOpaque(TypeTXT, b, allocRaw, nil)
	require.NoError(t, err)
	require.Len(t, decoded.TXT, 1)
	assert.Equal(t, s, decoded.TXT[0])
}

func TestRDataTXTStringTooLong(t *testing.T) {
	s := make([]byte, 256)
	rd := RData{Type: TypeTXT, TXT: [][]byte{s}}
	w := newWriter()
	err := rd.Encode(w)
	assert.ErrorIs(t, err, ErrOverflow)
}

func mustNameFor(t *testing.T, s string) Name {
	t.Helper()
	n, err := ParseName(s)
	require.NoError(t, err)
	return n
}
