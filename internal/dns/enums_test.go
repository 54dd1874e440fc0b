package dns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRecordType(t *testing.T) {
	cases := []struct {
		in   string
		want RecordType
	}{
		{"A", TypeA},
		{"a", TypeA},
		{"AAAA", TypeAAAA},
		{"MX", TypeMX},
		{"SRV", TypeSRV},
		{"TXT", TypeTXT},
		{"TYPE99", RecordType(99)},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseRecordType(c.in)
			assert.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestParseRecordTypeUnknown(t *testing.T) {
	_, err := ParseRecordType("NOTATYPE")
	assert.ErrorIs(t, err, ErrUnknownResourceType)
}

func TestParseRecordClass(t *testing.T) {
	got, err := ParseRecordClass("IN")
	assert.NoError(t, err)
	assert.Equal(t, ClassIN, got)
}

func TestRecordTypeString(t *testing.T) {
	assert.Equal(t, "A", TypeA.String())
	assert.Equal(t, "TYPE9999", RecordType(9999).String())
}

func TestRCodeFromFlags(t *testing.T) {
	assert.Equal(t, RCodeNXDomain, RCodeFromFlags(0x8183))
	assert.Equal(t, "NXDOMAIN", RCodeFromFlags(0x8183).String())
}
