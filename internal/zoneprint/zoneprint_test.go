package zoneprint

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zigdig/zigdig/internal/dns"
)

func mustName(t *testing.T, s string) dns.Name {
	t.Helper()
	n, err := dns.ParseName(s)
	require.NoError(t, err)
	return n
}

func TestLineA(t *testing.T) {
	n := mustName(t, "example.com")
	rd := dns.RData{Type: dns.TypeA, A: net.IPv4(93, 184, 216, 34)}

	line := Line(n, 300, dns.ClassIN, rd)
	assert.Equal(t, "example.com. 300 IN A 93.184.216.34", line)
}

func TestLineMX(t *testing.T) {
	n := mustName(t, "example.com")
	rd := dns.RData{Type: dns.TypeMX, MX: dns.MXData{Preference: 10, Exchange: mustName(t, "mail.example.com")}}

	line := Line(n, 300, dns.ClassIN, rd)
	assert.Equal(t, "example.com. 300 IN MX 10 mail.example.com.", line)
}

func TestLineTXT(t *testing.T) {
	n := mustName(t, "example.com")
	rd := dns.RData{Type: dns.TypeTXT, TXT: [][]byte{[]byte("v=spf1"), []byte("more")}}

	line := Line(n, 300, dns.ClassIN, rd)
	assert.Equal(t, `example.com. 300 IN TXT "v=spf1" "more"`, line)
}
