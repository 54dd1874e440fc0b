// Command zigdig-tiny resolves a name to its A/AAAA addresses and prints
// one per line, nothing else. It is the minimal counterpart to zigdig: no
// flags, no zone-file formatting, just addresses.
package main

import (
	"fmt"
	"math/rand"
	"net"
	"os"
	"time"

	"github.com/zigdig/zigdig/internal/dns"
	"github.com/zigdig/zigdig/internal/logging"
	"github.com/zigdig/zigdig/internal/resolveconf"
	"github.com/zigdig/zigdig/internal/udptransport"
)

func main() {
	logging.Configure(logging.Config{Level: debugLevel()})

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: zigdig-tiny <name>")
		os.Exit(2)
	}
	name := os.Args[1]

	servers, err := resolveconf.Nameservers(resolveconf.DefaultPath)
	if err != nil || len(servers) == 0 {
		fmt.Fprintln(os.Stderr, "zigdig-tiny: no nameserver in /etc/resolv.conf")
		os.Exit(1)
	}

	addrs, err := lookup(name, servers[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "zigdig-tiny: %v\n", err)
		os.Exit(1)
	}
	if len(addrs) == 0 {
		os.Exit(1)
	}
	for _, a := range addrs {
		fmt.Println(a)
	}
}

// lookup queries both A and AAAA in turn and returns every address found.
func lookup(name, server string) ([]net.IP, error) {
	var addrs []net.IP
	for _, qtype := range []dns.RecordType{dns.TypeA, dns.TypeAAAA} {
		req, err := buildQuery(name, qtype)
		if err != nil {
			return nil, err
		}
		resp, err := udptransport.Query(withDefaultPort(server), req, 2*time.Second, udptransport.DefaultRecvBufferSize)
		if err != nil {
			continue
		}
		incoming, err := dns.DecodeIncoming(resp)
		if err != nil {
			continue
		}
		for _, rr := range incoming.Packet.Answers {
			rd, err := incoming.Type(rr)
			if err != nil {
				continue
			}
			switch rd.Type {
			case dns.TypeA:
				addrs = append(addrs, rd.A)
			case dns.TypeAAAA:
				addrs = append(addrs, rd.AAAA)
			}
		}
		incoming.Close()
	}
	return addrs, nil
}

func buildQuery(name string, qtype dns.RecordType) ([]byte, error) {
	qname, err := dns.ParseName(name)
	if err != nil {
		return nil, err
	}
	pkt := dns.Packet{
		Header: dns.Header{
			ID:      uint16(rand.Intn(1 << 16)),
			Flags:   dns.BuildFlags(dns.FlagOptions{RecursionDesired: true}),
			QDCount: 1,
		},
		Questions: []dns.Question{{Name: qname, Type: qtype, Class: dns.ClassIN}},
	}
	return pkt.Marshal()
}

func withDefaultPort(addr string) string {
	for _, c := range addr {
		if c == ':' {
			return addr
		}
	}
	return addr + ":53"
}

func debugLevel() string {
	if os.Getenv("DEBUG") == "1" {
		return "DEBUG"
	}
	return "INFO"
}
