// Command zigdig resolves a single DNS name against one or more servers
// and prints the answer section in zone-file form.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/zigdig/zigdig/internal/dns"
	"github.com/zigdig/zigdig/internal/logging"
	"github.com/zigdig/zigdig/internal/resolveconf"
	"github.com/zigdig/zigdig/internal/udptransport"
	"github.com/zigdig/zigdig/internal/zoneprint"
)

// dnsFlags collects repeated --dns/-s occurrences into an ordered list.
type dnsFlags []string

func (d *dnsFlags) String() string { return strings.Join(*d, ",") }
func (d *dnsFlags) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var servers dnsFlags
	flag.Var(&servers, "dns", "DNS server HOST[:PORT] (repeatable)")
	flag.Var(&servers, "s", "shorthand for --dns")
	timeout := flag.Duration("timeout", 2*time.Second, "per-server query timeout")
	flag.Parse()

	logging.Configure(logging.Config{Level: debugLevel()})

	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "usage: zigdig <name> <qtype> [--dns addr]...")
		os.Exit(2)
	}
	name, qtypeArg := flag.Arg(0), flag.Arg(1)
	// flag.Parse stops at the first positional argument; parse the rest so
	// flags given after <name> <qtype> take effect too.
	_ = flag.CommandLine.Parse(flag.Args()[2:])

	qtype, err := dns.ParseRecordType(qtypeArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zigdig: %v\n", err)
		os.Exit(2)
	}

	if len(servers) == 0 {
		resolved, err := resolveconf.Nameservers(resolveconf.DefaultPath)
		if err != nil {
			slog.Warn("reading resolv.conf", "error", err)
		}
		servers = append(servers, resolved...)
	}
	if len(servers) == 0 {
		fmt.Fprintln(os.Stderr, "zigdig: no DNS server available (pass --dns or populate /etc/resolv.conf)")
		os.Exit(1)
	}

	incoming, err := resolve(name, qtype, servers, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "zigdig: %v\n", err)
		os.Exit(1)
	}
	defer incoming.Close()

	printAnswers(incoming)
}

// resolve queries each server in turn until one answers, returning the
// first successful response. CNAME chasing and recursive resolution are
// out of scope: whatever the server returns is printed as-is.
func resolve(name string, qtype dns.RecordType, servers []string, timeout time.Duration) (*dns.IncomingPacket, error) {
	req, err := buildQuery(name, qtype)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, server := range servers {
		addr := withDefaultPort(server)
		resp, err := udptransport.Query(addr, req, timeout, udptransport.DefaultRecvBufferSize)
		if err != nil {
			slog.Debug("query failed", "server", addr, "error", err)
			lastErr = err
			continue
		}
		incoming, err := dns.DecodeIncoming(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return incoming, nil
	}
	return nil, fmt.Errorf("all servers failed, last error: %w", lastErr)
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
	if strings.Contains(addr, ":") {
		return addr
	}
	return addr + ":53"
}

func printAnswers(incoming *dns.IncomingPacket) {
	p := incoming.Packet
	fmt.Printf(";; id=%d rcode=%s answers=%d nameservers=%d additionals=%d\n",
		p.Header.ID, p.Header.RCode(), len(p.Answers), len(p.Nameservers), len(p.Additionals))

	rows := make([]string, 0, len(p.Answers))
	for _, rr := range p.Answers {
		rdata, err := incoming.Type(rr)
		if err != nil {
			rows = append(rows, fmt.Sprintf("%s %d %s %s (%v)", rr.Name, rr.TTL, rr.Class, rr.Type, err))
			continue
		}
		rows = append(rows, zoneprint.Line(rr.Name, rr.TTL, rr.Class, rdata))
	}
	sort.Strings(rows)
	for _, row := range rows {
		fmt.Println(row)
	}
}

func debugLevel() string {
	if os.Getenv("DEBUG") == "1" {
		return "DEBUG"
	}
	return "INFO"
}
