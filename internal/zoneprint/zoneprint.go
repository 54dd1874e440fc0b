// Package zoneprint renders decoded resource records in the familiar
// zone-file line form (NAME TTL CLASS TYPE RDATA), grounded on the
// teacher's print-zone command and dnsquery's formatRR helper.
package zoneprint

import (
	"fmt"
	"strings"

	"github.com/zigdig/zigdig/internal/dns"
)

// Line formats one resource record and its already-typed RDATA as a
// single zone-file-style line, e.g. "example.com. 300 IN A 93.184.216.34".
func Line(name dns.Name, ttl uint32, class dns.RecordClass, rdata dns.RData) string {
	return fmt.Sprintf("%s %d %s %s %s", name.String(), ttl, class, rdata.Type, formatRData(rdata))
}

func formatRData(rd dns.RData) string {
	switch rd.Type {
	case dns.TypeA:
		return rd.A.String()
	case dns.TypeAAAA:
		return rd.AAAA.String()
	case dns.TypeNS:
		return rd.NS.String()
	case dns.TypeCNAME:
		return rd.CNAME.String()
	case dns.TypePTR:
		return rd.PTR.String()
	case dns.TypeMD:
		return rd.MD.String()
	case dns.TypeMF:
		return rd.MF.String()
	case dns.TypeMB:
		return rd.MB.String()
	case dns.TypeMG:
		return rd.MG.String()
	case dns.TypeMR:
		return rd.MR.String()
	case dns.TypeSOA:
		return fmt.Sprintf("%s %s %d %d %d %d %d",
			rd.SOA.MName, rd.SOA.RName, rd.SOA.Serial, rd.SOA.Refresh, rd.SOA.Retry, rd.SOA.Expire, rd.SOA.Minimum)
	case dns.TypeMX:
		return fmt.Sprintf("%d %s", rd.MX.Preference, rd.MX.Exchange)
	case dns.TypeSRV:
		return fmt.Sprintf("%d %d %d %s", rd.SRV.Priority, rd.SRV.Weight, rd.SRV.Port, rd.SRV.Target)
	case dns.TypeTXT:
		parts := make([]string, len(rd.TXT))
		for i, s := range rd.TXT {
			parts[i] = fmt.Sprintf("%q", string(s))
		}
		return strings.Join(parts, " ")
	default:
		return "(unparsed)"
	}
}
