package dns

import (
	"fmt"
	"net"
)

// OpaqueRData is the not-yet-typed RDATA captured for every resource record
// at packet-decode time: the raw bytes plus the absolute offset they start
// at within the packet's backing buffer. Typing is deferred to RData's
// FromOpaque, which is the lazy-decode model spec calls for (a caller that
// only wants answers of one type never pays to decode the rest).
//
// AbsOffset matters beyond bookkeeping: a name inside RDATA (MX's Exchange,
// SRV's Target, ...) may use a compression pointer that targets bytes
// before this record's RDATA even starts. A Go slice can't expose bytes
// before its own lower bound, so Bytes alone isn't enough to resolve such a
// pointer — FromOpaque instead re-seeks into the full raw packet buffer at
// AbsOffset, the same way the teacher's ParseRecord threads one shared
// message slice and a running offset through every nested decode.
type OpaqueRData struct {
	Bytes     []byte
	AbsOffset int
}

// SOAData is the RDATA of an SOA record (RFC 1035 §3.3.13).
type SOAData struct {
	MName   Name
	RName   Name
	Serial  uint32
	Refresh uint32
	Retry   uint32
	Expire  uint32
	Minimum uint32
}

// MXData is the RDATA of an MX record (RFC 1035 §3.3.9).
type MXData struct {
	Preference uint16
	Exchange   Name
}

// SRVData is the RDATA of an SRV record (RFC 2782).
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   Name
}

// RData is a tagged union of every resource record data format this
// package decodes. Which field is meaningful is determined by the
// enclosing Resource's Type; exactly one field is populated by FromOpaque.
type RData struct {
	Type RecordType

	A     net.IP // 4 bytes
	AAAA  net.IP // 16 bytes
	NS    Name
	CNAME Name
	PTR   Name
	MD    Name
	MF    Name
	MB    Name
	MG    Name
	MR    Name
	SOA   SOAData
	MX    MXData
	SRV   SRVData
	// TXT holds every length-prefixed character-string in the RDATA, in
	// wire order. A TXT RDATA legally carries more than one string; this
	// package surfaces all of them rather than just the first.
	TXT [][]byte
}

// FromOpaque types an OpaqueRData according to t, decoding any embedded
// names with the given allocation mode against raw (the full packet
// buffer the opaque region was captured from) and pool (required when
// mode is allocPool).
//
// Returns ErrUnsupportedResourceType for recognized-but-not-decoded types
// (HINFO, MINFO, WKS, NULL, OPT) and ErrUnknownResourceType for codes this
// package has no definition for at all.
func (o OpaqueRData) FromOpaque(t RecordType, raw []byte, mode allocMode, pool *NamePool) (RData, error) {
	if unsupportedTypes[t] {
		return RData{}, fmt.Errorf("%w: %s", ErrUnsupportedResourceType, t)
	}

	r := &reader{buf: raw, pos: o.AbsOffset}
	end := o.AbsOffset + len(o.Bytes)

	switch t {
	case TypeA:
		b, err := r.bytes(4)
		if err != nil {
			return RData{}, err
		}
		ip := make(net.IP, 4)
		copy(ip, b)
		return RData{Type: t, A: ip}, nil

	case TypeAAAA:
		b, err := r.bytes(16)
		if err != nil {
			return RData{}, err
		}
		ip := make(net.IP, 16)
		copy(ip, b)
		return RData{Type: t, AAAA: ip}, nil

	case TypeNS, TypeCNAME, TypePTR, TypeMD, TypeMF, TypeMB, TypeMG, TypeMR:
		n, err := decodeName(r, mode, pool)
		if err != nil {
			return RData{}, err
		}
		if r.pos != end {
			return RData{}, fmt.Errorf("%w: rdata length mismatch for %s", ErrOverflow, t)
		}
		rd := RData{Type: t}
		switch t {
		case TypeNS:
			rd.NS = n
		case TypeCNAME:
			rd.CNAME = n
		case TypePTR:
			rd.PTR = n
		case TypeMD:
			rd.MD = n
		case TypeMF:
			rd.MF = n
		case TypeMB:
			rd.MB = n
		case TypeMG:
			rd.MG = n
		case TypeMR:
			rd.MR = n
		}
		return rd, nil

	case TypeSOA:
		mname, err := decodeName(r, mode, pool)
		if err != nil {
			return RData{}, err
		}
		rname, err := decodeName(r, mode, pool)
		if err != nil {
			return RData{}, err
		}
		soa := SOAData{MName: mname, RName: rname}
		if soa.Serial, err = r.u32(); err != nil {
			return RData{}, err
		}
		if soa.Refresh, err = r.u32(); err != nil {
			return RData{}, err
		}
		if soa.Retry, err = r.u32(); err != nil {
			return RData{}, err
		}
		if soa.Expire, err = r.u32(); err != nil {
			return RData{}, err
		}
		if soa.Minimum, err = r.u32(); err != nil {
			return RData{}, err
		}
		if r.pos != end {
			return RData{}, fmt.Errorf("%w: rdata length mismatch for SOA", ErrOverflow)
		}
		return RData{Type: t, SOA: soa}, nil

	case TypeMX:
		pref, err := r.u16()
		if err != nil {
			return RData{}, err
		}
		exchange, err := decodeName(r, mode, pool)
		if err != nil {
			return RData{}, err
		}
		if r.pos != end {
			return RData{}, fmt.Errorf("%w: rdata length mismatch for MX", ErrOverflow)
		}
		return RData{Type: t, MX: MXData{Preference: pref, Exchange: exchange}}, nil

	case TypeSRV:
		priority, err := r.u16()
		if err != nil {
			return RData{}, err
		}
		weight, err := r.u16()
		if err != nil {
			return RData{}, err
		}
		port, err := r.u16()
		if err != nil {
			return RData{}, err
		}
		target, err := decodeName(r, mode, pool)
		if err != nil {
			return RData{}, err
		}
		if r.pos != end {
			return RData{}, fmt.Errorf("%w: rdata length mismatch for SRV", ErrOverflow)
		}
		return RData{Type: t, SRV: SRVData{Priority: priority, Weight: weight, Port: port, Target: target}}, nil

	case TypeTXT:
		var strs [][]byte
		for r.pos < end {
			n, err := r.u8()
			if err != nil {
				return RData{}, err
			}
			s, err := r.bytes(int(n))
			if err != nil {
				return RData{}, err
			}
			cp := make([]byte, len(s))
			copy(cp, s)
			strs = append(strs, cp)
		}
		if r.pos != end {
			return RData{}, fmt.Errorf("%w: rdata length mismatch for TXT", ErrOverflow)
		}
		return RData{Type: t, TXT: strs}, nil

	default:
		return RData{}, fmt.Errorf("%w: type code %d", ErrUnknownResourceType, uint16(t))
	}
}

// Encode writes this RData's wire form for its Type. It is the caller's
// responsibility to have set the one field matching Type; a zero-value
// field for the active type (e.g. a nil A with Type A) returns
// ErrMissingData rather than silently encoding a short or empty RDATA.
func (rd RData) Encode(w *writer) error {
	switch rd.Type {
	case TypeA:
		ip := rd.A.To4()
		if ip == nil {
			return fmt.Errorf("%w: A record requires a 4-byte address", ErrMissingData)
		}
		return w.write(ip)

	case TypeAAAA:
		if len(rd.AAAA) != 16 {
			return fmt.Errorf("%w: AAAA record requires a 16-byte address", ErrMissingData)
		}
		return w.write(rd.AAAA)

	case TypeNS, TypeCNAME, TypePTR, TypeMD, TypeMF, TypeMB, TypeMG, TypeMR:
		n := rd.nameForType()
		if n == nil {
			return fmt.Errorf("%w: %s record requires a name", ErrMissingData, rd.Type)
		}
		return EncodeName(w, n)

	case TypeSOA:
		if rd.SOA.MName == nil || rd.SOA.RName == nil {
			return fmt.Errorf("%w: SOA record requires MName and RName", ErrMissingData)
		}
		if err := EncodeName(w, rd.SOA.MName); err != nil {
			return err
		}
		if err := EncodeName(w, rd.SOA.RName); err != nil {
			return err
		}
		if err := w.u32(rd.SOA.Serial); err != nil {
			return err
		}
		if err := w.u32(rd.SOA.Refresh); err != nil {
			return err
		}
		if err := w.u32(rd.SOA.Retry); err != nil {
			return err
		}
		if err := w.u32(rd.SOA.Expire); err != nil {
			return err
		}
		return w.u32(rd.SOA.Minimum)

	case TypeMX:
		if rd.MX.Exchange == nil {
			return fmt.Errorf("%w: MX record requires an exchange name", ErrMissingData)
		}
		if err := w.u16(rd.MX.Preference); err != nil {
			return err
		}
		return EncodeName(w, rd.MX.Exchange)

	case TypeSRV:
		if rd.SRV.Target == nil {
			return fmt.Errorf("%w: SRV record requires a target name", ErrMissingData)
		}
		if err := w.u16(rd.SRV.Priority); err != nil {
			return err
		}
		if err := w.u16(rd.SRV.Weight); err != nil {
			return err
		}
		if err := w.u16(rd.SRV.Port); err != nil {
			return err
		}
		return EncodeName(w, rd.SRV.Target)

	case TypeTXT:
		if len(rd.TXT) == 0 {
			return fmt.Errorf("%w: TXT record requires at least one string", ErrMissingData)
		}
		for _, s := range rd.TXT {
			if len(s) > 255 {
				return fmt.Errorf("%w: TXT character-string cannot exceed 255 bytes", ErrOverflow)
			}
			if err := w.u8(uint8(len(s))); err != nil {
				return err
			}
			if err := w.write(s); err != nil {
				return err
			}
		}
		return nil

	default:
		if unsupportedTypes[rd.Type] {
			return fmt.Errorf("%w: %s", ErrUnsupportedResourceType, rd.Type)
		}
		return fmt.Errorf("%w: type code %d", ErrUnknownResourceType, uint16(rd.Type))
	}
}

func (rd RData) nameForType() Name {
	switch rd.Type {
	case TypeNS:
		return rd.NS
	case TypeCNAME:
		return rd.CNAME
	case TypePTR:
		return rd.PTR
	case TypeMD:
		return rd.MD
	case TypeMF:
		return rd.MF
	case TypeMB:
		return rd.MB
	case TypeMG:
		return rd.MG
	case TypeMR:
		return rd.MR
	}
	return nil
}
