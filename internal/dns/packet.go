package dns

import "fmt"

// Bounds on section counts used while pre-sizing decode buffers. These
// exist so a header claiming an enormous QDCount/ANCount/etc. against a
// small actual message can't force a large up-front allocation. They only
// limit the initial capacity: decoding still reads the full count given in
// the header and fails with ErrUnexpectedEOF if the buffer runs out first.
const (
	MaxQuestions    = 64
	MaxRRPerSection = 4096
)

// Resource is one resource record: the fixed NAME/TYPE/CLASS/TTL/RDLENGTH
// fields (RFC 1035 §4.1.3) plus its RDATA, captured lazily as Opaque rather
// than eagerly typed. Callers that want a typed view call
// Opaque.FromOpaque(Type, ...) themselves, once, for whichever records they
// actually care about.
//
// Data is the encode-side counterpart: a caller building an outgoing
// packet (e.g. to construct a reply, or just to round-trip a decoded
// packet) sets Data directly and leaves Opaque zero.
type Resource struct {
	Name  Name
	Type  RecordType
	Class RecordClass
	TTL   uint32

	Opaque OpaqueRData
	Data   *RData
}

// Packet represents a complete DNS message (RFC 1035 Section 4).
//
// A DNS packet consists of a header and four sections: Questions (what the
// client is asking), Answers (resource records answering the question),
// Nameservers (authority records pointing at name servers), and
// Additionals (extra records such as glue addresses).
type Packet struct {
	Header      Header
	Questions   []Question
	Answers     []Resource
	Nameservers []Resource
	Additionals []Resource
}

func limitCount(count uint16, limit int) int {
	if int(count) > limit {
		return limit
	}
	return int(count)
}

// parseResource reads one resource record, capturing its RDATA as opaque
// bytes rather than typing it immediately.
func parseResource(r *reader, pool *NamePool) (Resource, error) {
	name, err := pool.DecodeOrCache(r)
	if err != nil {
		return Resource{}, err
	}
	rtype, err := r.u16()
	if err != nil {
		return Resource{}, err
	}
	rclass, err := r.u16()
	if err != nil {
		return Resource{}, err
	}
	ttl, err := r.u32()
	if err != nil {
		return Resource{}, err
	}
	rdlen, err := r.u16()
	if err != nil {
		return Resource{}, err
	}
	absOff := r.absOffset()
	raw, err := r.bytes(int(rdlen))
	if err != nil {
		return Resource{}, err
	}
	return Resource{
		Name:  name,
		Type:  RecordType(rtype),
		Class: RecordClass(rclass),
		TTL:   ttl,
		Opaque: OpaqueRData{
			Bytes:     raw,
			AbsOffset: absOff,
		},
	}, nil
}

// marshal writes one resource record. If rr.Data is set it is encoded
// directly; otherwise rr.Opaque.Bytes is written through unchanged (the
// record is re-serialized exactly as it was received).
func (rr Resource) marshal(w *writer) error {
	if err := EncodeName(w, rr.Name); err != nil {
		return err
	}
	if err := w.u16(uint16(rr.Type)); err != nil {
		return err
	}
	if err := w.u16(uint16(rr.Class)); err != nil {
		return err
	}
	if err := w.u32(rr.TTL); err != nil {
		return err
	}

	var rdataBytes []byte
	switch {
	case rr.Data != nil:
		rw := newWriter()
		if err := rr.Data.Encode(rw); err != nil {
			return err
		}
		rdataBytes = rw.bytes()
	case rr.Opaque.Bytes != nil:
		rdataBytes = rr.Opaque.Bytes
	default:
		return fmt.Errorf("%w: resource has neither Data nor Opaque rdata", ErrMissingData)
	}

	if len(rdataBytes) > 0xFFFF {
		return fmt.Errorf("%w: rdata length %d exceeds uint16", ErrOverflow, len(rdataBytes))
	}
	if err := w.u16(uint16(len(rdataBytes))); err != nil {
		return err
	}
	return w.write(rdataBytes)
}

// Marshal serializes the packet to DNS wire format (big-endian), without
// name compression (see EncodeName). The header's section counters are
// written exactly as set in p.Header; Marshal does not recompute them
// from slice lengths, so it is the caller's responsibility to keep
// QDCount/ANCount/NSCount/ARCount consistent with Questions/Answers/
// Nameservers/Additionals.
func (p Packet) Marshal() ([]byte, error) {
	w := newWriter()
	if err := p.Header.Marshal(w); err != nil {
		return nil, err
	}
	for _, q := range p.Questions {
		if err := q.Marshal(w); err != nil {
			return nil, err
		}
	}
	for _, rr := range p.Answers {
		if err := rr.marshal(w); err != nil {
			return nil, err
		}
	}
	for _, rr := range p.Nameservers {
		if err := rr.marshal(w); err != nil {
			return nil, err
		}
	}
	for _, rr := range p.Additionals {
		if err := rr.marshal(w); err != nil {
			return nil, err
		}
	}
	return w.bytes(), nil
}

// ParsePacket decodes msg into a Packet, using pool to intern every
// decoded name. Resource RDATA is captured opaque; see Resource.Opaque.
func ParsePacket(msg []byte, pool *NamePool) (Packet, error) {
	r := newReader(msg)
	h, err := ParseHeader(r)
	if err != nil {
		return Packet{}, err
	}

	p := Packet{Header: h}

	p.Questions = make([]Question, 0, limitCount(h.QDCount, MaxQuestions))
	for i := 0; i < int(h.QDCount); i++ {
		q, err := ParseQuestion(r, pool)
		if err != nil {
			return Packet{}, err
		}
		p.Questions = append(p.Questions, q)
	}
	p.Answers = make([]Resource, 0, limitCount(h.ANCount, MaxRRPerSection))
	for i := 0; i < int(h.ANCount); i++ {
		rr, err := parseResource(r, pool)
		if err != nil {
			return Packet{}, err
		}
		p.Answers = append(p.Answers, rr)
	}
	p.Nameservers = make([]Resource, 0, limitCount(h.NSCount, MaxRRPerSection))
	for i := 0; i < int(h.NSCount); i++ {
		rr, err := parseResource(r, pool)
		if err != nil {
			return Packet{}, err
		}
		p.Nameservers = append(p.Nameservers, rr)
	}
	p.Additionals = make([]Resource, 0, limitCount(h.ARCount, MaxRRPerSection))
	for i := 0; i < int(h.ARCount); i++ {
		rr, err := parseResource(r, pool)
		if err != nil {
			return Packet{}, err
		}
		p.Additionals = append(p.Additionals, rr)
	}
	return p, nil
}

// IncomingPacket owns everything a decoded Packet's lazily-typed RDATA
// depends on: the raw buffer (Resource.Opaque.Bytes slices alias it) and
// the NamePool every Name in the packet was interned into. Decoded Names
// and typed RData obtained from this packet remain valid only as long as
// the IncomingPacket itself is kept around.
type IncomingPacket struct {
	Packet Packet
	raw    []byte
	pool   *NamePool
}

// DecodeIncoming parses msg (which it retains a reference to — callers
// must not mutate it afterward) into an IncomingPacket.
func DecodeIncoming(msg []byte) (*IncomingPacket, error) {
	pool := NewNamePool()
	p, err := ParsePacket(msg, pool)
	if err != nil {
		return nil, err
	}
	return &IncomingPacket{Packet: p, raw: msg, pool: pool}, nil
}

// Type decodes rr's RDATA, interning any names into this packet's pool.
func (ip *IncomingPacket) Type(rr Resource) (RData, error) {
	return rr.Opaque.FromOpaque(rr.Type, ip.raw, allocPool, ip.pool)
}

// Close releases the packet's interned names and drops its reference to
// the raw buffer. After Close, any Name or RData previously obtained from
// this IncomingPacket must not be used.
func (ip *IncomingPacket) Close() {
	ip.pool.FreeAll()
	ip.raw = nil
}
