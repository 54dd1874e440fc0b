package dns

// Header represents a DNS message header (RFC 1035 Section 4.1.1).
//
// The header is always 12 bytes and contains:
//   - ID: 16-bit identifier for matching requests to responses
//   - Flags: 16-bit field containing QR, Opcode, AA, TC, RD, RA, Z, RCODE
//   - QDCount: Number of questions
//   - ANCount: Number of answer resource records
//   - NSCount: Number of nameserver (authority) resource records
//   - ARCount: Number of additional resource records
type Header struct {
	ID      uint16
	Flags   uint16
	QDCount uint16
	ANCount uint16
	NSCount uint16
	ARCount uint16
}

// HeaderSize is the fixed size of a DNS header in bytes.
const HeaderSize = 12

// Opcode extracts the 4-bit operation code from Flags.
func (h Header) Opcode() uint16 {
	return (h.Flags & OpcodeMask) >> 11
}

// RCode extracts the 4-bit response code from Flags. Callers deciding
// whether a response indicates failure must use this, not Opcode: Opcode
// only ever describes the kind of operation (query/iquery/status), never
// whether it succeeded.
func (h Header) RCode() RCode {
	return RCodeFromFlags(h.Flags)
}

// IsResponse reports whether the QR bit is set.
func (h Header) IsResponse() bool {
	return h.Flags&QRFlag != 0
}

// FlagOptions controls BuildFlags, the encode-side counterpart of the
// individual flag-testing helpers.
type FlagOptions struct {
	Response           bool
	Opcode             uint16
	Authoritative      bool
	Truncated          bool
	RecursionDesired   bool
	RecursionAvailable bool
	ResponseCode       RCode
}

// BuildFlags assembles a Flags word from named fields. The teacher package
// this is grounded on only ever decoded flags (for a server that echoed a
// request's flags back with minor edits); this package's CLI front ends
// build an outgoing query from scratch, so the encode direction needed to
// be added.
func BuildFlags(opts FlagOptions) uint16 {
	var f uint16
	if opts.Response {
		f |= QRFlag
	}
	f |= (opts.Opcode << 11) & OpcodeMask
	if opts.Authoritative {
		f |= AAFlag
	}
	if opts.Truncated {
		f |= TCFlag
	}
	if opts.RecursionDesired {
		f |= RDFlag
	}
	if opts.RecursionAvailable {
		f |= RAFlag
	}
	f |= uint16(opts.ResponseCode) & RCodeMask
	return f
}

// Marshal serializes the header to wire format (big-endian, 12 bytes).
func (h Header) Marshal(w *writer) error {
	if err := w.u16(h.ID); err != nil {
		return err
	}
	if err := w.u16(h.Flags); err != nil {
		return err
	}
	if err := w.u16(h.QDCount); err != nil {
		return err
	}
	if err := w.u16(h.ANCount); err != nil {
		return err
	}
	if err := w.u16(h.NSCount); err != nil {
		return err
	}
	return w.u16(h.ARCount)
}

// ParseHeader reads a 12-byte header from r.
func ParseHeader(r *reader) (Header, error) {
	var h Header
	var err error
	if h.ID, err = r.u16(); err != nil {
		return Header{}, err
	}
	if h.Flags, err = r.u16(); err != nil {
		return Header{}, err
	}
	if h.QDCount, err = r.u16(); err != nil {
		return Header{}, err
	}
	if h.ANCount, err = r.u16(); err != nil {
		return Header{}, err
	}
	if h.NSCount, err = r.u16(); err != nil {
		return Header{}, err
	}
	if h.ARCount, err = r.u16(); err != nil {
		return Header{}, err
	}
	return h, nil
}
