package dns

import (
	"fmt"
	"strings"
)

const (
	maxLabelLength  = 63
	maxNameWireSize = 255
	// maxPointerHops bounds the number of compression pointers a single
	// name decode may follow, independent of the forward-pointer check,
	// as a defense against pathological (but not strictly looping) chains.
	maxPointerHops = 128
)

// Label is one dot-separated component of a name, stored without escaping
// or length-prefix byte. A Label built by ParseName aliases the text it was
// parsed from; labels produced by decodeName (allocRaw, allocPool) are fresh
// copies and never alias the packet buffer.
type Label []byte

// Name is an ordered sequence of labels, root-terminated implicitly (there
// is no explicit root label stored here, matching the teacher's
// trimmed-dot convention in codec.go's joinLabels/trimDot).
type Name []Label

// allocMode selects how much a decoded Name is copied out of the source
// packet buffer, per spec.md's ownership-mode distinction.
type allocMode int

const (
	// allocNone skips materializing the Name entirely; used when a caller
	// only needs to skip past a name (e.g. walking RDATA it doesn't
	// care about) and will discard the result.
	allocNone allocMode = iota
	// allocRaw copies each label into a freshly allocated, caller-owned Name.
	allocRaw
	// allocPool interns the decoded Name in a NamePool keyed by the
	// absolute offset it was read from, so repeated pointer targets
	// decode once and the result outlives the original packet buffer.
	allocPool
)

// String renders a Name as the familiar dotted textual form, e.g.
// "www.example.com." for a non-root name, or "." for the root name.
func (n Name) String() string {
	if len(n) == 0 {
		return "."
	}
	var b strings.Builder
	for _, l := range n {
		b.Write(l)
		b.WriteByte('.')
	}
	return b.String()
}

// ParseName converts a textual dotted name into a Name, validating label
// and overall length limits. A trailing dot is optional; both "example.com"
// and "example.com." parse to the same two-label Name.
func ParseName(text string) (Name, error) {
	text = strings.TrimSuffix(text, ".")
	if text == "" {
		return Name{}, nil
	}
	parts := strings.Split(text, ".")
	name := make(Name, 0, len(parts))
	wire := 0
	for _, p := range parts {
		if len(p) == 0 {
			return nil, fmt.Errorf("%w: empty label in %q", ErrInvalidLabelType, text)
		}
		if len(p) > maxLabelLength {
			return nil, fmt.Errorf("%w: label %q is %d bytes", ErrLabelTooLong, p, len(p))
		}
		wire += len(p) + 1
		name = append(name, Label(p))
	}
	wire++ // root label
	if wire > maxNameWireSize {
		return nil, fmt.Errorf("%w: %q encodes to %d bytes", ErrNameTooLong, text, wire)
	}
	return name, nil
}

// EncodeName writes a Name in wire format with no compression, terminated
// by the zero-length root label. Compression on the encode side is an
// explicit non-goal; every name this package writes is written out in full.
func EncodeName(w *writer, n Name) error {
	wireLen := 1
	for _, l := range n {
		if len(l) == 0 || len(l) > maxLabelLength {
			return fmt.Errorf("%w: label %q is %d bytes", ErrLabelTooLong, l, len(l))
		}
		wireLen += len(l) + 1
	}
	if wireLen > maxNameWireSize {
		return fmt.Errorf("%w: name encodes to %d bytes", ErrNameTooLong, wireLen)
	}
	for _, l := range n {
		if err := w.u8(uint8(len(l))); err != nil {
			return err
		}
		if err := w.write(l); err != nil {
			return err
		}
	}
	return w.u8(0)
}

// decodeName reads a (possibly compressed) name from r, following pointers
// as needed. mode controls whether the result is materialized at all, and
// if so, whether it is a fresh copy (allocRaw) or interned in pool
// (allocPool, which requires pool != nil).
//
// Compression pointers (RFC 1035 §4.1.4) are two bytes with the top two
// bits set to 11, encoding a 14-bit absolute offset. Per spec, a pointer
// must target a strictly earlier offset than the pointer itself; the
// teacher's codec.go omits this check (it only rejects out-of-bounds and
// already-visited offsets), which would allow a pointer to jump forward
// into not-yet-parsed, attacker-controlled bytes. This implementation
// rejects that case up front as ErrInvalidPointer.
func decodeName(r *reader, mode allocMode, pool *NamePool) (Name, error) {
	startOff := r.absOffset()

	if mode == allocPool && pool != nil {
		if cached, ok := pool.lookup(startOff); ok {
			if err := skipNameOnWire(r); err != nil {
				return nil, err
			}
			return cached, nil
		}
	}

	var out Name
	if mode != allocNone {
		out = Name{}
	}

	hops := 0
	jumped := false
	returnPos := -1

	for {
		lengthOrPointer, err := r.u8()
		if err != nil {
			return nil, err
		}

		switch {
		case lengthOrPointer == 0:
			if returnPos >= 0 {
				r.pos = returnPos
			}
			if mode == allocPool && pool != nil {
				out = pool.intern(startOff, out)
			}
			return out, nil

		case lengthOrPointer&0xC0 == 0xC0:
			hops++
			if hops > maxPointerHops {
				return nil, fmt.Errorf("%w: exceeded %d compression hops", ErrInvalidPointer, maxPointerHops)
			}
			lowByte, err := r.u8()
			if err != nil {
				return nil, err
			}
			pointerFieldStart := r.pos - 2
			target := (int(lengthOrPointer&0x3F) << 8) | int(lowByte)
			if target >= pointerFieldStart {
				return nil, fmt.Errorf("%w: pointer at %d targets %d (not strictly earlier)", ErrInvalidPointer, pointerFieldStart, target)
			}
			if mode == allocPool && pool != nil {
				if cached, ok := pool.lookup(target); ok {
					if wireSize(out)+wireSize(cached)-1 > maxNameWireSize {
						return nil, fmt.Errorf("%w: exceeds %d bytes", ErrNameTooLong, maxNameWireSize)
					}
					out = append(out, cached...)
					if jumped {
						r.pos = returnPos
					}
					return pool.intern(startOff, out), nil
				}
			}
			if !jumped {
				returnPos = r.pos
				jumped = true
			}
			if err := r.seek(target); err != nil {
				return nil, err
			}

		case lengthOrPointer&0xC0 != 0:
			return nil, fmt.Errorf("%w: reserved label type bits 0x%02x", ErrInvalidLabelType, lengthOrPointer&0xC0)

		default:
			labelLen := int(lengthOrPointer)
			if labelLen > maxLabelLength {
				return nil, fmt.Errorf("%w: label length %d", ErrLabelTooLong, labelLen)
			}
			raw, err := r.bytes(labelLen)
			if err != nil {
				return nil, err
			}
			if mode != allocNone {
				if wireSize(out)+labelLen+1 > maxNameWireSize {
					return nil, fmt.Errorf("%w: exceeds %d bytes", ErrNameTooLong, maxNameWireSize)
				}
				lbl := make(Label, labelLen)
				copy(lbl, raw)
				out = append(out, lbl)
			}
		}
	}
}

// skipNameOnWire advances r past a name already known (via NamePool) to be
// well-formed, without materializing it again. It still must walk the wire
// bytes at this position since only the cached offset's *target* was
// validated previously, not necessarily this occurrence's pointer prefix.
func skipNameOnWire(r *reader) error {
	_, err := decodeName(r, allocNone, nil)
	return err
}

func wireSize(n Name) int {
	size := 1
	for _, l := range n {
		size += len(l) + 1
	}
	return size
}
