package dns

// Question represents a DNS question section entry (RFC 1035 Section 4.1.2).
//
// Each question specifies what the client is asking for: the domain Name,
// the record Type requested (A, AAAA, MX, ...) and the Class (almost
// always ClassIN).
type Question struct {
	Name  Name
	Type  RecordType
	Class RecordClass
}

// Marshal serializes the question to DNS wire format, encoding Name
// without compression.
func (q Question) Marshal(w *writer) error {
	if err := EncodeName(w, q.Name); err != nil {
		return err
	}
	if err := w.u16(uint16(q.Type)); err != nil {
		return err
	}
	return w.u16(uint16(q.Class))
}

// ParseQuestion reads a question from r using pool for the question name,
// so later answer records whose own names point back at this question
// share a single decoded Name.
func ParseQuestion(r *reader, pool *NamePool) (Question, error) {
	name, err := pool.DecodeOrCache(r)
	if err != nil {
		return Question{}, err
	}
	qtype, err := r.u16()
	if err != nil {
		return Question{}, err
	}
	class, err := r.u16()
	if err != nil {
		return Question{}, err
	}
	return Question{Name: name, Type: RecordType(qtype), Class: RecordClass(class)}, nil
}
