package store

// Kind identifies which variant a stored value holds.
// A key holds exactly one variant at a time; absence of a key is KindNone.
type Kind int

const (
	KindNone Kind = iota
	KindString
	KindList
	KindHash
)

// String returns the protocol-level type name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindHash:
		return "hash"
	default:
		return "unknown"
	}
}

// Value is the tagged union of storable variants: StringValue, ListValue and
// HashValue. Commands switch exhaustively on the concrete type; a value of
// any other type in the store is an invariant violation (ErrUnknownValueType).
type Value interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Clone returns a deep copy the caller may mutate freely.
	Clone() Value

	// Equal reports deep equality with another value.
	// Values of different variants are never equal.
	Equal(other Value) bool
}

// StringValue is a text value.
type StringValue string

// Kind returns KindString.
func (v StringValue) Kind() Kind { return KindString }

// Clone returns the value itself; strings are immutable.
func (v StringValue) Clone() Value { return v }

// Equal reports whether other is an equal string value.
func (v StringValue) Equal(other Value) bool {
	o, ok := other.(StringValue)
	return ok && v == o
}

// ListValue is an ordered sequence of strings.
type ListValue []string

// Kind returns KindList.
func (v ListValue) Kind() Kind { return KindList }

// Clone returns a deep copy of the list.
func (v ListValue) Clone() Value {
	out := make(ListValue, len(v))
	copy(out, v)
	return out
}

// Equal reports element-wise equality with another list value.
func (v ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

// HashValue maps unique field names to string values.
type HashValue map[string]string

// Kind returns KindHash.
func (v HashValue) Kind() Kind { return KindHash }

// Clone returns a deep copy of the hash.
func (v HashValue) Clone() Value {
	out := make(HashValue, len(v))
	for f, s := range v {
		out[f] = s
	}
	return out
}

// Equal reports field-wise equality with another hash value.
func (v HashValue) Equal(other Value) bool {
	o, ok := other.(HashValue)
	if !ok || len(v) != len(o) {
		return false
	}
	for f, s := range v {
		if os, present := o[f]; !present || os != s {
			return false
		}
	}
	return true
}

// valueKind returns the kind of a possibly-nil value.
func valueKind(v Value) Kind {
	if v == nil {
		return KindNone
	}
	return v.Kind()
}
