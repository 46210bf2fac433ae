package store

import "strconv"

// parseInt32 parses a command integer. The stored integer domain is 32-bit
// with C-style truncating semantics: the parsed value must round-trip exactly
// through int32 truncation, otherwise the command fails with ErrNotAnInteger.
func parseInt32(s string) (int32, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrNotAnInteger
	}
	if int64(int32(n)) != n {
		return 0, ErrNotAnInteger
	}
	return int32(n), nil
}

// asString validates that a value is the string variant.
func asString(v Value) (StringValue, error) {
	switch sv := v.(type) {
	case StringValue:
		return sv, nil
	case ListValue, HashValue:
		return "", ErrWrongType
	default:
		return "", ErrUnknownValueType
	}
}

// Get returns the string value of a key. ok is false when the key is absent.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	v, exists := s.GetValue(key)
	if !exists {
		return "", false, nil
	}
	sv, err := asString(v)
	if err != nil {
		return "", false, err
	}
	return string(sv), true, nil
}

// Set writes a string value, replacing any previous value of any variant.
func (s *Store) Set(key, value string) {
	s.SetValue(key, StringValue(value))
}

// Setnx writes a string value only when the key is absent.
// Returns whether the write happened.
func (s *Store) Setnx(key, value string) bool {
	if s.Has(key) {
		return false
	}
	s.Set(key, value)
	return true
}

// Setex writes a string value with an expiration time. Expiration itself is
// not modeled, so only the write happens; the seconds argument is validated
// and then ignored.
func (s *Store) Setex(key string, seconds int64, value string) error {
	if seconds <= 0 {
		return ErrNotAnInteger
	}
	s.Set(key, value)
	return nil
}

// Getset writes a new string value and returns the previous one.
// ok is false when the key was absent.
func (s *Store) Getset(key, value string) (old string, ok bool, err error) {
	old, ok, err = s.Get(key)
	if err != nil {
		return "", false, err
	}
	s.Set(key, value)
	return old, ok, nil
}

// Getrange returns the substring between the inclusive (start, end) bounds,
// with negative indices wrapping from the end. Absent keys read as empty.
func (s *Store) Getrange(key string, start, end int) (string, error) {
	v, exists := s.GetValue(key)
	if !exists {
		return "", nil
	}
	sv, err := asString(v)
	if err != nil {
		return "", err
	}
	lo, hi, empty := normalizeRange(start, end, len(sv))
	if empty {
		return "", nil
	}
	return string(sv[lo : hi+1]), nil
}

// Strlen returns the length of the string value; 0 when absent.
func (s *Store) Strlen(key string) (int, error) {
	v, exists := s.GetValue(key)
	if !exists {
		return 0, nil
	}
	sv, err := asString(v)
	if err != nil {
		return 0, err
	}
	return len(sv), nil
}

// Append concatenates value onto the key's string (auto-vivified as empty)
// and returns the new length.
func (s *Store) Append(key, value string) (int, error) {
	v, exists := s.GetValue(key)
	cur := StringValue("")
	if exists {
		var err error
		cur, err = asString(v)
		if err != nil {
			return 0, err
		}
	}
	next := string(cur) + value
	s.SetValue(key, StringValue(next))
	return len(next), nil
}

// Incr increments the key's integer value by one.
func (s *Store) Incr(key string) (int64, error) {
	return s.Incrby(key, 1)
}

// Decr decrements the key's integer value by one.
func (s *Store) Decr(key string) (int64, error) {
	return s.Incrby(key, -1)
}

// Incrby adds by to the key's integer value, auto-vivified as 0. Both the
// stored value and the delta must fit the 32-bit integer domain; arithmetic
// wraps like C int32. Fails with ErrNotAnInteger before mutating anything.
func (s *Store) Incrby(key string, by int64) (int64, error) {
	delta := int32(by)
	if int64(delta) != by {
		return 0, ErrNotAnInteger
	}

	v, exists := s.GetValue(key)
	var cur int32
	if exists {
		sv, err := asString(v)
		if err != nil {
			return 0, err
		}
		cur, err = parseInt32(string(sv))
		if err != nil {
			return 0, err
		}
	}

	next := cur + delta
	s.SetValue(key, StringValue(strconv.FormatInt(int64(next), 10)))
	return int64(next), nil
}

// Decrby subtracts by from the key's integer value.
func (s *Store) Decrby(key string, by int64) (int64, error) {
	return s.Incrby(key, -by)
}

// Incrbyfloat adds by to the key's floating point value, auto-vivified as 0.
// Fails with ErrNotAFloat before mutating anything.
func (s *Store) Incrbyfloat(key string, by float64) (float64, error) {
	v, exists := s.GetValue(key)
	var cur float64
	if exists {
		sv, err := asString(v)
		if err != nil {
			return 0, err
		}
		cur, err = strconv.ParseFloat(string(sv), 64)
		if err != nil {
			return 0, ErrNotAFloat
		}
	}

	next := cur + by
	s.SetValue(key, StringValue(strconv.FormatFloat(next, 'f', -1, 64)))
	return next, nil
}

// Mget returns the string values for the given keys in order. Entries are
// nil for absent keys and for keys holding a non-string variant.
func (s *Store) Mget(keys ...string) []*string {
	out := make([]*string, len(keys))
	for i, key := range keys {
		v, exists := s.GetValue(key)
		if !exists {
			continue
		}
		if sv, ok := v.(StringValue); ok {
			val := string(sv)
			out[i] = &val
		}
	}
	return out
}

// Mset writes each key-value pair in order. The argument list must be
// non-empty with an even number of items.
func (s *Store) Mset(pairs ...string) error {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return wrongArity("mset")
	}
	for i := 0; i < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return nil
}

// Msetnx writes each key-value pair only if none of the keys exist.
// Returns whether the writes happened; no partial writes occur.
func (s *Store) Msetnx(pairs ...string) (bool, error) {
	if len(pairs) == 0 || len(pairs)%2 != 0 {
		return false, wrongArity("msetnx")
	}
	for i := 0; i < len(pairs); i += 2 {
		if s.Has(pairs[i]) {
			return false, nil
		}
	}
	for i := 0; i < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return true, nil
}
