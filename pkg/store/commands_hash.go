package store

import "strconv"

// asHash validates that a value is the hash variant.
func asHash(v Value) (HashValue, error) {
	switch hv := v.(type) {
	case HashValue:
		return hv, nil
	case StringValue, ListValue:
		return nil, ErrWrongType
	default:
		return nil, ErrUnknownValueType
	}
}

// Hgetall returns a cloned field-to-value map, or nil when the key is
// absent. Reactive read on the key.
func (s *Store) Hgetall(key string) (map[string]string, error) {
	v, exists := s.GetValue(key)
	if !exists {
		return nil, nil
	}
	hv, err := asHash(v)
	if err != nil {
		return nil, err
	}
	return hv.Clone().(HashValue), nil
}

// Hmset bulk-writes the given fields into the key's hash, auto-vivified when
// absent. The whole write lands as a single mutation, so observers see at
// most one notification.
func (s *Store) Hmset(key string, fields map[string]string) error {
	if len(fields) == 0 {
		return wrongArity("hmset")
	}

	v, exists := s.GetValue(key)
	next := HashValue{}
	if exists {
		hv, err := asHash(v)
		if err != nil {
			return err
		}
		next = hv.Clone().(HashValue)
	}
	for f, val := range fields {
		next[f] = val
	}
	s.SetValue(key, next)
	return nil
}

// Hincrby adds by to one hash field, auto-initializing the field (and the
// hash) to 0 when absent. Same 32-bit integer semantics as Incrby.
func (s *Store) Hincrby(key, field string, by int64) (int64, error) {
	delta := int32(by)
	if int64(delta) != by {
		return 0, ErrNotAnInteger
	}

	v, exists := s.GetValue(key)
	next := HashValue{}
	var cur int32
	if exists {
		hv, err := asHash(v)
		if err != nil {
			return 0, err
		}
		if raw, present := hv[field]; present {
			cur, err = parseInt32(raw)
			if err != nil {
				return 0, err
			}
		}
		next = hv.Clone().(HashValue)
	}

	res := cur + delta
	next[field] = strconv.FormatInt(int64(res), 10)
	s.SetValue(key, next)
	return int64(res), nil
}
