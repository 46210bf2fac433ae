package store

import "strings"

// Linsert placement arguments.
const (
	Before = "before"
	After  = "after"
)

// asList validates that a value is the list variant.
func asList(v Value) (ListValue, error) {
	switch lv := v.(type) {
	case ListValue:
		return lv, nil
	case StringValue, HashValue:
		return nil, ErrWrongType
	default:
		return nil, ErrUnknownValueType
	}
}

// listCopy returns a private copy of the key's list, auto-vivified as empty
// when the key is absent. Every mutating list command edits such a copy and
// writes it back through SetValue, so a single command yields at most one
// key-level notification no matter how many internal edits it performs.
func (s *Store) listCopy(key string) (ListValue, error) {
	v, exists := s.lookup(key)
	if !exists {
		return ListValue{}, nil
	}
	lv, err := asList(v)
	if err != nil {
		return nil, err
	}
	return lv.Clone().(ListValue), nil
}

// Lpush prepends values to the key's list, auto-vivified when absent, and
// returns the new length. Values are pushed one at a time, so the last
// argument ends up at the head.
func (s *Store) Lpush(key string, values ...string) (int, error) {
	if len(values) == 0 {
		return 0, wrongArity("lpush")
	}
	list, err := s.listCopy(key)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		list = append(ListValue{v}, list...)
	}
	s.SetValue(key, list)
	return len(list), nil
}

// Rpush appends values to the key's list, auto-vivified when absent, and
// returns the new length.
func (s *Store) Rpush(key string, values ...string) (int, error) {
	if len(values) == 0 {
		return 0, wrongArity("rpush")
	}
	list, err := s.listCopy(key)
	if err != nil {
		return 0, err
	}
	list = append(list, values...)
	s.SetValue(key, list)
	return len(list), nil
}

// Lpushx is Lpush for existing keys only: returns 0 without mutation when
// the key is absent.
func (s *Store) Lpushx(key string, values ...string) (int, error) {
	if len(values) == 0 {
		return 0, wrongArity("lpushx")
	}
	if _, exists := s.lookup(key); !exists {
		return 0, nil
	}
	return s.Lpush(key, values...)
}

// Rpushx is Rpush for existing keys only: returns 0 without mutation when
// the key is absent.
func (s *Store) Rpushx(key string, values ...string) (int, error) {
	if len(values) == 0 {
		return 0, wrongArity("rpushx")
	}
	if _, exists := s.lookup(key); !exists {
		return 0, nil
	}
	return s.Rpush(key, values...)
}

// Lpop removes and returns the head of the list. ok is false when the list
// is empty. An absent key is vivified as an empty list and written back.
func (s *Store) Lpop(key string) (value string, ok bool, err error) {
	list, err := s.listCopy(key)
	if err != nil {
		return "", false, err
	}
	if len(list) > 0 {
		value = list[0]
		list = list[1:]
		ok = true
	}
	s.SetValue(key, list)
	return value, ok, nil
}

// Rpop removes and returns the tail of the list. ok is false when the list
// is empty. An absent key is vivified as an empty list and written back.
func (s *Store) Rpop(key string) (value string, ok bool, err error) {
	list, err := s.listCopy(key)
	if err != nil {
		return "", false, err
	}
	if n := len(list); n > 0 {
		value = list[n-1]
		list = list[:n-1]
		ok = true
	}
	s.SetValue(key, list)
	return value, ok, nil
}

// Lindex returns the element at index, with negative indices wrapping from
// the tail. ok is false when the key is absent or the index is out of range.
func (s *Store) Lindex(key string, index int) (value string, ok bool, err error) {
	v, exists := s.GetValue(key)
	if !exists {
		return "", false, nil
	}
	lv, err := asList(v)
	if err != nil {
		return "", false, err
	}
	if index < 0 {
		index += len(lv)
	}
	if index < 0 || index >= len(lv) {
		return "", false, nil
	}
	return lv[index], true, nil
}

// Linsert inserts value before or after the first occurrence of pivot.
// Returns the new length, -1 when the pivot is not found, or 0 without
// mutation when the key is absent. where must be Before or After.
func (s *Store) Linsert(key, where, pivot, value string) (int, error) {
	var after bool
	switch strings.ToLower(where) {
	case Before:
	case After:
		after = true
	default:
		return 0, wrongArity("linsert")
	}

	v, exists := s.lookup(key)
	if !exists {
		return 0, nil
	}
	lv, err := asList(v)
	if err != nil {
		return 0, err
	}

	at := -1
	for i, item := range lv {
		if item == pivot {
			at = i
			break
		}
	}
	if at == -1 {
		return -1, nil
	}
	if after {
		at++
	}

	list := make(ListValue, 0, len(lv)+1)
	list = append(list, lv[:at]...)
	list = append(list, value)
	list = append(list, lv[at:]...)
	s.SetValue(key, list)
	return len(list), nil
}

// Lrange returns the elements between the inclusive (start, stop) bounds,
// with negative indices wrapping from the tail. Absent keys read as empty.
func (s *Store) Lrange(key string, start, stop int) ([]string, error) {
	v, exists := s.GetValue(key)
	if !exists {
		return nil, nil
	}
	lv, err := asList(v)
	if err != nil {
		return nil, err
	}
	lo, hi, empty := normalizeRange(start, stop, len(lv))
	if empty {
		return nil, nil
	}
	out := make([]string, hi-lo+1)
	copy(out, lv[lo:hi+1])
	return out, nil
}

// Lset overwrites the element at index. Fails with ErrNoSuchKey when the key
// is absent and ErrIndexOutOfRange when the index does not resolve.
func (s *Store) Lset(key string, index int, value string) error {
	v, exists := s.lookup(key)
	if !exists {
		return ErrNoSuchKey
	}
	lv, err := asList(v)
	if err != nil {
		return err
	}
	if index < 0 {
		index += len(lv)
	}
	if index < 0 || index >= len(lv) {
		return ErrIndexOutOfRange
	}

	list := lv.Clone().(ListValue)
	list[index] = value
	s.SetValue(key, list)
	return nil
}

// Ltrim keeps only the elements between the inclusive (start, stop) bounds.
// An absent key is vivified as an empty list and written back.
func (s *Store) Ltrim(key string, start, stop int) error {
	list, err := s.listCopy(key)
	if err != nil {
		return err
	}
	lo, hi, empty := normalizeRange(start, stop, len(list))
	if empty {
		s.SetValue(key, ListValue{})
		return nil
	}
	trimmed := make(ListValue, hi-lo+1)
	copy(trimmed, list[lo:hi+1])
	s.SetValue(key, trimmed)
	return nil
}

// Llen returns the list's length; 0 when absent.
func (s *Store) Llen(key string) (int, error) {
	v, exists := s.GetValue(key)
	if !exists {
		return 0, nil
	}
	lv, err := asList(v)
	if err != nil {
		return 0, err
	}
	return len(lv), nil
}
