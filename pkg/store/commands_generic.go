package store

import (
	"math/rand"
	"sort"

	"github.com/emberkv/ember/pkg/pattern"
)

// allKeysMatcher backs reads that depend on the whole keyspace.
var allKeysMatcher = pattern.MustCompile("*")

// Exists reports whether the key is present. Reactive read on the key.
func (s *Store) Exists(key string) bool {
	return s.Has(key)
}

// Keys returns all keys matching the glob pattern, sorted.
// Reactive read scoped to the pattern.
func (s *Store) Keys(pat string) ([]string, error) {
	m, err := pattern.Compile(pat)
	if err != nil {
		return nil, err
	}
	s.dependPattern(m)

	if m.Literal() {
		if _, ok := s.lookup(m.Pattern()); ok {
			return []string{m.Pattern()}, nil
		}
		return nil, nil
	}

	var keys []string
	s.forEachKey(func(key string, _ Value) {
		if m.Match(key) {
			keys = append(keys, key)
		}
	})
	sort.Strings(keys)
	return keys, nil
}

// RandomKey returns a uniformly random key; ok is false when the store is
// empty. Reactive read on keyspace membership.
func (s *Store) RandomKey() (key string, ok bool) {
	s.dependPattern(allKeysMatcher)

	var keys []string
	s.forEachKey(func(k string, _ Value) {
		keys = append(keys, k)
	})
	if len(keys) == 0 {
		return "", false
	}
	return keys[rand.Intn(len(keys))], true
}

// Rename moves the value from one key to another, overwriting the
// destination. Fails with ErrSameKey when the keys are equal and
// ErrNoSuchKey when the source is absent.
func (s *Store) Rename(from, to string) error {
	if from == to {
		return ErrSameKey
	}
	v, exists := s.lookup(from)
	if !exists {
		return ErrNoSuchKey
	}
	s.Remove(from)
	s.SetValue(to, v)
	return nil
}

// Renamenx renames only when the destination is absent.
// Returns whether the rename happened.
func (s *Store) Renamenx(from, to string) (bool, error) {
	if from == to {
		return false, ErrSameKey
	}
	if _, exists := s.lookup(from); !exists {
		return false, ErrNoSuchKey
	}
	if _, exists := s.lookup(to); exists {
		return false, nil
	}
	return true, s.Rename(from, to)
}

// Type returns the protocol-level type name of the key's value: "none",
// "string", "list" or "hash". Reactive read on the key.
func (s *Store) Type(key string) string {
	v, exists := s.GetValue(key)
	if !exists {
		return KindNone.String()
	}
	return v.Kind().String()
}

// Del removes the given keys, returning how many existed.
func (s *Store) Del(keys ...string) int {
	n := 0
	for _, key := range keys {
		if s.Remove(key) {
			n++
		}
	}
	return n
}
