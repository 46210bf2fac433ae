package store

import "sort"

// orderedKeys maintains the sorted sequence of keys currently matched by an
// ordered observer, translating unordered add/change/remove events into
// positionally stable ones.
//
// Positions use the upper-bound of a key in the sorted sequence: for an
// insertion that is the stable index the key lands at; for an existing key
// the upper bound is always one past its true position, because keys are
// unique. Both lookups are O(log n).
type orderedKeys struct {
	keys []string
}

// upperBound returns the index of the first key strictly greater than key.
func (o *orderedKeys) upperBound(key string) int {
	return sort.Search(len(o.keys), func(i int) bool { return o.keys[i] > key })
}

// insert places key at its stable position, returning the index and the key
// previously occupying it (nil when appended at the end).
func (o *orderedKeys) insert(key string) (index int, before *string) {
	index = o.upperBound(key)
	if index < len(o.keys) {
		b := o.keys[index]
		before = &b
	}
	o.keys = append(o.keys, "")
	copy(o.keys[index+1:], o.keys[index:])
	o.keys[index] = key
	return index, before
}

// indexOf returns the position of an existing key.
func (o *orderedKeys) indexOf(key string) int {
	return o.upperBound(key) - 1
}

// remove deletes an existing key, returning the position it held.
func (o *orderedKeys) remove(key string) int {
	index := o.indexOf(key)
	o.keys = append(o.keys[:index], o.keys[index+1:]...)
	return index
}
