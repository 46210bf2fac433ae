package store

import (
	"errors"
	"fmt"
)

// ErrWrongType is returned when a command is applied to a key whose current
// value has the wrong variant. Commands never coerce between variants.
var ErrWrongType = errors.New("ember: operation against a key holding the wrong kind of value")

// ErrNotAnInteger is returned when a value does not parse as an integer that
// round-trips exactly through 32-bit truncation. The integer command domain
// is deliberately 32-bit, narrower than the reference protocol's 64-bit.
var ErrNotAnInteger = errors.New("ember: value is not an integer or out of range")

// ErrNotAFloat is returned when a value does not parse as a floating point
// number.
var ErrNotAFloat = errors.New("ember: value is not a valid float")

// ErrNoSuchKey is returned when a command requires an existing key and the
// key is absent (rename source, lset target).
var ErrNoSuchKey = errors.New("ember: no such key")

// ErrSameKey is returned when a rename names the same key as source and
// destination.
var ErrSameKey = errors.New("ember: source and destination objects are the same")

// ErrWrongNumberOfArguments is returned when a command receives a malformed
// argument list.
var ErrWrongNumberOfArguments = errors.New("ember: wrong number of arguments")

// ErrNotImplemented is returned by commands that are registered but
// deliberately unsupported (TTL/expiration, bit operations, blocking pops,
// object introspection, sort).
var ErrNotImplemented = errors.New("ember: command not implemented")

// ErrJournalAlreadyOpen is returned by SaveOriginals when a journal is
// already open. At most one journal can be open at a time.
var ErrJournalAlreadyOpen = errors.New("ember: originals journal already open")

// ErrNoJournalOpen is returned by RetrieveOriginals when no journal is open.
var ErrNoJournalOpen = errors.New("ember: no originals journal open")

// ErrIndexOutOfRange is returned when a list index resolves outside the
// list's bounds.
var ErrIndexOutOfRange = errors.New("ember: index out of range")

// ErrUnknownCommand is returned by the dispatcher for command names that are
// not registered at all.
var ErrUnknownCommand = errors.New("ember: unknown command")

// ErrUnknownValueType signals a store invariant violation: a stored value of
// no known variant. It should never occur; seeing it means the store is
// corrupted.
var ErrUnknownValueType = errors.New("ember: unknown value type in store")

// wrongArity wraps ErrWrongNumberOfArguments with the offending command name.
func wrongArity(cmd string) error {
	return fmt.Errorf("%w for '%s'", ErrWrongNumberOfArguments, cmd)
}
