package store

import "context"

// DoAsync is the trailing-callback adapter over Do. The command and all of
// its synchronous notifications complete first; the callback is then
// delivered on a fresh goroutine, so the caller never re-enters the store
// synchronously from inside its own callback. A nil callback discards the
// result.
//
// Both call styles are thin adapters over the same synchronous core; there
// is exactly one implementation of each command.
func (s *Store) DoAsync(ctx context.Context, name string, args []string, cb func(result any, err error)) {
	result, err := s.Do(ctx, name, args...)
	if cb == nil {
		return
	}
	go cb(result, err)
}
