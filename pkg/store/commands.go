package store

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// commandHandler executes one named command against a store.
type commandHandler func(s *Store, args []string) (any, error)

// commandSpec describes a registered command: its argument bounds and
// handler. maxArgs of -1 means variadic.
type commandSpec struct {
	minArgs int
	maxArgs int
	handler commandHandler
}

// Do dispatches a command by name, the uniform surface behind the REPL and
// the async adapter. Names are case-insensitive. Arity is validated before
// the handler runs; unknown names fail with ErrUnknownCommand and
// deliberately unsupported ones with ErrNotImplemented.
//
// The context is used for tracing only; commands themselves never block.
func (s *Store) Do(ctx context.Context, name string, args ...string) (result any, err error) {
	cmd := strings.ToLower(name)
	spec, ok := commandTable[cmd]
	if !ok {
		return nil, fmt.Errorf("%w '%s'", ErrUnknownCommand, name)
	}
	if len(args) < spec.minArgs || (spec.maxArgs >= 0 && len(args) > spec.maxArgs) {
		return nil, wrongArity(cmd)
	}

	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "ember."+cmd,
			trace.WithAttributes(attribute.String("ember.command", cmd)))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()
		}()
	}

	start := time.Now()
	result, err = spec.handler(s, args)

	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.commands.WithLabelValues(cmd, status).Inc()
		s.metrics.commandDuration.WithLabelValues(cmd).Observe(time.Since(start).Seconds())
	}
	return result, err
}

// Commands returns the sorted names of all registered commands, the
// deliberately unsupported ones included.
func Commands() []string {
	names := make([]string, 0, len(commandTable))
	for name := range commandTable {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parseCommandInt parses an integer command argument.
func parseCommandInt(arg string) (int64, error) {
	n, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, ErrNotAnInteger
	}
	return n, nil
}

// parseCommandIndex parses an index/range command argument.
func parseCommandIndex(arg string) (int, error) {
	n, err := parseCommandInt(arg)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// parseCommandFloat parses a float command argument.
func parseCommandFloat(arg string) (float64, error) {
	f, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, ErrNotAFloat
	}
	return f, nil
}

// commandTable registers every command. Handlers adapt the positional string
// arguments onto the typed methods; nothing here carries semantics of its
// own.
var commandTable = map[string]commandSpec{
	// Generic
	"exists": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Exists(args[0]), nil
	}},
	"keys": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Keys(args[0])
	}},
	"randomkey": {0, 0, func(s *Store, args []string) (any, error) {
		key, ok := s.RandomKey()
		if !ok {
			return nil, nil
		}
		return key, nil
	}},
	"rename": {2, 2, func(s *Store, args []string) (any, error) {
		return "OK", s.Rename(args[0], args[1])
	}},
	"renamenx": {2, 2, func(s *Store, args []string) (any, error) {
		ok, err := s.Renamenx(args[0], args[1])
		return boolToInt(ok), err
	}},
	"type": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Type(args[0]), nil
	}},
	"del": {1, -1, func(s *Store, args []string) (any, error) {
		return s.Del(args...), nil
	}},

	// Strings
	"get": {1, 1, func(s *Store, args []string) (any, error) {
		v, ok, err := s.Get(args[0])
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	}},
	"set": {2, 2, func(s *Store, args []string) (any, error) {
		s.Set(args[0], args[1])
		return "OK", nil
	}},
	"setnx": {2, 2, func(s *Store, args []string) (any, error) {
		return boolToInt(s.Setnx(args[0], args[1])), nil
	}},
	"setex": {3, 3, func(s *Store, args []string) (any, error) {
		seconds, err := parseCommandInt(args[1])
		if err != nil {
			return nil, err
		}
		return "OK", s.Setex(args[0], seconds, args[2])
	}},
	"getset": {2, 2, func(s *Store, args []string) (any, error) {
		old, ok, err := s.Getset(args[0], args[1])
		if err != nil || !ok {
			return nil, err
		}
		return old, nil
	}},
	"getrange": {3, 3, func(s *Store, args []string) (any, error) {
		start, err := parseCommandIndex(args[1])
		if err != nil {
			return nil, err
		}
		end, err := parseCommandIndex(args[2])
		if err != nil {
			return nil, err
		}
		return s.Getrange(args[0], start, end)
	}},
	"strlen": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Strlen(args[0])
	}},
	"append": {2, 2, func(s *Store, args []string) (any, error) {
		return s.Append(args[0], args[1])
	}},
	"incr": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Incr(args[0])
	}},
	"decr": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Decr(args[0])
	}},
	"incrby": {2, 2, func(s *Store, args []string) (any, error) {
		by, err := parseCommandInt(args[1])
		if err != nil {
			return nil, err
		}
		return s.Incrby(args[0], by)
	}},
	"decrby": {2, 2, func(s *Store, args []string) (any, error) {
		by, err := parseCommandInt(args[1])
		if err != nil {
			return nil, err
		}
		return s.Decrby(args[0], by)
	}},
	"incrbyfloat": {2, 2, func(s *Store, args []string) (any, error) {
		by, err := parseCommandFloat(args[1])
		if err != nil {
			return nil, err
		}
		return s.Incrbyfloat(args[0], by)
	}},
	"mget": {1, -1, func(s *Store, args []string) (any, error) {
		return s.Mget(args...), nil
	}},
	"mset": {2, -1, func(s *Store, args []string) (any, error) {
		return "OK", s.Mset(args...)
	}},
	"msetnx": {2, -1, func(s *Store, args []string) (any, error) {
		ok, err := s.Msetnx(args...)
		return boolToInt(ok), err
	}},

	// Hashes
	"hgetall": {1, 1, func(s *Store, args []string) (any, error) {
		m, err := s.Hgetall(args[0])
		if err != nil || m == nil {
			return nil, err
		}
		return m, nil
	}},
	"hmset": {3, -1, func(s *Store, args []string) (any, error) {
		if (len(args)-1)%2 != 0 {
			return nil, wrongArity("hmset")
		}
		fields := make(map[string]string, (len(args)-1)/2)
		for i := 1; i < len(args); i += 2 {
			fields[args[i]] = args[i+1]
		}
		return "OK", s.Hmset(args[0], fields)
	}},
	"hincrby": {3, 3, func(s *Store, args []string) (any, error) {
		by, err := parseCommandInt(args[2])
		if err != nil {
			return nil, err
		}
		return s.Hincrby(args[0], args[1], by)
	}},

	// Lists
	"lpush": {2, -1, func(s *Store, args []string) (any, error) {
		return s.Lpush(args[0], args[1:]...)
	}},
	"rpush": {2, -1, func(s *Store, args []string) (any, error) {
		return s.Rpush(args[0], args[1:]...)
	}},
	"lpushx": {2, -1, func(s *Store, args []string) (any, error) {
		return s.Lpushx(args[0], args[1:]...)
	}},
	"rpushx": {2, -1, func(s *Store, args []string) (any, error) {
		return s.Rpushx(args[0], args[1:]...)
	}},
	"lpop": {1, 1, func(s *Store, args []string) (any, error) {
		v, ok, err := s.Lpop(args[0])
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	}},
	"rpop": {1, 1, func(s *Store, args []string) (any, error) {
		v, ok, err := s.Rpop(args[0])
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	}},
	"lindex": {2, 2, func(s *Store, args []string) (any, error) {
		index, err := parseCommandIndex(args[1])
		if err != nil {
			return nil, err
		}
		v, ok, err := s.Lindex(args[0], index)
		if err != nil || !ok {
			return nil, err
		}
		return v, nil
	}},
	"linsert": {4, 4, func(s *Store, args []string) (any, error) {
		return s.Linsert(args[0], args[1], args[2], args[3])
	}},
	"lrange": {3, 3, func(s *Store, args []string) (any, error) {
		start, err := parseCommandIndex(args[1])
		if err != nil {
			return nil, err
		}
		stop, err := parseCommandIndex(args[2])
		if err != nil {
			return nil, err
		}
		return s.Lrange(args[0], start, stop)
	}},
	"lset": {3, 3, func(s *Store, args []string) (any, error) {
		index, err := parseCommandIndex(args[1])
		if err != nil {
			return nil, err
		}
		return "OK", s.Lset(args[0], index, args[2])
	}},
	"ltrim": {3, 3, func(s *Store, args []string) (any, error) {
		start, err := parseCommandIndex(args[1])
		if err != nil {
			return nil, err
		}
		stop, err := parseCommandIndex(args[2])
		if err != nil {
			return nil, err
		}
		return "OK", s.Ltrim(args[0], start, stop)
	}},
	"llen": {1, 1, func(s *Store, args []string) (any, error) {
		return s.Llen(args[0])
	}},
}

// boolToInt renders protocol-style boolean results.
func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func init() {
	registerUnsupported()
}
