package store

// unsupportedCommands are registered in the dispatch table but always fail
// with ErrNotImplemented: TTL/expiration, bit operations, blocking pops,
// sorting and object introspection are deliberately out of scope, not
// partially implemented.
var unsupportedCommands = []string{
	// Expiration
	"expire", "expireat", "pexpire", "pexpireat", "ttl", "pttl", "persist",
	// Bit operations
	"setbit", "getbit", "bitcount", "bitop", "bitpos",
	// Blocking pops
	"blpop", "brpop", "brpoplpush",
	// Introspection and misc
	"object", "sort", "dump", "restore", "scan",
}

func registerUnsupported() {
	for _, name := range unsupportedCommands {
		commandTable[name] = commandSpec{0, -1, func(s *Store, args []string) (any, error) {
			return nil, ErrNotImplemented
		}}
	}
}
