// Package pattern compiles glob-style key patterns into anchored matchers.
//
// Supported syntax: `*` matches any run of characters, `?` matches exactly one
// character, and bracket expressions `[...]` pass through unescaped into the
// underlying regular-expression engine's character-class syntax. All other
// metacharacters match literally.
//
// Note that the bracket pass-through means class internals follow RE2
// semantics (ranges, negation via `[^...]`, escapes) rather than the reference
// protocol's bracket rules. This is a known, deliberate deviation.
package pattern

import (
	"regexp"
	"strings"
)

// Matcher is a compiled glob pattern.
type Matcher struct {
	pattern string

	// re is nil for literal patterns, which match by string equality.
	re *regexp.Regexp
}

// Compile translates a glob pattern into an anchored matcher.
// Returns an error when a bracket expression does not form a valid
// character class.
func Compile(pat string) (*Matcher, error) {
	if IsLiteral(pat) {
		return &Matcher{pattern: pat}, nil
	}

	var b strings.Builder
	b.WriteString(`\A`)
	for _, r := range pat {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteByte('.')
		case '[', ']':
			// Pass through: class internals keep the engine's semantics.
			b.WriteRune(r)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`\z`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, err
	}
	return &Matcher{pattern: pat, re: re}, nil
}

// MustCompile is like Compile but panics on an invalid pattern.
// Intended for patterns known at compile time.
func MustCompile(pat string) *Matcher {
	m, err := Compile(pat)
	if err != nil {
		panic(`pattern: Compile(` + pat + `): ` + err.Error())
	}
	return m
}

// Match reports whether the key matches the compiled pattern.
func (m *Matcher) Match(key string) bool {
	if m.re == nil {
		return key == m.pattern
	}
	return m.re.MatchString(key)
}

// Pattern returns the source pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Literal reports whether the pattern contains no glob metacharacters and
// therefore matches exactly one key.
func (m *Matcher) Literal() bool {
	return m.re == nil
}

// IsLiteral reports whether pat contains no glob metacharacters.
// Callers use this to take exact-key fast paths instead of scanning the
// whole keyspace.
func IsLiteral(pat string) bool {
	return !strings.ContainsAny(pat, "*?[]")
}
