package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		key     string
		want    bool
	}{
		// star matches any run, including empty
		{"user:*", "user:1", true},
		{"user:*", "user:", true},
		{"user:*", "admin:1", false},
		{"*", "anything", true},
		{"*", "", true},

		// question mark matches exactly one character
		{"a?c", "abc", true},
		{"a?c", "ac", false},
		{"a?c", "abbc", false},

		// matching is anchored at both ends
		{"user", "user:1", false},
		{"ser:1", "user:1", false},

		// other metacharacters are literal
		{"a.c", "abc", false},
		{"a.c", "a.c", true},
		{"a+b", "a+b", true},
		{"(x)", "(x)", true},

		// bracket classes pass through to the regexp engine
		{"h[ae]llo", "hello", true},
		{"h[ae]llo", "hallo", true},
		{"h[ae]llo", "hullo", false},
		{"h[a-c]t", "hbt", true},
		{"h[^e]llo", "hallo", true},
		{"h[^e]llo", "hello", false},

		// glob forms compose
		{"user:?:*", "user:1:name", true},
		{"user:?:*", "user:12:name", false},
	}

	for _, tt := range tests {
		m, err := Compile(tt.pattern)
		require.NoError(t, err, "pattern %q", tt.pattern)
		assert.Equal(t, tt.want, m.Match(tt.key), "pattern %q key %q", tt.pattern, tt.key)
	}
}

func TestCompileInvalidClass(t *testing.T) {
	_, err := Compile("a[b")
	assert.Error(t, err)
}

func TestLiteral(t *testing.T) {
	m, err := Compile("plain:key")
	require.NoError(t, err)
	assert.True(t, m.Literal())
	assert.True(t, m.Match("plain:key"))
	assert.False(t, m.Match("plain:key2"))

	g, err := Compile("plain:*")
	require.NoError(t, err)
	assert.False(t, g.Literal())

	assert.True(t, IsLiteral("abc"))
	assert.False(t, IsLiteral("ab?"))
	assert.False(t, IsLiteral("a[bc]"))
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("a[b") })
}
