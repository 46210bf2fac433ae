package repl

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/pretty"

	"github.com/emberkv/ember/pkg/store"
)

// formatResult renders a dispatcher result in protocol style.
func formatResult(result any) string {
	switch v := result.(type) {
	case nil:
		return "(nil)"
	case string:
		return strconv.Quote(v)
	case bool:
		if v {
			return "(integer) 1"
		}
		return "(integer) 0"
	case int:
		return fmt.Sprintf("(integer) %d", v)
	case int64:
		return fmt.Sprintf("(integer) %d", v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []string:
		if len(v) == 0 {
			return "(empty list)"
		}
		var b strings.Builder
		for i, item := range v {
			fmt.Fprintf(&b, "%d) %s", i+1, strconv.Quote(item))
			if i < len(v)-1 {
				b.WriteByte('\n')
			}
		}
		return b.String()
	case []*string:
		var b strings.Builder
		for i, item := range v {
			if item == nil {
				fmt.Fprintf(&b, "%d) (nil)", i+1)
			} else {
				fmt.Fprintf(&b, "%d) %s", i+1, strconv.Quote(*item))
			}
			if i < len(v)-1 {
				b.WriteByte('\n')
			}
		}
		return b.String()
	case map[string]string:
		fields := make([]string, 0, len(v))
		for f := range v {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		var b strings.Builder
		n := 0
		for _, f := range fields {
			fmt.Fprintf(&b, "%d) %s\n%d) %s", n+1, strconv.Quote(f), n+2, strconv.Quote(v[f]))
			n += 2
			if n < 2*len(fields) {
				b.WriteByte('\n')
			}
		}
		return b.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatValue renders one stored value inline, for watch event lines.
func formatValue(v store.Value) string {
	switch tv := v.(type) {
	case store.StringValue:
		return strconv.Quote(string(tv))
	case store.ListValue:
		items := make([]string, len(tv))
		for i, item := range tv {
			items[i] = strconv.Quote(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case store.HashValue:
		fields := make([]string, 0, len(tv))
		for f := range tv {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		pairs := make([]string, len(fields))
		for i, f := range fields {
			pairs[i] = strconv.Quote(f) + ": " + strconv.Quote(tv[f])
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// jsonValue converts a stored value to its JSON-marshalable shape.
func jsonValue(v store.Value) any {
	switch tv := v.(type) {
	case store.StringValue:
		return string(tv)
	case store.ListValue:
		return []string(tv)
	case store.HashValue:
		return map[string]string(tv)
	default:
		return nil
	}
}

// formatEntries renders fetch results as pretty-printed JSON, keyed by entry
// key. Fetch already sorts, and pretty keeps object key order stable.
func formatEntries(entries []store.Entry) string {
	if len(entries) == 0 {
		return "{}\n"
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(',')
		}
		key, _ := json.Marshal(e.Key)
		val, _ := json.Marshal(jsonValue(e.Value))
		b.Write(key)
		b.WriteByte(':')
		b.Write(val)
	}
	b.WriteByte('}')

	return string(pretty.Pretty([]byte(b.String())))
}

// formatOriginals renders a retrieved journal, sorted by key. Keys that were
// absent at capture time render as (absent).
func formatOriginals(originals map[string]store.Original) string {
	if len(originals) == 0 {
		return "(empty journal)\n"
	}

	keys := make([]string, 0, len(originals))
	for k := range originals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		o := originals[k]
		if !o.Existed {
			fmt.Fprintf(&b, "%s: (absent)\n", k)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", k, formatValue(o.Value))
	}
	return b.String()
}

// tokenize splits an input line into arguments. Double-quoted tokens may
// contain spaces and the escapes \" and \\; single-quoted tokens are taken
// raw, which is how JSON arguments are passed.
func tokenize(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inToken := false
	escaped := false
	quote := rune(0)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case quote == '"' && r == '\\':
			escaped = true
		case quote != 0 && r == quote:
			quote = 0
		case quote == 0 && (r == '"' || r == '\''):
			quote = r
			inToken = true
		case quote == 0 && (r == ' ' || r == '\t'):
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 || escaped {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
