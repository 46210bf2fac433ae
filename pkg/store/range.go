package store

// normalizeRange resolves an inclusive (start, end) pair against a sequence
// of length n. Negative indices wrap by adding the length (Python-style, not
// clamped before wrapping); end is clamped to n-1 before wrapping. The final
// bounds are clamped so they can be used directly as slice indices.
//
// This single routine backs string GETRANGE and list LRANGE/LTRIM so all
// range-style commands share identical edge-case behavior.
func normalizeRange(start, end, n int) (lo, hi int, empty bool) {
	if n == 0 {
		return 0, 0, true
	}

	if start < 0 {
		start += n
	}
	if end >= n {
		end = n - 1
	}
	if end < 0 {
		end += n
	}

	// Clamp for slice safety: a start that wrapped past the front reads
	// from the beginning; an end still negative after wrapping is before
	// the front entirely.
	if start < 0 {
		start = 0
	}
	if end < 0 {
		return 0, 0, true
	}
	if end < start {
		return 0, 0, true
	}
	return start, end, false
}
