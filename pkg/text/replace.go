package text

import (
	"strings"
)

// StringReplace replaces every non-overlapping occurrence of pattern in
// *buf with replacement, scanning left to right. Inserted replacement text
// is never scanned again.
//
// An empty pattern leaves the buffer untouched, as does a nil buf.
func StringReplace(buf *string, pattern, replacement string) {
	if buf == nil {
		return
	}
	*buf, _ = Replace(*buf, pattern, replacement)
}

// Replace is the copy-returning form of StringReplace. It returns the
// resulting string and the number of substitutions made.
func Replace(s, pattern, replacement string) (string, int) {
	if pattern == "" || s == "" {
		return s, 0
	}

	// first match decides whether we allocate at all
	idx := strings.Index(s, pattern)
	if idx < 0 {
		return s, 0
	}

	var b strings.Builder
	if grow := len(replacement) - len(pattern); grow > 0 {
		b.Grow(len(s) + grow)
	} else {
		b.Grow(len(s))
	}

	count := 0
	for idx >= 0 {
		b.WriteString(s[:idx])
		b.WriteString(replacement)
		s = s[idx+len(pattern):]
		count++
		idx = strings.Index(s, pattern)
	}
	b.WriteString(s)

	return b.String(), count
}
