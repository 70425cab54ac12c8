package lexer

import "strings"

// IsSpecial reports whether b may follow a backslash to form an escape pair.
func IsSpecial(b byte) bool {
	switch b {
	case '$', '[', ']', ';', '\\':
		return true
	}
	return false
}

// IsEscaped reports whether the byte at off is escaped, i.e. whether the run of
// backslashes immediately preceding it has odd length.
func IsEscaped(src string, off int) bool {
	if off > len(src) {
		off = len(src)
	}
	n := 0
	for i := off - 1; i >= 0 && src[i] == '\\'; i-- {
		n++
	}
	return n%2 == 1
}

// Unescape maps \$ \[ \] \; \\ to $ [ ] ; \ and leaves every other backslash
// in place. Input without escape pairs is returned unchanged.
func Unescape(s string) string {
	idx := strings.IndexByte(s, '\\')
	if idx < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	b.WriteString(s[:idx])
	for i := idx; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) && IsSpecial(s[i+1]) {
			b.WriteByte(s[i+1])
			i++
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
