package lexer

// MatchBracket returns the index of the ']' closing the '[' at open.
// Escaped brackets do not change the depth. ok is false when the input ends
// before the bracket closes.
func MatchBracket(src string, open int) (closeIdx int, ok bool) {
	return matchEscaped(src, open, '[', ']')
}

// MatchBrace is MatchBracket over '{' and '}', used for inline ${ ... } blocks.
func MatchBrace(src string, open int) (closeIdx int, ok bool) {
	return matchEscaped(src, open, '{', '}')
}

// MatchBracketRaw matches brackets ignoring escapes entirely; every '[' and ']'
// counts. Only the literal-escape call uses it, so "\]" inside $esc[...] is
// not special.
func MatchBracketRaw(src string, open int) (closeIdx int, ok bool) {
	if open < 0 || open >= len(src) || src[open] != '[' {
		return -1, false
	}
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}

func matchEscaped(src string, open int, lc, rc byte) (int, bool) {
	if open < 0 || open >= len(src) || src[open] != lc {
		return -1, false
	}
	depth := 0
	for i := open; i < len(src); i++ {
		switch src[i] {
		case lc:
			if !IsEscaped(src, i) {
				depth++
			}
		case rc:
			if IsEscaped(src, i) {
				continue
			}
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return -1, false
}
