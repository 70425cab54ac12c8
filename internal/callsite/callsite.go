// Package callsite finds the call enclosing a cursor position and the
// argument the cursor is in. Completion, hover and signature help build on it.
package callsite

import (
	"unicode/utf8"

	"forgelsp/internal/lexer"
	"forgelsp/internal/registry"
)

// Call is the innermost unclosed call before the cursor.
type Call struct {
	Name     string // без "$" и модификатора
	Marker   int    // offset of "$"
	Open     int    // offset of "["
	ArgIndex int    // zero-based active argument
	Silent   bool
	Negated  bool
}

// Find scans text[:cursor] for the nearest unmatched "[" that opens a call
// and counts the top-level "," and ";" separators between it and the cursor.
// Single and double quotes suspend bracket and separator handling, and a
// backslash suspends the character after it.
func Find(text string, cursor int) (Call, bool) {
	if cursor < 0 {
		return Call{}, false
	}
	if cursor > len(text) {
		cursor = len(text)
	}

	depth := 0
	var quote byte
	for i := cursor - 1; i >= 0; i-- {
		c := text[i]
		if c == '\\' {
			continue
		}
		// run of backslashes before c: odd escapes c, and the run itself
		// carries nothing else, so it is skipped in one step
		pos, run := i, 0
		for pos-run > 0 && text[pos-run-1] == '\\' {
			run++
		}
		i -= run
		if run%2 == 1 {
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case ']':
			depth++
		case '[':
			if depth > 0 {
				depth--
				continue
			}
			if call, ok := callBefore(text, pos); ok {
				call.ArgIndex = argIndex(text, pos+1, cursor)
				return call, true
			}
		}
	}
	return Call{}, false
}

// callBefore checks that "$", an optional modifier and a name precede open.
func callBefore(text string, open int) (Call, bool) {
	j := open
	for j > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:j])
		if !lexer.IsNameRune(r) {
			break
		}
		j -= size
	}
	if j == open || j == 0 {
		return Call{}, false
	}
	call := Call{Name: text[j:open], Open: open}
	switch text[j-1] {
	case '!':
		call.Silent = true
		j--
	case '#':
		call.Negated = true
		j--
	}
	if j == 0 || text[j-1] != '$' || lexer.IsEscaped(text, j-1) {
		return Call{}, false
	}
	call.Marker = j - 1
	return call, true
}

func argIndex(text string, from, cursor int) int {
	idx, depth := 0, 0
	var quote byte
	for i := from; i < cursor; i++ {
		c := text[i]
		if c == '\\' {
			i++
			continue
		}
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case ',', ';':
			if depth == 0 {
				idx++
			}
		}
	}
	return idx
}

// Info is a Call resolved against the registry.
type Info struct {
	Call
	Signature *registry.Signature
	Param     *registry.Arg // nil when the index is past the declared parameters
	Enum      []string      // allowed values of Param, if it is an enumeration
}

// Resolve looks up the call's signature, the active parameter and its enum
// values. ok is false when the function is unknown.
func Resolve(reg *registry.Registry, call Call) (Info, bool) {
	info := Info{Call: call}
	sig, ok := reg.Lookup(call.Name)
	if !ok {
		return info, false
	}
	info.Signature = sig
	if p, ok := sig.ArgAt(call.ArgIndex); ok {
		info.Param = p
		info.Enum = reg.EnumValues(p)
	}
	return info, true
}
