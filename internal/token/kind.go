package token

// Kind represents the category of a ForgeScript token.
type Kind uint8

const (
	// Text is a run of plain template text, escapes included verbatim.
	Text Kind = iota
	// FunctionName is a call to a function known to the registry.
	FunctionName
	// Escaped is the verbatim interior of a literal-escape call such as $esc[...].
	Escaped
	// JavaScript is an inline ${ ... } block, kept opaque.
	JavaScript
	// Unknown is a call the registry does not know, or a malformed escape call.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case FunctionName:
		return "FunctionName"
	case Escaped:
		return "Escaped"
	case JavaScript:
		return "JavaScript"
	case Unknown:
		return "Unknown"
	}
	return "Invalid"
}
