package registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Brackets is the tri-state bracket policy of a function.
type Brackets uint8

const (
	// BracketsForbidden: the call must not carry brackets.
	BracketsForbidden Brackets = iota
	// BracketsOptional: brackets may be omitted.
	BracketsOptional
	// BracketsRequired: the call must carry brackets.
	BracketsRequired
)

func (b Brackets) String() string {
	switch b {
	case BracketsOptional:
		return "optional"
	case BracketsRequired:
		return "required"
	default:
		return "forbidden"
	}
}

// UnmarshalJSON follows the ForgeScript metadata convention: true means
// required, false means optional and null (or an absent field) means forbidden.
// The spelled-out names are accepted as well.
func (b *Brackets) UnmarshalJSON(data []byte) error {
	switch v := string(bytes.TrimSpace(data)); v {
	case "true":
		*b = BracketsRequired
	case "false":
		*b = BracketsOptional
	case "null":
		*b = BracketsForbidden
	default:
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("brackets: expected bool, null or string, got %s", v)
		}
		switch strings.ToLower(s) {
		case "required":
			*b = BracketsRequired
		case "optional":
			*b = BracketsOptional
		case "forbidden", "none", "":
			*b = BracketsForbidden
		default:
			return fmt.Errorf("brackets: unknown policy %q", s)
		}
	}
	return nil
}

func (b Brackets) MarshalJSON() ([]byte, error) {
	switch b {
	case BracketsRequired:
		return []byte("true"), nil
	case BracketsOptional:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

// TypeKind discriminates ArgType.
type TypeKind uint8

const (
	// TypeNone: no type information.
	TypeNone TypeKind = iota
	// TypeSingle: exactly one type name.
	TypeSingle
	// TypeUnion: a list of alternative type names.
	TypeUnion
)

// ArgType is the type of an argument or of a function output. In metadata it
// is written either as a string or as a list of alternatives.
type ArgType struct {
	Kind  TypeKind
	Names []string
}

// Single builds a one-name ArgType.
func Single(name string) ArgType {
	return ArgType{Kind: TypeSingle, Names: []string{name}}
}

// Union builds an ArgType from alternatives; one alternative collapses to Single.
func Union(names ...string) ArgType {
	switch len(names) {
	case 0:
		return ArgType{}
	case 1:
		return Single(names[0])
	}
	return ArgType{Kind: TypeUnion, Names: append([]string(nil), names...)}
}

func (t ArgType) String() string {
	switch t.Kind {
	case TypeSingle, TypeUnion:
		return strings.Join(t.Names, " | ")
	}
	return ""
}

// Has reports whether name is one of the alternatives (case-insensitive).
func (t ArgType) Has(name string) bool {
	for _, n := range t.Names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func (t *ArgType) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ArgType{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Single(s)
		return nil
	case '[':
		var names []string
		if err := json.Unmarshal(data, &names); err != nil {
			return fmt.Errorf("type: %w", err)
		}
		*t = Union(names...)
		return nil
	}
	return fmt.Errorf("type: expected string or list of strings, got %s", data)
}

func (t ArgType) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case TypeSingle:
		return json.Marshal(t.Names[0])
	case TypeUnion:
		return json.Marshal(t.Names)
	}
	return []byte("null"), nil
}

// Arg describes one declared parameter of a function.
type Arg struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        ArgType  `json:"type"`
	Required    bool     `json:"required,omitempty"`
	Rest        bool     `json:"rest,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	EnumName    string   `json:"enumName,omitempty"`
}

// Signature is the registry entry of one function.
type Signature struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brackets    Brackets `json:"brackets"`
	Unwrap      bool     `json:"unwrap,omitempty"`
	Args        []Arg    `json:"args,omitempty"`
	Output      ArgType  `json:"output"`
	Examples    []string `json:"examples,omitempty"`
	Deprecated  bool     `json:"deprecated,omitempty"`
	// Source locates where the signature came from (file path or URL).
	Source string `json:"source,omitempty"`
}

// MinArgs is the number of required parameters.
func (s *Signature) MinArgs() int {
	n := 0
	for i := range s.Args {
		if s.Args[i].Required {
			n++
		}
	}
	return n
}

// MaxArgs is the number of declared parameters; unbounded is true when any of
// them is a rest parameter.
func (s *Signature) MaxArgs() (max int, unbounded bool) {
	return len(s.Args), s.HasRest()
}

// HasRest reports whether any parameter absorbs extra arguments.
func (s *Signature) HasRest() bool {
	for i := range s.Args {
		if s.Args[i].Rest {
			return true
		}
	}
	return false
}

// ArgAt returns the declared parameter receiving the i-th actual argument.
// Indices past the end land on a trailing rest parameter, if there is one.
func (s *Signature) ArgAt(i int) (*Arg, bool) {
	if i < 0 || len(s.Args) == 0 {
		return nil, false
	}
	if i < len(s.Args) {
		return &s.Args[i], true
	}
	last := &s.Args[len(s.Args)-1]
	if last.Rest {
		return last, true
	}
	return nil, false
}

// Usage renders "$name[arg1;arg2?;rest...]" for help output.
func (s *Signature) Usage() string {
	var b strings.Builder
	b.WriteString(s.Name)
	if s.Brackets == BracketsForbidden {
		return b.String()
	}
	b.WriteByte('[')
	for i, a := range s.Args {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(a.Name)
		if a.Rest {
			b.WriteString("...")
		} else if !a.Required {
			b.WriteByte('?')
		}
	}
	b.WriteByte(']')
	return b.String()
}
