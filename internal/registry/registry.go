package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
)

var (
	// ErrDuplicateFunction is returned when a name is registered twice.
	ErrDuplicateFunction = errors.New("duplicate function")
	// ErrEmptyName is returned for signatures without a name.
	ErrEmptyName = errors.New("function name is empty")
)

// Registry maps function names to signatures. The zero value is not usable;
// call New.
type Registry struct {
	funcs map[string]*Signature
	enums map[string][]string
	names []string // canonical names, kept sorted
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		funcs: make(map[string]*Signature),
		enums: make(map[string][]string),
	}
}

// CanonicalName adds the "$" prefix when it is missing.
func CanonicalName(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(name, "$") {
		return name
	}
	return "$" + name
}

func foldKey(name string) string {
	name = CanonicalName(name)
	for i := 0; i < len(name); i++ {
		if name[i] >= utf8.RuneSelf {
			// Caser is stateful; a fresh one per call keeps Registry safe for readers.
			return cases.Fold().String(name)
		}
	}
	return strings.ToLower(name)
}

// Add registers sig. The name gets a "$" prefix if it lacks one.
func (r *Registry) Add(sig Signature) error {
	return r.add(sig, false)
}

// Put registers sig, replacing any previous entry with the same name.
func (r *Registry) Put(sig Signature) {
	_ = r.add(sig, true)
}

func (r *Registry) add(sig Signature, overwrite bool) error {
	if strings.TrimPrefix(strings.TrimSpace(sig.Name), "$") == "" {
		return ErrEmptyName
	}
	sig.Name = CanonicalName(sig.Name)
	key := foldKey(sig.Name)
	if prev, ok := r.funcs[key]; ok {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrDuplicateFunction, sig.Name)
		}
		for i, n := range r.names {
			if n == prev.Name {
				r.names[i] = sig.Name
				break
			}
		}
	} else {
		i := sort.Search(len(r.names), func(i int) bool {
			return foldKey(r.names[i]) >= key
		})
		r.names = append(r.names, "")
		copy(r.names[i+1:], r.names[i:])
		r.names[i] = sig.Name
	}
	r.funcs[key] = &sig
	return nil
}

// AddEnum registers a named enumeration referenced by Arg.EnumName.
func (r *Registry) AddEnum(name string, values []string) {
	r.enums[strings.ToLower(name)] = append([]string(nil), values...)
}

// Lookup finds a signature by name, with or without the "$" prefix,
// ignoring case.
func (r *Registry) Lookup(name string) (*Signature, bool) {
	if r == nil {
		return nil, false
	}
	sig, ok := r.funcs[foldKey(name)]
	return sig, ok
}

// LookupEnum returns the values of a named enumeration.
func (r *Registry) LookupEnum(name string) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.enums[strings.ToLower(name)]
	return v, ok
}

// EnumValues resolves the allowed values of a parameter: an inline list wins
// over a named enumeration.
func (r *Registry) EnumValues(a *Arg) []string {
	if a == nil {
		return nil
	}
	if len(a.Enum) > 0 {
		return a.Enum
	}
	if a.EnumName != "" {
		v, _ := r.LookupEnum(a.EnumName)
		return v
	}
	return nil
}

// Len is the number of registered functions.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.funcs)
}

// Names returns the canonical names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return append([]string(nil), r.names...)
}

// Functions returns all signatures ordered by name.
func (r *Registry) Functions() []*Signature {
	names := r.Names()
	out := make([]*Signature, 0, len(names))
	for _, n := range names {
		out = append(out, r.funcs[foldKey(n)])
	}
	return out
}

// Enums returns a copy of the enumeration table.
func (r *Registry) Enums() map[string][]string {
	out := make(map[string][]string, len(r.enums))
	for k, v := range r.enums {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Merge copies every function and enum of other into r.
func (r *Registry) Merge(other *Registry, overwrite bool) error {
	if other == nil {
		return nil
	}
	for _, sig := range other.Functions() {
		if err := r.add(*sig, overwrite); err != nil {
			return err
		}
	}
	for k, v := range other.enums {
		if _, ok := r.enums[k]; ok && !overwrite {
			continue
		}
		r.enums[k] = v
	}
	return nil
}

type nameSource []string

func (s nameSource) String(i int) string { return strings.ToLower(strings.TrimPrefix(s[i], "$")) }
func (s nameSource) Len() int            { return len(s) }

// Suggest returns up to n registered names that fuzzily resemble name, best
// match first.
func (r *Registry) Suggest(name string, n int) []string {
	if r.Len() == 0 || n <= 0 {
		return nil
	}
	pattern := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), "$"))
	if pattern == "" {
		return nil
	}
	names := nameSource(r.Names())
	matches := fuzzy.FindFrom(pattern, names)
	out := make([]string, 0, n)
	for _, m := range matches {
		if len(out) == n {
			break
		}
		out = append(out, names[m.Index])
	}
	return out
}
