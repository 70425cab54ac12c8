package fuzztests

import (
	"sync"

	"forgelsp/internal/registry"
)

var fuzzRegistry = sync.OnceValue(func() *registry.Registry {
	r := registry.New()
	for _, s := range []registry.Signature{
		{Name: "$ping", Brackets: registry.BracketsForbidden},
		{Name: "$send", Brackets: registry.BracketsRequired, Args: []registry.Arg{{Name: "text", Required: true}}},
		{Name: "$sendMessage", Brackets: registry.BracketsRequired, Args: []registry.Arg{{Name: "text", Required: true}}},
		{Name: "$get", Brackets: registry.BracketsRequired, Args: []registry.Arg{{Name: "key", Required: true}}},
		{Name: "$if", Brackets: registry.BracketsRequired, Args: []registry.Arg{
			{Name: "cond", Required: true}, {Name: "then", Required: true}, {Name: "else"},
		}},
		{Name: "$a", Brackets: registry.BracketsOptional, Args: []registry.Arg{{Name: "x"}, {Name: "rest", Rest: true}}},
		{Name: "$b", Brackets: registry.BracketsOptional, Args: []registry.Arg{{Name: "x"}}},
		{Name: "$c", Brackets: registry.BracketsOptional, Args: []registry.Arg{{Name: "x"}}},
	} {
		r.Put(s)
	}
	return r
})
