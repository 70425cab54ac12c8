package parser

import (
	"fmt"

	"forgelsp/internal/diag"
	"forgelsp/internal/registry"
	"forgelsp/internal/source"
)

// checkBrackets applies the tri-state bracket policy of sig.
func checkBrackets(sig *registry.Signature, name string, has bool, sp source.Span) (diag.Diagnostic, bool) {
	switch {
	case sig.Brackets == registry.BracketsForbidden && has:
		return diag.NewError(diag.SemaBracketsForbidden, sp, fmt.Sprintf("$%s does not accept brackets", name)), true
	case sig.Brackets == registry.BracketsRequired && !has:
		return diag.NewError(diag.SemaBracketsRequired, sp, fmt.Sprintf("$%s requires brackets", name)), true
	}
	return diag.Diagnostic{}, false
}

// checkArity compares the supplied slot count with the signature's bounds.
func checkArity(sig *registry.Signature, actual int, sp source.Span) (diag.Diagnostic, bool) {
	if minArgs := sig.MinArgs(); actual < minArgs {
		return diag.NewError(diag.SemaArgCountTooFew, sp,
			fmt.Sprintf("expects at least %d args, got %d", minArgs, actual)), true
	}
	if maxArgs, unbounded := sig.MaxArgs(); !unbounded && actual > maxArgs {
		return diag.NewError(diag.SemaArgCountTooMany, sp,
			fmt.Sprintf("expects at most %d args, got %d", maxArgs, actual)), true
	}
	return diag.Diagnostic{}, false
}
