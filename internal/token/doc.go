// Package token defines the token kinds produced by the ForgeScript scanner.
// Invariants:
//   - Token.Text is a slice of the scanned buffer (no copies).
//   - Tokens come only from the top-level scan; bracket and brace interiors
//     consumed as a whole are not re-tokenized.
//   - Escaped tokens carry only the verbatim interior of a literal-escape call.
package token
