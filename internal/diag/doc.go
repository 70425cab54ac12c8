// Package diag defines the diagnostic model shared by the parser, the driver
// and the renderers.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (SYN2001, SEM3004, ...). Each parse-time problem kind has its own code.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary – half-open byte span in the coordinates of the parsed document.
//   - Notes – optional secondary spans/messages, e.g. "did you mean $ping?".
//
// # Emitting diagnostics
//
// Producers report through a Reporter so that storage stays pluggable.
// BagReporter aggregates into a Bag (limit, sort, dedup, filter, transform),
// SliceReporter keeps everything in emission order.
//
// Package diag performs no IO. Rendering lives in internal/diagfmt; FormatShort
// is the only formatter kept here because tests and the CLI both rely on its
// stable single-line layout.
package diag
