// Package registry holds the function-signature registry the parser validates
// calls against.
//
// A Registry is built once (from JSON, YAML or msgpack snapshot files) and is
// read-only afterwards, so any number of parses may share it. Store publishes
// replacement snapshots atomically: an in-flight parse keeps the snapshot it
// started with.
//
// Names are stored with the call-marker prefix ("$ping") and compared
// case-insensitively.
package registry
