// Package driver runs the parser over files and directories: loading,
// parsing, collecting diagnostics into bags, timings, tracing and progress
// events for the UI.
package driver
