// Package diag defines the diagnostic model shared by every phase of plcc.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEX1001, SYN2001, SEM3002, CGN5001, ...), a short message, the
// primary source.Span and optional notes.
//
// Phases report through a Reporter so they do not depend on storage. The lexer
// and parser use ReportBuilder chains; BagReporter collects into a Bag which
// the driver sorts and deduplicates before rendering with internal/diagfmt.
//
// Code generation failures are produced as *codegen.CompileError values and
// converted into Diagnostics by the driver with the CGN5xxx codes.
//
// The package performs no formatting or IO.
package diag
