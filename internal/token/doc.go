// Package token defines the lexical token kinds of Structured Text.
//
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly.
//   - Keywords are case-insensitive; identifiers keep their original spelling.
//   - Elementary type names (INT, DINT, REAL, ...) are identifiers; STRING is
//     a keyword because it takes an optional length suffix.
//   - Comments are skipped by the lexer and never reach the token stream.
package token
