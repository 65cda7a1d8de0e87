// Package fuzztests holds fuzz harnesses for the front end and code
// generator: arbitrary bytes go through the lexer, the parser, the index
// and, when the unit is clean, codegen. None of them may panic or hang.
package fuzztests
