package lexer

import (
	"plcc/internal/diag"
	"plcc/internal/token"
)

// scanString lexes a single-quoted literal. Token.Text keeps the quotes and
// the raw escapes; Unquote decodes them.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp) + "'"}
		}
		b := lx.cursor.Bump()
		switch b {
		case '\'':
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '$':
			escStart := lx.cursor.Mark() - 1
			if _, n, ok := decodeEscape(lx.file.Content[lx.cursor.Off:]); ok {
				for range n {
					lx.cursor.Bump()
				}
			} else {
				if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "unknown escape sequence in string literal")
			}
		}
	}
}

// decodeEscape decodes the escape following a `$`. It returns the produced
// byte and the number of bytes consumed after the `$`.
func decodeEscape(rest []byte) (b byte, n int, ok bool) {
	if len(rest) == 0 {
		return 0, 0, false
	}
	switch rest[0] {
	case '$':
		return '$', 1, true
	case '\'':
		return '\'', 1, true
	case '"':
		return '"', 1, true
	case 'L', 'l', 'N', 'n':
		return '\n', 1, true
	case 'P', 'p':
		return '\f', 1, true
	case 'R', 'r':
		return '\r', 1, true
	case 'T', 't':
		return '\t', 1, true
	}
	if len(rest) >= 2 && isHex(rest[0]) && isHex(rest[1]) {
		return hexVal(rest[0])<<4 | hexVal(rest[1]), 2, true
	}
	return 0, 0, false
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}

// Unquote strips the quotes of a string token and decodes `$` escapes.
// Unknown escapes are kept verbatim.
func Unquote(lit string) string {
	if len(lit) >= 2 && lit[0] == '\'' && lit[len(lit)-1] == '\'' {
		lit = lit[1 : len(lit)-1]
	}
	out := make([]byte, 0, len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '$' {
			out = append(out, c)
			continue
		}
		b, n, ok := decodeEscape([]byte(lit[i+1:]))
		if !ok {
			out = append(out, c)
			continue
		}
		out = append(out, b)
		i += n
	}
	return string(out)
}
