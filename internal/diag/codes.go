package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// Syntax
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynExpectIdentifier     Code = 2002
	SynExpectType           Code = 2003
	SynExpectExpression     Code = 2004
	SynExpectSemicolon      Code = 2005
	SynUnclosedParen        Code = 2006
	SynUnclosedBracket      Code = 2007
	SynMissingEnd           Code = 2008
	SynReturnTypeNotAllowed Code = 2009
	SynBadArrayBounds       Code = 2010
	SynBadStringLength      Code = 2011
	SynUnexpectedTopLevel   Code = 2012
	SynControlFlow          Code = 2101

	// Semantic (index construction)
	SemaInfo             Code = 3000
	SemaError            Code = 3001
	SemaDuplicateSymbol  Code = 3002
	SemaDuplicateMember  Code = 3003
	SemaMissingReturn    Code = 3004
	SemaUnknownType      Code = 3005
	SemaMemberShadowsPOU Code = 3006

	// I/O
	IOLoadFileError   Code = 4001
	IOCacheWriteError Code = 4002

	// Code generation
	CgnInfo                  Code = 5000
	CgnUnknownType           Code = 5001
	CgnMissingFunction       Code = 5002
	CgnUnsupportedReturnType Code = 5003
	CgnDuplicateRegistration Code = 5004
	CgnError                 Code = 5005

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown error",

	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexBadNumber:                "Malformed numeric literal",
	LexBadEscape:                "Unknown escape sequence in string literal",

	SynInfo:                 "Syntax information",
	SynUnexpectedToken:      "Unexpected token",
	SynExpectIdentifier:     "Expected identifier",
	SynExpectType:           "Expected type",
	SynExpectExpression:     "Expected expression",
	SynExpectSemicolon:      "Expected ';'",
	SynUnclosedParen:        "Unclosed parenthesis",
	SynUnclosedBracket:      "Unclosed bracket",
	SynMissingEnd:           "Missing END_ keyword",
	SynReturnTypeNotAllowed: "Return type is only allowed on FUNCTION",
	SynBadArrayBounds:       "Invalid array bounds",
	SynBadStringLength:      "Invalid string length",
	SynUnexpectedTopLevel:   "Unexpected top-level item",
	SynControlFlow:          "Control-flow statements are not supported",

	SemaInfo:             "Semantic information",
	SemaError:            "Semantic error",
	SemaDuplicateSymbol:  "Duplicate symbol",
	SemaDuplicateMember:  "Duplicate variable in POU",
	SemaMissingReturn:    "Function without return type",
	SemaUnknownType:      "Unknown type",
	SemaMemberShadowsPOU: "Variable shadows the function's return slot",

	IOLoadFileError:   "I/O load file error",
	IOCacheWriteError: "Build cache write failed",

	CgnInfo:                  "Code generation information",
	CgnUnknownType:           "Unknown type in typed index",
	CgnMissingFunction:       "Missing generated function",
	CgnUnsupportedReturnType: "Unsupported return type",
	CgnDuplicateRegistration: "Duplicate typed index registration",
	CgnError:                 "Code generation error",

	ObsInfo:    "Observability information",
	ObsTimings: "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CGN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
