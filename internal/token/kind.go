package token

// Kind represents the category of a source token.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	Ident

	// POU and declaration keywords
	KwProgram
	KwEndProgram
	KwFunction
	KwEndFunction
	KwFunctionBlock
	KwEndFunctionBlock
	KwVar
	KwVarInput
	KwVarOutput
	KwVarInOut
	KwVarTemp
	KwVarGlobal
	KwEndVar
	KwType
	KwEndType
	KwStruct
	KwEndStruct
	KwArray
	KwOf
	KwString

	// control flow (lexed, rejected by the parser)
	KwIf
	KwThen
	KwElsif
	KwElse
	KwEndIf
	KwFor
	KwTo
	KwBy
	KwDo
	KwEndFor
	KwWhile
	KwEndWhile
	KwRepeat
	KwUntil
	KwEndRepeat
	KwCase
	KwEndCase

	// literals
	IntLit
	ExponentLit // E10, e-3 following a real mantissa
	StringLit
	KwTrue
	KwFalse

	// operators
	KwAnd
	KwOr
	KwXor
	KwNot
	KwMod
	Plus
	Minus
	Star
	Slash
	Eq
	NotEq
	Lt
	LtEq
	Gt
	GtEq

	// punctuation
	Colon
	Semicolon
	Comma
	Dot
	DotDot
	Assign       // :=
	OutputAssign // =>
	LParen
	RParen
	LBracket
	RBracket

	PropertyExternal // @EXTERNAL
)

var kindNames = [...]string{
	Invalid:            "Invalid",
	EOF:                "EOF",
	Ident:              "Ident",
	KwProgram:          "PROGRAM",
	KwEndProgram:       "END_PROGRAM",
	KwFunction:         "FUNCTION",
	KwEndFunction:      "END_FUNCTION",
	KwFunctionBlock:    "FUNCTION_BLOCK",
	KwEndFunctionBlock: "END_FUNCTION_BLOCK",
	KwVar:              "VAR",
	KwVarInput:         "VAR_INPUT",
	KwVarOutput:        "VAR_OUTPUT",
	KwVarInOut:         "VAR_IN_OUT",
	KwVarTemp:          "VAR_TEMP",
	KwVarGlobal:        "VAR_GLOBAL",
	KwEndVar:           "END_VAR",
	KwType:             "TYPE",
	KwEndType:          "END_TYPE",
	KwStruct:           "STRUCT",
	KwEndStruct:        "END_STRUCT",
	KwArray:            "ARRAY",
	KwOf:               "OF",
	KwString:           "STRING",
	KwIf:               "IF",
	KwThen:             "THEN",
	KwElsif:            "ELSIF",
	KwElse:             "ELSE",
	KwEndIf:            "END_IF",
	KwFor:              "FOR",
	KwTo:               "TO",
	KwBy:               "BY",
	KwDo:               "DO",
	KwEndFor:           "END_FOR",
	KwWhile:            "WHILE",
	KwEndWhile:         "END_WHILE",
	KwRepeat:           "REPEAT",
	KwUntil:            "UNTIL",
	KwEndRepeat:        "END_REPEAT",
	KwCase:             "CASE",
	KwEndCase:          "END_CASE",
	IntLit:             "IntLit",
	ExponentLit:        "ExponentLit",
	StringLit:          "StringLit",
	KwTrue:             "TRUE",
	KwFalse:            "FALSE",
	KwAnd:              "AND",
	KwOr:               "OR",
	KwXor:              "XOR",
	KwNot:              "NOT",
	KwMod:              "MOD",
	Plus:               "+",
	Minus:              "-",
	Star:               "*",
	Slash:              "/",
	Eq:                 "=",
	NotEq:              "<>",
	Lt:                 "<",
	LtEq:               "<=",
	Gt:                 ">",
	GtEq:               ">=",
	Colon:              ":",
	Semicolon:          ";",
	Comma:              ",",
	Dot:                ".",
	DotDot:             "..",
	Assign:             ":=",
	OutputAssign:       "=>",
	LParen:             "(",
	RParen:             ")",
	LBracket:           "[",
	RBracket:           "]",
	PropertyExternal:   "@EXTERNAL",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
