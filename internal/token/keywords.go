package token

import "strings"

var keywords = map[string]Kind{
	"PROGRAM":            KwProgram,
	"END_PROGRAM":        KwEndProgram,
	"FUNCTION":           KwFunction,
	"END_FUNCTION":       KwEndFunction,
	"FUNCTION_BLOCK":     KwFunctionBlock,
	"END_FUNCTION_BLOCK": KwEndFunctionBlock,
	"VAR":                KwVar,
	"VAR_INPUT":          KwVarInput,
	"VAR_OUTPUT":         KwVarOutput,
	"VAR_IN_OUT":         KwVarInOut,
	"VAR_TEMP":           KwVarTemp,
	"VAR_GLOBAL":         KwVarGlobal,
	"END_VAR":            KwEndVar,
	"TYPE":               KwType,
	"END_TYPE":           KwEndType,
	"STRUCT":             KwStruct,
	"END_STRUCT":         KwEndStruct,
	"ARRAY":              KwArray,
	"OF":                 KwOf,
	"STRING":             KwString,
	"IF":                 KwIf,
	"THEN":               KwThen,
	"ELSIF":              KwElsif,
	"ELSE":               KwElse,
	"END_IF":             KwEndIf,
	"FOR":                KwFor,
	"TO":                 KwTo,
	"BY":                 KwBy,
	"DO":                 KwDo,
	"END_FOR":            KwEndFor,
	"WHILE":              KwWhile,
	"END_WHILE":          KwEndWhile,
	"REPEAT":             KwRepeat,
	"UNTIL":              KwUntil,
	"END_REPEAT":         KwEndRepeat,
	"CASE":               KwCase,
	"END_CASE":           KwEndCase,
	"TRUE":               KwTrue,
	"FALSE":              KwFalse,
	"AND":                KwAnd,
	"OR":                 KwOr,
	"XOR":                KwXor,
	"NOT":                KwNot,
	"MOD":                KwMod,
}

// LookupKeyword returns the keyword kind for ident. Matching ignores case:
// ST keywords may be written in any case.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToUpper(ident)]
	return k, ok
}
