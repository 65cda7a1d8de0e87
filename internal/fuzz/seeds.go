package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

var seeds = []string{
	"",
	"PROGRAM main\nEND_PROGRAM\n",
	`FUNCTION add : DINT
VAR_INPUT a : DINT; b : DINT; END_VAR
add := a + b;
END_FUNCTION

PROGRAM main
VAR total : DINT; END_VAR
total := add(a := total, b := 1);
END_PROGRAM
`,
	`FUNCTION_BLOCK counter
VAR_INPUT step : DINT := 1; END_VAR
VAR_OUTPUT count : DINT; END_VAR
count := count + step;
END_FUNCTION_BLOCK

PROGRAM main
VAR c : counter; total : DINT; END_VAR
c(step := 5, count => total);
END_PROGRAM
`,
	`TYPE point : STRUCT x : INT; y : INT; END_STRUCT END_TYPE
VAR_GLOBAL origin : point; label : STRING[8]; END_VAR
FUNCTION f : point
END_FUNCTION
`,
	`FUNCTION s : DINT
VAR_INPUT x : STRING[5]; END_VAR
END_FUNCTION
PROGRAM main
s('12345');
s('a long literal');
END_PROGRAM
`,
	// broken input
	"PROGRAM main\nVAR x : DINT\nx := ;\nEND_PROGRAM",
	"FUNCTION f : \n",
	"(* unterminated comment",
	"PROGRAM p x := 'unterminated;\nEND_PROGRAM",
	"PROGRAM p IF x THEN y := 1; ELSIF END_PROGRAM",
	"FUNCTION f : ARRAY[1..0] OF INT END_FUNCTION",
	"16#FFFF_FFFF_FFFF_FFFF_FF 1.0e9999 2#102",
}

func addSeeds(f *testing.F) {
	for _, s := range seeds {
		f.Add([]byte(s))
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
