package codegen

import (
	"fmt"
	"strings"

	"plcc/internal/layout"
)

// ReturnPolicy decides what happens when a function returns a type the
// calling convention cannot return by value.
type ReturnPolicy uint8

const (
	// ReturnError reports an UnsupportedReturnType CompileError.
	ReturnError ReturnPolicy = iota
	// ReturnAbort panics with the same message.
	ReturnAbort
)

func (p ReturnPolicy) String() string {
	if p == ReturnAbort {
		return "abort"
	}
	return "error"
}

// ParseReturnPolicy accepts the plcc.toml spelling.
func ParseReturnPolicy(s string) (ReturnPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "error":
		return ReturnError, nil
	case "abort":
		return ReturnAbort, nil
	default:
		return ReturnError, fmt.Errorf("invalid unsupported_return policy %q (expected: error|abort)", s)
	}
}

type Options struct {
	ModuleName        string
	Target            layout.Target
	UnsupportedReturn ReturnPolicy
}

// DefaultOptions targets x86_64 Linux and reports unsupported returns as
// errors.
func DefaultOptions(name string) Options {
	return Options{ModuleName: name, Target: layout.X86_64LinuxGNU()}
}
