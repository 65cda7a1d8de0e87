package codegen

import "plcc/internal/ast"

// Lifetime says how long a POU instance lives.
type Lifetime uint8

const (
	// LifetimeTransient instances exist for one call and are materialized
	// by the caller.
	LifetimeTransient Lifetime = iota
	// LifetimeStatic instances persist between calls.
	LifetimeStatic
)

func (l Lifetime) String() string {
	if l == LifetimeStatic {
		return "static"
	}
	return "transient"
}

// InstancePolicy is the per-kind storage decision shared by the stub pass,
// the body pass and call sites. All kinds use the same struct layout.
type InstancePolicy struct {
	Lifetime Lifetime
	// Singleton instances are module globals named <pou>_instance.
	Singleton bool
	// ReplayInitializers re-runs VAR initializers at the start of every
	// call. Static instances get their initial values at construction.
	ReplayInitializers bool
}

// LifetimeOf returns the instance policy of a POU kind:
//
//	FUNCTION        transient frame, initializers replayed per call
//	PROGRAM         static global singleton
//	FUNCTION_BLOCK  static, owned by the variable declaring the instance
func LifetimeOf(kind ast.PouKind) InstancePolicy {
	switch kind {
	case ast.PouFunction:
		return InstancePolicy{Lifetime: LifetimeTransient, ReplayInitializers: true}
	case ast.PouProgram:
		return InstancePolicy{Lifetime: LifetimeStatic, Singleton: true}
	default:
		return InstancePolicy{Lifetime: LifetimeStatic}
	}
}
