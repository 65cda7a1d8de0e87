package trace

import "context"

type ctxKey struct{}

// ctxState is what a context carries: the tracer and the innermost span
// started through it.
type ctxState struct {
	tracer Tracer
	span   uint64
}

func stateOf(ctx context.Context) ctxState {
	if ctx != nil {
		if s, ok := ctx.Value(ctxKey{}).(ctxState); ok {
			return s
		}
	}
	return ctxState{tracer: Nop}
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx. Spans already open in ctx stay the parent.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	s := stateOf(ctx)
	s.tracer = t
	return context.WithValue(ctx, ctxKey{}, s)
}

// SpanID returns the innermost span started through ctx, 0 at the root.
func SpanID(ctx context.Context) uint64 {
	return stateOf(ctx).span
}

// StartSpan begins a span under the span carried by ctx and returns a
// context carrying the new one.
func StartSpan(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	s := stateOf(ctx)
	sp := Begin(s.tracer, scope, name, s.span)
	if sp.ID() == 0 {
		return ctx, sp
	}
	s.span = sp.ID()
	return context.WithValue(ctx, ctxKey{}, s), sp
}

// Mark emits a point event under the span carried by ctx.
func Mark(ctx context.Context, scope Scope, name, detail string) {
	s := stateOf(ctx)
	Point(s.tracer, scope, name, detail, s.span)
}
