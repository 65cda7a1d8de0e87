// Package trace records compiler phases as nested spans.
//
// Tracing is enabled from the command line:
//
//	plcc build --trace=- --trace-level=detail src/main.st
//
// Levels select which scopes are written: phase emits driver and pass spans,
// detail adds one span per source file and per POU, debug emits everything.
//
// Tracers travel through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.StartSpan(ctx, trace.ScopePass, "codegen.bodies")
//	defer span.End("")
package trace
