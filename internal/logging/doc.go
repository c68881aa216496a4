// Package logging builds the zerolog loggers used across contractlens and carries
// them, together with a per-invocation trace ID, through context.Context.
//
// Every command run gets a ULID trace ID. Events logged with .Ctx(ctx) pick it up
// automatically through TraceHook, so log lines from the CLI, the API client and the
// query controller can be correlated for one invocation.
package logging
