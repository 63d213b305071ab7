// Package observability provides OpenTelemetry tracing and metrics for the
// authorization path: spans around policy evaluation and a decision counter
// keyed by resource pattern, operation, effect, and reason.
package observability
