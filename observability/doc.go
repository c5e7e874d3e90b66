// Package observability bootstraps OpenTelemetry tracing and metrics for
// radscribe. When enabled, spans and instruments recorded through the global
// otel providers (the comparison orchestrator records one span per request
// and per model run, plus a latency histogram) are exported over OTLP HTTP.
package observability
