// Package prometheus provides Prometheus collectors for loginguard metrics.
//
// [NewPrometheusExporter] accepts a [loginguard.Engine] and exposes an [http.Handler]
// that renders all loginguard counters and histograms in Prometheus text exposition format.
// Counter names are prefixed loginguard_*_total; the single histogram is
// loginguard_validate_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
