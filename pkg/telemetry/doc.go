// Package telemetry groups the observability packages of the MCL toolchain.
//
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics collection
package telemetry
