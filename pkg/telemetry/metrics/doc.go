// Package metrics provides Prometheus instrumentation for the MCL
// toolchain.
//
// The [Collector] owns a registry with counters for parse, decode, and
// reload outcomes, a parse duration histogram, and a snapshot persistence
// counter. The watch command exposes the registry over HTTP via
// [Collector.Handler].
//
// # Usage
//
//	collector := metrics.NewCollector(metrics.Config{}, nil)
//
//	start := time.Now()
//	doc, err := mcl.Parse(path)
//	if err != nil {
//		collector.RecordParse(metrics.StatusError, time.Since(start))
//	} else {
//		collector.RecordParse(metrics.StatusSuccess, time.Since(start))
//	}
//
//	http.Handle("/metrics", collector.Handler())
package metrics
