package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// SetupPrometheus creates the registry served on /metrics, with the Go
// runtime and process collectors and a constant fitdash_version_info gauge
// labelled with the running version.
func SetupPrometheus(version string, extraCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	if version == "" {
		version = "unknown"
	}
	versionInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   "fitdash",
		Name:        "version_info",
		Help:        "Always 1, labelled with the running version",
		ConstLabels: prometheus.Labels{"version": version},
	})
	versionInfo.Set(1)

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		versionInfo,
	)
	promRegistry.MustRegister(extraCollectors...)

	return promRegistry
}
