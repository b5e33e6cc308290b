package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// NewRegistry creates a private registry with the treecheck metrics
// registered on it. Each CLI run and each gate without explicit metrics
// gets its own, so nothing leaks into prometheus.DefaultRegisterer.
func NewRegistry() (*prometheus.Registry, *Metrics) {
	reg := prometheus.NewRegistry()
	return reg, NewMetrics(reg)
}

// WriteTextfile writes everything gathered from g to path in the text
// exposition format, for the node_exporter textfile collector. The file is
// replaced atomically.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
