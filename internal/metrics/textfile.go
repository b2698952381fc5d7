package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteTextfile dumps the gatherer in the node exporter textfile format.
// The file is replaced atomically.
func WriteTextfile(path string, gatherer prometheus.Gatherer) error {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	if errWrite := prometheus.WriteToTextfile(path, gatherer); errWrite != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, errWrite)
	}

	return nil
}
