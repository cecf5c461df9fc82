package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once       sync.Once
	collectors []prometheus.Collector
)

// register is called from init() in each metrics file.
func register(cs ...prometheus.Collector) {
	collectors = append(collectors, cs...)
}

// MustRegister adds every relay collector to the default registry once.
// Counters are usable before registration; they are simply not exported.
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(collectors...)
	})
}
