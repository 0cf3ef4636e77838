package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewHandler serves a dedicated registry holding the runtime collectors and
// whatever register adds to it.
func NewHandler(register func(prometheus.Registerer) error) (http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	if register != nil {
		if err := register(registry); err != nil {
			return nil, err
		}
	}

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
