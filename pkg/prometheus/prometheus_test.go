package prometheus

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNewHandler(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "test_draw_total",
		Help: "Number of draws in test",
	})
	counter.Add(3)

	handler, err := NewHandler(func(r prometheus.Registerer) error {
		return r.Register(counter)
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "test_draw_total 3")
	require.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNewHandler_RegisterError(t *testing.T) {
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "dup_total", Help: "dup"})

	_, err := NewHandler(func(r prometheus.Registerer) error {
		if err := r.Register(counter); err != nil {
			return err
		}
		return r.Register(counter)
	})
	require.Error(t, err)
}
