package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	DrawTotal                  = "reward_draw_total"
	LedgerTransactionTotal     = "reward_ledger_transaction_total"
	AbuseDenialTotal           = "reward_abuse_denial_total"
	NotificationFailureTotal   = "reward_notification_failure_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"path", "code"}),
		DrawTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: DrawTotal,
			Help: "Count of executed draws by payout kind",
		}, []string{"payout_kind"}),
		LedgerTransactionTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: LedgerTransactionTotal,
			Help: "Count of ledger entries by currency and kind",
		}, []string{"currency", "kind"}),
		AbuseDenialTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: AbuseDenialTotal,
			Help: "Count of actions denied by the abuse guard",
		}, []string{"action", "rule"}),
		NotificationFailureTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: NotificationFailureTotal,
			Help: "Count of notifications which could not be published",
		}, []string{"topic"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"path", "code"}),
	}
)

// RegisterMetrics registers all collectors to the given registerer.
func RegisterMetrics(r prometheus.Registerer) error {
	for _, c := range PromCounters {
		if err := r.Register(c); err != nil {
			return err
		}
	}

	for _, h := range PromHistograms {
		if err := r.Register(h); err != nil {
			return err
		}
	}

	return nil
}
