package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for client onboarding and listing.
type Metrics struct {
	ClientsCreated  prometheus.Counter
	ClientsRejected *prometheus.CounterVec
	ListResults     prometheus.Histogram
}

// New creates a Metrics instance with all client metrics registered.
func New() *Metrics {
	return &Metrics{
		ClientsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clients_created_total",
			Help: "Total clients onboarded",
		}),

		ClientsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "clients_rejected_total",
			Help: "Total onboarding requests rejected, by rejection code",
		}, []string{"code"}),

		ListResults: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "clients_list_page_size",
			Help:    "Number of clients returned per listing page",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
	}
}

// IncCreated records a successful onboarding.
func (m *Metrics) IncCreated() {
	if m != nil {
		m.ClientsCreated.Inc()
	}
}

// IncRejected records a rejected onboarding request by code.
func (m *Metrics) IncRejected(code string) {
	if m != nil {
		m.ClientsRejected.WithLabelValues(code).Inc()
	}
}

// ObserveListResults records the size of a served listing page.
func (m *Metrics) ObserveListResults(n int) {
	if m != nil {
		m.ListResults.Observe(float64(n))
	}
}
