package api

import (
	"context"

	"github.com/hazyhaar/zemailer/pkg/kit"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the service counters.
type Metrics struct {
	Generated prometheus.Counter
	Skipped   prometheus.Counter
	Calls     *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zemailer_addresses_generated_total",
			Help: "Addresses produced by generate and expand calls.",
		}),
		Skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "zemailer_records_skipped_total",
			Help: "Names skipped because they could not be resolved.",
		}),
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "zemailer_endpoint_calls_total",
			Help: "Endpoint calls by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
	}
	reg.MustRegister(m.Generated, m.Skipped, m.Calls)
	return m
}

// Instrument counts calls of the named endpoint by outcome.
func (m *Metrics) Instrument(name string) kit.Middleware {
	return func(next kit.Endpoint) kit.Endpoint {
		return func(ctx context.Context, request any) (any, error) {
			resp, err := next(ctx, request)
			outcome := "ok"
			if err != nil {
				outcome = "error"
			}
			m.Calls.WithLabelValues(name, outcome).Inc()
			return resp, err
		}
	}
}
