// Package metrics holds the Prometheus collectors exported on /metrics.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tripledger"

type Metrics struct {
	rpcRequests            *prometheus.CounterVec
	rpcDuration            *prometheus.HistogramVec
	settlementTransactions prometheus.Histogram
	validationFailures     *prometheus.CounterVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		rpcRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and status code.",
		}, []string{"procedure", "code"}),
		rpcDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlementTransactions: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transactions",
			Help:      "Number of transactions in each computed settlement plan.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21, 34},
		}),
		validationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_failures_total",
			Help:      "Rejected expenses and snapshots, by reason.",
		}, []string{"reason"}),
	}
}

// ObserveRPC records one finished RPC. code is "ok" on success.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// ObserveSettlement records the size of a settlement plan.
func (m *Metrics) ObserveSettlement(transactions int) {
	if m == nil {
		return
	}
	m.settlementTransactions.Observe(float64(transactions))
}

// ValidationFailed counts a rejected write or snapshot.
func (m *Metrics) ValidationFailed(reason string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(reason).Inc()
}
