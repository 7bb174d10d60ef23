// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects per-action request metrics for an RPC client. A nil
// *Metrics discards observations.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// New creates the collectors. They are not registered.
func New() *Metrics {
	return &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "raiblocks",
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "Number of actions dispatched to the node, by outcome",
		}, []string{"action", "status"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "raiblocks",
			Subsystem: "rpc",
			Name:      "request_duration_seconds",
			Help:      "Round trip time of actions dispatched to the node",
			Buckets:   prometheus.DefBuckets,
		}, []string{"action"}),
	}
}

// Register registers the collectors with r.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Requests, m.Duration} {
		err := r.Register(c)
		if err != nil {
			return err
		}
	}
	return nil
}

// Observe records the outcome of a single action.
func (m *Metrics) Observe(action, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(action, status).Inc()
	m.Duration.WithLabelValues(action).Observe(d.Seconds())
}
