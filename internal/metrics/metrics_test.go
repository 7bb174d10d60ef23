// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := New()
	reg := prometheus.NewRegistry()
	require.NoError(t, m.Register(reg))

	m.Observe("account_balance", "ok", time.Millisecond)
	m.Observe("account_balance", "ok", time.Millisecond)
	m.Observe("account_balance", "protocol-error", time.Millisecond)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("account_balance", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("account_balance", "protocol-error")))
	require.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NoError(t, New().Register(reg))
	require.Error(t, New().Register(reg))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.Observe("version", "ok", time.Second)
}
