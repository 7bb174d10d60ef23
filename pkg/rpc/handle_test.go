// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/raiblocks/internal/logging"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/address"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/units"
	"golang.org/x/sync/errgroup"
)

func init() {
	errors.EnableLocationTracking()
}

const genesisAccount = "xrb_3t6k35gi95xu6tergt6p69ck76ogmitsa8mnijtpxm9fkcm736xtoncuohr3"

var genesis = address.MustParse(genesisAccount)

// stubNode starts a node that answers every request with the given status
// and body. Requests are decoded and passed to inspect, if it is not nil.
func stubNode(t *testing.T, status int, body string, inspect func(map[string]interface{})) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var req map[string]interface{}
		if err := json.Unmarshal(b, &req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if inspect != nil {
			inspect(req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, WithLogger(logging.NewTestZeroLogger(t, logging.LogFormatPlain)))
	require.NoError(t, err)
	return c
}

func requireStatus(t *testing.T, err error, status errors.Status, action string) *errors.Error {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, status)

	var err2 *errors.Error
	require.True(t, errors.As(err, &err2), "expected an *errors.Error, got %T", err)
	require.Equal(t, action, err2.Action)
	return err2
}

func TestAccountBalance(t *testing.T) {
	var req map[string]interface{}
	c := stubNode(t, http.StatusOK, `{"balance": "10000000000000000000000000000000", "pending": "0"}`, func(v map[string]interface{}) { req = v })

	r, err := c.AccountBalance(context.Background(), genesis)
	require.NoError(t, err)
	require.Equal(t, map[string]interface{}{"action": "account_balance", "account": genesisAccount}, req)

	require.Equal(t, "10000000000000000000000000000000", r.Balance.String())
	require.True(t, r.Pending.IsZero())
	require.True(t, units.ToDisplayUnit(r.Balance).Equal(units.ToDisplayUnit(units.MustDecode("10000000000000000000000000000000"))))
}

func TestNodeError(t *testing.T) {
	c := stubNode(t, http.StatusOK, `{"error": "Account not found"}`, nil)

	r, err := c.AccountBalance(context.Background(), genesis)
	require.Nil(t, r)
	e := requireStatus(t, err, errors.ProtocolError, "account_balance")
	require.Equal(t, "Account not found", e.Message)
	require.Equal(t, `{"error": "Account not found"}`, e.Body)
}

func TestHTTPStatus(t *testing.T) {
	c := stubNode(t, http.StatusInternalServerError, `{"error": "Internal server error"}`, nil)

	_, err := c.BlockCount(context.Background())
	e := requireStatus(t, err, errors.ProtocolError, "block_count")
	require.Contains(t, e.Message, "500")
	require.Contains(t, e.Message, "Internal server error")
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		Name   string
		Body   string
		Status errors.Status
	}{
		{"not JSON", `Bad request`, errors.DecodeError},
		{"array", `[]`, errors.DecodeError},
		{"null", `null`, errors.DecodeError},
		{"empty object", `{}`, errors.DecodeError},
		{"unrelated fields", `{"unexpected": "x"}`, errors.DecodeError},
		{"missing field", `{"balance": "1"}`, errors.DecodeError},
		{"mistyped field", `{"balance": 1, "pending": "0"}`, errors.DecodeError},
		{"malformed amount", `{"balance": "12a3", "pending": "0"}`, errors.MalformedAmount},
		{"negative amount", `{"balance": "-5", "pending": "0"}`, errors.MalformedAmount},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			client := stubNode(t, http.StatusOK, c.Body, nil)
			r, err := client.AccountBalance(context.Background(), genesis)
			require.Nil(t, r)
			e := requireStatus(t, err, c.Status, "account_balance")
			require.Equal(t, c.Body, e.Body)
		})
	}
}

func TestMissingFieldIsNamed(t *testing.T) {
	c := stubNode(t, http.StatusOK, `{"balance": "1"}`, nil)
	_, err := c.AccountBalance(context.Background(), genesis)
	require.ErrorContains(t, err, "pending")
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	t.Cleanup(slow.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(slow.URL, WithTimeout(100*time.Millisecond))
	require.NoError(t, err)
	fast := stubNode(t, http.StatusOK, `{"count": "1000", "unchecked": "0"}`, nil)

	done := make(chan error, 1)
	go func() {
		_, err := c.AccountBalance(context.Background(), genesis)
		done <- err
	}()

	// Calls to other nodes are not held up by the pending call
	for i := 0; i < 10; i++ {
		r, err := fast.BlockCount(context.Background())
		require.NoError(t, err)
		require.Equal(t, uint64(1000), *r.Count)
	}

	select {
	case err := <-done:
		requireStatus(t, err, errors.TransportError, "account_balance")
	case <-time.After(5 * time.Second):
		t.Fatal("request did not time out")
	}
}

func TestCancel(t *testing.T) {
	c := stubNode(t, http.StatusOK, `{"count": "1", "unchecked": "0"}`, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.BlockCount(ctx)
	requireStatus(t, err, errors.TransportError, "block_count")
	require.ErrorIs(t, err, context.Canceled)
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(url)
	require.NoError(t, err)

	_, err = c.Version(context.Background())
	requireStatus(t, err, errors.TransportError, "version")
}

type testAction struct {
	Account *address.Address `json:"account"`
	Count   int              `json:"count"`
	Flag    bool             `json:"flag"`
	Skipped *address.Address `json:"skipped"`
	Wallet  string           `json:"wallet"`
	Hashes  []string         `json:"hashes"`
}

func (testAction) ActionName() string { return "test_action" }

func TestEnvelope(t *testing.T) {
	b, err := encodeAction("test_action", testAction{
		Account: genesis,
		Count:   10,
		Flag:    true,
		Wallet:  "000D1BAEC8EC208142C99059B393051BAC8380F9B5A2E6B2489A277D81789F3F",
		Hashes:  []string{"a", "b"},
	})
	require.NoError(t, err)
	require.JSONEq(t, `{
		"action": "test_action",
		"account": "`+genesisAccount+`",
		"count": "10",
		"flag": "true",
		"wallet": "000D1BAEC8EC208142C99059B393051BAC8380F9B5A2E6B2489A277D81789F3F",
		"hashes": ["a", "b"]
	}`, string(b))

	b, err = encodeAction("version", Version{})
	require.NoError(t, err)
	require.JSONEq(t, `{"action": "version"}`, string(b))
}

func TestConcurrentCalls(t *testing.T) {
	c := stubNode(t, http.StatusOK, `{"weight": "1000000000000000000000000000000000"}`, nil)

	errg := new(errgroup.Group)
	for i := 0; i < 32; i++ {
		errg.Go(func() error {
			r, err := c.AccountWeight(context.Background(), genesis)
			if err != nil {
				return err
			}
			if r.Weight.String() != "1000000000000000000000000000000000" {
				return errors.DecodeError.WithFormat("unexpected weight %v", r.Weight)
			}
			return nil
		})
	}
	require.NoError(t, errg.Wait())
}

func TestMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Bad account number"}`))
	}))
	t.Cleanup(srv.Close)

	reg := prometheus.NewRegistry()
	c, err := NewClient(srv.URL, WithRegisterer(reg))
	require.NoError(t, err)

	_, err = c.AccountKey(context.Background(), genesis)
	require.Error(t, err)
	require.Equal(t, 1.0, testutil.ToFloat64(c.metrics.Requests.WithLabelValues("account_key", errors.ProtocolError.String())))

	_, err = NewClient(srv.URL, WithRegisterer(reg))
	require.Error(t, err, "registering twice should fail")
}

func TestNewClient(t *testing.T) {
	for _, s := range []string{"", "   ", "::", "localhost:7076", "ws://localhost:7076"} {
		_, err := NewClient(s)
		require.ErrorIs(t, err, errors.BadRequest, "address %q", s)
	}

	c, err := NewClient("http://localhost:7076")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:7076/", c.Node())
}
