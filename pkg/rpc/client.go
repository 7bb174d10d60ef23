// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"net/http"
	"net/url"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"gitlab.com/accumulatenetwork/raiblocks/config"
	"gitlab.com/accumulatenetwork/raiblocks/internal/logging"
	"gitlab.com/accumulatenetwork/raiblocks/internal/metrics"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

// Client sends actions to a single node. A Client is safe for concurrent use
// and is not modified after construction.
type Client struct {
	node     *url.URL
	http     *http.Client
	logger   zerolog.Logger
	metrics  *metrics.Metrics
	validate *validator.Validate
}

// Option configures a Client.
type Option func(*Client) error

// WithHTTPClient sets the HTTP client used for exchanges with the node.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) error {
		if h == nil {
			return errors.BadRequest.With("missing HTTP client")
		}
		c.http = h
		return nil
	}
}

// WithTimeout bounds each exchange with the node. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		h := *c.http
		h.Timeout = d
		c.http = &h
		return nil
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = logger
		return nil
	}
}

// WithRegisterer records request metrics and registers them with r.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(c *Client) error {
		m := metrics.New()
		err := m.Register(r)
		if err != nil {
			return err
		}
		c.metrics = m
		return nil
	}
}

// NewClient creates a client for the node at the given address, such as
// http://localhost:7076/. It fails if the address is missing or unparsable.
func NewClient(node string, opts ...Option) (*Client, error) {
	u, err := config.ParseNode(node)
	if err != nil {
		return nil, err
	}

	c := new(Client)
	c.node = u
	c.http = &http.Client{Timeout: config.DefaultTimeout}
	c.logger = zerolog.Nop()
	c.validate = newValidator()
	for _, opt := range opts {
		err = opt(c)
		if err != nil {
			return nil, err
		}
	}

	c.logger = c.logger.With().
		Str(logging.ModuleFieldName, "rpc").
		Str("node", u.Redacted()).
		Logger()
	return c, nil
}

// NewClientFromConfig creates a client from a configuration. The configured
// logger is applied before opts, so opts may replace it. The configured timeout
// is applied after opts, so it also bounds a client given by WithHTTPClient.
func NewClientFromConfig(cfg *config.Config, opts ...Option) (*Client, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithLogger(logger))
	all = append(all, opts...)
	all = append(all, WithTimeout(cfg.Timeout))
	return NewClient(cfg.Node, all...)
}

// Node returns the address of the node.
func (c *Client) Node() string {
	return c.node.String()
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
