// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml"
	"github.com/spf13/viper"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

const (
	// DefaultNode is the RPC address a node listens on out of the box.
	DefaultNode = "http://localhost:7076/"

	// DefaultTimeout bounds a single exchange with the node.
	DefaultTimeout = 15 * time.Second

	// EnvPrefix is the prefix of environment variables that override the
	// file, such as RAIBLOCKS_NODE.
	EnvPrefix = "RAIBLOCKS"
)

// Config configures an RPC client.
type Config struct {
	Node      string        `mapstructure:"node"`
	Timeout   time.Duration `mapstructure:"timeout"`
	LogLevel  string        `mapstructure:"log-level"`
	LogFormat string        `mapstructure:"log-format"`
}

type file struct {
	Node      string `toml:"node"`
	Timeout   string `toml:"timeout"`
	LogLevel  string `toml:"log-level"`
	LogFormat string `toml:"log-format"`
}

// Default returns the default configuration.
func Default() *Config {
	c := new(Config)
	c.Node = DefaultNode
	c.Timeout = DefaultTimeout
	c.LogLevel = "error"
	c.LogFormat = "plain"
	return c
}

// Load reads the configuration from a TOML file and applies environment
// overrides. If path is empty, only defaults and the environment are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	def := Default()
	v.SetDefault("node", def.Node)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("log-level", def.LogLevel)
	v.SetDefault("log-format", def.LogFormat)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		err := v.ReadInConfig()
		if err != nil {
			return nil, errors.BadRequest.WithFormat("read: %v", err)
		}
	}

	c := new(Config)
	err := v.Unmarshal(c)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("unmarshal: %v", err)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Store writes the configuration to a TOML file.
func Store(c *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(file{
		Node:      c.Node,
		Timeout:   c.Timeout.String(),
		LogLevel:  c.LogLevel,
		LogFormat: c.LogFormat,
	})
}

// Validate checks that the node address is usable.
func (c *Config) Validate() error {
	_, err := ParseNode(c.Node)
	if err != nil {
		return err
	}
	if c.Timeout < 0 {
		return errors.BadRequest.WithFormat("invalid timeout %v", c.Timeout)
	}
	return nil
}

// ParseNode parses the address of a node's RPC endpoint. The scheme must be
// http or https and the host must not be empty. An empty path becomes "/".
func ParseNode(s string) (*url.URL, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.BadRequest.With("missing node address")
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.BadRequest.WithFormat("invalid node address %q: %v", s, err)
	}

	switch u.Scheme {
	case "http", "https":
	default:
		return nil, errors.BadRequest.WithFormat("invalid node address %q: scheme must be http or https", s)
	}

	if u.Host == "" || u.Host[0] == ':' {
		return nil, errors.BadRequest.WithFormat("invalid node address %q: missing host", s)
	}

	if u.Path == "" {
		u.Path = "/"
	}
	return u, nil
}
