// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raiblocks.toml")

	// Create
	cfg := Default()
	cfg.Node = "http://node.example:7076/"
	cfg.Timeout = 3 * time.Second
	cfg.LogLevel = "error;rpc=debug"

	// Store
	require.NoError(t, Store(cfg, path))

	// Load
	lcfg, err := Load(path)
	require.NoError(t, err)

	// Should be equal
	require.Equal(t, cfg, lcfg)
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestEnvironment(t *testing.T) {
	t.Setenv("RAIBLOCKS_NODE", "https://rpc.example/")
	t.Setenv("RAIBLOCKS_TIMEOUT", "250ms")
	t.Setenv("RAIBLOCKS_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "https://rpc.example/", cfg.Node)
	require.Equal(t, 250*time.Millisecond, cfg.Timeout)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raiblocks.toml")
	require.NoError(t, os.WriteFile(path, []byte(`node = "ftp://node"`), 0600))

	_, err := Load(path)
	require.ErrorIs(t, err, errors.BadRequest)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestParseNode(t *testing.T) {
	cases := []struct {
		Input  string
		Expect string
	}{
		{"http://localhost:7076", "http://localhost:7076/"},
		{"http://localhost:7076/", "http://localhost:7076/"},
		{" https://rpc.example/api ", "https://rpc.example/api"},
		{"", ""},
		{"localhost:7076", ""},
		{"http://:7076", ""},
		{"http://%zz", ""},
	}

	for _, c := range cases {
		t.Run(c.Input, func(t *testing.T) {
			u, err := ParseNode(c.Input)
			if c.Expect == "" {
				require.ErrorIs(t, err, errors.BadRequest)
				return
			}
			require.NoError(t, err)
			require.Equal(t, c.Expect, u.String())
		})
	}
}
