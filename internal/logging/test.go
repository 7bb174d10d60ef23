// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package logging

import (
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestLogger writes each log line to the test log.
type TestLogger struct {
	Test testing.TB
}

var _ io.Writer = (*TestLogger)(nil)

func (l *TestLogger) Write(b []byte) (int, error) {
	l.Test.Log(strings.TrimSuffix(string(b), "\n"))
	return len(b), nil
}

// NewTestZeroLogger returns a debug-level logger that writes to the test log
// in the given format.
func NewTestZeroLogger(t testing.TB, format string) zerolog.Logger {
	w, err := NewConsoleWriterWith(&TestLogger{Test: t}, format)
	if err != nil {
		t.Fatal(err)
	}
	return zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
