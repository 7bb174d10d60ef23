// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	cases := []struct {
		Status Status
		Name   string
	}{
		{TransportError, "transport-error"},
		{ProtocolError, "protocol-error"},
		{DecodeError, "decode-error"},
		{MalformedAmount, "malformed-amount"},
		{Status(999), "status-999"},
	}

	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			require.Equal(t, c.Name, c.Status.String())
			if s, ok := StatusByName(c.Name); ok {
				require.Equal(t, c.Status, s)
			}
		})
	}
}

func TestActionContext(t *testing.T) {
	err := ProtocolError.With("Account not found").WithAction("account_balance").WithBody([]byte(`{"error":"Account not found"}`))

	require.ErrorIs(t, err, ProtocolError)
	require.NotErrorIs(t, err, TransportError)
	require.Equal(t, "account_balance: Account not found", err.Error())
	require.Equal(t, "account_balance", ActionOf(err))
	require.Equal(t, ProtocolError, Code(fmt.Errorf("outer: %w", err)))
}

func TestCauseIsPreserved(t *testing.T) {
	err := TransportError.WithCauseAndFormat(context.DeadlineExceeded, "post: %v", context.DeadlineExceeded)

	require.ErrorIs(t, err, TransportError)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Equal(t, TransportError, Code(err))
}

func TestCodeSkipsUnknown(t *testing.T) {
	inner := MalformedAmount.WithFormat("invalid amount %q", "12a3")
	err := UnknownError.WithCauseAndFormat(inner, "decode")
	require.Equal(t, MalformedAmount, Code(err))
	require.Equal(t, Status(0), Code(fmt.Errorf("plain")))
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, DecodeError.Wrap(nil))
}

func TestPrintCallStack(t *testing.T) {
	EnableLocationTracking()
	defer func() { trackLocation = false }()

	err := DecodeError.WithCauseAndFormat(fmt.Errorf("unexpected EOF"), "decode response")
	s := fmt.Sprintf("%+v", err)
	require.Contains(t, s, "decode response")
	require.Contains(t, s, "errors_test.go")
}
