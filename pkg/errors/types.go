// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package errors

import "strconv"

// Status is a request status code.
type Status uint64

const (
	// OK means the request succeeded.
	OK Status = 200

	// BadRequest means the caller supplied an invalid argument, such as an
	// unparsable node address or a malformed account.
	BadRequest Status = 400

	// MalformedAmount means a raw amount was not a non-negative base-10 digit
	// string.
	MalformedAmount Status = 422

	// UnknownError means the cause of the failure is not known.
	UnknownError Status = 500

	// ProtocolError means the node answered with a non-2xx status or a JSON
	// object carrying an "error" key.
	ProtocolError Status = 502

	// TransportError means the HTTP exchange with the node could not be
	// completed, including timeouts and cancellation.
	TransportError Status = 503

	// DecodeError means the node's response was not valid JSON or did not
	// match the expected result shape.
	DecodeError Status = 520
)

var statusNames = map[Status]string{
	OK:              "ok",
	BadRequest:      "bad-request",
	MalformedAmount: "malformed-amount",
	UnknownError:    "unknown-error",
	ProtocolError:   "protocol-error",
	TransportError:  "transport-error",
	DecodeError:     "decode-error",
}

var statusByName = func() map[string]Status {
	m := make(map[string]Status, len(statusNames))
	for s, n := range statusNames {
		m[n] = s
	}
	return m
}()

// String returns the name of the status.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "status-" + strconv.FormatUint(uint64(s), 10)
}

// StatusByName returns the status with the given name.
func StatusByName(name string) (Status, bool) {
	s, ok := statusByName[name]
	return s, ok
}

// Error is an error with a status code and the context of the action that
// produced it.
type Error struct {
	Message string `json:"message,omitempty"`
	Code    Status `json:"code,omitempty"`

	// Action is the name of the RPC action that failed.
	Action string `json:"action,omitempty"`

	// Body is the raw response text received from the node, if any.
	Body string `json:"body,omitempty"`

	Cause     *Error      `json:"cause,omitempty"`
	CallStack []*CallSite `json:"callStack,omitempty"`

	// err is the non-Error value this was converted from.
	err error
}

// CallSite records where an error was created.
type CallSite struct {
	FuncName string `json:"funcName,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int64  `json:"line,omitempty"`
}
