// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

// Action describes a request. The exported fields of an action, as rendered
// by encoding/json, are its parameters.
type Action interface {
	ActionName() string
}

// Handle sends the action to the node and decodes the response as R. It
// either returns a fully decoded result or an error, never both. Errors carry
// a status of TransportError, ProtocolError, DecodeError, or MalformedAmount,
// the name of the action, and the response text if one was received.
func Handle[A Action, R any](ctx context.Context, c *Client, action A) (R, error) {
	name := action.ActionName()
	start := time.Now()
	v, err := handle[R](ctx, c, name, action)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.Observe(name, errors.Code(err).String(), elapsed)
		c.logger.Warn().Err(err).Str("action", name).Dur("duration", elapsed).Msg("Request failed")
		var zero R
		return zero, err
	}

	c.metrics.Observe(name, errors.OK.String(), elapsed)
	c.logger.Debug().Str("action", name).Dur("duration", elapsed).Msg("Request complete")
	return v, nil
}

func handle[R any](ctx context.Context, c *Client, name string, action Action) (R, error) {
	var v R
	req, err := encodeAction(name, action)
	if err != nil {
		return v, errors.BadRequest.WithCauseAndFormat(err, "encode request: %v", err).WithAction(name)
	}

	c.logger.Debug().Str("action", name).RawJSON("request", req).Msg("Sending request")
	resp, err := c.post(ctx, name, req)
	if err != nil {
		return v, err
	}

	err = c.decode(name, resp, &v)
	return v, err
}

// encodeAction renders the action as the node's request envelope: a JSON
// object with the action name under "action" and every parameter as a
// string. Nested arrays and objects are passed through. Null parameters are
// omitted.
func encodeAction(name string, action Action) ([]byte, error) {
	b, err := json.Marshal(action)
	if err != nil {
		return nil, err
	}

	var params map[string]interface{}
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	err = d.Decode(&params)
	if err != nil {
		return nil, fmt.Errorf("%T does not encode as a JSON object: %w", action, err)
	}
	if params == nil {
		params = map[string]interface{}{}
	}

	for k, v := range params {
		switch v := v.(type) {
		case nil:
			delete(params, k)
		case json.Number:
			params[k] = v.String()
		case bool:
			params[k] = strconv.FormatBool(v)
		}
	}

	params["action"] = name
	return json.Marshal(params)
}

func (c *Client) post(ctx context.Context, name string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.node.String(), bytes.NewReader(body))
	if err != nil {
		return nil, errors.BadRequest.WithCauseAndFormat(err, "build request: %v", err).WithAction(name)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.TransportError.WithCauseAndFormat(err, "post: %v", err).WithAction(name)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.TransportError.WithCauseAndFormat(err, "read response: %v", err).WithAction(name)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("node returned %s", resp.Status)
		if s, ok := nodeError(b); ok {
			msg += ": " + s
		}
		return nil, errors.ProtocolError.With(msg).WithAction(name).WithBody(b)
	}
	return b, nil
}

// nodeError returns the message of an {"error": ...} response.
func nodeError(body []byte) (string, bool) {
	var v struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(body, &v) != nil || v.Error == nil {
		return "", false
	}

	var s string
	if json.Unmarshal(v.Error, &s) != nil {
		s = string(v.Error)
	}
	return s, true
}

func (c *Client) decode(name string, body []byte, v interface{}) error {
	var fields map[string]json.RawMessage
	err := json.Unmarshal(body, &fields)
	if err != nil {
		return errors.DecodeError.WithCauseAndFormat(err, "response is not a JSON object: %v", err).WithAction(name).WithBody(body)
	}
	if fields == nil {
		return errors.DecodeError.With("response is null").WithAction(name).WithBody(body)
	}

	if msg, ok := nodeError(body); ok {
		return errors.ProtocolError.With(msg).WithAction(name).WithBody(body)
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		code := errors.DecodeError
		if errors.Code(err) == errors.MalformedAmount {
			code = errors.MalformedAmount
		}
		return code.WithCauseAndFormat(err, "decode response: %v", err).WithAction(name).WithBody(body)
	}

	err = c.validateResult(v)
	if err != nil {
		return errors.DecodeError.WithCauseAndFormat(err, "decode response: %v", err).WithAction(name).WithBody(body)
	}
	return nil
}

// validateResult applies the validate tags of the result shape, such as
// `validate:"required"` on fields the node must always return.
func (c *Client) validateResult(v interface{}) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return fmt.Errorf("empty result")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	err := c.validate.Struct(rv.Interface())
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}

	fe := verrs[0]
	if fe.Tag() == "required" {
		return fmt.Errorf("missing field %s", fe.Namespace())
	}
	return fmt.Errorf("invalid field %s: failed %q", fe.Namespace(), fe.Tag())
}
