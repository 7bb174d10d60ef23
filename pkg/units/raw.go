// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package units

import (
	"encoding/json"
	"math/big"

	"github.com/dustin/go-humanize"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

// Raw is an amount of the smallest indivisible unit. Raw amounts routinely
// exceed 64 bits, so they are always carried as a big.Int and exchanged with
// the node as decimal digit strings. A Raw is never negative.
type Raw big.Int

// GenesisAmount is the total supply created by the genesis block, 2^128-1 raw.
var GenesisAmount = func() *Raw {
	x := new(big.Int).Lsh(big.NewInt(1), 128)
	return (*Raw)(x.Sub(x, big.NewInt(1)))
}()

// MaxSupply is the circulating supply, 133,248,290 XRB, in raw.
var MaxSupply = func() *Raw {
	x := new(big.Int).Exp(big.NewInt(10), big.NewInt(DisplayExponent), nil)
	return (*Raw)(x.Mul(x, big.NewInt(133248290)))
}()

// Decode parses a base-10 digit string. The string must be non-empty and
// contain only the digits 0-9; signs, decimal points, exponents, and
// whitespace are rejected. Leading zeros are accepted.
func Decode(s string) (*Raw, error) {
	if s == "" {
		return nil, errors.MalformedAmount.With("empty amount")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, errors.MalformedAmount.WithFormat("invalid amount %q: not a digit string", s)
		}
	}

	x, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.MalformedAmount.WithFormat("invalid amount %q", s)
	}
	return (*Raw)(x), nil
}

// MustDecode calls Decode and panics if it returns an error.
func MustDecode(s string) *Raw {
	x, err := Decode(s)
	if err != nil {
		panic(err)
	}
	return x
}

// Encode returns the canonical digit string of x, with no leading zeros. A
// nil amount encodes as "0".
func Encode(x *Raw) string {
	if x == nil {
		return "0"
	}
	return x.int().String()
}

// NewRaw copies v into a new Raw. It fails if v is negative.
func NewRaw(v *big.Int) (*Raw, error) {
	if v.Sign() < 0 {
		return nil, errors.MalformedAmount.WithFormat("invalid amount %v: negative", v)
	}
	return (*Raw)(new(big.Int).Set(v)), nil
}

// RawFromUint64 returns v as a Raw.
func RawFromUint64(v uint64) *Raw {
	return (*Raw)(new(big.Int).SetUint64(v))
}

func (x *Raw) int() *big.Int { return (*big.Int)(x) }

// BigInt returns a copy of the amount.
func (x *Raw) BigInt() *big.Int {
	if x == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(x.int())
}

// String returns the canonical digit string.
func (x *Raw) String() string { return Encode(x) }

// Format returns the amount with thousands separators, for display.
func (x *Raw) Format() string { return humanize.BigComma(x.BigInt()) }

// Sign returns 0 if the amount is zero and 1 otherwise.
func (x *Raw) Sign() int {
	if x == nil {
		return 0
	}
	return x.int().Sign()
}

// IsZero returns true if the amount is zero.
func (x *Raw) IsZero() bool { return x.Sign() == 0 }

// Cmp compares x and y and returns -1, 0, or +1.
func (x *Raw) Cmp(y *Raw) int {
	return x.BigInt().Cmp(y.BigInt())
}

// Equal returns true if x and y are the same amount.
func (x *Raw) Equal(y *Raw) bool { return x.Cmp(y) == 0 }

// Add returns x + y as a new Raw.
func (x *Raw) Add(y *Raw) *Raw {
	return (*Raw)(new(big.Int).Add(x.BigInt(), y.BigInt()))
}

// Sub returns x - y as a new Raw. It fails if y is greater than x.
func (x *Raw) Sub(y *Raw) (*Raw, error) {
	z := new(big.Int).Sub(x.BigInt(), y.BigInt())
	if z.Sign() < 0 {
		return nil, errors.MalformedAmount.WithFormat("%v - %v is negative", x, y)
	}
	return (*Raw)(z), nil
}

// MarshalText implements [encoding.TextMarshaler].
func (x *Raw) MarshalText() ([]byte, error) {
	return []byte(Encode(x)), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (x *Raw) UnmarshalText(b []byte) error {
	v, err := Decode(string(b))
	if err != nil {
		return err
	}
	x.int().Set(v.int())
	return nil
}

// MarshalJSON marshals the amount to JSON as a digit string.
func (x *Raw) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(x))
}

// UnmarshalJSON unmarshals the amount from a JSON digit string. A JSON value
// that is not a string is a decoding error. A string that is not a digit
// string is a malformed amount.
func (x *Raw) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return errors.DecodeError.WithFormat("amount must be a string, got %s", data)
	}
	return x.UnmarshalText([]byte(s))
}
