// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package units

import (
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

// DisplayExponent is the power of ten between raw and the display unit.
const DisplayExponent = 30

// Unit is a denomination, a power of ten of raw.
type Unit struct {
	// Name is the conventional symbol of the unit.
	Name string

	// Exponent is the power of ten of raw in one unit.
	Exponent int32

	// Action is the prefix of the node's conversion actions for the unit,
	// such as "mrai" for mrai_to_raw. It is empty if the node has none.
	Action string
}

var (
	Gxrb    = Unit{Name: "Gxrb", Exponent: 33}
	Mxrb    = Unit{Name: "Mxrb", Exponent: 30, Action: "mrai"}
	Kxrb    = Unit{Name: "kxrb", Exponent: 27, Action: "krai"}
	Xrb     = Unit{Name: "xrb", Exponent: 24, Action: "rai"}
	Milli   = Unit{Name: "mxrb", Exponent: 21}
	Micro   = Unit{Name: "uxrb", Exponent: 18}
	RawUnit = Unit{Name: "raw", Exponent: 0}

	// Display is the human-facing unit, 10^30 raw.
	Display = Mxrb
)

var unitsByName = map[string]Unit{
	"gxrb": Gxrb,
	"mxrb": Mxrb,
	"xrb":  Xrb,
	"kxrb": Kxrb,
	"uxrb": Micro,
	"raw":  RawUnit,
	"mrai": Mxrb,
	"krai": Kxrb,
	"rai":  Xrb,
	"nano": Mxrb,
}

// ParseUnit returns the unit with the given name. Names are matched without
// regard to case, except that "mxrb" (milli) and "Mxrb" (mega) are told
// apart.
func ParseUnit(name string) (Unit, error) {
	switch name {
	case "mxrb":
		return Milli, nil
	case "Mxrb", "XRB":
		return Mxrb, nil
	}
	if u, ok := unitsByName[strings.ToLower(name)]; ok {
		return u, nil
	}
	return Unit{}, errors.BadRequest.WithFormat("unknown unit %q", name)
}

func (u Unit) String() string { return u.Name }

// ToUnit converts a raw amount to the given unit. The conversion is exact.
func ToUnit(x *Raw, u Unit) decimal.Decimal {
	return decimal.NewFromBigInt(x.BigInt(), -u.Exponent)
}

// FromUnit converts an amount in the given unit to raw. It fails if the
// amount is negative or is not a whole number of raw.
func FromUnit(d decimal.Decimal, u Unit) (*Raw, error) {
	if d.IsNegative() {
		return nil, errors.MalformedAmount.WithFormat("invalid amount %v %v: negative", d, u)
	}
	v := d.Shift(u.Exponent)
	if !v.IsInteger() {
		return nil, errors.MalformedAmount.WithFormat("invalid amount %v %v: finer than one raw", d, u)
	}
	return (*Raw)(v.BigInt()), nil
}

// ToDisplayUnit converts a raw amount to the display unit.
func ToDisplayUnit(x *Raw) decimal.Decimal {
	return ToUnit(x, Display)
}

// FromDisplayUnit converts an amount in the display unit to raw.
func FromDisplayUnit(d decimal.Decimal) (*Raw, error) {
	return FromUnit(d, Display)
}

// ParseDisplay parses a decimal string such as "1.5" in the given unit.
func ParseDisplay(s string, u Unit) (*Raw, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.MalformedAmount.WithFormat("invalid amount %q: %v", s, err)
	}
	return FromUnit(d, u)
}

// Convert converts a whole amount from one unit to another. The result is
// exact.
func Convert(d decimal.Decimal, from, to Unit) decimal.Decimal {
	return d.Shift(from.Exponent - to.Exponent)
}
