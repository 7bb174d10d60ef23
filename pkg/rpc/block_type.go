// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"encoding/json"
	"strings"

	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
)

// BlockType is the kind of a ledger block.
type BlockType uint64

const (
	// BlockTypeSend sends funds to another account.
	BlockTypeSend BlockType = 1

	// BlockTypeReceive receives a pending send.
	BlockTypeReceive BlockType = 2

	// BlockTypeOpen opens an account with its first receive.
	BlockTypeOpen BlockType = 3

	// BlockTypeChange changes an account's representative.
	BlockTypeChange BlockType = 4

	// BlockTypeState is a universal block carrying the full account state.
	BlockTypeState BlockType = 5
)

// GetEnumValue returns the value of the Block Type
func (v BlockType) GetEnumValue() uint64 { return uint64(v) }

// SetEnumValue sets the value. SetEnumValue returns false if the value is invalid.
func (v *BlockType) SetEnumValue(id uint64) bool {
	u := BlockType(id)
	switch u {
	case BlockTypeSend, BlockTypeReceive, BlockTypeOpen, BlockTypeChange, BlockTypeState:
		*v = u
		return true
	}
	return false
}

// String returns the name of the Block Type.
func (v BlockType) String() string {
	switch v {
	case BlockTypeSend:
		return "send"
	case BlockTypeReceive:
		return "receive"
	case BlockTypeOpen:
		return "open"
	case BlockTypeChange:
		return "change"
	case BlockTypeState:
		return "state"
	}
	return "unknown"
}

// BlockTypeByName returns the named Block Type.
func BlockTypeByName(name string) (BlockType, bool) {
	switch strings.ToLower(name) {
	case "send":
		return BlockTypeSend, true
	case "receive":
		return BlockTypeReceive, true
	case "open":
		return BlockTypeOpen, true
	case "change":
		return BlockTypeChange, true
	case "state":
		return BlockTypeState, true
	}
	return 0, false
}

// MarshalJSON marshals the Block Type to JSON as a string.
func (v BlockType) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON unmarshals the Block Type from JSON as a string.
func (v *BlockType) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return errors.DecodeError.WithFormat("block type must be a string, got %s", data)
	}

	var ok bool
	*v, ok = BlockTypeByName(s)
	if !ok {
		return errors.DecodeError.WithFormat("invalid Block Type %q", s)
	}
	return nil
}
