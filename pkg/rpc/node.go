// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"math/big"

	"gitlab.com/accumulatenetwork/raiblocks/pkg/units"
)

// BlockCount returns the number of blocks in the ledger and the number of
// unchecked synchronizing blocks.
type BlockCount struct{}

type BlockCountResult struct {
	Count     *uint64 `json:"count,string" validate:"required"`
	Unchecked *uint64 `json:"unchecked,string" validate:"required"`
}

func (BlockCount) ActionName() string { return "block_count" }

// Version returns the versions of the node's RPC, store, and software.
type Version struct{}

type VersionResult struct {
	RPCVersion   string `json:"rpc_version" validate:"required"`
	StoreVersion string `json:"store_version"`
	NodeVendor   string `json:"node_vendor" validate:"required"`
}

func (Version) ActionName() string { return "version" }

// ToRaw asks the node to multiply a whole amount of a unit into raw, as in
// mrai_to_raw.
type ToRaw struct {
	Unit   units.Unit `json:"-"`
	Amount *big.Int   `json:"amount"`
}

// FromRaw asks the node to divide a raw amount into whole units, as in
// mrai_from_raw. The node truncates.
type FromRaw struct {
	Unit   units.Unit `json:"-"`
	Amount *units.Raw `json:"amount"`
}

// ConvertResult holds the converted amount. For ToRaw it is in raw, for
// FromRaw it is in whole units.
type ConvertResult struct {
	Amount *units.Raw `json:"amount" validate:"required"`
}

func (a ToRaw) ActionName() string   { return a.Unit.Action + "_to_raw" }
func (a FromRaw) ActionName() string { return a.Unit.Action + "_from_raw" }
