// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"bytes"
	"encoding/json"

	"gitlab.com/accumulatenetwork/raiblocks/pkg/address"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/units"
)

// AccountBalance returns how much an account owns and how much it has not yet
// received.
type AccountBalance struct {
	Account *address.Address `json:"account"`
}

type AccountBalanceResult struct {
	Balance *units.Raw `json:"balance" validate:"required"`
	Pending *units.Raw `json:"pending" validate:"required"`
}

func (AccountBalance) ActionName() string { return "account_balance" }

// AccountBlockCount returns the number of blocks in an account's chain.
type AccountBlockCount struct {
	Account *address.Address `json:"account"`
}

type AccountBlockCountResult struct {
	BlockCount *uint64 `json:"block_count,string" validate:"required"`
}

func (AccountBlockCount) ActionName() string { return "account_block_count" }

// AccountInfo returns the frontier, open block, representative block,
// balance, last modified time, and block count of an account.
type AccountInfo struct {
	Account        *address.Address `json:"account"`
	Representative bool             `json:"representative,omitempty"`
	Weight         bool             `json:"weight,omitempty"`
	Pending        bool             `json:"pending,omitempty"`
}

type AccountInfoResult struct {
	Frontier            string           `json:"frontier" validate:"required"`
	OpenBlock           string           `json:"open_block" validate:"required"`
	RepresentativeBlock string           `json:"representative_block" validate:"required"`
	Balance             *units.Raw       `json:"balance" validate:"required"`
	ModifiedTimestamp   *uint64          `json:"modified_timestamp,string" validate:"required"`
	BlockCount          *uint64          `json:"block_count,string" validate:"required"`
	Representative      *address.Address `json:"representative,omitempty"`
	Weight              *units.Raw       `json:"weight,omitempty"`
	Pending             *units.Raw       `json:"pending,omitempty"`
}

func (AccountInfo) ActionName() string { return "account_info" }

// AccountCreate creates a new account by inserting the next deterministic key
// into a wallet. The node must have enable_control set.
type AccountCreate struct {
	Wallet string `json:"wallet"`
}

type AccountCreateResult struct {
	Account *address.Address `json:"account" validate:"required"`
}

func (AccountCreate) ActionName() string { return "account_create" }

// AccountGet returns the account of a public key.
type AccountGet struct {
	Key address.PublicKey `json:"key"`
}

type AccountGetResult struct {
	Account *address.Address `json:"account" validate:"required"`
}

func (AccountGet) ActionName() string { return "account_get" }

// AccountHistory returns the most recent blocks of an account's chain.
type AccountHistory struct {
	Account *address.Address `json:"account"`
	Count   uint64           `json:"count"`
}

type AccountHistoryResult struct {
	Entries History `json:"history" validate:"required,dive"`
}

// History is a list of history entries. The node reports an account with no
// history as an empty string rather than an empty list.
type History []*HistoryEntry

func (h *History) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "null":
		return nil
	case `""`:
		*h = History{}
		return nil
	}

	var entries []*HistoryEntry
	err := json.Unmarshal(data, &entries)
	if err != nil {
		return err
	}
	*h = entries
	return nil
}

// HistoryEntry is a block in an account's history. Account is the other side
// of the transfer.
type HistoryEntry struct {
	Hash    string           `json:"hash" validate:"required"`
	Type    BlockType        `json:"type" validate:"required"`
	Account *address.Address `json:"account" validate:"required"`
	Amount  *units.Raw       `json:"amount" validate:"required"`
}

func (AccountHistory) ActionName() string { return "account_history" }

// AccountKey returns the public key of an account.
type AccountKey struct {
	Account *address.Address `json:"account"`
}

type AccountKeyResult struct {
	Key address.PublicKey `json:"key" validate:"required"`
}

func (AccountKey) ActionName() string { return "account_key" }

// AccountRepresentative returns the representative of an account.
type AccountRepresentative struct {
	Account *address.Address `json:"account"`
}

type AccountRepresentativeResult struct {
	Representative *address.Address `json:"representative" validate:"required"`
}

func (AccountRepresentative) ActionName() string { return "account_representative" }

// AccountWeight returns the voting weight delegated to an account.
type AccountWeight struct {
	Account *address.Address `json:"account"`
}

type AccountWeightResult struct {
	Weight *units.Raw `json:"weight" validate:"required"`
}

func (AccountWeight) ActionName() string { return "account_weight" }

// AccountsBalances returns the balances of several accounts at once.
type AccountsBalances struct {
	Accounts []*address.Address `json:"accounts"`
}

type AccountsBalancesResult struct {
	Balances map[string]*AccountBalanceResult `json:"balances" validate:"dive"`
}

func (AccountsBalances) ActionName() string { return "accounts_balances" }
