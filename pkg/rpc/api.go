// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package rpc

import (
	"context"
	"math/big"

	"gitlab.com/accumulatenetwork/raiblocks/pkg/address"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/errors"
	"gitlab.com/accumulatenetwork/raiblocks/pkg/units"
)

func (c *Client) AccountBalance(ctx context.Context, account *address.Address) (*AccountBalanceResult, error) {
	return Handle[AccountBalance, *AccountBalanceResult](ctx, c, AccountBalance{Account: account})
}

func (c *Client) AccountBlockCount(ctx context.Context, account *address.Address) (*AccountBlockCountResult, error) {
	return Handle[AccountBlockCount, *AccountBlockCountResult](ctx, c, AccountBlockCount{Account: account})
}

func (c *Client) AccountInfo(ctx context.Context, req AccountInfo) (*AccountInfoResult, error) {
	return Handle[AccountInfo, *AccountInfoResult](ctx, c, req)
}

// AccountCreate requires enable_control on the node.
func (c *Client) AccountCreate(ctx context.Context, wallet string) (*AccountCreateResult, error) {
	return Handle[AccountCreate, *AccountCreateResult](ctx, c, AccountCreate{Wallet: wallet})
}

func (c *Client) AccountGet(ctx context.Context, key address.PublicKey) (*AccountGetResult, error) {
	return Handle[AccountGet, *AccountGetResult](ctx, c, AccountGet{Key: key})
}

func (c *Client) AccountHistory(ctx context.Context, account *address.Address, count uint64) (*AccountHistoryResult, error) {
	return Handle[AccountHistory, *AccountHistoryResult](ctx, c, AccountHistory{Account: account, Count: count})
}

func (c *Client) AccountKey(ctx context.Context, account *address.Address) (*AccountKeyResult, error) {
	return Handle[AccountKey, *AccountKeyResult](ctx, c, AccountKey{Account: account})
}

func (c *Client) AccountRepresentative(ctx context.Context, account *address.Address) (*AccountRepresentativeResult, error) {
	return Handle[AccountRepresentative, *AccountRepresentativeResult](ctx, c, AccountRepresentative{Account: account})
}

func (c *Client) AccountWeight(ctx context.Context, account *address.Address) (*AccountWeightResult, error) {
	return Handle[AccountWeight, *AccountWeightResult](ctx, c, AccountWeight{Account: account})
}

func (c *Client) AccountsBalances(ctx context.Context, accounts ...*address.Address) (*AccountsBalancesResult, error) {
	return Handle[AccountsBalances, *AccountsBalancesResult](ctx, c, AccountsBalances{Accounts: accounts})
}

func (c *Client) BlockCount(ctx context.Context) (*BlockCountResult, error) {
	return Handle[BlockCount, *BlockCountResult](ctx, c, BlockCount{})
}

func (c *Client) Version(ctx context.Context) (*VersionResult, error) {
	return Handle[Version, *VersionResult](ctx, c, Version{})
}

// ConvertToRaw asks the node to convert a whole amount of a unit to raw. Only
// units the node has conversion actions for (Mxrb, kxrb, xrb) are supported.
func (c *Client) ConvertToRaw(ctx context.Context, unit units.Unit, amount *big.Int) (*units.Raw, error) {
	if unit.Action == "" {
		return nil, errors.BadRequest.WithFormat("the node cannot convert %v", unit)
	}
	r, err := Handle[ToRaw, *ConvertResult](ctx, c, ToRaw{Unit: unit, Amount: amount})
	if err != nil {
		return nil, err
	}
	return r.Amount, nil
}

// ConvertFromRaw asks the node to convert a raw amount to whole units of a
// unit, truncating.
func (c *Client) ConvertFromRaw(ctx context.Context, unit units.Unit, amount *units.Raw) (*big.Int, error) {
	if unit.Action == "" {
		return nil, errors.BadRequest.WithFormat("the node cannot convert %v", unit)
	}
	r, err := Handle[FromRaw, *ConvertResult](ctx, c, FromRaw{Unit: unit, Amount: amount})
	if err != nil {
		return nil, err
	}
	return r.Amount.BigInt(), nil
}
