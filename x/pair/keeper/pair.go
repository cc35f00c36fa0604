package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/store/prefix"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/confio/tfi/x/pair/types"
)

// GetNextPairSequence returns the next pair sequence and increments the counter
func (k Keeper) GetNextPairSequence(ctx context.Context) (uint64, error) {
	seq := k.PeekPairSequence(ctx)
	next, err := SafeAddUint64(seq, 1)
	if err != nil {
		return 0, fmt.Errorf("GetNextPairSequence: %w", err)
	}
	k.SetPairSequence(ctx, next)
	return seq, nil
}

// PeekPairSequence returns the sequence the next created pair will receive
func (k Keeper) PeekPairSequence(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(PairSequenceKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}

// SetPairSequence sets the sequence the next created pair will receive
func (k Keeper) SetPairSequence(ctx context.Context, seq uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, seq)
	k.getStore(ctx).Set(PairSequenceKey, bz)
}

// PairAddress derives the contract address of the pair with the given sequence
func PairAddress(seq uint64) sdk.AccAddress {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, seq)
	return address.Module(types.ModuleName, bz)
}

// GetPair returns the pair living at contract
func (k Keeper) GetPair(ctx context.Context, contract sdk.AccAddress) (types.PairInfo, error) {
	bz := k.getStore(ctx).Get(PairKey(contract))
	if bz == nil {
		return types.PairInfo{}, sdkerrors.Wrapf(types.ErrPairNotFound, "no pair at %s", contract)
	}

	var pair types.PairInfo
	if err := json.Unmarshal(bz, &pair); err != nil {
		return types.PairInfo{}, fmt.Errorf("GetPair: unmarshal %s: %w", contract, err)
	}
	return pair, nil
}

// GetReadyPair returns the pair at contract only when its liquidity token is bound
func (k Keeper) GetReadyPair(ctx context.Context, contract sdk.AccAddress) (types.PairInfo, error) {
	pair, err := k.GetPair(ctx, contract)
	if err != nil {
		return types.PairInfo{}, err
	}
	if !pair.IsReady() {
		return types.PairInfo{}, sdkerrors.Wrapf(types.ErrPairNotReady, "pair %s is %s", contract, pair.State)
	}
	return pair, nil
}

// SetPair persists a pair
func (k Keeper) SetPair(ctx context.Context, pair types.PairInfo) error {
	contract, err := sdk.AccAddressFromBech32(pair.ContractAddr)
	if err != nil {
		return sdkerrors.Wrapf(types.ErrInvalidAddress, "contract address: %s", err)
	}
	bz, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("SetPair: marshal: %w", err)
	}
	k.getStore(ctx).Set(PairKey(contract), bz)
	return nil
}

// HasPair reports whether a pair was instantiated at contract
func (k Keeper) HasPair(ctx context.Context, contract sdk.AccAddress) bool {
	return k.getStore(ctx).Has(PairKey(contract))
}

// IteratePairs calls cb for every stored pair until cb returns true
func (k Keeper) IteratePairs(ctx context.Context, cb func(types.PairInfo) (stop bool)) error {
	store := prefix.NewStore(k.getStore(ctx), PairKeyPrefix)
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pair types.PairInfo
		if err := json.Unmarshal(iterator.Value(), &pair); err != nil {
			return fmt.Errorf("IteratePairs: unmarshal: %w", err)
		}
		if cb(pair) {
			break
		}
	}
	return nil
}
