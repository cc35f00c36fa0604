package keeper

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// QueryPools reads the live reserves of pair in asset_infos order.
func (k Keeper) QueryPools(ctx context.Context, pair types.PairInfo) ([2]types.Asset, error) {
	var pools [2]types.Asset
	contract, err := sdk.AccAddressFromBech32(pair.ContractAddr)
	if err != nil {
		return pools, sdkerrors.Wrapf(types.ErrInvalidAddress, "contract address: %s", err)
	}

	for i, info := range pair.AssetInfos {
		amount, err := k.balanceOf(ctx, info, contract)
		if err != nil {
			return pools, fmt.Errorf("reserve of %s: %w", info, err)
		}
		pools[i] = types.NewAsset(info, amount)
	}
	return pools, nil
}

// poolsExcluding reads the reserves and removes amounts that were credited to
// the pair as part of the current call.
func (k Keeper) poolsExcluding(ctx context.Context, pair types.PairInfo, credited ...types.Asset) ([2]math.Int, error) {
	var amounts [2]math.Int
	pools, err := k.QueryPools(ctx, pair)
	if err != nil {
		return amounts, err
	}
	for i := range pools {
		amounts[i] = pools[i].Amount
	}
	for _, c := range credited {
		idx, ok := pair.AssetIndex(c.Info)
		if !ok {
			return amounts, sdkerrors.Wrapf(types.ErrAssetMismatch, "%s is not part of the pair", c.Info)
		}
		amounts[idx], err = SafeSub(amounts[idx], c.Amount)
		if err != nil {
			return amounts, fmt.Errorf("exclude deposit of %s: %w", c.Info, err)
		}
	}
	return amounts, nil
}

func (k Keeper) balanceOf(ctx context.Context, info types.AssetInfo, holder sdk.AccAddress) (math.Int, error) {
	switch info.Kind() {
	case types.AssetKindNative:
		return k.bankKeeper.GetBalance(ctx, holder, info.Native).Amount, nil
	case types.AssetKindToken:
		ledger, err := info.LedgerAddress()
		if err != nil {
			return math.Int{}, err
		}
		return k.ledger.Balance(ctx, ledger, holder)
	default:
		return math.Int{}, sdkerrors.Wrapf(types.ErrInvalidAsset, "unknown asset kind %s", info.Kind())
	}
}

// totalShare returns the outstanding liquidity token supply.
func (k Keeper) totalShare(ctx context.Context, pair types.PairInfo) (math.Int, error) {
	lp, err := pair.LiquidityTokenAddress()
	if err != nil {
		return math.Int{}, err
	}
	return k.ledger.TotalSupply(ctx, lp)
}

func (k Keeper) observeReserves(pair types.PairInfo, amounts [2]math.Int) {
	for i, info := range pair.AssetInfos {
		k.metrics.PoolReserves.WithLabelValues(pair.ContractAddr, info.String()).Set(toFloat(amounts[i]))
	}
}
