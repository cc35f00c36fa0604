package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// withdrawLiquidity burns amount liquidity shares, already held by the pair,
// and refunds the proportional reserves to sender.
func (k Keeper) withdrawLiquidity(ctx context.Context, pair types.PairInfo, sender sdk.AccAddress, amount math.Int) (*types.Response, error) {
	if amount.IsZero() {
		return nil, sdkerrors.Wrap(types.ErrInvalidZeroAmount, "withdrawn share cannot be zero")
	}
	lp, err := pair.LiquidityTokenAddress()
	if err != nil {
		return nil, err
	}

	pools, err := k.poolsExcluding(ctx, pair)
	if err != nil {
		return nil, err
	}
	totalShare, err := k.totalShare(ctx, pair)
	if err != nil {
		return nil, err
	}
	refund, err := ComputeRefund(amount, totalShare, pools)
	if err != nil {
		return nil, err
	}

	resp := types.NewResponse(types.ActionWithdrawLiquidity)
	var refunded [2]types.Asset
	var taxes [2]math.Int
	for i, info := range pair.AssetInfos {
		refunded[i] = types.NewAsset(info, refund[i])
		payout, tax, err := k.payout(ctx, sender, refunded[i])
		if err != nil {
			return nil, err
		}
		if payout != nil {
			resp.AddInstruction(payout)
		}
		taxes[i] = tax
	}
	if len(resp.Instructions) == 0 {
		return nil, sdkerrors.Wrapf(types.ErrInvalidZeroAmount, "share %s of %s refunds nothing after tax", amount, totalShare)
	}
	resp.AddInstruction(types.TokenBurn{Ledger: lp, Amount: amount})
	resp.AddAttribute(types.AttributeKeyWithdrawnShare, amount.String()).
		AddAttribute(types.AttributeKeyRefundAssets, types.FormatAssets(refunded[:]...))

	for i, a := range refunded {
		pools[i] = pools[i].Sub(a.Amount)
	}
	resp.OnCommit(func() {
		for i, a := range refunded {
			k.metrics.LiquidityWithdrawn.WithLabelValues(pair.ContractAddr, a.Info.String()).Add(toFloat(a.Amount))
			if taxes[i].IsPositive() {
				k.metrics.TaxCollected.WithLabelValues(pair.ContractAddr, a.Info.String()).Add(toFloat(taxes[i]))
			}
		}
		k.metrics.SharesBurned.WithLabelValues(pair.ContractAddr).Add(toFloat(amount))
		k.observeReserves(pair, pools)
	})

	k.Logger(ctx).Info("liquidity withdrawn",
		"pair", pair.ContractAddr,
		"sender", sender.String(),
		"share", amount.String(),
		"refund", types.FormatAssets(refunded[:]...),
	)
	return resp, nil
}
