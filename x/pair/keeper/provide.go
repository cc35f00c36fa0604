package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// ProvideLiquidity mints liquidity shares for a deposit of both assets.
// Native legs must already be credited to the pair as funds; token legs are
// pulled from sender with TransferFrom.
func (k Keeper) ProvideLiquidity(ctx context.Context, contract, sender sdk.AccAddress, funds sdk.Coins, msg types.MsgProvideLiquidity) (*types.Response, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	pair, err := k.GetReadyPair(ctx, contract)
	if err != nil {
		return nil, err
	}
	if err := assertNativeFunds(funds, msg.Assets[:]...); err != nil {
		return nil, err
	}

	// order deposits as the pair's assets
	var deposits [2]math.Int
	var seen [2]bool
	for _, a := range msg.Assets {
		idx, ok := pair.AssetIndex(a.Info)
		if !ok || seen[idx] {
			return nil, sdkerrors.Wrapf(types.ErrAssetMismatch, "%s is not an asset of pair %s", a.Info, contract)
		}
		seen[idx] = true
		deposits[idx] = a.Amount
	}

	var nativeCredited []types.Asset
	for i, info := range pair.AssetInfos {
		if info.IsNative() {
			nativeCredited = append(nativeCredited, types.NewAsset(info, deposits[i]))
		}
	}
	pools, err := k.poolsExcluding(ctx, pair, nativeCredited...)
	if err != nil {
		return nil, err
	}

	totalShare, err := k.totalShare(ctx, pair)
	if err != nil {
		return nil, err
	}
	share, err := ComputeShare(deposits, pools, totalShare)
	if err != nil {
		return nil, err
	}
	if share.IsZero() {
		return nil, sdkerrors.Wrapf(types.ErrInvalidZeroAmount, "deposit of %s, %s mints no share", deposits[0], deposits[1])
	}
	if !totalShare.IsZero() {
		if err := AssertSlippageTolerance(msg.SlippageTolerance, deposits, pools); err != nil {
			return nil, err
		}
	}

	lp, err := pair.LiquidityTokenAddress()
	if err != nil {
		return nil, err
	}

	resp := types.NewResponse(types.ActionProvideLiquidity)
	for i, info := range pair.AssetInfos {
		if info.Kind() != types.AssetKindToken {
			continue
		}
		ledger, err := info.LedgerAddress()
		if err != nil {
			return nil, err
		}
		resp.AddInstruction(types.TokenTransferFrom{
			Ledger:    ledger,
			Owner:     sender,
			Recipient: contract,
			Amount:    deposits[i],
		})
	}
	resp.AddInstruction(types.TokenMint{Ledger: lp, Recipient: sender, Amount: share})

	deposited := [2]types.Asset{
		types.NewAsset(pair.AssetInfos[0], deposits[0]),
		types.NewAsset(pair.AssetInfos[1], deposits[1]),
	}
	resp.AddAttribute(types.AttributeKeyAssets, types.FormatAssets(deposited[:]...)).
		AddAttribute(types.AttributeKeyShare, share.String())

	for i, a := range deposited {
		pools[i] = pools[i].Add(a.Amount)
	}
	resp.OnCommit(func() {
		for _, a := range deposited {
			k.metrics.LiquidityProvided.WithLabelValues(pair.ContractAddr, a.Info.String()).Add(toFloat(a.Amount))
		}
		k.metrics.SharesMinted.WithLabelValues(pair.ContractAddr).Add(toFloat(share))
		k.observeReserves(pair, pools)
	})

	k.Logger(ctx).Info("liquidity provided",
		"pair", pair.ContractAddr,
		"sender", sender.String(),
		"assets", types.FormatAssets(deposited[:]...),
		"share", share.String(),
	)
	return resp, nil
}
