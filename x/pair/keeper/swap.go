package keeper

import (
	"context"
	"errors"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/confio/tfi/x/pair/types"
)

// Swap sells a native offer that was attached to the call as funds. Token
// offers arrive through Receive instead.
func (k Keeper) Swap(ctx context.Context, contract, sender sdk.AccAddress, funds sdk.Coins, msg types.MsgSwap) (*types.Response, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if msg.OfferAsset.Info.Kind() != types.AssetKindNative {
		return nil, sdkerrors.Wrapf(types.ErrUnauthorized, "token offer %s must be sent through its ledger", msg.OfferAsset.Info)
	}
	if err := assertNativeFunds(funds, msg.OfferAsset); err != nil {
		return nil, err
	}
	pair, err := k.GetReadyPair(ctx, contract)
	if err != nil {
		return nil, err
	}
	to, err := recipientOrSender(msg.To, sender)
	if err != nil {
		return nil, err
	}
	return k.swap(ctx, pair, sender, msg.OfferAsset, msg.BeliefPrice, msg.MaxSpread, to)
}

// swap prices offer, which is already credited to the pair, and pays the
// return asset to recipient.
func (k Keeper) swap(
	ctx context.Context,
	pair types.PairInfo,
	sender sdk.AccAddress,
	offer types.Asset,
	beliefPrice, maxSpread *math.LegacyDec,
	recipient sdk.AccAddress,
) (*types.Response, error) {
	swaps := k.metrics.SwapsTotal.MustCurryWith(prometheus.Labels{"pair": pair.ContractAddr, "offer_asset": offer.Info.String()})
	resp, err := k.executeSwap(ctx, pair, sender, offer, beliefPrice, maxSpread, recipient)
	switch {
	case errors.Is(err, types.ErrMaxSpreadExceeded):
		k.metrics.MaxSpreadRejections.WithLabelValues(pair.ContractAddr).Inc()
		swaps.WithLabelValues("max_spread").Inc()
	case err != nil:
		swaps.WithLabelValues("error").Inc()
	default:
		resp.OnCommit(swaps.WithLabelValues("success").Inc)
	}
	return resp, err
}

func (k Keeper) executeSwap(
	ctx context.Context,
	pair types.PairInfo,
	sender sdk.AccAddress,
	offer types.Asset,
	beliefPrice, maxSpread *math.LegacyDec,
	recipient sdk.AccAddress,
) (*types.Response, error) {
	if offer.Amount.IsZero() {
		return nil, sdkerrors.Wrap(types.ErrInvalidZeroAmount, "offer amount cannot be zero")
	}
	offerIdx, ok := pair.AssetIndex(offer.Info)
	if !ok {
		return nil, sdkerrors.Wrapf(types.ErrAssetMismatch, "%s is not an asset of pair %s", offer.Info, pair.ContractAddr)
	}
	askIdx := 1 - offerIdx

	pools, err := k.poolsExcluding(ctx, pair, offer)
	if err != nil {
		return nil, err
	}

	quote, err := ComputeSwap(pools[offerIdx], pools[askIdx], offer.Amount, pair.Commission)
	if err != nil {
		return nil, err
	}
	if err := AssertMaxSpread(beliefPrice, maxSpread, offer.Amount, quote.ReturnAmount.Add(quote.CommissionAmount), quote.SpreadAmount); err != nil {
		return nil, err
	}

	if quote.ReturnAmount.IsZero() {
		return nil, sdkerrors.Wrapf(types.ErrInvalidZeroAmount, "offer of %s returns nothing", offer)
	}

	askInfo := pair.AssetInfos[askIdx]
	payout, tax, err := k.payout(ctx, recipient, types.NewAsset(askInfo, quote.ReturnAmount))
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, sdkerrors.Wrapf(types.ErrInvalidZeroAmount, "return of %s is consumed by tax %s", quote.ReturnAmount, tax)
	}

	resp := types.NewResponse(types.ActionSwap).AddInstruction(payout)
	resp.AddAttribute(types.AttributeKeyOfferAsset, offer.Info.String()).
		AddAttribute(types.AttributeKeyAskAsset, askInfo.String()).
		AddAttribute(types.AttributeKeyOfferAmount, offer.Amount.String()).
		AddAttribute(types.AttributeKeyReturnAmount, quote.ReturnAmount.String()).
		AddAttribute(types.AttributeKeyTaxAmount, tax.String()).
		AddAttribute(types.AttributeKeySpreadAmount, quote.SpreadAmount.String()).
		AddAttribute(types.AttributeKeyCommissionAmount, quote.CommissionAmount.String())

	pools[offerIdx] = pools[offerIdx].Add(offer.Amount)
	pools[askIdx] = pools[askIdx].Sub(quote.ReturnAmount)
	resp.OnCommit(func() {
		k.metrics.SwapVolume.WithLabelValues(pair.ContractAddr, offer.Info.String()).Add(toFloat(offer.Amount))
		k.metrics.CommissionCollected.WithLabelValues(pair.ContractAddr, askInfo.String()).Add(toFloat(quote.CommissionAmount))
		if tax.IsPositive() {
			k.metrics.TaxCollected.WithLabelValues(pair.ContractAddr, askInfo.String()).Add(toFloat(tax))
		}
		k.observeReserves(pair, pools)
	})

	k.Logger(ctx).Info("swap executed",
		"pair", pair.ContractAddr,
		"sender", sender.String(),
		"receiver", recipient.String(),
		"offer", offer.String(),
		"return", quote.ReturnAmount.String(),
		"commission", quote.CommissionAmount.String(),
		"spread", quote.SpreadAmount.String(),
	)
	return resp, nil
}

func recipientOrSender(to string, sender sdk.AccAddress) (sdk.AccAddress, error) {
	if to == "" {
		return sender, nil
	}
	addr, err := sdk.AccAddressFromBech32(to)
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrInvalidAddress, "recipient %q: %s", to, err)
	}
	return addr, nil
}
