package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// Receive handles the hook a token ledger calls after crediting msg.Amount to
// the pair on behalf of msg.Sender. ledger is the calling ledger.
func (k Keeper) Receive(ctx context.Context, contract, ledger sdk.AccAddress, msg types.ReceiveMsg) (*types.Response, error) {
	pair, err := k.GetReadyPair(ctx, contract)
	if err != nil {
		return nil, err
	}
	sender, err := sdk.AccAddressFromBech32(msg.Sender)
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrInvalidAddress, "hook sender: %s", err)
	}
	if err := types.ValidateAmount(msg.Amount); err != nil {
		return nil, err
	}
	hook, err := types.ParseHookMsg(msg.Msg)
	if err != nil {
		return nil, err
	}

	switch {
	case hook.Swap != nil:
		offerInfo := types.NewTokenAssetInfo(ledger)
		if _, ok := pair.AssetIndex(offerInfo); !ok {
			return nil, sdkerrors.Wrapf(types.ErrUnauthorized, "ledger %s is not an asset of pair %s", ledger, contract)
		}
		to, err := recipientOrSender(hook.Swap.To, sender)
		if err != nil {
			return nil, err
		}
		return k.swap(ctx, pair, sender, types.NewAsset(offerInfo, msg.Amount), hook.Swap.BeliefPrice, hook.Swap.MaxSpread, to)

	case hook.WithdrawLiquidity != nil:
		if ledger.String() != pair.LiquidityToken {
			return nil, sdkerrors.Wrapf(types.ErrUnauthorized, "ledger %s is not the liquidity token of pair %s", ledger, contract)
		}
		return k.withdrawLiquidity(ctx, pair, sender, msg.Amount)

	default:
		return nil, sdkerrors.Wrap(types.ErrInvalidHookMsg, "empty hook message")
	}
}
