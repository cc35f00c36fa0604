package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// Instantiate stores a new pair awaiting its liquidity token and requests the
// token's creation. The pair cannot trade until HandleLedgerReply binds it.
func (k Keeper) Instantiate(ctx context.Context, contract sdk.AccAddress, msg types.InstantiateMsg) (*types.Response, error) {
	if k.HasPair(ctx, contract) {
		return nil, sdkerrors.Wrapf(types.ErrAlreadyInitialized, "pair %s", contract)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	pair := types.PairInfo{
		AssetInfos:   msg.AssetInfos,
		ContractAddr: contract.String(),
		Commission:   msg.CommissionOrDefault(),
		Owner:        msg.Owner,
		State:        types.StateAwaitingLedgerCreation,
	}
	if err := k.SetPair(ctx, pair); err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("pair instantiated",
		"pair", pair.ContractAddr,
		"assets", pair.AssetInfos[0].String()+"-"+pair.AssetInfos[1].String(),
		"commission", pair.Commission.String(),
	)

	return types.NewResponse(types.ActionInstantiate).
		AddAttribute(types.AttributeKeyCommission, pair.Commission.String()).
		OnCommit(k.metrics.PairsInstantiated.Inc).
		AddInstruction(types.CreateLedger{
			ReplyID: types.ReplyCreateLiquidityToken,
			Msg:     types.NewLiquidityTokenMsg(contract),
		}), nil
}

// HandleLedgerReply binds the liquidity token created for contract. It is
// accepted once; the pair is Ready afterwards.
func (k Keeper) HandleLedgerReply(ctx context.Context, contract sdk.AccAddress, replyID uint64, payload []byte) (*types.Response, error) {
	pair, err := k.GetPair(ctx, contract)
	if err != nil {
		return nil, err
	}
	if pair.State == types.StateReady {
		return nil, sdkerrors.Wrapf(types.ErrAlreadyInitialized, "liquidity token of %s is %s", contract, pair.LiquidityToken)
	}
	if replyID != types.ReplyCreateLiquidityToken {
		return nil, sdkerrors.Wrapf(types.ErrMalformedAck, "unknown reply id %d", replyID)
	}

	lpAddr, err := types.ParseInstantiateAck(payload)
	if err != nil {
		return nil, err
	}
	lp, err := sdk.AccAddressFromBech32(lpAddr)
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrMalformedAck, "liquidity token address %q: %s", lpAddr, err)
	}

	pair.LiquidityToken = lp.String()
	pair.State = types.StateReady
	if err := k.SetPair(ctx, pair); err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("pair liquidity token bound", "pair", pair.ContractAddr, "liquidity_token", pair.LiquidityToken)

	resp := &types.Response{}
	return resp.AddAttribute(types.AttributeKeyLiquidityTokenAddr, pair.LiquidityToken).
		OnCommit(k.metrics.PairsReady.Inc), nil
}
