package keeper

import (
	"context"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// UpdateConfig lets the pair owner change the commission rate and transfer
// ownership. Pairs without an owner are immutable.
func (k Keeper) UpdateConfig(ctx context.Context, contract, sender sdk.AccAddress, msg types.MsgUpdateConfig) (*types.Response, error) {
	pair, err := k.GetPair(ctx, contract)
	if err != nil {
		return nil, err
	}
	if pair.Owner == "" || pair.Owner != sender.String() {
		return nil, sdkerrors.Wrapf(types.ErrUnauthorized, "%s is not the owner of pair %s", sender, contract)
	}
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	if msg.Commission != nil {
		pair.Commission = *msg.Commission
	}
	if msg.Owner != "" {
		pair.Owner = msg.Owner
	}
	if err := k.SetPair(ctx, pair); err != nil {
		return nil, err
	}

	k.Logger(ctx).Info("pair config updated", "pair", pair.ContractAddr, "commission", pair.Commission.String(), "owner", pair.Owner)
	return types.NewResponse(types.ActionUpdateConfig).
		AddAttribute(types.AttributeKeyCommission, pair.Commission.String()).
		AddAttribute(types.AttributeKeyOwner, pair.Owner), nil
}
