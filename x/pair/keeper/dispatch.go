package keeper

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/confio/tfi/x/pair/types"
)

// Dispatch executes the instructions emitted by contract, in order, on the
// collaborator ledgers. Ledger creation acknowledgments are routed back to
// HandleLedgerReply and their responses returned.
func (k Keeper) Dispatch(ctx context.Context, contract sdk.AccAddress, instructions []types.Instruction) ([]*types.Response, error) {
	var replies []*types.Response
	for i, ins := range instructions {
		var err error
		switch ins := ins.(type) {
		case types.BankSend:
			err = k.bankKeeper.SendCoins(ctx, contract, ins.To, ins.Amount)
		case types.TokenTransfer:
			err = k.ledger.Transfer(ctx, ins.Ledger, contract, ins.Recipient, ins.Amount)
		case types.TokenTransferFrom:
			err = k.ledger.TransferFrom(ctx, ins.Ledger, contract, ins.Owner, ins.Recipient, ins.Amount)
		case types.TokenMint:
			err = k.ledger.Mint(ctx, ins.Ledger, contract, ins.Recipient, ins.Amount)
		case types.TokenBurn:
			err = k.ledger.Burn(ctx, ins.Ledger, contract, ins.Amount)
		case types.CreateLedger:
			var ack []byte
			ack, err = k.ledger.Instantiate(ctx, contract, ins.Msg)
			if err == nil {
				var reply *types.Response
				reply, err = k.HandleLedgerReply(ctx, contract, ins.ReplyID, ack)
				if reply != nil {
					replies = append(replies, reply)
				}
			}
		default:
			err = fmt.Errorf("unknown instruction %T", ins)
		}
		if err != nil {
			kind := fmt.Sprintf("%T", ins)
			k.Logger(ctx).Error("instruction failed", "pair", contract.String(), "index", i, "instruction", kind, "error", err)
			telemetry.IncrCounterWithLabels(
				[]string{types.ModuleName, "instruction_failed"},
				1,
				[]metrics.Label{telemetry.NewLabel("instruction", kind)},
			)
			return nil, fmt.Errorf("instruction %d (%T): %w", i, ins, err)
		}
	}
	return replies, nil
}

// payout builds the transfer of asset from the pair to recipient after the
// transfer tax. It returns a nil instruction when nothing is left to send.
func (k Keeper) payout(ctx context.Context, recipient sdk.AccAddress, asset types.Asset) (types.Instruction, math.Int, error) {
	net, tax, err := k.DeductTax(ctx, asset)
	if err != nil {
		return nil, math.Int{}, err
	}
	if net.Amount.IsZero() {
		return nil, tax, nil
	}

	switch net.Info.Kind() {
	case types.AssetKindNative:
		return types.BankSend{
			To:     recipient,
			Amount: sdk.NewCoins(sdk.NewCoin(net.Info.Native, net.Amount)),
		}, tax, nil
	case types.AssetKindToken:
		ledger, err := net.Info.LedgerAddress()
		if err != nil {
			return nil, math.Int{}, err
		}
		return types.TokenTransfer{Ledger: ledger, Recipient: recipient, Amount: net.Amount}, tax, nil
	default:
		return nil, math.Int{}, sdkerrors.Wrapf(types.ErrInvalidAsset, "cannot pay out %s", net.Info)
	}
}

// assertNativeFunds requires the attached funds to equal the native legs of
// assets exactly.
func assertNativeFunds(funds sdk.Coins, assets ...types.Asset) error {
	expected := sdk.NewCoins()
	for _, a := range assets {
		if a.Info.Kind() == types.AssetKindNative && a.Amount.IsPositive() {
			expected = expected.Add(sdk.NewCoin(a.Info.Native, a.Amount))
		}
	}
	if !funds.Equal(expected) {
		return sdkerrors.Wrapf(types.ErrNativeFundsMismatch, "sent %s, declared %s", funds, expected)
	}
	return nil
}
