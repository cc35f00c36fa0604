package types

import (
	"bytes"
	"encoding/json"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// InstantiateMsg configures a new pair
type InstantiateMsg struct {
	AssetInfos [2]AssetInfo `json:"asset_infos"`
	// Commission defaults to DefaultCommissionRate when nil
	Commission *math.LegacyDec `json:"commission,omitempty"`
	Owner      string          `json:"owner,omitempty"`
}

// CommissionOrDefault returns the configured commission or the module default
func (msg InstantiateMsg) CommissionOrDefault() math.LegacyDec {
	if msg.Commission == nil {
		return DefaultCommissionRate()
	}
	return *msg.Commission
}

// ValidateBasic performs stateless checks
func (msg InstantiateMsg) ValidateBasic() error {
	if err := ValidateAssetInfos(msg.AssetInfos); err != nil {
		return err
	}
	if msg.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
		}
	}
	return ValidateCommission(msg.CommissionOrDefault())
}

// MsgProvideLiquidity deposits both assets in exchange for liquidity shares
type MsgProvideLiquidity struct {
	Assets            [2]Asset        `json:"assets"`
	SlippageTolerance *math.LegacyDec `json:"slippage_tolerance,omitempty"`
}

// Type returns the action name
func (msg MsgProvideLiquidity) Type() string {
	return ActionProvideLiquidity
}

// ValidateBasic performs stateless checks
func (msg MsgProvideLiquidity) ValidateBasic() error {
	for _, a := range msg.Assets {
		if err := a.Validate(); err != nil {
			return err
		}
		if a.Amount.IsZero() {
			return sdkerrors.Wrapf(ErrInvalidZeroAmount, "deposit of %s", a.Info)
		}
	}
	if msg.Assets[0].Info.Equal(msg.Assets[1].Info) {
		return sdkerrors.Wrapf(ErrAssetMismatch, "both deposits are %s", msg.Assets[0].Info)
	}
	if t := msg.SlippageTolerance; t != nil {
		if t.IsNil() || t.IsNegative() || t.GT(math.LegacyOneDec()) {
			return sdkerrors.Wrapf(ErrInvalidSlippageTolerance, "%v is outside [0, 1]", t)
		}
	}
	return nil
}

// MsgSwap sells the offer asset for the other side of the pair
type MsgSwap struct {
	OfferAsset  Asset           `json:"offer_asset"`
	BeliefPrice *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *math.LegacyDec `json:"max_spread,omitempty"`
	// To receives the return asset; the sender when empty
	To string `json:"to,omitempty"`
}

// Type returns the action name
func (msg MsgSwap) Type() string {
	return ActionSwap
}

// ValidateBasic performs stateless checks
func (msg MsgSwap) ValidateBasic() error {
	if err := msg.OfferAsset.Validate(); err != nil {
		return err
	}
	if msg.OfferAsset.Amount.IsZero() {
		return sdkerrors.Wrap(ErrInvalidZeroAmount, "offer amount cannot be zero")
	}
	return validateSwapBounds(msg.BeliefPrice, msg.MaxSpread, msg.To)
}

func validateSwapBounds(beliefPrice, maxSpread *math.LegacyDec, to string) error {
	if beliefPrice != nil && (beliefPrice.IsNil() || !beliefPrice.IsPositive()) {
		return sdkerrors.Wrap(ErrInvalidAsset, "belief price must be positive")
	}
	if maxSpread != nil && (maxSpread.IsNil() || maxSpread.IsNegative()) {
		return sdkerrors.Wrap(ErrInvalidAsset, "max spread cannot be negative")
	}
	if to != "" {
		if _, err := sdk.AccAddressFromBech32(to); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid recipient: %s", err)
		}
	}
	return nil
}

// MsgUpdateConfig lets the pair owner change the commission or hand over ownership
type MsgUpdateConfig struct {
	Commission *math.LegacyDec `json:"commission,omitempty"`
	Owner      string          `json:"owner,omitempty"`
}

// ValidateBasic performs stateless checks
func (msg MsgUpdateConfig) ValidateBasic() error {
	if msg.Commission != nil {
		if err := ValidateCommission(*msg.Commission); err != nil {
			return err
		}
	}
	if msg.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(msg.Owner); err != nil {
			return sdkerrors.Wrapf(ErrInvalidAddress, "invalid owner address: %s", err)
		}
	}
	return nil
}

// ReceiveMsg is delivered by a token ledger after it credited Amount to the pair
// on behalf of Sender.
type ReceiveMsg struct {
	Sender string   `json:"sender"`
	Amount math.Int `json:"amount"`
	Msg    []byte   `json:"msg"`
}

// HookSwap is the swap variant of a token ledger hook
type HookSwap struct {
	BeliefPrice *math.LegacyDec `json:"belief_price,omitempty"`
	MaxSpread   *math.LegacyDec `json:"max_spread,omitempty"`
	To          string          `json:"to,omitempty"`
}

// HookWithdrawLiquidity is the withdraw variant of a token ledger hook
type HookWithdrawLiquidity struct{}

// HookMsg is the decoded hook payload. Exactly one field is set.
type HookMsg struct {
	Swap              *HookSwap              `json:"swap,omitempty"`
	WithdrawLiquidity *HookWithdrawLiquidity `json:"withdraw_liquidity,omitempty"`
}

// ParseHookMsg decodes a hook payload, rejecting unknown fields and ambiguous messages
func ParseHookMsg(bz []byte) (HookMsg, error) {
	var hook HookMsg
	if len(bz) == 0 {
		return hook, sdkerrors.Wrap(ErrInvalidHookMsg, "empty payload")
	}
	dec := json.NewDecoder(bytes.NewReader(bz))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&hook); err != nil {
		return hook, sdkerrors.Wrap(ErrInvalidHookMsg, err.Error())
	}
	if (hook.Swap == nil) == (hook.WithdrawLiquidity == nil) {
		return hook, sdkerrors.Wrap(ErrInvalidHookMsg, "payload must carry exactly one of swap or withdraw_liquidity")
	}
	if hook.Swap != nil {
		if err := validateSwapBounds(hook.Swap.BeliefPrice, hook.Swap.MaxSpread, hook.Swap.To); err != nil {
			return hook, err
		}
	}
	return hook, nil
}

// MustMarshalHook encodes a hook payload; used by clients and tests
func MustMarshalHook(hook HookMsg) []byte {
	bz, err := json.Marshal(hook)
	if err != nil {
		panic(err)
	}
	return bz
}
