package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LifecycleState tracks the two-phase instantiation of a pair.
type LifecycleState uint8

const (
	// StateUninitialized is never persisted; it is what a missing record means.
	StateUninitialized LifecycleState = iota
	// StateAwaitingLedgerCreation is set once the liquidity token creation was requested.
	StateAwaitingLedgerCreation
	// StateReady is terminal: the liquidity token is bound and trading is enabled.
	StateReady
)

func (s LifecycleState) String() string {
	switch s {
	case StateAwaitingLedgerCreation:
		return "awaiting_ledger_creation"
	case StateReady:
		return "ready"
	default:
		return "uninitialized"
	}
}

// PairInfo is the persisted configuration of a pair.
type PairInfo struct {
	AssetInfos     [2]AssetInfo   `json:"asset_infos"`
	ContractAddr   string         `json:"contract_addr"`
	LiquidityToken string         `json:"liquidity_token"`
	Commission     math.LegacyDec `json:"commission"`
	Owner          string         `json:"owner,omitempty"`
	State          LifecycleState `json:"state"`
}

// IsReady reports whether the liquidity token has been bound.
func (p PairInfo) IsReady() bool {
	return p.State == StateReady && p.LiquidityToken != ""
}

// AssetIndex returns the position of info within the pair.
func (p PairInfo) AssetIndex(info AssetInfo) (int, bool) {
	for i, ai := range p.AssetInfos {
		if ai.Equal(info) {
			return i, true
		}
	}
	return 0, false
}

// LiquidityTokenAddress returns the bound liquidity ledger.
func (p PairInfo) LiquidityTokenAddress() (sdk.AccAddress, error) {
	if !p.IsReady() {
		return nil, ErrPairNotReady.Wrapf("pair %s is %s", p.ContractAddr, p.State)
	}
	return sdk.AccAddressFromBech32(p.LiquidityToken)
}

// Validate checks the stored configuration.
func (p PairInfo) Validate() error {
	if err := ValidateAssetInfos(p.AssetInfos); err != nil {
		return err
	}
	if _, err := sdk.AccAddressFromBech32(p.ContractAddr); err != nil {
		return ErrInvalidAddress.Wrapf("contract address: %s", err)
	}
	if p.Owner != "" {
		if _, err := sdk.AccAddressFromBech32(p.Owner); err != nil {
			return ErrInvalidAddress.Wrapf("owner: %s", err)
		}
	}
	return ValidateCommission(p.Commission)
}

// ValidateAssetInfos requires two distinct, well formed assets.
func ValidateAssetInfos(infos [2]AssetInfo) error {
	for _, info := range infos {
		if err := info.Validate(); err != nil {
			return err
		}
	}
	if infos[0].Equal(infos[1]) {
		return ErrInvalidAsset.Wrapf("pair assets must differ, got %s twice", infos[0])
	}
	return nil
}

// PoolResponse is the live state of a pair's reserves.
type PoolResponse struct {
	Assets     [2]Asset `json:"assets"`
	TotalShare math.Int `json:"total_share"`
}

// SwapQuote is the outcome of selling an amount into the pool.
type SwapQuote struct {
	ReturnAmount     math.Int `json:"return_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}

// ReverseQuote is the offer needed to receive a given net amount.
type ReverseQuote struct {
	OfferAmount      math.Int `json:"offer_amount"`
	SpreadAmount     math.Int `json:"spread_amount"`
	CommissionAmount math.Int `json:"commission_amount"`
}
