package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// LiquidityTokenName is the name given to every pair's liquidity token
	LiquidityTokenName = "tfi liquidity token"
	// LiquidityTokenSymbol is the symbol given to every pair's liquidity token
	LiquidityTokenSymbol = "uLP"
	// LiquidityTokenDecimals is the display precision of liquidity tokens
	LiquidityTokenDecimals = 6

	// ReplyCreateLiquidityToken identifies the ledger creation acknowledgment
	ReplyCreateLiquidityToken uint64 = 1
)

// DefaultCommissionRate returns the commission used when a pair is created without one (0.3%).
func DefaultCommissionRate() math.LegacyDec {
	return math.LegacyNewDecWithPrec(3, 3)
}

// ValidateCommission requires a rate in [0, 1).
func ValidateCommission(rate math.LegacyDec) error {
	if rate.IsNil() {
		return ErrInvalidCommission.Wrap("commission must be set")
	}
	if rate.IsNegative() || rate.GTE(math.LegacyOneDec()) {
		return ErrInvalidCommission.Wrapf("%s is outside [0, 1)", rate)
	}
	return nil
}

// TokenInstantiateMsg carries the parameters of a new token ledger.
type TokenInstantiateMsg struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint32 `json:"decimals"`
	Minter   string `json:"minter"`
}

// NewLiquidityTokenMsg describes the liquidity token minted by pair.
func NewLiquidityTokenMsg(pair sdk.AccAddress) TokenInstantiateMsg {
	return TokenInstantiateMsg{
		Name:     LiquidityTokenName,
		Symbol:   LiquidityTokenSymbol,
		Decimals: LiquidityTokenDecimals,
		Minter:   pair.String(),
	}
}
