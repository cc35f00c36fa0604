package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the native ledger the pair holds reserves on.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// TokenLedger defines the fungible token ledgers (including liquidity tokens).
type TokenLedger interface {
	Balance(ctx context.Context, ledger, owner sdk.AccAddress) (math.Int, error)
	TotalSupply(ctx context.Context, ledger sdk.AccAddress) (math.Int, error)

	Transfer(ctx context.Context, ledger, from, to sdk.AccAddress, amount math.Int) error
	// TransferFrom moves tokens of owner using the allowance granted to spender.
	TransferFrom(ctx context.Context, ledger, spender, owner, recipient sdk.AccAddress, amount math.Int) error
	Mint(ctx context.Context, ledger, minter, recipient sdk.AccAddress, amount math.Int) error
	Burn(ctx context.Context, ledger, owner sdk.AccAddress, amount math.Int) error

	// Instantiate creates a new ledger and returns the encoded acknowledgment
	// (see ParseInstantiateAck).
	Instantiate(ctx context.Context, creator sdk.AccAddress, msg TokenInstantiateMsg) ([]byte, error)
}

// TaxKeeper defines the network transfer tax applied to native payouts.
type TaxKeeper interface {
	TaxRate(ctx context.Context) (math.LegacyDec, error)
	TaxCap(ctx context.Context, denom string) (math.Int, error)
}
