package keeper

import (
	"context"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// Keeper of the pair store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
	ledger     types.TokenLedger
	taxKeeper  types.TaxKeeper
	metrics    *PairMetrics
}

// NewKeeper creates a new pair Keeper instance. taxKeeper may be nil, in which
// case native payouts are not taxed.
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	ledger types.TokenLedger,
	taxKeeper types.TaxKeeper,
) *Keeper {
	return &Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
		ledger:     ledger,
		taxKeeper:  taxKeeper,
		metrics:    NewPairMetrics(),
	}
}

// getStore returns the KVStore for the pair module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}
