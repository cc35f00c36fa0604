package keeper

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

// RegisterInvariants registers all pair invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pair-config", PairConfigInvariant(k))
	ir.RegisterRoute(types.ModuleName, "lifecycle", LifecycleInvariant(k))
	ir.RegisterRoute(types.ModuleName, "reserve-bounds", ReserveBoundsInvariant(k))
}

// AllInvariants runs all invariants of the pair module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PairConfigInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = LifecycleInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return ReserveBoundsInvariant(k)(ctx)
	}
}

// PairConfigInvariant checks that every stored pair has two distinct valid
// assets and a commission in [0, 1)
func PairConfigInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairs(ctx, func(pair types.PairInfo) bool {
			if err := pair.Validate(); err != nil {
				count++
				msg += fmt.Sprintf("pair %s: %v\n", pair.ContractAddr, err)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pairs: %v\n", err)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "pair-config",
			fmt.Sprintf("found %d invalid pairs\n%s", count, msg),
		), count != 0
	}
}

// LifecycleInvariant checks that exactly the ready pairs have a liquidity
// token bound
func LifecycleInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairs(ctx, func(pair types.PairInfo) bool {
			switch pair.State {
			case types.StateReady:
				if _, err := pair.LiquidityTokenAddress(); err != nil {
					count++
					msg += fmt.Sprintf("pair %s: ready without liquidity token: %v\n", pair.ContractAddr, err)
				}
			case types.StateAwaitingLedgerCreation:
				if pair.LiquidityToken != "" {
					count++
					msg += fmt.Sprintf("pair %s: awaiting ledger creation but bound to %s\n", pair.ContractAddr, pair.LiquidityToken)
				}
			default:
				count++
				msg += fmt.Sprintf("pair %s: stored in state %s\n", pair.ContractAddr, pair.State)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pairs: %v\n", err)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "lifecycle",
			fmt.Sprintf("found %d pairs with inconsistent lifecycle\n%s", count, msg),
		), count != 0
	}
}

// ReserveBoundsInvariant checks that the reserves and the share supply of
// every ready pair fit the 128-bit amount range
func ReserveBoundsInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairs(ctx, func(pair types.PairInfo) bool {
			if !pair.IsReady() {
				return false
			}
			assets, err := k.QueryPools(ctx, pair)
			if err != nil {
				count++
				msg += fmt.Sprintf("pair %s: read reserves: %v\n", pair.ContractAddr, err)
				return false
			}
			for _, a := range assets {
				if _, err := CheckAmount(a.Amount); err != nil {
					count++
					msg += fmt.Sprintf("pair %s: reserve of %s: %v\n", pair.ContractAddr, a.Info, err)
				}
			}
			total, err := k.totalShare(ctx, pair)
			if err == nil {
				_, err = CheckAmount(total)
			}
			if err != nil {
				count++
				msg += fmt.Sprintf("pair %s: total share: %v\n", pair.ContractAddr, err)
			}
			return false
		})
		if err != nil {
			count++
			msg += fmt.Sprintf("iterate pairs: %v\n", err)
		}

		return sdk.FormatInvariant(
			types.ModuleName, "reserve-bounds",
			fmt.Sprintf("found %d out-of-range amounts\n%s", count, msg),
		), count != 0
	}
}
