package keeper

import (
	"context"
	"fmt"
	"math/big"

	"cosmossdk.io/math"

	"github.com/confio/tfi/x/pair/types"
)

// ComputeTax returns the network transfer tax charged when the pair sends
// asset. Token transfers are never taxed.
//
//	tax = min(amount - floor(amount * 1e18 / (rate_atomics + 1e18)), cap)
func (k Keeper) ComputeTax(ctx context.Context, asset types.Asset) (math.Int, error) {
	if k.taxKeeper == nil || asset.Info.Kind() != types.AssetKindNative || asset.Amount.IsZero() {
		return math.ZeroInt(), nil
	}

	rate, err := k.taxKeeper.TaxRate(ctx)
	if err != nil {
		return math.Int{}, fmt.Errorf("tax rate: %w", err)
	}
	taxCap, err := k.taxKeeper.TaxCap(ctx, asset.Info.Native)
	if err != nil {
		return math.Int{}, fmt.Errorf("tax cap of %s: %w", asset.Info.Native, err)
	}
	return computeTax(asset.Amount, rate, taxCap)
}

func computeTax(amount math.Int, rate math.LegacyDec, taxCap math.Int) (math.Int, error) {
	if rate.IsNil() || !rate.IsPositive() {
		return math.ZeroInt(), nil
	}
	den := new(big.Int).Add(rate.BigInt(), decimalOne)
	net := new(big.Int).Mul(amount.BigInt(), decimalOne)
	net.Quo(net, den)

	tax, err := SafeSub(amount, math.NewIntFromBigInt(net))
	if err != nil {
		return math.Int{}, err
	}
	if !taxCap.IsNil() && tax.GT(taxCap) {
		tax = taxCap
	}
	return tax, nil
}

// DeductTax returns asset reduced by the tax its transfer will be charged.
func (k Keeper) DeductTax(ctx context.Context, asset types.Asset) (types.Asset, math.Int, error) {
	tax, err := k.ComputeTax(ctx, asset)
	if err != nil {
		return types.Asset{}, math.Int{}, err
	}
	net, err := SafeSub(asset.Amount, tax)
	if err != nil {
		return types.Asset{}, math.Int{}, err
	}
	return types.NewAsset(asset.Info, net), tax, nil
}
