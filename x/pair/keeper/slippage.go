package keeper

import (
	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/confio/tfi/x/pair/types"
)

// AssertMaxSpread checks a swap against the trader's bounds. returnAmount
// includes the commission.
//
// With a belief price the spread is measured against the return the trader
// expected (offer / belief); a better than expected return always passes.
// With only a max spread the engine's own spread is used. Without max spread
// nothing is checked.
func AssertMaxSpread(beliefPrice, maxSpread *math.LegacyDec, offerAmount, returnAmount, spreadAmount math.Int) error {
	if maxSpread == nil {
		return nil
	}

	if beliefPrice != nil {
		inv, err := reciprocal(*beliefPrice)
		if err != nil {
			return err
		}
		expected, err := mulDecFloor(offerAmount, inv)
		if err != nil {
			return err
		}
		if returnAmount.GTE(expected) {
			return nil
		}
		implied, err := decRatio(expected.Sub(returnAmount), expected)
		if err != nil {
			return err
		}
		if implied.GT(*maxSpread) {
			return sdkerrors.Wrapf(types.ErrMaxSpreadExceeded, "spread %s against belief price %s exceeds %s", implied, beliefPrice, maxSpread)
		}
		return nil
	}

	total, err := SafeAdd(returnAmount, spreadAmount)
	if err != nil {
		return err
	}
	spread, err := decRatio(spreadAmount, total)
	if err != nil {
		return err
	}
	if spread.GT(*maxSpread) {
		return sdkerrors.Wrapf(types.ErrMaxSpreadExceeded, "spread %s exceeds %s", spread, maxSpread)
	}
	return nil
}

// AssertSlippageTolerance rejects deposits whose ratio deviates from the pool
// ratio by more than tolerance in either direction. pools are the reserves
// before the deposit.
func AssertSlippageTolerance(tolerance *math.LegacyDec, deposits, pools [2]math.Int) error {
	if tolerance == nil {
		return nil
	}
	if tolerance.IsNil() || tolerance.IsNegative() || tolerance.GT(math.LegacyOneDec()) {
		return sdkerrors.Wrapf(types.ErrInvalidSlippageTolerance, "%v is outside [0, 1]", tolerance)
	}
	keep := math.LegacyOneDec().Sub(*tolerance)

	for _, side := range [2][2]int{{0, 1}, {1, 0}} {
		a, b := side[0], side[1]
		depositRatio, err := decRatio(deposits[a], deposits[b])
		if err != nil {
			return err
		}
		poolRatio, err := decRatio(pools[a], pools[b])
		if err != nil {
			return err
		}
		if depositRatio.MulTruncate(keep).GT(poolRatio) {
			return sdkerrors.Wrapf(types.ErrMaxSlippageExceeded, "deposit ratio %s against pool ratio %s with tolerance %s", depositRatio, poolRatio, tolerance)
		}
	}
	return nil
}
