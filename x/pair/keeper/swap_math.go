package keeper

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/confio/tfi/x/pair/types"
)

// ComputeSwap prices selling offerAmount into a constant-product pool.
//
//	gross      = askPool - floor(offerPool*askPool / (offerPool+offerAmount))
//	spread     = max(floor(offerAmount * askPool/offerPool) - gross, 0)
//	commission = floor(gross * commissionRate)
//	return     = gross - commission
//
// Every division floors, so rounding always favours the pool.
func ComputeSwap(offerPool, askPool, offerAmount math.Int, commissionRate math.LegacyDec) (types.SwapQuote, error) {
	if offerPool.IsZero() || askPool.IsZero() {
		return types.SwapQuote{}, sdkerrors.Wrapf(types.ErrDivideByZero, "empty pool (offer %s, ask %s)", offerPool, askPool)
	}
	for _, v := range []math.Int{offerPool, askPool, offerAmount} {
		if _, err := CheckAmount(v); err != nil {
			return types.SwapQuote{}, err
		}
	}

	k, err := SafeMul(offerPool, askPool)
	if err != nil {
		return types.SwapQuote{}, fmt.Errorf("invariant: %w", err)
	}
	newOfferPool, err := SafeAdd(offerPool, offerAmount)
	if err != nil {
		return types.SwapQuote{}, fmt.Errorf("offer pool after swap: %w", err)
	}
	newAskPool, err := SafeQuo(k, newOfferPool)
	if err != nil {
		return types.SwapQuote{}, err
	}
	gross, err := SafeSub(askPool, newAskPool)
	if err != nil {
		return types.SwapQuote{}, fmt.Errorf("gross return: %w", err)
	}

	price, err := decRatio(askPool, offerPool)
	if err != nil {
		return types.SwapQuote{}, err
	}
	ideal, err := mulDecFloor(offerAmount, price)
	if err != nil {
		return types.SwapQuote{}, fmt.Errorf("ideal return: %w", err)
	}
	spread := math.ZeroInt()
	if ideal.GT(gross) {
		spread = ideal.Sub(gross)
	}

	commission, err := mulDecFloor(gross, commissionRate)
	if err != nil {
		return types.SwapQuote{}, fmt.Errorf("commission: %w", err)
	}
	ret, err := SafeSub(gross, commission)
	if err != nil {
		return types.SwapQuote{}, fmt.Errorf("net return: %w", err)
	}

	return types.SwapQuote{
		ReturnAmount:     ret,
		SpreadAmount:     spread,
		CommissionAmount: commission,
	}, nil
}

// ComputeOfferAmount is the inverse of ComputeSwap: the offer needed for the
// pool to pay askAmount after commission.
//
//	before = floor(askAmount * trunc(1/(1-commissionRate)))
//	offer  = floor(offerPool*askPool / (askPool-before)) - offerPool
func ComputeOfferAmount(offerPool, askPool, askAmount math.Int, commissionRate math.LegacyDec) (types.ReverseQuote, error) {
	if offerPool.IsZero() || askPool.IsZero() {
		return types.ReverseQuote{}, sdkerrors.Wrapf(types.ErrDivideByZero, "empty pool (offer %s, ask %s)", offerPool, askPool)
	}
	for _, v := range []math.Int{offerPool, askPool, askAmount} {
		if _, err := CheckAmount(v); err != nil {
			return types.ReverseQuote{}, err
		}
	}

	k, err := SafeMul(offerPool, askPool)
	if err != nil {
		return types.ReverseQuote{}, fmt.Errorf("invariant: %w", err)
	}
	inv, err := reciprocal(math.LegacyOneDec().Sub(commissionRate))
	if err != nil {
		return types.ReverseQuote{}, err
	}
	before, err := mulDecFloor(askAmount, inv)
	if err != nil {
		return types.ReverseQuote{}, fmt.Errorf("amount before commission: %w", err)
	}
	if before.GTE(askPool) {
		return types.ReverseQuote{}, sdkerrors.Wrapf(types.ErrUnderflow, "ask %s (before commission) drains pool of %s", before, askPool)
	}

	newOfferPool, err := SafeQuo(k, askPool.Sub(before))
	if err != nil {
		return types.ReverseQuote{}, err
	}
	offer, err := SafeSub(newOfferPool, offerPool)
	if err != nil {
		return types.ReverseQuote{}, fmt.Errorf("offer amount: %w", err)
	}
	if _, err := CheckAmount(offer); err != nil {
		return types.ReverseQuote{}, err
	}

	price, err := decRatio(askPool, offerPool)
	if err != nil {
		return types.ReverseQuote{}, err
	}
	ideal, err := mulDecFloor(offer, price)
	if err != nil {
		return types.ReverseQuote{}, fmt.Errorf("ideal return: %w", err)
	}
	spread := math.ZeroInt()
	if ideal.GT(before) {
		spread = ideal.Sub(before)
	}

	commission, err := mulDecFloor(before, commissionRate)
	if err != nil {
		return types.ReverseQuote{}, fmt.Errorf("commission: %w", err)
	}

	return types.ReverseQuote{
		OfferAmount:      offer,
		SpreadAmount:     spread,
		CommissionAmount: commission,
	}, nil
}
