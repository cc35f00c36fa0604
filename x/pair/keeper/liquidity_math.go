package keeper

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/confio/tfi/x/pair/types"
)

// ComputeShare returns the liquidity shares minted for deposits into pools
// (pools exclude the deposits). The first deposit mints floor(sqrt(d0*d1));
// later deposits mint the smaller proportional amount and the excess on the
// other side stays in the pool.
func ComputeShare(deposits, pools [2]math.Int, totalShare math.Int) (math.Int, error) {
	if totalShare.IsZero() {
		product, err := SafeMul(deposits[0], deposits[1])
		if err != nil {
			return math.Int{}, fmt.Errorf("initial share: %w", err)
		}
		share, err := IntSqrt(product)
		if err != nil {
			return math.Int{}, err
		}
		return CheckAmount(share)
	}

	var shares [2]math.Int
	for i := range deposits {
		if pools[i].IsZero() {
			return math.Int{}, sdkerrors.Wrapf(types.ErrDivideByZero, "pool %d is empty with %s shares outstanding", i, totalShare)
		}
		s, err := SafeMulDiv(deposits[i], totalShare, pools[i])
		if err != nil {
			return math.Int{}, fmt.Errorf("share of asset %d: %w", i, err)
		}
		shares[i] = s
	}
	return CheckAmount(math.MinInt(shares[0], shares[1]))
}

// ComputeRefund returns floor(pools[i] * burn / totalShare) for each asset.
func ComputeRefund(burn, totalShare math.Int, pools [2]math.Int) ([2]math.Int, error) {
	var refund [2]math.Int
	if totalShare.IsZero() {
		return refund, sdkerrors.Wrap(types.ErrDivideByZero, "no shares outstanding")
	}
	if burn.GT(totalShare) {
		return refund, sdkerrors.Wrapf(types.ErrInvalidShares, "burn %s exceeds total share %s", burn, totalShare)
	}
	for i, pool := range pools {
		r, err := SafeMulDiv(pool, burn, totalShare)
		if err != nil {
			return refund, fmt.Errorf("refund of asset %d: %w", i, err)
		}
		refund[i] = r
	}
	return refund, nil
}
