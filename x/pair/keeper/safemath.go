package keeper

import (
	"math/big"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/confio/tfi/x/pair/types"
)

// Checked arithmetic for the pair engines. Amounts are bounded to 128 bits;
// intermediate products (k = x*y) may use up to 256 bits.

var (
	maxIntermediate = new(big.Int).Lsh(big.NewInt(1), 256)
	decimalOne      = new(big.Int).Exp(big.NewInt(10), big.NewInt(math.LegacyPrecision), nil)
)

func checkIntermediate(v *big.Int) (math.Int, error) {
	if v.Sign() < 0 {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnderflow, "result %s is negative", v)
	}
	if v.Cmp(maxIntermediate) >= 0 {
		return math.Int{}, sdkerrors.Wrap(types.ErrOverflow, "result exceeds 256 bits")
	}
	return math.NewIntFromBigInt(v), nil
}

// CheckAmount rejects values that do not fit an unsigned 128-bit amount.
func CheckAmount(a math.Int) (math.Int, error) {
	if a.IsNegative() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnderflow, "amount %s is negative", a)
	}
	if a.GT(types.MaxAmount) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrOverflow, "amount %s exceeds 128 bits", a)
	}
	return a, nil
}

// SafeAdd adds two amounts with overflow checking
func SafeAdd(a, b math.Int) (math.Int, error) {
	sum, err := checkIntermediate(new(big.Int).Add(a.BigInt(), b.BigInt()))
	if err != nil {
		return math.Int{}, err
	}
	return CheckAmount(sum)
}

// SafeSub subtracts b from a with underflow checking
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnderflow, "cannot subtract %s from %s", b, a)
	}
	return a.Sub(b), nil
}

// SafeMul multiplies two values; the product may use the full 256 bits
func SafeMul(a, b math.Int) (math.Int, error) {
	if a.IsZero() || b.IsZero() {
		return math.ZeroInt(), nil
	}
	return checkIntermediate(new(big.Int).Mul(a.BigInt(), b.BigInt()))
}

// SafeQuo divides with division by zero checking (floor for non-negative operands)
func SafeQuo(a, b math.Int) (math.Int, error) {
	if b.IsZero() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrDivideByZero, "%s / 0", a)
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(a.BigInt(), b.BigInt())), nil
}

// SafeMulDiv performs floor(a * b / c) without rounding the intermediate product
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrDivideByZero, "%s * %s / 0", a, b)
	}
	product, err := SafeMul(a, b)
	if err != nil {
		return math.Int{}, err
	}
	return math.NewIntFromBigInt(new(big.Int).Quo(product.BigInt(), c.BigInt())), nil
}

// SafeAddUint64 adds two uint64 values with overflow checking
func SafeAddUint64(a, b uint64) (uint64, error) {
	if a > (1<<64 - 1 - b) {
		return 0, sdkerrors.Wrap(types.ErrOverflow, "uint64 addition overflow")
	}
	return a + b, nil
}

// IntSqrt returns floor(sqrt(a)).
func IntSqrt(a math.Int) (math.Int, error) {
	if a.IsNegative() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnderflow, "sqrt of negative %s", a)
	}
	return math.NewIntFromBigInt(new(big.Int).Sqrt(a.BigInt())), nil
}

// decRatio returns num/den truncated to 18 decimals.
func decRatio(num, den math.Int) (math.LegacyDec, error) {
	if den.IsZero() {
		return math.LegacyDec{}, sdkerrors.Wrapf(types.ErrDivideByZero, "ratio %s / 0", num)
	}
	atomics := new(big.Int).Mul(num.BigInt(), decimalOne)
	atomics.Quo(atomics, den.BigInt())
	if atomics.BitLen() > math.MaxBitLen {
		return math.LegacyDec{}, sdkerrors.Wrapf(types.ErrOverflow, "ratio %s / %s", num, den)
	}
	return math.LegacyNewDecFromBigIntWithPrec(atomics, math.LegacyPrecision), nil
}

// mulDecFloor returns floor(a * d).
func mulDecFloor(a math.Int, d math.LegacyDec) (math.Int, error) {
	if d.IsNegative() {
		return math.Int{}, sdkerrors.Wrapf(types.ErrUnderflow, "negative multiplier %s", d)
	}
	product := new(big.Int).Mul(a.BigInt(), d.BigInt())
	product.Quo(product, decimalOne)
	return checkIntermediate(product)
}

// reciprocal returns 1/d truncated to 18 decimals.
func reciprocal(d math.LegacyDec) (math.LegacyDec, error) {
	if d.IsNil() || d.IsZero() {
		return math.LegacyDec{}, sdkerrors.Wrap(types.ErrDivideByZero, "reciprocal of zero")
	}
	atomics := new(big.Int).Mul(decimalOne, decimalOne)
	atomics.Quo(atomics, d.BigInt())
	if atomics.BitLen() > math.MaxBitLen {
		return math.LegacyDec{}, sdkerrors.Wrapf(types.ErrOverflow, "reciprocal of %s", d)
	}
	return math.LegacyNewDecFromBigIntWithPrec(atomics, math.LegacyPrecision), nil
}
