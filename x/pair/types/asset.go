package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxAmount is the largest amount a pair accepts for any single asset (2^128 - 1).
var MaxAmount = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1)))

// AssetKind discriminates the two ledgers a pair can hold reserves on.
type AssetKind int

const (
	AssetKindUnknown AssetKind = iota
	AssetKindNative
	AssetKindToken
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindNative:
		return "native"
	case AssetKindToken:
		return "token"
	default:
		return "unknown"
	}
}

// AssetInfo identifies an asset: either a native denom or the address of a
// token ledger. Exactly one of the fields is set.
type AssetInfo struct {
	Native string `json:"native,omitempty"`
	Token  string `json:"token,omitempty"`
}

// NewNativeAssetInfo returns the info of a native ledger asset.
func NewNativeAssetInfo(denom string) AssetInfo {
	return AssetInfo{Native: denom}
}

// NewTokenAssetInfo returns the info of a token ledger asset.
func NewTokenAssetInfo(ledger sdk.AccAddress) AssetInfo {
	return AssetInfo{Token: ledger.String()}
}

// Kind reports which ledger holds the asset.
func (a AssetInfo) Kind() AssetKind {
	switch {
	case a.Native != "" && a.Token == "":
		return AssetKindNative
	case a.Token != "" && a.Native == "":
		return AssetKindToken
	default:
		return AssetKindUnknown
	}
}

// IsNative returns true for native ledger assets.
func (a AssetInfo) IsNative() bool {
	return a.Kind() == AssetKindNative
}

// Equal compares asset identity, never amounts.
func (a AssetInfo) Equal(other AssetInfo) bool {
	return a.Kind() == other.Kind() && a.Native == other.Native && a.Token == other.Token
}

func (a AssetInfo) String() string {
	if a.Kind() == AssetKindToken {
		return a.Token
	}
	return a.Native
}

// LedgerAddress returns the token ledger address of a token asset.
func (a AssetInfo) LedgerAddress() (sdk.AccAddress, error) {
	if a.Kind() != AssetKindToken {
		return nil, ErrInvalidAsset.Wrapf("%s is not a token asset", a)
	}
	addr, err := sdk.AccAddressFromBech32(a.Token)
	if err != nil {
		return nil, ErrInvalidAddress.Wrapf("token ledger %s: %s", a.Token, err)
	}
	return addr, nil
}

// Validate checks that exactly one variant is set and well formed.
func (a AssetInfo) Validate() error {
	switch a.Kind() {
	case AssetKindNative:
		if err := sdk.ValidateDenom(a.Native); err != nil {
			return ErrInvalidAsset.Wrapf("invalid denom %q: %s", a.Native, err)
		}
		return nil
	case AssetKindToken:
		_, err := a.LedgerAddress()
		return err
	default:
		return ErrInvalidAsset.Wrap("asset info must set exactly one of native or token")
	}
}

// Asset is an amount of a given asset.
type Asset struct {
	Info   AssetInfo `json:"info"`
	Amount math.Int  `json:"amount"`
}

// NewAsset creates an asset of the given info and amount.
func NewAsset(info AssetInfo, amount math.Int) Asset {
	return Asset{Info: info, Amount: amount}
}

func (a Asset) String() string {
	return fmt.Sprintf("%s%s", a.Amount, a.Info)
}

// Validate checks the info and that the amount fits an unsigned 128-bit value.
func (a Asset) Validate() error {
	if err := a.Info.Validate(); err != nil {
		return err
	}
	return ValidateAmount(a.Amount)
}

// ValidateAmount rejects nil, negative and out of range amounts. Zero is valid here.
func ValidateAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return ErrInvalidAsset.Wrap("amount must be a non-negative integer")
	}
	if amount.GT(MaxAmount) {
		return ErrOverflow.Wrapf("amount %s exceeds %s", amount, MaxAmount)
	}
	return nil
}

// FormatAssets renders assets the way response attributes list them.
func FormatAssets(assets ...Asset) string {
	out := ""
	for i, a := range assets {
		if i > 0 {
			out += ", "
		}
		out += a.String()
	}
	return out
}
