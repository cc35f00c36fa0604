package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

var (
	// PairKeyPrefix is the prefix for pair info store keys
	PairKeyPrefix = []byte{0x01}

	// PairSequenceKey is the key for the next pair sequence
	PairSequenceKey = []byte{0x02}
)

// PairKey returns the store key for the pair living at contract
func PairKey(contract sdk.AccAddress) []byte {
	return append(append([]byte{}, PairKeyPrefix...), address.MustLengthPrefix(contract)...)
}
