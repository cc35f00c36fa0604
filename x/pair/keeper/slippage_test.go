package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/confio/tfi/x/pair/keeper"
	"github.com/confio/tfi/x/pair/types"
)

func dec(s string) *math.LegacyDec {
	d := math.LegacyMustNewDecFromStr(s)
	return &d
}

func TestAssertMaxSpread(t *testing.T) {
	tests := []struct {
		name                     string
		beliefPrice, maxSpread   *math.LegacyDec
		offer, returned, spread  int64
		expectErr                bool
	}{
		{"belief price beyond max spread", dec("1200"), dec("0.01"), 1_200_000_000, 989_999, 0, true},
		{"belief price within max spread", dec("1200"), dec("0.01"), 1_200_000_000, 990_000, 0, false},
		{"belief price with better return", dec("1"), dec("0"), 1000, 1100, 0, false},
		{"belief price boundary is inclusive", dec("1"), dec("0.1"), 1000, 900, 0, false},
		{"belief price just past boundary", dec("1"), dec("0.099999999999999999"), 1000, 900, 0, true},
		{"spread beyond max spread", nil, dec("0.01"), 0, 989_999, 10_001, true},
		{"spread equal to max spread", nil, dec("0.01"), 0, 990_000, 10_000, false},
		{"no max spread", dec("1"), nil, 1000, 1, 999, false},
		{"no bounds", nil, nil, 1000, 1, 999, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := keeper.AssertMaxSpread(tc.beliefPrice, tc.maxSpread, math.NewInt(tc.offer), math.NewInt(tc.returned), math.NewInt(tc.spread))
			if tc.expectErr {
				require.ErrorIs(t, err, types.ErrMaxSpreadExceeded)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAssertSlippageTolerance(t *testing.T) {
	pools := ints(1000, 2000)

	require.NoError(t, keeper.AssertSlippageTolerance(nil, ints(100, 1), pools))
	require.NoError(t, keeper.AssertSlippageTolerance(dec("0.05"), ints(100, 190), pools))

	err := keeper.AssertSlippageTolerance(dec("0.04"), ints(100, 190), pools)
	require.ErrorIs(t, err, types.ErrMaxSlippageExceeded)

	// the other direction is checked as well
	err = keeper.AssertSlippageTolerance(dec("0.04"), ints(100, 210), pools)
	require.ErrorIs(t, err, types.ErrMaxSlippageExceeded)

	err = keeper.AssertSlippageTolerance(dec("1.5"), ints(100, 200), pools)
	require.ErrorIs(t, err, types.ErrInvalidSlippageTolerance)

	// full tolerance accepts any ratio
	require.NoError(t, keeper.AssertSlippageTolerance(dec("1"), ints(1, 1_000_000), pools))
}
