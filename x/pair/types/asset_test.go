package types_test

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/stretchr/testify/require"

	"github.com/confio/tfi/x/pair/types"
)

func ledgerAddr(name string) sdk.AccAddress {
	return address.Module("ledger", []byte(name))
}

func TestAssetInfoKinds(t *testing.T) {
	native := types.NewNativeAssetInfo("uluna")
	token := types.NewTokenAssetInfo(ledgerAddr("a"))

	require.Equal(t, types.AssetKindNative, native.Kind())
	require.Equal(t, types.AssetKindToken, token.Kind())
	require.Equal(t, types.AssetKindUnknown, types.AssetInfo{}.Kind())
	require.Equal(t, types.AssetKindUnknown, types.AssetInfo{Native: "uluna", Token: token.Token}.Kind())

	require.True(t, native.Equal(types.NewNativeAssetInfo("uluna")))
	require.False(t, native.Equal(types.NewNativeAssetInfo("uusd")))
	require.False(t, native.Equal(token))
	require.True(t, token.Equal(types.NewTokenAssetInfo(ledgerAddr("a"))))

	require.NoError(t, native.Validate())
	require.NoError(t, token.Validate())
	require.ErrorIs(t, types.AssetInfo{}.Validate(), types.ErrInvalidAsset)
	require.ErrorIs(t, types.NewNativeAssetInfo("1").Validate(), types.ErrInvalidAsset)
	require.ErrorIs(t, types.AssetInfo{Token: "nope"}.Validate(), types.ErrInvalidAddress)

	_, err := native.LedgerAddress()
	require.ErrorIs(t, err, types.ErrInvalidAsset)
	addr, err := token.LedgerAddress()
	require.NoError(t, err)
	require.True(t, addr.Equals(ledgerAddr("a")))
}

func TestAssetInfoJSON(t *testing.T) {
	bz, err := json.Marshal(types.NewNativeAssetInfo("uluna"))
	require.NoError(t, err)
	require.JSONEq(t, `{"native":"uluna"}`, string(bz))

	var info types.AssetInfo
	require.NoError(t, json.Unmarshal([]byte(`{"token":"`+ledgerAddr("a").String()+`"}`), &info))
	require.Equal(t, types.AssetKindToken, info.Kind())
}

func TestAssetAmounts(t *testing.T) {
	info := types.NewNativeAssetInfo("uluna")

	require.NoError(t, types.NewAsset(info, math.ZeroInt()).Validate())
	require.NoError(t, types.NewAsset(info, types.MaxAmount).Validate())
	require.ErrorIs(t, types.NewAsset(info, types.MaxAmount.AddRaw(1)).Validate(), types.ErrOverflow)
	require.ErrorIs(t, types.NewAsset(info, math.NewInt(-1)).Validate(), types.ErrInvalidAsset)

	require.Equal(t, "100uluna", types.NewAsset(info, math.NewInt(100)).String())
	require.Equal(t, "1uluna, 2uusd", types.FormatAssets(
		types.NewAsset(info, math.NewInt(1)),
		types.NewAsset(types.NewNativeAssetInfo("uusd"), math.NewInt(2)),
	))
}

func TestPairInfo(t *testing.T) {
	pair := types.PairInfo{
		AssetInfos:   [2]types.AssetInfo{types.NewNativeAssetInfo("uluna"), types.NewTokenAssetInfo(ledgerAddr("a"))},
		ContractAddr: ledgerAddr("pair").String(),
		Commission:   types.DefaultCommissionRate(),
		State:        types.StateAwaitingLedgerCreation,
	}
	require.NoError(t, pair.Validate())
	require.False(t, pair.IsReady())
	_, err := pair.LiquidityTokenAddress()
	require.ErrorIs(t, err, types.ErrPairNotReady)

	idx, ok := pair.AssetIndex(types.NewTokenAssetInfo(ledgerAddr("a")))
	require.True(t, ok)
	require.Equal(t, 1, idx)
	_, ok = pair.AssetIndex(types.NewNativeAssetInfo("uusd"))
	require.False(t, ok)

	pair.Commission = math.LegacyOneDec()
	require.ErrorIs(t, pair.Validate(), types.ErrInvalidCommission)

	pair.Commission = types.DefaultCommissionRate()
	pair.AssetInfos[1] = pair.AssetInfos[0]
	require.ErrorIs(t, pair.Validate(), types.ErrInvalidAsset)
}
