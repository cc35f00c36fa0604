package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/confio/tfi/x/pair/types"
)

func decPtr(s string) *math.LegacyDec {
	d := math.LegacyMustNewDecFromStr(s)
	return &d
}

func TestMsgValidateBasic(t *testing.T) {
	luna := types.NewNativeAssetInfo("uluna")
	token := types.NewTokenAssetInfo(ledgerAddr("a"))

	provide := types.MsgProvideLiquidity{Assets: [2]types.Asset{
		types.NewAsset(luna, math.NewInt(1)),
		types.NewAsset(token, math.NewInt(1)),
	}}
	require.NoError(t, provide.ValidateBasic())

	provide.SlippageTolerance = decPtr("1.01")
	require.ErrorIs(t, provide.ValidateBasic(), types.ErrInvalidSlippageTolerance)

	provide.SlippageTolerance = nil
	provide.Assets[1] = types.NewAsset(luna, math.NewInt(1))
	require.ErrorIs(t, provide.ValidateBasic(), types.ErrAssetMismatch)

	provide.Assets[1] = types.NewAsset(token, math.ZeroInt())
	require.ErrorIs(t, provide.ValidateBasic(), types.ErrInvalidZeroAmount)

	swap := types.MsgSwap{OfferAsset: types.NewAsset(luna, math.NewInt(10))}
	require.NoError(t, swap.ValidateBasic())

	swap.BeliefPrice = decPtr("0")
	require.ErrorIs(t, swap.ValidateBasic(), types.ErrInvalidAsset)

	swap.BeliefPrice = nil
	swap.To = "nobody"
	require.ErrorIs(t, swap.ValidateBasic(), types.ErrInvalidAddress)

	inst := types.InstantiateMsg{AssetInfos: [2]types.AssetInfo{luna, token}}
	require.NoError(t, inst.ValidateBasic())
	require.True(t, inst.CommissionOrDefault().Equal(math.LegacyNewDecWithPrec(3, 3)))

	inst.Commission = decPtr("0.999999999999999999")
	require.NoError(t, inst.ValidateBasic())

	update := types.MsgUpdateConfig{Commission: decPtr("1")}
	require.ErrorIs(t, update.ValidateBasic(), types.ErrInvalidCommission)
}

func TestParseHookMsg(t *testing.T) {
	hook, err := types.ParseHookMsg([]byte(`{"swap":{"max_spread":"0.01"}}`))
	require.NoError(t, err)
	require.NotNil(t, hook.Swap)
	require.Nil(t, hook.Swap.BeliefPrice)
	require.True(t, hook.Swap.MaxSpread.Equal(math.LegacyNewDecWithPrec(1, 2)))

	hook, err = types.ParseHookMsg([]byte(`{"withdraw_liquidity":{}}`))
	require.NoError(t, err)
	require.NotNil(t, hook.WithdrawLiquidity)

	roundTrip, err := types.ParseHookMsg(types.MustMarshalHook(types.HookMsg{Swap: &types.HookSwap{To: ledgerAddr("b").String()}}))
	require.NoError(t, err)
	require.Equal(t, ledgerAddr("b").String(), roundTrip.Swap.To)

	for _, payload := range []string{``, `{}`, `{"mint":{}}`, `{"swap":{},"withdraw_liquidity":{}}`, `not json`} {
		_, err := types.ParseHookMsg([]byte(payload))
		require.ErrorIs(t, err, types.ErrInvalidHookMsg, payload)
	}
}

func TestResponseEvent(t *testing.T) {
	resp := types.NewResponse(types.ActionSwap).AddAttribute(types.AttributeKeyOfferAmount, "10")
	contract := ledgerAddr("pair")

	ev := resp.Event(contract)
	require.Equal(t, types.EventTypePairExecute, ev.Type)
	require.Len(t, ev.Attributes, 3)
	require.Equal(t, types.AttributeKeyContractAddr, ev.Attributes[0].Key)
	require.Equal(t, contract.String(), ev.Attributes[0].Value)

	v, ok := resp.Attribute(types.AttributeKeyAction)
	require.True(t, ok)
	require.Equal(t, types.ActionSwap, v)
}

func TestResponseCommitted(t *testing.T) {
	var calls []string
	resp := types.NewResponse(types.ActionSwap).
		OnCommit(func() { calls = append(calls, "first") }).
		OnCommit(func() { calls = append(calls, "second") })
	require.Empty(t, calls)

	resp.Committed()
	require.Equal(t, []string{"first", "second"}, calls)

	// callbacks run once
	resp.Committed()
	require.Len(t, calls, 2)
}
