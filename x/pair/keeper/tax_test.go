package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	keepertest "github.com/confio/tfi/testutil/keeper"
	"github.com/confio/tfi/x/pair/types"
)

func TestComputeTax(t *testing.T) {
	f := keepertest.PairKeeper(t)
	f.Tax.Rate = math.LegacyNewDecWithPrec(5, 2)
	f.Tax.Caps = map[string]math.Int{"uluna": math.NewInt(1_000_000), "uusd": math.NewInt(10)}

	luna := types.NewNativeAssetInfo("uluna")

	// 1000 - floor(1000 / 1.05)
	tax, err := f.Keeper.ComputeTax(f.Ctx, types.NewAsset(luna, math.NewInt(1000)))
	require.NoError(t, err)
	requireInt(t, 48, tax)

	tax, err = f.Keeper.ComputeTax(f.Ctx, types.NewAsset(types.NewNativeAssetInfo("uusd"), math.NewInt(1000)))
	require.NoError(t, err)
	requireInt(t, 10, tax)

	tax, err = f.Keeper.ComputeTax(f.Ctx, types.NewAsset(types.NewTokenAssetInfo(f.NewToken(t)), math.NewInt(1000)))
	require.NoError(t, err)
	require.True(t, tax.IsZero())

	net, tax, err := f.Keeper.DeductTax(f.Ctx, types.NewAsset(luna, math.NewInt(1000)))
	require.NoError(t, err)
	requireInt(t, 952, net.Amount)
	requireInt(t, 48, tax)

	f.Tax.Err = keepertest.ErrLedgerDown
	_, err = f.Keeper.ComputeTax(f.Ctx, types.NewAsset(luna, math.NewInt(1000)))
	require.ErrorIs(t, err, keepertest.ErrLedgerDown)
}

func TestSwapPayoutIsTaxed(t *testing.T) {
	e := newPairEnv(t)
	provider := keepertest.TestAddr("provider")
	_, err := e.provide(t, provider, 6000, 2000, nil)
	require.NoError(t, err)

	e.f.Tax.Rate = math.LegacyNewDecWithPrec(1, 2)
	trader := keepertest.TestAddr("trader")
	e.f.MintToken(t, e.token, trader, math.NewInt(1000))

	// tight bounds are checked against the untaxed return
	resp, err := e.f.SendWithHook(e.token, trader, e.contract, math.NewInt(1000), types.HookMsg{
		Swap: &types.HookSwap{BeliefPrice: dec("0.5"), MaxSpread: dec("0.004")},
	})
	require.NoError(t, err)
	require.Equal(t, "1994", resp.Attribute(types.AttributeKeyReturnAmount))
	require.Equal(t, "20", resp.Attribute(types.AttributeKeyTaxAmount))
	requireInt(t, 1974, e.f.Bank.GetBalance(e.f.Ctx, trader, "uluna").Amount)

	// the mock bank does not levy the tax, so the pair still holds it
	e.requirePool(t, 4026, 3000)

	// refunds of native reserves are taxed as well
	_, err = e.f.SendWithHook(e.lp, provider, e.contract, math.NewInt(3464), types.HookMsg{WithdrawLiquidity: &types.HookWithdrawLiquidity{}})
	require.NoError(t, err)
	requireInt(t, 3986, e.f.Bank.GetBalance(e.f.Ctx, provider, "uluna").Amount)
	requireInt(t, 3000, e.tokenBalance(t, e.token, provider))
	requireInt(t, 40, e.f.Bank.GetBalance(e.f.Ctx, e.contract, "uluna").Amount)
}
