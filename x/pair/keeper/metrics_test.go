package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/require"

	keepertest "github.com/confio/tfi/testutil/keeper"
	"github.com/confio/tfi/x/pair/keeper"
	"github.com/confio/tfi/x/pair/types"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestMetricsRecordedOnlyOnCommit(t *testing.T) {
	e := newPairEnv(t)
	m := keeper.NewPairMetrics()
	addr := e.pair.ContractAddr
	provided := m.LiquidityProvided.WithLabelValues(addr, "uluna")
	minted := m.SharesMinted.WithLabelValues(addr)
	succeeded := m.SwapsTotal.WithLabelValues(addr, e.token.String(), "success")
	failed := m.SwapsTotal.WithLabelValues(addr, e.token.String(), "error")

	providedBefore := counterValue(t, provided)
	mintedBefore := counterValue(t, minted)

	// no allowance: the token leg fails at dispatch and nothing is committed
	provider := keepertest.TestAddr("provider")
	e.f.Bank.FundAccount(e.f.Ctx, provider, sdk.NewCoins(sdk.NewInt64Coin("uluna", 2000)))
	e.f.MintToken(t, e.token, provider, math.NewInt(6000))
	_, err := e.f.MsgServer.ProvideLiquidity(e.f.Ctx, &types.MsgExecuteProvideLiquidity{
		Contract: e.contract.String(),
		Sender:   provider.String(),
		Funds:    sdk.NewCoins(sdk.NewInt64Coin("uluna", 2000)),
		Msg: types.MsgProvideLiquidity{
			Assets: [2]types.Asset{
				types.NewAsset(e.infos[0], math.NewInt(2000)),
				types.NewAsset(e.infos[1], math.NewInt(6000)),
			},
		},
	})
	require.Error(t, err)
	require.Equal(t, providedBefore, counterValue(t, provided))
	require.Equal(t, mintedBefore, counterValue(t, minted))

	_, err = e.provide(t, provider, 2000, 6000, nil)
	require.NoError(t, err)
	require.Equal(t, providedBefore+2000, counterValue(t, provided))
	require.Equal(t, mintedBefore+3464, counterValue(t, minted))

	succeededBefore := counterValue(t, succeeded)
	failedBefore := counterValue(t, failed)
	trader := keepertest.TestAddr("trader")
	e.f.MintToken(t, e.token, trader, math.NewInt(1001))

	_, err = e.f.SendWithHook(e.token, trader, e.contract, math.NewInt(1000), types.HookMsg{Swap: &types.HookSwap{}})
	require.NoError(t, err)
	require.Equal(t, succeededBefore+1, counterValue(t, succeeded))

	e.f.Tax.Rate = math.LegacyNewDecWithPrec(1, 2)
	_, err = e.f.SendWithHook(e.token, trader, e.contract, math.NewInt(1), types.HookMsg{Swap: &types.HookSwap{}})
	require.ErrorIs(t, err, types.ErrInvalidZeroAmount)
	require.Equal(t, succeededBefore+1, counterValue(t, succeeded))
	require.Equal(t, failedBefore+1, counterValue(t, failed))
}
