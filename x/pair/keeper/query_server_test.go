package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	keepertest "github.com/confio/tfi/testutil/keeper"
	"github.com/confio/tfi/x/pair/types"
)

func TestQueries(t *testing.T) {
	e := newPairEnv(t)
	_, err := e.provide(t, keepertest.TestAddr("provider"), 2000, 6000, nil)
	require.NoError(t, err)
	qs := e.f.QueryServer

	pair, err := qs.Pair(e.f.Ctx, &types.QueryPairRequest{Contract: e.contract.String()})
	require.NoError(t, err)
	require.Equal(t, e.pair.LiquidityToken, pair.LiquidityToken)
	require.True(t, pair.AssetInfos[1].Equal(types.NewTokenAssetInfo(e.token)))

	pool, err := qs.Pool(e.f.Ctx, &types.QueryPoolRequest{Contract: e.contract.String()})
	require.NoError(t, err)
	requireInt(t, 2000, pool.AmountOf(e.infos[0]))
	requireInt(t, 6000, pool.AmountOf(e.infos[1]))
	requireInt(t, 3464, pool.TotalShare)

	sim, err := qs.Simulation(e.f.Ctx, &types.QuerySimulationRequest{
		Contract:   e.contract.String(),
		OfferAsset: types.NewAsset(e.infos[0], math.NewInt(1000)),
	})
	require.NoError(t, err)
	requireInt(t, 1994, sim.ReturnAmount)
	requireInt(t, 1000, sim.SpreadAmount)
	requireInt(t, 6, sim.CommissionAmount)

	rev, err := qs.ReverseSimulation(e.f.Ctx, &types.QueryReverseSimulationRequest{
		Contract: e.contract.String(),
		AskAsset: types.NewAsset(e.infos[1], math.NewInt(1994)),
	})
	require.NoError(t, err)
	requireInt(t, 999, rev.OfferAmount)

	_, err = qs.Simulation(e.f.Ctx, &types.QuerySimulationRequest{
		Contract:   e.contract.String(),
		OfferAsset: types.NewAsset(types.NewNativeAssetInfo("uusd"), math.NewInt(1000)),
	})
	require.ErrorIs(t, err, types.ErrAssetMismatch)

	_, err = qs.ReverseSimulation(e.f.Ctx, &types.QueryReverseSimulationRequest{
		Contract: e.contract.String(),
		AskAsset: types.NewAsset(types.NewNativeAssetInfo("uusd"), math.NewInt(1000)),
	})
	require.ErrorIs(t, err, types.ErrAssetMismatch)

	_, err = qs.Pool(e.f.Ctx, &types.QueryPoolRequest{Contract: keepertest.TestAddr("nowhere").String()})
	require.ErrorIs(t, err, types.ErrPairNotFound)

	_, err = qs.Pair(e.f.Ctx, nil)
	require.Equal(t, codes.InvalidArgument, status.Code(err))
}
