package keeper_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	keepertest "github.com/confio/tfi/testutil/keeper"
	"github.com/confio/tfi/x/pair/keeper"
	"github.com/confio/tfi/x/pair/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	e := newPairEnv(t)
	second := e.f.CreatePair(t, [2]types.AssetInfo{{Native: "uluna"}, {Native: "uusd"}}, nil, "")

	exported, err := e.f.Keeper.ExportGenesis(e.f.Ctx)
	require.NoError(t, err)
	require.Len(t, exported.Pairs, 2)
	require.Equal(t, uint64(3), exported.NextSequence)
	require.NoError(t, exported.Validate())

	fresh := keepertest.PairKeeper(t)
	require.NoError(t, fresh.Keeper.InitGenesis(fresh.Ctx, *exported))

	got, err := fresh.Keeper.GetReadyPair(fresh.Ctx, keeper.PairAddress(2))
	require.NoError(t, err)
	require.Equal(t, second.ContractAddr, got.ContractAddr)

	reexported, err := fresh.Keeper.ExportGenesis(fresh.Ctx)
	require.NoError(t, err)
	want, err := json.Marshal(exported)
	require.NoError(t, err)
	have, err := json.Marshal(reexported)
	require.NoError(t, err)
	require.JSONEq(t, string(want), string(have))

	// the next created pair continues the imported sequence
	seq, err := fresh.Keeper.GetNextPairSequence(fresh.Ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(3), seq)
}

func TestDefaultGenesis(t *testing.T) {
	f := keepertest.PairKeeper(t)
	require.NoError(t, f.Keeper.InitGenesis(f.Ctx, *types.DefaultGenesis()))

	exported, err := f.Keeper.ExportGenesis(f.Ctx)
	require.NoError(t, err)
	require.Empty(t, exported.Pairs)
	require.Equal(t, uint64(1), exported.NextSequence)
}

func TestGenesisValidate(t *testing.T) {
	e := newPairEnv(t)

	tests := []struct {
		name   string
		mutate func(*types.GenesisState)
	}{
		{"zero sequence", func(gs *types.GenesisState) { gs.NextSequence = 0 }},
		{"duplicate pair", func(gs *types.GenesisState) { gs.Pairs = append(gs.Pairs, gs.Pairs[0]) }},
		{"uninitialized pair", func(gs *types.GenesisState) { gs.Pairs[0].State = types.StateUninitialized }},
		{"ready without token", func(gs *types.GenesisState) { gs.Pairs[0].LiquidityToken = "" }},
		{"same assets", func(gs *types.GenesisState) { gs.Pairs[0].AssetInfos[1] = gs.Pairs[0].AssetInfos[0] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gs, err := e.f.Keeper.ExportGenesis(e.f.Ctx)
			require.NoError(t, err)
			tt.mutate(gs)
			require.Error(t, gs.Validate())

			fresh := keepertest.PairKeeper(t)
			require.Error(t, fresh.Keeper.InitGenesis(fresh.Ctx, *gs))
		})
	}
}
