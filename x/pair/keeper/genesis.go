package keeper

import (
	"context"
	"fmt"

	"github.com/confio/tfi/x/pair/types"
)

// InitGenesis initializes the pair registry from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	k.SetPairSequence(ctx, genState.NextSequence)
	for _, pair := range genState.Pairs {
		if err := k.SetPair(ctx, pair); err != nil {
			return fmt.Errorf("failed to set pair %s: %w", pair.ContractAddr, err)
		}
	}

	k.Logger(ctx).Info("pair genesis initialized", "pairs", len(genState.Pairs), "next_sequence", genState.NextSequence)
	return nil
}

// ExportGenesis returns the pair registry
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	genesis.NextSequence = k.PeekPairSequence(ctx)

	if err := k.IteratePairs(ctx, func(pair types.PairInfo) bool {
		genesis.Pairs = append(genesis.Pairs, pair)
		return false
	}); err != nil {
		return nil, fmt.Errorf("failed to export pairs: %w", err)
	}
	return genesis, nil
}
