package types

import (
	"fmt"
)

// GenesisState is the pair registry exported at a height
type GenesisState struct {
	Pairs []PairInfo `json:"pairs"`
	// NextSequence is the sequence the next created pair receives
	NextSequence uint64 `json:"next_sequence"`
}

// DefaultGenesis returns an empty registry
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Pairs:        []PairInfo{},
		NextSequence: 1,
	}
}

// Validate performs basic genesis state validation
func (gs GenesisState) Validate() error {
	if gs.NextSequence == 0 {
		return fmt.Errorf("next sequence must be positive")
	}

	seen := make(map[string]struct{}, len(gs.Pairs))
	for i, pair := range gs.Pairs {
		if err := pair.Validate(); err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
		if pair.State != StateAwaitingLedgerCreation && pair.State != StateReady {
			return fmt.Errorf("pair %s: cannot import state %s", pair.ContractAddr, pair.State)
		}
		if pair.IsReady() {
			if _, err := pair.LiquidityTokenAddress(); err != nil {
				return fmt.Errorf("pair %s: %w", pair.ContractAddr, err)
			}
		}
		if _, ok := seen[pair.ContractAddr]; ok {
			return fmt.Errorf("duplicate pair %s", pair.ContractAddr)
		}
		seen[pair.ContractAddr] = struct{}{}
	}
	return nil
}
