package keeper

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/confio/tfi/x/pair/types"
)

type queryServer struct {
	Keeper
}

// NewQueryServerImpl returns an implementation of the pair QueryServer interface
func NewQueryServerImpl(keeper Keeper) types.QueryServer {
	return &queryServer{Keeper: keeper}
}

var _ types.QueryServer = queryServer{}

// Pair returns the configuration of a pair
func (qs queryServer) Pair(goCtx context.Context, req *types.QueryPairRequest) (*types.PairInfo, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	contract, err := parseContract(req.Contract)
	if err != nil {
		return nil, fmt.Errorf("Pair: %w", err)
	}
	pair, err := qs.GetPair(goCtx, contract)
	if err != nil {
		return nil, fmt.Errorf("Pair: %w", err)
	}
	return &pair, nil
}

// Pool returns the live reserves and the outstanding liquidity shares
func (qs queryServer) Pool(goCtx context.Context, req *types.QueryPoolRequest) (*types.PoolResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := qs.readyPair(goCtx, req.Contract)
	if err != nil {
		return nil, fmt.Errorf("Pool: %w", err)
	}
	assets, err := qs.QueryPools(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("Pool: %w", err)
	}
	total, err := qs.totalShare(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("Pool: total share: %w", err)
	}
	return &types.PoolResponse{Assets: assets, TotalShare: total}, nil
}

// Simulation quotes selling the offer asset against the current reserves
func (qs queryServer) Simulation(goCtx context.Context, req *types.QuerySimulationRequest) (*types.SwapQuote, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := qs.readyPair(goCtx, req.Contract)
	if err != nil {
		return nil, fmt.Errorf("Simulation: %w", err)
	}
	offerIdx, ok := pair.AssetIndex(req.OfferAsset.Info)
	if !ok {
		return nil, fmt.Errorf("Simulation: %w", sdkerrors.Wrapf(types.ErrAssetMismatch, "%s is not an asset of pair %s", req.OfferAsset.Info, pair.ContractAddr))
	}
	pools, err := qs.poolsExcluding(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("Simulation: %w", err)
	}
	quote, err := ComputeSwap(pools[offerIdx], pools[1-offerIdx], req.OfferAsset.Amount, pair.Commission)
	if err != nil {
		return nil, fmt.Errorf("Simulation: %w", err)
	}
	return &quote, nil
}

// ReverseSimulation quotes the offer needed to receive the ask asset
func (qs queryServer) ReverseSimulation(goCtx context.Context, req *types.QueryReverseSimulationRequest) (*types.ReverseQuote, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "invalid request")
	}
	pair, err := qs.readyPair(goCtx, req.Contract)
	if err != nil {
		return nil, fmt.Errorf("ReverseSimulation: %w", err)
	}
	askIdx, ok := pair.AssetIndex(req.AskAsset.Info)
	if !ok {
		return nil, fmt.Errorf("ReverseSimulation: %w", sdkerrors.Wrapf(types.ErrAssetMismatch, "%s is not an asset of pair %s", req.AskAsset.Info, pair.ContractAddr))
	}
	pools, err := qs.poolsExcluding(goCtx, pair)
	if err != nil {
		return nil, fmt.Errorf("ReverseSimulation: %w", err)
	}
	quote, err := ComputeOfferAmount(pools[1-askIdx], pools[askIdx], req.AskAsset.Amount, pair.Commission)
	if err != nil {
		return nil, fmt.Errorf("ReverseSimulation: %w", err)
	}
	return &quote, nil
}

func (qs queryServer) readyPair(ctx context.Context, contractAddr string) (types.PairInfo, error) {
	contract, err := parseContract(contractAddr)
	if err != nil {
		return types.PairInfo{}, err
	}
	return qs.GetReadyPair(ctx, contract)
}

func parseContract(addr string) (sdk.AccAddress, error) {
	contract, err := sdk.AccAddressFromBech32(addr)
	if err != nil {
		return nil, sdkerrors.Wrapf(types.ErrInvalidAddress, "contract: %s", err)
	}
	return contract, nil
}
