package keeper

import (
	"context"
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/confio/tfi/x/pair/types"
)

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the pair MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

var _ types.MsgServer = msgServer{}

// CreatePair instantiates a pair at the next sequential address and creates
// its liquidity token. Instantiation is committed on its own: when the token
// creation fails the pair stays awaiting its ledger.
func (ms msgServer) CreatePair(goCtx context.Context, msg *types.MsgCreatePair) (*types.MsgCreatePairResponse, error) {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return nil, fmt.Errorf("CreatePair: invalid creator address: %w", sdkerrors.Wrap(types.ErrInvalidAddress, err.Error()))
	}
	if err := msg.Pair.ValidateBasic(); err != nil {
		return nil, fmt.Errorf("CreatePair: validate: %w", err)
	}

	sdkCtx := sdk.UnwrapSDKContext(goCtx)
	instCtx, writeInst := sdkCtx.CacheContext()
	seq, err := ms.GetNextPairSequence(instCtx)
	if err != nil {
		return nil, fmt.Errorf("CreatePair: %w", err)
	}
	contract := PairAddress(seq)
	resp, err := ms.Keeper.Instantiate(instCtx, contract, msg.Pair)
	if err != nil {
		return nil, fmt.Errorf("CreatePair: instantiate: %w", err)
	}
	instCtx.EventManager().EmitEvent(resp.Event(contract))
	writeInst()
	resp.Committed()

	if err := ms.dispatch(sdkCtx, contract, resp.Instructions); err != nil {
		return &types.MsgCreatePairResponse{ContractAddr: contract.String()}, fmt.Errorf("CreatePair: create liquidity token: %w", err)
	}

	pair, err := ms.GetPair(sdkCtx, contract)
	if err != nil {
		return nil, fmt.Errorf("CreatePair: %w", err)
	}
	return &types.MsgCreatePairResponse{
		ContractAddr:   pair.ContractAddr,
		LiquidityToken: pair.LiquidityToken,
	}, nil
}

// ProvideLiquidity handles a liquidity deposit
func (ms msgServer) ProvideLiquidity(goCtx context.Context, msg *types.MsgExecuteProvideLiquidity) (*types.MsgExecuteResponse, error) {
	contract, sender, err := parseExecute(msg.Contract, msg.Sender, msg.Funds)
	if err != nil {
		return nil, fmt.Errorf("ProvideLiquidity: %w", err)
	}
	resp, err := ms.execute(goCtx, contract, sender, msg.Funds, func(ctx sdk.Context) (*types.Response, error) {
		return ms.Keeper.ProvideLiquidity(ctx, contract, sender, msg.Funds, msg.Msg)
	})
	if err != nil {
		return nil, fmt.Errorf("ProvideLiquidity: %w", err)
	}
	return resp, nil
}

// Swap handles a native offer swap
func (ms msgServer) Swap(goCtx context.Context, msg *types.MsgExecuteSwap) (*types.MsgExecuteResponse, error) {
	contract, sender, err := parseExecute(msg.Contract, msg.Sender, msg.Funds)
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}
	resp, err := ms.execute(goCtx, contract, sender, msg.Funds, func(ctx sdk.Context) (*types.Response, error) {
		return ms.Keeper.Swap(ctx, contract, sender, msg.Funds, msg.Msg)
	})
	if err != nil {
		return nil, fmt.Errorf("Swap: %w", err)
	}
	return resp, nil
}

// Receive handles a token ledger hook
func (ms msgServer) Receive(goCtx context.Context, msg *types.MsgExecuteReceive) (*types.MsgExecuteResponse, error) {
	contract, ledger, err := parseExecute(msg.Contract, msg.Ledger, nil)
	if err != nil {
		return nil, fmt.Errorf("Receive: %w", err)
	}
	resp, err := ms.execute(goCtx, contract, ledger, nil, func(ctx sdk.Context) (*types.Response, error) {
		return ms.Keeper.Receive(ctx, contract, ledger, msg.Msg)
	})
	if err != nil {
		return nil, fmt.Errorf("Receive: %w", err)
	}
	return resp, nil
}

// UpdateConfig handles an owner configuration change
func (ms msgServer) UpdateConfig(goCtx context.Context, msg *types.MsgExecuteUpdateConfig) (*types.MsgExecuteResponse, error) {
	contract, sender, err := parseExecute(msg.Contract, msg.Sender, nil)
	if err != nil {
		return nil, fmt.Errorf("UpdateConfig: %w", err)
	}
	resp, err := ms.execute(goCtx, contract, sender, nil, func(ctx sdk.Context) (*types.Response, error) {
		return ms.Keeper.UpdateConfig(ctx, contract, sender, msg.Msg)
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateConfig: %w", err)
	}
	return resp, nil
}

// execute runs op atomically: funds are credited to the pair, the operation
// runs, its instructions are dispatched and its event emitted. Nothing is
// committed, and no metric recorded, unless every step succeeds.
func (ms msgServer) execute(
	goCtx context.Context,
	contract, sender sdk.AccAddress,
	funds sdk.Coins,
	op func(ctx sdk.Context) (*types.Response, error),
) (*types.MsgExecuteResponse, error) {
	sdkCtx := sdk.UnwrapSDKContext(goCtx)
	cacheCtx, write := sdkCtx.CacheContext()

	if !funds.IsZero() {
		if err := ms.bankKeeper.SendCoins(cacheCtx, sender, contract, funds); err != nil {
			return nil, fmt.Errorf("transfer funds: %w", err)
		}
	}

	resp, err := op(cacheCtx)
	if err != nil {
		return nil, err
	}
	if err := ms.dispatch(cacheCtx, contract, resp.Instructions); err != nil {
		return nil, err
	}
	cacheCtx.EventManager().EmitEvent(resp.Event(contract))

	write()
	resp.Committed()
	return &types.MsgExecuteResponse{Attributes: resp.Attributes}, nil
}

// dispatch executes instructions and emits the events of any replies. Writes
// land in ctx only when the whole dispatch succeeds.
func (ms msgServer) dispatch(ctx sdk.Context, contract sdk.AccAddress, instructions []types.Instruction) error {
	cacheCtx, write := ctx.CacheContext()
	replies, err := ms.Dispatch(cacheCtx, contract, instructions)
	if err != nil {
		return err
	}
	for _, reply := range replies {
		cacheCtx.EventManager().EmitEvent(reply.Event(contract))
	}
	write()
	for _, reply := range replies {
		reply.Committed()
	}
	return nil
}

func parseExecute(contractAddr, senderAddr string, funds sdk.Coins) (sdk.AccAddress, sdk.AccAddress, error) {
	contract, err := sdk.AccAddressFromBech32(contractAddr)
	if err != nil {
		return nil, nil, sdkerrors.Wrapf(types.ErrInvalidAddress, "contract: %s", err)
	}
	sender, err := sdk.AccAddressFromBech32(senderAddr)
	if err != nil {
		return nil, nil, sdkerrors.Wrapf(types.ErrInvalidAddress, "sender: %s", err)
	}
	if err := funds.Validate(); err != nil {
		return nil, nil, sdkerrors.Wrapf(types.ErrNativeFundsMismatch, "invalid funds: %s", err)
	}
	return contract, sender, nil
}
