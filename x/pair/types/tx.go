package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgCreatePair instantiates a pair at the next sequential address
type MsgCreatePair struct {
	Creator string         `json:"creator"`
	Pair    InstantiateMsg `json:"pair"`
}

// MsgCreatePairResponse returns the address of the new pair
type MsgCreatePairResponse struct {
	ContractAddr   string `json:"contract_addr"`
	LiquidityToken string `json:"liquidity_token"`
}

// MsgExecuteProvideLiquidity calls ProvideLiquidity on a pair
type MsgExecuteProvideLiquidity struct {
	Contract string              `json:"contract"`
	Sender   string              `json:"sender"`
	Funds    sdk.Coins           `json:"funds"`
	Msg      MsgProvideLiquidity `json:"msg"`
}

// MsgExecuteSwap calls Swap on a pair
type MsgExecuteSwap struct {
	Contract string    `json:"contract"`
	Sender   string    `json:"sender"`
	Funds    sdk.Coins `json:"funds"`
	Msg      MsgSwap   `json:"msg"`
}

// MsgExecuteReceive delivers a token ledger hook to a pair
type MsgExecuteReceive struct {
	Contract string     `json:"contract"`
	Ledger   string     `json:"ledger"`
	Msg      ReceiveMsg `json:"msg"`
}

// MsgExecuteUpdateConfig calls UpdateConfig on a pair
type MsgExecuteUpdateConfig struct {
	Contract string          `json:"contract"`
	Sender   string          `json:"sender"`
	Msg      MsgUpdateConfig `json:"msg"`
}

// MsgExecuteResponse carries the attributes of the emitted pair event
type MsgExecuteResponse struct {
	Attributes []sdk.Attribute `json:"attributes"`
}

// Attribute returns the value of the first attribute with key
func (r MsgExecuteResponse) Attribute(key string) string {
	for _, attr := range r.Attributes {
		if attr.Key == key {
			return attr.Value
		}
	}
	return ""
}

// MsgServer is the host entrypoint of the pair module
type MsgServer interface {
	CreatePair(context.Context, *MsgCreatePair) (*MsgCreatePairResponse, error)
	ProvideLiquidity(context.Context, *MsgExecuteProvideLiquidity) (*MsgExecuteResponse, error)
	Swap(context.Context, *MsgExecuteSwap) (*MsgExecuteResponse, error)
	Receive(context.Context, *MsgExecuteReceive) (*MsgExecuteResponse, error)
	UpdateConfig(context.Context, *MsgExecuteUpdateConfig) (*MsgExecuteResponse, error)
}

// QueryPairRequest asks for the configuration of a pair
type QueryPairRequest struct {
	Contract string `json:"contract"`
}

// QueryPoolRequest asks for the live reserves of a pair
type QueryPoolRequest struct {
	Contract string `json:"contract"`
}

// QuerySimulationRequest quotes selling OfferAsset
type QuerySimulationRequest struct {
	Contract   string `json:"contract"`
	OfferAsset Asset  `json:"offer_asset"`
}

// QueryReverseSimulationRequest quotes the offer needed to receive AskAsset
type QueryReverseSimulationRequest struct {
	Contract string `json:"contract"`
	AskAsset Asset  `json:"ask_asset"`
}

// QueryServer answers read-only pair queries
type QueryServer interface {
	Pair(context.Context, *QueryPairRequest) (*PairInfo, error)
	Pool(context.Context, *QueryPoolRequest) (*PoolResponse, error)
	Simulation(context.Context, *QuerySimulationRequest) (*SwapQuote, error)
	ReverseSimulation(context.Context, *QueryReverseSimulationRequest) (*ReverseQuote, error)
}

// AmountOf returns the reserve of info, zero when it is not part of the pool
func (p PoolResponse) AmountOf(info AssetInfo) math.Int {
	for _, a := range p.Assets {
		if a.Info.Equal(info) {
			return a.Amount
		}
	}
	return math.ZeroInt()
}
