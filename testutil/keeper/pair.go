package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/stretchr/testify/require"

	"github.com/confio/tfi/x/pair/keeper"
	"github.com/confio/tfi/x/pair/types"
)

// PairFixture wires a pair keeper to in-memory collaborators sharing one multistore
type PairFixture struct {
	Ctx         sdk.Context
	Keeper      *keeper.Keeper
	MsgServer   types.MsgServer
	QueryServer types.QueryServer
	Bank        MockBankKeeper
	Ledger      *MockTokenLedger
	Tax         *MockTaxKeeper
}

// PairKeeper creates a test keeper for the pair module with mock collaborators
func PairKeeper(t testing.TB) *PairFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	bankKey := storetypes.NewKVStoreKey("mockbank")
	ledgerKey := storetypes.NewKVStoreKey("mockledger")

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(ledgerKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	bank := MockBankKeeper{key: bankKey}
	ledger := &MockTokenLedger{key: ledgerKey}
	tax := &MockTaxKeeper{Rate: math.LegacyZeroDec()}

	k := keeper.NewKeeper(storeKey, bank, ledger, tax)
	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())

	return &PairFixture{
		Ctx:         ctx,
		Keeper:      k,
		MsgServer:   keeper.NewMsgServerImpl(*k),
		QueryServer: keeper.NewQueryServerImpl(*k),
		Bank:        bank,
		Ledger:      ledger,
		Tax:         tax,
	}
}

// TestAddr derives a deterministic account address from name
func TestAddr(name string) sdk.AccAddress {
	return address.Module("test", []byte(name))
}

// CreatePair instantiates a ready pair over infos through the msg server
func (f *PairFixture) CreatePair(t testing.TB, infos [2]types.AssetInfo, commission *math.LegacyDec, owner string) types.PairInfo {
	resp, err := f.MsgServer.CreatePair(f.Ctx, &types.MsgCreatePair{
		Creator: TestAddr("factory").String(),
		Pair: types.InstantiateMsg{
			AssetInfos: infos,
			Commission: commission,
			Owner:      owner,
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.LiquidityToken)

	pair, err := f.Keeper.GetPair(f.Ctx, sdk.MustAccAddressFromBech32(resp.ContractAddr))
	require.NoError(t, err)
	require.True(t, pair.IsReady())
	return pair
}

// NewToken creates a token ledger minted by the test minter
func (f *PairFixture) NewToken(t testing.TB) sdk.AccAddress {
	return f.Ledger.CreateLedger(f.Ctx, TestAddr("minter"))
}

// MintToken credits amount of ledger to recipient
func (f *PairFixture) MintToken(t testing.TB, ledger, recipient sdk.AccAddress, amount math.Int) {
	require.NoError(t, f.Ledger.Mint(f.Ctx, ledger, TestAddr("minter"), recipient, amount))
}

// SendWithHook transfers amount on ledger from sender to contract and delivers
// hook, as a token ledger's send does. Nothing is committed when the hook fails.
func (f *PairFixture) SendWithHook(ledger, sender, contract sdk.AccAddress, amount math.Int, hook types.HookMsg) (*types.MsgExecuteResponse, error) {
	cacheCtx, write := f.Ctx.CacheContext()
	if err := f.Ledger.Transfer(cacheCtx, ledger, sender, contract, amount); err != nil {
		return nil, err
	}
	resp, err := f.MsgServer.Receive(cacheCtx, &types.MsgExecuteReceive{
		Contract: contract.String(),
		Ledger:   ledger.String(),
		Msg: types.ReceiveMsg{
			Sender: sender.String(),
			Amount: amount,
			Msg:    types.MustMarshalHook(hook),
		},
	})
	if err != nil {
		return nil, err
	}
	write()
	return resp, nil
}
