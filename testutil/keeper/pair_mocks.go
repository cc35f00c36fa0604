package keeper

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	"github.com/confio/tfi/x/pair/types"
)

// Both mock ledgers keep their state in the test multistore so that cache
// contexts roll them back together with the pair state.

var (
	bankBalancePrefix = []byte{0x01}

	ledgerBalancePrefix   = []byte{0x01}
	ledgerSupplyPrefix    = []byte{0x02}
	ledgerAllowancePrefix = []byte{0x03}
	ledgerMinterPrefix    = []byte{0x04}
	ledgerSequenceKey     = []byte{0x05}
)

func storeKey(prefix []byte, parts ...[]byte) []byte {
	key := append([]byte{}, prefix...)
	for _, p := range parts {
		key = append(key, address.MustLengthPrefix(p)...)
	}
	return key
}

func getInt(store storetypes.KVStore, key []byte) math.Int {
	bz := store.Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	v, ok := math.NewIntFromString(string(bz))
	if !ok {
		panic(fmt.Sprintf("corrupt amount under %X", key))
	}
	return v
}

func setInt(store storetypes.KVStore, key []byte, v math.Int) {
	if v.IsZero() {
		store.Delete(key)
		return
	}
	store.Set(key, []byte(v.String()))
}

// MockBankKeeper is a native ledger backed by a KV store
type MockBankKeeper struct {
	key storetypes.StoreKey
}

var _ types.BankKeeper = MockBankKeeper{}

func (b MockBankKeeper) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(b.key)
}

// GetBalance returns the balance of addr in denom
func (b MockBankKeeper) GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	return sdk.NewCoin(denom, getInt(b.store(ctx), storeKey(bankBalancePrefix, addr, []byte(denom))))
}

// SendCoins moves coins between accounts
func (b MockBankKeeper) SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error {
	store := b.store(ctx)
	for _, coin := range amt {
		fromKey := storeKey(bankBalancePrefix, fromAddr, []byte(coin.Denom))
		have := getInt(store, fromKey)
		if have.LT(coin.Amount) {
			return sdkerrors.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s", fromAddr, have, coin.Denom, coin)
		}
		setInt(store, fromKey, have.Sub(coin.Amount))
		toKey := storeKey(bankBalancePrefix, toAddr, []byte(coin.Denom))
		setInt(store, toKey, getInt(store, toKey).Add(coin.Amount))
	}
	return nil
}

// FundAccount credits coins out of thin air
func (b MockBankKeeper) FundAccount(ctx context.Context, addr sdk.AccAddress, amt sdk.Coins) {
	store := b.store(ctx)
	for _, coin := range amt {
		key := storeKey(bankBalancePrefix, addr, []byte(coin.Denom))
		setInt(store, key, getInt(store, key).Add(coin.Amount))
	}
}

// MockTokenLedger hosts any number of token ledgers backed by a KV store
type MockTokenLedger struct {
	key storetypes.StoreKey

	// InstantiateErr makes ledger creation fail
	InstantiateErr error
	// Ack replaces the acknowledgment returned by Instantiate when set
	Ack []byte
}

var _ types.TokenLedger = (*MockTokenLedger)(nil)

func (l *MockTokenLedger) store(ctx context.Context) storetypes.KVStore {
	return sdk.UnwrapSDKContext(ctx).KVStore(l.key)
}

// Balance returns the token balance of owner on ledger
func (l *MockTokenLedger) Balance(ctx context.Context, ledger, owner sdk.AccAddress) (math.Int, error) {
	return getInt(l.store(ctx), storeKey(ledgerBalancePrefix, ledger, owner)), nil
}

// TotalSupply returns the minted supply of ledger
func (l *MockTokenLedger) TotalSupply(ctx context.Context, ledger sdk.AccAddress) (math.Int, error) {
	return getInt(l.store(ctx), storeKey(ledgerSupplyPrefix, ledger)), nil
}

// Transfer moves tokens between holders
func (l *MockTokenLedger) Transfer(ctx context.Context, ledger, from, to sdk.AccAddress, amount math.Int) error {
	store := l.store(ctx)
	fromKey := storeKey(ledgerBalancePrefix, ledger, from)
	have := getInt(store, fromKey)
	if have.LT(amount) {
		return sdkerrors.ErrInsufficientFunds.Wrapf("%s holds %s of %s, needs %s", from, have, ledger, amount)
	}
	setInt(store, fromKey, have.Sub(amount))
	toKey := storeKey(ledgerBalancePrefix, ledger, to)
	setInt(store, toKey, getInt(store, toKey).Add(amount))
	return nil
}

// TransferFrom moves tokens of owner within the allowance granted to spender
func (l *MockTokenLedger) TransferFrom(ctx context.Context, ledger, spender, owner, recipient sdk.AccAddress, amount math.Int) error {
	store := l.store(ctx)
	allowanceKey := storeKey(ledgerAllowancePrefix, ledger, owner, spender)
	allowance := getInt(store, allowanceKey)
	if allowance.LT(amount) {
		return sdkerrors.ErrUnauthorized.Wrapf("allowance of %s is %s, needs %s", spender, allowance, amount)
	}
	if err := l.Transfer(ctx, ledger, owner, recipient, amount); err != nil {
		return err
	}
	setInt(store, allowanceKey, allowance.Sub(amount))
	return nil
}

// Mint creates tokens; only the ledger's minter may call it
func (l *MockTokenLedger) Mint(ctx context.Context, ledger, minter, recipient sdk.AccAddress, amount math.Int) error {
	store := l.store(ctx)
	if bz := store.Get(storeKey(ledgerMinterPrefix, ledger)); !sdk.AccAddress(bz).Equals(minter) {
		return sdkerrors.ErrUnauthorized.Wrapf("%s is not the minter of %s", minter, ledger)
	}
	supplyKey := storeKey(ledgerSupplyPrefix, ledger)
	setInt(store, supplyKey, getInt(store, supplyKey).Add(amount))
	balKey := storeKey(ledgerBalancePrefix, ledger, recipient)
	setInt(store, balKey, getInt(store, balKey).Add(amount))
	return nil
}

// Burn destroys tokens held by owner
func (l *MockTokenLedger) Burn(ctx context.Context, ledger, owner sdk.AccAddress, amount math.Int) error {
	store := l.store(ctx)
	balKey := storeKey(ledgerBalancePrefix, ledger, owner)
	have := getInt(store, balKey)
	if have.LT(amount) {
		return sdkerrors.ErrInsufficientFunds.Wrapf("%s holds %s of %s, burns %s", owner, have, ledger, amount)
	}
	setInt(store, balKey, have.Sub(amount))
	supplyKey := storeKey(ledgerSupplyPrefix, ledger)
	setInt(store, supplyKey, getInt(store, supplyKey).Sub(amount))
	return nil
}

// Instantiate creates a new ledger whose minter is msg.Minter
func (l *MockTokenLedger) Instantiate(ctx context.Context, creator sdk.AccAddress, msg types.TokenInstantiateMsg) ([]byte, error) {
	if l.InstantiateErr != nil {
		return nil, l.InstantiateErr
	}
	minter, err := sdk.AccAddressFromBech32(msg.Minter)
	if err != nil {
		return nil, err
	}
	ledger := l.CreateLedger(ctx, minter)
	if l.Ack != nil {
		return l.Ack, nil
	}
	return types.EncodeInstantiateAck(ledger.String(), nil), nil
}

// CreateLedger registers a new ledger and returns its address
func (l *MockTokenLedger) CreateLedger(ctx context.Context, minter sdk.AccAddress) sdk.AccAddress {
	store := l.store(ctx)
	seq := uint64(1)
	if bz := store.Get(ledgerSequenceKey); bz != nil {
		seq = binary.BigEndian.Uint64(bz)
	}
	next := make([]byte, 8)
	binary.BigEndian.PutUint64(next, seq+1)
	store.Set(ledgerSequenceKey, next)

	seqBz := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBz, seq)
	ledger := address.Module("ledger", seqBz)
	store.Set(storeKey(ledgerMinterPrefix, ledger), minter)
	return ledger
}

// IncreaseAllowance lets spender move amount of owner's tokens
func (l *MockTokenLedger) IncreaseAllowance(ctx context.Context, ledger, owner, spender sdk.AccAddress, amount math.Int) {
	store := l.store(ctx)
	key := storeKey(ledgerAllowancePrefix, ledger, owner, spender)
	setInt(store, key, getInt(store, key).Add(amount))
}

// MockTaxKeeper charges a configurable transfer tax
type MockTaxKeeper struct {
	Rate math.LegacyDec
	Caps map[string]math.Int
	Err  error
}

var _ types.TaxKeeper = (*MockTaxKeeper)(nil)

// TaxRate returns the configured rate
func (t *MockTaxKeeper) TaxRate(context.Context) (math.LegacyDec, error) {
	if t.Err != nil {
		return math.LegacyDec{}, t.Err
	}
	if t.Rate.IsNil() {
		return math.LegacyZeroDec(), nil
	}
	return t.Rate, nil
}

// TaxCap returns the configured cap of denom
func (t *MockTaxKeeper) TaxCap(_ context.Context, denom string) (math.Int, error) {
	if t.Err != nil {
		return math.Int{}, t.Err
	}
	if c, ok := t.Caps[denom]; ok {
		return c, nil
	}
	return math.NewInt(1_000_000), nil
}

// ErrLedgerDown is returned by collaborators configured to fail
var ErrLedgerDown = errors.New("ledger unavailable")
