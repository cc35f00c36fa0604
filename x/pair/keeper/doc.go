// Package keeper implements the tfi constant-product pair.
//
// A pair holds reserves of two assets, each either a native denom or a token
// on a token ledger, and prices swaps with the constant-product rule
// x * y = k. A commission is taken from every swap's return and stays in the
// pool, accruing to liquidity providers.
//
// # Core Functionality
//
// Pure engines: ComputeSwap and ComputeOfferAmount price swaps,
// ComputeShare and ComputeRefund account liquidity shares, AssertMaxSpread and
// AssertSlippageTolerance protect traders and providers. They take reserves as
// parameters and floor every division in favour of the pool.
//
// Operations: Instantiate, HandleLedgerReply, ProvideLiquidity, Swap, Receive
// and UpdateConfig read reserves fresh from the collaborator ledgers and return
// a types.Response listing the transfers, mints and burns to perform. The
// keeper never moves balances itself; Dispatch executes the instructions.
//
// Host entrypoints: the msg server runs every call in a cache context and
// commits only when the operation and all of its instructions succeeded.
//
// # Lifecycle
//
// A pair is created awaiting its liquidity token. The creation acknowledgment
// is routed back into HandleLedgerReply, which binds the token once and makes
// the pair ready. Swaps, deposits and withdrawals fail before that.
//
// # Usage Patterns
//
// Quoting a swap:
//
//	quote, err := keeper.ComputeSwap(offerPool, askPool, offer, pair.Commission)
//
// Providing liquidity through the host:
//
//	resp, err := msgServer.ProvideLiquidity(ctx, &types.MsgExecuteProvideLiquidity{...})
package keeper
