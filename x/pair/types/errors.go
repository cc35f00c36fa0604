package types

import (
	"cosmossdk.io/errors"
)

// Pair module sentinel errors
var (
	ErrAssetMismatch            = errors.Register(ModuleName, 2, "asset mismatch")
	ErrInvalidZeroAmount        = errors.Register(ModuleName, 3, "invalid zero amount")
	ErrDivideByZero             = errors.Register(ModuleName, 4, "divide by zero")
	ErrOverflow                 = errors.Register(ModuleName, 5, "arithmetic overflow")
	ErrUnderflow                = errors.Register(ModuleName, 6, "arithmetic underflow")
	ErrMaxSpreadExceeded        = errors.Register(ModuleName, 7, "max spread assertion")
	ErrMaxSlippageExceeded      = errors.Register(ModuleName, 8, "max slippage assertion")
	ErrUnauthorized             = errors.Register(ModuleName, 9, "unauthorized")
	ErrInvalidCommission        = errors.Register(ModuleName, 10, "invalid commission value")
	ErrMalformedAck             = errors.Register(ModuleName, 11, "malformed ledger creation acknowledgment")
	ErrPairNotFound             = errors.Register(ModuleName, 12, "pair not found")
	ErrPairNotReady             = errors.Register(ModuleName, 13, "pair liquidity token not bound")
	ErrAlreadyInitialized       = errors.Register(ModuleName, 14, "pair already initialized")
	ErrInvalidAsset             = errors.Register(ModuleName, 15, "invalid asset")
	ErrNativeFundsMismatch      = errors.Register(ModuleName, 16, "native token balance mismatch between the argument and the transferred")
	ErrInvalidHookMsg           = errors.Register(ModuleName, 17, "invalid ledger hook message")
	ErrInvalidShares            = errors.Register(ModuleName, 18, "invalid shares amount")
	ErrInvalidSlippageTolerance = errors.Register(ModuleName, 19, "invalid slippage tolerance")
	ErrInvalidAddress           = errors.Register(ModuleName, 20, "invalid address")
)
