package api

import (
	"cosmossdk.io/math"
)

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	Details   string `json:"details,omitempty"`
}

// SwapQuoteRequest prices selling OfferAmount into the pool
type SwapQuoteRequest struct {
	OfferPool   string `form:"offer_pool" binding:"required"`
	AskPool     string `form:"ask_pool" binding:"required"`
	OfferAmount string `form:"offer_amount" binding:"required"`
	Commission  string `form:"commission"`
}

// ReverseQuoteRequest prices receiving AskAmount from the pool
type ReverseQuoteRequest struct {
	OfferPool  string `form:"offer_pool" binding:"required"`
	AskPool    string `form:"ask_pool" binding:"required"`
	AskAmount  string `form:"ask_amount" binding:"required"`
	Commission string `form:"commission"`
}

// ProvideQuoteRequest prices a two-sided deposit
type ProvideQuoteRequest struct {
	Deposit0          string `form:"deposit_0" binding:"required"`
	Deposit1          string `form:"deposit_1" binding:"required"`
	Pool0             string `form:"pool_0"`
	Pool1             string `form:"pool_1"`
	TotalShare        string `form:"total_share"`
	SlippageTolerance string `form:"slippage_tolerance"`
}

// WithdrawQuoteRequest prices burning Share liquidity shares
type WithdrawQuoteRequest struct {
	Share      string `form:"share" binding:"required"`
	TotalShare string `form:"total_share" binding:"required"`
	Pool0      string `form:"pool_0" binding:"required"`
	Pool1      string `form:"pool_1" binding:"required"`
}

// ProvideQuoteResponse is the share minted for a deposit
type ProvideQuoteResponse struct {
	Share math.Int `json:"share"`
}

// WithdrawQuoteResponse is the refund for burning shares
type WithdrawQuoteResponse struct {
	Refund [2]math.Int `json:"refund"`
}
