package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	"github.com/confio/tfi/x/pair/keeper"
	"github.com/confio/tfi/x/pair/types"
)

func (s *Server) handleQuoteSwap(c *gin.Context) {
	var req SwapQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amounts, err := parseAmounts(req.OfferPool, req.AskPool, req.OfferAmount)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	commission, err := s.commission(req.Commission)
	if err != nil {
		badRequest(c, "Invalid commission", err)
		return
	}

	quote, err := keeper.ComputeSwap(amounts[0], amounts[1], amounts[2], commission)
	if err != nil {
		s.quoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleQuoteReverse(c *gin.Context) {
	var req ReverseQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amounts, err := parseAmounts(req.OfferPool, req.AskPool, req.AskAmount)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	commission, err := s.commission(req.Commission)
	if err != nil {
		badRequest(c, "Invalid commission", err)
		return
	}

	quote, err := keeper.ComputeOfferAmount(amounts[0], amounts[1], amounts[2], commission)
	if err != nil {
		s.quoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) handleQuoteProvide(c *gin.Context) {
	var req ProvideQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amounts, err := parseAmounts(req.Deposit0, req.Deposit1, orZero(req.Pool0), orZero(req.Pool1), orZero(req.TotalShare))
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}
	deposits := [2]math.Int{amounts[0], amounts[1]}
	pools := [2]math.Int{amounts[2], amounts[3]}
	total := amounts[4]

	if req.SlippageTolerance != "" && !total.IsZero() {
		tolerance, err := math.LegacyNewDecFromStr(req.SlippageTolerance)
		if err != nil {
			badRequest(c, "Invalid slippage tolerance", err)
			return
		}
		if err := keeper.AssertSlippageTolerance(&tolerance, deposits, pools); err != nil {
			s.quoteError(c, err)
			return
		}
	}

	share, err := keeper.ComputeShare(deposits, pools, total)
	if err != nil {
		s.quoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, ProvideQuoteResponse{Share: share})
}

func (s *Server) handleQuoteWithdraw(c *gin.Context) {
	var req WithdrawQuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, "Invalid request", err)
		return
	}
	amounts, err := parseAmounts(req.Share, req.TotalShare, req.Pool0, req.Pool1)
	if err != nil {
		badRequest(c, "Invalid amount", err)
		return
	}

	refund, err := keeper.ComputeRefund(amounts[0], amounts[1], [2]math.Int{amounts[2], amounts[3]})
	if err != nil {
		s.quoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, WithdrawQuoteResponse{Refund: refund})
}

// commission returns the per-request override or the server default.
func (s *Server) commission(raw string) (math.LegacyDec, error) {
	if raw == "" {
		return s.config.Commission, nil
	}
	rate, err := math.LegacyNewDecFromStr(raw)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return rate, types.ValidateCommission(rate)
}

// quoteError reports engine failures with their registered error code.
func (s *Server) quoteError(c *gin.Context, err error) {
	_ = c.Error(err)
	var coded *sdkerrors.Error
	if !errors.As(err, &coded) {
		s.logger.Error("quote failed", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "Internal server error",
			Code:    "INTERNAL_ERROR",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:     "Quote rejected",
		Code:      strconv.FormatUint(uint64(coded.ABCICode()), 10),
		Codespace: coded.Codespace(),
		Details:   err.Error(),
	})
}

func badRequest(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   msg,
		Details: err.Error(),
	})
}

func parseAmounts(raw ...string) ([]math.Int, error) {
	out := make([]math.Int, len(raw))
	for i, r := range raw {
		v, ok := math.NewIntFromString(strings.TrimSpace(r))
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", r)
		}
		checked, err := keeper.CheckAmount(v)
		if err != nil {
			return nil, err
		}
		out[i] = checked
	}
	return out, nil
}

func orZero(raw string) string {
	if raw == "" {
		return "0"
	}
	return raw
}
