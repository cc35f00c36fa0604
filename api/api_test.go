package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	otelcodes "go.opentelemetry.io/otel/codes"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/confio/tfi/x/pair/types"
)

func setupTestServer(t *testing.T, rps int) *Server {
	t.Helper()
	config := DefaultConfig()
	config.CORSOrigins = []string{"https://app.example"}
	config.RateLimitRPS = rps

	server, err := NewServer(log.NewNopLogger(), config)
	require.NoError(t, err)
	return server
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t, 100)

	w := get(t, server, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Equal(t, "healthy", response["status"])
	assert.Equal(t, types.DefaultCommissionRate().String(), response["commission"])
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestQuoteSwap(t *testing.T) {
	server := setupTestServer(t, 100)

	tests := []struct {
		name           string
		target         string
		expectedStatus int
		expected       map[string]any
	}{
		{
			name:           "default commission",
			target:         "/api/v1/quote/swap?offer_pool=2000&ask_pool=6000&offer_amount=1000",
			expectedStatus: http.StatusOK,
			expected:       map[string]any{"return_amount": "1994", "spread_amount": "1000", "commission_amount": "6"},
		},
		{
			name:           "commission override",
			target:         "/api/v1/quote/swap?offer_pool=1000000&ask_pool=1000000&offer_amount=1000&commission=0",
			expectedStatus: http.StatusOK,
			expected:       map[string]any{"return_amount": "1000", "spread_amount": "0", "commission_amount": "0"},
		},
		{
			name:           "missing parameter",
			target:         "/api/v1/quote/swap?offer_pool=2000&ask_pool=6000",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "not an integer",
			target:         "/api/v1/quote/swap?offer_pool=2000&ask_pool=6000&offer_amount=1.5",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "commission out of range",
			target:         "/api/v1/quote/swap?offer_pool=2000&ask_pool=6000&offer_amount=1000&commission=1",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, server, tt.target)
			require.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.expected != nil {
				assert.Equal(t, tt.expected, decode(t, w))
			}
		})
	}
}

func TestQuoteEngineErrorsCarryCodes(t *testing.T) {
	server := setupTestServer(t, 100)

	w := get(t, server, "/api/v1/quote/swap?offer_pool=0&ask_pool=6000&offer_amount=1000")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	response := decode(t, w)
	assert.Equal(t, types.ErrDivideByZero.Codespace(), response["codespace"])
	assert.Equal(t, strconv.FormatUint(uint64(types.ErrDivideByZero.ABCICode()), 10), response["code"])

	w = get(t, server, "/api/v1/quote/reverse?offer_pool=2000&ask_pool=6000&ask_amount=6000")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, strconv.FormatUint(uint64(types.ErrUnderflow.ABCICode()), 10), decode(t, w)["code"])
}

func TestQuoteReverse(t *testing.T) {
	server := setupTestServer(t, 100)

	w := get(t, server, "/api/v1/quote/reverse?offer_pool=2000&ask_pool=6000&ask_amount=1994")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "999", decode(t, w)["offer_amount"])
}

func TestQuoteProvideAndWithdraw(t *testing.T) {
	server := setupTestServer(t, 100)

	w := get(t, server, "/api/v1/quote/provide?deposit_0=2000&deposit_1=6000")
	require.Equal(t, http.StatusOK, w.Code)
	var provide ProvideQuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &provide))
	assert.True(t, provide.Share.Equal(math.NewInt(3464)), provide.Share.String())

	w = get(t, server, "/api/v1/quote/provide?deposit_0=1000&deposit_1=4000&pool_0=2000&pool_1=6000&total_share=3464&slippage_tolerance=0.01")
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, strconv.FormatUint(uint64(types.ErrMaxSlippageExceeded.ABCICode()), 10), decode(t, w)["code"])

	w = get(t, server, "/api/v1/quote/withdraw?share=1732&total_share=5196&pool_0=3000&pool_1=9000")
	require.Equal(t, http.StatusOK, w.Code)
	var withdraw WithdrawQuoteResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &withdraw))
	assert.True(t, withdraw.Refund[0].Equal(math.NewInt(1000)))
	assert.True(t, withdraw.Refund[1].Equal(math.NewInt(3000)))
}

func TestCORS(t *testing.T) {
	server := setupTestServer(t, 100)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/quote/swap", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/v1/quote/swap", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRateLimit(t *testing.T) {
	server := setupTestServer(t, 1)

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = get(t, server, "/health").Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRequestIDPropagates(t *testing.T) {
	server := setupTestServer(t, 100)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	server := setupTestServer(t, 100)

	w := get(t, server, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	config.RateLimitRPS = 0
	_, err := NewServer(log.NewNopLogger(), config)
	require.Error(t, err)

	config = DefaultConfig()
	config.Commission = math.LegacyOneDec()
	_, err = NewServer(log.NewNopLogger(), config)
	require.ErrorIs(t, err, types.ErrInvalidCommission)
}

func TestQuoteSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tracesdk.NewTracerProvider(tracesdk.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	server := setupTestServer(t, 100)
	get(t, server, "/api/v1/quote/swap?offer_pool=2000&ask_pool=6000&offer_amount=1000")
	get(t, server, "/api/v1/quote/swap?offer_pool=0&ask_pool=6000&offer_amount=1000")

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "quote.swap", spans[0].Name())
	assert.Equal(t, otelcodes.Unset, spans[0].Status().Code)
	assert.Equal(t, otelcodes.Error, spans[1].Status().Code)
}
