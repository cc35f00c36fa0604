package keeper

import (
	"math/big"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PairMetrics holds all Prometheus metrics for the pair module
type PairMetrics struct {
	// Swap metrics
	SwapsTotal          *prometheus.CounterVec
	SwapVolume          *prometheus.CounterVec
	CommissionCollected *prometheus.CounterVec
	MaxSpreadRejections *prometheus.CounterVec
	TaxCollected        *prometheus.CounterVec

	// Liquidity metrics
	LiquidityProvided  *prometheus.CounterVec
	LiquidityWithdrawn *prometheus.CounterVec
	SharesMinted       *prometheus.CounterVec
	SharesBurned       *prometheus.CounterVec
	PoolReserves       *prometheus.GaugeVec

	// Lifecycle metrics
	PairsInstantiated prometheus.Counter
	PairsReady        prometheus.Counter
}

var (
	pairMetricsOnce sync.Once
	pairMetrics     *PairMetrics
)

// NewPairMetrics creates and registers pair metrics (singleton pattern)
func NewPairMetrics() *PairMetrics {
	pairMetricsOnce.Do(func() {
		pairMetrics = &PairMetrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "swaps_total",
					Help:      "Total number of swaps by outcome",
				},
				[]string{"pair", "offer_asset", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "swap_volume_total",
					Help:      "Total offered amount in base units",
				},
				[]string{"pair", "asset"},
			),
			CommissionCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "commission_collected_total",
					Help:      "Commission retained by the pool in base units",
				},
				[]string{"pair", "asset"},
			),
			MaxSpreadRejections: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "max_spread_rejections_total",
					Help:      "Swaps rejected by the max spread assertion",
				},
				[]string{"pair"},
			),
			TaxCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "tax_collected_total",
					Help:      "Transfer tax deducted from native payouts",
				},
				[]string{"pair", "denom"},
			),
			LiquidityProvided: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "liquidity_provided_total",
					Help:      "Reserves deposited by liquidity providers",
				},
				[]string{"pair", "asset"},
			),
			LiquidityWithdrawn: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "liquidity_withdrawn_total",
					Help:      "Reserves refunded to liquidity providers",
				},
				[]string{"pair", "asset"},
			),
			SharesMinted: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "shares_minted_total",
					Help:      "Liquidity shares minted",
				},
				[]string{"pair"},
			),
			SharesBurned: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "shares_burned_total",
					Help:      "Liquidity shares burned",
				},
				[]string{"pair"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "pool_reserves",
					Help:      "Pool reserves observed by the last operation",
				},
				[]string{"pair", "asset"},
			),
			PairsInstantiated: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "pairs_instantiated_total",
					Help:      "Pairs that requested their liquidity token",
				},
			),
			PairsReady: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "tfi",
					Subsystem: "pair",
					Name:      "pairs_ready_total",
					Help:      "Pairs whose liquidity token was bound",
				},
			),
		}
	})
	return pairMetrics
}

func toFloat(amount math.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(amount.BigInt()).Float64()
	return f
}
