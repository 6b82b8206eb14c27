package domain

import (
	"github.com/holiman/uint256"
)

// PortfolioTarget maps asset symbol to target weight in bps. Weights must sum
// to exactly 10000.
type PortfolioTarget map[string]uint16

// Validate checks the 10000 bps weight-sum invariant.
func (p PortfolioTarget) Validate() bool {
	sum := 0
	for _, w := range p {
		sum += int(w)
	}
	return sum == 10000
}

type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

// RebalanceOrder is one (asset, signed delta) instruction for the venue,
// expressed in USD notional. Emission is fire-and-forget.
type RebalanceOrder struct {
	Asset           string       `json:"asset"`
	Side            OrderSide    `json:"side"`
	UsdNotional1e18 *uint256.Int `json:"usdNotional1e18"`
	// SizeSz is the order quantity in the asset's szDecimals, filled in at
	// emission time from the same snapshot that priced the delta.
	SizeSz *uint256.Int `json:"sizeSz,omitempty"`
}

// EpochState is the outbound rate limiter for rebalance cycles. It is passed
// into and returned from the planner explicitly; persistence belongs to the
// storage layer.
type EpochState struct {
	EpochLengthSec      uint64       `json:"epochLengthSec"`
	LastEpochStart      uint64       `json:"lastEpochStart"`
	SentThisEpoch       *uint256.Int `json:"sentThisEpoch"`
	MaxOutboundPerEpoch *uint256.Int `json:"maxOutboundPerEpoch"`
}
