package domain

import (
	"github.com/holiman/uint256"
)

// TokenInfo is the venue metadata for a tradable asset. SzDecimals is the
// venue-native order-size precision, WeiDecimals the EVM-side precision.
// Set once by the configurator; changing it invalidates cached price scalars.
type TokenInfo struct {
	Symbol      string `json:"symbol"`
	SzDecimals  uint8  `json:"szDecimals"`
	WeiDecimals uint8  `json:"weiDecimals"`
}

// PriceExponent is the implicit decimal count of raw venue prices for this
// token. May be negative, zero, or positive.
func (t TokenInfo) PriceExponent() int {
	return int(t.WeiDecimals) - int(t.SzDecimals)
}

type TokenRegistry map[string]TokenInfo

// OracleRead is a single raw price observation from the venue. Never persisted
// beyond one evaluation; always re-derived so a stale read cannot leak into a
// later snapshot.
type OracleRead struct {
	Asset     string
	Raw       uint64
	Timestamp int64
}

// OraclePrice is a normalized 1e8 USD price derived from an OracleRead.
type OraclePrice struct {
	Asset         string
	Raw           uint64
	Normalized1e8 *uint256.Int
	Timestamp     int64
}
