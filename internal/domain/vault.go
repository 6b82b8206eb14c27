package domain

import (
	"github.com/holiman/uint256"
)

// FeeTier maps a gross-amount threshold to a withdraw fee. Thresholds are in
// the vault's native asset units and must be stored in ascending order.
type FeeTier struct {
	Threshold *uint256.Int `json:"threshold"`
	FeeBps    uint16       `json:"feeBps"`
}

// FeeSchedule holds the bps fee parameters of a vault. All bps values are
// bounded to [0, 10000].
type FeeSchedule struct {
	DepositFeeBps  uint16    `json:"depositFeeBps"`
	WithdrawFeeBps uint16    `json:"withdrawFeeBps"`
	AutoDeployBps  uint16    `json:"autoDeployBps"`
	WithdrawTiers  []FeeTier `json:"withdrawTiers,omitempty"`
}

// NavSnapshot is the valuation input for PPS. Both legs are USD 1e18.
// Recomputed on demand from current balances and oracle prices, never stored.
type NavSnapshot struct {
	ExternalEquityUsd1e18 *uint256.Int
	LocalCashUsd1e18      *uint256.Int
}

// TotalUsd1e18 returns externalEquity + localCash.
func (n NavSnapshot) TotalUsd1e18() *uint256.Int {
	return new(uint256.Int).Add(n.ExternalEquityUsd1e18, n.LocalCashUsd1e18)
}

// DepositEstimate mirrors the exact settlement arithmetic for a deposit.
// Given the same snapshot, Deposit mints exactly NetShares.
type DepositEstimate struct {
	VaultID         string       `json:"vaultId"`
	Asset           string       `json:"asset"`
	AmountWei       *uint256.Int `json:"amountWei"`
	Price1e8        *uint256.Int `json:"price1e8"`
	UsdNotional1e18 *uint256.Int `json:"usdNotional1e18"`
	Pps1e18         *uint256.Int `json:"pps1e18"`
	GrossShares     *uint256.Int `json:"grossShares"`
	FeeShares       *uint256.Int `json:"feeShares"`
	NetShares       *uint256.Int `json:"netShares"`
	FeeBps          uint16       `json:"feeBps"`
}

// WithdrawEstimate mirrors the exact settlement arithmetic for a withdrawal.
type WithdrawEstimate struct {
	VaultID      string       `json:"vaultId"`
	Asset        string       `json:"asset"`
	Shares       *uint256.Int `json:"shares"`
	Price1e8     *uint256.Int `json:"price1e8"`
	Pps1e18      *uint256.Int `json:"pps1e18"`
	GrossUsd1e18 *uint256.Int `json:"grossUsd1e18"`
	GrossNative  *uint256.Int `json:"grossNative"`
	FeeNative    *uint256.Int `json:"feeNative"`
	NetNative    *uint256.Int `json:"netNative"`
	FeeBps       uint16       `json:"feeBps"`
	PayableNow   bool         `json:"payableNow"`
}
