package ledger

import (
	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/services/fixedpoint"
)

const usdDecimals = 18

var oneE18 = uint256.NewInt(1_000_000_000_000_000_000)

// PricePerShare returns (externalEquity + localCash) * 1e18 / totalSupply in
// USD 1e18 per share. With zero supply the vault bootstraps 1:1 and PPS is
// exactly 1e18.
func PricePerShare(nav domain.NavSnapshot, totalSupply *uint256.Int) (*uint256.Int, error) {
	if totalSupply.IsZero() {
		return new(uint256.Int).Set(oneE18), nil
	}
	return fixedpoint.MulDiv(nav.TotalUsd1e18(), oneE18, totalSupply)
}

// SharesForDeposit returns the gross shares for a USD 1e18 deposit notional.
// Bootstrap (zero supply) mints the notional re-expressed in share decimals;
// otherwise shares = usd1e18 * 10^shareDecimals / pps1e18, floor. The deposit
// fee applies to these shares afterwards, not to the principal.
func SharesForDeposit(usd1e18, pps1e18, totalSupply *uint256.Int, shareDecimals uint8) (*uint256.Int, error) {
	if totalSupply.IsZero() {
		return fixedpoint.Scale(usd1e18, usdDecimals, int(shareDecimals))
	}
	scaleShares, err := fixedpoint.Pow10(int(shareDecimals))
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulDiv(usd1e18, scaleShares, pps1e18)
}

// UsdForShares returns shares * pps1e18 / 10^shareDecimals: the gross USD
// 1e18 value a share burn redeems, floor.
func UsdForShares(shares, pps1e18 *uint256.Int, shareDecimals uint8) (*uint256.Int, error) {
	scaleShares, err := fixedpoint.Pow10(int(shareDecimals))
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulDiv(shares, pps1e18, scaleShares)
}
