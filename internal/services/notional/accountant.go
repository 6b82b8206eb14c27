package notional

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/services/fixedpoint"
)

var (
	ErrBelowMinNotional       = errors.New("below minimum notional")
	ErrPriceDeviationExceeded = errors.New("price deviation exceeded")
	ErrZeroPrice              = errors.New("zero price")
)

const (
	usdDecimals   = 18
	priceDecimals = 8
	bpsDenom      = 10000
)

var (
	oneE8   = uint256.NewInt(100_000_000)
	oneE10  = uint256.NewInt(10_000_000_000)
	u256Bps = uint256.NewInt(bpsDenom)
)

// Accountant converts between native amounts, USD notional and venue order
// sizes, and enforces the min-notional and deviation bounds. Decimal bases are
// explicit call parameters; only the bound parameters live on the struct.
type Accountant struct {
	minNotionalUsd1e8     *uint256.Int
	maxOracleDeviationBps uint16
	maxSlippageBps        uint16
}

func NewAccountant(minNotionalUsd1e8 *uint256.Int, maxOracleDeviationBps, maxSlippageBps uint16) *Accountant {
	return &Accountant{
		minNotionalUsd1e8:     new(uint256.Int).Set(minNotionalUsd1e8),
		maxOracleDeviationBps: maxOracleDeviationBps,
		maxSlippageBps:        maxSlippageBps,
	}
}

// SetLimits replaces the bound parameters. Callers serialize this against
// in-flight checks; the accountant itself holds no lock.
func (a *Accountant) SetLimits(minNotionalUsd1e8 *uint256.Int, maxOracleDeviationBps, maxSlippageBps uint16) {
	a.minNotionalUsd1e8 = new(uint256.Int).Set(minNotionalUsd1e8)
	a.maxOracleDeviationBps = maxOracleDeviationBps
	a.maxSlippageBps = maxSlippageBps
}

// ToUsdNotional converts a native amount to USD 1e18:
// scale(native, nativeDecimals, 18) * price1e8 / 1e8, floor.
func ToUsdNotional(native *uint256.Int, price1e8 *uint256.Int, nativeDecimals uint8) (*uint256.Int, error) {
	scaled, err := fixedpoint.Scale(native, int(nativeDecimals), usdDecimals)
	if err != nil {
		return nil, err
	}
	return fixedpoint.MulDiv(scaled, price1e8, oneE8)
}

// FromUsdNotional converts USD 1e18 back to a native amount:
// scale(usd1e18 * 1e8 / price1e8, 18, nativeDecimals), floor.
func FromUsdNotional(usd1e18 *uint256.Int, price1e8 *uint256.Int, nativeDecimals uint8) (*uint256.Int, error) {
	if price1e8.IsZero() {
		return nil, ErrZeroPrice
	}
	native18, err := fixedpoint.MulDiv(usd1e18, oneE8, price1e8)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Scale(native18, usdDecimals, int(nativeDecimals))
}

// ToOrderSize converts USD 1e18 notional to a venue order size in szDecimals:
// scale(usd1e18 * 1e8 / price1e8, 18, szDecimals), full-precision, floor.
func ToOrderSize(usd1e18 *uint256.Int, price1e8 *uint256.Int, szDecimals uint8) (*uint256.Int, error) {
	if price1e8.IsZero() {
		return nil, ErrZeroPrice
	}
	size18, err := fixedpoint.MulDiv(usd1e18, oneE8, price1e8)
	if err != nil {
		return nil, err
	}
	return fixedpoint.Scale(size18, usdDecimals, int(szDecimals))
}

// CheckMinNotional enforces usd1e18 >= minNotionalUsd1e8 * 1e10. The config
// is denominated in 1e8 while working amounts are 1e18; the rescale is
// explicit here so the mismatch can never be applied twice.
func (a *Accountant) CheckMinNotional(usd1e18 *uint256.Int) error {
	min := new(uint256.Int)
	if _, overflow := min.MulOverflow(a.minNotionalUsd1e8, oneE10); overflow {
		return fixedpoint.ErrOverflow
	}
	if usd1e18.Lt(min) {
		return fmt.Errorf("%w: notional %s < min %s", ErrBelowMinNotional, usd1e18.Dec(), min.Dec())
	}
	return nil
}

// deviationBps returns |price - reference| * 10000 / reference.
func deviationBps(price, reference *uint256.Int) (*uint256.Int, error) {
	diff := new(uint256.Int)
	if price.Gt(reference) {
		diff.Sub(price, reference)
	} else {
		diff.Sub(reference, price)
	}
	return fixedpoint.MulDiv(diff, u256Bps, reference)
}

// CheckOracleDeviation bounds a computed price against a reference price.
func (a *Accountant) CheckOracleDeviation(price1e8, reference1e8 *uint256.Int) error {
	return checkDeviation(price1e8, reference1e8, a.maxOracleDeviationBps)
}

// CheckSlippage bounds an execution price against the BBO.
func (a *Accountant) CheckSlippage(price1e8, bbo1e8 *uint256.Int) error {
	return checkDeviation(price1e8, bbo1e8, a.maxSlippageBps)
}

func checkDeviation(price, reference *uint256.Int, maxBps uint16) error {
	if reference.IsZero() {
		return ErrZeroPrice
	}
	dev, err := deviationBps(price, reference)
	if err != nil {
		return err
	}
	if dev.GtUint64(uint64(maxBps)) {
		return fmt.Errorf("%w: %s bps > %d bps", ErrPriceDeviationExceeded, dev.Dec(), maxBps)
	}
	return nil
}
