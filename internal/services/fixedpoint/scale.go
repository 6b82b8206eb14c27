package fixedpoint

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	ErrInvalidScale = errors.New("invalid scale")
	ErrOverflow     = errors.New("amount overflow")
	ErrDivByZero    = errors.New("division by zero")
)

// MaxDecimals bounds every decimal exponent in the system. 10^77 is the
// largest power of ten below 2^256.
const MaxDecimals = 77

// Pre-computed powers of ten (avoid allocation on every call)
var pow10 [MaxDecimals + 1]*uint256.Int

func init() {
	ten := uint256.NewInt(10)
	p := uint256.NewInt(1)
	for i := 0; i <= MaxDecimals; i++ {
		pow10[i] = new(uint256.Int).Set(p)
		p.Mul(p, ten)
	}
}

// Pow10 returns 10^n. n above MaxDecimals fails with ErrInvalidScale.
func Pow10(n int) (*uint256.Int, error) {
	if n < 0 || n > MaxDecimals {
		return nil, ErrInvalidScale
	}
	return pow10[n], nil
}

// Scale rescales amount from one implicit decimal base to another. Scaling up
// multiplies by 10^(to-from); scaling down floor-divides by 10^(from-to).
// Floor is the single rounding mode of the whole system: every downstream
// conversion must route through this primitive so the settlement path and the
// estimators can never disagree on rounding.
func Scale(amount *uint256.Int, fromDecimals, toDecimals int) (*uint256.Int, error) {
	if fromDecimals < 0 || fromDecimals > MaxDecimals || toDecimals < 0 || toDecimals > MaxDecimals {
		return nil, ErrInvalidScale
	}
	out := new(uint256.Int)
	if toDecimals >= fromDecimals {
		if _, overflow := out.MulOverflow(amount, pow10[toDecimals-fromDecimals]); overflow {
			return nil, ErrOverflow
		}
		return out, nil
	}
	return out.Div(amount, pow10[fromDecimals-toDecimals]), nil
}

// MulDiv computes a * b / denom with a full-precision 512-bit intermediate
// and floor rounding. Fails when the result does not fit in 256 bits.
func MulDiv(a, b, denom *uint256.Int) (*uint256.Int, error) {
	if denom.IsZero() {
		return nil, ErrDivByZero
	}
	out := new(uint256.Int)
	if _, overflow := out.MulDivOverflow(a, b, denom); overflow {
		return nil, ErrOverflow
	}
	return out, nil
}
