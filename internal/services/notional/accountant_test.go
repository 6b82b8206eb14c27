package notional

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
)

func TestToUsdNotional(t *testing.T) {
	tests := []struct {
		name     string
		native   string
		price1e8 string
		decimals uint8
		want     string
	}{
		// 0.5 HYPE at $50.00 = $25
		{name: "half hype at fifty", native: "500000000000000000", price1e8: "5000000000", decimals: 18, want: "25000000000000000000"},
		// 100 USDC (6 decimals) at $1.00 = $100
		{name: "hundred usdc at par", native: "100000000", price1e8: "100000000", decimals: 6, want: "100000000000000000000"},
		{name: "zero amount", native: "0", price1e8: "5000000000", decimals: 18, want: "0"},
		// 1 wei at $50: floors to 50 at 1e18 scale
		{name: "dust floors", native: "1", price1e8: "5000000000", decimals: 18, want: "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToUsdNotional(uint256.MustFromDecimal(tt.native), uint256.MustFromDecimal(tt.price1e8), tt.decimals)
			if err != nil {
				t.Fatalf("ToUsdNotional() error = %v", err)
			}
			if got.Dec() != tt.want {
				t.Errorf("ToUsdNotional() = %s, want %s", got.Dec(), tt.want)
			}
		})
	}
}

func TestFromUsdNotional(t *testing.T) {
	// $25 at $50.00 = 0.5 HYPE
	got, err := FromUsdNotional(uint256.MustFromDecimal("25000000000000000000"), uint256.MustFromDecimal("5000000000"), 18)
	if err != nil {
		t.Fatalf("FromUsdNotional() error = %v", err)
	}
	if got.Dec() != "500000000000000000" {
		t.Errorf("FromUsdNotional() = %s, want 500000000000000000", got.Dec())
	}

	if _, err := FromUsdNotional(uint256.NewInt(1), uint256.NewInt(0), 18); !errors.Is(err, ErrZeroPrice) {
		t.Errorf("FromUsdNotional(zero price) error = %v, want ErrZeroPrice", err)
	}
}

func TestToOrderSize(t *testing.T) {
	// $25 at $50.00 with szDecimals 8 = 0.5 in size units = 5e7
	got, err := ToOrderSize(uint256.MustFromDecimal("25000000000000000000"), uint256.MustFromDecimal("5000000000"), 8)
	if err != nil {
		t.Fatalf("ToOrderSize() error = %v", err)
	}
	if got.Dec() != "50000000" {
		t.Errorf("ToOrderSize() = %s, want 50000000", got.Dec())
	}

	if _, err := ToOrderSize(uint256.NewInt(1), uint256.NewInt(0), 8); !errors.Is(err, ErrZeroPrice) {
		t.Errorf("ToOrderSize(zero price) error = %v, want ErrZeroPrice", err)
	}
}

func TestRoundTripNeverGains(t *testing.T) {
	// native -> usd -> native must never exceed the original
	price := uint256.MustFromDecimal("5000000123") // awkward price forces remainders
	amounts := []string{"1", "999999999999999999", "500000000000000000", "123456789012345678"}
	for _, a := range amounts {
		native := uint256.MustFromDecimal(a)
		usd, err := ToUsdNotional(native, price, 18)
		if err != nil {
			t.Fatalf("ToUsdNotional(%s): %v", a, err)
		}
		back, err := FromUsdNotional(usd, price, 18)
		if err != nil {
			t.Fatalf("FromUsdNotional(%s): %v", a, err)
		}
		if back.Gt(native) {
			t.Errorf("round trip of %s gained value: %s", a, back.Dec())
		}
	}
}

func TestCheckMinNotional(t *testing.T) {
	// $10 minimum, config denominated 1e8
	acct := NewAccountant(uint256.MustFromDecimal("1000000000"), 100, 50)

	tests := []struct {
		name    string
		usd1e18 string
		wantErr bool
	}{
		{name: "well above", usd1e18: "25000000000000000000", wantErr: false},
		{name: "exactly at minimum", usd1e18: "10000000000000000000", wantErr: false},
		{name: "one unit below", usd1e18: "9999999999999999999", wantErr: true},
		{name: "zero", usd1e18: "0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := acct.CheckMinNotional(uint256.MustFromDecimal(tt.usd1e18))
			if tt.wantErr && !errors.Is(err, ErrBelowMinNotional) {
				t.Fatalf("CheckMinNotional() error = %v, want ErrBelowMinNotional", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("CheckMinNotional() error = %v", err)
			}
		})
	}
}

func TestCheckOracleDeviation(t *testing.T) {
	acct := NewAccountant(uint256.NewInt(0), 100, 50) // 1% oracle bound, 0.5% slippage

	ref := uint256.MustFromDecimal("5000000000")
	tests := []struct {
		name    string
		price   string
		wantErr bool
	}{
		{name: "equal", price: "5000000000", wantErr: false},
		{name: "exactly 1 percent above", price: "5050000000", wantErr: false},
		{name: "just over 1 percent", price: "5050500000", wantErr: true},
		{name: "1 percent below", price: "4950000000", wantErr: false},
		{name: "far below", price: "4000000000", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := acct.CheckOracleDeviation(uint256.MustFromDecimal(tt.price), ref)
			if tt.wantErr && !errors.Is(err, ErrPriceDeviationExceeded) {
				t.Fatalf("CheckOracleDeviation() error = %v, want ErrPriceDeviationExceeded", err)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("CheckOracleDeviation() error = %v", err)
			}
		})
	}

	t.Run("zero reference", func(t *testing.T) {
		if err := acct.CheckOracleDeviation(ref, uint256.NewInt(0)); !errors.Is(err, ErrZeroPrice) {
			t.Fatalf("CheckOracleDeviation(zero ref) error = %v, want ErrZeroPrice", err)
		}
	})
}

func TestCheckSlippage(t *testing.T) {
	acct := NewAccountant(uint256.NewInt(0), 100, 50) // 0.5% slippage bound

	bbo := uint256.MustFromDecimal("5000000000")
	if err := acct.CheckSlippage(uint256.MustFromDecimal("5025000000"), bbo); err != nil {
		t.Fatalf("CheckSlippage() at bound error = %v", err)
	}
	if err := acct.CheckSlippage(uint256.MustFromDecimal("5026000000"), bbo); !errors.Is(err, ErrPriceDeviationExceeded) {
		t.Fatalf("CheckSlippage() over bound error = %v, want ErrPriceDeviationExceeded", err)
	}
}
