package ledger

import (
	"testing"

	"github.com/hxuan190/vault-engine/internal/domain"
)

func nav(external, cash string) domain.NavSnapshot {
	return domain.NavSnapshot{
		ExternalEquityUsd1e18: u(external),
		LocalCashUsd1e18:      u(cash),
	}
}

func TestPricePerShare(t *testing.T) {
	tests := []struct {
		name   string
		nav    domain.NavSnapshot
		supply string
		want   string
	}{
		// zero supply bootstraps at exactly 1e18 regardless of NAV
		{name: "zero supply", nav: nav("0", "0"), supply: "0", want: "1000000000000000000"},
		{name: "zero supply nonzero nav", nav: nav("5", "5"), supply: "0", want: "1000000000000000000"},
		{name: "nav equals supply", nav: nav("0", "1000"), supply: "1000", want: "1000000000000000000"},
		{name: "nav double supply", nav: nav("1000", "1000"), supply: "1000", want: "2000000000000000000"},
		{name: "floors", nav: nav("0", "10"), supply: "3", want: "3333333333333333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PricePerShare(tt.nav, u(tt.supply))
			if err != nil {
				t.Fatalf("PricePerShare() error = %v", err)
			}
			if got.Dec() != tt.want {
				t.Errorf("PricePerShare() = %s, want %s", got.Dec(), tt.want)
			}
		})
	}
}

func TestSharesForDeposit(t *testing.T) {
	tests := []struct {
		name     string
		usd1e18  string
		pps1e18  string
		supply   string
		decimals uint8
		want     string
	}{
		// bootstrap: $100 at 8 share decimals mints 100e8
		{name: "bootstrap", usd1e18: "100000000000000000000", pps1e18: "1000000000000000000", supply: "0", decimals: 8, want: "10000000000"},
		// pps 1.0: $25 mints 25e8
		{name: "par pps", usd1e18: "25000000000000000000", pps1e18: "1000000000000000000", supply: "1", decimals: 8, want: "2500000000"},
		// pps 2.0 halves the shares
		{name: "double pps", usd1e18: "25000000000000000000", pps1e18: "2000000000000000000", supply: "1", decimals: 8, want: "1250000000"},
		// awkward pps floors
		{name: "floors", usd1e18: "1000000000000000000", pps1e18: "3000000000000000000", supply: "1", decimals: 8, want: "33333333"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SharesForDeposit(u(tt.usd1e18), u(tt.pps1e18), u(tt.supply), tt.decimals)
			if err != nil {
				t.Fatalf("SharesForDeposit() error = %v", err)
			}
			if got.Dec() != tt.want {
				t.Errorf("SharesForDeposit() = %s, want %s", got.Dec(), tt.want)
			}
		})
	}
}

func TestUsdForShares(t *testing.T) {
	// 25e8 shares at pps 1.0 redeem $25
	got, err := UsdForShares(u("2500000000"), u("1000000000000000000"), 8)
	if err != nil {
		t.Fatalf("UsdForShares() error = %v", err)
	}
	if got.Dec() != "25000000000000000000" {
		t.Errorf("UsdForShares() = %s, want 25000000000000000000", got.Dec())
	}
}

func TestDepositRedeemNeverGains(t *testing.T) {
	// shares minted for a deposit never redeem for more than the deposit
	pps := u("1234567891234567891")
	deposits := []string{"1000000000000000000", "99999999999999999999", "123456789123456789"}
	for _, d := range deposits {
		usd := u(d)
		shares, err := SharesForDeposit(usd, pps, u("1"), 8)
		if err != nil {
			t.Fatalf("SharesForDeposit(%s): %v", d, err)
		}
		back, err := UsdForShares(shares, pps, 8)
		if err != nil {
			t.Fatalf("UsdForShares(%s): %v", d, err)
		}
		if back.Gt(usd) {
			t.Errorf("deposit %s redeems %s, value created", d, back.Dec())
		}
	}
}
