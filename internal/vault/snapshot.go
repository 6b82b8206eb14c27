package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/metrics"
	"github.com/hxuan190/vault-engine/internal/services/ledger"
	"github.com/hxuan190/vault-engine/internal/services/notional"
)

// snapshot is one consistent batch of reads: base-asset price, BBO reference,
// local treasury cash and venue-side equity, all taken together. Estimates
// and settlement both price against a single snapshot; mixing reads from
// different snapshots would make the estimate diverge from the eventual
// settlement result.
type snapshot struct {
	now         int64
	token       domain.TokenInfo
	price       domain.OraclePrice
	bboMid1e8   *uint256.Int
	localNative *uint256.Int
	positions   map[string]*uint256.Int
	nav         domain.NavSnapshot
	pps1e18     *uint256.Int
}

func (s *Service) takeSnapshot(ctx context.Context, v *Vault) (*snapshot, error) {
	now := time.Now().Unix()

	info, err := s.normalizer.Token(v.BaseAsset)
	if err != nil {
		return nil, err
	}

	read, err := s.oracle.GetRawPrice(ctx, v.BaseAsset)
	if err != nil {
		metrics.OracleReads.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("oracle read failed: %w", err)
	}
	price, err := s.normalizer.Normalize(read, now)
	if err != nil {
		metrics.OracleReads.WithLabelValues("rejected").Inc()
		return nil, err
	}
	metrics.OracleReads.WithLabelValues("ok").Inc()

	bid, ask, err := s.oracle.GetBBO(ctx, v.BaseAsset)
	if err != nil {
		return nil, fmt.Errorf("bbo read failed: %w", err)
	}
	bidN, err := s.normalizer.Normalize(domain.OracleRead{Asset: v.BaseAsset, Raw: bid, Timestamp: now}, now)
	if err != nil {
		return nil, err
	}
	askN, err := s.normalizer.Normalize(domain.OracleRead{Asset: v.BaseAsset, Raw: ask, Timestamp: now}, now)
	if err != nil {
		return nil, err
	}
	mid := new(uint256.Int).Add(bidN.Normalized1e8, askN.Normalized1e8)
	mid.Rsh(mid, 1)

	if err := s.accountant.CheckOracleDeviation(price.Normalized1e8, mid); err != nil {
		return nil, err
	}

	localNative, err := s.treasury.LocalBalance(ctx, v.BaseAsset)
	if err != nil {
		return nil, fmt.Errorf("treasury read failed: %w", err)
	}
	localUsd, err := notional.ToUsdNotional(localNative, price.Normalized1e8, info.WeiDecimals)
	if err != nil {
		return nil, err
	}

	positions, err := s.positions.Positions(ctx, v.ID)
	if err != nil {
		return nil, fmt.Errorf("position read failed: %w", err)
	}
	externalUsd := new(uint256.Int)
	for _, usd := range positions {
		externalUsd.Add(externalUsd, usd)
	}

	nav := domain.NavSnapshot{
		ExternalEquityUsd1e18: externalUsd,
		LocalCashUsd1e18:      localUsd,
	}
	pps, err := ledger.PricePerShare(nav, v.Ledger.TotalSupply())
	if err != nil {
		return nil, err
	}

	return &snapshot{
		now:         now,
		token:       info,
		price:       price,
		bboMid1e8:   mid,
		localNative: localNative,
		positions:   positions,
		nav:         nav,
		pps1e18:     pps,
	}, nil
}
