package oracle

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/services/fixedpoint"
)

var (
	ErrUnknownAsset = errors.New("unknown asset")
	ErrStalePrice   = errors.New("stale price")
)

// priceDecimals is the canonical fixed-point base for USD prices.
const priceDecimals = 8

// Normalizer turns raw venue price reads into canonical 1e8 USD prices.
// A raw price carries implicit decimals equal to the token's price exponent
// (weiDecimals - szDecimals); normalization rescales that to 8 decimals.
//
// Policy: zero raw prices and reads older than maxAgeSec hard-fail with
// ErrStalePrice. A dead feed must never propagate a zero valuation into PPS.
type Normalizer struct {
	tokens    domain.TokenRegistry
	maxAgeSec int64
}

func NewNormalizer(tokens domain.TokenRegistry, maxAgeSec int64) *Normalizer {
	return &Normalizer{tokens: tokens, maxAgeSec: maxAgeSec}
}

// NormalizeRaw rescales a raw venue price for the given token metadata into
// the 1e8 canonical form, floor rounding on scale-down.
func NormalizeRaw(raw uint64, info domain.TokenInfo) (*uint256.Int, error) {
	if raw == 0 {
		return nil, ErrStalePrice
	}
	exponent := info.PriceExponent()
	p := uint256.NewInt(raw)
	if exponent < 0 {
		// Raw price has negative implicit decimals: shift to zero first.
		scaled, err := fixedpoint.Scale(p, 0, -exponent)
		if err != nil {
			return nil, fmt.Errorf("%w: exponent %d", fixedpoint.ErrInvalidScale, exponent)
		}
		p = scaled
		exponent = 0
	}
	out, err := fixedpoint.Scale(p, exponent, priceDecimals)
	if err != nil {
		return nil, fmt.Errorf("%w: exponent %d", err, exponent)
	}
	return out, nil
}

// Normalize resolves token metadata for the read, checks staleness and
// produces the canonical OraclePrice. now is the snapshot timestamp; mixing
// reads from different snapshots is the caller's bug to avoid.
func (n *Normalizer) Normalize(read domain.OracleRead, now int64) (domain.OraclePrice, error) {
	info, ok := n.tokens[read.Asset]
	if !ok {
		return domain.OraclePrice{}, fmt.Errorf("%w: %s", ErrUnknownAsset, read.Asset)
	}
	if n.maxAgeSec > 0 && now-read.Timestamp > n.maxAgeSec {
		return domain.OraclePrice{}, fmt.Errorf("%w: %s read is %ds old", ErrStalePrice, read.Asset, now-read.Timestamp)
	}
	normalized, err := NormalizeRaw(read.Raw, info)
	if err != nil {
		return domain.OraclePrice{}, fmt.Errorf("%s: %w", read.Asset, err)
	}
	return domain.OraclePrice{
		Asset:         read.Asset,
		Raw:           read.Raw,
		Normalized1e8: normalized,
		Timestamp:     read.Timestamp,
	}, nil
}

// SetToken registers or replaces token metadata. Cached scalars derived from
// the old exponent are invalid after this call.
func (n *Normalizer) SetToken(info domain.TokenInfo) {
	n.tokens[info.Symbol] = info
}

// Token returns the registered metadata for an asset.
func (n *Normalizer) Token(asset string) (domain.TokenInfo, error) {
	info, ok := n.tokens[asset]
	if !ok {
		return domain.TokenInfo{}, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	return info, nil
}
