package venue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/hxuan190/vault-engine/internal/domain"
)

var ErrNoPriceFeed = errors.New("no price feed for asset")

// MemoryVenue is a push-fed in-process implementation of OracleReader,
// Treasury and OrderSink. Prices, metadata and balances are fed through the
// admin surface; production wire adapters replace this behind the same
// interfaces.
type MemoryVenue struct {
	mu        sync.RWMutex
	prices    map[string]domain.OracleRead
	bbos      map[string][2]uint64
	tokens    map[string]domain.TokenInfo
	balances  map[string]*uint256.Int
	positions map[string]map[string]*uint256.Int
}

func NewMemoryVenue() *MemoryVenue {
	return &MemoryVenue{
		prices:    make(map[string]domain.OracleRead),
		bbos:      make(map[string][2]uint64),
		tokens:    make(map[string]domain.TokenInfo),
		balances:  make(map[string]*uint256.Int),
		positions: make(map[string]map[string]*uint256.Int),
	}
}

func (v *MemoryVenue) GetRawPrice(_ context.Context, asset string) (domain.OracleRead, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	read, ok := v.prices[asset]
	if !ok {
		return domain.OracleRead{}, fmt.Errorf("%w: %s", ErrNoPriceFeed, asset)
	}
	return read, nil
}

func (v *MemoryVenue) GetBBO(_ context.Context, asset string) (uint64, uint64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if bbo, ok := v.bbos[asset]; ok {
		return bbo[0], bbo[1], nil
	}
	// No quoted book: fall back to the last trade price on both sides.
	read, ok := v.prices[asset]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", ErrNoPriceFeed, asset)
	}
	return read.Raw, read.Raw, nil
}

func (v *MemoryVenue) GetTokenInfo(_ context.Context, asset string) (domain.TokenInfo, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	info, ok := v.tokens[asset]
	if !ok {
		return domain.TokenInfo{}, fmt.Errorf("no token info for %s", asset)
	}
	return info, nil
}

func (v *MemoryVenue) LocalBalance(_ context.Context, asset string) (*uint256.Int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if b, ok := v.balances[asset]; ok {
		return new(uint256.Int).Set(b), nil
	}
	return new(uint256.Int), nil
}

func (v *MemoryVenue) Positions(_ context.Context, vaultID string) (map[string]*uint256.Int, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make(map[string]*uint256.Int)
	for asset, usd := range v.positions[vaultID] {
		out[asset] = new(uint256.Int).Set(usd)
	}
	return out, nil
}

func (v *MemoryVenue) Submit(_ context.Context, vaultID string, orders []domain.RebalanceOrder) error {
	for _, o := range orders {
		log.Info().
			Str("vault", vaultID).
			Str("asset", o.Asset).
			Str("side", string(o.Side)).
			Str("usdNotional1e18", o.UsdNotional1e18.Dec()).
			Msg("[venue] order emitted")
	}
	return nil
}

// PushPrice feeds a raw price read, stamped now when ts is zero.
func (v *MemoryVenue) PushPrice(asset string, raw uint64, ts int64) {
	if ts == 0 {
		ts = time.Now().Unix()
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.prices[asset] = domain.OracleRead{Asset: asset, Raw: raw, Timestamp: ts}
}

func (v *MemoryVenue) PushBBO(asset string, bid, ask uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.bbos[asset] = [2]uint64{bid, ask}
}

func (v *MemoryVenue) PushTokenInfo(info domain.TokenInfo) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.tokens[info.Symbol] = info
}

func (v *MemoryVenue) PushBalance(asset string, balance *uint256.Int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.balances[asset] = new(uint256.Int).Set(balance)
}

func (v *MemoryVenue) PushPosition(vaultID, asset string, usd1e18 *uint256.Int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.positions[vaultID] == nil {
		v.positions[vaultID] = make(map[string]*uint256.Int)
	}
	v.positions[vaultID][asset] = new(uint256.Int).Set(usd1e18)
}
