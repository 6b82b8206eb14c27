// Package venue holds the boundary contracts to the external order-book
// venue and treasury. The engine treats every value crossing these
// interfaces as untrusted input subject to its own staleness and deviation
// checks.
package venue

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
)

// OracleReader exposes raw venue price reads and token metadata.
type OracleReader interface {
	GetRawPrice(ctx context.Context, asset string) (domain.OracleRead, error)
	GetBBO(ctx context.Context, asset string) (bid, ask uint64, err error)
	GetTokenInfo(ctx context.Context, asset string) (domain.TokenInfo, error)
}

// Treasury holds local native-asset cash. The engine only reads balances; a
// withdrawal is immediately payable when the local balance covers it,
// otherwise it queues behind the next rebalance.
type Treasury interface {
	LocalBalance(ctx context.Context, asset string) (*uint256.Int, error)
}

// PositionReader exposes the vault's venue-side holdings as USD 1e18
// notional per asset. External equity is the sum over all positions.
type PositionReader interface {
	Positions(ctx context.Context, vaultID string) (map[string]*uint256.Int, error)
}

// OrderSink accepts rebalance orders fire-and-forget. Settlement feeds back
// into the next epoch's balance reads; the engine never awaits it.
type OrderSink interface {
	Submit(ctx context.Context, vaultID string, orders []domain.RebalanceOrder) error
}
