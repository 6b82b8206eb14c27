package rebalance

import (
	"errors"
	"fmt"
	"sort"

	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/services/fixedpoint"
)

var (
	ErrEpochLimitExceeded = errors.New("epoch outbound limit exceeded")
	ErrInvalidTargets     = errors.New("target weights must sum to 10000 bps")
)

// Phase tracks where a rebalance cycle is. Cycles are externally triggered;
// Idle is both the initial and terminal phase.
type Phase string

const (
	PhaseIdle           Phase = "IDLE"
	PhaseComputing      Phase = "COMPUTING"
	PhaseRateLimitCheck Phase = "RATE_LIMIT_CHECK"
	PhaseEmitting       Phase = "EMITTING"
)

var u256Bps = uint256.NewInt(10000)

// Plan is the outcome of one rebalance cycle: the clamped order sequence plus
// the updated limiter state the caller must persist.
type Plan struct {
	Orders     []domain.RebalanceOrder
	State      domain.EpochState
	EpochReset bool
	Clamped    bool
}

// Planner computes buy/sell deltas from current vs target composition.
// deadbandBps is the minimum per-asset drift (as bps of NAV) worth trading;
// smaller drifts are skipped to avoid churn.
type Planner struct {
	deadbandBps uint16
	observer    func(Phase)
}

func NewPlanner(deadbandBps uint16) *Planner {
	return &Planner{deadbandBps: deadbandBps}
}

// SetPhaseObserver installs a callback invoked on every phase transition.
func (p *Planner) SetPhaseObserver(fn func(Phase)) {
	p.observer = fn
}

func (p *Planner) enter(phase Phase) {
	if p.observer != nil {
		p.observer(phase)
	}
}

// Compute runs one full cycle: Idle -> Computing -> RateLimitCheck ->
// Emitting -> Idle. current maps asset to held USD 1e18 notional; targets are
// bps weights over the same NAV. If the cumulative outbound exceeds the epoch
// budget, per-asset deltas are scaled by budget/total (floor) so relative
// proportions hold and sentThisEpoch never exceeds the cap. A non-empty plan
// against a zero budget fails with ErrEpochLimitExceeded and leaves the state
// untouched.
func (p *Planner) Compute(
	current map[string]*uint256.Int,
	targets domain.PortfolioTarget,
	state domain.EpochState,
	now uint64,
) (*Plan, error) {
	if !targets.Validate() {
		return nil, ErrInvalidTargets
	}

	p.enter(PhaseComputing)

	nav := new(uint256.Int)
	for _, usd := range current {
		nav.Add(nav, usd)
	}

	deadbandUsd, err := fixedpoint.MulDiv(nav, uint256.NewInt(uint64(p.deadbandBps)), u256Bps)
	if err != nil {
		return nil, err
	}

	// Deterministic asset order: union of held and targeted assets, sorted.
	assets := make([]string, 0, len(current)+len(targets))
	seen := make(map[string]struct{}, len(current)+len(targets))
	for a := range current {
		assets = append(assets, a)
		seen[a] = struct{}{}
	}
	for a := range targets {
		if _, ok := seen[a]; !ok {
			assets = append(assets, a)
		}
	}
	sort.Strings(assets)

	type delta struct {
		asset string
		side  domain.OrderSide
		usd   *uint256.Int
	}
	deltas := make([]delta, 0, len(assets))
	total := new(uint256.Int)
	for _, asset := range assets {
		held := current[asset]
		if held == nil {
			held = new(uint256.Int)
		}
		target, err := fixedpoint.MulDiv(nav, uint256.NewInt(uint64(targets[asset])), u256Bps)
		if err != nil {
			return nil, err
		}
		d := delta{asset: asset}
		diff := new(uint256.Int)
		if held.Gt(target) {
			diff.Sub(held, target)
			d.side = domain.SideSell
		} else {
			diff.Sub(target, held)
			d.side = domain.SideBuy
		}
		if diff.IsZero() || diff.Lt(deadbandUsd) {
			continue
		}
		d.usd = diff
		deltas = append(deltas, d)
		total.Add(total, diff)
	}

	p.enter(PhaseRateLimitCheck)

	newState, reset := Roll(state, now)
	plan := &Plan{State: newState, EpochReset: reset}
	if len(deltas) == 0 {
		p.enter(PhaseIdle)
		return plan, nil
	}

	budget := Budget(newState)
	clamped := false
	if total.Gt(budget) {
		if budget.IsZero() {
			return nil, fmt.Errorf("%w: sent %s of %s", ErrEpochLimitExceeded,
				newState.SentThisEpoch.Dec(), newState.MaxOutboundPerEpoch.Dec())
		}
		clamped = true
	}

	p.enter(PhaseEmitting)

	emitted := new(uint256.Int)
	orders := make([]domain.RebalanceOrder, 0, len(deltas))
	for _, d := range deltas {
		usd := d.usd
		if clamped {
			usd, err = fixedpoint.MulDiv(d.usd, budget, total)
			if err != nil {
				return nil, err
			}
			if usd.IsZero() {
				continue
			}
		}
		orders = append(orders, domain.RebalanceOrder{
			Asset:           d.asset,
			Side:            d.side,
			UsdNotional1e18: usd,
		})
		emitted.Add(emitted, usd)
	}

	plan.Orders = orders
	plan.Clamped = clamped
	plan.State.SentThisEpoch.Add(plan.State.SentThisEpoch, emitted)

	p.enter(PhaseIdle)
	return plan, nil
}
