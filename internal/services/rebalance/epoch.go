package rebalance

import (
	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
)

// Roll resets the limiter when now has crossed into a new epoch window.
// Returns the (possibly reset) state and whether a reset happened. The reset
// fires at most once per boundary crossing: lastEpochStart moves to now.
func Roll(state domain.EpochState, now uint64) (domain.EpochState, bool) {
	out := cloneState(state)
	if state.EpochLengthSec == 0 {
		return out, false
	}
	if now >= state.LastEpochStart+state.EpochLengthSec {
		out.LastEpochStart = now
		out.SentThisEpoch = new(uint256.Int)
		return out, true
	}
	return out, false
}

// Budget returns maxOutboundPerEpoch - sentThisEpoch, floored at zero.
func Budget(state domain.EpochState) *uint256.Int {
	if state.SentThisEpoch.Cmp(state.MaxOutboundPerEpoch) >= 0 {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(state.MaxOutboundPerEpoch, state.SentThisEpoch)
}

func cloneState(s domain.EpochState) domain.EpochState {
	return domain.EpochState{
		EpochLengthSec:      s.EpochLengthSec,
		LastEpochStart:      s.LastEpochStart,
		SentThisEpoch:       new(uint256.Int).Set(s.SentThisEpoch),
		MaxOutboundPerEpoch: new(uint256.Int).Set(s.MaxOutboundPerEpoch),
	}
}
