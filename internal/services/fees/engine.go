package fees

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/hxuan190/vault-engine/internal/domain"
	"github.com/hxuan190/vault-engine/internal/services/fixedpoint"
)

var (
	ErrInvalidFeeBps    = errors.New("fee bps out of range")
	ErrUnsortedTiers    = errors.New("withdraw fee tiers not ascending")
	ErrNilTierThreshold = errors.New("nil tier threshold")
)

const bpsDenom = 10000

var u256BpsDenom = uint256.NewInt(bpsDenom)

// ApplyFee splits amount into (net, fee) with fee = amount * bps / 10000,
// floor. net + fee == amount exactly for every bps in [0, 10000]; this is a
// pure function so the estimator and the settlement path cannot diverge.
func ApplyFee(amount *uint256.Int, bps uint16) (net, fee *uint256.Int, err error) {
	if bps > bpsDenom {
		return nil, nil, fmt.Errorf("%w: %d", ErrInvalidFeeBps, bps)
	}
	fee, err = fixedpoint.MulDiv(amount, uint256.NewInt(uint64(bps)), u256BpsDenom)
	if err != nil {
		return nil, nil, err
	}
	net = new(uint256.Int).Sub(amount, fee)
	return net, fee, nil
}

// ValidateSchedule checks all bps bounds and the tier ordering invariant.
func ValidateSchedule(s domain.FeeSchedule) error {
	for _, bps := range []uint16{s.DepositFeeBps, s.WithdrawFeeBps, s.AutoDeployBps} {
		if bps > bpsDenom {
			return fmt.Errorf("%w: %d", ErrInvalidFeeBps, bps)
		}
	}
	var prev *uint256.Int
	for _, tier := range s.WithdrawTiers {
		if tier.Threshold == nil {
			return ErrNilTierThreshold
		}
		if tier.FeeBps > bpsDenom {
			return fmt.Errorf("%w: %d", ErrInvalidFeeBps, tier.FeeBps)
		}
		if prev != nil && !prev.Lt(tier.Threshold) {
			return ErrUnsortedTiers
		}
		prev = tier.Threshold
	}
	return nil
}

// WithdrawFeeBpsForAmount selects the withdraw fee tier for a gross amount.
// Tie-break: the first tier whose threshold is >= amount (inclusive) wins;
// amounts above every threshold use the last tier; an empty table falls back
// to the flat withdraw fee.
func WithdrawFeeBpsForAmount(s domain.FeeSchedule, grossAmount *uint256.Int) uint16 {
	if len(s.WithdrawTiers) == 0 {
		return s.WithdrawFeeBps
	}
	for _, tier := range s.WithdrawTiers {
		if !grossAmount.Gt(tier.Threshold) {
			return tier.FeeBps
		}
	}
	return s.WithdrawTiers[len(s.WithdrawTiers)-1].FeeBps
}
