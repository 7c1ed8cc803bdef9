// Package votingpower computes the logarithmic stake boost applied to a
// vote's tally weight. Boosting changes only what is credited to the
// proposal's vote counts; the locked principal is always recorded verbatim.
package votingpower

import "math"

const (
	// MinStakeForBoost is the staked amount below which no boost applies.
	// At exactly this stake the multiplier is 1.0 (ln(1) == 0).
	MinStakeForBoost = 100

	maxMultiplier = 3.0
	logDampening  = 10.0
)

// Boost returns the tally weight for a vote of amount backed by staked
// tokens: floor(amount * min(1 + ln(staked/100)/10, 3.0)).
//
// The logarithm is evaluated in float64 and the product truncates toward
// zero. Monotonic non-decreasing in staked; asymptotically capped at 3.0x.
func Boost(amount, staked uint64) uint64 {
	if staked < MinStakeForBoost {
		return amount
	}
	normalized := float64(staked) / float64(MinStakeForBoost)
	multiplier := 1 + math.Log(normalized)/logDampening
	if multiplier > maxMultiplier {
		multiplier = maxMultiplier
	}
	return uint64(float64(amount) * multiplier)
}

// Multiplier exposes the raw multiplier for a staked amount, used by read
// models that report a staker's current boost.
func Multiplier(staked uint64) float64 {
	if staked < MinStakeForBoost {
		return 1.0
	}
	multiplier := 1 + math.Log(float64(staked)/float64(MinStakeForBoost))/logDampening
	if multiplier > maxMultiplier {
		return maxMultiplier
	}
	return multiplier
}
