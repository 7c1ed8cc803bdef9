package votingpower

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoostBelowMinimumStake(t *testing.T) {
	assert.Equal(t, uint64(100), Boost(100, 0))
	assert.Equal(t, uint64(100), Boost(100, 99))
	assert.Equal(t, uint64(0), Boost(0, 1_000_000))
}

func TestBoostAtMinimumStakeIsNeutral(t *testing.T) {
	// ln(1) == 0, so the multiplier is exactly 1.0 at the threshold.
	assert.Equal(t, uint64(100), Boost(100, 100))
	assert.Equal(t, 1.0, Multiplier(100))
}

func TestBoostTruncatesProduct(t *testing.T) {
	// staked=150: multiplier = 1 + ln(1.5)/10 = 1.04054...
	assert.Equal(t, uint64(104), Boost(100, 150))
	assert.InDelta(t, 1.04054, Multiplier(150), 1e-4)

	// staked=1000: multiplier = 1 + ln(10)/10 = 1.23025...
	assert.Equal(t, uint64(123), Boost(100, 1000))
	assert.Equal(t, uint64(1230), Boost(1000, 1000))
}

func TestBoostCap(t *testing.T) {
	// The cap binds at staked = 100*e^20, far beyond realistic stakes.
	capStake := uint64(float64(MinStakeForBoost) * math.Exp(21))
	assert.Equal(t, 3.0, Multiplier(capStake))
	assert.Equal(t, uint64(300), Boost(100, capStake))
}

func TestBoostMonotonic(t *testing.T) {
	previous := uint64(0)
	for staked := uint64(0); staked < 100_000; staked += 997 {
		got := Boost(1_000_000, staked)
		assert.GreaterOrEqual(t, got, previous, "staked=%d", staked)
		previous = got
	}
}
