// Package feesplit implements the protocol fee schedule shared by every
// value-moving operation: a 1% fee on the gross amount, split 70/30 between
// the protocol fee collector and the staking reward vault.
//
// Both shares floor independently, so Protocol+Staking can fall short of the
// fee by up to one unit. The shortfall is never redistributed; it simply is
// not transferred to anyone.
package feesplit

const (
	// FeeDivisor yields the 1% protocol fee.
	FeeDivisor = 100

	// ProtocolShareNumerator and StakingShareNumerator split the fee over
	// ShareDivisor.
	ProtocolShareNumerator = 70
	StakingShareNumerator  = 30
	ShareDivisor           = 100
)

// Breakdown is the result of splitting a gross amount.
type Breakdown struct {
	Fee      uint64
	Protocol uint64
	Staking  uint64
}

// Fee returns the protocol fee for a gross amount. Amounts under 100 units
// round to a zero fee; the operation that requested the split still succeeds.
func Fee(amount uint64) uint64 {
	return amount / FeeDivisor
}

// ProtocolShare returns the collector's portion of a fee.
func ProtocolShare(fee uint64) uint64 {
	return fee * ProtocolShareNumerator / ShareDivisor
}

// StakingShare returns the reward vault's portion of a fee.
func StakingShare(fee uint64) uint64 {
	return fee * StakingShareNumerator / ShareDivisor
}

// Split computes the fee for a gross amount together with both shares.
func Split(amount uint64) Breakdown {
	fee := Fee(amount)
	return SplitFee(fee)
}

// SplitFee splits an already-determined fee amount, used where the fee is a
// configured flat value rather than a percentage of a moving amount.
func SplitFee(fee uint64) Breakdown {
	return Breakdown{
		Fee:      fee,
		Protocol: ProtocolShare(fee),
		Staking:  StakingShare(fee),
	}
}
