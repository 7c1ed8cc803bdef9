// Package stakingpool implements the per-mint staking ledger inside the
// staking context.
//
// The module owns the pool record (reward balance, total staked) and the
// per-staker accounts, and performs stake/unstake with the one-day lockup,
// pro-rata reward claims with optional auto-compounding, and authority-gated
// reward distribution. Losing escrow settlements redirect principal into the
// pool through the same module.
package stakingpool
