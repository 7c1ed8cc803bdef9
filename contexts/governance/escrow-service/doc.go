// Package escrowservice implements vote escrows inside the governance
// context.
//
// A voter locks tokens against one choice of an active proposal; the locked
// amount (optionally boosted by the voter's staked position) is recorded as
// vote weight. After execution the token creator settles each escrow once:
// winning principal is released to the creator net of the full fee, losing
// principal is redirected into the staking pool net of the protocol share.
// Settlement is guarded by the escrow vault's balance alone.
package escrowservice
