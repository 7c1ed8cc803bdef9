// Package proposalengine implements the proposal lifecycle inside the
// governance context.
//
// The module owns the per-mint token registry, the governance configuration
// record, and the multi-choice proposal state machine: creation behind
// balance thresholds, vote-count accumulation, and the single execute
// transition that tallies votes and optionally applies an update-settings
// payload. Fund movement and escrow custody live in sibling contexts and are
// reached through ports.
package proposalengine
