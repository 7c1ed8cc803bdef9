package entities

import (
	"strconv"
	"time"
)

// ChoiceEscrow records one voter's locked position against one choice of a
// proposal. The triple (proposal, choice, voter) is unique; the locked
// principal sits in a dedicated vault account until settlement.
type ChoiceEscrow struct {
	EscrowID     string
	ProposalID   string
	ChoiceID     uint8
	Voter        string
	Mint         string
	LockedAmount uint64
	VoteWeight   uint64
	Boosted      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// VaultAddress is the ledger account holding this escrow's principal.
func (e ChoiceEscrow) VaultAddress() string {
	return EscrowVaultAddress(e.ProposalID, e.ChoiceID, e.Voter)
}

// EscrowVaultAddress derives the per-escrow vault account.
func EscrowVaultAddress(proposalID string, choiceID uint8, voter string) string {
	return "choice_escrow_vault:" + proposalID + ":" + strconv.Itoa(int(choiceID)) + ":" + voter
}

// VaultAuthority names the protocol-side authority for a vault's debits.
func VaultAuthority(vault string) string {
	return vault + ":authority"
}
