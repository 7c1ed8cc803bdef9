package entities

import (
	"encoding/json"
	"time"
)

type ProposalStatus string

const (
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusExecuted ProposalStatus = "executed"
	// ProposalStatusRejected is declared for payload compatibility with
	// older records; no current transition produces it.
	ProposalStatusRejected ProposalStatus = "rejected"
)

type ExecutionType string

const (
	ExecutionTypeNone           ExecutionType = "none"
	ExecutionTypeUpdateSettings ExecutionType = "update_settings"
)

const (
	MinChoices = 2
	MaxChoices = 10

	// MinVotingDurationSeconds bounds caller-supplied custom durations.
	MinVotingDurationSeconds = 60

	MaxTitleLen       = 100
	MaxDescriptionLen = 500
	MaxChoiceLen      = 50
	MaxNameLen        = 32
	MaxSymbolLen      = 8
)

// TokenRegistry records a launched token and its controlling authority.
type TokenRegistry struct {
	Mint              string
	Authority         string
	TokenName         string
	TokenSymbol       string
	LaunchedAt        time.Time
	GovernanceEnabled bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Governance is the per-mint governance configuration. ProposalCount is the
// dense id counter: each proposal takes the pre-increment value.
type Governance struct {
	Mint                        string
	Authority                   string
	Name                        string
	ProposalCount               uint64
	VotingPeriodSeconds         int64
	MinVoteThreshold            uint64
	ProposalThreshold           uint64
	ProposalThresholdPercentage uint8
	ProposalFee                 uint64
	Active                      bool
	CreatedAt                   time.Time
	UpdatedAt                   time.Time
}

// Proposal is a multi-choice ballot. VoteCounts always has one entry per
// choice; under stake boosting the counts can exceed the locked principal.
type Proposal struct {
	ProposalID       string
	Sequence         uint64
	Mint             string
	Proposer         string
	TokenCreator     string
	Title            string
	Description      string
	Choices          []string
	VoteCounts       []uint64
	Status           ProposalStatus
	ExecutionType    ExecutionType
	ExecutionPayload json.RawMessage
	CreatedAt        time.Time
	EndsAt           time.Time
	WinningChoice    *uint8
	UpdatedAt        time.Time
}

// WinnerIndex returns the first maximum scanning choices in ascending
// order; ties break toward the lowest index.
func (p Proposal) WinnerIndex() uint8 {
	var maxVotes uint64
	var winner uint8
	for i, votes := range p.VoteCounts {
		if votes > maxVotes {
			maxVotes = votes
			winner = uint8(i)
		}
	}
	return winner
}

// GovernanceSettingsPayload is the opaque execution payload of an
// update-settings proposal.
type GovernanceSettingsPayload struct {
	VotingPeriodSeconds         int64  `json:"voting_period_seconds"`
	MinVoteThreshold            uint64 `json:"min_vote_threshold"`
	ProposalThreshold           uint64 `json:"proposal_threshold"`
	ProposalThresholdPercentage uint8  `json:"proposal_threshold_percentage"`
}
