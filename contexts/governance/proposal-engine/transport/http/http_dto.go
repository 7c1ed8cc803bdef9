package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InitializeRegistryRequest struct {
	Mint        string `json:"mint"`
	TokenName   string `json:"token_name"`
	TokenSymbol string `json:"token_symbol"`
}

type RegistryResponse struct {
	Mint              string `json:"mint"`
	Authority         string `json:"authority"`
	TokenName         string `json:"token_name"`
	TokenSymbol       string `json:"token_symbol"`
	GovernanceEnabled bool   `json:"governance_enabled"`
}

type InitializeGovernanceRequest struct {
	Mint                        string `json:"mint"`
	Name                        string `json:"name"`
	VotingPeriodSeconds         int64  `json:"voting_period_seconds"`
	MinVoteThreshold            uint64 `json:"min_vote_threshold"`
	ProposalThreshold           uint64 `json:"proposal_threshold"`
	ProposalThresholdPercentage uint8  `json:"proposal_threshold_percentage"`
	ProposalFee                 uint64 `json:"proposal_fee"`
}

type GovernanceResponse struct {
	Mint                        string `json:"mint"`
	Authority                   string `json:"authority"`
	Name                        string `json:"name"`
	ProposalCount               uint64 `json:"proposal_count"`
	VotingPeriodSeconds         int64  `json:"voting_period_seconds"`
	MinVoteThreshold            uint64 `json:"min_vote_threshold"`
	ProposalThreshold           uint64 `json:"proposal_threshold"`
	ProposalThresholdPercentage uint8  `json:"proposal_threshold_percentage"`
	ProposalFee                 uint64 `json:"proposal_fee"`
	Active                      bool   `json:"active"`
}

type CreateProposalRequest struct {
	Mint                  string          `json:"mint"`
	Title                 string          `json:"title"`
	Description           string          `json:"description,omitempty"`
	Choices               []string        `json:"choices"`
	VotingDurationSeconds *int64          `json:"voting_duration_seconds,omitempty"`
	ExecutionType         string          `json:"execution_type,omitempty"`
	ExecutionPayload      json.RawMessage `json:"execution_payload,omitempty"`
	FeeCollector          string          `json:"fee_collector"`
}

type ProposalResponse struct {
	ProposalID    string   `json:"proposal_id"`
	Sequence      uint64   `json:"sequence"`
	Mint          string   `json:"mint"`
	Proposer      string   `json:"proposer"`
	Title         string   `json:"title"`
	Description   string   `json:"description,omitempty"`
	Choices       []string `json:"choices"`
	VoteCounts    []uint64 `json:"vote_counts"`
	Status        string   `json:"status"`
	ExecutionType string   `json:"execution_type"`
	CreatedAt     string   `json:"created_at"`
	EndsAt        string   `json:"ends_at"`
	WinningChoice *uint8   `json:"winning_choice,omitempty"`
}

type TallyResponse struct {
	ProposalID    string   `json:"proposal_id"`
	Sequence      uint64   `json:"sequence"`
	Status        string   `json:"status"`
	Choices       []string `json:"choices"`
	VoteCounts    []uint64 `json:"vote_counts"`
	TotalVotes    uint64   `json:"total_votes"`
	LeadingChoice uint8    `json:"leading_choice"`
	WinningChoice *uint8   `json:"winning_choice,omitempty"`
}

type ProposalListResponse struct {
	Items []ProposalResponse `json:"items"`
}
