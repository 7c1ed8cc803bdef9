package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type LockEscrowRequest struct {
	ProposalID   string `json:"proposal_id"`
	ChoiceID     uint8  `json:"choice_id"`
	Amount       uint64 `json:"amount"`
	UseBoost     bool   `json:"use_boost"`
	FeeCollector string `json:"fee_collector"`
}

type SettleEscrowRequest struct {
	ProposalID   string `json:"proposal_id"`
	ChoiceID     uint8  `json:"choice_id"`
	Voter        string `json:"voter"`
	FeeCollector string `json:"fee_collector"`
}

type EscrowResponse struct {
	EscrowID     string `json:"escrow_id"`
	ProposalID   string `json:"proposal_id"`
	ChoiceID     uint8  `json:"choice_id"`
	Voter        string `json:"voter"`
	Mint         string `json:"mint"`
	LockedAmount uint64 `json:"locked_amount"`
	VoteWeight   uint64 `json:"vote_weight"`
	Boosted      bool   `json:"boosted"`
	CreatedAt    string `json:"created_at"`
}

type SettlementResponse struct {
	ProposalID string `json:"proposal_id"`
	ChoiceID   uint8  `json:"choice_id"`
	Voter      string `json:"voter"`
	Released   uint64 `json:"released"`
}

type EscrowListResponse struct {
	Items []EscrowResponse `json:"items"`
}
