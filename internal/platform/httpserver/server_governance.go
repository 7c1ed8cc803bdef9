package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	governanceerrors "launchpad/contexts/governance/proposal-engine/domain/errors"
	governancehttp "launchpad/contexts/governance/proposal-engine/transport/http"
	"launchpad/internal/shared/ledger"
)

func (s *Server) handleInitializeRegistry(w http.ResponseWriter, r *http.Request) {
	authorityID := resolveUserID(r)
	if authorityID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.InitializeRegistryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.InitializeRegistryHandler(r.Context(), authorityID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInitializeGovernance(w http.ResponseWriter, r *http.Request) {
	authorityID := resolveUserID(r)
	if authorityID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.InitializeGovernanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.InitializeGovernanceHandler(r.Context(), authorityID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	proposerID := resolveUserID(r)
	if proposerID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGovernanceError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CreateProposalHandler(r.Context(), proposerID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleExecuteProposal(w http.ResponseWriter, r *http.Request) {
	executorID := resolveUserID(r)
	if executorID == "" {
		writeGovernanceError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	proposalID := r.PathValue("proposal_id")
	resp, err := s.governance.Handler.ExecuteProposalHandler(r.Context(), executorID, proposalID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposal_id")
	resp, err := s.governance.Handler.GetProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTally(w http.ResponseWriter, r *http.Request) {
	proposalID := r.PathValue("proposal_id")
	resp, err := s.governance.Handler.TallyHandler(r.Context(), proposalID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListProposals(w http.ResponseWriter, r *http.Request) {
	mint := r.URL.Query().Get("mint")
	if mint == "" {
		writeGovernanceError(w, http.StatusBadRequest, "missing_mint", "mint query parameter is required")
		return
	}

	resp, err := s.governance.Handler.ListProposalsHandler(r.Context(), mint)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeGovernanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, governanceerrors.ErrInvalidInput),
		errors.Is(err, governanceerrors.ErrInvalidChoicesCount),
		errors.Is(err, governanceerrors.ErrTooManyChoices),
		errors.Is(err, governanceerrors.ErrInvalidChoiceID),
		errors.Is(err, governanceerrors.ErrVotingDurationTooShort),
		errors.Is(err, governanceerrors.ErrInvalidPayload):
		writeGovernanceError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, governanceerrors.ErrUnauthorized):
		writeGovernanceError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, governanceerrors.ErrTokenRegistryNotFound),
		errors.Is(err, governanceerrors.ErrGovernanceNotFound),
		errors.Is(err, governanceerrors.ErrProposalNotFound):
		writeGovernanceError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, governanceerrors.ErrTokenRegistryExists),
		errors.Is(err, governanceerrors.ErrGovernanceExists),
		errors.Is(err, governanceerrors.ErrConflict):
		writeGovernanceError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, governanceerrors.ErrGovernanceInactive),
		errors.Is(err, governanceerrors.ErrProposalNotActive),
		errors.Is(err, governanceerrors.ErrVotingNotEnded),
		errors.Is(err, governanceerrors.ErrProposalThresholdNotMet),
		errors.Is(err, governanceerrors.ErrPercentageThresholdNotMet),
		errors.Is(err, governanceerrors.ErrVoteThresholdNotMet):
		writeGovernanceError(w, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeGovernanceError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	default:
		writeGovernanceError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGovernanceError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, governancehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
