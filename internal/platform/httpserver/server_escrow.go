package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	escrowerrors "launchpad/contexts/governance/escrow-service/domain/errors"
	escrowhttp "launchpad/contexts/governance/escrow-service/transport/http"
	"launchpad/internal/shared/ledger"
)

func (s *Server) handleLockEscrow(w http.ResponseWriter, r *http.Request) {
	voterID := resolveUserID(r)
	if voterID == "" {
		writeEscrowError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req escrowhttp.LockEscrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEscrowError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.escrows.Handler.LockHandler(r.Context(), voterID, req)
	if err != nil {
		writeEscrowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSettleWinner(w http.ResponseWriter, r *http.Request) {
	executorID := resolveUserID(r)
	if executorID == "" {
		writeEscrowError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req escrowhttp.SettleEscrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEscrowError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.escrows.Handler.SettleWinnerHandler(r.Context(), executorID, req)
	if err != nil {
		writeEscrowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSettleLoser(w http.ResponseWriter, r *http.Request) {
	executorID := resolveUserID(r)
	if executorID == "" {
		writeEscrowError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req escrowhttp.SettleEscrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeEscrowError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.escrows.Handler.SettleLoserHandler(r.Context(), executorID, req)
	if err != nil {
		writeEscrowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetEscrow(w http.ResponseWriter, r *http.Request) {
	choiceID, ok := parseChoiceID(r.PathValue("choice_id"))
	if !ok {
		writeEscrowError(w, http.StatusBadRequest, "invalid_choice_id", "choice_id must be a small integer")
		return
	}

	resp, err := s.escrows.Handler.GetEscrowHandler(
		r.Context(),
		r.PathValue("proposal_id"),
		choiceID,
		r.PathValue("voter"),
	)
	if err != nil {
		writeEscrowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListEscrows(w http.ResponseWriter, r *http.Request) {
	resp, err := s.escrows.Handler.ListEscrowsHandler(r.Context(), r.PathValue("proposal_id"))
	if err != nil {
		writeEscrowDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeEscrowDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, escrowerrors.ErrInvalidInput),
		errors.Is(err, escrowerrors.ErrInvalidChoiceID):
		writeEscrowError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, escrowerrors.ErrUnauthorized):
		writeEscrowError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, escrowerrors.ErrEscrowNotFound):
		writeEscrowError(w, http.StatusNotFound, "escrow_not_found", err.Error())
	case errors.Is(err, escrowerrors.ErrEscrowExists):
		writeEscrowError(w, http.StatusConflict, "escrow_exists", err.Error())
	case errors.Is(err, escrowerrors.ErrProposalNotActive),
		errors.Is(err, escrowerrors.ErrProposalNotExecuted),
		errors.Is(err, escrowerrors.ErrNoWinningChoice),
		errors.Is(err, escrowerrors.ErrNotWinningEscrow),
		errors.Is(err, escrowerrors.ErrIsWinningEscrow),
		errors.Is(err, escrowerrors.ErrNoStakedTokens):
		writeEscrowError(w, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeEscrowError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	default:
		writeEscrowError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeEscrowError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, escrowhttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
