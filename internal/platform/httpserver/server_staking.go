package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	stakingerrors "launchpad/contexts/staking/staking-pool/domain/errors"
	stakinghttp "launchpad/contexts/staking/staking-pool/transport/http"
	"launchpad/internal/shared/ledger"
)

func (s *Server) handleInitializePool(w http.ResponseWriter, r *http.Request) {
	authorityID := resolveUserID(r)
	if authorityID == "" {
		writeStakingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req stakinghttp.InitializePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.InitializePoolHandler(r.Context(), authorityID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	stakerID := resolveUserID(r)
	if stakerID == "" {
		writeStakingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req stakinghttp.StakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.StakeHandler(r.Context(), stakerID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnstake(w http.ResponseWriter, r *http.Request) {
	stakerID := resolveUserID(r)
	if stakerID == "" {
		writeStakingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req stakinghttp.UnstakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.UnstakeHandler(r.Context(), stakerID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleClaimRewards(w http.ResponseWriter, r *http.Request) {
	stakerID := resolveUserID(r)
	if stakerID == "" {
		writeStakingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	mint := r.URL.Query().Get("mint")
	if mint == "" {
		writeStakingError(w, http.StatusBadRequest, "missing_mint", "mint query parameter is required")
		return
	}

	resp, err := s.staking.Handler.ClaimRewardsHandler(r.Context(), stakerID, mint)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleToggleAutoCompound(w http.ResponseWriter, r *http.Request) {
	stakerID := resolveUserID(r)
	if stakerID == "" {
		writeStakingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req stakinghttp.ToggleAutoCompoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.ToggleAutoCompoundHandler(r.Context(), stakerID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDistributeRewards(w http.ResponseWriter, r *http.Request) {
	authorityID := resolveUserID(r)
	if authorityID == "" {
		writeStakingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req stakinghttp.DistributeRewardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeStakingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.DistributeRewardsHandler(r.Context(), authorityID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	resp, err := s.staking.Handler.GetPoolHandler(r.Context(), r.PathValue("mint"))
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetStaker(w http.ResponseWriter, r *http.Request) {
	resp, err := s.staking.Handler.GetStakerHandler(r.Context(), r.PathValue("staker"), r.PathValue("mint"))
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeStakingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stakingerrors.ErrInvalidInput):
		writeStakingError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, stakingerrors.ErrUnauthorized):
		writeStakingError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, stakingerrors.ErrPoolNotFound),
		errors.Is(err, stakingerrors.ErrStakerNotFound):
		writeStakingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, stakingerrors.ErrPoolExists):
		writeStakingError(w, http.StatusConflict, "pool_exists", err.Error())
	case errors.Is(err, stakingerrors.ErrInsufficientStakingAmount),
		errors.Is(err, stakingerrors.ErrInsufficientStakedTokens),
		errors.Is(err, stakingerrors.ErrMinimumStakingPeriodNotMet):
		writeStakingError(w, http.StatusUnprocessableEntity, "precondition_failed", err.Error())
	case errors.Is(err, ledger.ErrInsufficientFunds):
		writeStakingError(w, http.StatusUnprocessableEntity, "insufficient_funds", err.Error())
	default:
		writeStakingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeStakingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, stakinghttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
