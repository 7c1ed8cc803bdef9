package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	feeerrors "launchpad/contexts/finance-core/fee-engine/domain/errors"
	feehttp "launchpad/contexts/finance-core/fee-engine/transport/http"
)

func (s *Server) handleInitializeConfig(w http.ResponseWriter, r *http.Request) {
	adminID := resolveUserID(r)
	if adminID == "" {
		writeFeeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req feehttp.InitializeConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFeeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.fees.Handler.InitializeConfigHandler(r.Context(), adminID, req)
	if err != nil {
		writeFeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateFeeCollector(w http.ResponseWriter, r *http.Request) {
	callerID := resolveUserID(r)
	if callerID == "" {
		writeFeeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req feehttp.UpdateFeeCollectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFeeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.fees.Handler.UpdateFeeCollectorHandler(r.Context(), callerID, req)
	if err != nil {
		writeFeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleResolveCollector(w http.ResponseWriter, r *http.Request) {
	resp, err := s.fees.Handler.ResolveCollectorHandler(r.Context())
	if err != nil {
		writeFeeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeFeeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feeerrors.ErrInvalidInput):
		writeFeeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, feeerrors.ErrUnauthorized):
		writeFeeError(w, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, feeerrors.ErrConfigExists):
		writeFeeError(w, http.StatusConflict, "config_exists", err.Error())
	case errors.Is(err, feeerrors.ErrConfigNotFound):
		writeFeeError(w, http.StatusNotFound, "config_not_found", err.Error())
	case errors.Is(err, feeerrors.ErrInvalidFeeCollector):
		writeFeeError(w, http.StatusUnprocessableEntity, "invalid_fee_collector", err.Error())
	default:
		writeFeeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeFeeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, feehttp.ErrorResponse{
		Code:    code,
		Message: message,
	})
}
