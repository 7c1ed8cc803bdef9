package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	feeengine "launchpad/contexts/finance-core/fee-engine"
	escrowservice "launchpad/contexts/governance/escrow-service"
	proposalengine "launchpad/contexts/governance/proposal-engine"
	stakingpool "launchpad/contexts/staking/staking-pool"

	httpSwagger "github.com/swaggo/http-swagger"
	_ "launchpad/internal/platform/httpserver/docs"
)

type Server struct {
	mux        *http.ServeMux
	logger     *slog.Logger
	addr       string
	fees       feeengine.Module
	governance proposalengine.Module
	escrows    escrowservice.Module
	staking    stakingpool.Module
}

func New(
	fees feeengine.Module,
	governance proposalengine.Module,
	escrows escrowservice.Module,
	staking stakingpool.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		addr:       addr,
		fees:       fees,
		governance: governance,
		escrows:    escrows,
		staking:    staking,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/fees/v1/config", s.handleInitializeConfig)
	s.mux.HandleFunc("PUT /api/fees/v1/config/collector", s.handleUpdateFeeCollector)
	s.mux.HandleFunc("GET /api/fees/v1/config/collector", s.handleResolveCollector)

	s.mux.HandleFunc("POST /api/governance/v1/registries", s.handleInitializeRegistry)
	s.mux.HandleFunc("POST /api/governance/v1/governances", s.handleInitializeGovernance)
	s.mux.HandleFunc("POST /api/governance/v1/proposals", s.handleCreateProposal)
	s.mux.HandleFunc("POST /api/governance/v1/proposals/{proposal_id}/execute", s.handleExecuteProposal)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}", s.handleGetProposal)
	s.mux.HandleFunc("GET /api/governance/v1/proposals/{proposal_id}/tally", s.handleTally)
	s.mux.HandleFunc("GET /api/governance/v1/proposals", s.handleListProposals)

	s.mux.HandleFunc("POST /api/escrows/v1/locks", s.handleLockEscrow)
	s.mux.HandleFunc("POST /api/escrows/v1/settlements/winner", s.handleSettleWinner)
	s.mux.HandleFunc("POST /api/escrows/v1/settlements/loser", s.handleSettleLoser)
	s.mux.HandleFunc("GET /api/escrows/v1/proposals/{proposal_id}/escrows", s.handleListEscrows)
	s.mux.HandleFunc("GET /api/escrows/v1/proposals/{proposal_id}/choices/{choice_id}/voters/{voter}", s.handleGetEscrow)

	s.mux.HandleFunc("POST /api/staking/v1/pools", s.handleInitializePool)
	s.mux.HandleFunc("POST /api/staking/v1/stake", s.handleStake)
	s.mux.HandleFunc("POST /api/staking/v1/unstake", s.handleUnstake)
	s.mux.HandleFunc("POST /api/staking/v1/claims", s.handleClaimRewards)
	s.mux.HandleFunc("POST /api/staking/v1/auto-compound", s.handleToggleAutoCompound)
	s.mux.HandleFunc("POST /api/staking/v1/distributions", s.handleDistributeRewards)
	s.mux.HandleFunc("GET /api/staking/v1/pools/{mint}", s.handleGetPool)
	s.mux.HandleFunc("GET /api/staking/v1/pools/{mint}/stakers/{staker}", s.handleGetStaker)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func resolveUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-Id"))
}

func parseChoiceID(raw string) (uint8, bool) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 8)
	if err != nil {
		return 0, false
	}
	return uint8(value), true
}
