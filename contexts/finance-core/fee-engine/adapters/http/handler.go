package httpadapter

import (
	"context"
	"log/slog"

	"launchpad/contexts/finance-core/fee-engine/application"
	httptransport "launchpad/contexts/finance-core/fee-engine/transport/http"
)

type Handler struct {
	Config application.Service
	Logger *slog.Logger
}

func (h Handler) InitializeConfigHandler(
	ctx context.Context,
	adminID string,
	req httptransport.InitializeConfigRequest,
) (httptransport.ConfigResponse, error) {
	config, err := h.Config.InitializeConfig(ctx, adminID, req.FeeCollector)
	if err != nil {
		return httptransport.ConfigResponse{}, err
	}
	return httptransport.ConfigResponse{
		Admin:        config.Admin,
		FeeCollector: config.FeeCollector,
		Version:      config.Version,
	}, nil
}

func (h Handler) UpdateFeeCollectorHandler(
	ctx context.Context,
	callerID string,
	req httptransport.UpdateFeeCollectorRequest,
) (httptransport.ConfigResponse, error) {
	config, err := h.Config.UpdateFeeCollector(ctx, callerID, req.FeeCollector)
	if err != nil {
		return httptransport.ConfigResponse{}, err
	}
	return httptransport.ConfigResponse{
		Admin:        config.Admin,
		FeeCollector: config.FeeCollector,
		Version:      config.Version,
	}, nil
}

func (h Handler) ResolveCollectorHandler(ctx context.Context) (httptransport.CollectorResponse, error) {
	collector, err := h.Config.ResolveCollector(ctx)
	if err != nil {
		return httptransport.CollectorResponse{}, err
	}
	return httptransport.CollectorResponse{FeeCollector: collector}, nil
}
