package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InitializeConfigRequest struct {
	FeeCollector string `json:"fee_collector,omitempty"`
}

type UpdateFeeCollectorRequest struct {
	FeeCollector string `json:"fee_collector"`
}

type ConfigResponse struct {
	Admin        string `json:"admin"`
	FeeCollector string `json:"fee_collector"`
	Version      int    `json:"version"`
}

type CollectorResponse struct {
	FeeCollector string `json:"fee_collector"`
}
