package billing

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/billing-atlas/pkg/models/api"
	"github.com/de-tools/billing-atlas/pkg/models/domain"
	"github.com/de-tools/billing-atlas/pkg/services/aws_ce"
	"github.com/de-tools/billing-atlas/pkg/services/aws_sts"
	"github.com/rs/zerolog"
)

const (
	defaultWindowDays  = 30
	defaultGranularity = domain.GranularityDaily
	defaultMetric      = "BlendedCost"
)

type Handler struct {
	costs    aws_ce.Explorer
	identity aws_sts.Service
}

func NewHandler(costs aws_ce.Explorer, identity aws_sts.Service) *Handler {
	return &Handler{
		costs:    costs,
		identity: identity,
	}
}

// GetCostData serves the fully-typed cost query endpoint.
func (h *Handler) GetCostData(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.CostDataRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if err := req.Credentials.Validate(); err != nil {
		writeError(w, logger, err)
		return
	}

	period, err := req.TimePeriod.ToDomain()
	if err != nil {
		writeError(w, logger, err)
		return
	}

	query := domain.CostQuery{
		Period:      period,
		Granularity: granularityOrDefault(req.Granularity),
		Metrics:     req.Metrics,
	}
	for _, group := range req.GroupBy {
		query.GroupBy = append(query.GroupBy, group.ToDomain())
	}
	if req.Filter != nil {
		filter := req.Filter.ToDomain()
		query.Filter = &filter
	}

	report, err := h.costs.GetCostAndUsage(ctx, req.Credentials, query)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, api.CostDataResponseFromDomain(report))
}

// GetCostDataSimple expands the loosely-typed dashboard payload into a full
// cost query: default trailing 30-day window, CSV metrics, single group-by
// dimension and the flat filter options run through the filter builder.
func (h *Handler) GetCostDataSimple(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.SimpleCostDataRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if err := req.Credentials.Validate(); err != nil {
		writeError(w, logger, err)
		return
	}

	var period domain.TimePeriod
	if req.StartDate == "" || req.EndDate == "" {
		period = domain.LastDays(defaultWindowDays)
	} else {
		var err error
		period, err = domain.NewTimePeriod(req.StartDate, req.EndDate)
		if err != nil {
			writeError(w, logger, err)
			return
		}
	}

	metrics := splitMetrics(req.Metrics)

	query := domain.CostQuery{
		Period:      period,
		Granularity: granularityOrDefault(req.Granularity),
		Metrics:     metrics,
		Filter:      aws_ce.BuildFilter(filterOptions(req)),
	}
	if req.GroupByDimension != "" {
		query.GroupBy = []domain.GroupBy{{Type: "DIMENSION", Key: req.GroupByDimension}}
	}

	report, err := h.costs.GetCostAndUsage(ctx, req.Credentials, query)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, api.CostDataResponseFromDomain(report))
}

func (h *Handler) GetDimensions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.DimensionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if err := req.Credentials.Validate(); err != nil {
		writeError(w, logger, err)
		return
	}
	if req.Dimension == "" {
		writeError(w, logger, &domain.ValidationError{Message: "dimension is required"})
		return
	}

	period, err := req.TimePeriod.ToDomain()
	if err != nil {
		writeError(w, logger, err)
		return
	}

	values, err := h.costs.GetDimensionValues(ctx, req.Credentials, req.Dimension, period)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, api.DimensionResponse{
		Dimension: req.Dimension,
		Values:    values,
	})
}

func (h *Handler) GetAccountInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AccountInfoRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, logger, err)
		return
	}
	if err := req.Credentials.Validate(); err != nil {
		writeError(w, logger, err)
		return
	}

	info, err := h.identity.GetAccountInfo(ctx, req.Credentials)
	if err != nil {
		writeError(w, logger, err)
		return
	}

	writeJSON(w, logger, http.StatusOK, api.AccountInfoResponse{
		AccountID: info.AccountID,
		UserID:    info.UserID,
		ARN:       info.ARN,
	})
}

// ValidateCredentials never answers with a 5xx: any failure, including a
// malformed payload or an unexpected panic, collapses into a valid:false
// result.
func (h *Handler) ValidateCredentials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error().Interface("panic", rec).Msg("credential validation panicked")
			writeJSON(w, logger, http.StatusOK, api.CredentialValidationResponse{
				Valid: false,
				Error: "Failed to validate credentials",
			})
		}
	}()

	var req api.CredentialValidationRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, logger, http.StatusOK, api.CredentialValidationResponse{
			Valid: false,
			Error: "Failed to validate credentials",
		})
		return
	}
	if err := req.Credentials.Validate(); err != nil {
		writeJSON(w, logger, http.StatusOK, api.CredentialValidationResponse{
			Valid: false,
			Error: err.Error(),
		})
		return
	}

	result := h.identity.ValidateCredentials(ctx, req.Credentials)
	writeJSON(w, logger, http.StatusOK, api.CredentialValidationResponse{
		Valid:     result.Valid,
		Error:     result.Error,
		AccountID: result.AccountID,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())
	writeJSON(w, logger, http.StatusOK, api.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	})
}

func granularityOrDefault(raw string) domain.Granularity {
	if raw == "" {
		return defaultGranularity
	}
	return domain.Granularity(raw)
}

func splitMetrics(raw string) []string {
	if raw == "" {
		return []string{defaultMetric}
	}
	var metrics []string
	for _, metric := range strings.Split(raw, ",") {
		metric = strings.TrimSpace(metric)
		if metric != "" {
			metrics = append(metrics, metric)
		}
	}
	if len(metrics) == 0 {
		return []string{defaultMetric}
	}
	return metrics
}

func filterOptions(req api.SimpleCostDataRequest) domain.FilterOptions {
	opts := domain.DefaultFilterOptions()
	opts.Service = req.ServiceFilter
	opts.Region = req.RegionFilter
	opts.ChargeType = req.ChargeType
	opts.IncludeSupport = toggleOrDefault(req.IncludeSupport)
	opts.IncludeOtherSubscription = toggleOrDefault(req.IncludeOtherSubscription)
	opts.IncludeUpfront = toggleOrDefault(req.IncludeUpfront)
	opts.IncludeRefund = toggleOrDefault(req.IncludeRefund)
	opts.IncludeCredit = toggleOrDefault(req.IncludeCredit)
	opts.IncludeRIFee = toggleOrDefault(req.IncludeRIFee)
	return opts
}

func toggleOrDefault(toggle *bool) bool {
	if toggle == nil {
		return true
	}
	return *toggle
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &domain.ValidationError{Message: "invalid request body: " + err.Error()}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode response")
	}
}

// writeError maps the error taxonomy to HTTP statuses once, here. Validation
// problems are the caller's to fix; vendor rejections carry the vendor
// message; everything else stays generic so internals never leak.
func writeError(w http.ResponseWriter, logger *zerolog.Logger, err error) {
	var (
		validationErr *domain.ValidationError
		vendorErr     *domain.VendorRequestError
		internalErr   *domain.InternalError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, logger, http.StatusBadRequest, api.ErrorResponse{Detail: validationErr.Message})
	case errors.As(err, &vendorErr):
		logger.Error().
			Str("code", vendorErr.Code).
			Msg("vendor request failed")
		writeJSON(w, logger, http.StatusInternalServerError, api.ErrorResponse{Detail: "AWS API error: " + vendorErr.Message})
	case errors.As(err, &internalErr):
		logger.Error().
			Err(internalErr.Err).
			Msg(internalErr.Message)
		writeJSON(w, logger, http.StatusInternalServerError, api.ErrorResponse{Detail: "Internal server error"})
	default:
		logger.Error().
			Err(err).
			Msg("unexpected error")
		writeJSON(w, logger, http.StatusInternalServerError, api.ErrorResponse{Detail: "Internal server error"})
	}
}
