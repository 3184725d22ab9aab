/*
handlers.go - HTTP API handlers for the asset depreciation engine

PURPOSE:
  Exposes the depreciation engine and the asset register via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to
  domain logic.

ENDPOINTS:
  Depreciation:
    POST   /api/depreciation/calculate          Compute a schedule from a request
    GET    /api/depreciation/methods            List supported methods

  Assets:
    GET    /api/assets                          List assets (filterable)
    POST   /api/assets                          Register an asset
    GET    /api/assets/summary                  Register totals
    GET    /api/assets/current-values           Valuation of every asset
    GET    /api/assets/fully-depreciated        Written-off assets
    GET    /api/assets/nearing-end-of-life      Assets close to end of life
    GET    /api/assets/{id}                     Get asset
    PATCH  /api/assets/{id}                     Partial update
    DELETE /api/assets/{id}                     Remove asset
    GET    /api/assets/{id}/current-value       Valuation as of now
    GET    /api/assets/{id}/projected-value     Valuation at ?date=YYYY-MM-DD
    GET    /api/assets/{id}/schedule            Full schedule for the asset

LIST FILTERS (GET /api/assets):
  method, min_price, max_price, fully_depreciated=true|false

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input, malformed JSON
  - 404: Asset not found
  - 409: Duplicate asset name
  - 500: Internal errors (logged)

SECURITY NOTE:
  Currently NO authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/asset-engine/depreciation"
	"github.com/warp/asset-engine/factory"
	"github.com/warp/asset-engine/register"
)

const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Assets *register.Service
	Logger *zap.Logger

	// MaxUsefulLife bounds useful_life on the calculate endpoint.
	MaxUsefulLife int

	// Health reports storage health for /healthz. Nil means always healthy.
	Health func(ctx context.Context) error
}

// NewHandler creates a handler for the given register.
func NewHandler(assets *register.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Assets:        assets,
		Logger:        logger,
		MaxUsefulLife: register.MaxUsefulLifeYears,
	}
}

// =============================================================================
// DEPRECIATION HANDLERS
// =============================================================================

// Calculate computes a depreciation schedule.
// POST /api/depreciation/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req, err := factory.ParseRequest(body)
	if err != nil {
		h.fail(w, r, "Invalid depreciation request", err)
		return
	}
	if h.MaxUsefulLife > 0 && req.UsefulLife > h.MaxUsefulLife {
		writeError(w, http.StatusBadRequest, "Invalid depreciation request",
			fmt.Errorf("useful life must not exceed %d years", h.MaxUsefulLife))
		return
	}

	schedule, err := depreciation.Compute(req)
	if err != nil {
		h.fail(w, r, "Invalid depreciation request", err)
		return
	}

	writeJSON(w, http.StatusOK, factory.ScheduleToJSON(schedule))
}

// ListMethods returns the supported depreciation methods.
// GET /api/depreciation/methods
func (h *Handler) ListMethods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toMethodDTOs())
}

// =============================================================================
// ASSET HANDLERS
// =============================================================================

// ListAssets returns assets matching the query filters.
// GET /api/assets
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter", err)
		return
	}

	assets, err := h.Assets.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, "Failed to list assets", err)
		return
	}

	writeJSON(w, http.StatusOK, toAssetDTOs(assets))
}

// CreateAsset registers a new asset.
// POST /api/assets
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var req CreateAssetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	purchaseDate, err := time.Parse(dateLayout, req.PurchaseDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid purchase_date format (use YYYY-MM-DD)", err)
		return
	}

	in := register.NewAsset{
		Name:             req.Name,
		Description:      req.Description,
		PurchasePrice:    req.PurchasePrice,
		PurchaseDate:     purchaseDate,
		UsefulLifeYears:  req.UsefulLifeYears,
		DepreciationRate: req.DepreciationRate,
		SalvageValue:     req.SalvageValue,
	}
	if req.Method != "" {
		if in.Method, err = depreciation.ParseMethod(req.Method); err != nil {
			h.fail(w, r, "Invalid depreciation method", err)
			return
		}
	}

	asset, err := h.Assets.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "Failed to create asset", err)
		return
	}

	writeJSON(w, http.StatusCreated, toAssetDTO(asset))
}

// GetAsset returns a single asset.
// GET /api/assets/{id}
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Assets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "Failed to get asset", err)
		return
	}
	writeJSON(w, http.StatusOK, toAssetDTO(asset))
}

// UpdateAsset applies a partial update.
// PATCH /api/assets/{id}
func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var req UpdateAssetRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	patch := register.Patch{
		Name:             req.Name,
		Description:      req.Description,
		PurchasePrice:    req.PurchasePrice,
		UsefulLifeYears:  req.UsefulLifeYears,
		DepreciationRate: req.DepreciationRate,
		SalvageValue:     req.SalvageValue,
	}
	if req.PurchaseDate != nil {
		date, err := time.Parse(dateLayout, *req.PurchaseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid purchase_date format (use YYYY-MM-DD)", err)
			return
		}
		patch.PurchaseDate = &date
	}
	if req.Method != nil {
		method, err := depreciation.ParseMethod(*req.Method)
		if err != nil {
			h.fail(w, r, "Invalid depreciation method", err)
			return
		}
		patch.Method = &method
	}

	asset, err := h.Assets.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.fail(w, r, "Failed to update asset", err)
		return
	}

	writeJSON(w, http.StatusOK, toAssetDTO(asset))
}

// DeleteAsset removes an asset.
// DELETE /api/assets/{id}
func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	if err := h.Assets.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(w, r, "Failed to delete asset", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAssetSchedule returns the full depreciation schedule of an asset.
// GET /api/assets/{id}/schedule
func (h *Handler) GetAssetSchedule(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.Assets.Schedule(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "Failed to compute schedule", err)
		return
	}
	writeJSON(w, http.StatusOK, factory.ScheduleToJSON(schedule))
}

// =============================================================================
// VALUATION HANDLERS
// =============================================================================

// GetCurrentValue returns an asset's valuation as of now.
// GET /api/assets/{id}/current-value
func (h *Handler) GetCurrentValue(w http.ResponseWriter, r *http.Request) {
	v, err := h.Assets.Valuation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, "Failed to value asset", err)
		return
	}
	writeJSON(w, http.StatusOK, toValuationDTO(v))
}

// GetProjectedValue returns an asset's value at a future date.
// GET /api/assets/{id}/projected-value?date=YYYY-MM-DD
func (h *Handler) GetProjectedValue(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required", nil)
		return
	}
	date, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD)", err)
		return
	}

	p, err := h.Assets.ProjectedValue(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		h.fail(w, r, "Failed to project value", err)
		return
	}
	writeJSON(w, http.StatusOK, toProjectionDTO(p))
}

// ListCurrentValues values every asset.
// GET /api/assets/current-values
func (h *Handler) ListCurrentValues(w http.ResponseWriter, r *http.Request) {
	vs, err := h.Assets.Valuations(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to value assets", err)
		return
	}
	writeJSON(w, http.StatusOK, toValuationDTOs(vs))
}

// ListFullyDepreciated returns written-off assets.
// GET /api/assets/fully-depreciated
func (h *Handler) ListFullyDepreciated(w http.ResponseWriter, r *http.Request) {
	vs, err := h.Assets.FullyDepreciated(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to value assets", err)
		return
	}
	writeJSON(w, http.StatusOK, toValuationDTOs(vs))
}

// ListNearingEndOfLife returns assets whose remaining life is within the
// threshold (years, default 1).
// GET /api/assets/nearing-end-of-life?threshold=
func (h *Handler) ListNearingEndOfLife(w http.ResponseWriter, r *http.Request) {
	threshold := decimal.NewFromInt(1)
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil || !parsed.IsPositive() {
			writeError(w, http.StatusBadRequest, "threshold must be a positive number of years", err)
			return
		}
		threshold = parsed
	}

	vs, err := h.Assets.NearingEndOfLife(r.Context(), threshold)
	if err != nil {
		h.fail(w, r, "Failed to value assets", err)
		return
	}
	writeJSON(w, http.StatusOK, toValuationDTOs(vs))
}

// GetSummary returns register totals.
// GET /api/assets/summary
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	s, err := h.Assets.Summary(r.Context())
	if err != nil {
		h.fail(w, r, "Failed to summarize assets", err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(s))
}

// Healthz reports whether the server and its storage are reachable.
// GET /healthz
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if h.Health != nil {
		if err := h.Health(r.Context()); err != nil {
			h.Logger.Warn("health check failed", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func parseListFilter(r *http.Request) (register.ListFilter, error) {
	var f register.ListFilter
	q := r.URL.Query()

	if raw := q.Get("method"); raw != "" {
		method, err := depreciation.ParseMethod(raw)
		if err != nil {
			return f, err
		}
		f.Method = &method
	}
	if raw := q.Get("min_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return f, fmt.Errorf("min_price: %w", err)
		}
		f.MinPrice = &v
	}
	if raw := q.Get("max_price"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return f, fmt.Errorf("max_price: %w", err)
		}
		f.MaxPrice = &v
	}
	if raw := q.Get("fully_depreciated"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, fmt.Errorf("fully_depreciated: %w", err)
		}
		f.FullyDepreciated = &v
	}
	return f, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// fail maps a domain error to its HTTP status. Unexpected errors are logged
// and reported as 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	switch {
	case errors.Is(err, factory.ErrMalformedRequest),
		register.IsClientError(err):
		writeError(w, http.StatusBadRequest, message, clientCause(err))
	case register.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Asset not found", nil)
	case register.IsConflict(err):
		writeError(w, http.StatusConflict, message, register.ErrDuplicateName)
	default:
		h.Logger.Error(message,
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(err))
		writeError(w, http.StatusInternalServerError, message, nil)
	}
}

// clientCause strips wrapping so details carry the rule that was broken.
func clientCause(err error) error {
	var ve *depreciation.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var ue *depreciation.UnsupportedMethodError
	if errors.As(err, &ue) {
		return ue
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
