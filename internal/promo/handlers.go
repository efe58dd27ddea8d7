package promo

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/slice-labs/backend-pizzeria/internal/common"
)

// Handler exposes promo code validation and administration endpoints.
type Handler struct {
	Svc *Service
}

type validateRequest struct {
	Code string `json:"code"`
}

type ruleView struct {
	ID              int64           `json:"id"`
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	ValidFrom       *time.Time      `json:"validFrom,omitempty"`
	ValidUntil      *time.Time      `json:"validUntil,omitempty"`
	UsageLimit      *int32          `json:"usageLimit,omitempty"`
	TimesUsed       int32           `json:"timesUsed"`
}

func viewOf(r Rule) ruleView {
	return ruleView{
		ID:              r.ID,
		Code:            r.Code,
		DiscountPercent: r.DiscountPercent,
		ValidFrom:       r.ValidFrom,
		ValidUntil:      r.ValidUntil,
		UsageLimit:      r.UsageLimit,
		TimesUsed:       r.TimesUsed,
	}
}

// Validate handles POST /api/v1/promo-codes/validate. Every outcome renders
// as 200; only storage failures are HTTP errors.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo service not configured", nil)
		return
	}
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	result, err := h.Svc.Validate(r.Context(), req.Code)
	if err != nil {
		common.JSONError(w, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "promo store unavailable", nil)
		return
	}
	body := map[string]any{
		"outcome": result.Outcome,
		"valid":   result.Outcome.Applicable(),
	}
	if result.Rule != nil {
		body["code"] = result.Rule.Code
		body["discountPercent"] = result.Rule.DiscountPercent
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": body})
}

type createRequest struct {
	Code            string          `json:"code"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	ValidFrom       *time.Time      `json:"validFrom"`
	ValidUntil      *time.Time      `json:"validUntil"`
	UsageLimit      *int32          `json:"usageLimit"`
}

// Create handles POST /api/v1/admin/promo-codes.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo service not configured", nil)
		return
	}
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if strings.TrimSpace(req.Code) == "" {
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", "code is required", nil)
		return
	}
	if !req.DiscountPercent.IsPositive() || req.DiscountPercent.GreaterThan(decimal.NewFromInt(100)) {
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", "discountPercent must be in (0, 100]", nil)
		return
	}
	if req.ValidFrom != nil && req.ValidUntil != nil && req.ValidUntil.Before(*req.ValidFrom) {
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", "validUntil must not precede validFrom", nil)
		return
	}
	rule, err := h.Svc.Register(r.Context(), CreateParams{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		ValidFrom:       req.ValidFrom,
		ValidUntil:      req.ValidUntil,
		UsageLimit:      req.UsageLimit,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			common.JSONError(w, http.StatusConflict, "CONFLICT", "promo code already exists", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create promo code", nil)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": viewOf(rule)})
}

// List handles GET /api/v1/admin/promo-codes.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "promo service not configured", nil)
		return
	}
	rules, err := h.Svc.All(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to list promo codes", nil)
		return
	}
	views := make([]ruleView, 0, len(rules))
	for _, rule := range rules {
		views = append(views, viewOf(rule))
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": views})
}
