package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/slice-labs/backend-pizzeria/internal/common"
	"github.com/slice-labs/backend-pizzeria/internal/promo"
)

func newHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, Validate: validator.New(), MaxLimit: 100}
}

func postJSON(t *testing.T, handler http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestSubmitHandlerCreatesOrder(t *testing.T) {
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{result: validWelcome10()}, &stubOrders{})
	handler := newHandler(svc)

	rec := postJSON(t, handler.Submit, "/api/v1/orders",
		`{"menuItemId":1,"quantity":2,"customerName":"Ada","promoCode":"WELCOME10"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp struct {
		Data Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Ada", resp.Data.CustomerName)
	require.True(t, resp.Data.FinalTotal.Equal(dec("26.98")), "total %s", resp.Data.FinalTotal)
	require.NotNil(t, resp.Data.PromoCodeID)
}

func TestSubmitHandlerRejectsBadPayload(t *testing.T) {
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{}, &stubOrders{})
	handler := newHandler(svc)

	rec := postJSON(t, handler.Submit, "/api/v1/orders", `{"menuItemId":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "BAD_REQUEST")
}

func TestSubmitHandlerRejectsMissingName(t *testing.T) {
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{}, &stubOrders{})
	handler := newHandler(svc)

	rec := postJSON(t, handler.Submit, "/api/v1/orders", `{"menuItemId":1,"quantity":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_INPUT")
}

func TestSubmitHandlerZeroQuantity(t *testing.T) {
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{result: promo.ValidationResult{Outcome: promo.OutcomeNoCode}}, &stubOrders{})
	handler := newHandler(svc)

	rec := postJSON(t, handler.Submit, "/api/v1/orders", `{"menuItemId":1,"quantity":0,"customerName":"Ada"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_QUANTITY")
}

func TestListHandlerReportsTotalAcrossPages(t *testing.T) {
	store := &stubOrders{
		listed: []Order{{ID: uuid.New()}, {ID: uuid.New()}},
		total:  57,
	}
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{}, store)
	handler := newHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?limit=2", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data       []Order           `json:"data"`
		Pagination common.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.EqualValues(t, 57, resp.Pagination.TotalItems)
	require.Equal(t, 2, resp.Pagination.PerPage)
}

func TestGetHandlerRejectsMalformedID(t *testing.T) {
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{}, &stubOrders{})
	handler := newHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/not-a-uuid", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "not-a-uuid")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHandlerNotFound(t *testing.T) {
	svc := newService(&stubMenu{item: margherita()}, &stubPromo{}, &stubOrders{})
	handler := newHandler(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/2b1f9e8a-4c11-4f5e-9d57-0a8f3f1c2d3e", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "2b1f9e8a-4c11-4f5e-9d57-0a8f3f1c2d3e")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	handler.Get(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "ORDER_NOT_FOUND")
}
