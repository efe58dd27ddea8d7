package menu_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/slice-labs/backend-pizzeria/internal/menu"
)

type fakeQueries struct {
	items []menu.Item
	err   error
}

func (f *fakeQueries) ListItems(ctx context.Context) ([]menu.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeQueries) GetItem(ctx context.Context, id int64) (menu.Item, error) {
	if f.err != nil {
		return menu.Item{}, f.err
	}
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return menu.Item{}, menu.ErrNotFound
}

type listResponse struct {
	Data []menu.Item `json:"data"`
}

type itemResponse struct {
	Data menu.Item `json:"data"`
}

func seedItems() []menu.Item {
	return []menu.Item{
		{ID: 1, Name: "Margherita", Description: "Classic tomato and mozzarella", Price: decimal.RequireFromString("14.99")},
		{ID: 2, Name: "Pepperoni", Description: "Pepperoni and cheese", Price: decimal.RequireFromString("1.99")},
	}
}

func newHandler(queries *fakeQueries) *menu.Handler {
	svc := menu.NewService(menu.ServiceConfig{Queries: queries, Cache: menu.NewCache(nil, 0)})
	return menu.NewHandler(svc)
}

func getWithParam(t *testing.T, handler http.HandlerFunc, target, key, value string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestMenuList(t *testing.T) {
	handler := newHandler(&fakeQueries{items: seedItems()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/menu", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp listResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	require.Equal(t, "Margherita", resp.Data[0].Name)
	require.True(t, resp.Data[0].Price.Equal(decimal.RequireFromString("14.99")))
}

func TestMenuGet(t *testing.T) {
	handler := newHandler(&fakeQueries{items: seedItems()})

	rec := getWithParam(t, handler.Get, "/api/v1/menu/2", "id", "2")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp itemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, int64(2), resp.Data.ID)
	require.Equal(t, "Pepperoni", resp.Data.Name)
}

func TestMenuGetNotFound(t *testing.T) {
	handler := newHandler(&fakeQueries{items: seedItems()})

	rec := getWithParam(t, handler.Get, "/api/v1/menu/42", "id", "42")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "ITEM_NOT_FOUND")
}

func TestMenuGetRejectsBadID(t *testing.T) {
	handler := newHandler(&fakeQueries{items: seedItems()})

	for _, raw := range []string{"abc", "0", "-3"} {
		rec := getWithParam(t, handler.Get, "/api/v1/menu/"+raw, "id", raw)
		require.Equal(t, http.StatusBadRequest, rec.Code, "id=%s", raw)
	}
}
