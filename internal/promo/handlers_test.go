package promo

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func postValidate(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/promo-codes/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.Validate(rec, req)
	return rec
}

func decodeData(t *testing.T, body []byte) map[string]any {
	t.Helper()
	var resp struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Data
}

func TestValidateEndpointValidCode(t *testing.T) {
	store := &stubStore{rule: Rule{
		ID:              7,
		Code:            "WELCOME10",
		DiscountPercent: decimal.NewFromInt(10),
	}}
	handler := &Handler{Svc: &Service{Q: store, Now: fixedNow}}

	rec := postValidate(t, handler, `{"code":"welcome10"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	data := decodeData(t, rec.Body.Bytes())
	if data["outcome"] != "valid" || data["valid"] != true {
		t.Fatalf("unexpected payload %#v", data)
	}
	if data["code"] != "WELCOME10" {
		t.Fatalf("expected matched code in payload, got %#v", data)
	}
}

func TestValidateEndpointDistinguishesOutcomes(t *testing.T) {
	cases := map[string]struct {
		store *stubStore
		code  string
		want  string
	}{
		"no code":  {store: &stubStore{}, code: "", want: "no_code"},
		"unknown":  {store: &stubStore{findErr: ErrNotFound}, code: "BOGUS", want: "invalid"},
		"expired":  {store: &stubStore{rule: Rule{Code: "OLD", DiscountPercent: decimal.NewFromInt(5), ValidUntil: ts(fixedNow().Add(-1))}}, code: "OLD", want: "expired"},
		"used up":  {store: &stubStore{rule: Rule{Code: "FAMILY20", DiscountPercent: decimal.NewFromInt(20), UsageLimit: limit(150), TimesUsed: 150}}, code: "FAMILY20", want: "exhausted"},
		"too soon": {store: &stubStore{rule: Rule{Code: "SOON", DiscountPercent: decimal.NewFromInt(5), ValidFrom: ts(fixedNow().Add(1))}}, code: "SOON", want: "not_yet_active"},
	}
	for name, tc := range cases {
		handler := &Handler{Svc: &Service{Q: tc.store, Now: fixedNow}}
		rec := postValidate(t, handler, `{"code":"`+tc.code+`"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", name, rec.Code)
		}
		data := decodeData(t, rec.Body.Bytes())
		if data["outcome"] != tc.want {
			t.Fatalf("%s: expected outcome %q got %v", name, tc.want, data["outcome"])
		}
		if data["valid"] != false {
			t.Fatalf("%s: expected valid=false", name)
		}
	}
}

func TestCreateEndpointRejectsBadPercent(t *testing.T) {
	handler := &Handler{Svc: &Service{Q: &stubStore{}, Now: fixedNow}}
	for _, body := range []string{
		`{"code":"X","discountPercent":0}`,
		`{"code":"X","discountPercent":101}`,
		`{"code":"","discountPercent":10}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/promo-codes", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400 got %d", body, rec.Code)
		}
	}
}
