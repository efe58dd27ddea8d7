package common_test

import (
	"net/http/httptest"
	"testing"

	"github.com/slice-labs/backend-pizzeria/internal/common"
)

func TestParsePaginationDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/orders", nil)
	page, perPage := common.ParsePagination(r, 20, 100)
	if page != 1 || perPage != 20 {
		t.Fatalf("expected defaults 1/20, got %d/%d", page, perPage)
	}
}

func TestParsePaginationReadsQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/orders?page=3&limit=5", nil)
	page, perPage := common.ParsePagination(r, 20, 100)
	if page != 3 || perPage != 5 {
		t.Fatalf("expected 3/5, got %d/%d", page, perPage)
	}
}

func TestParsePaginationClampsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/orders?limit=5000", nil)
	_, perPage := common.ParsePagination(r, 20, 100)
	if perPage != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", perPage)
	}
}

func TestParsePaginationIgnoresGarbage(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/orders?page=-2&limit=abc", nil)
	page, perPage := common.ParsePagination(r, 20, 100)
	if page != 1 || perPage != 20 {
		t.Fatalf("expected defaults for bad input, got %d/%d", page, perPage)
	}
}
