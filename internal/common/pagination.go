package common

import (
	"net/http"
	"strconv"
)

// Pagination is the metadata block attached to list responses. TotalItems
// is the full row count, not the size of the returned page.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalItems int64 `json:"total_items"`
}

// ParsePagination reads the page and limit query parameters. Missing or
// non-positive values fall back to page 1 and defaultPerPage; a positive
// maxPerPage caps the requested page size.
func ParsePagination(r *http.Request, defaultPerPage, maxPerPage int) (page, perPage int) {
	page = 1
	perPage = defaultPerPage
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		perPage = l
	}
	if maxPerPage > 0 && perPage > maxPerPage {
		perPage = maxPerPage
	}
	return
}
