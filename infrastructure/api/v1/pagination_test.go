package v1

import (
	"net/http/httptest"
	"testing"
)

func TestParsePagination_Defaults(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/calls", nil)
	p := ParsePagination(req)

	if p.Page() != 1 {
		t.Errorf("Page = %d, want 1", p.Page())
	}
	if p.PageSize() != DefaultPageSize {
		t.Errorf("PageSize = %d, want %d", p.PageSize(), DefaultPageSize)
	}
	if p.Offset() != 0 {
		t.Errorf("Offset = %d, want 0", p.Offset())
	}
}

func TestParsePagination_Explicit(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/calls?page=3&page_size=10", nil)
	p := ParsePagination(req)

	if p.Page() != 3 {
		t.Errorf("Page = %d, want 3", p.Page())
	}
	if p.Limit() != 10 {
		t.Errorf("Limit = %d, want 10", p.Limit())
	}
	if p.Offset() != 20 {
		t.Errorf("Offset = %d, want 20", p.Offset())
	}
}

func TestParsePagination_ClampsAndIgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/calls?page=0&page_size=9999", nil)
	p := ParsePagination(req)

	if p.Page() != 1 {
		t.Errorf("Page = %d, invalid page should fall back to 1", p.Page())
	}
	if p.PageSize() != MaxPageSize {
		t.Errorf("PageSize = %d, want clamp to %d", p.PageSize(), MaxPageSize)
	}

	req = httptest.NewRequest("GET", "/api/v1/calls?page=abc&page_size=-3", nil)
	p = ParsePagination(req)
	if p.Page() != 1 || p.PageSize() != DefaultPageSize {
		t.Errorf("garbage params: page=%d size=%d", p.Page(), p.PageSize())
	}
}

func TestPaginationLinks(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/v1/calls?page=2&page_size=10", nil)
	p := ParsePagination(req)

	links := PaginationLinks(req, p, 35)
	if links.Prev == "" {
		t.Error("page 2 should have a prev link")
	}
	if links.Next == "" {
		t.Error("page 2 of 4 should have a next link")
	}
	if links.Last == "" {
		t.Error("last link missing")
	}
}

func TestTotalPages(t *testing.T) {
	p := PaginationParams{page: 1, pageSize: 10}

	tests := []struct {
		total int64
		want  int
	}{
		{0, 0},
		{1, 1},
		{10, 1},
		{11, 2},
		{35, 4},
	}

	for _, tt := range tests {
		if got := totalPages(p, tt.total); got != tt.want {
			t.Errorf("totalPages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}
