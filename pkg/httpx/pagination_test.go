package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mayesha-3/Ammo-Inventory-Management-System/pkg/httpx"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantPage   int
		wantLimit  int
		wantOffset int
		wantErr    bool
	}{
		{"", 1, httpx.DefaultPageLimit, 0, false},
		{"?page=3&limit=10", 3, 10, 20, false},
		{"?limit=1000", 1, httpx.MaxPageLimit, 0, false},
		{"?page=0", 0, 0, 0, true},
		{"?limit=-1", 0, 0, 0, true},
		{"?page=abc", 0, 0, 0, true},
		{"?page=2147483648&limit=100", 0, 0, 0, true},
		{"?page=21474837&limit=100", 21474837, 100, 2147483600, false},
		{"?page=21474838&limit=100", 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/inventory"+tt.query, http.NoBody)
			p, err := httpx.ParsePagination(r)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr = %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.Page != tt.wantPage || p.Limit != tt.wantLimit || p.Offset() != tt.wantOffset {
				t.Fatalf("got %+v offset %d", p, p.Offset())
			}
		})
	}
}

func TestNewPage_NilDataBecomesEmpty(t *testing.T) {
	page := httpx.NewPage[int](nil, httpx.Pagination{Page: 1, Limit: 20}, 0)
	if page.Data == nil || len(page.Data) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", page.Data)
	}
}
