package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		total     int64
		wantPages int
	}{
		{name: "empty set", page: 1, limit: 10, total: 0, wantPages: 0},
		{name: "exact multiple", page: 1, limit: 5, total: 15, wantPages: 3},
		{name: "with remainder", page: 2, limit: 10, total: 15, wantPages: 2},
		{name: "single item", page: 1, limit: 100, total: 1, wantPages: 1},
		{name: "limit one", page: 3, limit: 1, total: 7, wantPages: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.Page != tt.page || p.Limit != tt.limit || p.Total != tt.total {
				t.Errorf("metadata = %+v, want page=%d limit=%d total=%d", p, tt.page, tt.limit, tt.total)
			}
		})
	}
}

func TestPostJSON(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	post := Post{
		ID:        7,
		Title:     "Building APIs in Go",
		Content:   "A walkthrough.",
		AuthorID:  2,
		CreatedAt: created,
	}

	// Without an attached author the author key must be absent.
	b, err := json.Marshal(post)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), `"author"`) {
		t.Errorf("unattached author serialized: %s", b)
	}
	if !strings.Contains(string(b), `"created_at":"2026-03-14T09:30:00Z"`) {
		t.Errorf("created_at not RFC 3339: %s", b)
	}

	post.Author = &User{ID: 2, Name: "Bob Smith", Email: "bob.smith@example.com"}
	b, err = json.Marshal(post)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"author":{"id":2`) {
		t.Errorf("attached author missing: %s", b)
	}
}
