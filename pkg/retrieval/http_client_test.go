package retrieval

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %s, want /search", r.URL.Path)
		}
		var req searchRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Query != "dijkstra" || req.TopK != 3 {
			t.Errorf("request = %+v", req)
		}
		_ = json.NewEncoder(w).Encode(searchResponse{Passages: []Passage{
			{Text: "fragment", SourceID: "paper.pdf", Rank: 1, Score: 0.92},
		}})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	passages, err := c.Search(context.Background(), "dijkstra", 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 1 || passages[0].SourceID != "paper.pdf" {
		t.Errorf("passages = %+v", passages)
	}
}

func TestSearchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	if _, err := c.Search(context.Background(), "q", 1); err == nil {
		t.Fatal("Search() error = nil, want status error")
	}
}

func TestUploadSendsMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ingest" {
			t.Errorf("path = %s, want /ingest", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("FormFile: %v", err)
		}
		defer file.Close()
		if header.Filename != "notes.md" {
			t.Errorf("filename = %s", header.Filename)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	if err := c.Upload(context.Background(), "notes.md", strings.NewReader("# heap notes")); err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
}

func TestRemoveAndList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/remove":
			var req removeRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Filename != "old.pdf" {
				t.Errorf("filename = %s", req.Filename)
			}
			w.WriteHeader(http.StatusOK)
		case "/documents":
			_ = json.NewEncoder(w).Encode(listResponse{Documents: []string{"a.pdf", "b.md"}})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	if err := c.Remove(context.Background(), "old.pdf"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	docs, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(docs) != 2 || docs[0] != "a.pdf" {
		t.Errorf("docs = %v", docs)
	}
}
