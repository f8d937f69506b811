package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	contractx "agenthub/agent/contract"
)

func TestNewsPrimaryHasArticles(t *testing.T) {
	t.Parallel()

	var secondaryCalls atomic.Int32

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v2/top-headlines") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("country"); got != "tr" {
			t.Errorf("country = %q, want tr", got)
		}
		w.Write([]byte(`{"status":"ok","articles":[
			{"title":"Ekonomide yeni paket","description":"Detaylar açıklandı","url":"https://example.com/1","source":{"name":"Haber A"}}
		]}`))
	}))
	defer primary.Close()

	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondaryCalls.Add(1)
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer secondary.Close()

	n := NewNews(NewsConfig{
		APIKey:       "k",
		BaseURL:      primary.URL,
		GNewsAPIKey:  "g",
		GNewsBaseURL: secondary.URL,
	})

	out, err := n.Enrich(context.Background(), []string{"ekonomi", "tr", "tr"})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if !strings.Contains(out, "Ekonomide yeni paket") || !strings.Contains(out, "Haber A") {
		t.Fatalf("reply missing article data:\n%s", out)
	}
	if secondaryCalls.Load() != 0 {
		t.Fatalf("secondary called %d times, want 0", secondaryCalls.Load())
	}
}

func TestNewsFallsBackToSecondary(t *testing.T) {
	t.Parallel()

	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer primary.Close()

	secondary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v4/search") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"articles":[
			{"title":"Yedek kaynaktan haber","description":"","url":"https://example.com/2","source":{"name":"GKaynak"}}
		]}`))
	}))
	defer secondary.Close()

	n := NewNews(NewsConfig{
		APIKey:       "k",
		BaseURL:      primary.URL,
		GNewsAPIKey:  "g",
		GNewsBaseURL: secondary.URL,
	})

	out, err := n.Enrich(context.Background(), []string{"spor", "tr", "global"})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	if !strings.Contains(out, "Yedek kaynaktan haber") {
		t.Fatalf("reply missing secondary article:\n%s", out)
	}
}

func TestNewsBothSourcesEmpty(t *testing.T) {
	t.Parallel()

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer empty.Close()

	n := NewNews(NewsConfig{
		APIKey:       "k",
		BaseURL:      empty.URL,
		GNewsAPIKey:  "g",
		GNewsBaseURL: empty.URL,
	})

	_, err := n.Enrich(context.Background(), []string{"hiçbirşey", "tr", "tr"})
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("Enrich() error = %v, want ErrNotFound", err)
	}
}

func TestNewsMissingKey(t *testing.T) {
	t.Parallel()

	n := NewNews(NewsConfig{})
	_, err := n.Enrich(context.Background(), []string{"ekonomi", "tr", "tr"})
	if !errors.Is(err, contractx.ErrMissingCredential) {
		t.Fatalf("Enrich() error = %v, want ErrMissingCredential", err)
	}
}
