package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	contractx "agenthub/agent/contract"
)

type BookConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.googleapis.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Book searches Google Books volumes. No credential needed for search.
type Book struct {
	baseURL string
	client  *http.Client
}

func NewBook(cfg BookConfig) *Book {
	return &Book{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (b *Book) Kind() contractx.AgentKind {
	return contractx.KindBook
}

type booksResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			PublishedDate string   `json:"publishedDate"`
			AverageRating float64  `json:"averageRating"`
			Description   string   `json:"description"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (b *Book) Enrich(ctx context.Context, fields []string) (string, error) {
	query := fields[0]

	q := url.Values{}
	q.Set("q", query)
	q.Set("maxResults", "3")

	var resp booksResponse
	if err := getJSON(ctx, b.client, b.baseURL+"/books/v1/volumes?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", contractx.ErrNotFound
	}

	var out strings.Builder
	fmt.Fprintf(&out, "📖 %q için kitaplar:\n", query)
	for i, item := range resp.Items {
		v := item.VolumeInfo
		fmt.Fprintf(&out, "\n%d. %s", i+1, v.Title)
		if len(v.Authors) > 0 {
			fmt.Fprintf(&out, " — %s", strings.Join(v.Authors, ", "))
		}
		if v.PublishedDate != "" {
			fmt.Fprintf(&out, " (%s)", v.PublishedDate)
		}
		if v.AverageRating > 0 {
			fmt.Fprintf(&out, "\n   Puan: %.1f/5", v.AverageRating)
		}
		if d := truncate(v.Description, 200); d != "" {
			fmt.Fprintf(&out, "\n   %s", d)
		}
		out.WriteString("\n")
	}
	return strings.TrimRight(out.String(), "\n"), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return strings.TrimSpace(string(runes[:n])) + "..."
}
