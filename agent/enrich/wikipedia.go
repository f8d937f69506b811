package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	contractx "agenthub/agent/contract"
)

type WikipediaConfig struct {
	// BaseURL overrides the per-language wikipedia host when set; used
	// mainly for tests. Empty means https://<lang>.wikipedia.org.
	BaseURL string        `envconfig:"BASE_URL" split_words:"true"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Wikipedia fetches the REST page summary for a title. No credential needed.
type Wikipedia struct {
	baseURL string
	client  *http.Client
}

func NewWikipedia(cfg WikipediaConfig) *Wikipedia {
	return &Wikipedia{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (w *Wikipedia) Kind() contractx.AgentKind {
	return contractx.KindWikipedia
}

var wikiLangRe = regexp.MustCompile(`^[a-z]{2,3}$`)

type wikiSummaryResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Extract     string `json:"extract"`
	ContentURLs struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

func (w *Wikipedia) Enrich(ctx context.Context, fields []string) (string, error) {
	title, lang := fields[0], strings.ToLower(fields[1])
	if !wikiLangRe.MatchString(lang) {
		lang = "tr"
	}

	base := w.baseURL
	if base == "" {
		base = fmt.Sprintf("https://%s.wikipedia.org", lang)
	}
	endpoint := base + "/api/rest_v1/page/summary/" + url.PathEscape(strings.ReplaceAll(title, " ", "_"))

	var resp wikiSummaryResponse
	if err := getJSON(ctx, w.client, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Extract) == "" {
		return "", contractx.ErrNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s", resp.Title)
	if resp.Description != "" {
		fmt.Fprintf(&b, " — %s", resp.Description)
	}
	b.WriteString("\n" + contractx.SummarySeparator + "\n")
	b.WriteString(resp.Extract)
	if page := resp.ContentURLs.Desktop.Page; page != "" {
		fmt.Fprintf(&b, "\n\nKaynak: %s", page)
	}
	return b.String(), nil
}
