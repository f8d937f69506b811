package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "agenthub/agent/contract"
)

type NewsConfig struct {
	APIKey       string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL      string        `envconfig:"BASE_URL" split_words:"true" default:"https://newsapi.org"`
	GNewsAPIKey  string        `envconfig:"GNEWS_API_KEY" split_words:"true"`
	GNewsBaseURL string        `envconfig:"GNEWS_BASE_URL" split_words:"true" default:"https://gnews.io"`
	Timeout      time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
	MaxArticles  int           `envconfig:"MAX_ARTICLES" split_words:"true" default:"5"`
}

// News searches headlines on NewsAPI and falls back to GNews when the
// primary returns an empty result set. This two-tier fallback is internal to
// one enrichment and unrelated to the model gateway's credential failover.
type News struct {
	apiKey       string
	baseURL      string
	gnewsAPIKey  string
	gnewsBaseURL string
	maxArticles  int
	client       *http.Client
}

func NewNews(cfg NewsConfig) *News {
	maxArticles := cfg.MaxArticles
	if maxArticles <= 0 {
		maxArticles = 5
	}
	return &News{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		gnewsAPIKey:  strings.TrimSpace(cfg.GNewsAPIKey),
		gnewsBaseURL: strings.TrimRight(cfg.GNewsBaseURL, "/"),
		maxArticles:  maxArticles,
		client:       newHTTPClient(cfg.Timeout),
	}
}

func (n *News) Kind() contractx.AgentKind {
	return contractx.KindNews
}

type article struct {
	Title       string
	Description string
	Source      string
	URL         string
}

// Enrich expects fields = [topic, language, country]; country "global" means
// a worldwide keyword search instead of country headlines.
func (n *News) Enrich(ctx context.Context, fields []string) (string, error) {
	if n.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	topic, lang, country := fields[0], fields[1], fields[2]

	articles, err := n.fetchPrimary(ctx, topic, lang, country)
	if err != nil {
		return "", err
	}

	if len(articles) == 0 && n.gnewsAPIKey != "" {
		log.Debug().Str("topic", topic).Msg("primary news source empty, trying secondary")
		articles, err = n.fetchSecondary(ctx, topic, lang, country)
		if err != nil {
			return "", err
		}
	}

	if len(articles) == 0 {
		return "", contractx.ErrNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📰 %q için son haberler:\n", topic)
	for i, a := range articles {
		fmt.Fprintf(&b, "\n%d. %s", i+1, a.Title)
		if a.Source != "" {
			fmt.Fprintf(&b, " (%s)", a.Source)
		}
		if a.Description != "" {
			fmt.Fprintf(&b, "\n   %s", a.Description)
		}
		if a.URL != "" {
			fmt.Fprintf(&b, "\n   %s", a.URL)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (n *News) fetchPrimary(ctx context.Context, topic, lang, country string) ([]article, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("pageSize", fmt.Sprint(n.maxArticles))
	q.Set("apiKey", n.apiKey)

	endpoint := "/v2/top-headlines"
	if country == "global" {
		endpoint = "/v2/everything"
		q.Set("language", lang)
	} else {
		q.Set("country", country)
	}

	var resp newsAPIResponse
	if err := getJSON(ctx, n.client, n.baseURL+endpoint+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	out := make([]article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		out = append(out, article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
		})
	}
	return out, nil
}

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (n *News) fetchSecondary(ctx context.Context, topic, lang, country string) ([]article, error) {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("lang", lang)
	q.Set("max", fmt.Sprint(n.maxArticles))
	q.Set("apikey", n.gnewsAPIKey)
	if country != "global" {
		q.Set("country", country)
	}

	var resp gnewsResponse
	if err := getJSON(ctx, n.client, n.gnewsBaseURL+"/api/v4/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	out := make([]article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		out = append(out, article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
		})
	}
	return out, nil
}
