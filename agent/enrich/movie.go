package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	contractx "agenthub/agent/contract"
)

type MovieConfig struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.omdbapi.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Movie looks a title up on OMDb. Ratings render with 1 decimal.
type Movie struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewMovie(cfg MovieConfig) *Movie {
	return &Movie{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (m *Movie) Kind() contractx.AgentKind {
	return contractx.KindMovie
}

type omdbResponse struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director"`
	IMDBRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Type       string `json:"Type"`
}

func (m *Movie) Enrich(ctx context.Context, fields []string) (string, error) {
	if m.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	title := fields[0]

	q := url.Values{}
	q.Set("t", title)
	q.Set("apikey", m.apiKey)

	var resp omdbResponse
	if err := getJSON(ctx, m.client, m.baseURL+"/?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if resp.Response != "True" {
		if strings.Contains(resp.Error, "not found") {
			return "", contractx.ErrNotFound
		}
		return "", fmt.Errorf("%w: %s", contractx.ErrUpstream, resp.Error)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎬 %s (%s)\n", resp.Title, resp.Year)
	if resp.Genre != "" {
		fmt.Fprintf(&b, "\nTür: %s", resp.Genre)
	}
	if resp.Director != "" && resp.Director != "N/A" {
		fmt.Fprintf(&b, "\nYönetmen: %s", resp.Director)
	}
	if rating, err := strconv.ParseFloat(resp.IMDBRating, 64); err == nil {
		fmt.Fprintf(&b, "\nIMDb: %.1f/10", rating)
	}
	if resp.Plot != "" && resp.Plot != "N/A" {
		fmt.Fprintf(&b, "\n\n%s", resp.Plot)
	}
	return b.String(), nil
}
