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

type GameConfig struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.rawg.io"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Game searches the RAWG catalog.
type Game struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGame(cfg GameConfig) *Game {
	return &Game{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (g *Game) Kind() contractx.AgentKind {
	return contractx.KindGame
}

type rawgResponse struct {
	Results []struct {
		Name     string  `json:"name"`
		Released string  `json:"released"`
		Rating   float64 `json:"rating"`
		Genres   []struct {
			Name string `json:"name"`
		} `json:"genres"`
	} `json:"results"`
}

func (g *Game) Enrich(ctx context.Context, fields []string) (string, error) {
	if g.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	query := fields[0]

	q := url.Values{}
	q.Set("search", query)
	q.Set("page_size", "3")
	q.Set("key", g.apiKey)

	var resp rawgResponse
	if err := getJSON(ctx, g.client, g.baseURL+"/api/games?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", contractx.ErrNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🎮 %q için oyunlar:\n", query)
	for i, r := range resp.Results {
		fmt.Fprintf(&b, "\n%d. %s", i+1, r.Name)
		if r.Released != "" {
			fmt.Fprintf(&b, " (%s)", r.Released)
		}
		if r.Rating > 0 {
			fmt.Fprintf(&b, "\n   Puan: %.1f/5", r.Rating)
		}
		if len(r.Genres) > 0 {
			names := make([]string, 0, len(r.Genres))
			for _, genre := range r.Genres {
				names = append(names, genre.Name)
			}
			fmt.Fprintf(&b, "\n   Tür: %s", strings.Join(names, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
