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

// maxFixtures bounds the fixtures shown after the team lookup, keeping the
// discover-then-detail flow at a fixed fan-out.
const maxFixtures = 3

type FootballConfig struct {
	// APIKey "3" is TheSportsDB's public development key.
	APIKey  string        `envconfig:"API_KEY" split_words:"true" default:"3"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.thesportsdb.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Football finds a team on TheSportsDB and lists its next fixtures.
type Football struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewFootball(cfg FootballConfig) *Football {
	return &Football{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (f *Football) Kind() contractx.AgentKind {
	return contractx.KindFootball
}

type teamSearchResponse struct {
	Teams []struct {
		ID   string `json:"idTeam"`
		Name string `json:"strTeam"`
	} `json:"teams"`
}

type eventsResponse struct {
	Events []struct {
		Name   string `json:"strEvent"`
		Date   string `json:"dateEvent"`
		Time   string `json:"strTime"`
		League string `json:"strLeague"`
	} `json:"events"`
}

func (f *Football) Enrich(ctx context.Context, fields []string) (string, error) {
	if f.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	team := fields[0]

	q := url.Values{}
	q.Set("t", team)

	var search teamSearchResponse
	searchURL := fmt.Sprintf("%s/api/v1/json/%s/searchteams.php?%s", f.baseURL, url.PathEscape(f.apiKey), q.Encode())
	if err := getJSON(ctx, f.client, searchURL, nil, &search); err != nil {
		return "", err
	}
	if len(search.Teams) == 0 {
		return "", contractx.ErrNotFound
	}
	found := search.Teams[0]

	eventsURL := fmt.Sprintf("%s/api/v1/json/%s/eventsnext.php?id=%s", f.baseURL, url.PathEscape(f.apiKey), url.QueryEscape(found.ID))
	var events eventsResponse
	if err := getJSON(ctx, f.client, eventsURL, nil, &events); err != nil {
		return "", err
	}
	if len(events.Events) == 0 {
		return fmt.Sprintf("⚽ %s için yaklaşan maç bulunamadı.", found.Name), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚽ %s — yaklaşan maçlar:\n", found.Name)
	for i, e := range events.Events {
		if i >= maxFixtures {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s\n   %s %s (%s)", i+1, e.Name, e.Date, e.Time, e.League)
	}
	return b.String(), nil
}
