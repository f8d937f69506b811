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

type ITunesConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://itunes.apple.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// ITunes serves both the music and podcast agents from the iTunes Search
// API; the two kinds differ only in media type and reply framing.
type ITunes struct {
	kind    contractx.AgentKind
	media   string
	baseURL string
	client  *http.Client
}

func NewMusic(cfg ITunesConfig) *ITunes {
	return newITunes(cfg, contractx.KindMusic, "music")
}

func NewPodcast(cfg ITunesConfig) *ITunes {
	return newITunes(cfg, contractx.KindPodcast, "podcast")
}

func newITunes(cfg ITunesConfig, kind contractx.AgentKind, media string) *ITunes {
	return &ITunes{
		kind:    kind,
		media:   media,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (t *ITunes) Kind() contractx.AgentKind {
	return t.kind
}

type itunesResponse struct {
	Results []struct {
		TrackName        string `json:"trackName"`
		ArtistName       string `json:"artistName"`
		CollectionName   string `json:"collectionName"`
		PrimaryGenreName string `json:"primaryGenreName"`
	} `json:"results"`
}

func (t *ITunes) Enrich(ctx context.Context, fields []string) (string, error) {
	query := fields[0]

	q := url.Values{}
	q.Set("term", query)
	q.Set("media", t.media)
	q.Set("limit", "3")

	var resp itunesResponse
	if err := getJSON(ctx, t.client, t.baseURL+"/search?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", contractx.ErrNotFound
	}

	header := "🎵"
	if t.kind == contractx.KindPodcast {
		header = "🎙️"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %q için sonuçlar:\n", header, query)
	for i, r := range resp.Results {
		name := r.TrackName
		if name == "" {
			name = r.CollectionName
		}
		fmt.Fprintf(&b, "\n%d. %s — %s", i+1, name, r.ArtistName)
		if r.CollectionName != "" && r.CollectionName != name {
			fmt.Fprintf(&b, "\n   Albüm/Seri: %s", r.CollectionName)
		}
		if r.PrimaryGenreName != "" {
			fmt.Fprintf(&b, "\n   Tür: %s", r.PrimaryGenreName)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
