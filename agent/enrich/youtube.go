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

// maxVideoDetails bounds the per-video statistics calls after a search, so
// one enrichment cannot fan out into an unbounded number of requests.
const maxVideoDetails = 3

type YouTubeConfig struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.googleapis.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// YouTube searches videos and then fetches view statistics per result.
type YouTube struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewYouTube(cfg YouTubeConfig) *YouTube {
	return &YouTube{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (y *YouTube) Kind() contractx.AgentKind {
	return contractx.KindYouTube
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
	} `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (y *YouTube) Enrich(ctx context.Context, fields []string) (string, error) {
	if y.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	query := fields[0]

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("maxResults", strconv.Itoa(maxVideoDetails))
	q.Set("q", query)
	q.Set("key", y.apiKey)

	var search youtubeSearchResponse
	if err := getJSON(ctx, y.client, y.baseURL+"/youtube/v3/search?"+q.Encode(), nil, &search); err != nil {
		return "", err
	}
	if len(search.Items) == 0 {
		return "", contractx.ErrNotFound
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📺 %q için videolar:\n", query)
	for i, item := range search.Items {
		if i >= maxVideoDetails {
			break
		}
		fmt.Fprintf(&b, "\n%d. %s\n   Kanal: %s", i+1, item.Snippet.Title, item.Snippet.ChannelTitle)
		if views, err := y.fetchViewCount(ctx, item.ID.VideoID); err == nil && views != "" {
			fmt.Fprintf(&b, "\n   İzlenme: %s", views)
		}
		fmt.Fprintf(&b, "\n   https://www.youtube.com/watch?v=%s\n", item.ID.VideoID)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// fetchViewCount is best-effort detail; a failure here never fails the
// enrichment, the video list is still useful without view counts.
func (y *YouTube) fetchViewCount(ctx context.Context, videoID string) (string, error) {
	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", videoID)
	q.Set("key", y.apiKey)

	var resp youtubeVideosResponse
	if err := getJSON(ctx, y.client, y.baseURL+"/youtube/v3/videos?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	if len(resp.Items) == 0 {
		return "", nil
	}
	return resp.Items[0].Statistics.ViewCount, nil
}
