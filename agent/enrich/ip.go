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

type IPConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"http://ip-api.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// IPLookup resolves an IP address to a location via ip-api.com.
type IPLookup struct {
	baseURL string
	client  *http.Client
}

func NewIPLookup(cfg IPConfig) *IPLookup {
	return &IPLookup{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (l *IPLookup) Kind() contractx.AgentKind {
	return contractx.KindIP
}

type ipAPIResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	ISP        string  `json:"isp"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Query      string  `json:"query"`
}

func (l *IPLookup) Enrich(ctx context.Context, fields []string) (string, error) {
	addr := strings.TrimSpace(fields[0])

	endpoint := l.baseURL + "/json/" + url.PathEscape(addr) + "?lang=tr"

	var resp ipAPIResponse
	if err := getJSON(ctx, l.client, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if resp.Status != "success" {
		// ip-api reports bad queries with status "fail" and a message.
		return "", fmt.Errorf("%w: %s", contractx.ErrNotFound, resp.Message)
	}

	return fmt.Sprintf(
		"📍 %s konum bilgisi:\n\nÜlke: %s\nBölge: %s\nŞehir: %s\nServis sağlayıcı: %s\nKoordinat: %.4f, %.4f",
		resp.Query, resp.Country, resp.RegionName, resp.City, resp.ISP, resp.Lat, resp.Lon,
	), nil
}
