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

type ExchangeConfig struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://v6.exchangerate-api.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Exchange converts a currency pair via ExchangeRate-API. The unit rate is
// rendered with 4 decimals; the derived x10/x100/x1000 amounts with 2.
type Exchange struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewExchange(cfg ExchangeConfig) *Exchange {
	return &Exchange{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (e *Exchange) Kind() contractx.AgentKind {
	return contractx.KindExchange
}

type exchangeResponse struct {
	Result         string  `json:"result"`
	ErrorType      string  `json:"error-type"`
	ConversionRate float64 `json:"conversion_rate"`
}

func (e *Exchange) Enrich(ctx context.Context, fields []string) (string, error) {
	if e.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	from := strings.ToUpper(strings.TrimSpace(fields[0]))
	to := strings.ToUpper(strings.TrimSpace(fields[1]))

	endpoint := fmt.Sprintf("%s/v6/%s/pair/%s/%s",
		e.baseURL, url.PathEscape(e.apiKey), url.PathEscape(from), url.PathEscape(to))

	var resp exchangeResponse
	if err := getJSON(ctx, e.client, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if resp.Result != "success" {
		switch resp.ErrorType {
		case "unsupported-code", "unknown-code":
			return "", contractx.ErrNotFound
		case "invalid-key", "inactive-account":
			return "", fmt.Errorf("%w: %s", contractx.ErrMissingCredential, resp.ErrorType)
		case "quota-reached":
			return "", contractx.ErrRateLimited
		default:
			return "", fmt.Errorf("%w: %s", contractx.ErrUpstream, resp.ErrorType)
		}
	}

	rate := resp.ConversionRate
	return fmt.Sprintf(
		"💱 Döviz Kuru\n\n1 %s = %.4f %s\n\n10 %s = %.2f %s\n100 %s = %.2f %s\n1000 %s = %.2f %s",
		from, rate, to,
		from, 10*rate, to,
		from, 100*rate, to,
		from, 1000*rate, to,
	), nil
}
