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

type CryptoConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.coingecko.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Crypto fetches spot prices from the CoinGecko public API.
type Crypto struct {
	baseURL string
	client  *http.Client
}

func NewCrypto(cfg CryptoConfig) *Crypto {
	return &Crypto{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (c *Crypto) Kind() contractx.AgentKind {
	return contractx.KindCrypto
}

// coinAliases normalizes the tickers users actually type to CoinGecko ids.
var coinAliases = map[string]string{
	"btc":  "bitcoin",
	"eth":  "ethereum",
	"sol":  "solana",
	"xrp":  "ripple",
	"doge": "dogecoin",
	"ada":  "cardano",
	"avax": "avalanche-2",
}

func (c *Crypto) Enrich(ctx context.Context, fields []string) (string, error) {
	coin := strings.ToLower(strings.TrimSpace(fields[0]))
	coin = strings.ReplaceAll(coin, " ", "-")
	if alias, ok := coinAliases[coin]; ok {
		coin = alias
	}

	q := url.Values{}
	q.Set("ids", coin)
	q.Set("vs_currencies", "usd,try")

	var resp map[string]map[string]float64
	if err := getJSON(ctx, c.client, c.baseURL+"/api/v3/simple/price?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}

	prices, ok := resp[coin]
	if !ok || len(prices) == 0 {
		return "", contractx.ErrNotFound
	}

	return fmt.Sprintf(
		"🪙 %s güncel fiyatı:\n\n$%.2f USD\n₺%.2f TRY",
		coin, prices["usd"], prices["try"],
	), nil
}
