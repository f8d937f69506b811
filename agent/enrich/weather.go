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

type WeatherConfig struct {
	APIKey  string        `envconfig:"API_KEY" split_words:"true"`
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openweathermap.org"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Weather fetches current conditions for a city from OpenWeatherMap.
type Weather struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWeather(cfg WeatherConfig) *Weather {
	return &Weather{
		apiKey:  strings.TrimSpace(cfg.APIKey),
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (w *Weather) Kind() contractx.AgentKind {
	return contractx.KindWeather
}

type weatherResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (w *Weather) Enrich(ctx context.Context, fields []string) (string, error) {
	if w.apiKey == "" {
		return "", contractx.ErrMissingCredential
	}
	city := fields[0]

	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "tr")

	var resp weatherResponse
	if err := getJSON(ctx, w.client, w.baseURL+"/data/2.5/weather?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}

	desc := "bilinmiyor"
	if len(resp.Weather) > 0 {
		desc = resp.Weather[0].Description
	}
	name := resp.Name
	if name == "" {
		name = city
	}

	return fmt.Sprintf(
		"🌤️ %s için hava durumu:\n\nSıcaklık: %.1f°C (hissedilen %.1f°C)\nDurum: %s\nNem: %%%d\nRüzgar: %.1f m/s",
		name, resp.Main.Temp, resp.Main.FeelsLike, desc, resp.Main.Humidity, resp.Wind.Speed,
	), nil
}
