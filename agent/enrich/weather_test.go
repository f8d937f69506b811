package enrich

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	contractx "agenthub/agent/contract"
)

func TestWeatherSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want metric", got)
		}
		if got := r.URL.Query().Get("lang"); got != "tr" {
			t.Errorf("lang = %q, want tr", got)
		}
		w.Write([]byte(`{
			"name": "İstanbul",
			"main": {"temp": 21.64, "feels_like": 20.1, "humidity": 68},
			"weather": [{"description": "parçalı bulutlu"}],
			"wind": {"speed": 3.4}
		}`))
	}))
	defer srv.Close()

	wx := NewWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL})
	out, err := wx.Enrich(context.Background(), []string{"İstanbul"})
	if err != nil {
		t.Fatalf("Enrich() error = %v", err)
	}
	for _, want := range []string{"İstanbul", "21.6°C", "parçalı bulutlu", "%68", "3.4 m/s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("reply missing %q:\n%s", want, out)
		}
	}
}

func TestWeatherCityNotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	wx := NewWeather(WeatherConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := wx.Enrich(context.Background(), []string{"Yokşehir"})
	if !errors.Is(err, contractx.ErrNotFound) {
		t.Fatalf("Enrich() error = %v, want ErrNotFound", err)
	}
}

func TestWeatherMissingKey(t *testing.T) {
	t.Parallel()

	wx := NewWeather(WeatherConfig{})
	_, err := wx.Enrich(context.Background(), []string{"Ankara"})
	if !errors.Is(err, contractx.ErrMissingCredential) {
		t.Fatalf("Enrich() error = %v, want ErrMissingCredential", err)
	}
}

func TestWeatherUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	wx := NewWeather(WeatherConfig{APIKey: "bad", BaseURL: srv.URL})
	_, err := wx.Enrich(context.Background(), []string{"Ankara"})
	if !errors.Is(err, contractx.ErrMissingCredential) {
		t.Fatalf("Enrich() error = %v, want ErrMissingCredential", err)
	}
}
