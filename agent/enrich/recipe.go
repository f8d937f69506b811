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

type RecipeConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://www.themealdb.com"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Recipe searches TheMealDB. The free tier needs no credential.
type Recipe struct {
	baseURL string
	client  *http.Client
}

func NewRecipe(cfg RecipeConfig) *Recipe {
	return &Recipe{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (r *Recipe) Kind() contractx.AgentKind {
	return contractx.KindRecipe
}

type mealDBResponse struct {
	Meals []struct {
		Name         string `json:"strMeal"`
		Category     string `json:"strCategory"`
		Area         string `json:"strArea"`
		Instructions string `json:"strInstructions"`
	} `json:"meals"`
}

func (r *Recipe) Enrich(ctx context.Context, fields []string) (string, error) {
	query := fields[0]

	q := url.Values{}
	q.Set("s", query)

	var resp mealDBResponse
	if err := getJSON(ctx, r.client, r.baseURL+"/api/json/v1/1/search.php?"+q.Encode(), nil, &resp); err != nil {
		return "", err
	}
	// TheMealDB returns {"meals": null} for no match.
	if len(resp.Meals) == 0 {
		return "", contractx.ErrNotFound
	}

	meal := resp.Meals[0]
	var b strings.Builder
	fmt.Fprintf(&b, "🍽️ %s", meal.Name)
	if meal.Category != "" || meal.Area != "" {
		fmt.Fprintf(&b, " (%s, %s mutfağı)", meal.Category, meal.Area)
	}
	b.WriteString("\n" + contractx.SummarySeparator + "\n")
	b.WriteString(truncate(meal.Instructions, 1200))
	return b.String(), nil
}
