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

type DictionaryConfig struct {
	BaseURL string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.dictionaryapi.dev"`
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"15s"`
}

// Dictionary looks a word up on dictionaryapi.dev.
type Dictionary struct {
	baseURL string
	client  *http.Client
}

func NewDictionary(cfg DictionaryConfig) *Dictionary {
	return &Dictionary{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  newHTTPClient(cfg.Timeout),
	}
}

func (d *Dictionary) Kind() contractx.AgentKind {
	return contractx.KindDictionary
}

type dictEntry struct {
	Word     string `json:"word"`
	Meanings []struct {
		PartOfSpeech string `json:"partOfSpeech"`
		Definitions  []struct {
			Definition string `json:"definition"`
			Example    string `json:"example"`
		} `json:"definitions"`
	} `json:"meanings"`
}

func (d *Dictionary) Enrich(ctx context.Context, fields []string) (string, error) {
	word := strings.ToLower(strings.TrimSpace(fields[0]))
	lang := strings.ToLower(strings.TrimSpace(fields[1]))
	if !wikiLangRe.MatchString(lang) {
		lang = "en"
	}

	endpoint := fmt.Sprintf("%s/api/v2/entries/%s/%s", d.baseURL, url.PathEscape(lang), url.PathEscape(word))

	var entries []dictEntry
	if err := getJSON(ctx, d.client, endpoint, nil, &entries); err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", contractx.ErrNotFound
	}

	entry := entries[0]
	var b strings.Builder
	fmt.Fprintf(&b, "📕 %s\n", entry.Word)
	count := 0
	for _, m := range entry.Meanings {
		if count >= 3 {
			break
		}
		for _, def := range m.Definitions {
			if count >= 3 {
				break
			}
			count++
			fmt.Fprintf(&b, "\n%d. (%s) %s", count, m.PartOfSpeech, def.Definition)
			if def.Example != "" {
				fmt.Fprintf(&b, "\n   Örnek: %s", def.Example)
			}
		}
	}
	if count == 0 {
		return "", contractx.ErrNotFound
	}
	return b.String(), nil
}
