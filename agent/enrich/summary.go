package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	contractx "agenthub/agent/contract"
)

const maxExtractChars = 8000

const summarizePersona = `Sen bir özetleme asistanısın. Sana verilen makale metnini Türkçe, 4-6 cümlelik akıcı bir özet halinde yaz. Başlık veya madde işareti kullanma.`

type SummaryConfig struct {
	Timeout time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

// Summary is the generic page-fetch-and-summarize path: fetch the URL,
// extract the readable article text, and ask the model for a short summary.
type Summary struct {
	gateway contractx.Gateway
	client  *http.Client
	policy  *bluemonday.Policy
}

func NewSummary(cfg SummaryConfig, gateway contractx.Gateway) *Summary {
	return &Summary{
		gateway: gateway,
		client:  newHTTPClient(cfg.Timeout),
		policy:  bluemonday.StrictPolicy(),
	}
}

func (s *Summary) Kind() contractx.AgentKind {
	return contractx.KindSummary
}

func (s *Summary) Enrich(ctx context.Context, fields []string) (string, error) {
	rawURL := strings.TrimSpace(fields[0])
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Host == "" {
		return "", fmt.Errorf("%w: invalid url %q", contractx.ErrNotFound, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", contractx.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp.StatusCode); err != nil {
		return "", err
	}

	article, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("%w: extract article: %v", contractx.ErrUpstream, err)
	}

	content := strings.TrimSpace(s.policy.Sanitize(article.TextContent))
	if content == "" {
		return "", contractx.ErrNotFound
	}
	content = truncate(content, maxExtractChars)

	summary, err := s.gateway.Complete(ctx, summarizePersona, content)
	if err != nil {
		return "", fmt.Errorf("%w: summarize: %v", contractx.ErrUpstream, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📄 %s\n", strings.TrimSpace(article.Title))
	b.WriteString(contractx.SummarySeparator + "\n")
	b.WriteString(summary)
	fmt.Fprintf(&b, "\n\nKaynak: %s", pageURL.String())
	return b.String(), nil
}
