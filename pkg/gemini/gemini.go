// Package gemini wraps the Gemini OpenAI-compatible chat completion API
// behind the contract.Gateway interface, with a one-shot failover to a
// secondary credential when the primary fails.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	contractx "agenthub/agent/contract"
)

type Config struct {
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	FallbackAPIKey     string        `envconfig:"FALLBACK_API_KEY" split_words:"true"`
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://generativelanguage.googleapis.com/v1beta/openai"`
	Model              string        `envconfig:"MODEL" split_words:"true" default:"gemini-1.5-flash"`
	MaxCompletionToken int64         `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float64       `envconfig:"TEMPERATURE" split_words:"true" default:"0.7"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("gemini api key is required")
	}
	if strings.TrimSpace(c.Model) == "" {
		return errors.New("gemini model is required")
	}
	return nil
}

// completeFunc performs one completion attempt against one credential.
type completeFunc func(ctx context.Context, systemPrompt, userText string) (string, error)

// Gateway issues chat completions. The primary credential is tried first;
// any failure triggers exactly one attempt with the fallback credential.
type Gateway struct {
	primary  completeFunc
	fallback completeFunc
}

var _ contractx.Gateway = (*Gateway)(nil)

func NewGateway(cfg Config) (*Gateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := &Gateway{
		primary: newCompleter(cfg, cfg.APIKey),
	}
	if strings.TrimSpace(cfg.FallbackAPIKey) != "" {
		g.fallback = newCompleter(cfg, cfg.FallbackAPIKey)
	}
	return g, nil
}

func MustNewGateway(cfg Config) *Gateway {
	g, err := NewGateway(cfg)
	if err != nil {
		panic(err)
	}
	return g
}

func newCompleter(cfg Config, apiKey string) completeFunc {
	client := openaisdk.NewClient(
		option.WithAPIKey(strings.TrimSpace(apiKey)),
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		option.WithRequestTimeout(cfg.Timeout),
	)

	return func(ctx context.Context, systemPrompt, userText string) (string, error) {
		resp, err := client.Chat.Completions.New(ctx, openaisdk.ChatCompletionNewParams{
			Model: openaisdk.ChatModel(cfg.Model),
			Messages: []openaisdk.ChatCompletionMessageParamUnion{
				openaisdk.SystemMessage(systemPrompt),
				openaisdk.UserMessage(userText),
			},
			Temperature: openaisdk.Float(cfg.Temperature),
			MaxTokens:   openaisdk.Int(cfg.MaxCompletionToken),
		})
		if err != nil {
			return "", fmt.Errorf("gemini completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("gemini completion: %w: empty choice list", contractx.ErrUpstream)
		}
		return strings.TrimSpace(resp.Choices[0].Message.Content), nil
	}
}

// Complete runs one completion. The caller suspends until a result or both
// credential failures are known; there is no backoff and no further retry.
func (g *Gateway) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	out, err := g.primary(ctx, systemPrompt, userText)
	if err == nil {
		return out, nil
	}

	log.Warn().
		Err(err).
		Bool("rate_limited", isRateLimited(err)).
		Msg("primary model credential failed, trying fallback")

	if g.fallback == nil {
		return "", fmt.Errorf("%w: primary failed and no fallback configured: %v",
			contractx.ErrCredentialsExhausted, err)
	}

	out, ferr := g.fallback(ctx, systemPrompt, userText)
	if ferr == nil {
		return out, nil
	}

	return "", fmt.Errorf("%w: primary: %v; fallback: %v",
		contractx.ErrCredentialsExhausted, err, ferr)
}

// isRateLimited detects the quota/rate-limit signature of the upstream.
func isRateLimited(err error) bool {
	var apiErr *openaisdk.Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	msg := err.Error()
	return strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "quota")
}
