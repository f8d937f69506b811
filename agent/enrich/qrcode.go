package enrich

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	contractx "agenthub/agent/contract"
)

type QRCodeConfig struct {
	BaseURL string `envconfig:"BASE_URL" split_words:"true" default:"https://api.qrserver.com"`
	Size    string `envconfig:"SIZE" split_words:"true" default:"300x300"`
}

// QRCode builds a qrserver image URL for the given payload. The image itself
// is fetched by the client, so no outbound call happens here.
type QRCode struct {
	baseURL string
	size    string
}

func NewQRCode(cfg QRCodeConfig) *QRCode {
	return &QRCode{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		size:    cfg.Size,
	}
}

func (q *QRCode) Kind() contractx.AgentKind {
	return contractx.KindQRCode
}

func (q *QRCode) Enrich(_ context.Context, fields []string) (string, error) {
	payload := strings.TrimSpace(fields[0])
	if payload == "" {
		return "", contractx.ErrNotFound
	}

	v := url.Values{}
	v.Set("size", q.size)
	v.Set("data", payload)

	return fmt.Sprintf(
		"🔳 QR kodunuz hazır:\n\n%s/v1/create-qr-code/?%s\n\nİçerik: %s",
		q.baseURL, v.Encode(), payload,
	), nil
}
