package enrich

import (
	"context"
	"fmt"
	"strings"

	contractx "agenthub/agent/contract"
)

// Translate formats the translation the model already produced inside the
// directive. No upstream call is involved; the directive carries the data.
type Translate struct{}

func NewTranslate() *Translate {
	return &Translate{}
}

func (t *Translate) Kind() contractx.AgentKind {
	return contractx.KindTranslator
}

func (t *Translate) Enrich(_ context.Context, fields []string) (string, error) {
	text, src, dst := fields[0], strings.ToLower(fields[1]), strings.ToLower(fields[2])
	return fmt.Sprintf("📝 Çeviri (%s → %s):\n\n%s", src, dst, text), nil
}
