package enrich

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	contractx "agenthub/agent/contract"
)

// Random picks one option from a comma-separated list. This is the only
// enricher with non-deterministic output.
type Random struct {
	pick func(n int) int
}

func NewRandom() *Random {
	return &Random{pick: rand.IntN}
}

func (r *Random) Kind() contractx.AgentKind {
	return contractx.KindRandom
}

func (r *Random) Enrich(_ context.Context, fields []string) (string, error) {
	parts := strings.Split(fields[0], ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			options = append(options, p)
		}
	}
	if len(options) == 0 {
		return "", contractx.ErrNotFound
	}

	chosen := options[r.pick(len(options))]
	return fmt.Sprintf("🎲 Seçimim: %s\n\n(%d seçenek arasından rastgele seçildi)", chosen, len(options)), nil
}
