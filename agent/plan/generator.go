// Package plan generates and executes multi-agent plans for coordinate mode.
package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	contractx "agenthub/agent/contract"
	promptx "agenthub/agent/prompt"
)

type Generator struct {
	gateway contractx.Gateway
	catalog *promptx.Catalog
}

func NewGenerator(gateway contractx.Gateway, catalog *promptx.Catalog) (*Generator, error) {
	if gateway == nil {
		return nil, errors.New("model gateway is required")
	}
	if catalog == nil {
		return nil, errors.New("agent catalog is required")
	}
	return &Generator{gateway: gateway, catalog: catalog}, nil
}

// Generate asks the model for a strict-JSON plan. A parse failure is a hard
// failure for the coordinate request; the only retry involved is the
// gateway's own credential fallback.
func (g *Generator) Generate(ctx context.Context, userMessage string) (contractx.Plan, error) {
	completion, err := g.gateway.Complete(ctx, g.catalog.PlannerPrompt(), userMessage)
	if err != nil {
		return contractx.Plan{}, err
	}
	return parsePlan(completion)
}

func parsePlan(completion string) (contractx.Plan, error) {
	raw := stripCodeFence(completion)

	var p contractx.Plan
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return contractx.Plan{}, fmt.Errorf("%w: %v", contractx.ErrMalformedPlan, err)
	}
	if len(p.Steps) == 0 {
		return contractx.Plan{}, fmt.Errorf("%w: empty step list", contractx.ErrMalformedPlan)
	}
	for i, s := range p.Steps {
		if strings.TrimSpace(string(s.Agent)) == "" {
			return contractx.Plan{}, fmt.Errorf("%w: step %d has no agent", contractx.ErrMalformedPlan, i+1)
		}
	}
	return p, nil
}

// stripCodeFence removes the ```json ... ``` wrapper models tend to add
// around JSON output even when told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		// Drop the language hint on the opening fence line.
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
