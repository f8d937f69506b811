// Package dispatch handles one user message addressed to one agent: persona
// resolution, model completion, directive extraction, and enrichment. It is
// the single unit both the individual mode and the plan executor run.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "agenthub/agent/contract"
	directivex "agenthub/agent/directive"
	enrichx "agenthub/agent/enrich"
	promptx "agenthub/agent/prompt"
)

type Dispatcher struct {
	gateway  contractx.Gateway
	catalog  *promptx.Catalog
	registry *enrichx.Registry
}

var _ contractx.Dispatcher = (*Dispatcher)(nil)

func New(gateway contractx.Gateway, catalog *promptx.Catalog, registry *enrichx.Registry) (*Dispatcher, error) {
	if gateway == nil {
		return nil, errors.New("model gateway is required")
	}
	if catalog == nil {
		return nil, errors.New("agent catalog is required")
	}
	if registry == nil {
		return nil, errors.New("enricher registry is required")
	}
	return &Dispatcher{gateway: gateway, catalog: catalog, registry: registry}, nil
}

// Dispatch resolves the agent persona, completes the user message, and
// replaces the completion with enriched content when it carries a directive.
// It fails only when the model gateway fails; enrichment failures become
// user-facing fallback text, and a completion without a directive passes
// through verbatim.
func (d *Dispatcher) Dispatch(ctx context.Context, agentID, userMessage string) (string, error) {
	desc := d.catalog.Resolve(agentID)

	completion, err := d.gateway.Complete(ctx, desc.Persona, userMessage)
	if err != nil {
		return "", fmt.Errorf("dispatch agent=%s: %w", agentID, err)
	}

	dir, ok := directivex.Parse(desc.Kind, completion)
	if !ok {
		// The model answered directly; nothing to enrich.
		return completion, nil
	}

	log.Debug().
		Str("agent_id", agentID).
		Str("kind", string(dir.Kind)).
		Int("fields", len(dir.Fields)).
		Msg("directive extracted")

	return d.registry.Run(ctx, dir), nil
}
