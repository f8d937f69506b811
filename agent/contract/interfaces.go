package contract

import "context"

// Gateway is the language-model completion boundary.
type Gateway interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}

// Enricher turns the fields of one parsed directive into a user-facing reply
// string. Returned errors are restricted to the taxonomy in errors.go.
type Enricher interface {
	Kind() AgentKind
	Enrich(ctx context.Context, fields []string) (string, error)
}

// Dispatcher handles one user message addressed to one agent. It is the unit
// the plan executor reuses per step.
type Dispatcher interface {
	Dispatch(ctx context.Context, agentID, userMessage string) (string, error)
}
