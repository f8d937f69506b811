package plan

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "agenthub/agent/contract"
	promptx "agenthub/agent/prompt"
)

type Executor struct {
	dispatcher contractx.Dispatcher
	catalog    *promptx.Catalog
}

func NewExecutor(dispatcher contractx.Dispatcher, catalog *promptx.Catalog) (*Executor, error) {
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if catalog == nil {
		return nil, errors.New("agent catalog is required")
	}
	return &Executor{dispatcher: dispatcher, catalog: catalog}, nil
}

// Execute runs the plan strictly sequentially and returns the full result
// log. One step's failure never aborts the plan: the failure is recorded and
// the next step runs with whatever context resolved.
func (e *Executor) Execute(ctx context.Context, p contractx.Plan) []contractx.StepResult {
	results := make([]contractx.StepResult, 0, len(p.Steps))

	for i, step := range p.Steps {
		input := resolveInput(step.Input, i, results)

		agentID, ok := e.catalog.IDForKind(step.Agent)
		if !ok {
			log.Warn().
				Int("step", i+1).
				Str("kind", string(step.Agent)).
				Msg("plan step names unknown agent kind, skipping")
			results = append(results, contractx.StepResult{
				Index: i,
				Agent: step.Agent,
				Err:   fmt.Sprintf("bilinmeyen agent: %s", step.Agent),
			})
			continue
		}

		message := input
		if task := strings.TrimSpace(step.Task); task != "" && message == "" {
			message = task
		}

		output, err := e.dispatcher.Dispatch(ctx, agentID, message)
		if err != nil {
			log.Warn().Err(err).Int("step", i+1).Str("agent_id", agentID).Msg("plan step failed")
			results = append(results, contractx.StepResult{
				Index: i,
				Agent: step.Agent,
				Err:   err.Error(),
			})
			continue
		}

		results = append(results, contractx.StepResult{
			Index:  i,
			Agent:  step.Agent,
			Output: output,
		})
	}

	return results
}

// Transcript renders the full-transcript presentation: the plan explanation
// as header, then every step's output (or failure note) in order.
func Transcript(p contractx.Plan, results []contractx.StepResult) string {
	var b strings.Builder
	if expl := strings.TrimSpace(p.Explanation); expl != "" {
		b.WriteString("🤖 " + expl + "\n")
	}

	for _, r := range results {
		name := string(r.Agent)
		if task := stepTask(p, r.Index); task != "" {
			name = fmt.Sprintf("%s — %s", r.Agent, task)
		}
		fmt.Fprintf(&b, "\n▸ Adım %d (%s):\n", r.Index+1, name)
		if r.OK() {
			b.WriteString(r.Output + "\n")
		} else {
			fmt.Fprintf(&b, "⚠️ Bu adım tamamlanamadı.\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func stepTask(p contractx.Plan, index int) string {
	if index < 0 || index >= len(p.Steps) {
		return ""
	}
	return strings.TrimSpace(p.Steps[index].Task)
}
