package plan

import (
	"context"
	"errors"
	"strings"
	"testing"

	contractx "agenthub/agent/contract"
	promptx "agenthub/agent/prompt"
)

// scriptedDispatcher answers per agent id and records every call.
type scriptedDispatcher struct {
	replies map[string]string
	errs    map[string]error
	calls   []struct{ agentID, message string }
}

func (s *scriptedDispatcher) Dispatch(ctx context.Context, agentID, userMessage string) (string, error) {
	s.calls = append(s.calls, struct{ agentID, message string }{agentID, userMessage})
	if err, ok := s.errs[agentID]; ok {
		return "", err
	}
	return s.replies[agentID], nil
}

func TestExecuteChainsStepOutputs(t *testing.T) {
	t.Parallel()

	// Crypto is agent "23", exchange is "6".
	disp := &scriptedDispatcher{replies: map[string]string{
		"23": "₿ Bitcoin: $65000.00 USD",
		"6":  "💱 1 USD = 34.5678 TRY",
	}}
	ex, err := NewExecutor(disp, promptx.NewCatalog())
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	p := contractx.Plan{
		Explanation: "Önce bitcoin fiyatı, sonra kur.",
		Steps: []contractx.Step{
			{Agent: contractx.KindCrypto, Task: "bitcoin fiyatı", Input: "bitcoin"},
			{Agent: contractx.KindExchange, Task: "kur çevir", Input: "{{step:1}} karşılığında USD TRY kuru"},
		},
	}

	results := ex.Execute(context.Background(), p)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if !results[0].OK() || !results[1].OK() {
		t.Fatalf("all steps must succeed: %#v", results)
	}
	if len(disp.calls) != 2 {
		t.Fatalf("dispatch calls = %d, want 2", len(disp.calls))
	}
	if got := disp.calls[1].message; !strings.Contains(got, "₿ Bitcoin: $65000.00 USD") {
		t.Fatalf("step 2 input must embed step 1 output, got %q", got)
	}
}

func TestExecuteFailedStepDoesNotAbort(t *testing.T) {
	t.Parallel()

	disp := &scriptedDispatcher{
		replies: map[string]string{"1": "güneşli", "5": "özet"},
		errs:    map[string]error{"4": errors.New("haber servisi çöktü")},
	}
	ex, err := NewExecutor(disp, promptx.NewCatalog())
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	p := contractx.Plan{Steps: []contractx.Step{
		{Agent: contractx.KindWeather, Task: "hava", Input: "İstanbul"},
		{Agent: contractx.KindNews, Task: "haber", Input: "ekonomi"},
		{Agent: contractx.KindWikipedia, Task: "özetle", Input: "{{step:2}} hakkında bilgi"},
	}}

	results := ex.Execute(context.Background(), p)
	if len(results) != 3 {
		t.Fatalf("results = %d, want 3; a failed step must not abort the plan", len(results))
	}
	if results[1].OK() {
		t.Fatal("step 2 must be recorded as failed")
	}
	if !results[2].OK() {
		t.Fatalf("step 3 must still run: %#v", results[2])
	}
	// The reference to the failed step stays literal.
	if got := disp.calls[2].message; !strings.Contains(got, "{{step:2}}") {
		t.Fatalf("placeholder to failed step must stay literal, got %q", got)
	}
}

func TestExecuteUnknownKindIsSkipped(t *testing.T) {
	t.Parallel()

	disp := &scriptedDispatcher{replies: map[string]string{"1": "güneşli"}}
	ex, err := NewExecutor(disp, promptx.NewCatalog())
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	p := contractx.Plan{Steps: []contractx.Step{
		{Agent: contractx.AgentKind("teleport"), Task: "ışınla", Input: "ay"},
		{Agent: contractx.KindWeather, Task: "hava", Input: "Ankara"},
	}}

	results := ex.Execute(context.Background(), p)
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].OK() {
		t.Fatal("unknown kind must be recorded as failed")
	}
	if !strings.Contains(results[0].Err, "bilinmeyen agent") {
		t.Fatalf("failure note = %q", results[0].Err)
	}
	if len(disp.calls) != 1 {
		t.Fatalf("dispatch calls = %d, want 1 (unknown kind never dispatches)", len(disp.calls))
	}
}

func TestExecuteEmptyInputFallsBackToTask(t *testing.T) {
	t.Parallel()

	disp := &scriptedDispatcher{replies: map[string]string{"19": "Devam et, başaracaksın!"}}
	ex, err := NewExecutor(disp, promptx.NewCatalog())
	if err != nil {
		t.Fatalf("NewExecutor() error = %v", err)
	}

	p := contractx.Plan{Steps: []contractx.Step{
		{Agent: contractx.KindMotivation, Task: "kullanıcıyı motive et"},
	}}

	ex.Execute(context.Background(), p)
	if got := disp.calls[0].message; got != "kullanıcıyı motive et" {
		t.Fatalf("message = %q, want the task text", got)
	}
}

func TestResolveInputAliases(t *testing.T) {
	t.Parallel()

	results := []contractx.StepResult{
		{Index: 0, Agent: contractx.KindCrypto, Output: "65000"},
		{Index: 1, Agent: contractx.KindExchange, Output: "34.56"},
	}

	tests := []struct {
		name      string
		input     string
		stepIndex int
		want      string
	}{
		{"canonical step", "fiyat {{step:1}}", 2, "fiyat 65000"},
		{"canonical previous", "kur {{previous}}", 2, "kur 34.56"},
		{"legacy bracket", "fiyat [STEP_1_OUTPUT]", 2, "fiyat 65000"},
		{"legacy previous", "kur PREVIOUS_OUTPUT", 2, "kur 34.56"},
		{"forward reference stays literal", "{{step:2}}", 1, "{{step:2}}"},
		{"out of range stays literal", "{{step:9}}", 2, "{{step:9}}"},
		{"previous on first step stays literal", "{{previous}}", 0, "{{previous}}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := resolveInput(tt.input, tt.stepIndex, results); got != tt.want {
				t.Fatalf("resolveInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	t.Parallel()

	p := contractx.Plan{
		Explanation: "İki adımda hallediyorum.",
		Steps: []contractx.Step{
			{Agent: contractx.KindCrypto, Task: "bitcoin fiyatı"},
			{Agent: contractx.KindExchange, Task: "kur çevir"},
		},
	}
	results := []contractx.StepResult{
		{Index: 0, Agent: contractx.KindCrypto, Output: "₿ $65000"},
		{Index: 1, Agent: contractx.KindExchange, Err: "servis hatası"},
	}

	out := Transcript(p, results)
	if !strings.HasPrefix(out, "🤖 İki adımda hallediyorum.") {
		t.Fatalf("transcript must open with the explanation:\n%s", out)
	}
	for _, want := range []string{"Adım 1", "₿ $65000", "Adım 2", "⚠️ Bu adım tamamlanamadı."} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "servis hatası") {
		t.Fatalf("raw step error must not leak into the transcript:\n%s", out)
	}
}
