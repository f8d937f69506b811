package contract

// AgentKind identifies the behavior of an agent. The set is closed; adding a
// kind means adding a persona, usually a directive grammar, and an enricher.
type AgentKind string

const (
	KindWeather    AgentKind = "weather"
	KindCalculator AgentKind = "calculator"
	KindTranslator AgentKind = "translator"
	KindNews       AgentKind = "news"
	KindWikipedia  AgentKind = "wikipedia"
	KindExchange   AgentKind = "exchange"
	KindCode       AgentKind = "code"
	KindImage      AgentKind = "image"
	KindYouTube    AgentKind = "youtube"
	KindBook       AgentKind = "book"
	KindSummary    AgentKind = "summary"
	KindDictionary AgentKind = "dictionary"
	KindMovie      AgentKind = "movie"
	KindMusic      AgentKind = "music"
	KindPodcast    AgentKind = "podcast"
	KindGame       AgentKind = "game"
	KindRecipe     AgentKind = "recipe"
	KindFitness    AgentKind = "fitness"
	KindMotivation AgentKind = "motivation"
	KindQRCode     AgentKind = "qrcode"
	KindIP         AgentKind = "ip"
	KindRandom     AgentKind = "random"
	KindCrypto     AgentKind = "crypto"
	KindFootball   AgentKind = "football"
	KindGeneric    AgentKind = "generic"
)

// SummarySeparator splits a short summary from the longer detail inside one
// reply string. The UI and persistence layer treat replies opaquely, so the
// token must stay stable.
const SummarySeparator = "---DETAY---"

// AgentDescriptor maps a stable agent id to its behavior kind and persona
// prompt. The catalog of descriptors is built once at startup and never
// mutated afterwards.
type AgentDescriptor struct {
	ID      string
	Name    string
	Kind    AgentKind
	Summary string
	Persona string
}

// Directive is one structured instruction extracted from a free-text model
// completion. Immutable once parsed; at most one is acted upon per reply.
type Directive struct {
	Kind   AgentKind
	Fields []string
}

// Plan is the ordered multi-agent execution plan produced in coordinate mode.
type Plan struct {
	Explanation string `json:"explanation"`
	Steps       []Step `json:"steps"`
}

// Step names one agent kind, a task description, and the input text. Input
// may embed a placeholder referencing an earlier step's output.
type Step struct {
	Agent AgentKind `json:"agent"`
	Task  string    `json:"task"`
	Input string    `json:"input"`
}

// StepResult is one entry of the append-only execution log kept for a single
// coordinate request. Err is the recorded failure message; Output and Err are
// mutually exclusive.
type StepResult struct {
	Index  int
	Agent  AgentKind
	Output string
	Err    string
}

// OK reports whether the step produced usable output.
func (r StepResult) OK() bool {
	return r.Err == ""
}
