// Package directive extracts structured bracket tags from free-text model
// completions. One grammar per agent kind; anything that does not match the
// kind's grammar exactly is treated as "no directive" and the completion
// passes through verbatim.
package directive

import (
	"fmt"
	"regexp"
	"strings"

	contractx "agenthub/agent/contract"
)

// grammar describes one tag shape: a case-sensitive bracket prefix followed
// by a fixed number of |-separated fields and a closing bracket.
type grammar struct {
	prefix    string
	fields    int
	separator string // field separator class, defaults to "|"
}

var grammars = map[contractx.AgentKind]grammar{
	contractx.KindWeather:    {prefix: "WEATHER", fields: 1},
	contractx.KindTranslator: {prefix: "TRANSLATE", fields: 3},
	contractx.KindNews:       {prefix: "NEWS", fields: 3},
	contractx.KindWikipedia:  {prefix: "WIKI", fields: 2},
	// The upstream prompt examples also emit [EXCHANGE:USD_TRY]; accept the
	// underscore form as a legacy separator alias.
	contractx.KindExchange:   {prefix: "EXCHANGE", fields: 2, separator: "|_"},
	contractx.KindYouTube:    {prefix: "YOUTUBE", fields: 1},
	contractx.KindBook:       {prefix: "BOOK", fields: 1},
	contractx.KindSummary:    {prefix: "SUMMARIZE", fields: 1},
	contractx.KindDictionary: {prefix: "DICT", fields: 2},
	contractx.KindMovie:      {prefix: "MOVIE", fields: 1},
	contractx.KindMusic:      {prefix: "MUSIC", fields: 1},
	contractx.KindPodcast:    {prefix: "PODCAST", fields: 1},
	contractx.KindGame:       {prefix: "GAME", fields: 1},
	contractx.KindRecipe:     {prefix: "RECIPE", fields: 1},
	contractx.KindQRCode:     {prefix: "QR", fields: 1},
	contractx.KindIP:         {prefix: "IP", fields: 1},
	contractx.KindRandom:     {prefix: "PICK", fields: 1},
	contractx.KindCrypto:     {prefix: "CRYPTO", fields: 1},
	contractx.KindFootball:   {prefix: "FOOTBALL", fields: 1},
}

// matchers holds one compiled pattern per kind, built at package init so a
// bad grammar fails fast instead of on the first request.
var matchers = func() map[contractx.AgentKind]*regexp.Regexp {
	out := make(map[contractx.AgentKind]*regexp.Regexp, len(grammars))
	for kind, g := range grammars {
		out[kind] = regexp.MustCompile(g.pattern())
	}
	return out
}()

func (g grammar) pattern() string {
	sep := g.separator
	if sep == "" {
		sep = "|"
	}
	// A field is any run of characters that is not a separator or bracket.
	field := fmt.Sprintf(`([^%s\[\]]+)`, regexp.QuoteMeta(sep))
	parts := make([]string, g.fields)
	for i := range parts {
		parts[i] = field
	}
	return `\[` + regexp.QuoteMeta(g.prefix) + `:` + strings.Join(parts, `[`+regexp.QuoteMeta(sep)+`]`) + `\]`
}

// Parse scans a completion for the tag grammar of the given kind. The second
// return is false when the completion carries no well-formed tag; that is
// not an error, the model simply answered directly. A malformed tag (right
// prefix, wrong field count) also yields false: guessing at malformed
// structured output is unsafe.
func Parse(kind contractx.AgentKind, completion string) (contractx.Directive, bool) {
	re, ok := matchers[kind]
	if !ok {
		return contractx.Directive{}, false
	}

	m := re.FindStringSubmatch(completion)
	if m == nil {
		return contractx.Directive{}, false
	}

	fields := make([]string, 0, len(m)-1)
	for _, f := range m[1:] {
		f = strings.TrimSpace(f)
		if f == "" {
			return contractx.Directive{}, false
		}
		fields = append(fields, f)
	}

	return contractx.Directive{Kind: kind, Fields: fields}, true
}

// HasGrammar reports whether the kind can ever emit a directive.
func HasGrammar(kind contractx.AgentKind) bool {
	_, ok := grammars[kind]
	return ok
}
