package enrich

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	contractx "agenthub/agent/contract"
)

// Fallback strings per failure class. Enrichment failures never surface as
// transport errors; the user gets one of these instead.
const (
	fallbackMissingCredential = "⚠️ Bu özellik için gerekli API anahtarı yapılandırılmamış."
	fallbackNotFound          = "😔 Üzgünüm, aradığınız bilgiyi bulamadım."
	fallbackRateLimited       = "⏳ Servis şu anda çok yoğun, lütfen birazdan tekrar deneyin."
	fallbackUpstream          = "😔 Üzgünüm, şu anda bu bilgiye ulaşamıyorum. Lütfen daha sonra tekrar deneyin."
)

// Registry maps each directive-capable agent kind to its enricher. Built
// once at startup; read-only afterwards.
type Registry struct {
	byKind map[contractx.AgentKind]contractx.Enricher
}

func NewRegistry(enrichers ...contractx.Enricher) *Registry {
	r := &Registry{byKind: make(map[contractx.AgentKind]contractx.Enricher, len(enrichers))}
	for _, e := range enrichers {
		if e == nil {
			continue
		}
		r.byKind[e.Kind()] = e
	}
	return r
}

// Lookup returns the enricher for a kind, if any is registered.
func (r *Registry) Lookup(kind contractx.AgentKind) (contractx.Enricher, bool) {
	e, ok := r.byKind[kind]
	return e, ok
}

// Run executes the enricher matching the directive and always returns a
// user-facing string: the enriched reply on success, a fallback message
// classified by failure kind otherwise.
func (r *Registry) Run(ctx context.Context, d contractx.Directive) string {
	e, ok := r.byKind[d.Kind]
	if !ok {
		log.Warn().Str("kind", string(d.Kind)).Msg("directive parsed but no enricher registered")
		return fallbackUpstream
	}

	reply, err := e.Enrich(ctx, d.Fields)
	if err != nil {
		log.Warn().
			Err(err).
			Str("kind", string(d.Kind)).
			Msg("enrichment failed")
		return FallbackMessage(err)
	}
	return reply
}

// FallbackMessage maps a taxonomy error to its user-facing apology.
func FallbackMessage(err error) string {
	switch {
	case errors.Is(err, contractx.ErrMissingCredential):
		return fallbackMissingCredential
	case errors.Is(err, contractx.ErrNotFound):
		return fallbackNotFound
	case errors.Is(err, contractx.ErrRateLimited):
		return fallbackRateLimited
	default:
		return fallbackUpstream
	}
}
