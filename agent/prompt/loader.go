// Package prompt holds the embedded persona prompts and the static agent
// catalog built from them.
package prompt

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	contractx "agenthub/agent/contract"
)

//go:embed template/*.txt
var templates embed.FS

// load reads one embedded template. Missing files are a programmer error,
// caught the first time the catalog is built.
func load(name string) string {
	raw, err := templates.ReadFile("template/" + name + ".txt")
	if err != nil {
		panic(fmt.Sprintf("prompt template %q: %v", name, err))
	}
	return strings.TrimSpace(string(raw))
}

type entry struct {
	id      string
	name    string
	kind    contractx.AgentKind
	summary string
}

// roster is the fixed agent table of the application. IDs are the stable
// identifiers the mobile client sends.
var roster = []entry{
	{"1", "Hava Durumu Agent", contractx.KindWeather, "bir şehir için güncel hava durumunu getirir"},
	{"2", "Hesap Makinesi Agent", contractx.KindCalculator, "matematiksel hesaplamalar yapar ve açıklar"},
	{"3", "Çeviri Agent", contractx.KindTranslator, "diller arası çeviri yapar"},
	{"4", "Haber Agent", contractx.KindNews, "bir konu veya ülke için güncel haberleri getirir"},
	{"5", "Wikipedia Agent", contractx.KindWikipedia, "bir konu için Wikipedia özeti getirir"},
	{"6", "Döviz Agent", contractx.KindExchange, "iki para birimi arasındaki kuru getirir"},
	{"7", "Kod Asistan Agent", contractx.KindCode, "kod yazar, hata ayıklar ve açıklar"},
	{"8", "Görsel Agent", contractx.KindImage, "bir görseli betimler ve üretim komutu hazırlar"},
	{"9", "YouTube Agent", contractx.KindYouTube, "video arar ve önerir"},
	{"10", "Kitap Öneri Agent", contractx.KindBook, "kitap arar ve önerir"},
	{"11", "Özet Agent", contractx.KindSummary, "bir web sayfasını getirip özetler"},
	{"12", "Sözlük Agent", contractx.KindDictionary, "bir kelimenin anlamını bulur"},
	{"13", "Film/Dizi Agent", contractx.KindMovie, "film ve dizi bilgisi getirir"},
	{"14", "Müzik Agent", contractx.KindMusic, "sanatçı ve şarkı arar"},
	{"15", "Podcast Agent", contractx.KindPodcast, "podcast arar ve önerir"},
	{"16", "Oyun Agent", contractx.KindGame, "oyun bilgisi getirir"},
	{"17", "Yemek Agent", contractx.KindRecipe, "yemek tarifi arar"},
	{"18", "Fitness Agent", contractx.KindFitness, "antrenman planı ve egzersiz önerir"},
	{"19", "Motivasyon Agent", contractx.KindMotivation, "ilham verir ve cesaretlendirir"},
	{"20", "QR Kod Agent", contractx.KindQRCode, "bir metin için QR kod görseli oluşturur"},
	{"21", "IP Agent", contractx.KindIP, "bir IP adresinin konum bilgisini getirir"},
	{"22", "Rastgele Seçici Agent", contractx.KindRandom, "verilen listeden rastgele seçer"},
	{"23", "Crypto Agent", contractx.KindCrypto, "kripto para fiyatlarını getirir"},
	{"24", "Futbol Agent", contractx.KindFootball, "bir takımın gelecek maçlarını getirir"},
}

// Catalog is the immutable agent-id to descriptor table. Built once at
// startup and shared read-only between requests.
type Catalog struct {
	byID    map[string]contractx.AgentDescriptor
	idByKnd map[contractx.AgentKind]string
	generic contractx.AgentDescriptor
}

func NewCatalog() *Catalog {
	c := &Catalog{
		byID:    make(map[string]contractx.AgentDescriptor, len(roster)),
		idByKnd: make(map[contractx.AgentKind]string, len(roster)),
		generic: contractx.AgentDescriptor{
			ID:      "",
			Name:    "Asistan",
			Kind:    contractx.KindGeneric,
			Summary: "genel amaçlı yardımcı asistan",
			Persona: load("generic"),
		},
	}
	for _, e := range roster {
		c.byID[e.id] = contractx.AgentDescriptor{
			ID:      e.id,
			Name:    e.name,
			Kind:    e.kind,
			Summary: e.summary,
			Persona: load(string(e.kind)),
		}
		c.idByKnd[e.kind] = e.id
	}
	return c
}

// Resolve returns the descriptor for an agent id. An unknown id resolves to
// the generic assistant persona, never an error.
func (c *Catalog) Resolve(agentID string) contractx.AgentDescriptor {
	if d, ok := c.byID[strings.TrimSpace(agentID)]; ok {
		return d
	}
	return c.generic
}

// IDForKind maps an agent kind back to its stable id.
func (c *Catalog) IDForKind(kind contractx.AgentKind) (string, bool) {
	id, ok := c.idByKnd[kind]
	return id, ok
}

// Descriptors returns every catalog entry ordered by numeric id.
func (c *Catalog) Descriptors() []contractx.AgentDescriptor {
	out := make([]contractx.AgentDescriptor, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		a, _ := strconv.Atoi(out[i].ID)
		b, _ := strconv.Atoi(out[j].ID)
		return a < b
	})
	return out
}

// PlannerPrompt renders the planning system prompt with the one-line
// capability summary of every agent kind.
func (c *Catalog) PlannerPrompt() string {
	var b strings.Builder
	for _, d := range c.Descriptors() {
		fmt.Fprintf(&b, "- %s: %s\n", d.Kind, d.Summary)
	}
	return fmt.Sprintf(load("planner"), strings.TrimRight(b.String(), "\n"))
}
