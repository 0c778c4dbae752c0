package catalog

import (
	"strings"

	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// Relevance weights. Every list entry that contains a token scores on its
// own, so two matching keywords add 2*KeywordWeight.
const (
	PhraseBonus    = 20.0
	TitleWeight    = 10.0
	KeywordWeight  = 5.0
	DirectorWeight = 8.0
	CastWeight     = 8.0
	StudioWeight   = 3.0
	OverviewWeight = 1.0
)

// SearchLimit caps the number of search results.
const SearchLimit = 25

// Query is a normalized free-text search query.
type Query struct {
	// Phrase is the lowercased, trimmed query.
	Phrase string
	// Tokens are the whitespace-separated words of Phrase.
	Tokens []string
}

// ParseQuery normalizes raw. It returns false when raw is blank.
func ParseQuery(raw string) (Query, bool) {
	phrase := strings.ToLower(strings.TrimSpace(raw))
	if phrase == "" {
		return Query{}, false
	}
	return Query{Phrase: phrase, Tokens: strings.Fields(phrase)}, true
}

// Result pairs an item with its score for one request. Scores are never
// stored on the shared item.
type Result struct {
	Item  *pkgcatalog.Item `json:"item"`
	Score float64          `json:"score"`
}

// Score computes the relevance of item to q. It is zero when nothing matches.
func Score(item *pkgcatalog.Item, q Query) float64 {
	d := newDocument(item)
	return d.score(q)
}

// document holds the lowercased searchable fields of an item.
type document struct {
	title    string
	overview string
	keywords []string
	director []string
	cast     []string
	studio   []string
}

func newDocument(item *pkgcatalog.Item) document {
	return document{
		title:    strings.ToLower(item.Title),
		overview: strings.ToLower(item.Overview),
		keywords: lowerAll(item.Keywords),
		director: lowerAll(item.Director),
		cast:     lowerAll(item.Cast),
		studio:   lowerAll(item.Studio),
	}
}

func (d *document) score(q Query) float64 {
	if q.Phrase == "" {
		return 0
	}

	var total float64
	if strings.Contains(d.title, q.Phrase) {
		total += PhraseBonus
	}
	for _, tok := range q.Tokens {
		if strings.Contains(d.title, tok) {
			total += TitleWeight
		}
		total += KeywordWeight * float64(countContaining(d.keywords, tok))
		total += DirectorWeight * float64(countContaining(d.director, tok))
		total += CastWeight * float64(countContaining(d.cast, tok))
		total += StudioWeight * float64(countContaining(d.studio, tok))
		if strings.Contains(d.overview, tok) {
			total += OverviewWeight
		}
	}
	return total
}

func countContaining(values []string, tok string) int {
	n := 0
	for _, v := range values {
		if strings.Contains(v, tok) {
			n++
		}
	}
	return n
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
