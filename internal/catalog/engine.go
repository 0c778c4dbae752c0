// Package catalog provides the query engine that filters, sorts and ranks the
// in-memory media catalog, and the HTTP handler that exposes it.
package catalog

import (
	"sort"
	"strings"

	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// Engine answers queries over a loaded catalog. It holds no mutable state,
// so one Engine serves concurrent requests without locking.
type Engine struct {
	cat  *pkgcatalog.Catalog
	docs []document // aligned with cat.All()
}

// NewEngine creates a query engine backed by the given catalog.
func NewEngine(cat *pkgcatalog.Catalog) *Engine {
	items := cat.All()
	docs := make([]document, len(items))
	for i, it := range items {
		docs[i] = newDocument(it)
	}
	return &Engine{cat: cat, docs: docs}
}

// Len returns the number of catalog items.
func (e *Engine) Len() int {
	return e.cat.Len()
}

// Get returns the item with the given id, or an error wrapping
// pkgcatalog.ErrItemNotFound.
func (e *Engine) Get(id int) (*pkgcatalog.Item, error) {
	return e.cat.Get(id)
}

// List returns every item in the requested order.
func (e *Engine) List(opt SortOption) []*pkgcatalog.Item {
	items := e.cat.All()
	Sort(items, opt)
	return items
}

// ListFiltered returns the items matching c in the requested order. The
// result is unbounded.
func (e *Engine) ListFiltered(c Criteria, opt SortOption) []*pkgcatalog.Item {
	all := e.cat.All()
	result := make([]*pkgcatalog.Item, 0, len(all))
	for _, it := range all {
		if Matches(it, c) {
			result = append(result, it)
		}
	}
	Sort(result, opt)
	return result
}

// Search ranks items against a free-text query. Only items scoring above
// zero are returned, highest first with catalog order breaking ties, capped
// at SearchLimit. A blank query returns no results.
func (e *Engine) Search(raw string) []Result {
	q, ok := ParseQuery(raw)
	if !ok {
		return []Result{}
	}

	items := e.cat.All()
	results := make([]Result, 0)
	for i := range e.docs {
		if s := e.docs[i].score(q); s > 0 {
			results = append(results, Result{Item: items[i], Score: s})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score > results[b].Score
	})
	if len(results) > SearchLimit {
		results = results[:SearchLimit]
	}
	return results
}

// Popular returns the n most popular items. n <= 0 returns all of them.
func (e *Engine) Popular(n int) []*pkgcatalog.Item {
	return limit(e.List(SortPopularity), n)
}

// TopByGenre returns the n most popular items listing genre.
func (e *Engine) TopByGenre(genre string, n int) []*pkgcatalog.Item {
	items := e.ListFiltered(Criteria{Genres: NewSet(genre)}, SortPopularity)
	return limit(items, n)
}

// AllByGenre returns every item listing genre, alphabetically.
func (e *Engine) AllByGenre(genre string) []*pkgcatalog.Item {
	return e.ListFiltered(Criteria{Genres: NewSet(genre)}, SortAlphabetical)
}

// StreamingServices returns the distinct streaming service names across the
// catalog, sorted ignoring case.
func (e *Engine) StreamingServices() []string {
	seen := make(map[string]struct{})
	services := make([]string, 0)
	for _, it := range e.cat.All() {
		for _, s := range it.StreamingServices {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			services = append(services, s)
		}
	}

	sort.Slice(services, func(a, b int) bool {
		la, lb := strings.ToLower(services[a]), strings.ToLower(services[b])
		if la != lb {
			return la < lb
		}
		return services[a] < services[b]
	})
	return services
}

func limit(items []*pkgcatalog.Item, n int) []*pkgcatalog.Item {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
