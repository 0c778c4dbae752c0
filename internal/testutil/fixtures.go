package testutil

import (
	"testing"

	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// ItemOption customizes a fixture item.
type ItemOption func(*pkgcatalog.Item)

// NewItem returns an Item with neutral defaults: mid rating, zero
// popularity and empty lists.
func NewItem(id int, title string, opts ...ItemOption) pkgcatalog.Item {
	it := pkgcatalog.Item{
		ID:                id,
		Language:          "en",
		Title:             title,
		VoteAverage:       5,
		ReleaseDate:       "2020-01-01",
		Keywords:          pkgcatalog.StringList{},
		Genres:            pkgcatalog.StringList{},
		Cast:              pkgcatalog.StringList{},
		Director:          pkgcatalog.StringList{},
		Studio:            pkgcatalog.StringList{},
		StreamingServices: pkgcatalog.StringList{},
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

// WithOverview sets the overview text.
func WithOverview(s string) ItemOption {
	return func(it *pkgcatalog.Item) { it.Overview = s }
}

// WithRating sets the vote average.
func WithRating(r float64) ItemOption {
	return func(it *pkgcatalog.Item) { it.VoteAverage = r }
}

// WithPopularity sets the popularity score.
func WithPopularity(p float64) ItemOption {
	return func(it *pkgcatalog.Item) { it.Popularity = p }
}

// WithReleaseDate sets the release date string.
func WithReleaseDate(d string) ItemOption {
	return func(it *pkgcatalog.Item) { it.ReleaseDate = d }
}

// WithGenres sets the genre list.
func WithGenres(g ...string) ItemOption {
	return func(it *pkgcatalog.Item) { it.Genres = g }
}

// WithServices sets the streaming service list.
func WithServices(s ...string) ItemOption {
	return func(it *pkgcatalog.Item) { it.StreamingServices = s }
}

// WithKeywords sets the keyword list.
func WithKeywords(k ...string) ItemOption {
	return func(it *pkgcatalog.Item) { it.Keywords = k }
}

// WithCast sets the cast list.
func WithCast(c ...string) ItemOption {
	return func(it *pkgcatalog.Item) { it.Cast = c }
}

// WithDirector sets the director list.
func WithDirector(d ...string) ItemOption {
	return func(it *pkgcatalog.Item) { it.Director = d }
}

// WithStudio sets the studio list.
func WithStudio(s ...string) ItemOption {
	return func(it *pkgcatalog.Item) { it.Studio = s }
}

// NewCatalog builds a catalog from items, failing the test on error.
func NewCatalog(t testing.TB, items ...pkgcatalog.Item) *pkgcatalog.Catalog {
	t.Helper()
	c, err := pkgcatalog.New(items)
	if err != nil {
		t.Fatalf("testutil.NewCatalog: %v", err)
	}
	return c
}
