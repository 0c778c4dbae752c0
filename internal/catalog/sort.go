package catalog

import (
	"sort"
	"strings"

	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// SortOption selects the ordering of a listing.
type SortOption int

const (
	// SortAlphabetical orders by title ascending, ignoring case.
	SortAlphabetical SortOption = iota
	// SortRating orders by vote average descending.
	SortRating
	// SortPopularity orders by popularity descending.
	SortPopularity
)

func (o SortOption) String() string {
	switch o {
	case SortRating:
		return "rating"
	case SortPopularity:
		return "popularity"
	default:
		return "alphabetical"
	}
}

// ParseSortOption maps request input to a SortOption. Empty or unknown input
// yields SortAlphabetical.
func ParseSortOption(s string) SortOption {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rating":
		return SortRating
	case "popularity":
		return SortPopularity
	default:
		return SortAlphabetical
	}
}

// Sort orders items in place. Items with equal keys keep their relative order.
func Sort(items []*pkgcatalog.Item, opt SortOption) {
	switch opt {
	case SortRating:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].VoteAverage > items[b].VoteAverage
		})
	case SortPopularity:
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].Popularity > items[b].Popularity
		})
	default:
		sortByTitle(items)
	}
}

// sortByTitle lowercases each title once rather than on every comparison.
func sortByTitle(items []*pkgcatalog.Item) {
	keyed := make([]titleKey, len(items))
	for i, it := range items {
		keyed[i] = titleKey{key: strings.ToLower(it.Title), item: it}
	}
	sort.SliceStable(keyed, func(a, b int) bool {
		return keyed[a].key < keyed[b].key
	})
	for i := range keyed {
		items[i] = keyed[i].item
	}
}

type titleKey struct {
	key  string
	item *pkgcatalog.Item
}
