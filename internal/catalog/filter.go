package catalog

import (
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

// Rating bounds applied when a request does not specify a range.
const (
	MinRating = 0.0
	MaxRating = 10.0
)

// Set is a set of facet values. A nil or empty Set places no restriction.
type Set map[string]struct{}

// NewSet builds a Set from values, skipping empty strings.
func NewSet(values ...string) Set {
	s := make(Set, len(values))
	for _, v := range values {
		if v != "" {
			s[v] = struct{}{}
		}
	}
	return s
}

// Has reports whether v is in the set.
func (s Set) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// RatingRange is an inclusive vote-average range.
type RatingRange struct {
	Min float64
	Max float64
}

// DefaultRatingRange covers every valid rating.
func DefaultRatingRange() RatingRange {
	return RatingRange{Min: MinRating, Max: MaxRating}
}

// Contains reports whether v lies in [Min, Max].
func (r RatingRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Criteria selects items for a filtered listing. Each present criterion must
// hold. Service and genre membership uses exact, case-sensitive equality.
type Criteria struct {
	Services Set
	Genres   Set
	// Rating is the allowed vote-average range; nil means DefaultRatingRange.
	Rating *RatingRange
}

func (c Criteria) ratingRange() RatingRange {
	if c.Rating == nil {
		return DefaultRatingRange()
	}
	return *c.Rating
}

// Matches reports whether item satisfies c.
func Matches(item *pkgcatalog.Item, c Criteria) bool {
	if len(c.Services) > 0 && !anyIn(item.StreamingServices, c.Services) {
		return false
	}
	if len(c.Genres) > 0 && !anyIn(item.Genres, c.Genres) {
		return false
	}
	return c.ratingRange().Contains(item.VoteAverage)
}

// anyIn checks whether at least one value is a member of allowed.
func anyIn(values []string, allowed Set) bool {
	for i := range values {
		if allowed.Has(values[i]) {
			return true
		}
	}
	return false
}
