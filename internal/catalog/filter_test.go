package catalog

import (
	"testing"

	"github.com/HerbHall/stinger/internal/testutil"
)

func TestMatches(t *testing.T) {
	item := testutil.NewItem(1, "War Dogs",
		testutil.WithGenres("War", "Comedy"),
		testutil.WithServices("Netflix", "Hulu"),
		testutil.WithRating(7.0),
	)

	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"empty criteria pass through", Criteria{}, true},
		{"empty sets pass through", Criteria{Services: NewSet(), Genres: NewSet()}, true},
		{"one of several services", Criteria{Services: NewSet("Max", "Hulu")}, true},
		{"no matching service", Criteria{Services: NewSet("Max")}, false},
		{"service case sensitive", Criteria{Services: NewSet("netflix")}, false},
		{"one of several genres", Criteria{Genres: NewSet("Drama", "Comedy")}, true},
		{"no matching genre", Criteria{Genres: NewSet("Drama")}, false},
		{"genre case sensitive", Criteria{Genres: NewSet("comedy")}, false},
		{"facets combine with AND", Criteria{Services: NewSet("Netflix"), Genres: NewSet("Drama")}, false},
		{"all facets hold", Criteria{Services: NewSet("Netflix"), Genres: NewSet("War")}, true},
		{"rating inside range", Criteria{Rating: &RatingRange{Min: 6, Max: 8}}, true},
		{"rating at lower bound", Criteria{Rating: &RatingRange{Min: 7, Max: 10}}, true},
		{"rating at upper bound", Criteria{Rating: &RatingRange{Min: 0, Max: 7}}, true},
		{"rating below range", Criteria{Rating: &RatingRange{Min: 7.5, Max: 10}}, false},
		{"rating above range", Criteria{Rating: &RatingRange{Min: 0, Max: 6.9}}, false},
		{"rating fails despite facets", Criteria{Genres: NewSet("War"), Rating: &RatingRange{Min: 9, Max: 10}}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(&item, tc.criteria); got != tc.want {
				t.Errorf("Matches() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatches_ItemWithoutFacets(t *testing.T) {
	item := testutil.NewItem(2, "Bare")

	if !Matches(&item, Criteria{}) {
		t.Error("item without facets should pass empty criteria")
	}
	if Matches(&item, Criteria{Genres: NewSet("Drama")}) {
		t.Error("item without genres should fail a genre criterion")
	}
}

func TestNewSet_SkipsEmpty(t *testing.T) {
	s := NewSet("", "Netflix", "")
	if len(s) != 1 || !s.Has("Netflix") {
		t.Errorf("NewSet = %v, want {Netflix}", s)
	}
}

func TestDefaultRatingRange(t *testing.T) {
	r := DefaultRatingRange()
	for _, v := range []float64{0, 5, 10} {
		if !r.Contains(v) {
			t.Errorf("default range should contain %v", v)
		}
	}
	for _, v := range []float64{-0.1, 10.1} {
		if r.Contains(v) {
			t.Errorf("default range should not contain %v", v)
		}
	}
}
