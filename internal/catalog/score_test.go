package catalog

import (
	"testing"

	"github.com/HerbHall/stinger/internal/testutil"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw        string
		wantOK     bool
		wantPhrase string
		wantTokens int
	}{
		{"", false, "", 0},
		{"   \t", false, "", 0},
		{"War", true, "war", 1},
		{"  Star   WARS ", true, "star   wars", 2},
	}
	for _, tc := range tests {
		q, ok := ParseQuery(tc.raw)
		if ok != tc.wantOK {
			t.Errorf("ParseQuery(%q) ok = %v, want %v", tc.raw, ok, tc.wantOK)
			continue
		}
		if q.Phrase != tc.wantPhrase || len(q.Tokens) != tc.wantTokens {
			t.Errorf("ParseQuery(%q) = %+v, want phrase %q with %d tokens", tc.raw, q, tc.wantPhrase, tc.wantTokens)
		}
	}
}

func TestScore(t *testing.T) {
	item := testutil.NewItem(1, "The Great War",
		testutil.WithOverview("War changes everything. WAR never ends."),
		testutil.WithKeywords("war", "post-war", "peace"),
		testutil.WithDirector("Warren Beatty"),
		testutil.WithCast("Jane Warwick", "John Doe"),
		testutil.WithStudio("Warner Bros."),
	)

	tests := []struct {
		name  string
		query string
		want  float64
	}{
		{"no match", "zebra", 0},
		{
			// phrase + title + 2 keywords + director + cast + studio + overview
			name:  "every field",
			query: "war",
			want:  PhraseBonus + TitleWeight + 2*KeywordWeight + DirectorWeight + CastWeight + StudioWeight + OverviewWeight,
		},
		{"case insensitive", "WAR", PhraseBonus + TitleWeight + 2*KeywordWeight + DirectorWeight + CastWeight + StudioWeight + OverviewWeight},
		{"phrase bonus needs whole query", "great peace", TitleWeight + KeywordWeight},
		{"multi token phrase", "great war", PhraseBonus + TitleWeight + (TitleWeight + 2*KeywordWeight + DirectorWeight + CastWeight + StudioWeight + OverviewWeight)},
		{"overview counted once", "changes", OverviewWeight},
		{"cast only", "doe", CastWeight},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, ok := ParseQuery(tc.query)
			if !ok {
				t.Fatalf("ParseQuery(%q) rejected", tc.query)
			}
			if got := Score(&item, q); got != tc.want {
				t.Errorf("Score(%q) = %v, want %v", tc.query, got, tc.want)
			}
		})
	}
}

func TestScore_RepeatedTokens(t *testing.T) {
	item := testutil.NewItem(1, "War")
	q, _ := ParseQuery("war war")
	// The phrase "war war" is not in the title; each token scores on its own.
	if got := Score(&item, q); got != 2*TitleWeight {
		t.Errorf("Score = %v, want %v", got, 2*TitleWeight)
	}
}

func TestScore_EmptyQuery(t *testing.T) {
	item := testutil.NewItem(1, "Anything")
	if got := Score(&item, Query{}); got != 0 {
		t.Errorf("Score(empty) = %v, want 0", got)
	}
}
