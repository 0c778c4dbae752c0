package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/HerbHall/stinger/internal/testutil"
	pkgcatalog "github.com/HerbHall/stinger/pkg/catalog"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	e := NewEngine(testutil.NewCatalog(t,
		testutil.NewItem(1, "War Dogs",
			testutil.WithGenres("War", "Comedy"),
			testutil.WithServices("Netflix"),
			testutil.WithRating(7.0),
			testutil.WithPopularity(10),
		),
		testutil.NewItem(2, "Comedy Night",
			testutil.WithGenres("Comedy"),
			testutil.WithServices("Hulu"),
			testutil.WithRating(8.5),
			testutil.WithPopularity(5),
		),
		testutil.NewItem(3, "Interstellar",
			testutil.WithGenres("Science Fiction"),
			testutil.WithServices("Paramount+"),
			testutil.WithRating(8.4),
			testutil.WithPopularity(80),
		),
	))
	r := chi.NewRouter()
	NewHandler(e, testutil.Logger(t)).RegisterRoutes(r)
	return r
}

func doGet(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeIDs(t *testing.T, rec *httptest.ResponseRecorder) []int {
	t.Helper()
	var items []pkgcatalog.Item
	if err := json.NewDecoder(rec.Body).Decode(&items); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	out := make([]int, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestHandler_Lists(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		want   []int
	}{
		{"all alphabetical", "/api/movies/all", []int{2, 3, 1}},
		{"all by rating", "/api/movies/all?sort=rating", []int{2, 3, 1}},
		{"all by popularity", "/api/movies/all?sort=popularity", []int{3, 1, 2}},
		{"unknown sort", "/api/movies/all?sort=bogus", []int{2, 3, 1}},
		{"filter genre by rating", "/api/movies?genres=Comedy&sort=rating", []int{2, 1}},
		{"filter services csv", "/api/movies?services=Netflix,Paramount%2B", []int{3, 1}},
		{"filter services repeated", "/api/movies?services=Netflix&services=Hulu", []int{2, 1}},
		{"filter rating range", "/api/movies?minRating=8&maxRating=8.45", []int{3}},
		{"filter no match", "/api/movies?genres=Horror", []int{}},
		{"filter none", "/api/movies", []int{2, 3, 1}},
		{"popular", "/api/movies/popular", []int{3, 1, 2}},
		{"top by genre", "/api/movies/genre/Comedy", []int{1, 2}},
		{"encoded genre", "/api/movies/genre/Science%20Fiction", []int{3}},
		{"all by genre", "/api/movies/genre/Comedy/all", []int{2, 1}},
		{"search", "/api/movies/search?q=war", []int{1}},
		{"blank search", "/api/movies/search?q=%20", []int{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(t, h, tc.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", ct)
			}
			if got := decodeIDs(t, rec); !equalIDs(got, tc.want) {
				t.Errorf("ids = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHandler_SearchResultCount(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/movies/search?q=comedy")
	if got := rec.Header().Get("X-Result-Count"); got != "1" {
		t.Errorf("X-Result-Count = %q, want 1", got)
	}
}

func TestHandler_Get(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/movies/2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var item pkgcatalog.Item
	if err := json.NewDecoder(rec.Body).Decode(&item); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if item.Title != "Comedy Night" {
		t.Errorf("Title = %q, want Comedy Night", item.Title)
	}
}

func TestHandler_Errors(t *testing.T) {
	h := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown id", "/api/movies/99", http.StatusNotFound},
		{"non-numeric id", "/api/movies/abc", http.StatusBadRequest},
		{"min rating not a number", "/api/movies?minRating=high", http.StatusBadRequest},
		{"max rating out of range", "/api/movies?maxRating=11", http.StatusBadRequest},
		{"negative min rating", "/api/movies?minRating=-1", http.StatusBadRequest},
		{"inverted range", "/api/movies?minRating=8&maxRating=3", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doGet(t, h, tc.target)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tc.status, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}
			var p struct {
				Status   int    `json:"status"`
				Instance string `json:"instance"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
				t.Fatalf("decode problem: %v", err)
			}
			if p.Status != tc.status {
				t.Errorf("problem status = %d, want %d", p.Status, tc.status)
			}
		})
	}
}

func TestHandler_StreamingServices(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/streaming-services")
	var got []string
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []string{"Hulu", "Netflix", "Paramount+"}
	if len(got) != len(want) {
		t.Fatalf("services = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("services[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHandler_Home(t *testing.T) {
	rec := doGet(t, newTestRouter(t), "/api/home")
	if rec.Code != http.StatusOK || rec.Body.String() != "Stinger" {
		t.Errorf("home = %d %q, want 200 Stinger", rec.Code, rec.Body.String())
	}
}

func TestSplitParam(t *testing.T) {
	got := splitParam([]string{"Netflix, Hulu", "", " ,Max", "Science Fiction"})
	want := []string{"Netflix", "Hulu", "Max", "Science Fiction"}
	if len(got) != len(want) {
		t.Fatalf("splitParam = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitParam[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
