// Package catalog defines the media item model and the immutable in-memory
// catalog that every query runs against.
package catalog

// Item is a single catalog entry. Field names follow the serialized catalog
// source. Items are never modified after the catalog is built.
type Item struct {
	ID          int     `json:"id" yaml:"id"`
	Language    string  `json:"language" yaml:"language"`
	Title       string  `json:"title" yaml:"title"`
	Overview    string  `json:"overview" yaml:"overview"`
	VoteAverage float64 `json:"vote_average" yaml:"vote_average"`
	Popularity  float64 `json:"popularity" yaml:"popularity"`
	ReleaseDate string  `json:"release_date" yaml:"release_date"`
	PosterPath  string  `json:"poster_path" yaml:"poster_path"`
	Runtime     int     `json:"runtime" yaml:"runtime"`

	Keywords          StringList `json:"keywords" yaml:"keywords"`
	Genres            StringList `json:"genres" yaml:"genres"`
	Cast              StringList `json:"cast" yaml:"cast"`
	Director          StringList `json:"director" yaml:"director"`
	Studio            StringList `json:"studio" yaml:"studio"`
	StreamingServices StringList `json:"streaming_service" yaml:"streaming_service"`
}

// Year returns the leading year component of ReleaseDate, or "" when the
// date is shorter than four characters.
func (it *Item) Year() string {
	if len(it.ReleaseDate) < 4 {
		return ""
	}
	return it.ReleaseDate[:4]
}

// HasGenre reports whether the item lists genre exactly (case-sensitive).
func (it *Item) HasGenre(genre string) bool {
	return it.Genres.Contains(genre)
}

// normalize gives every list field its own backing array, replacing absent
// lists with empty ones so callers never need nil checks.
func (it *Item) normalize() {
	for _, l := range []*StringList{
		&it.Keywords, &it.Genres, &it.Cast, &it.Director, &it.Studio, &it.StreamingServices,
	} {
		cloned := make(StringList, len(*l))
		copy(cloned, *l)
		*l = cloned
	}
}
