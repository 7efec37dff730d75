// Package catalog talks to the external movie and book catalogs.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const (
	KindMovie = "movie"
	KindBook  = "book"
)

var (
	// ErrNotFound means the upstream answered but does not know the id.
	ErrNotFound = errors.New("catalog item not found")
	// ErrUnavailable means the breaker is rejecting calls to the upstream.
	ErrUnavailable = errors.New("catalog provider unavailable")
	// ErrUnsupportedKind is returned for kinds other than movie and book.
	ErrUnsupportedKind = errors.New("unsupported content kind")
)

// Item is a search or discovery hit. Year is 0 when the upstream has no usable date.
type Item struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Year      int     `json:"year,omitempty"`
	PosterURL string  `json:"poster_url"`
	Overview  string  `json:"overview,omitempty"`
	Rating    float64 `json:"rating"`
}

type Details struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title,omitempty"`
	Overview      string   `json:"overview"`
	PosterURL     string   `json:"poster_url"`
	BackdropURL   string   `json:"backdrop_url,omitempty"`
	ReleaseDate   string   `json:"release_date,omitempty"`
	Year          int      `json:"year,omitempty"`
	Rating        float64  `json:"rating"`
	Runtime       int      `json:"runtime,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	Authors       []string `json:"authors,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	PageCount     int      `json:"page_count,omitempty"`
}

// DiscoverFilter narrows movie discovery. Zero fields are ignored.
type DiscoverFilter struct {
	MinYear   int
	MaxYear   int
	MinRating float64
}

// Provider is the read-only catalog surface the services depend on.
type Provider interface {
	SearchMovies(ctx context.Context, query string) ([]Item, error)
	DiscoverMovies(ctx context.Context, filter DiscoverFilter) ([]Item, error)
	SearchBooks(ctx context.Context, query string) ([]Item, error)
	Details(ctx context.Context, kind, id string) (*Details, error)
}

// Catalog routes calls to the movie and book upstreams.
type Catalog struct {
	movies *TMDBClient
	books  *GoogleBooksClient
}

func New(movies *TMDBClient, books *GoogleBooksClient) *Catalog {
	return &Catalog{movies: movies, books: books}
}

func (c *Catalog) SearchMovies(ctx context.Context, query string) ([]Item, error) {
	return c.movies.Search(ctx, query)
}

func (c *Catalog) DiscoverMovies(ctx context.Context, filter DiscoverFilter) ([]Item, error) {
	return c.movies.Discover(ctx, filter)
}

func (c *Catalog) SearchBooks(ctx context.Context, query string) ([]Item, error) {
	return c.books.Search(ctx, query)
}

func (c *Catalog) Details(ctx context.Context, kind, id string) (*Details, error) {
	switch kind {
	case KindMovie:
		return c.movies.Details(ctx, id)
	case KindBook:
		return c.books.Details(ctx, id)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKind, kind)
	}
}

// yearOf extracts the leading four-digit year of a date such as "1999-03-31".
func yearOf(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}
