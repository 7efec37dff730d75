package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const (
	tmdbName      = "tmdb"
	tmdbImageBase = "https://image.tmdb.org/t/p/w500"
	tmdbBackdrop  = "https://image.tmdb.org/t/p/original"
)

type tmdbMovie struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title"`
	Overview      string  `json:"overview"`
	ReleaseDate   string  `json:"release_date"`
	PosterPath    string  `json:"poster_path"`
	BackdropPath  string  `json:"backdrop_path"`
	VoteAverage   float64 `json:"vote_average"`
	Runtime       int     `json:"runtime"`
	Genres        []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}

type tmdbPage struct {
	Page    int         `json:"page"`
	Results []tmdbMovie `json:"results"`
}

// TMDBClient reads movies from The Movie Database v3 API.
type TMDBClient struct {
	*client
	apiKey   string
	language string
}

func NewTMDBClient(opts Options) *TMDBClient {
	return &TMDBClient{
		client:   newClient(tmdbName, opts),
		apiKey:   opts.APIKey,
		language: opts.Language,
	}
}

func (c *TMDBClient) params() url.Values {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("api_key", c.apiKey)
	}
	if c.language != "" {
		params.Set("language", c.language)
	}
	return params
}

func (c *TMDBClient) Search(ctx context.Context, query string) ([]Item, error) {
	params := c.params()
	params.Set("query", query)
	params.Set("include_adult", "false")

	var page tmdbPage
	if err := c.getJSON(ctx, "/search/movie", params, &page); err != nil {
		return nil, fmt.Errorf("tmdb search: %w", err)
	}
	return movieItems(page.Results), nil
}

// Discover lists popular movies matching the filter.
func (c *TMDBClient) Discover(ctx context.Context, filter DiscoverFilter) ([]Item, error) {
	params := c.params()
	params.Set("sort_by", "popularity.desc")
	params.Set("include_adult", "false")
	params.Set("page", "1")
	if filter.MinYear > 0 {
		params.Set("primary_release_date.gte", fmt.Sprintf("%d-01-01", filter.MinYear))
	}
	if filter.MaxYear > 0 {
		params.Set("primary_release_date.lte", fmt.Sprintf("%d-12-31", filter.MaxYear))
	}
	if filter.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(filter.MinRating, 'f', -1, 64))
	}

	var page tmdbPage
	if err := c.getJSON(ctx, "/discover/movie", params, &page); err != nil {
		return nil, fmt.Errorf("tmdb discover: %w", err)
	}
	return movieItems(page.Results), nil
}

func (c *TMDBClient) Details(ctx context.Context, id string) (*Details, error) {
	var m tmdbMovie
	if err := c.getJSON(ctx, "/movie/"+url.PathEscape(id), c.params(), &m); err != nil {
		return nil, fmt.Errorf("tmdb details: %w", err)
	}

	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	return &Details{
		ID:            strconv.FormatInt(m.ID, 10),
		Type:          KindMovie,
		Title:         m.Title,
		OriginalTitle: m.OriginalTitle,
		Overview:      m.Overview,
		PosterURL:     imageURL(tmdbImageBase, m.PosterPath),
		BackdropURL:   imageURL(tmdbBackdrop, m.BackdropPath),
		ReleaseDate:   m.ReleaseDate,
		Year:          yearOf(m.ReleaseDate),
		Rating:        m.VoteAverage,
		Runtime:       m.Runtime,
		Genres:        genres,
	}, nil
}

func movieItems(movies []tmdbMovie) []Item {
	items := make([]Item, 0, len(movies))
	for _, m := range movies {
		items = append(items, Item{
			ID:        strconv.FormatInt(m.ID, 10),
			Type:      KindMovie,
			Title:     m.Title,
			Year:      yearOf(m.ReleaseDate),
			PosterURL: imageURL(tmdbImageBase, m.PosterPath),
			Overview:  m.Overview,
			Rating:    m.VoteAverage,
		})
	}
	return items
}

func imageURL(base, path string) string {
	if path == "" {
		return ""
	}
	return base + path
}
