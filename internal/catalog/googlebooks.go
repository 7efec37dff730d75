package catalog

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
)

const (
	googleBooksName       = "googlebooks"
	googleBooksMaxResults = "20"
)

var htmlTag = regexp.MustCompile(`<[^>]*>`)

type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title         string   `json:"title"`
		Subtitle      string   `json:"subtitle"`
		Authors       []string `json:"authors"`
		Publisher     string   `json:"publisher"`
		PublishedDate string   `json:"publishedDate"`
		Description   string   `json:"description"`
		PageCount     int      `json:"pageCount"`
		Categories    []string `json:"categories"`
		AverageRating float64  `json:"averageRating"`
		ImageLinks    struct {
			SmallThumbnail string `json:"smallThumbnail"`
			Thumbnail      string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

type volumeList struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

// GoogleBooksClient reads books from the Google Books volumes API.
type GoogleBooksClient struct {
	*client
	apiKey   string
	language string
}

// NewGoogleBooksClient expects opts.Language as a two-letter code used for langRestrict.
func NewGoogleBooksClient(opts Options) *GoogleBooksClient {
	return &GoogleBooksClient{
		client:   newClient(googleBooksName, opts),
		apiKey:   opts.APIKey,
		language: opts.Language,
	}
}

func (c *GoogleBooksClient) Search(ctx context.Context, query string) ([]Item, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("printType", "books")
	params.Set("maxResults", googleBooksMaxResults)
	if c.language != "" {
		params.Set("langRestrict", c.language)
	}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var list volumeList
	if err := c.getJSON(ctx, "", params, &list); err != nil {
		return nil, fmt.Errorf("google books search: %w", err)
	}

	items := make([]Item, 0, len(list.Items))
	for _, v := range list.Items {
		info := v.VolumeInfo
		items = append(items, Item{
			ID:        v.ID,
			Type:      KindBook,
			Title:     info.Title,
			Year:      yearOf(info.PublishedDate),
			PosterURL: secureURL(info.ImageLinks.Thumbnail),
			Overview:  plainText(info.Description),
			Rating:    info.AverageRating,
		})
	}
	return items, nil
}

func (c *GoogleBooksClient) Details(ctx context.Context, id string) (*Details, error) {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	var v volume
	if err := c.getJSON(ctx, "/"+url.PathEscape(id), params, &v); err != nil {
		return nil, fmt.Errorf("google books details: %w", err)
	}

	info := v.VolumeInfo
	title := info.Title
	if info.Subtitle != "" {
		title += ": " + info.Subtitle
	}
	return &Details{
		ID:          v.ID,
		Type:        KindBook,
		Title:       title,
		Overview:    plainText(info.Description),
		PosterURL:   secureURL(info.ImageLinks.Thumbnail),
		ReleaseDate: info.PublishedDate,
		Year:        yearOf(info.PublishedDate),
		Rating:      info.AverageRating,
		Genres:      info.Categories,
		Authors:     info.Authors,
		Publisher:   info.Publisher,
		PageCount:   info.PageCount,
	}, nil
}

// secureURL upgrades http thumbnail links to https.
func secureURL(u string) string {
	if strings.HasPrefix(u, "http://") {
		return "https://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(htmlTag.ReplaceAllString(s, "")))
}
