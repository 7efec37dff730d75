package dto

import (
	"time"

	"cinelibri/internal/catalog"
)

type SearchResponse struct {
	Movies []catalog.Item `json:"movies"`
	Books  []catalog.Item `json:"books"`
}

type PopularResponse struct {
	Movies []catalog.Item `json:"movies"`
	Books  []catalog.Item `json:"books"`
}

type ReviewResponse struct {
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	AvatarURL string     `json:"avatar_url"`
	Rating    *int       `json:"rating"`
	Review    *string    `json:"review"`
	WatchedAt *time.Time `json:"watched_at"`
}

// ContentDetailsResponse merges upstream metadata with platform reviews and the
// viewer's own shelf entry.
type ContentDetailsResponse struct {
	catalog.Details
	Reviews        []ReviewResponse `json:"reviews"`
	PlatformRating float64          `json:"platform_rating"`
	TotalVotes     int64            `json:"total_votes"`
	MyRating       *int             `json:"my_rating"`
	MyReview       *string          `json:"my_review"`
	MyStatus       string           `json:"my_status,omitempty"`
	LibraryID      *int64           `json:"library_id"`
}
