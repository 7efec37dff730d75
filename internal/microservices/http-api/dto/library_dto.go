package dto

import (
	"time"

	"cinelibri/internal/microservices/http-api/models"
)

// AddToLibraryRequest: payload to shelve a catalog item
type AddToLibraryRequest struct {
	APIID       string `json:"api_id"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	PosterURL   string `json:"poster_url"`
	Status      string `json:"status"`
}

// UpdateLibraryItemRequest: payload to change an item's status
type UpdateLibraryItemRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReviewRequest: payload to rate and/or review an item. Rating 0 means no rating.
type ReviewRequest struct {
	APIID       string  `json:"api_id" binding:"required"`
	ContentType string  `json:"content_type" binding:"required"`
	Rating      *int    `json:"rating"`
	Review      *string `json:"review"`
	Title       string  `json:"title"`
	PosterURL   string  `json:"poster_url"`
}

// LibraryResponse: response for a library item
type LibraryResponse struct {
	ID          int64      `json:"id"`
	UserID      string     `json:"user_id"`
	APIID       string     `json:"api_id"`
	ContentType string     `json:"content_type"`
	Title       string     `json:"title"`
	PosterURL   string     `json:"poster_url"`
	Status      string     `json:"status"`
	Rating      *int       `json:"rating"`
	Review      *string    `json:"review"`
	AddedAt     time.Time  `json:"added_at"`
	WatchedAt   *time.Time `json:"watched_at"`
}

// LibraryListResponse: list of library items
type LibraryListResponse struct {
	Items []LibraryResponse `json:"items"`
	Total int               `json:"total"`
}

func FromModelToLibraryResponse(item *models.LibraryItem) *LibraryResponse {
	return &LibraryResponse{
		ID:          item.ID,
		UserID:      item.UserID,
		APIID:       item.APIID,
		ContentType: item.ContentType,
		Title:       item.Title,
		PosterURL:   item.PosterURL,
		Status:      item.Status,
		Rating:      item.Rating,
		Review:      item.Review,
		AddedAt:     item.AddedAt,
		WatchedAt:   item.WatchedAt,
	}
}

func NewLibraryListResponse(items []models.LibraryItem) *LibraryListResponse {
	out := make([]LibraryResponse, 0, len(items))
	for i := range items {
		out = append(out, *FromModelToLibraryResponse(&items[i]))
	}
	return &LibraryListResponse{Items: out, Total: len(out)}
}
