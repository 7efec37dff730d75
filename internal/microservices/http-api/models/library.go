package models

import "time"

const (
	ContentTypeMovie = "movie"
	ContentTypeBook  = "book"

	StatusPlanned = "planned"
	StatusWatched = "watched"

	DefaultContentTitle  = "Unknown Title"
	DefaultContentPoster = "https://placehold.co/300x450"
)

// LibraryItem is one user's shelf entry for an external catalog item.
// Rating and Review are nil when absent.
type LibraryItem struct {
	ID          int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string     `gorm:"type:uuid;not null;uniqueIndex:ux_library_user_item;index" json:"user_id"`
	APIID       string     `gorm:"column:api_id;not null;uniqueIndex:ux_library_user_item" json:"api_id"`
	ContentType string     `gorm:"size:16;not null;uniqueIndex:ux_library_user_item" json:"content_type"`
	Title       string     `gorm:"not null" json:"title"`
	PosterURL   string     `gorm:"column:poster_url" json:"poster_url"`
	Status      string     `gorm:"size:16;not null;default:planned" json:"status"`
	Rating      *int       `gorm:"check:rating >= 1 AND rating <= 10" json:"rating"`
	Review      *string    `gorm:"type:text" json:"review"`
	AddedAt     time.Time  `gorm:"autoCreateTime;index" json:"added_at"`
	WatchedAt   *time.Time `json:"watched_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
}

func (LibraryItem) TableName() string {
	return "library_items"
}

func ValidContentType(t string) bool {
	return t == ContentTypeMovie || t == ContentTypeBook
}

func ValidStatus(s string) bool {
	return s == StatusPlanned || s == StatusWatched
}
