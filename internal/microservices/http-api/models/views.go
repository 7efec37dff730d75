package models

import "time"

// Read models assembled by joins and aggregate subqueries. They have no table.

type UserSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `gorm:"column:avatar_url" json:"avatar_url"`
}

type ProfileView struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	Bio            string `json:"bio"`
	AvatarURL      string `gorm:"column:avatar_url" json:"avatar_url"`
	FollowersCount int64  `gorm:"column:followers_count" json:"followers_count"`
	FollowingCount int64  `gorm:"column:following_count" json:"following_count"`
}

// FeedEntry is an Activity decorated with engagement counters for one viewer.
type FeedEntry struct {
	ID            int64     `gorm:"column:id"`
	UserID        string    `gorm:"column:user_id"`
	Username      string    `gorm:"column:username"`
	AvatarURL     string    `gorm:"column:avatar_url"`
	ActivityType  string    `gorm:"column:activity_type"`
	ContentTitle  string    `gorm:"column:content_title"`
	ContentPoster string    `gorm:"column:content_poster"`
	ContentAPIID  string    `gorm:"column:content_api_id"`
	ContentType   string    `gorm:"column:content_type"`
	Rating        *int      `gorm:"column:rating"`
	ReviewText    *string   `gorm:"column:review_text"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	LikeCount     int64     `gorm:"column:like_count"`
	IsLiked       bool      `gorm:"column:is_liked"`
	CommentCount  int64     `gorm:"column:comment_count"`
}

// ReviewView is one platform review of a catalog item.
type ReviewView struct {
	UserID    string     `gorm:"column:user_id"`
	Username  string     `gorm:"column:username"`
	AvatarURL string     `gorm:"column:avatar_url"`
	Rating    *int       `gorm:"column:rating"`
	Review    *string    `gorm:"column:review"`
	WatchedAt *time.Time `gorm:"column:watched_at"`
}

type RatingSummary struct {
	Average float64 `gorm:"column:average"`
	Total   int64   `gorm:"column:total"`
}

type CustomListView struct {
	ID        int64     `gorm:"column:id" json:"id"`
	UserID    string    `gorm:"column:user_id" json:"user_id"`
	Name      string    `gorm:"column:name" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	ItemCount int64     `gorm:"column:item_count" json:"item_count"`
	IsAdded   bool      `gorm:"column:is_added" json:"is_added"`
}
