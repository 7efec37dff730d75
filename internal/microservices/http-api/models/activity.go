package models

import "time"

const (
	ActivityRateContent   = "rate_content"
	ActivityReviewContent = "review_content"
)

// DedupActivityTypes are the kinds limited to one entry per (user, api_id, content_type).
var DedupActivityTypes = []string{ActivityRateContent, ActivityReviewContent}

// Activity is a feed entry. Username and AvatarURL are copied from the actor when the
// entry is first written and are not refreshed afterwards.
//
// ux_activity_dedup enforces at most one rate/review entry per (user, api_id, content_type).
type Activity struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        string    `gorm:"type:uuid;not null;index;uniqueIndex:ux_activity_dedup,where:activity_type = 'rate_content' OR activity_type = 'review_content'" json:"user_id"`
	Username      string    `gorm:"not null" json:"username"`
	AvatarURL     string    `gorm:"column:avatar_url" json:"avatar_url"`
	ActivityType  string    `gorm:"size:32;not null" json:"activity_type"`
	ContentTitle  string    `gorm:"column:content_title" json:"content_title"`
	ContentPoster string    `gorm:"column:content_poster" json:"content_poster"`
	ContentAPIID  string    `gorm:"column:content_api_id;not null;uniqueIndex:ux_activity_dedup,where:activity_type = 'rate_content' OR activity_type = 'review_content'" json:"content_api_id"`
	ContentType   string    `gorm:"size:16;not null;uniqueIndex:ux_activity_dedup,where:activity_type = 'rate_content' OR activity_type = 'review_content'" json:"content_type"`
	Rating        *int      `json:"rating"`
	ReviewText    *string   `gorm:"type:text" json:"review_text"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}

func IsDedupActivityType(kind string) bool {
	for _, k := range DedupActivityTypes {
		if k == kind {
			return true
		}
	}
	return false
}
