package models

import "time"

const (
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Notification is addressed to UserID and caused by ActorID.
type Notification struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ActorID    string    `gorm:"type:uuid;not null" json:"actor_id"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Message    string    `json:"message"`
	ActivityID *int64    `gorm:"index" json:"activity_id"`
	IsRead     bool      `gorm:"not null;default:false" json:"is_read"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Associations
	Actor *User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE;" json:"actor,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
