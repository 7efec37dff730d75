package models

import "time"

type ActivityComment struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ActivityID  int64     `json:"activity_id" gorm:"not null;index"`
	UserID      string    `json:"user_id" gorm:"type:uuid;not null;index"`
	CommentText string    `json:"comment_text" gorm:"not null;type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
}

func (ActivityComment) TableName() string {
	return "activity_comments"
}
