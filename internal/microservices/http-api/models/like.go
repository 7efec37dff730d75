package models

import "time"

type ActivityLike struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ActivityID int64     `gorm:"not null;uniqueIndex:ux_like_activity_user;index" json:"activity_id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:ux_like_activity_user" json:"user_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ActivityLike) TableName() string {
	return "activity_likes"
}
