package models

import "time"

// Follow is a directed edge: FollowerID follows FolloweeID.
type Follow struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FollowerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index:idx_follow_follower" json:"follower_id"`
	FolloweeID string    `gorm:"type:uuid;not null;uniqueIndex:idx_follow_pair;index:idx_follow_followee;check:chk_follow_not_self,follower_id <> followee_id" json:"followee_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	Follower *User `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE;" json:"-"`
	Followee *User `gorm:"foreignKey:FolloweeID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
