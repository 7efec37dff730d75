package models

import "time"

type CustomList struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Name      string    `gorm:"not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (CustomList) TableName() string {
	return "custom_lists"
}

type CustomListItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ListID      int64     `gorm:"not null;uniqueIndex:ux_list_item" json:"list_id"`
	APIID       string    `gorm:"column:api_id;not null;uniqueIndex:ux_list_item" json:"api_id"`
	ContentType string    `gorm:"size:16;not null;uniqueIndex:ux_list_item" json:"content_type"`
	Title       string    `json:"title"`
	PosterURL   string    `gorm:"column:poster_url" json:"poster_url"`
	AddedAt     time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Associations
	List *CustomList `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (CustomListItem) TableName() string {
	return "custom_list_items"
}
