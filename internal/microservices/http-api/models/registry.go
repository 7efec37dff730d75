package models

// All returns every persisted model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Follow{},
		&LibraryItem{},
		&Activity{},
		&ActivityLike{},
		&ActivityComment{},
		&Notification{},
		&CustomList{},
		&CustomListItem{},
	}
}
