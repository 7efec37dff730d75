package repository

import (
	"context"
	"fmt"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CustomListRepository interface {
	Create(ctx context.Context, list *models.CustomList) error
	GetOwned(ctx context.Context, userID string, listID int64) (*models.CustomList, error)
	ListByUser(ctx context.Context, userID, checkAPIID, checkType string) ([]models.CustomListView, error)
	Delete(ctx context.Context, userID string, listID int64) error
	AddItem(ctx context.Context, item *models.CustomListItem) error
	ListItems(ctx context.Context, listID int64) ([]models.CustomListItem, error)
	RemoveItem(ctx context.Context, listID int64, apiID string) error
}

type customListRepository struct {
	db *gorm.DB
}

func NewCustomListRepository(db *gorm.DB) CustomListRepository {
	return &customListRepository{db: db}
}

func (r *customListRepository) Create(ctx context.Context, list *models.CustomList) error {
	if err := r.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	return nil
}

func (r *customListRepository) GetOwned(ctx context.Context, userID string, listID int64) (*models.CustomList, error) {
	var list models.CustomList
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", listID, userID).
		First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// ListByUser returns the user's lists with item counts. When checkAPIID is set,
// IsAdded reports whether that item is already on each list.
func (r *customListRepository) ListByUser(ctx context.Context, userID, checkAPIID, checkType string) ([]models.CustomListView, error) {
	q := r.db.WithContext(ctx).Table("custom_lists AS cl")
	if checkAPIID != "" {
		q = q.Select(`cl.id, cl.user_id, cl.name, cl.created_at,
			(SELECT COUNT(*) FROM custom_list_items i WHERE i.list_id = cl.id) AS item_count,
			EXISTS (SELECT 1 FROM custom_list_items i WHERE i.list_id = cl.id AND i.api_id = ? AND i.content_type = ?) AS is_added`,
			checkAPIID, checkType)
	} else {
		q = q.Select(`cl.id, cl.user_id, cl.name, cl.created_at,
			(SELECT COUNT(*) FROM custom_list_items i WHERE i.list_id = cl.id) AS item_count,
			FALSE AS is_added`)
	}

	var lists []models.CustomListView
	if err := q.Where("cl.user_id = ?", userID).
		Order("cl.created_at DESC").
		Order("cl.id DESC").
		Scan(&lists).Error; err != nil {
		return nil, fmt.Errorf("list custom lists: %w", err)
	}
	return lists, nil
}

// Delete removes an owned list and its items.
func (r *customListRepository) Delete(ctx context.Context, userID string, listID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var list models.CustomList
		if err := tx.Where("id = ? AND user_id = ?", listID, userID).First(&list).Error; err != nil {
			return err
		}
		if err := tx.Where("list_id = ?", listID).Delete(&models.CustomListItem{}).Error; err != nil {
			return fmt.Errorf("delete list items: %w", err)
		}
		if err := tx.Delete(&list).Error; err != nil {
			return fmt.Errorf("delete list: %w", err)
		}
		return nil
	})
}

// AddItem yields ErrDuplicate when the item is already on the list.
func (r *customListRepository) AddItem(ctx context.Context, item *models.CustomListItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("add list item: %w", err)
	}
	return nil
}

func (r *customListRepository) ListItems(ctx context.Context, listID int64) ([]models.CustomListItem, error) {
	var items []models.CustomListItem
	if err := r.db.WithContext(ctx).
		Where("list_id = ?", listID).
		Order("added_at DESC").
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *customListRepository) RemoveItem(ctx context.Context, listID int64, apiID string) error {
	res := r.db.WithContext(ctx).
		Where("list_id = ? AND api_id = ?", listID, apiID).
		Delete(&models.CustomListItem{})
	if res.Error != nil {
		return fmt.Errorf("remove list item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
