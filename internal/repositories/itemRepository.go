package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"itemcatalog/internal/database"
	"itemcatalog/internal/models"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.Item) (*models.Item, error)
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	FindByName(ctx context.Context, name string) (*models.Item, error)
	FindByIDAndCategory(ctx context.Context, id, categoryID uint) (*models.Item, error)
	FindAll(ctx context.Context) ([]models.Item, error)
	FindAllNewestFirst(ctx context.Context) ([]models.Item, error)
	FindByCategory(ctx context.Context, categoryID uint) ([]models.Item, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Item, error)
	Save(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uint) error
}

type itemRepository struct {
	db database.Service
}

func NewItemRepository(db database.Service) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	done := observeQuery("create", "item")
	err := r.db.Gorm().WithContext(ctx).Create(item).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

func (r *itemRepository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	done := observeQuery("findByID", "item")
	var item models.Item
	err := r.db.Gorm().WithContext(ctx).First(&item, id).Error
	done(err)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByName matches the exact name anywhere in the catalog and returns
// (nil, nil) when absent. Item names are unique across the whole catalog,
// not per category.
func (r *itemRepository) FindByName(ctx context.Context, name string) (*models.Item, error) {
	done := observeQuery("findByName", "item")
	var item models.Item
	err := r.db.Gorm().WithContext(ctx).Where("name = ?", name).First(&item).Error
	done(err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding item by name: %w", err)
	}
	return &item, nil
}

// FindByIDAndCategory returns (nil, nil) when the item exists but is filed
// under a different category.
func (r *itemRepository) FindByIDAndCategory(ctx context.Context, id, categoryID uint) (*models.Item, error) {
	done := observeQuery("findByIDAndCategory", "item")
	var item models.Item
	err := r.db.Gorm().WithContext(ctx).Where("id = ? AND category_id = ?", id, categoryID).First(&item).Error
	done(err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding item in category: %w", err)
	}
	return &item, nil
}

func (r *itemRepository) FindAll(ctx context.Context) ([]models.Item, error) {
	done := observeQuery("findAll", "item")
	var items []models.Item
	err := r.db.Gorm().WithContext(ctx).Find(&items).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("error fetching items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindAllNewestFirst(ctx context.Context) ([]models.Item, error) {
	done := observeQuery("findAllNewestFirst", "item")
	var items []models.Item
	err := r.db.Gorm().WithContext(ctx).Order("id DESC").Find(&items).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("error fetching items: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindByCategory(ctx context.Context, categoryID uint) ([]models.Item, error) {
	done := observeQuery("findByCategory", "item")
	var items []models.Item
	err := r.db.Gorm().WithContext(ctx).Where("category_id = ?", categoryID).Find(&items).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("error fetching items in category: %w", err)
	}
	return items, nil
}

func (r *itemRepository) FindByUser(ctx context.Context, userID uint) ([]models.Item, error) {
	done := observeQuery("findByUser", "item")
	var items []models.Item
	err := r.db.Gorm().WithContext(ctx).Where("user_id = ?", userID).Find(&items).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("error fetching items for user: %w", err)
	}
	return items, nil
}

func (r *itemRepository) Save(ctx context.Context, item *models.Item) error {
	done := observeQuery("save", "item")
	err := r.db.Gorm().WithContext(ctx).Save(item).Error
	done(err)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id uint) error {
	done := observeQuery("delete", "item")
	err := r.db.Gorm().WithContext(ctx).Delete(&models.Item{}, id).Error
	done(err)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
