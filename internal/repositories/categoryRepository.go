package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"itemcatalog/internal/database"
	"itemcatalog/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) (*models.Category, error)
	FindByID(ctx context.Context, id uint) (*models.Category, error)
	FindByName(ctx context.Context, name string) (*models.Category, error)
	FindAll(ctx context.Context) ([]models.Category, error)
	FindByUser(ctx context.Context, userID uint) ([]models.Category, error)
	UpdateName(ctx context.Context, id uint, name string) error
	DeleteWithItems(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db database.Service
}

func NewCategoryRepository(db database.Service) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	done := observeQuery("create", "category")
	err := r.db.Gorm().WithContext(ctx).Create(category).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*models.Category, error) {
	done := observeQuery("findByID", "category")
	var category models.Category
	err := r.db.Gorm().WithContext(ctx).First(&category, id).Error
	done(err)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByName matches the exact name and returns (nil, nil) when absent.
// Uniqueness is only checked here at creation time; there is no storage
// constraint on category names.
func (r *categoryRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	done := observeQuery("findByName", "category")
	var category models.Category
	err := r.db.Gorm().WithContext(ctx).Where("name = ?", name).First(&category).Error
	done(err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding category by name: %w", err)
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	done := observeQuery("findAll", "category")
	var categories []models.Category
	err := r.db.Gorm().WithContext(ctx).Order("name ASC").Find(&categories).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("error fetching categories: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) FindByUser(ctx context.Context, userID uint) ([]models.Category, error) {
	done := observeQuery("findByUser", "category")
	var categories []models.Category
	err := r.db.Gorm().WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("error fetching categories for user: %w", err)
	}
	return categories, nil
}

func (r *categoryRepository) UpdateName(ctx context.Context, id uint, name string) error {
	done := observeQuery("updateName", "category")
	err := r.db.Gorm().WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Update("name", name).Error
	done(err)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

// DeleteWithItems removes the category and every item filed under it in one
// transaction, so no item is left pointing at a missing category.
func (r *categoryRepository) DeleteWithItems(ctx context.Context, id uint) error {
	done := observeQuery("deleteWithItems", "category")
	err := r.db.Gorm().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, id).Error
	})
	done(err)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return nil
}
