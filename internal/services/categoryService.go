package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"itemcatalog/internal/metrics"
	"itemcatalog/internal/models"
	"itemcatalog/internal/repositories"
)

// CategoryService defines the owner-scoped operations over categories.
type CategoryService interface {
	AddCategory(ctx context.Context, userID uint, name string) (*models.Category, error)
	GetCategories(ctx context.Context) ([]models.Category, error)
	GetCategoriesByUser(ctx context.Context, userID uint) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error)
	GetOwnedCategory(ctx context.Context, userID, categoryID uint) (*models.Category, error)
	RenameCategory(ctx context.Context, userID, categoryID uint, name string) (*models.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID uint) error
}

type categoryServiceImpl struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) AddCategory(ctx context.Context, userID uint, name string) (*models.Category, error) {
	log.Debug().Uint("userID", userID).Str("categoryName", name).Msg("Attempting to add category")
	if name == "" {
		return nil, ErrEmptyName
	}

	existing, err := s.categoryRepo.FindByName(ctx, name)
	if err != nil {
		log.Error().Err(err).Str("categoryName", name).Msg("Failed to check category name")
		return nil, err
	}
	if existing != nil {
		log.Warn().Uint("userID", userID).Str("categoryName", name).Msg("Category name already exists")
		return nil, ErrDuplicateName
	}

	category, err := s.categoryRepo.Create(ctx, &models.Category{Name: name, UserID: userID})
	if err != nil {
		log.Error().Err(err).Str("categoryName", name).Uint("userID", userID).Msg("Failed to insert category")
		return nil, err
	}

	metrics.CategoryCreatedTotal.Inc()
	log.Info().Uint("userID", userID).Uint("categoryID", category.ID).Str("categoryName", category.Name).Msg("Category added successfully")
	return category, nil
}

func (s *categoryServiceImpl) GetCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error finding categories")
		return nil, err
	}
	return categories, nil
}

func (s *categoryServiceImpl) GetCategoriesByUser(ctx context.Context, userID uint) ([]models.Category, error) {
	categories, err := s.categoryRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Error finding categories for user")
		return nil, err
	}
	return categories, nil
}

func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, categoryID uint) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		log.Warn().Err(err).Uint("categoryID", categoryID).Msg("Category lookup failed")
		return nil, notFound(err)
	}
	return category, nil
}

// GetOwnedCategory runs the shared existence-then-ownership guard and
// returns the category when the acting user owns it.
func (s *categoryServiceImpl) GetOwnedCategory(ctx context.Context, userID, categoryID uint) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err := requireOwner(category, err, userID); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("categoryID", categoryID).Msg("Category ownership guard failed")
		return nil, err
	}
	return category, nil
}

// RenameCategory silently ignores an empty name instead of rejecting it;
// the category is returned unchanged.
func (s *categoryServiceImpl) RenameCategory(ctx context.Context, userID, categoryID uint, name string) (*models.Category, error) {
	log.Debug().Uint("userID", userID).Uint("categoryID", categoryID).Str("name", name).Msg("Attempting to rename category")
	category, err := s.GetOwnedCategory(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if name == "" {
		return category, nil
	}

	if err := s.categoryRepo.UpdateName(ctx, categoryID, name); err != nil {
		log.Error().Err(err).Uint("categoryID", categoryID).Msg("Failed to rename category")
		return nil, err
	}

	category.Name = name
	log.Info().Uint("userID", userID).Uint("categoryID", categoryID).Msg("Category renamed successfully")
	return category, nil
}

// DeleteCategory removes the category together with all items filed under
// it, so no dangling category references survive.
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, userID, categoryID uint) error {
	log.Debug().Uint("userID", userID).Uint("categoryID", categoryID).Msg("Attempting to delete category")
	if _, err := s.GetOwnedCategory(ctx, userID, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeleteWithItems(ctx, categoryID); err != nil {
		log.Error().Err(err).Uint("categoryID", categoryID).Msg("Failed to delete category")
		return err
	}

	log.Info().Uint("userID", userID).Uint("categoryID", categoryID).Msg("Category deleted successfully")
	return nil
}
