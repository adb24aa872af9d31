package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"itemcatalog/internal/metrics"
	"itemcatalog/internal/models"
	"itemcatalog/internal/repositories"
)

// CategoryListing is the items-in-category view: the category itself, its
// items and the item count.
type CategoryListing struct {
	Category *models.Category
	Items    []models.Item
	Total    int
}

// ItemService defines the owner-scoped operations over items.
type ItemService interface {
	AddItem(ctx context.Context, userID uint, name, description string, categoryID uint) (*models.Item, error)
	GetItems(ctx context.Context) ([]models.Item, error)
	GetItemsNewestFirst(ctx context.Context) ([]models.Item, error)
	GetItemsByUser(ctx context.Context, userID uint) ([]models.Item, error)
	GetItemByID(ctx context.Context, itemID uint) (*models.Item, error)
	GetOwnedItem(ctx context.Context, userID, itemID uint) (*models.Item, error)
	GetItemInCategory(ctx context.Context, categoryID, itemID uint) (*models.Item, error)
	ItemsInCategory(ctx context.Context, categoryID uint) (*CategoryListing, error)
	UpdateItem(ctx context.Context, userID, itemID uint, update models.ItemUpdate) (*models.Item, error)
	DeleteItem(ctx context.Context, userID, itemID uint) error
}

type itemServiceImpl struct {
	itemRepo     repositories.ItemRepository
	categoryRepo repositories.CategoryRepository
}

func NewItemService(itemRepo repositories.ItemRepository, categoryRepo repositories.CategoryRepository) ItemService {
	return &itemServiceImpl{itemRepo: itemRepo, categoryRepo: categoryRepo}
}

// AddItem rejects a name that any item in the catalog already carries; item
// names are unique globally, not per category. The category's owner is not
// cross-checked against the acting user.
func (s *itemServiceImpl) AddItem(ctx context.Context, userID uint, name, description string, categoryID uint) (*models.Item, error) {
	log.Debug().Uint("userID", userID).Str("itemName", name).Uint("categoryID", categoryID).Msg("Attempting to add item")

	existing, err := s.itemRepo.FindByName(ctx, name)
	if err != nil {
		log.Error().Err(err).Str("itemName", name).Msg("Failed to check item name")
		return nil, err
	}
	if existing != nil {
		log.Warn().Uint("userID", userID).Str("itemName", name).Msg("Item name already exists in the catalog")
		return nil, ErrDuplicateName
	}

	item, err := s.itemRepo.Create(ctx, &models.Item{
		Name:        name,
		Description: description,
		CategoryID:  categoryID,
		UserID:      userID,
	})
	if err != nil {
		log.Error().Err(err).Str("itemName", name).Uint("userID", userID).Msg("Failed to insert item")
		return nil, err
	}

	metrics.ItemCreatedTotal.Inc()
	log.Info().Uint("userID", userID).Uint("itemID", item.ID).Str("itemName", item.Name).Msg("Item added successfully")
	return item, nil
}

func (s *itemServiceImpl) GetItems(ctx context.Context) ([]models.Item, error) {
	items, err := s.itemRepo.FindAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error finding items")
		return nil, err
	}
	return items, nil
}

func (s *itemServiceImpl) GetItemsNewestFirst(ctx context.Context) ([]models.Item, error) {
	items, err := s.itemRepo.FindAllNewestFirst(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Error finding items")
		return nil, err
	}
	return items, nil
}

func (s *itemServiceImpl) GetItemsByUser(ctx context.Context, userID uint) ([]models.Item, error) {
	items, err := s.itemRepo.FindByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Error finding items for user")
		return nil, err
	}
	return items, nil
}

func (s *itemServiceImpl) GetItemByID(ctx context.Context, itemID uint) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		log.Warn().Err(err).Uint("itemID", itemID).Msg("Item lookup failed")
		return nil, notFound(err)
	}
	return item, nil
}

// GetOwnedItem runs the shared existence-then-ownership guard and returns
// the item when the acting user owns it.
func (s *itemServiceImpl) GetOwnedItem(ctx context.Context, userID, itemID uint) (*models.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err := requireOwner(item, err, userID); err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("itemID", itemID).Msg("Item ownership guard failed")
		return nil, err
	}
	return item, nil
}

// GetItemInCategory returns ErrNotFound when either id does not exist and
// ErrItemNotInCategory when both exist but the item is filed elsewhere.
func (s *itemServiceImpl) GetItemInCategory(ctx context.Context, categoryID, itemID uint) (*models.Item, error) {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return nil, notFound(err)
	}
	if _, err := s.itemRepo.FindByID(ctx, itemID); err != nil {
		return nil, notFound(err)
	}

	item, err := s.itemRepo.FindByIDAndCategory(ctx, itemID, categoryID)
	if err != nil {
		log.Error().Err(err).Uint("itemID", itemID).Uint("categoryID", categoryID).Msg("Error finding item in category")
		return nil, err
	}
	if item == nil {
		log.Warn().Uint("itemID", itemID).Uint("categoryID", categoryID).Msg("Item does not belong to category")
		return nil, ErrItemNotInCategory
	}
	return item, nil
}

func (s *itemServiceImpl) ItemsInCategory(ctx context.Context, categoryID uint) (*CategoryListing, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		log.Warn().Err(err).Uint("categoryID", categoryID).Msg("Category lookup failed")
		return nil, notFound(err)
	}

	items, err := s.itemRepo.FindByCategory(ctx, categoryID)
	if err != nil {
		log.Error().Err(err).Uint("categoryID", categoryID).Msg("Error finding items in category")
		return nil, err
	}

	return &CategoryListing{Category: category, Items: items, Total: len(items)}, nil
}

// UpdateItem applies only the fields present in the update; an absent or
// blank field keeps its prior value rather than being cleared.
func (s *itemServiceImpl) UpdateItem(ctx context.Context, userID, itemID uint, update models.ItemUpdate) (*models.Item, error) {
	log.Debug().Uint("userID", userID).Uint("itemID", itemID).Msg("Attempting to update item")
	item, err := s.GetOwnedItem(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil && *update.Name != "" {
		item.Name = *update.Name
	}
	if update.Description != nil && *update.Description != "" {
		item.Description = *update.Description
	}
	if update.CategoryID != nil && *update.CategoryID != 0 {
		item.CategoryID = *update.CategoryID
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		log.Error().Err(err).Uint("itemID", itemID).Msg("Failed to update item")
		return nil, err
	}

	log.Info().Uint("userID", userID).Uint("itemID", itemID).Msg("Item updated successfully")
	return item, nil
}

func (s *itemServiceImpl) DeleteItem(ctx context.Context, userID, itemID uint) error {
	log.Debug().Uint("userID", userID).Uint("itemID", itemID).Msg("Attempting to delete item")
	if _, err := s.GetOwnedItem(ctx, userID, itemID); err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		log.Error().Err(err).Uint("itemID", itemID).Msg("Failed to delete item")
		return err
	}

	log.Info().Uint("userID", userID).Uint("itemID", itemID).Msg("Item deleted successfully")
	return nil
}
