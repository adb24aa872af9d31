package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"itemcatalog/internal/database"
	"itemcatalog/internal/models"
)

func setupTestDB(t *testing.T) database.Service {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err, "Failed to open in-memory database")
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func seedUser(t *testing.T, db database.Service, email string) *models.User {
	t.Helper()

	user := &models.User{Name: "Test User", Email: email, Picture: "https://example.com/a.png"}
	require.NoError(t, db.Gorm().Create(user).Error)
	return user
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("Create and FindByID", func(t *testing.T) {
		user, err := repo.Create(ctx, &models.User{Name: "John", Email: "john@example.com"})
		require.NoError(t, err)
		require.NotZero(t, user.ID)

		found, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "John", found.Name)
		assert.Equal(t, "john@example.com", found.Email)
	})

	t.Run("FindByEmail returns nil for unknown email", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("FindByEmail matches exactly", func(t *testing.T) {
		found, err := repo.FindByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "John", found.Name)
	})
}

func TestCategoryRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")

	t.Run("Create and FindByName", func(t *testing.T) {
		created, err := repo.Create(ctx, &models.Category{Name: "Snowboarding", UserID: owner.ID})
		require.NoError(t, err)
		require.NotZero(t, created.ID)

		found, err := repo.FindByName(ctx, "Snowboarding")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, created.ID, found.ID)

		// Case-sensitive exact match only.
		missing, err := repo.FindByName(ctx, "snowboarding")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("UpdateName", func(t *testing.T) {
		created, err := repo.Create(ctx, &models.Category{Name: "Skating", UserID: owner.ID})
		require.NoError(t, err)

		require.NoError(t, repo.UpdateName(ctx, created.ID, "Skateboarding"))

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Skateboarding", found.Name)
	})

	t.Run("DeleteWithItems removes items filed under the category", func(t *testing.T) {
		itemRepo := NewItemRepository(db)

		category, err := repo.Create(ctx, &models.Category{Name: "Climbing", UserID: owner.ID})
		require.NoError(t, err)
		item, err := itemRepo.Create(ctx, &models.Item{Name: "Rope", CategoryID: category.ID, UserID: owner.ID})
		require.NoError(t, err)

		require.NoError(t, repo.DeleteWithItems(ctx, category.ID))

		_, err = repo.FindByID(ctx, category.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		_, err = itemRepo.FindByID(ctx, item.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestItemRepository(t *testing.T) {
	db := setupTestDB(t)
	categoryRepo := NewCategoryRepository(db)
	repo := NewItemRepository(db)
	ctx := context.Background()
	owner := seedUser(t, db, "owner@example.com")

	category, err := categoryRepo.Create(ctx, &models.Category{Name: "Snowboarding", UserID: owner.ID})
	require.NoError(t, err)
	other, err := categoryRepo.Create(ctx, &models.Category{Name: "Surfing", UserID: owner.ID})
	require.NoError(t, err)

	first, err := repo.Create(ctx, &models.Item{Name: "Snowboard", Description: "All-mountain", CategoryID: category.ID, UserID: owner.ID})
	require.NoError(t, err)
	second, err := repo.Create(ctx, &models.Item{Name: "Goggles", CategoryID: category.ID, UserID: owner.ID})
	require.NoError(t, err)

	t.Run("FindAllNewestFirst orders by descending id", func(t *testing.T) {
		items, err := repo.FindAllNewestFirst(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, second.ID, items[0].ID)
		assert.Equal(t, first.ID, items[1].ID)
	})

	t.Run("FindByIDAndCategory rejects the wrong category", func(t *testing.T) {
		found, err := repo.FindByIDAndCategory(ctx, first.ID, other.ID)
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = repo.FindByIDAndCategory(ctx, first.ID, category.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Snowboard", found.Name)
	})

	t.Run("Save round-trips every field", func(t *testing.T) {
		first.Description = "Best for any terrain"
		first.CategoryID = other.ID
		require.NoError(t, repo.Save(ctx, first))

		found, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Snowboard", found.Name)
		assert.Equal(t, "Best for any terrain", found.Description)
		assert.Equal(t, other.ID, found.CategoryID)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, second.ID))
		_, err := repo.FindByID(ctx, second.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
