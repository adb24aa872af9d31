package repositories

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"itemcatalog/internal/database"
	"itemcatalog/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	db database.Service
}

func NewUserRepository(db database.Service) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	done := observeQuery("create", "user")
	err := r.db.Gorm().WithContext(ctx).Create(user).Error
	done(err)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	done := observeQuery("findByID", "user")
	var user models.User
	err := r.db.Gorm().WithContext(ctx).First(&user, id).Error
	done(err)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns (nil, nil) when no user carries the email, so callers
// can distinguish "unknown user" from a query failure.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	done := observeQuery("findByEmail", "user")
	var user models.User
	err := r.db.Gorm().WithContext(ctx).Where("email = ?", email).First(&user).Error
	done(err)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error finding user by email: %w", err)
	}
	return &user, nil
}
