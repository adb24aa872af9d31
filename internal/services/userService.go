package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"itemcatalog/internal/models"
	"itemcatalog/internal/repositories"
)

// UserService exposes read-only user lookups; users are only ever created
// through the login flow.
type UserService interface {
	GetUserByID(ctx context.Context, userID uint) (*models.User, error)
}

type userServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Msg("User lookup failed")
		return nil, notFound(err)
	}
	return user, nil
}
