package services

import (
	"errors"

	"gorm.io/gorm"
)

// owned is any resource that records its owning user.
type owned interface {
	OwnerID() uint
}

// requireOwner is the two-step guard shared by every mutating operation:
// the resource must exist, and its owner must be the acting user. Pass the
// lookup result straight in; a gorm not-found error becomes ErrNotFound.
func requireOwner(resource owned, lookupErr error, userID uint) error {
	if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if lookupErr != nil {
		return lookupErr
	}
	if resource.OwnerID() != userID {
		return ErrForbidden
	}
	return nil
}

// notFound maps a gorm not-found lookup error onto the domain taxonomy for
// read-only paths that need no ownership check.
func notFound(lookupErr error) error {
	if errors.Is(lookupErr, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return lookupErr
}
