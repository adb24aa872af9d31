package services

import "errors"

// Catalog errors. Handlers translate these into a flash message plus a
// redirect; none of them reach the browser as a raw failure.
var (
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrDuplicateName = errors.New("name already exists")
	ErrNotFound      = errors.New("record not found")
	ErrForbidden     = errors.New("not authorised")

	// ErrItemNotInCategory: both ids exist but the item is filed elsewhere.
	ErrItemNotInCategory = errors.New("item does not belong to category")
)

// Login errors. The /gconnect exchange is called by client-side script, so
// these surface as JSON bodies with a 401/500 status instead of a redirect.
var (
	ErrStateMismatch         = errors.New("invalid state parameter")
	ErrExchangeFailed        = errors.New("failed to upgrade the authorization code")
	ErrProviderError         = errors.New("identity provider returned an error")
	ErrTokenIdentityMismatch = errors.New("token's user ID doesn't match given user ID")
	ErrClientMismatch        = errors.New("token's client ID does not match with application")
	ErrNotConnected          = errors.New("current user not connected")
	ErrRevokeFailed          = errors.New("failed to revoke token for given user")
)
