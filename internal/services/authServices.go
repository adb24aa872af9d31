package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"itemcatalog/internal/metrics"
	"itemcatalog/internal/models"
	"itemcatalog/internal/repositories"
	"itemcatalog/internal/session"
	"itemcatalog/internal/utils"
)

const stateLength = 32

// LoginResult is what the welcome fragment renders after a completed login.
type LoginResult struct {
	Identity         session.Identity
	AlreadyConnected bool
}

// AuthService runs the Google sign-in handshake and maps provider
// identities to local users. It never touches the HTTP request itself; the
// handler passes session values in and stores the returned identity.
type AuthService interface {
	BeginLogin() (string, error)
	CompleteLogin(ctx context.Context, current session.Identity, sessionState, presentedState, code string) (*LoginResult, error)
	Logout(ctx context.Context, current session.Identity) error
	ClientID() string
}

type authService struct {
	provider *GoogleProvider
	userRepo repositories.UserRepository
}

func NewAuthService(provider *GoogleProvider, userRepo repositories.UserRepository) AuthService {
	return &authService{provider: provider, userRepo: userRepo}
}

func (a *authService) ClientID() string {
	return a.provider.ClientID
}

// BeginLogin issues a fresh anti-forgery token. The caller stores it in the
// session, replacing any token from an earlier unfinished attempt.
func (a *authService) BeginLogin() (string, error) {
	state, err := utils.GenerateLoginState(stateLength)
	if err != nil {
		log.Error().Err(err).Msg("Failed to generate login state")
		return "", err
	}
	return state, nil
}

func (a *authService) CompleteLogin(ctx context.Context, current session.Identity, sessionState, presentedState, code string) (*LoginResult, error) {
	if sessionState == "" || presentedState != sessionState {
		log.Warn().Msg("Login state mismatch")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, ErrStateMismatch
	}

	token, err := a.provider.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("Authorization code exchange failed")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrExchangeFailed, err)
	}

	info, err := a.provider.TokenInfo(ctx, token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("Token introspection call failed")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrProviderError, err)
	}
	if info.Error != "" {
		log.Error().Str("provider_error", info.Error).Msg("Token introspection returned an error")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %s", ErrProviderError, info.Error)
	}

	if info.UserID != token.Subject {
		log.Warn().Msg("Introspected token subject does not match id_token subject")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, ErrTokenIdentityMismatch
	}

	if info.IssuedTo != a.provider.ClientID {
		log.Warn().Str("issued_to", info.IssuedTo).Msg("Token was issued to a different client")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, ErrClientMismatch
	}

	if current.AccessToken != "" && current.GoogleID == token.Subject {
		log.Info().Str("email", current.Email).Msg("Current user is already connected")
		return &LoginResult{Identity: current, AlreadyConnected: true}, nil
	}

	profile, err := a.provider.UserInfo(ctx, token.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("Fetching user info failed")
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("%w: %v", ErrProviderError, err)
	}

	// Some accounts expose no display name; fall back to the email local part.
	username := profile.Name
	if username == "" {
		username = profile.Email
		if i := strings.Index(profile.Email, "@"); i > 0 {
			username = profile.Email[:i]
		}
	}

	user, err := a.findOrCreateUser(ctx, username, profile)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	log.Info().Str("email", profile.Email).Uint("user_id", user.ID).Msg("Login successful")

	return &LoginResult{
		Identity: session.Identity{
			UserID:      user.ID,
			Username:    username,
			Email:       profile.Email,
			Picture:     profile.Picture,
			AccessToken: token.AccessToken,
			GoogleID:    token.Subject,
		},
	}, nil
}

func (a *authService) findOrCreateUser(ctx context.Context, username string, profile *UserInfo) (*models.User, error) {
	user, err := a.userRepo.FindByEmail(ctx, profile.Email)
	if err != nil {
		log.Error().Err(err).Str("email", profile.Email).Msg("Error finding user by email")
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	user, err = a.userRepo.Create(ctx, &models.User{
		Name:    username,
		Email:   profile.Email,
		Picture: profile.Picture,
	})
	if err != nil {
		log.Error().Err(err).Str("email", profile.Email).Msg("Error creating new user")
		return nil, err
	}
	metrics.NewUsersTotal.Inc()
	log.Info().Str("email", profile.Email).Uint("user_id", user.ID).Msg("New user created")
	return user, nil
}

// Logout revokes the access token at the provider. The caller clears the
// local session whatever the outcome: a failed remote revocation still logs
// the user out of this application.
func (a *authService) Logout(ctx context.Context, current session.Identity) error {
	if current.AccessToken == "" {
		return ErrNotConnected
	}

	if err := a.provider.Revoke(ctx, current.AccessToken); err != nil {
		log.Warn().Err(err).Msg("Token revocation failed")
		return errors.Join(ErrRevokeFailed, err)
	}

	log.Info().Str("email", current.Email).Msg("User disconnected from provider")
	return nil
}
