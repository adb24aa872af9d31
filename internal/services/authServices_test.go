package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemcatalog/internal/database"
	"itemcatalog/internal/models"
	"itemcatalog/internal/repositories"
	"itemcatalog/internal/session"
)

const (
	testClientID = "client-123.apps.googleusercontent.com"
	testSubject  = "google-user-42"
)

// fakeGoogle stands in for all four provider endpoints. Each field can be
// bent per test to make a single step of the handshake fail.
type fakeGoogle struct {
	server *httptest.Server

	tokenStatus  int
	subject      string
	tokenInfo    TokenInfo
	userInfo     UserInfo
	revokeStatus int
	revokeCalls  int
}

func newFakeGoogle(t *testing.T) *fakeGoogle {
	t.Helper()

	f := &fakeGoogle{
		tokenStatus: http.StatusOK,
		subject:     testSubject,
		tokenInfo:   TokenInfo{UserID: testSubject, IssuedTo: testClientID},
		userInfo: UserInfo{
			Name:    "Carol Danvers",
			Email:   "carol@example.com",
			Picture: "https://example.com/carol.png",
		},
		revokeStatus: http.StatusOK,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		if f.tokenStatus != http.StatusOK {
			http.Error(w, `{"error":"invalid_grant"}`, f.tokenStatus)
			return
		}
		idToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": f.subject,
		}).SignedString([]byte("test-key"))
		require.NoError(t, err)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "access-token-abc",
			"token_type":   "Bearer",
			"id_token":     idToken,
		})
	})
	mux.HandleFunc("/tokeninfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.tokenInfo)
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(f.userInfo)
	})
	mux.HandleFunc("/revoke", func(w http.ResponseWriter, r *http.Request) {
		f.revokeCalls++
		w.WriteHeader(f.revokeStatus)
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeGoogle) provider() *GoogleProvider {
	return &GoogleProvider{
		ClientID:     testClientID,
		ClientSecret: "shhh",
		TokenURL:     f.server.URL + "/token",
		TokenInfoURL: f.server.URL + "/tokeninfo",
		UserInfoURL:  f.server.URL + "/userinfo",
		RevokeURL:    f.server.URL + "/revoke",
		HTTPClient:   f.server.Client(),
	}
}

func setupAuth(t *testing.T) (*fakeGoogle, AuthService, database.Service) {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	fake := newFakeGoogle(t)
	svc := NewAuthService(fake.provider(), repositories.NewUserRepository(db))
	return fake, svc, db
}

func TestBeginLogin(t *testing.T) {
	_, svc, _ := setupAuth(t)

	first, err := svc.BeginLogin()
	require.NoError(t, err)
	assert.Len(t, first, 32)
	assert.Regexp(t, "^[A-Z0-9]+$", first)

	second, err := svc.BeginLogin()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestCompleteLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a local user on first login", func(t *testing.T) {
		_, svc, db := setupAuth(t)

		result, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "auth-code")
		require.NoError(t, err)

		assert.False(t, result.AlreadyConnected)
		assert.Equal(t, "Carol Danvers", result.Identity.Username)
		assert.Equal(t, "carol@example.com", result.Identity.Email)
		assert.Equal(t, "access-token-abc", result.Identity.AccessToken)
		assert.Equal(t, testSubject, result.Identity.GoogleID)

		var user models.User
		require.NoError(t, db.Gorm().First(&user, result.Identity.UserID).Error)
		assert.Equal(t, "carol@example.com", user.Email)
	})

	t.Run("reuses the existing user on a later login", func(t *testing.T) {
		_, svc, db := setupAuth(t)

		existing := &models.User{Name: "Carol Danvers", Email: "carol@example.com"}
		require.NoError(t, db.Gorm().Create(existing).Error)

		result, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "auth-code")
		require.NoError(t, err)
		assert.Equal(t, existing.ID, result.Identity.UserID)

		var count int64
		require.NoError(t, db.Gorm().Model(&models.User{}).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("falls back to the email local part when the profile has no name", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)
		fake.userInfo.Name = ""

		result, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "auth-code")
		require.NoError(t, err)
		assert.Equal(t, "carol", result.Identity.Username)
	})

	t.Run("rejects a state that does not match the session", func(t *testing.T) {
		_, svc, _ := setupAuth(t)

		_, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE2", "auth-code")
		assert.ErrorIs(t, err, ErrStateMismatch)
	})

	t.Run("rejects when the session holds no state at all", func(t *testing.T) {
		_, svc, _ := setupAuth(t)

		_, err := svc.CompleteLogin(ctx, session.Identity{}, "", "", "auth-code")
		assert.ErrorIs(t, err, ErrStateMismatch)
	})

	t.Run("surfaces a failed code exchange", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)
		fake.tokenStatus = http.StatusBadRequest

		_, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "bad-code")
		assert.ErrorIs(t, err, ErrExchangeFailed)
	})

	t.Run("surfaces an introspection error field", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)
		fake.tokenInfo.Error = "invalid_token"

		_, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "auth-code")
		assert.ErrorIs(t, err, ErrProviderError)
	})

	t.Run("rejects a token whose subject disagrees with the id_token", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)
		fake.tokenInfo.UserID = "someone-else"

		_, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "auth-code")
		assert.ErrorIs(t, err, ErrTokenIdentityMismatch)
	})

	t.Run("rejects a token issued to a different client", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)
		fake.tokenInfo.IssuedTo = "other-client.apps.googleusercontent.com"

		_, err := svc.CompleteLogin(ctx, session.Identity{}, "STATE1", "STATE1", "auth-code")
		assert.ErrorIs(t, err, ErrClientMismatch)
	})

	t.Run("is a no-op when the same user is already connected", func(t *testing.T) {
		_, svc, _ := setupAuth(t)

		current := session.Identity{
			UserID:      7,
			Username:    "Carol Danvers",
			Email:       "carol@example.com",
			AccessToken: "old-access-token",
			GoogleID:    testSubject,
		}
		result, err := svc.CompleteLogin(ctx, current, "STATE1", "STATE1", "auth-code")
		require.NoError(t, err)
		assert.True(t, result.AlreadyConnected)
		assert.Equal(t, current, result.Identity)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes the token at the provider", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)

		err := svc.Logout(ctx, session.Identity{AccessToken: "access-token-abc"})
		require.NoError(t, err)
		assert.Equal(t, 1, fake.revokeCalls)
	})

	t.Run("without a token there is nothing to revoke", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)

		err := svc.Logout(ctx, session.Identity{})
		assert.ErrorIs(t, err, ErrNotConnected)
		assert.Zero(t, fake.revokeCalls)
	})

	t.Run("reports a revocation the provider refused", func(t *testing.T) {
		fake, svc, _ := setupAuth(t)
		fake.revokeStatus = http.StatusBadRequest

		err := svc.Logout(ctx, session.Identity{AccessToken: "stale-token"})
		assert.ErrorIs(t, err, ErrRevokeFailed)
	})
}
