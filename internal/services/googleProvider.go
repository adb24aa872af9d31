package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	_ "github.com/joho/godotenv/autoload"
)

const providerTimeout = 10 * time.Second

// GoogleProvider talks to Google's four OAuth endpoints. The URLs are
// fields so tests can point them at a fake provider. Every call goes
// through one HTTP client with a bounded timeout; no call is retried.
type GoogleProvider struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	TokenInfoURL string
	UserInfoURL  string
	RevokeURL    string
	HTTPClient   *http.Client
}

func NewGoogleProvider() *GoogleProvider {
	clientID := os.Getenv("GOOGLE_CLIENT_ID")
	clientSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Warn().Msg("GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set, logins will fail")
	}

	return &GoogleProvider{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     "https://oauth2.googleapis.com/token",
		TokenInfoURL: "https://www.googleapis.com/oauth2/v1/tokeninfo",
		UserInfoURL:  "https://www.googleapis.com/oauth2/v1/userinfo",
		RevokeURL:    "https://accounts.google.com/o/oauth2/revoke",
		HTTPClient:   &http.Client{Timeout: providerTimeout},
	}
}

// TokenInfo is Google's introspection result for an access token.
type TokenInfo struct {
	Error    string `json:"error"`
	UserID   string `json:"user_id"`
	IssuedTo string `json:"issued_to"`
}

// UserInfo is the profile returned by the user-info endpoint.
type UserInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture"`
}

// Token bundles the access token with the subject claim of the id_token
// issued alongside it.
type Token struct {
	AccessToken string
	Subject     string
}

// Exchange swaps the one-time authorization code for an access token. The
// redirect URL is "postmessage" because the code is obtained by the sign-in
// script in the browser, not by a server-side redirect.
func (p *GoogleProvider) Exchange(ctx context.Context, code string) (*Token, error) {
	conf := &oauth2.Config{
		ClientID:     p.ClientID,
		ClientSecret: p.ClientSecret,
		RedirectURL:  "postmessage",
		Endpoint:     oauth2.Endpoint{TokenURL: p.TokenURL},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, _ := tok.Extra("id_token").(string)
	sub, err := idTokenSubject(rawIDToken)
	if err != nil {
		return nil, err
	}

	return &Token{AccessToken: tok.AccessToken, Subject: sub}, nil
}

// idTokenSubject pulls the subject claim out of the id_token. The token was
// just issued by the provider over TLS, so its signature is not re-verified
// here; only the claim value is needed.
func idTokenSubject(rawIDToken string) (string, error) {
	if rawIDToken == "" {
		return "", errors.New("token response carried no id_token")
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(rawIDToken, claims); err != nil {
		return "", fmt.Errorf("malformed id_token: %w", err)
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("id_token carried no subject")
	}
	return sub, nil
}

func (p *GoogleProvider) TokenInfo(ctx context.Context, accessToken string) (*TokenInfo, error) {
	infoURL := p.TokenInfoURL + "?access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var info TokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding tokeninfo response: %w", err)
	}
	return &info, nil
}

func (p *GoogleProvider) UserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	infoURL := p.UserInfoURL + "?alt=json&access_token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, infoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decoding userinfo response: %w", err)
	}
	return &info, nil
}

// Revoke invalidates the access token at the provider. A non-200 status
// means the token is still live remotely; the caller decides whether to
// clear local state anyway.
func (p *GoogleProvider) Revoke(ctx context.Context, accessToken string) error {
	revokeURL := p.RevokeURL + "?token=" + url.QueryEscape(accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, revokeURL, nil)
	if err != nil {
		return err
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("revoke endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
