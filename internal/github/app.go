package github

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/go-github/v41/github"
	"golang.org/x/oauth2"

	"github.com/danielolaszy/standup/internal/config"
	"github.com/danielolaszy/standup/internal/logging"
)

// jwtLifetime is the longest lifetime GitHub accepts for an App JWT.
const jwtLifetime = 10 * time.Minute

// appTokenSource exchanges a GitHub App JWT for installation access tokens.
type appTokenSource struct {
	appID          int64
	installationID int64
	key            *rsa.PrivateKey
	endpoint       *url.URL
	httpClient     *http.Client
	now            func() time.Time
}

// newAppTokenSource reads the App private key and returns a cached token
// source that refreshes the installation token when it expires.
func newAppTokenSource(cfg config.GitHubConfig, endpoint string, httpClient *http.Client) (oauth2.TokenSource, error) {
	pem, err := os.ReadFile(cfg.PrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read github app private key: %w", err)
	}
	key, err := jwt.ParseRSAPrivateKeyFromPEM(pem)
	if err != nil {
		return nil, fmt.Errorf("failed to parse github app private key: %w", err)
	}
	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	src := &appTokenSource{
		appID:          cfg.AppID,
		installationID: cfg.InstallationID,
		key:            key,
		endpoint:       parsedURL,
		httpClient:     httpClient,
		now:            time.Now,
	}
	return oauth2.ReuseTokenSource(nil, src), nil
}

// signedJWT returns the App JWT. IssuedAt is backdated a minute to absorb clock drift.
func (s *appTokenSource) signedJWT() (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:    strconv.FormatInt(s.appID, 10),
		IssuedAt:  jwt.NewNumericDate(now.Add(-time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(jwtLifetime)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(s.key)
}

// Token implements oauth2.TokenSource.
func (s *appTokenSource) Token() (*oauth2.Token, error) {
	signed, err := s.signedJWT()
	if err != nil {
		return nil, fmt.Errorf("failed to sign github app jwt: %w", err)
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, s.httpClient)
	client := github.NewClient(oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: signed})))
	client.BaseURL = s.endpoint
	client.UploadURL = s.endpoint

	token, _, err := client.Apps.CreateInstallationToken(context.Background(), s.installationID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation token: %w", err)
	}

	logging.Debug("github installation token created",
		"installation_id", s.installationID,
		"expires_at", token.GetExpiresAt())

	return &oauth2.Token{
		AccessToken: token.GetToken(),
		TokenType:   "token",
		Expiry:      token.GetExpiresAt(),
	}, nil
}
