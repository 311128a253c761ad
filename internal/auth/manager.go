// Package auth manages the access token shared by every request of a client.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	sfmchttp "github.com/fivetwenty-io/sfmc-client/internal/http"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// TokenManager guarantees a non-expired bearer token to its callers.
//
// IsValid never performs I/O. EnsureValid is the only method that refreshes
// an expired or missing token; GetToken is EnsureValid followed by a read.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
	EnsureValid(ctx context.Context) error
	IsValid() bool
	RefreshToken(ctx context.Context) error
	SetToken(token string, expiresAt time.Time)
}

// ClientCredentialsConfig holds what the token exchange needs.
type ClientCredentialsConfig struct {
	AuthEndpoint   string
	ClientID       string
	ClientSecret   string
	BusinessUnitID string
}

type tokenRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	AccountID    string `json:"account_id,omitempty"`
}

const refreshKey = "token"

// ClientCredentialsTokenManager obtains tokens with the client_credentials
// grant. Concurrent refreshes are collapsed into a single exchange.
type ClientCredentialsTokenManager struct {
	config     ClientCredentialsConfig
	httpClient *sfmchttp.Client
	store      *TokenStore
	group      singleflight.Group
	now        func() time.Time
	logger     sfmc.Logger
}

// ManagerOption configures a ClientCredentialsTokenManager.
type ManagerOption func(*ClientCredentialsTokenManager)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *ClientCredentialsTokenManager) {
		m.now = now
	}
}

// WithHTTPClient replaces the transport used for the exchange.
func WithHTTPClient(client *sfmchttp.Client) ManagerOption {
	return func(m *ClientCredentialsTokenManager) {
		m.httpClient = client
	}
}

// WithLogger sets the logger for refresh events.
func WithLogger(logger sfmc.Logger) ManagerOption {
	return func(m *ClientCredentialsTokenManager) {
		m.logger = logger
	}
}

// NewClientCredentialsTokenManager creates a manager with no token held.
func NewClientCredentialsTokenManager(config *ClientCredentialsConfig, opts ...ManagerOption) *ClientCredentialsTokenManager {
	manager := &ClientCredentialsTokenManager{
		config: *config,
		store:  NewTokenStore(),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(manager)
	}

	if manager.httpClient == nil {
		manager.httpClient = sfmchttp.NewClient(
			strings.TrimSuffix(config.AuthEndpoint, "/"),
			nil,
			sfmchttp.WithTimeout(constants.ShortHTTPTimeout),
		)
	}

	return manager
}

// IsValid reports whether a token is held and not yet expired.
func (m *ClientCredentialsTokenManager) IsValid() bool {
	return m.store.Get().ValidAt(m.now())
}

// EnsureValid refreshes the token when it is missing or expired.
func (m *ClientCredentialsTokenManager) EnsureValid(ctx context.Context) error {
	if m.IsValid() {
		return nil
	}

	return m.shareExchange(ctx, true)
}

// GetToken returns a valid access token, refreshing if necessary.
func (m *ClientCredentialsTokenManager) GetToken(ctx context.Context) (string, error) {
	err := m.EnsureValid(ctx)
	if err != nil {
		return "", err
	}

	token := m.store.Get()
	if token == nil {
		return "", &sfmc.AuthenticationError{Err: sfmc.ErrMissingAccessToken}
	}

	return token.AccessToken, nil
}

// RefreshToken forces a token exchange.
func (m *ClientCredentialsTokenManager) RefreshToken(ctx context.Context) error {
	return m.shareExchange(ctx, false)
}

// shareExchange joins or starts the single in-flight exchange. The exchange is
// detached from the caller that started it, so one caller giving up does not
// fail the others; each caller stops waiting when its own ctx is done.
func (m *ClientCredentialsTokenManager) shareExchange(ctx context.Context, skipIfValid bool) error {
	flightCtx := context.WithoutCancel(ctx)

	results := m.group.DoChan(refreshKey, func() (interface{}, error) {
		// Another flight may have finished between the check and DoChan.
		if skipIfValid && m.IsValid() {
			return nil, nil
		}

		return nil, m.exchange(flightCtx)
	})

	select {
	case result := <-results:
		return result.Err
	case <-ctx.Done():
		return &sfmc.AuthenticationError{Err: ctx.Err()}
	}
}

// SetToken manually sets the access token.
func (m *ClientCredentialsTokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// CurrentToken returns a copy of the held token, or nil.
func (m *ClientCredentialsTokenManager) CurrentToken() *Token {
	return m.store.Get()
}

// InstanceURLs returns the tenant REST and SOAP URLs reported by the last exchange.
func (m *ClientCredentialsTokenManager) InstanceURLs() (string, string) {
	token := m.store.Get()
	if token == nil {
		return "", ""
	}

	return token.RestInstanceURL, token.SoapInstanceURL
}

func (m *ClientCredentialsTokenManager) exchange(ctx context.Context) error {
	req := &sfmchttp.Request{
		Method: http.MethodPost,
		Path:   constants.TokenPath,
		Body: tokenRequest{
			GrantType:    constants.GrantTypeClientCredentials,
			ClientID:     m.config.ClientID,
			ClientSecret: m.config.ClientSecret,
			AccountID:    m.config.BusinessUnitID,
		},
		SkipAuth: true,
	}

	resp, err := m.httpClient.Do(ctx, req)
	if err != nil {
		statusErr := &sfmchttp.StatusError{}
		if errors.As(err, &statusErr) {
			m.logError(statusErr.StatusCode)

			return &sfmc.AuthenticationError{
				StatusCode: statusErr.StatusCode,
				Body:       string(statusErr.Body),
				Err:        sfmc.ErrTokenExchangeRejected,
			}
		}

		return &sfmc.AuthenticationError{Err: err}
	}

	var token Token

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		return &sfmc.AuthenticationError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("parsing token response: %w", err),
		}
	}

	if token.AccessToken == "" {
		return &sfmc.AuthenticationError{
			StatusCode: resp.StatusCode,
			Body:       string(resp.Body),
			Err:        sfmc.ErrMissingAccessToken,
		}
	}

	token.ExpiresAt = m.now().Add(time.Duration(token.ExpiresIn) * time.Second)
	m.store.Set(&token)

	if m.logger != nil {
		m.logger.Info("access token refreshed", map[string]interface{}{
			"expires_at": token.ExpiresAt.Format(time.RFC3339),
		})
	}

	return nil
}

func (m *ClientCredentialsTokenManager) logError(statusCode int) {
	if m.logger == nil {
		return
	}

	m.logger.Error("token exchange rejected", map[string]interface{}{
		"status_code": statusCode,
	})
}
