package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrNoConfigPersister = errors.New("no config persister configured")
)

// ConfigPersister stores a refreshed token so later processes can reuse it.
type ConfigPersister interface {
	UpdateAccessToken(clientID, token string, expiresAt time.Time) error
}

// ConfigTokenManager wraps ClientCredentialsTokenManager and persists every
// newly issued token through a ConfigPersister.
type ConfigTokenManager struct {
	manager         *ClientCredentialsTokenManager
	configPersister ConfigPersister
	clientID        string
	mutex           sync.Mutex
	lastToken       string
	lastExpiry      time.Time
}

// NewConfigTokenManager creates a config-persisting token manager. A non-empty
// initialToken seeds the wrapped manager so no exchange happens while it is valid.
func NewConfigTokenManager(manager *ClientCredentialsTokenManager, configPersister ConfigPersister, clientID string, initialToken string, initialExpiry time.Time) *ConfigTokenManager {
	if initialToken != "" {
		manager.SetToken(initialToken, initialExpiry)
	}

	return &ConfigTokenManager{
		manager:         manager,
		configPersister: configPersister,
		clientID:        clientID,
		lastToken:       initialToken,
		lastExpiry:      initialExpiry,
	}
}

// GetToken returns a valid access token, refreshing and persisting if necessary.
func (m *ConfigTokenManager) GetToken(ctx context.Context) (string, error) {
	token, err := m.manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// EnsureValid refreshes an expired token and persists the replacement.
func (m *ConfigTokenManager) EnsureValid(ctx context.Context) error {
	err := m.manager.EnsureValid(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// IsValid reports whether the held token is usable.
func (m *ConfigTokenManager) IsValid() bool {
	return m.manager.IsValid()
}

// RefreshToken forces a token refresh.
func (m *ConfigTokenManager) RefreshToken(ctx context.Context) error {
	err := m.manager.RefreshToken(ctx)
	if err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token. The token is not persisted.
func (m *ConfigTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.manager.SetToken(token, expiresAt)
	m.lastToken = token
	m.lastExpiry = expiresAt
}

// GetTokenExpiry returns the current token's expiration time.
func (m *ConfigTokenManager) GetTokenExpiry() time.Time {
	token := m.manager.CurrentToken()
	if token == nil {
		return time.Time{}
	}

	return token.ExpiresAt
}

// InstanceURLs returns the tenant REST and SOAP URLs reported by the last
// exchange. A token restored from the config carries none.
func (m *ConfigTokenManager) InstanceURLs() (string, string) {
	return m.manager.InstanceURLs()
}

func (m *ConfigTokenManager) persistIfChanged() {
	current := m.manager.CurrentToken()
	if current == nil {
		return
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if current.AccessToken == m.lastToken && current.ExpiresAt.Equal(m.lastExpiry) {
		return
	}

	m.lastToken = current.AccessToken
	m.lastExpiry = current.ExpiresAt

	err := m.persistToken(current)
	if err != nil {
		// A failed write only costs an extra exchange next run.
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist refreshed token: %v\n", err)
	}
}

func (m *ConfigTokenManager) persistToken(token *Token) error {
	if m.configPersister == nil {
		return ErrNoConfigPersister
	}

	err := m.configPersister.UpdateAccessToken(m.clientID, token.AccessToken, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}

	return nil
}
