package commands

import (
	"sync"
	"time"
)

// ConfigPersister implements the auth.ConfigPersister interface by caching
// tokens in the config file.
type ConfigPersister struct {
	mutex sync.Mutex
	path  string
	now   func() time.Time
}

// NewConfigPersister creates a persister writing to path.
func NewConfigPersister(path string) *ConfigPersister {
	return &ConfigPersister{path: path, now: time.Now}
}

// UpdateAccessToken stores token under cacheKey, as built by TokenCacheKey.
// Only the token cache of the file is touched; flags and environment values
// are never written back.
func (p *ConfigPersister) UpdateAccessToken(cacheKey, token string, expiresAt time.Time) error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	config, err := readConfigFile(p.path)
	if err != nil {
		return err
	}

	if config.Tokens == nil {
		config.Tokens = make(map[string]*TokenCache)
	}

	cached := &TokenCache{AccessToken: token}
	if !expiresAt.IsZero() {
		expiry := expiresAt.UTC()
		cached.ExpiresAt = &expiry
	}

	now := p.now().UTC()
	cached.LastRefreshed = &now

	config.Tokens[cacheKey] = cached

	return saveConfigStruct(p.path, config)
}
