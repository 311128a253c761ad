package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmcclient"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration as stored in $HOME/.sfmc/config.yml.
type Config struct {
	Subdomain      string `json:"subdomain,omitempty"        yaml:"subdomain,omitempty"`
	ClientID       string `json:"client_id,omitempty"        yaml:"client_id,omitempty"`
	ClientSecret   string `json:"client_secret,omitempty"    yaml:"client_secret,omitempty"`
	AuthEndpoint   string `json:"auth_endpoint,omitempty"    yaml:"auth_endpoint,omitempty"`
	RESTEndpoint   string `json:"rest_endpoint,omitempty"    yaml:"rest_endpoint,omitempty"`
	SOAPEndpoint   string `json:"soap_endpoint,omitempty"    yaml:"soap_endpoint,omitempty"`
	BusinessUnitID string `json:"business_unit_id,omitempty" yaml:"business_unit_id,omitempty"`
	Output         string `json:"output,omitempty"           yaml:"output,omitempty"`

	// Tokens caches the last access token per client ID and business unit.
	Tokens map[string]*TokenCache `json:"tokens,omitempty" yaml:"tokens,omitempty"`
}

// TokenCache is a persisted access token.
type TokenCache struct {
	AccessToken   string     `json:"access_token"             yaml:"access_token"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"     yaml:"expires_at,omitempty"`
	LastRefreshed *time.Time `json:"last_refreshed,omitempty" yaml:"last_refreshed,omitempty"`
}

// loadConfig merges flags, SFMC_* environment variables and the config file.
func loadConfig() *Config {
	config := &Config{
		Subdomain:      viper.GetString("subdomain"),
		ClientID:       viper.GetString("client_id"),
		ClientSecret:   viper.GetString("client_secret"),
		AuthEndpoint:   viper.GetString("auth_endpoint"),
		RESTEndpoint:   viper.GetString("rest_endpoint"),
		SOAPEndpoint:   viper.GetString("soap_endpoint"),
		BusinessUnitID: viper.GetString("business_unit_id"),
		Output:         viper.GetString("output"),
		Tokens:         make(map[string]*TokenCache),
	}

	// Tokens only ever come from the file.
	stored, err := readConfigFile(configFilePath())
	if err == nil && stored.Tokens != nil {
		config.Tokens = stored.Tokens
	}

	return config
}

// SDKConfig converts the CLI configuration into a client configuration.
// Explicit endpoints win over the ones derived from Subdomain.
func (c *Config) SDKConfig() *sfmc.Config {
	authEndpoint, restEndpoint, soapEndpoint := sfmcclient.TenantEndpoints(c.Subdomain)

	return &sfmc.Config{
		ClientID:       c.ClientID,
		ClientSecret:   c.ClientSecret,
		AuthEndpoint:   sfmcclient.NormalizeEndpoint(firstNonEmpty(c.AuthEndpoint, authEndpoint)),
		RESTEndpoint:   sfmcclient.NormalizeEndpoint(firstNonEmpty(c.RESTEndpoint, restEndpoint)),
		SOAPEndpoint:   sfmcclient.NormalizeEndpoint(firstNonEmpty(c.SOAPEndpoint, soapEndpoint)),
		BusinessUnitID: c.BusinessUnitID,
	}
}

// TokenCacheKey identifies a cached token. A token is scoped to the business
// unit it was issued for, so the unit is part of the key.
func TokenCacheKey(clientID, businessUnitID string) string {
	if businessUnitID == "" {
		return clientID
	}

	return clientID + "@" + businessUnitID
}

// CachedToken returns the persisted token stored under key, if any.
func (c *Config) CachedToken(key string) (string, time.Time) {
	cached, ok := c.Tokens[key]
	if !ok || cached == nil {
		return "", time.Time{}
	}

	if cached.ExpiresAt == nil {
		return cached.AccessToken, time.Time{}
	}

	return cached.AccessToken, *cached.ExpiresAt
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}

	return ""
}

// configFilePath returns the file in use, or the default location.
func configFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".sfmc", "config.yml")
}

// readConfigFile reads path without applying flags or environment.
func readConfigFile(path string) (*Config, error) {
	if path == "" {
		return nil, ErrConfigPathUnknown
	}

	// path is the config file chosen by the user or the default under $HOME
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// saveConfigStruct writes config to path, creating its directory if needed.
func saveConfigStruct(path string, config *Config) error {
	if path == "" {
		return ErrConfigPathUnknown
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
