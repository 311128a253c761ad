//nolint:testpackage // Need access to internal config helpers
package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_SDKConfig(t *testing.T) {
	t.Parallel()

	t.Run("endpoints derived from subdomain", func(t *testing.T) {
		t.Parallel()

		config := &Config{Subdomain: "mc123", ClientID: "id", ClientSecret: "secret", BusinessUnitID: "42"}
		sdk := config.SDKConfig()

		assert.Equal(t, "https://mc123.auth.marketingcloudapis.com", sdk.AuthEndpoint)
		assert.Equal(t, "https://mc123.rest.marketingcloudapis.com", sdk.RESTEndpoint)
		assert.Equal(t, "https://mc123.soap.marketingcloudapis.com", sdk.SOAPEndpoint)
		assert.Equal(t, "42", sdk.BusinessUnitID)
	})

	t.Run("explicit endpoints win and are normalized", func(t *testing.T) {
		t.Parallel()

		config := &Config{Subdomain: "mc123", RESTEndpoint: "rest.example.com/"}
		sdk := config.SDKConfig()

		assert.Equal(t, "https://mc123.auth.marketingcloudapis.com", sdk.AuthEndpoint)
		assert.Equal(t, "https://rest.example.com", sdk.RESTEndpoint)
	})

	t.Run("no subdomain and no endpoints", func(t *testing.T) {
		t.Parallel()

		sdk := (&Config{}).SDKConfig()
		assert.Empty(t, sdk.AuthEndpoint)
		assert.Empty(t, sdk.SOAPEndpoint)
	})
}

func TestConfig_CachedToken(t *testing.T) {
	t.Parallel()

	expiry := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	config := &Config{Tokens: map[string]*TokenCache{
		"with-expiry": {AccessToken: "tok-1", ExpiresAt: &expiry},
		"no-expiry":   {AccessToken: "tok-2"},
	}}

	token, expiresAt := config.CachedToken("with-expiry")
	assert.Equal(t, "tok-1", token)
	assert.Equal(t, expiry, expiresAt)

	token, expiresAt = config.CachedToken("no-expiry")
	assert.Equal(t, "tok-2", token)
	assert.True(t, expiresAt.IsZero())

	token, _ = config.CachedToken("unknown")
	assert.Empty(t, token)
}

func TestTokenCacheKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "id", TokenCacheKey("id", ""))
	assert.Equal(t, "id@111", TokenCacheKey("id", "111"))
	assert.NotEqual(t, TokenCacheKey("id", "111"), TokenCacheKey("id", "222"))
}

func TestReadConfigFile_Missing(t *testing.T) {
	t.Parallel()

	config, err := readConfigFile(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, config)

	_, err = readConfigFile("")
	require.ErrorIs(t, err, ErrConfigPathUnknown)
}

func TestConfigPersister_UpdateAccessToken(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	require.NoError(t, saveConfigStruct(path, &Config{Subdomain: "mc123", ClientID: "id", Output: "json"}))

	refreshedAt := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	expiresAt := refreshedAt.Add(20 * time.Minute)

	persister := NewConfigPersister(path)
	persister.now = func() time.Time { return refreshedAt }

	require.NoError(t, persister.UpdateAccessToken("id", "fresh-token", expiresAt))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored Config
	require.NoError(t, yaml.Unmarshal(data, &stored))

	assert.Equal(t, "mc123", stored.Subdomain)
	assert.Equal(t, "json", stored.Output)
	require.Contains(t, stored.Tokens, "id")
	assert.Equal(t, "fresh-token", stored.Tokens["id"].AccessToken)
	require.NotNil(t, stored.Tokens["id"].ExpiresAt)
	assert.True(t, expiresAt.Equal(*stored.Tokens["id"].ExpiresAt))
	require.NotNil(t, stored.Tokens["id"].LastRefreshed)
	assert.True(t, refreshedAt.Equal(*stored.Tokens["id"].LastRefreshed))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigPersister_KeepsOtherClients(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yml")
	persister := NewConfigPersister(path)

	require.NoError(t, persister.UpdateAccessToken("first", "token-a", time.Time{}))
	require.NoError(t, persister.UpdateAccessToken("second", "token-b", time.Time{}))

	stored, err := readConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "token-a", stored.Tokens["first"].AccessToken)
	assert.Nil(t, stored.Tokens["first"].ExpiresAt)
	assert.Equal(t, "token-b", stored.Tokens["second"].AccessToken)
}

func TestTokenStatusRows(t *testing.T) {
	t.Parallel()

	status := TokenStatus{ClientID: "id", Valid: true, ExpiresIn: "18m0s"}
	assert.Len(t, tokenStatusRows(status), 4)

	status.RESTInstanceURL = "https://mc123.rest.marketingcloudapis.com/"
	status.SOAPInstanceURL = "https://mc123.soap.marketingcloudapis.com/"

	rows := tokenStatusRows(status)
	require.Len(t, rows, 6)
	assert.Equal(t, [2]string{"REST Instance URL", status.RESTInstanceURL}, rows[4])
	assert.Equal(t, [2]string{"SOAP Instance URL", status.SOAPInstanceURL}, rows[5])
}
