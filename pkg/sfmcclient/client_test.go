package sfmcclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmcclient"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("creates client with config", func(t *testing.T) {
		t.Parallel()

		client, err := sfmcclient.New(&sfmc.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			AuthEndpoint: "mc1234.auth.marketingcloudapis.com/",
			RESTEndpoint: "https://mc1234.rest.marketingcloudapis.com",
		})
		require.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		_, err := sfmcclient.New(nil)
		assert.ErrorIs(t, err, sfmc.ErrConfigRequired)
	})

	t.Run("missing credentials", func(t *testing.T) {
		t.Parallel()

		_, err := sfmcclient.New(&sfmc.Config{
			AuthEndpoint: "https://mc1234.auth.marketingcloudapis.com",
			RESTEndpoint: "https://mc1234.rest.marketingcloudapis.com",
		})
		require.Error(t, err)
		assert.True(t, sfmc.IsValidationError(err))
		assert.ErrorIs(t, err, sfmc.ErrClientIDRequired)
	})

	t.Run("does not modify the caller's config", func(t *testing.T) {
		t.Parallel()

		config := &sfmc.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			AuthEndpoint: "mc1234.auth.marketingcloudapis.com/",
			RESTEndpoint: "mc1234.rest.marketingcloudapis.com/",
		}

		_, err := sfmcclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "mc1234.auth.marketingcloudapis.com/", config.AuthEndpoint)
		assert.Equal(t, "mc1234.rest.marketingcloudapis.com/", config.RESTEndpoint)
	})
}

func TestTenantEndpoints(t *testing.T) {
	t.Parallel()

	authEndpoint, restEndpoint, soapEndpoint := sfmcclient.TenantEndpoints("mc1234")
	assert.Equal(t, "https://mc1234.auth.marketingcloudapis.com", authEndpoint)
	assert.Equal(t, "https://mc1234.rest.marketingcloudapis.com", restEndpoint)
	assert.Equal(t, "https://mc1234.soap.marketingcloudapis.com", soapEndpoint)

	authEndpoint, _, _ = sfmcclient.TenantEndpoints("")
	assert.Empty(t, authEndpoint)
}

func TestNewWithSubdomain(t *testing.T) {
	t.Parallel()

	client, err := sfmcclient.NewWithSubdomain("mc1234", "client-id", "client-secret")
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = sfmcclient.NewWithSubdomain("", "client-id", "client-secret")
	assert.ErrorIs(t, err, sfmc.ErrAuthEndpointRequired)
}

func TestClientIntegration(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.URL.Path == "/v2/token":
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"access_token": "integration-token",
				"expires_in":   1080,
			})
		case strings.HasPrefix(request.URL.Path, "/data/v1/customobjectdata/key/Contacts/rowset"):
			assert.Equal(t, "Bearer integration-token", request.Header.Get("Authorization"))
			_, _ = writer.Write([]byte(`{"items":[{"values":{"email":"a@example.com"}}]}`))
		default:
			writer.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client, err := sfmcclient.New(&sfmc.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		AuthEndpoint: server.URL + "/",
		RESTEndpoint: server.URL + "/",
	})
	require.NoError(t, err)

	rows, err := client.DataExtension("Contacts").Get().Where("email", sfmc.Equal, "a@example.com").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []sfmc.Row{{"email": "a@example.com"}}, rows)

	token, err := client.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "integration-token", token)
}
