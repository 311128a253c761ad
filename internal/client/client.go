package client

import (
	"context"

	"github.com/fivetwenty-io/sfmc-client/internal/auth"
	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/internal/http"
	"github.com/fivetwenty-io/sfmc-client/internal/soap"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// Client implements the sfmc.Client interface.
type Client struct {
	restClient   *http.Client
	soapClient   *soap.Client
	tokenManager auth.TokenManager
	logger       sfmc.Logger
}

// validateConfig checks the fields New cannot work without.
func validateConfig(config *sfmc.Config) error {
	if config == nil {
		return &sfmc.ValidationError{Field: "config", Err: sfmc.ErrConfigRequired}
	}

	switch {
	case config.ClientID == "":
		return &sfmc.ValidationError{Field: "ClientID", Err: sfmc.ErrClientIDRequired}
	case config.ClientSecret == "":
		return &sfmc.ValidationError{Field: "ClientSecret", Err: sfmc.ErrClientSecretRequired}
	case config.AuthEndpoint == "":
		return &sfmc.ValidationError{Field: "AuthEndpoint", Err: sfmc.ErrAuthEndpointRequired}
	case config.RESTEndpoint == "":
		return &sfmc.ValidationError{Field: "RESTEndpoint", Err: sfmc.ErrRESTEndpointRequired}
	}

	return nil
}

// createTokenManager builds the client-credentials manager shared by every request.
func createTokenManager(config *sfmc.Config) *auth.ClientCredentialsTokenManager {
	authOpts := createHTTPClientOptions(config)
	if config.HTTPTimeout == 0 {
		authOpts = append(authOpts, http.WithTimeout(constants.ShortHTTPTimeout))
	}

	managerOpts := []auth.ManagerOption{
		auth.WithHTTPClient(http.NewClient(config.AuthEndpoint, nil, authOpts...)),
	}

	if config.Logger != nil {
		managerOpts = append(managerOpts, auth.WithLogger(config.Logger))
	}

	return auth.NewClientCredentialsTokenManager(&auth.ClientCredentialsConfig{
		AuthEndpoint:   config.AuthEndpoint,
		ClientID:       config.ClientID,
		ClientSecret:   config.ClientSecret,
		BusinessUnitID: config.BusinessUnitID,
	}, managerOpts...)
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *sfmc.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a client that authenticates with the client-credentials grant.
// No request is made until a query or row operation runs.
func New(config *sfmc.Config) (*Client, error) {
	err := validateConfig(config)
	if err != nil {
		return nil, err
	}

	return NewWithTokenManager(config, createTokenManager(config))
}

// NewWithTokenManager creates a client around an existing token manager.
// Only RESTEndpoint is required from config.
func NewWithTokenManager(config *sfmc.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config == nil {
		return nil, &sfmc.ValidationError{Field: "config", Err: sfmc.ErrConfigRequired}
	}

	if config.RESTEndpoint == "" {
		return nil, &sfmc.ValidationError{Field: "RESTEndpoint", Err: sfmc.ErrRESTEndpointRequired}
	}

	httpOpts := createHTTPClientOptions(config)

	client := &Client{
		restClient:   http.NewClient(config.RESTEndpoint, tokenManager, httpOpts...),
		tokenManager: tokenManager,
		logger:       config.Logger,
	}

	if config.SOAPEndpoint != "" {
		// The token travels in the envelope header, not in Authorization.
		soapHTTP := http.NewClient(config.SOAPEndpoint, nil, httpOpts...)
		client.soapClient = soap.NewClient(soapHTTP, tokenManager, config.Logger)
	}

	return client, nil
}

// GetTokenManager returns the token manager shared by all requests.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetToken returns a valid access token, refreshing it if necessary.
func (c *Client) GetToken(ctx context.Context) (string, error) {
	return c.tokenManager.GetToken(ctx)
}

// DataExtension returns the facade for the data extension with external key objectKey.
func (c *Client) DataExtension(objectKey string) sfmc.DataExtension {
	return &DataExtensionClient{client: c, objectKey: objectKey}
}
