package sfmcclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/sfmc-client/internal/client"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

const tenantHostFormat = "https://%s.%s.marketingcloudapis.com"

// New creates a client from config. The config is copied and its endpoints are
// normalized; no request is made until the first query or row operation.
func New(config *sfmc.Config) (sfmc.Client, error) {
	if config == nil {
		return nil, &sfmc.ValidationError{Field: "config", Err: sfmc.ErrConfigRequired}
	}

	normalized := *config
	normalized.AuthEndpoint = NormalizeEndpoint(config.AuthEndpoint)
	normalized.RESTEndpoint = NormalizeEndpoint(config.RESTEndpoint)
	normalized.SOAPEndpoint = NormalizeEndpoint(config.SOAPEndpoint)

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithSubdomain creates a client for the tenant identified by subdomain,
// deriving the auth, REST and SOAP endpoints from it.
func NewWithSubdomain(subdomain, clientID, clientSecret string) (sfmc.Client, error) {
	authEndpoint, restEndpoint, soapEndpoint := TenantEndpoints(subdomain)

	return New(&sfmc.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		AuthEndpoint: authEndpoint,
		RESTEndpoint: restEndpoint,
		SOAPEndpoint: soapEndpoint,
	})
}

// TenantEndpoints returns the auth, REST and SOAP base URLs of a tenant subdomain.
func TenantEndpoints(subdomain string) (string, string, string) {
	if subdomain == "" {
		return "", "", ""
	}

	return fmt.Sprintf(tenantHostFormat, subdomain, "auth"),
		fmt.Sprintf(tenantHostFormat, subdomain, "rest"),
		fmt.Sprintf(tenantHostFormat, subdomain, "soap")
}

// NormalizeEndpoint trims trailing slashes and defaults the scheme to https.
// An empty endpoint stays empty.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return ""
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
