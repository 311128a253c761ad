package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fivetwenty-io/sfmc-client/internal/auth"
	"github.com/fivetwenty-io/sfmc-client/internal/client"
	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	sfmchttp "github.com/fivetwenty-io/sfmc-client/internal/http"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Common static errors used throughout the commands package.
var (
	ErrConfigPathUnknown    = errors.New("config file location could not be determined")
	ErrInvalidWhere         = errors.New("where clause must look like \"column operator value\"")
	ErrUnknownRestOperator  = errors.New("unknown REST operator")
	ErrUnknownSoapOperator  = errors.New("unknown SOAP operator")
	ErrInvalidFieldSpec     = errors.New("field must look like name:Type[:pk][:required][:length]")
	ErrInvalidAssignment    = errors.New("assignment must look like column=value")
	ErrUnknownOutputFormat  = errors.New("unknown output format")
	ErrNoValuesToUpsert     = errors.New("at least one --set column=value is required")
	ErrClientSecretRequired = errors.New("client secret is required; set SFMC_CLIENT_SECRET or client_secret in the config file")
)

// session is everything a command needs to talk to one tenant.
type session struct {
	client       *client.Client
	tokenManager *auth.ConfigTokenManager
	logger       *zapLogger
}

// close flushes the logger.
func (s *session) close() {
	s.logger.Sync()
}

// newSession builds a client from the merged configuration. The access token
// is cached in the config file so consecutive invocations reuse it.
func newSession() (*session, error) {
	config := loadConfig()

	logger, err := newLogger(viper.GetBool("verbose"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if config.ClientSecret == "" {
		secret, err := promptSecret(os.Stdin, os.Stderr)
		if err != nil {
			return nil, err
		}

		config.ClientSecret = secret
	}

	sdkConfig := config.SDKConfig()
	sdkConfig.Logger = logger
	sdkConfig.Debug = viper.GetBool("verbose")

	if sdkConfig.ClientID == "" {
		return nil, &sfmc.ValidationError{Field: "client_id", Err: sfmc.ErrClientIDRequired}
	}

	if sdkConfig.AuthEndpoint == "" {
		return nil, &sfmc.ValidationError{Field: "auth_endpoint", Err: sfmc.ErrAuthEndpointRequired}
	}

	manager := auth.NewClientCredentialsTokenManager(&auth.ClientCredentialsConfig{
		AuthEndpoint:   sdkConfig.AuthEndpoint,
		ClientID:       sdkConfig.ClientID,
		ClientSecret:   sdkConfig.ClientSecret,
		BusinessUnitID: sdkConfig.BusinessUnitID,
	},
		auth.WithHTTPClient(sfmchttp.NewClient(sdkConfig.AuthEndpoint, nil,
			sfmchttp.WithTimeout(constants.ShortHTTPTimeout),
			sfmchttp.WithLogger(logger),
			sfmchttp.WithDebug(sdkConfig.Debug),
		)),
		auth.WithLogger(logger),
	)

	cacheKey := TokenCacheKey(sdkConfig.ClientID, sdkConfig.BusinessUnitID)
	cachedToken, cachedExpiry := config.CachedToken(cacheKey)
	tokenManager := auth.NewConfigTokenManager(manager, NewConfigPersister(configFilePath()), cacheKey, cachedToken, cachedExpiry)

	c, err := client.NewWithTokenManager(sdkConfig, tokenManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create client with token manager: %w", err)
	}

	return &session{client: c, tokenManager: tokenManager, logger: logger}, nil
}

// promptSecret reads the client secret from a terminal without echoing it.
func promptSecret(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd()) //nolint:gosec // file descriptors fit in int

	if !term.IsTerminal(fd) {
		return "", ErrClientSecretRequired
	}

	_, _ = fmt.Fprint(out, "Client secret: ")

	secret, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("failed to read client secret: %w", err)
	}

	trimmed := strings.TrimSpace(string(secret))
	if trimmed == "" {
		return "", ErrClientSecretRequired
	}

	return trimmed, nil
}
