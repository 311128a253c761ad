package commands

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// TokenStatus describes the cached access token.
type TokenStatus struct {
	ClientID  string    `json:"client_id"  yaml:"client_id"`
	Valid     bool      `json:"valid"      yaml:"valid"`
	ExpiresAt time.Time `json:"expires_at" yaml:"expires_at"`
	ExpiresIn string    `json:"expires_in" yaml:"expires_in"`

	RESTInstanceURL string `json:"rest_instance_url,omitempty" yaml:"rest_instance_url,omitempty"`
	SOAPInstanceURL string `json:"soap_instance_url,omitempty" yaml:"soap_instance_url,omitempty"`
}

// NewTokenCommand creates the token command.
func NewTokenCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Obtain an access token and show its expiry",
		Long: `Ensure a valid access token is held, exchanging the client credentials
only when the cached token has expired. Use --refresh to force an exchange.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession()
			if err != nil {
				return err
			}
			defer s.close()

			if refresh {
				err = s.tokenManager.RefreshToken(cmd.Context())
			} else {
				err = s.tokenManager.EnsureValid(cmd.Context())
			}

			if err != nil {
				return err
			}

			expiresAt := s.tokenManager.GetTokenExpiry()
			restURL, soapURL := s.tokenManager.InstanceURLs()
			status := TokenStatus{
				ClientID:        viper.GetString("client_id"),
				Valid:           s.tokenManager.IsValid(),
				ExpiresAt:       expiresAt,
				ExpiresIn:       time.Until(expiresAt).Round(time.Second).String(),
				RESTInstanceURL: restURL,
				SOAPInstanceURL: soapURL,
			}

			return renderProperties(os.Stdout, viper.GetString("output"), status, tokenStatusRows(status))
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "force a new token exchange")

	return cmd
}

// tokenStatusRows lists the table rows of status. Instance URLs are only known
// right after an exchange, so they are left out when empty.
func tokenStatusRows(status TokenStatus) [][2]string {
	rows := [][2]string{
		{"Client ID", status.ClientID},
		{"Valid", boolString(status.Valid)},
		{"Expires At", status.ExpiresAt.Format(time.RFC3339)},
		{"Expires In", status.ExpiresIn},
	}

	if status.RESTInstanceURL != "" {
		rows = append(rows, [2]string{"REST Instance URL", status.RESTInstanceURL})
	}

	if status.SOAPInstanceURL != "" {
		rows = append(rows, [2]string{"SOAP Instance URL", status.SOAPInstanceURL})
	}

	return rows
}

func boolString(value bool) string {
	if value {
		return "yes"
	}

	return "no"
}
