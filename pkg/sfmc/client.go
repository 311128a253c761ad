package sfmc

import (
	"context"
	"time"
)

// RestQuery is a deferred REST rowset read. Where only accumulates; nothing is
// sent until Execute is called.
type RestQuery interface {
	Where(columnName string, operator ComparisonOperator, value string) RestQuery
	Filters() []RestFilter
	Execute(ctx context.Context) ([]Row, error)
}

// SoapQuery is a deferred SOAP retrieve.
type SoapQuery interface {
	Where(columnName string, operator SoapOperator, value string) SoapQuery
	Fields() []string
	Filters() []SoapFilter
	Execute(ctx context.Context) ([]Row, error)
}

// RowAccessor reads or writes a single record identified by one key column.
type RowAccessor interface {
	Get(ctx context.Context) (*RowsetItem, error)
	Upsert(ctx context.Context, record Row) (*RowsetItem, error)
}

// SoapDataExtension exposes the SOAP operations of one data extension.
type SoapDataExtension interface {
	Get(fields []string, options *SoapGetOptions) SoapQuery
	Create(ctx context.Context, fields []DataExtensionField) error
	Remove(ctx context.Context) error
}

// DataExtension binds both query dialects to one data extension key.
type DataExtension interface {
	Key() string
	Row(keyColumn, keyValue string) RowAccessor
	Get() RestQuery
	Soap() SoapDataExtension
}

// Client is the entry point of the SDK.
type Client interface {
	DataExtension(objectKey string) DataExtension
	GetToken(ctx context.Context) (string, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a Client.
//
// The config is copied when the client is built; later changes to the
// caller's value have no effect. Every data extension and builder obtained
// from one client shares that client's access token.
//
// # Endpoints
//
// AuthEndpoint, RESTEndpoint and SOAPEndpoint are the tenant specific base
// URLs (for example "https://<subdomain>.auth.marketingcloudapis.com").
// sfmcclient.New trims a trailing slash and adds "https://" if no scheme is
// present. SOAPEndpoint is only required for SOAP operations.
//
// # Retries
//
// Requests are not retried unless RetryMax is set.
type Config struct {
	// Required fields
	ClientID     string
	ClientSecret string
	AuthEndpoint string
	RESTEndpoint string

	// SOAPEndpoint: base URL of the SOAP API; "/Service.asmx" is appended.
	SOAPEndpoint string
	// BusinessUnitID: sent as account_id in the token exchange when set.
	BusinessUnitID string

	// Optional configurations
	// HTTPTimeout: per-attempt timeout of the underlying HTTP client.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of transport retries (>=500, 429 and
	// connection errors). Zero disables retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP and auth layers.
	Logger Logger
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
}
