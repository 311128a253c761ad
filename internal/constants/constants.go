package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files. They may hold
	// a client secret and a cached access token.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for the token exchange.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Auth API.
const (
	// TokenPath is appended to the auth endpoint for the token exchange.
	TokenPath = "/v2/token"

	// GrantTypeClientCredentials is the only grant the SDK uses.
	GrantTypeClientCredentials = "client_credentials"
)

// REST API paths.
const (
	// RowsetPathFormat reads rows of a data extension by external key.
	RowsetPathFormat = "/data/v1/customobjectdata/key/%s/rowset"

	// UpsertPathFormat upserts rows of a data extension by external key.
	UpsertPathFormat = "/hub/v1/dataevents/key:%s/rowset"

	// FilterQueryParam carries the rendered REST filter expression.
	FilterQueryParam = "$filter"
)

// SOAP API.
const (
	// SOAPServicePath is appended to the SOAP endpoint.
	SOAPServicePath = "/Service.asmx"

	// SOAPContentType is sent with every SOAP request.
	SOAPContentType = "text/xml;charset=UTF-8"

	// SOAPActionHeader names the transport-level action tag.
	SOAPActionHeader = "SOAPAction"

	// OverallStatusOK marks a successful SOAP operation.
	OverallStatusOK = "OK"
)

// Namespaces used in SOAP envelopes.
const (
	SOAPEnvelopeNamespace = "http://schemas.xmlsoap.org/soap/envelope/"
	XSINamespace          = "http://www.w3.org/2001/XMLSchema-instance"
	FuelOAuthNamespace    = "http://exacttarget.com"
	PartnerAPINamespace   = "http://exacttarget.com/wsdl/partnerAPI"
)

// Output formats of the CLI.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)
