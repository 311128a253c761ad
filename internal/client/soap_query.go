package client

import (
	"context"

	"github.com/fivetwenty-io/sfmc-client/internal/soap"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// SoapDataExtensionClient implements sfmc.SoapDataExtension.
type SoapDataExtensionClient struct {
	soapClient *soap.Client
	objectKey  string
}

// Get starts a SOAP retrieve of fields with no filters.
func (s *SoapDataExtensionClient) Get(fields []string, options *sfmc.SoapGetOptions) sfmc.SoapQuery {
	builder := &SoapQueryBuilder{
		soapClient: s.soapClient,
		objectKey:  s.objectKey,
		fields:     append([]string(nil), fields...),
	}

	if options != nil {
		opts := *options
		builder.options = &opts
	}

	return builder
}

// Create creates the data extension with the given columns. The columns are
// validated before anything is sent.
func (s *SoapDataExtensionClient) Create(ctx context.Context, fields []sfmc.DataExtensionField) error {
	req, err := soap.NewCreateRequest(s.objectKey, fields)
	if err != nil {
		return err
	}

	if s.soapClient == nil {
		return &sfmc.ValidationError{Field: "SOAPEndpoint", Err: sfmc.ErrSOAPEndpointRequired}
	}

	return s.soapClient.Create(ctx, req)
}

// Remove deletes the data extension.
func (s *SoapDataExtensionClient) Remove(ctx context.Context) error {
	req, err := soap.NewDeleteRequest(s.objectKey)
	if err != nil {
		return err
	}

	if s.soapClient == nil {
		return &sfmc.ValidationError{Field: "SOAPEndpoint", Err: sfmc.ErrSOAPEndpointRequired}
	}

	return s.soapClient.Delete(ctx, req)
}

// SoapQueryBuilder implements sfmc.SoapQuery.
type SoapQueryBuilder struct {
	soapClient *soap.Client
	objectKey  string
	fields     []string
	options    *sfmc.SoapGetOptions
	filters    []sfmc.SoapFilter
	err        error
}

// Where appends a filter and returns the same builder. Filter order decides
// the shape of the compiled filter tree.
func (b *SoapQueryBuilder) Where(columnName string, operator sfmc.SoapOperator, value string) sfmc.SoapQuery {
	err := validateWhere(columnName, string(operator))
	if err != nil {
		if b.err == nil {
			b.err = err
		}

		return b
	}

	b.filters = append(b.filters, sfmc.SoapFilter{
		ColumnName: columnName,
		Operator:   operator,
		Value:      value,
	})

	return b
}

// Fields returns a copy of the requested fields.
func (b *SoapQueryBuilder) Fields() []string {
	return append([]string(nil), b.fields...)
}

// Filters returns a copy of the accumulated filters.
func (b *SoapQueryBuilder) Filters() []sfmc.SoapFilter {
	return append([]sfmc.SoapFilter(nil), b.filters...)
}

// Execute sends the retrieve and returns one row per result, in order.
func (b *SoapQueryBuilder) Execute(ctx context.Context) ([]sfmc.Row, error) {
	if b.err != nil {
		return nil, b.err
	}

	req, err := soap.NewRetrieveRequest(b.objectKey, b.fields, b.filters, b.options)
	if err != nil {
		return nil, err
	}

	if b.soapClient == nil {
		return nil, &sfmc.ValidationError{Field: "SOAPEndpoint", Err: sfmc.ErrSOAPEndpointRequired}
	}

	return b.soapClient.Retrieve(ctx, req)
}
