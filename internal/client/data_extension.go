package client

import (
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// DataExtensionClient implements sfmc.DataExtension.
type DataExtensionClient struct {
	client    *Client
	objectKey string
}

// Key returns the external key of the data extension.
func (d *DataExtensionClient) Key() string {
	return d.objectKey
}

// Get starts a REST query with no filters.
func (d *DataExtensionClient) Get() sfmc.RestQuery {
	return NewRestQueryBuilder(d.client.restClient, d.objectKey)
}

// Row addresses the record whose keyColumn equals keyValue.
func (d *DataExtensionClient) Row(keyColumn, keyValue string) sfmc.RowAccessor {
	return &RowClient{
		httpClient: d.client.restClient,
		objectKey:  d.objectKey,
		keyColumn:  keyColumn,
		keyValue:   keyValue,
	}
}

// Soap exposes the SOAP operations of the data extension.
func (d *DataExtensionClient) Soap() sfmc.SoapDataExtension {
	return &SoapDataExtensionClient{
		soapClient: d.client.soapClient,
		objectKey:  d.objectKey,
	}
}
