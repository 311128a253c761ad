package client_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/sfmc-client/internal/client"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

const retrieveOK = `<RetrieveResponseMsg xmlns="http://exacttarget.com/wsdl/partnerAPI">` +
	`<OverallStatus>OK</OverallStatus><RequestID>req-1</RequestID>` +
	`<Results xsi:type="DataExtensionObject"><Properties>` +
	`<Property><Name>Email</Name><Value>a@example.com</Value></Property>` +
	`<Property><Name>Name</Name><Value>Ada</Value></Property>` +
	`</Properties></Results></RetrieveResponseMsg>`

//nolint:funlen
func TestSoapQueryBuilder_Execute(t *testing.T) {
	t.Parallel()

	t.Run("single result", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)
		tenant.RespondSOAP(http.StatusOK, soapEnvelope(retrieveOK))

		rows, err := tenant.Client(t).DataExtension("Contacts").Soap().
			Get([]string{"Email", "Name"}, &sfmc.SoapGetOptions{QueryAllAccounts: true}).
			Where("Status", sfmc.Equals, "active").
			Where("Age", sfmc.IsGreaterThan, "21").
			Where("City", sfmc.BeginsWith, "Ams").
			Execute(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []sfmc.Row{{"Email": "a@example.com", "Name": "Ada"}}, rows)

		requests := tenant.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "/Service.asmx", requests[0].Path)
		assert.Equal(t, "Retrieve", requests[0].SOAPAction)
		assert.Empty(t, requests[0].Authorization)

		body := requests[0].Body
		assert.Contains(t, body, `<fueloauth xmlns="http://exacttarget.com">tenant-token</fueloauth>`)
		assert.Contains(t, body, `<ObjectType>DataExtensionObject[Contacts]</ObjectType>`)
		assert.Contains(t, body, `<QueryAllAccounts>true</QueryAllAccounts>`)
		assert.Contains(t, body, `<Filter xsi:type="ComplexFilterPart">`)
		assert.Contains(t, body, `<RightOperand xsi:type="ComplexFilterPart">`)
		assert.Equal(t, 1, strings.Count(body, `<RightOperand xsi:type="SimpleFilterPart">`))
		assert.Less(t, strings.Index(body, "Status"), strings.Index(body, "Age"))
		assert.Less(t, strings.Index(body, "Age"), strings.Index(body, "City"))
	})

	t.Run("no filters omits the filter element", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)
		tenant.RespondSOAP(http.StatusOK, soapEnvelope(retrieveOK))

		_, err := tenant.Client(t).DataExtension("Contacts").Soap().
			Get([]string{"Email"}, nil).
			Execute(context.Background())
		require.NoError(t, err)

		body := tenant.Requests()[0].Body
		assert.NotContains(t, body, "<Filter")
		assert.Contains(t, body, `<QueryAllAccounts>false</QueryAllAccounts>`)
	})

	t.Run("empty field list", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)

		_, err := tenant.Client(t).DataExtension("Contacts").Soap().Get(nil, nil).Execute(context.Background())
		require.Error(t, err)
		assert.True(t, sfmc.IsValidationError(err))
		assert.Empty(t, tenant.Requests())
	})

	t.Run("status other than OK", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)
		tenant.RespondSOAP(http.StatusOK, soapEnvelope(`<RetrieveResponseMsg xmlns="http://exacttarget.com/wsdl/partnerAPI">`+
			`<OverallStatus>Error: Unable to find DataExtension</OverallStatus></RetrieveResponseMsg>`))

		_, err := tenant.Client(t).DataExtension("Contacts").Soap().Get([]string{"Email"}, nil).Execute(context.Background())
		require.Error(t, err)
		assert.True(t, sfmc.IsRemoteOperationError(err))
	})

	t.Run("without soap endpoint", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)
		config := tenant.Config()
		config.SOAPEndpoint = ""

		c, err := client.New(config)
		require.NoError(t, err)

		_, err = c.DataExtension("Contacts").Soap().Get([]string{"Email"}, nil).Execute(context.Background())
		assert.ErrorIs(t, err, sfmc.ErrSOAPEndpointRequired)
		assert.Empty(t, tenant.Requests())
	})
}

func TestSoapQueryBuilder_Where(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	fields := []string{"Email"}
	query := tenant.Client(t).DataExtension("Contacts").Soap().Get(fields, nil)
	fields[0] = "Changed"

	assert.Same(t, query, query.Where("Status", sfmc.Equals, "active"))
	assert.Equal(t, []string{"Email"}, query.Fields())
	assert.Equal(t, []sfmc.SoapFilter{{ColumnName: "Status", Operator: sfmc.Equals, Value: "active"}}, query.Filters())

	_, err := query.Where("", sfmc.Equals, "x").Execute(context.Background())
	assert.ErrorIs(t, err, sfmc.ErrColumnNameRequired)
	assert.Empty(t, tenant.Requests())
}

func TestSoapDataExtensionClient_Create(t *testing.T) {
	t.Parallel()

	t.Run("without primary key", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)

		err := tenant.Client(t).DataExtension("Contacts").Soap().Create(context.Background(), []sfmc.DataExtensionField{
			{Name: "Email", Type: sfmc.FieldTypeText},
		})
		require.Error(t, err)
		assert.True(t, sfmc.IsValidationError(err))
		assert.ErrorIs(t, err, sfmc.ErrPrimaryKeyRequired)
		assert.Empty(t, tenant.Requests())
		assert.Equal(t, int32(0), tenant.tokenCalls.Load())
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)
		tenant.RespondSOAP(http.StatusOK, soapEnvelope(`<CreateResponse xmlns="http://exacttarget.com/wsdl/partnerAPI">`+
			`<Results><StatusCode>OK</StatusCode></Results><OverallStatus>OK</OverallStatus></CreateResponse>`))

		err := tenant.Client(t).DataExtension("Contacts").Soap().Create(context.Background(), []sfmc.DataExtensionField{
			{Name: "Email", Type: sfmc.FieldTypeText, IsPrimaryKey: true},
			{Name: "Age", Type: sfmc.FieldTypeNumber},
		})
		require.NoError(t, err)

		requests := tenant.Requests()
		require.Len(t, requests, 1)
		assert.Equal(t, "Create", requests[0].SOAPAction)
		assert.Contains(t, requests[0].Body, `<CustomerKey>Contacts</CustomerKey><Name>Contacts</Name>`)
		assert.Contains(t, requests[0].Body, `<MaxLength>4000</MaxLength>`)
	})

	t.Run("rejected", func(t *testing.T) {
		t.Parallel()

		tenant := newFakeTenant(t)
		tenant.RespondSOAP(http.StatusOK, soapEnvelope(`<CreateResponse xmlns="http://exacttarget.com/wsdl/partnerAPI">`+
			`<Results><StatusCode>Error</StatusCode><StatusMessage>Duplicate key</StatusMessage></Results>`+
			`<OverallStatus>Error</OverallStatus></CreateResponse>`))

		err := tenant.Client(t).DataExtension("Contacts").Soap().Create(context.Background(), []sfmc.DataExtensionField{
			{Name: "Email", Type: sfmc.FieldTypeText, IsPrimaryKey: true},
		})

		remoteErr := &sfmc.RemoteOperationError{}
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "Create", remoteErr.Action)
		assert.Equal(t, "Duplicate key", remoteErr.Detail)
	})
}

func TestSoapDataExtensionClient_Remove(t *testing.T) {
	t.Parallel()

	tenant := newFakeTenant(t)
	tenant.RespondSOAP(http.StatusOK, soapEnvelope(`<DeleteResponse xmlns="http://exacttarget.com/wsdl/partnerAPI">`+
		`<OverallStatus>OK</OverallStatus></DeleteResponse>`))

	require.NoError(t, tenant.Client(t).DataExtension("Contacts").Soap().Remove(context.Background()))

	requests := tenant.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "Delete", requests[0].SOAPAction)
	assert.Contains(t, requests[0].Body, `<DeleteRequest xmlns="http://exacttarget.com/wsdl/partnerAPI"><Objects xsi:type="DataExtension"><CustomerKey>Contacts</CustomerKey></Objects></DeleteRequest>`)
}
