package soap

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

type envelope struct {
	XMLName xml.Name       `xml:"soapenv:Envelope"`
	SoapEnv string         `xml:"xmlns:soapenv,attr"`
	XSI     string         `xml:"xmlns:xsi,attr"`
	Header  envelopeHeader `xml:"soapenv:Header"`
	Body    envelopeBody   `xml:"soapenv:Body"`
}

type envelopeHeader struct {
	FuelOAuth fuelOAuth `xml:"fueloauth"`
}

type fuelOAuth struct {
	Xmlns string `xml:"xmlns,attr"`
	Token string `xml:",chardata"`
}

type envelopeBody struct {
	Content []byte `xml:",innerxml"`
}

// BuildEnvelope wraps body in a SOAP envelope authenticated with token.
func BuildEnvelope(token string, body interface{}) ([]byte, error) {
	content, err := xml.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	env := envelope{
		SoapEnv: constants.SOAPEnvelopeNamespace,
		XSI:     constants.XSINamespace,
		Header: envelopeHeader{
			FuelOAuth: fuelOAuth{Xmlns: constants.FuelOAuthNamespace, Token: token},
		},
		Body: envelopeBody{Content: content},
	}

	out, err := xml.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("marshaling envelope: %w", err)
	}

	return append([]byte(xml.Header), out...), nil
}

// Response is the decoded body of a partner API response envelope.
type Response struct {
	Fault               *Fault             `xml:"Fault"`
	CreateResponse      *OperationResponse `xml:"CreateResponse"`
	RetrieveResponseMsg *RetrieveResponse  `xml:"RetrieveResponseMsg"`
	DeleteResponse      *OperationResponse `xml:"DeleteResponse"`
}

// Fault is a SOAP fault.
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
}

// OperationResponse answers a Create or Delete.
type OperationResponse struct {
	OverallStatus string            `xml:"OverallStatus"`
	RequestID     string            `xml:"RequestID"`
	Results       []OperationResult `xml:"Results"`
}

// OperationResult is the per-object outcome of a Create or Delete.
type OperationResult struct {
	StatusCode    string `xml:"StatusCode"`
	StatusMessage string `xml:"StatusMessage"`
	ErrorCode     string `xml:"ErrorCode"`
}

// RetrieveResponse answers a Retrieve.
type RetrieveResponse struct {
	OverallStatus string           `xml:"OverallStatus"`
	RequestID     string           `xml:"RequestID"`
	Results       []RetrieveResult `xml:"Results"`
}

// RetrieveResult is one retrieved object.
type RetrieveResult struct {
	Properties []Property `xml:"Properties>Property"`
}

// Property is a name/value pair of a retrieved object.
type Property struct {
	Name  string `xml:"Name"`
	Value string `xml:"Value"`
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    Response `xml:"Body"`
}

// ParseResponse decodes a response envelope.
func ParseResponse(data []byte) (*Response, error) {
	var env responseEnvelope

	err := xml.Unmarshal(data, &env)
	if err != nil {
		return nil, fmt.Errorf("parsing response envelope: %w", err)
	}

	return &env.Body, nil
}

// Rows folds each result's properties into a row. Later duplicates of a
// property name win.
func (r *RetrieveResponse) Rows() []sfmc.Row {
	rows := make([]sfmc.Row, 0, len(r.Results))

	for _, result := range r.Results {
		row := make(sfmc.Row, len(result.Properties))
		for _, property := range result.Properties {
			row[property.Name] = property.Value
		}

		rows = append(rows, row)
	}

	return rows
}

// Detail summarizes the per-object status messages.
func (r *OperationResponse) Detail() string {
	messages := make([]string, 0, len(r.Results))

	for _, result := range r.Results {
		if result.StatusMessage != "" {
			messages = append(messages, result.StatusMessage)
		}
	}

	return strings.Join(messages, "; ")
}
