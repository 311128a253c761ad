package soap

import (
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// Action is a partner API operation. It is sent as the SOAPAction header.
type Action string

// Supported actions.
const (
	ActionCreate   Action = "Create"
	ActionRetrieve Action = "Retrieve"
	ActionDelete   Action = "Delete"
)

const dataExtensionType = "DataExtension"

// RetrieveRequestMsg reads rows of a data extension.
type RetrieveRequestMsg struct {
	XMLName         xml.Name        `xml:"RetrieveRequestMsg"`
	Xmlns           string          `xml:"xmlns,attr"`
	RetrieveRequest RetrieveRequest `xml:"RetrieveRequest"`
}

// RetrieveRequest is the payload of RetrieveRequestMsg.
type RetrieveRequest struct {
	ObjectType       string     `xml:"ObjectType"`
	Properties       []string   `xml:"Properties"`
	Filter           FilterPart `xml:"Filter,omitempty"`
	QueryAllAccounts bool       `xml:"QueryAllAccounts"`
}

// NewRetrieveRequest builds a retrieve of fields from the data extension
// objectKey. Filters are compiled in order; none means no Filter element.
func NewRetrieveRequest(objectKey string, fields []string, filters []sfmc.SoapFilter, options *sfmc.SoapGetOptions) (*RetrieveRequestMsg, error) {
	if objectKey == "" {
		return nil, &sfmc.ValidationError{Field: "objectKey", Err: sfmc.ErrObjectKeyRequired}
	}

	if len(fields) == 0 {
		return nil, &sfmc.ValidationError{Field: "fields", Err: sfmc.ErrFieldsRequired}
	}

	queryAllAccounts := false
	if options != nil {
		queryAllAccounts = options.QueryAllAccounts
	}

	return &RetrieveRequestMsg{
		Xmlns: constants.PartnerAPINamespace,
		RetrieveRequest: RetrieveRequest{
			ObjectType:       fmt.Sprintf("DataExtensionObject[%s]", objectKey),
			Properties:       append([]string(nil), fields...),
			Filter:           CompileFilters(filters),
			QueryAllAccounts: queryAllAccounts,
		},
	}, nil
}

type nilElement struct {
	Nil string `xml:"xsi:nil,attr"`
}

func xsiNil() nilElement {
	return nilElement{Nil: "true"}
}

// CreateRequest creates a data extension.
type CreateRequest struct {
	XMLName xml.Name            `xml:"CreateRequest"`
	Xmlns   string              `xml:"xmlns,attr"`
	Objects CreateDataExtension `xml:"Objects"`
}

// CreateDataExtension is the data extension object inside a CreateRequest.
type CreateDataExtension struct {
	Type        string       `xml:"xsi:type,attr"`
	PartnerKey  nilElement   `xml:"PartnerKey"`
	ObjectID    nilElement   `xml:"ObjectID"`
	CustomerKey string       `xml:"CustomerKey"`
	Name        string       `xml:"Name"`
	Fields      []FieldEntry `xml:"Fields>Field"`
}

// FieldEntry is one column definition.
type FieldEntry struct {
	Name         string `xml:"Name"`
	DataType     string `xml:"DataType"`
	MaxLength    string `xml:"MaxLength,omitempty"`
	IsPrimaryKey bool   `xml:"IsPrimaryKey"`
	IsRequired   bool   `xml:"IsRequired"`
}

// ValidateFields checks a column set before it is sent: at least one primary
// key, every column named, every type supported.
func ValidateFields(fields []sfmc.DataExtensionField) error {
	if len(fields) == 0 {
		return &sfmc.ValidationError{Field: "fields", Err: sfmc.ErrFieldsRequired}
	}

	hasPrimaryKey := false

	for i, field := range fields {
		if field.Name == "" {
			return &sfmc.ValidationError{Field: fmt.Sprintf("fields[%d].name", i), Err: sfmc.ErrFieldNameRequired}
		}

		if !field.Type.Valid() {
			return &sfmc.ValidationError{
				Field: fmt.Sprintf("fields[%d].type", i),
				Err:   fmt.Errorf("%w: %q", sfmc.ErrInvalidFieldType, field.Type),
			}
		}

		if field.IsPrimaryKey {
			hasPrimaryKey = true
		}
	}

	if !hasPrimaryKey {
		return &sfmc.ValidationError{Field: "fields", Err: sfmc.ErrPrimaryKeyRequired}
	}

	return nil
}

// NewCreateRequest builds the creation of data extension objectKey. The key
// doubles as the display name.
func NewCreateRequest(objectKey string, fields []sfmc.DataExtensionField) (*CreateRequest, error) {
	if objectKey == "" {
		return nil, &sfmc.ValidationError{Field: "objectKey", Err: sfmc.ErrObjectKeyRequired}
	}

	err := ValidateFields(fields)
	if err != nil {
		return nil, err
	}

	entries := make([]FieldEntry, 0, len(fields))
	for _, field := range fields {
		entries = append(entries, fieldEntryOf(field))
	}

	return &CreateRequest{
		Xmlns: constants.PartnerAPINamespace,
		Objects: CreateDataExtension{
			Type:        dataExtensionType,
			PartnerKey:  xsiNil(),
			ObjectID:    xsiNil(),
			CustomerKey: objectKey,
			Name:        objectKey,
			Fields:      entries,
		},
	}, nil
}

func fieldEntryOf(field sfmc.DataExtensionField) FieldEntry {
	entry := FieldEntry{
		Name:         field.Name,
		DataType:     string(field.Type),
		IsPrimaryKey: field.IsPrimaryKey,
		IsRequired:   field.IsPrimaryKey || field.IsRequired,
	}

	// MaxLength only applies to Text.
	if field.Type == sfmc.FieldTypeText {
		length := field.Length
		if length <= 0 {
			length = sfmc.DefaultTextLength
		}

		entry.MaxLength = strconv.Itoa(length)
	}

	return entry
}

// DeleteRequest deletes a data extension by customer key.
type DeleteRequest struct {
	XMLName xml.Name            `xml:"DeleteRequest"`
	Xmlns   string              `xml:"xmlns,attr"`
	Objects DeleteDataExtension `xml:"Objects"`
}

// DeleteDataExtension identifies the data extension to delete.
type DeleteDataExtension struct {
	Type        string `xml:"xsi:type,attr"`
	CustomerKey string `xml:"CustomerKey"`
}

// NewDeleteRequest builds the deletion of data extension objectKey.
func NewDeleteRequest(objectKey string) (*DeleteRequest, error) {
	if objectKey == "" {
		return nil, &sfmc.ValidationError{Field: "objectKey", Err: sfmc.ErrObjectKeyRequired}
	}

	return &DeleteRequest{
		Xmlns: constants.PartnerAPINamespace,
		Objects: DeleteDataExtension{
			Type:        dataExtensionType,
			CustomerKey: objectKey,
		},
	}, nil
}
