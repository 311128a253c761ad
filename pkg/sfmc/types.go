package sfmc

// Row is one data extension record keyed by column name.
type Row map[string]interface{}

// RowsetItem is an element of a REST rowset payload.
type RowsetItem struct {
	Keys   Row `json:"keys,omitempty"   yaml:"keys,omitempty"`
	Values Row `json:"values,omitempty" yaml:"values,omitempty"`
}

// RowsetResponse is the body of a REST rowset read.
type RowsetResponse struct {
	Items []RowsetItem `json:"items"`
}

// FieldType is the data type of a data extension column.
type FieldType string

// Supported field types.
const (
	FieldTypeText    FieldType = "Text"
	FieldTypeNumber  FieldType = "Number"
	FieldTypeDate    FieldType = "Date"
	FieldTypeBoolean FieldType = "Boolean"
)

// DefaultTextLength is the MaxLength sent for Text fields without a length.
const DefaultTextLength = 4000

// Valid reports whether t is one of the supported field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeBoolean:
		return true
	default:
		return false
	}
}

// DataExtensionField describes a column of a data extension to create.
type DataExtensionField struct {
	Name         string    `json:"name"                   yaml:"name"`
	Type         FieldType `json:"type"                   yaml:"type"`
	IsPrimaryKey bool      `json:"is_primary_key"         yaml:"is_primary_key"`
	IsRequired   bool      `json:"is_required"            yaml:"is_required"`
	Length       int       `json:"length,omitempty"       yaml:"length,omitempty"`
}
