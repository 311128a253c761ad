package sfmc

import (
	"fmt"
	"net/url"
	"strings"
)

// ComparisonOperator is an operator of the REST $filter dialect.
type ComparisonOperator string

// REST comparison operators.
const (
	Equal          ComparisonOperator = "eq"
	NotEqual       ComparisonOperator = "ne"
	LessThan       ComparisonOperator = "lt"
	LessOrEqual    ComparisonOperator = "le"
	GreaterThan    ComparisonOperator = "gt"
	GreaterOrEqual ComparisonOperator = "ge"
	Like           ComparisonOperator = "like"
)

// RestFilterJoin separates rendered REST filters.
const RestFilterJoin = " and "

// RestFilter is a single predicate of the REST dialect.
type RestFilter struct {
	ColumnName string
	Operator   ComparisonOperator
	Value      string
}

// String renders the filter as "<col> <op> '<urlEncodedValue>'".
func (f RestFilter) String() string {
	return fmt.Sprintf("%s %s '%s'", f.ColumnName, f.Operator, EncodeFilterValue(f.Value))
}

// RenderRestFilters joins filters with " and ". An empty slice renders "".
func RenderRestFilters(filters []RestFilter) string {
	parts := make([]string, 0, len(filters))
	for _, filter := range filters {
		parts = append(parts, filter.String())
	}

	return strings.Join(parts, RestFilterJoin)
}

// EncodeFilterValue percent-encodes a filter value. Spaces become %20 so the
// result is safe inside a single-quoted $filter literal.
func EncodeFilterValue(value string) string {
	return strings.ReplaceAll(url.QueryEscape(value), "+", "%20")
}

// SoapOperator is a SimpleOperator of the SOAP filter dialect.
type SoapOperator string

// SOAP simple operators.
const (
	BeginsWith             SoapOperator = "beginsWith"
	Between                SoapOperator = "between"
	Contains               SoapOperator = "contains"
	EndsWith               SoapOperator = "endsWith"
	Equals                 SoapOperator = "equals"
	ExistsInString         SoapOperator = "existsInString"
	ExistsInStringAsAWord  SoapOperator = "existsInStringAsAWord"
	IsGreaterThan          SoapOperator = "greaterThan"
	GreaterThanAnniversary SoapOperator = "greaterThanAnniversary"
	GreaterThanOrEqual     SoapOperator = "greaterThanOrEqual"
	In                     SoapOperator = "IN"
	IsAnniversary          SoapOperator = "isAnniversary"
	IsNotAnniversary       SoapOperator = "isNotAnniversary"
	IsNotNull              SoapOperator = "isNotNull"
	IsNull                 SoapOperator = "isNull"
	IsLessThan             SoapOperator = "lessThan"
	LessThanAnniversary    SoapOperator = "lessThanAnniversary"
	LessThanOrEqual        SoapOperator = "lessThanOrEqual"
	SoapLike               SoapOperator = "like"
	NotContains            SoapOperator = "notContains"
	NotEquals              SoapOperator = "notEquals"
	NotExistsInString      SoapOperator = "notExistsInString"
)

// SoapOperators lists every SOAP simple operator.
var SoapOperators = []SoapOperator{
	BeginsWith, Between, Contains, EndsWith, Equals, ExistsInString,
	ExistsInStringAsAWord, IsGreaterThan, GreaterThanAnniversary, GreaterThanOrEqual,
	In, IsAnniversary, IsNotAnniversary, IsNotNull, IsNull, IsLessThan,
	LessThanAnniversary, LessThanOrEqual, SoapLike, NotContains, NotEquals,
	NotExistsInString,
}

// SoapFilter is a single predicate of the SOAP dialect. Order within a query
// determines the shape of the compiled filter tree.
type SoapFilter struct {
	ColumnName string
	Operator   SoapOperator
	Value      string
}

// String renders the filter for logs and diagnostics.
func (f SoapFilter) String() string {
	return fmt.Sprintf("%s %s '%s'", f.ColumnName, f.Operator, f.Value)
}

// SoapGetOptions tunes a SOAP retrieve.
type SoapGetOptions struct {
	QueryAllAccounts bool
}
