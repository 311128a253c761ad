package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

const (
	whereParts      = 3
	assignmentParts = 2
	minFieldParts   = 2
)

var restOperators = []sfmc.ComparisonOperator{
	sfmc.Equal, sfmc.NotEqual, sfmc.LessThan, sfmc.LessOrEqual,
	sfmc.GreaterThan, sfmc.GreaterOrEqual, sfmc.Like,
}

// splitWhere splits "column operator value". The value keeps its inner
// spaces and loses one pair of surrounding quotes.
func splitWhere(clause string) (string, string, string, error) {
	parts := strings.SplitN(strings.TrimSpace(clause), " ", whereParts)
	if len(parts) != whereParts {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidWhere, clause)
	}

	return parts[0], parts[1], unquote(strings.TrimSpace(parts[2])), nil
}

func unquote(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return value[1 : len(value)-1]
		}
	}

	return value
}

// parseRestWhere parses a REST filter such as "email eq a@example.com".
func parseRestWhere(clause string) (sfmc.RestFilter, error) {
	column, operator, value, err := splitWhere(clause)
	if err != nil {
		return sfmc.RestFilter{}, err
	}

	for _, candidate := range restOperators {
		if strings.EqualFold(operator, string(candidate)) {
			return sfmc.RestFilter{ColumnName: column, Operator: candidate, Value: value}, nil
		}
	}

	return sfmc.RestFilter{}, fmt.Errorf("%w: %q", ErrUnknownRestOperator, operator)
}

// parseSoapWhere parses a SOAP filter such as "Age greaterThan 30".
func parseSoapWhere(clause string) (sfmc.SoapFilter, error) {
	column, operator, value, err := splitWhere(clause)
	if err != nil {
		return sfmc.SoapFilter{}, err
	}

	for _, candidate := range sfmc.SoapOperators {
		if strings.EqualFold(operator, string(candidate)) {
			return sfmc.SoapFilter{ColumnName: column, Operator: candidate, Value: value}, nil
		}
	}

	return sfmc.SoapFilter{}, fmt.Errorf("%w: %q", ErrUnknownSoapOperator, operator)
}

// parseFieldSpec parses "name:Type[:pk][:required][:length]".
func parseFieldSpec(spec string) (sfmc.DataExtensionField, error) {
	parts := strings.Split(spec, ":")
	if len(parts) < minFieldParts || parts[0] == "" {
		return sfmc.DataExtensionField{}, fmt.Errorf("%w: %q", ErrInvalidFieldSpec, spec)
	}

	field := sfmc.DataExtensionField{Name: parts[0]}

	fieldType, err := parseFieldType(parts[1])
	if err != nil {
		return sfmc.DataExtensionField{}, err
	}

	field.Type = fieldType

	for _, modifier := range parts[minFieldParts:] {
		switch strings.ToLower(modifier) {
		case "pk", "primary":
			field.IsPrimaryKey = true
		case "required":
			field.IsRequired = true
		default:
			length, err := strconv.Atoi(modifier)
			if err != nil || length <= 0 {
				return sfmc.DataExtensionField{}, fmt.Errorf("%w: %q", ErrInvalidFieldSpec, spec)
			}

			field.Length = length
		}
	}

	return field, nil
}

func parseFieldType(value string) (sfmc.FieldType, error) {
	for _, candidate := range []sfmc.FieldType{sfmc.FieldTypeText, sfmc.FieldTypeNumber, sfmc.FieldTypeDate, sfmc.FieldTypeBoolean} {
		if strings.EqualFold(value, string(candidate)) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: %q", sfmc.ErrInvalidFieldType, value)
}

// parseAssignments turns "col=value" pairs into a row. Later pairs win.
func parseAssignments(assignments []string) (sfmc.Row, error) {
	row := make(sfmc.Row, len(assignments))

	for _, assignment := range assignments {
		parts := strings.SplitN(assignment, "=", assignmentParts)
		if len(parts) != assignmentParts || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAssignment, assignment)
		}

		row[strings.TrimSpace(parts[0])] = parts[1]
	}

	return row, nil
}

// parseFieldList splits a comma separated list, dropping empty entries.
func parseFieldList(values []string) []string {
	var fields []string

	for _, value := range values {
		for _, field := range strings.Split(value, ",") {
			field = strings.TrimSpace(field)
			if field != "" {
				fields = append(fields, field)
			}
		}
	}

	return fields
}
