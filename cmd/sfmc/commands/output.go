package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const defaultJSONIndent = 2

// writeStructured writes v as JSON or YAML. It reports false for the table format.
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", fmt.Sprintf("%*s", defaultJSONIndent, ""))

		return true, encoder.Encode(v)
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(w)
		defer func() { _ = encoder.Close() }()

		return true, encoder.Encode(v)
	case constants.OutputFormatTable, "":
		return false, nil
	default:
		return true, fmt.Errorf("%w: %s", ErrUnknownOutputFormat, format)
	}
}

// renderRows prints rows with one column per distinct key, sorted by name.
func renderRows(w io.Writer, format string, rows []sfmc.Row) error {
	if rows == nil {
		rows = []sfmc.Row{}
	}

	done, err := writeStructured(w, format, rows)
	if done {
		return err
	}

	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No rows found")

		return nil
	}

	columns := columnsOf(rows)

	table := tablewriter.NewWriter(w)
	table.Header(columns)

	for _, row := range rows {
		cells := make([]string, 0, len(columns))
		for _, column := range columns {
			cells = append(cells, cellOf(row, column))
		}

		_ = table.Append(cells)
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderItem prints a single rowset item as a property table.
func renderItem(w io.Writer, format string, item *sfmc.RowsetItem) error {
	done, err := writeStructured(w, format, item)
	if done {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Column", "Value", "Key")

	for _, column := range columnsOf([]sfmc.Row{item.Keys}) {
		_ = table.Append(column, cellOf(item.Keys, column), "yes")
	}

	for _, column := range columnsOf([]sfmc.Row{item.Values}) {
		if _, isKey := item.Keys[column]; isKey {
			continue
		}

		_ = table.Append(column, cellOf(item.Values, column), "")
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// renderProperties prints name/value pairs in the given order.
func renderProperties(w io.Writer, format string, v interface{}, pairs [][2]string) error {
	done, err := writeStructured(w, format, v)
	if done {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	for _, pair := range pairs {
		_ = table.Append(pair[0], pair[1])
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func columnsOf(rows []sfmc.Row) []string {
	seen := make(map[string]struct{})

	var columns []string

	for _, row := range rows {
		for column := range row {
			if _, ok := seen[column]; ok {
				continue
			}

			seen[column] = struct{}{}
			columns = append(columns, column)
		}
	}

	sort.Strings(columns)

	return columns
}

func cellOf(row sfmc.Row, column string) string {
	value, ok := row[column]
	if !ok || value == nil {
		return ""
	}

	return fmt.Sprint(value)
}
