package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/internal/http"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// RestQueryBuilder implements sfmc.RestQuery. Where calls accumulate filters
// on the builder itself; the rowset is only fetched by Execute.
type RestQueryBuilder struct {
	httpClient *http.Client
	objectKey  string
	filters    []sfmc.RestFilter
	err        error
}

// NewRestQueryBuilder creates an empty query against the data extension objectKey.
func NewRestQueryBuilder(httpClient *http.Client, objectKey string) *RestQueryBuilder {
	return &RestQueryBuilder{
		httpClient: httpClient,
		objectKey:  objectKey,
	}
}

// Where appends a filter and returns the same builder. Invalid input is
// reported by Execute.
func (b *RestQueryBuilder) Where(columnName string, operator sfmc.ComparisonOperator, value string) sfmc.RestQuery {
	err := validateWhere(columnName, string(operator))
	if err != nil {
		if b.err == nil {
			b.err = err
		}

		return b
	}

	b.filters = append(b.filters, sfmc.RestFilter{
		ColumnName: columnName,
		Operator:   operator,
		Value:      value,
	})

	return b
}

// Filters returns a copy of the accumulated filters.
func (b *RestQueryBuilder) Filters() []sfmc.RestFilter {
	return append([]sfmc.RestFilter(nil), b.filters...)
}

// Execute fetches the rowset and returns the values of each item in order.
// Every call sends a new request.
func (b *RestQueryBuilder) Execute(ctx context.Context) ([]sfmc.Row, error) {
	if b.err != nil {
		return nil, b.err
	}

	items, err := fetchRowset(ctx, b.httpClient, b.objectKey, b.filters)
	if err != nil {
		return nil, err
	}

	rows := make([]sfmc.Row, 0, len(items))
	for _, item := range items {
		values := item.Values
		if values == nil {
			values = sfmc.Row{}
		}

		rows = append(rows, values)
	}

	return rows, nil
}

func validateWhere(columnName, operator string) error {
	if columnName == "" {
		return &sfmc.ValidationError{Field: "columnName", Err: sfmc.ErrColumnNameRequired}
	}

	if operator == "" {
		return &sfmc.ValidationError{Field: "operator", Err: sfmc.ErrOperatorRequired}
	}

	return nil
}

// filterQuery renders the $filter parameter. Column names and values are
// percent-encoded once, so the server decodes the expression RestFilter renders.
func filterQuery(filters []sfmc.RestFilter) string {
	escaped := make([]sfmc.RestFilter, 0, len(filters))
	for _, filter := range filters {
		filter.ColumnName = sfmc.EncodeFilterValue(filter.ColumnName)
		escaped = append(escaped, filter)
	}

	expression := sfmc.RenderRestFilters(escaped)

	return constants.FilterQueryParam + "=" + strings.ReplaceAll(expression, " ", "%20")
}

func rowsetPath(objectKey string) string {
	return fmt.Sprintf(constants.RowsetPathFormat, url.PathEscape(objectKey))
}

func fetchRowset(ctx context.Context, httpClient *http.Client, objectKey string, filters []sfmc.RestFilter) ([]sfmc.RowsetItem, error) {
	if objectKey == "" {
		return nil, &sfmc.ValidationError{Field: "objectKey", Err: sfmc.ErrObjectKeyRequired}
	}

	req := &http.Request{
		Method: "GET",
		Path:   rowsetPath(objectKey),
	}

	if len(filters) > 0 {
		req.RawQuery = filterQuery(filters)
	}

	resp, err := httpClient.Do(ctx, req)
	if err != nil {
		return nil, queryFailure(err, "fetching rows")
	}

	if len(resp.Body) == 0 {
		return []sfmc.RowsetItem{}, nil
	}

	var rowset sfmc.RowsetResponse

	err = json.Unmarshal(resp.Body, &rowset)
	if err != nil {
		return nil, fmt.Errorf("parsing rowset response: %w", err)
	}

	if rowset.Items == nil {
		return []sfmc.RowsetItem{}, nil
	}

	return rowset.Items, nil
}

// queryFailure turns a non-2xx answer into *sfmc.QueryError and wraps anything else.
func queryFailure(err error, action string) error {
	statusErr := &http.StatusError{}
	if errors.As(err, &statusErr) {
		return &sfmc.QueryError{
			Action:     action,
			StatusCode: statusErr.StatusCode,
			Status:     statusErr.Status,
			Body:       string(statusErr.Body),
		}
	}

	return fmt.Errorf("%s: %w", action, err)
}
