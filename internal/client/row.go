package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/sfmc-client/internal/constants"
	"github.com/fivetwenty-io/sfmc-client/internal/http"
	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

// RowClient implements sfmc.RowAccessor for one key column/value pair.
type RowClient struct {
	httpClient *http.Client
	objectKey  string
	keyColumn  string
	keyValue   string
}

// Get returns the first item whose key column equals the key value.
func (r *RowClient) Get(ctx context.Context) (*sfmc.RowsetItem, error) {
	if r.keyColumn == "" {
		return nil, &sfmc.ValidationError{Field: "keyColumn", Err: sfmc.ErrColumnNameRequired}
	}

	items, err := fetchRowset(ctx, r.httpClient, r.objectKey, []sfmc.RestFilter{{
		ColumnName: r.keyColumn,
		Operator:   sfmc.Equal,
		Value:      r.keyValue,
	}})
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s = %q", sfmc.ErrRowNotFound, r.keyColumn, r.keyValue)
	}

	return &items[0], nil
}

// Upsert inserts or updates the row identified by the key and returns the
// first item the server echoes back. Any 2xx answer that is not a non-empty
// array of items yields the submitted item: the row is written either way.
func (r *RowClient) Upsert(ctx context.Context, record sfmc.Row) (*sfmc.RowsetItem, error) {
	if r.objectKey == "" {
		return nil, &sfmc.ValidationError{Field: "objectKey", Err: sfmc.ErrObjectKeyRequired}
	}

	if r.keyColumn == "" {
		return nil, &sfmc.ValidationError{Field: "keyColumn", Err: sfmc.ErrColumnNameRequired}
	}

	submitted := sfmc.RowsetItem{
		Keys:   sfmc.Row{r.keyColumn: r.keyValue},
		Values: record,
	}

	path := fmt.Sprintf(constants.UpsertPathFormat, url.PathEscape(r.objectKey))

	resp, err := r.httpClient.Post(ctx, path, []sfmc.RowsetItem{submitted})
	if err != nil {
		return nil, queryFailure(err, "upserting row")
	}

	items := upsertedItems(resp.Body)
	if len(items) == 0 {
		return &submitted, nil
	}

	return &items[0], nil
}

// upsertedItems decodes body when it is a JSON array of items, and returns
// nil for anything else.
func upsertedItems(body []byte) []sfmc.RowsetItem {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil
	}

	var items []sfmc.RowsetItem

	err := json.Unmarshal(trimmed, &items)
	if err != nil {
		return nil
	}

	return items
}
