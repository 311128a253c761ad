package sfmc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fivetwenty-io/sfmc-client/pkg/sfmc"
)

func TestQueryError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *sfmc.QueryError
		want string
	}{
		{
			name: "action and body",
			err:  &sfmc.QueryError{Action: "upserting row", StatusCode: 400, Status: "400 Bad Request", Body: `{"message":"bad"}`},
			want: `upserting row failed: 400 Bad Request: {"message":"bad"}`,
		},
		{
			name: "no body",
			err:  &sfmc.QueryError{Action: "fetching rows", StatusCode: 404, Status: "404 Not Found"},
			want: "fetching rows failed: 404 Not Found",
		},
		{
			name: "no action",
			err:  &sfmc.QueryError{StatusCode: 500, Status: "500 Internal Server Error"},
			want: "REST request failed: 500 Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, sfmc.IsQueryError(tt.err))
		})
	}
}
