package testutil

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONResponse decodes the response body into out and checks the
// content type.
func AssertJSONResponse(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()

	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// AssertDetail checks the `{"detail": ...}` error body shape.
func AssertDetail(t *testing.T, resp *http.Response, wantDetail string) {
	t.Helper()

	var body struct {
		Detail string `json:"detail"`
	}
	AssertJSONResponse(t, resp, &body)
	assert.Equal(t, wantDetail, body.Detail)
}
