package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenJSONBody_WhenSending_ThenEncodesBodyAndDecodesResponse(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/api/2/search", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "project = CYP", body["jql"])

		_, _ = w.Write([]byte(`{"total": 3}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", BearerAuth("token"), log.NewLogger())

	// When
	var result struct {
		Total int `json:"total"`
	}
	err := client.DoJSON(context.Background(), http.MethodPost, "/rest/api/2/search", map[string]string{"jql": "project = CYP"}, &result)

	// Then
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
}

func Test_GivenClientError_WhenSending_ThenReturnsStatusAndBody(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errorMessages":["bad jql"]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, BasicAuth("user", "secret"), log.NewLogger())

	// When
	err := client.DoJSON(context.Background(), http.MethodGet, "/rest/api/2/field", nil, nil)

	// Then
	var restErr Error
	require.ErrorAs(t, err, &restErr)
	assert.Equal(t, http.StatusBadRequest, restErr.StatusCode)
	assert.Equal(t, `{"errorMessages":["bad jql"]}`, restErr.Body)
}

func Test_GivenFileParts_WhenSendingMultipart_ThenUploadsFileContents(t *testing.T) {
	// Given
	video := filepath.Join(t.TempDir(), "login.cy.ts.mp4")
	require.NoError(t, os.WriteFile(video, []byte("video"), 0600))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "no-check", r.Header.Get("X-Atlassian-Token"))

		reader, err := r.MultipartReader()
		require.NoError(t, err)

		part, err := reader.NextPart()
		require.NoError(t, err)
		assert.Equal(t, "file", part.FormName())
		assert.Equal(t, "login.cy.ts.mp4", part.FileName())
		content, err := io.ReadAll(part)
		require.NoError(t, err)
		assert.Equal(t, "video", string(content))

		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil, log.NewLogger())

	// When
	err := client.DoMultipart(context.Background(), http.MethodPost, "/attachments", []Part{{Name: "file", Path: video}}, map[string]string{"X-Atlassian-Token": "no-check"}, nil)

	// Then
	require.NoError(t, err)
}
