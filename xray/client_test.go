package xray

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

func Test_GivenServerClient_WhenImportingExecution_ThenSendsResultsAndInfoParts(t *testing.T) {
	// Given
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/raven/1.0/import/execution/multipart", r.URL.Path)
		assert.Equal(t, "Bearer pat", r.Header.Get("Authorization"))

		reader, err := r.MultipartReader()
		require.NoError(t, err)

		parts := map[string][]byte{}
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			content, err := io.ReadAll(part)
			require.NoError(t, err)
			parts[part.FormName()] = content
		}

		var results ImportExecution
		require.NoError(t, json.Unmarshal(parts["results"], &results))
		assert.Equal(t, "CYP-1", results.Tests[0].TestKey)

		var info MultipartInfo
		require.NoError(t, json.Unmarshal(parts["info"], &info))
		assert.Equal(t, "Execution Results", info.Fields["summary"])

		_, _ = w.Write([]byte(`{"testExecIssue": {"id": "10000", "key": "CYP-100"}}`))
	}))
	defer server.Close()

	client := NewServerClient(server.URL, "", "pat", log.NewLogger())

	// When
	key, err := client.ImportExecutionMultipart(context.Background(),
		ImportExecution{Tests: []Test{{TestKey: "CYP-1", Status: "PASS"}}},
		MultipartInfo{Fields: map[string]interface{}{"summary": "Execution Results"}},
	)

	// Then
	require.NoError(t, err)
	assert.Equal(t, "CYP-100", key)
}

func Test_GivenCloudClient_WhenImportingFeature_ThenAuthenticatesOnceAndCollectsIssues(t *testing.T) {
	// Given
	feature := filepath.Join(t.TempDir(), "login.feature")
	require.NoError(t, os.WriteFile(feature, []byte("Feature: Login"), 0600))

	authentications := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/authenticate":
			authentications++
			_, _ = w.Write([]byte(`"jwt"`))
		case "/import/feature":
			assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
			assert.Equal(t, "CYP", r.URL.Query().Get("projectKey"))
			_, _ = w.Write([]byte(`{"errors": ["no scenario"], "updatedOrCreatedTests": [{"key": "CYP-1"}], "updatedOrCreatedPreconditions": [{"key": "CYP-2"}]}`))
		default:
			assert.Failf(t, "unexpected request", "path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := NewCloudClient(server.URL, "id", "secret", log.NewLogger())

	// When
	first, err := client.ImportFeature(context.Background(), "CYP", feature)
	require.NoError(t, err)
	_, err = client.ImportFeature(context.Background(), "CYP", feature)
	require.NoError(t, err)

	// Then
	assert.Equal(t, 1, authentications)
	assert.Equal(t, []string{"CYP-1", "CYP-2"}, first.UpdatedOrCreatedIssues)
	assert.Equal(t, []string{"no scenario"}, first.Errors)
}

func Test_GivenLegacyServerResponse_WhenParsingFeatureImport_ThenReadsIssueList(t *testing.T) {
	c := client{}

	resp, err := c.parseFeatureResponse(json.RawMessage(`[{"key": "CYP-1"}, {"key": "CYP-2"}]`))

	require.NoError(t, err)
	assert.Equal(t, []string{"CYP-1", "CYP-2"}, resp.UpdatedOrCreatedIssues)
	assert.Empty(t, resp.Errors)
}
