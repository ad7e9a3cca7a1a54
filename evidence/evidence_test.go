package evidence

import (
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/fileutil"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GivenScreenshots_WhenEncoding_ThenKeepsOrderAndEncodesContent(t *testing.T) {
	// Given
	tempDir := t.TempDir()
	first := writeFile(t, filepath.Join(tempDir, "CYP-1 first.png"), "first")
	second := writeFile(t, filepath.Join(tempDir, "CYP-1 second.png"), "second")

	// When
	encoded, errs := NewEncoder().EncodeScreenshots([]string{second, first}, false)

	// Then
	require.Empty(t, errs)
	assert.Equal(t, []xray.Evidence{
		{ContentType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("second")), Filename: "CYP-1 second.png"},
		{ContentType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("first")), Filename: "CYP-1 first.png"},
	}, encoded)
}

func Test_GivenMissingScreenshot_WhenEncoding_ThenEncodesTheOthers(t *testing.T) {
	// Given
	tempDir := t.TempDir()
	missing := filepath.Join(tempDir, "CYP-1 missing.png")
	existing := writeFile(t, filepath.Join(tempDir, "CYP-1 existing.png"), "existing")

	// When
	encoded, errs := NewEncoder().EncodeScreenshots([]string{missing, existing}, false)

	// Then
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), missing)
	assert.Equal(t, []xray.Evidence{
		{ContentType: "image/png", Data: base64.StdEncoding.EncodeToString([]byte("existing")), Filename: "CYP-1 existing.png"},
	}, encoded)
}

func Test_GivenNonASCIIName_WhenNormalizing_ThenStripsDiacriticsAndReplacesRest(t *testing.T) {
	assert.Equal(t, "CYP-1 Resume cafe.png", NormalizeFilename("CYP-1 Résumé café.png"))
	assert.Equal(t, "CYP-2 __.png", NormalizeFilename("CYP-2 日本.png"))
	assert.Equal(t, "plain.png", NormalizeFilename("plain.png"))
}

func Test_GivenParameters_WhenAddedTwice_ThenLaterValuesReplaceEarlierOnes(t *testing.T) {
	// Given
	collection := NewCollection()

	// When
	collection.AddIterationParameters("CYP-1", "CYP-1 logs in", xray.Parameter{Name: "user", Value: "alice"}, xray.Parameter{Name: "browser", Value: "chrome"})
	collection.AddIterationParameters("CYP-1", "CYP-1 logs in", xray.Parameter{Name: "user", Value: "bob"})

	// Then
	assert.Equal(t, []xray.Parameter{{Name: "user", Value: "bob"}, {Name: "browser", Value: "chrome"}}, collection.IterationParameters("CYP-1", "CYP-1 logs in"))
	assert.Empty(t, collection.IterationParameters("CYP-1", "other title"))
}

func Test_GivenManifest_WhenLoading_ThenCollectsEvidenceAndParameters(t *testing.T) {
	// Given
	tempDir := t.TempDir()
	writeFile(t, filepath.Join(tempDir, "logs", "request.json"), `{"ok":true}`)
	manifestPath := writeFile(t, filepath.Join(tempDir, "manifest.yml"), `
evidence:
  - issueKey: CYP-1
    path: logs/request.json
  - issueKey: CYP-1
    filename: note.txt
    contentType: text/plain
    data: aGVsbG8=
iterations:
  - issueKey: CYP-2
    title: CYP-2 searches
    parameters:
      - name: term
        value: shoes
`)

	// When
	collection, err := LoadManifest(manifestPath)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []xray.Evidence{
		{ContentType: "application/json", Data: base64.StdEncoding.EncodeToString([]byte(`{"ok":true}`)), Filename: "request.json"},
		{ContentType: "text/plain", Data: "aGVsbG8=", Filename: "note.txt"},
	}, collection.Evidence("CYP-1"))
	assert.Equal(t, []xray.Parameter{{Name: "term", Value: "shoes"}}, collection.IterationParameters("CYP-2", "CYP-2 searches"))
}

func Test_GivenManifestWithMissingFile_WhenLoading_ThenFails(t *testing.T) {
	// Given
	manifestPath := writeFile(t, filepath.Join(t.TempDir(), "manifest.json"), `{"evidence": [{"issueKey": "CYP-1", "path": "missing.png"}]}`)

	// When
	_, err := LoadManifest(manifestPath)

	// Then
	assert.Error(t, err)
}

func writeFile(t *testing.T, pth, content string) string {
	err := fileutil.NewFileManager().Write(pth, content, 0777)
	require.NoError(t, err)
	return pth
}
