package testaddon

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-xray-results-upload/cucumber"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"github.com/jstemmer/go-junit-report/v2/junit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var serverTokens = StatusTokens{Passed: "PASS", Failed: "FAIL", Pending: "TODO", Skipped: "FAIL"}

func Test_GivenNormalBundleName_WhenExport_ThenCreatesOutputStructure(t *testing.T) {
	runTest(t, "Xray Cypress results", "Xray Cypress results")
}

func Test_GivenBundleNameWithSpecialCharacters_WhenExport_ThenReplacesSpecialCharacters(t *testing.T) {
	runTest(t, "W/eir/d:Na::me/", "W-eir-d-Na--me-")
}

func runTest(t *testing.T, bundleName string, expectedBundleName string) {
	// Given
	outputDir := t.TempDir()
	exporter := NewExporter(NewTestAddon(log.NewLogger()))
	suites := CypressSuites("cypress", []xray.Test{{TestKey: "CYP-1", Status: "PASS"}}, serverTokens)

	// When
	err := exporter.ExportReport(Report{
		Suites:          suites,
		TargetAddonPath: outputDir,
		BundleName:      bundleName,
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, expectedBundleName, exportedBundleName(t, filepath.Join(outputDir, expectedBundleName, "test-info.json")))

	content, err := os.ReadFile(filepath.Join(outputDir, expectedBundleName, "xray-results.xml"))
	require.NoError(t, err)
	var written junit.Testsuites
	require.NoError(t, xml.Unmarshal(content, &written))
	require.Len(t, written.Suites, 1)
	assert.Equal(t, "CYP-1", written.Suites[0].Testcases[0].Name)
}

func exportedBundleName(t *testing.T, path string) string {
	type testBundle struct {
		BundleName string `json:"test-name"`
	}

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var bundle testBundle
	require.NoError(t, json.Unmarshal(content, &bundle))
	return bundle.BundleName
}

func Test_GivenXrayTests_WhenCreatingSuites_ThenClassifiesStatuses(t *testing.T) {
	// When
	suites := CypressSuites("cypress", []xray.Test{
		{TestKey: "CYP-1", Start: "2023-07-23T21:26:15Z", Finish: "2023-07-23T21:26:17Z", Status: "PASS"},
		{TestKey: "CYP-2", Status: "FAIL"},
		{TestKey: "CYP-3", Status: "TODO"},
		{TestKey: "CYP-4", Status: "custom"},
	}, serverTokens)

	// Then
	require.Len(t, suites.Suites, 1)
	suite := suites.Suites[0]
	assert.Equal(t, 4, suite.Tests)
	assert.Equal(t, 2, suite.Failures)
	assert.Equal(t, 1, suite.Skipped)
	assert.Equal(t, "2.000", suite.Testcases[0].Time)
	assert.Nil(t, suite.Testcases[0].Failure)
	assert.Equal(t, "Xray status: FAIL", suite.Testcases[1].Failure.Message)
	assert.NotNil(t, suite.Testcases[2].Skipped)
	assert.NotNil(t, suite.Testcases[3].Failure)
}

func Test_GivenCucumberFeatures_WhenCreatingSuites_ThenSkipsBackgrounds(t *testing.T) {
	// When
	suites := CucumberSuites([]cucumber.Feature{{
		Name: "Login",
		Elements: []cucumber.Element{
			{Type: "background", Steps: []cucumber.Step{{Result: cucumber.Result{Status: "passed"}}}},
			{Type: "scenario", Name: "Valid", Steps: []cucumber.Step{{Keyword: "Then ", Name: "I am in", Result: cucumber.Result{Status: "failed", Duration: 1500000000, ErrorMessage: "timeout"}}}},
			{Type: "scenario", Name: "Later", Steps: []cucumber.Step{{Keyword: "Given ", Name: "nothing", Result: cucumber.Result{Status: "pending"}}}},
		},
	}})

	// Then
	require.Len(t, suites.Suites, 1)
	suite := suites.Suites[0]
	assert.Equal(t, 2, suite.Tests)
	assert.Equal(t, 1, suite.Failures)
	assert.Equal(t, 1, suite.Skipped)
	assert.Equal(t, "Then I am in", suite.Testcases[0].Failure.Message)
	assert.Equal(t, "timeout", suite.Testcases[0].Failure.Data)
	assert.Equal(t, "1.500", suite.Testcases[0].Time)
}
