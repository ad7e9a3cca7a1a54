package cucumber

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	loggingMocks "github.com/bitrise-steplib/steps-xray-results-upload/logging/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const report = `[
  {
    "uri": "cypress/e2e/login.feature",
    "id": "login",
    "keyword": "Feature",
    "name": "Login",
    "description": "",
    "line": 1,
    "elements": [
      {
        "keyword": "Background",
        "name": "",
        "description": "",
        "line": 3,
        "type": "background",
        "steps": [{"keyword": "Given ", "name": "the login page", "line": 4, "result": {"status": "passed", "duration": 10}}]
      },
      {
        "id": "login;valid",
        "keyword": "Scenario",
        "name": "Valid credentials",
        "description": "",
        "line": 7,
        "type": "scenario",
        "tags": [{"name": "@TestName:CYP-1", "line": 6}],
        "steps": [{"keyword": "Then ", "name": "I am logged in", "line": 8, "result": {"status": "failed", "error_message": "timeout"}, "embeddings": [{"data": "aW1hZ2U=", "mime_type": "image/png", "name": "failure.png"}]}]
      },
      {
        "id": "login;untagged",
        "keyword": "Scenario",
        "name": "Untagged",
        "description": "",
        "line": 10,
        "type": "scenario",
        "steps": []
      }
    ]
  },
  {
    "uri": "cypress/e2e/logout.feature",
    "id": "logout",
    "keyword": "Feature",
    "name": "Logout",
    "description": "",
    "line": 1,
    "elements": [
      {"id": "logout;untagged", "keyword": "Scenario", "name": "Logout", "description": "", "line": 2, "type": "scenario", "steps": []}
    ]
  }
]`

func writeFile(t *testing.T, name, content string) string {
	pth := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(pth, []byte(content), 0600))
	return pth
}

func Test_GivenReport_WhenConverting_ThenKeepsTaggedScenariosAndBackgrounds(t *testing.T) {
	// Given
	features, err := ReadReport(writeFile(t, "cucumber-report.json", report))
	require.NoError(t, err)

	logger := loggingMocks.NewLogger(t)
	logger.On("Message", logging.LevelWarning, mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "File: cypress/e2e/login.feature\n\nSkipping result upload of scenario: Untagged") &&
			strings.Contains(text, "@TestName:CYP-123\n    Scenario: Untagged")
	})).Once()
	logger.On("Message", logging.LevelWarning, mock.MatchedBy(func(text string) bool {
		return strings.HasPrefix(text, "File: cypress/e2e/logout.feature")
	})).Once()

	// When
	converted, err := NewConverter(logger).ConvertReport(features, Options{ProjectKey: "CYP", TestPrefix: "TestName:"})

	// Then
	require.NoError(t, err)
	require.Len(t, converted, 1)
	require.Len(t, converted[0].Elements, 2)
	assert.Equal(t, "background", converted[0].Elements[0].Type)
	assert.Equal(t, "Valid credentials", converted[0].Elements[1].Name)
	assert.Nil(t, converted[0].Elements[1].Steps[0].Embeddings)
	assert.Equal(t, "timeout", converted[0].Elements[1].Steps[0].Result.ErrorMessage)
	assert.Len(t, features[0].Elements[1].Steps[0].Embeddings, 1)
}

func Test_GivenScreenshotUploadAndExecutionKey_WhenConverting_ThenKeepsEmbeddingsAndTagsFeature(t *testing.T) {
	features, err := ReadReport(writeFile(t, "cucumber-report.json", report))
	require.NoError(t, err)
	logger := loggingMocks.NewLogger(t)
	logger.On("Message", logging.LevelWarning, mock.Anything).Twice()

	converted, err := NewConverter(logger).ConvertReport(features, Options{ProjectKey: "CYP", TestPrefix: "TestName:", UploadScreenshots: true, TestExecutionIssueKey: "CYP-100"})

	require.NoError(t, err)
	assert.Equal(t, []Tag{{Name: "@CYP-100"}}, converted[0].Tags)
	assert.Equal(t, "failure.png", converted[0].Elements[1].Steps[0].Embeddings[0].Name)
}

func Test_GivenNoTaggedScenarios_WhenConverting_ThenReturnsNoTestsError(t *testing.T) {
	features, err := ReadReport(writeFile(t, "cucumber-report.json", report))
	require.NoError(t, err)
	logger := loggingMocks.NewLogger(t)
	logger.On("Message", logging.LevelWarning, mock.Anything).Times(3)

	_, err = NewConverter(logger).ConvertReport(features, Options{ProjectKey: "ABC", TestPrefix: "TestName:"})

	require.ErrorIs(t, err, ErrNoTestsToUpload)
}

func Test_GivenFeatureFile_WhenParsing_ThenCollectsTestAndPreconditionKeys(t *testing.T) {
	// Given
	pth := writeFile(t, "login.feature", `@TestName:CYP-99
Feature: Login

  Background:
    #@Precondition:CYP-10
    # a regular comment
    Given the login page

  @TestName:CYP-1 @smoke
  Scenario: Valid credentials
    Then I am logged in

  # @Precondition:CYP-11 outside of a background
  Scenario: Untagged
    Then nothing happens

  Rule: Locked accounts
    Background:
      #@Precondition:CYP-12
      Given a locked account

    @TestName:CYP-2 @TestName:CYP-3
    Scenario: Locked
      Then I see an error
`)

	// When
	issues, err := ParseFeatureFile(pth, Options{ProjectKey: "CYP", TestPrefix: "TestName:", PreconditionPrefix: "Precondition:"})

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"CYP-1", "CYP-2", "CYP-3"}, issues.Tests)
	assert.Equal(t, []string{"CYP-10", "CYP-12"}, issues.Preconditions)
	assert.Equal(t, []string{"CYP-1", "CYP-2", "CYP-3", "CYP-10", "CYP-12"}, issues.Keys())
}

func Test_GivenInvalidFeatureFile_WhenParsing_ThenReturnsError(t *testing.T) {
	pth := writeFile(t, "broken.feature", "this is not gherkin\n")

	_, err := ParseFeatureFile(pth, Options{ProjectKey: "CYP"})

	require.Error(t, err)
}
