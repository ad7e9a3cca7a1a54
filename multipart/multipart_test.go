package multipart

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bitrise-steplib/steps-xray-results-upload/jira"
	jiraMocks "github.com/bitrise-steplib/steps-xray-results-upload/jira/mocks"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	loggingMocks "github.com/bitrise-steplib/steps-xray-results-upload/logging/mocks"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var defaultFieldConfig = FieldConfig{
	TestPlanName:         "Test Plan",
	TestEnvironmentsName: "Test Environments",
}

func issueData() IssueData {
	return IssueData{
		ProjectKey:     "CYP",
		Summary:        "Execution Results [2023-07-23T21:26:15Z]",
		IssueType:      "Test Execution",
		CypressVersion: "13.2.0",
		BrowserName:    "electron",
		BrowserVersion: "114.0.5735.289",
	}
}

func Test_GivenCloud_WhenBuilding_ThenUsesXrayFields(t *testing.T) {
	// Given
	data := issueData()
	data.TestPlanKey = "CYP-10"
	data.TestEnvironments = []string{"DEV", "ios"}
	data.TransitionID = "21"
	builder := NewBuilder(true, nil, FieldConfig{}, nil)

	// When
	info, err := builder.Build(context.Background(), data)

	// Then
	require.NoError(t, err)
	assert.Equal(t, xray.MultipartInfo{
		Fields: map[string]interface{}{
			"description": "Cypress version: 13.2.0 Browser: electron (114.0.5735.289)",
			"issuetype":   map[string]string{"name": "Test Execution"},
			"project":     map[string]string{"key": "CYP"},
			"summary":     "Execution Results [2023-07-23T21:26:15Z]",
		},
		Transition: &xray.Transition{ID: "21"},
		XrayFields: &xray.XrayFields{Environments: []string{"DEV", "ios"}, TestPlanKey: "CYP-10"},
	}, info)
}

func Test_GivenUserDescription_WhenBuilding_ThenKeepsIt(t *testing.T) {
	data := issueData()
	data.Description = "Nightly run"

	info, err := NewBuilder(true, nil, FieldConfig{}, nil).Build(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, "Nightly run", info.Fields["description"])
	assert.Nil(t, info.XrayFields)
}

func Test_GivenStaticFieldIDs_WhenBuildingForServer_ThenSkipsFieldLookup(t *testing.T) {
	// Given
	jiraClient := jiraMocks.NewClient(t)
	logger := loggingMocks.NewLogger(t)
	data := issueData()
	data.TestPlanKey = "CYP-10"
	data.TestEnvironments = []string{"DEV"}
	builder := NewBuilder(false, jiraClient, FieldConfig{TestPlanID: "customfield_12345", TestEnvironmentsID: "customfield_67890"}, logger)

	// When
	info, err := builder.Build(context.Background(), data)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"CYP-10"}, info.Fields["customfield_12345"])
	assert.Equal(t, []string{"DEV"}, info.Fields["customfield_67890"])
	assert.Nil(t, info.XrayFields)
	jiraClient.AssertNotCalled(t, "GetFields", mock.Anything)
}

func Test_GivenFieldNames_WhenBuildingForServer_ThenFetchesFieldsOnce(t *testing.T) {
	// Given
	jiraClient := jiraMocks.NewClient(t)
	logger := loggingMocks.NewLogger(t)
	jiraClient.On("GetFields", mock.Anything).Return([]jira.Field{
		{ID: "summary", Name: "Summary"},
		{ID: "customfield_1", Name: "test plan"},
		{ID: "customfield_2", Name: "TEST ENVIRONMENTS"},
	}, nil).Once()
	data := issueData()
	data.TestPlanKey = "CYP-10"
	data.TestEnvironments = []string{"DEV"}
	builder := NewBuilder(false, jiraClient, defaultFieldConfig, logger)

	// When
	info, err := builder.Build(context.Background(), data)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"CYP-10"}, info.Fields["customfield_1"])
	assert.Equal(t, []string{"DEV"}, info.Fields["customfield_2"])
}

func Test_GivenAmbiguousFieldName_WhenBuildingForServer_ThenWarnsWithCandidates(t *testing.T) {
	// Given
	jiraClient := jiraMocks.NewClient(t)
	logger := loggingMocks.NewLogger(t)
	jiraClient.On("GetFields", mock.Anything).Return([]jira.Field{
		{ID: "customfield_1", Name: "Test Plan"},
		{ID: "customfield_2", Name: "test plan"},
	}, nil).Once()
	logger.On("Message", logging.LevelWarning, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "There are multiple fields with this name") &&
			strings.Contains(text, "id: customfield_1, name: Test Plan") &&
			strings.Contains(text, "id: customfield_2, name: test plan")
	})).Once()
	data := issueData()
	data.TestPlanKey = "CYP-10"

	// When
	info, err := NewBuilder(false, jiraClient, defaultFieldConfig, logger).Build(context.Background(), data)

	// Then
	require.NoError(t, err)
	assert.NotContains(t, info.Fields, "customfield_1")
	assert.NotContains(t, info.Fields, "customfield_2")
}

func Test_GivenMissingFieldName_WhenBuildingForServer_ThenWarnsWithAvailableFields(t *testing.T) {
	// Given
	jiraClient := jiraMocks.NewClient(t)
	logger := loggingMocks.NewLogger(t)
	jiraClient.On("GetFields", mock.Anything).Return([]jira.Field{{ID: "summary", Name: "Summary"}}, nil).Once()
	logger.On("Message", logging.LevelWarning, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "Available fields:\n  name: Summary, id: summary")
	})).Once()
	data := issueData()
	data.TestEnvironments = []string{"DEV"}

	// When
	info, err := NewBuilder(false, jiraClient, defaultFieldConfig, logger).Build(context.Background(), data)

	// Then
	require.NoError(t, err)
	assert.Len(t, info.Fields, 4)
}

func Test_GivenFieldFetchFailure_WhenBuildingForServer_ThenWarnsForEachAssociation(t *testing.T) {
	// Given
	jiraClient := jiraMocks.NewClient(t)
	logger := loggingMocks.NewLogger(t)
	jiraClient.On("GetFields", mock.Anything).Return(nil, errors.New("connection refused")).Once()
	logger.On("Message", logging.LevelWarning, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "test plan field with name: Test Plan") && strings.Contains(text, "connection refused")
	})).Once()
	logger.On("Message", logging.LevelWarning, mock.MatchedBy(func(text string) bool {
		return strings.Contains(text, "test environments field with name: Test Environments") && strings.Contains(text, "connection refused")
	})).Once()
	data := issueData()
	data.TestPlanKey = "CYP-10"
	data.TestEnvironments = []string{"DEV"}

	// When
	info, err := NewBuilder(false, jiraClient, defaultFieldConfig, logger).Build(context.Background(), data)

	// Then
	require.NoError(t, err)
	assert.Len(t, info.Fields, 4)
}

func Test_GivenTestPlanWithoutFieldConfig_WhenBuildingForServer_ThenReturnsError(t *testing.T) {
	data := issueData()
	data.TestPlanKey = "CYP-10"

	_, err := NewBuilder(false, jiraMocks.NewClient(t), FieldConfig{}, loggingMocks.NewLogger(t)).Build(context.Background(), data)

	require.EqualError(t, err, "a test plan issue key (CYP-10) was configured without the test plan field ID or name")
}

func Test_GivenServerFieldConfig_WhenValidating_ThenRequiresAFieldPerAssociation(t *testing.T) {
	assert.NoError(t, FieldConfig{}.Validate(true, "CYP-10", []string{"staging"}))
	assert.NoError(t, FieldConfig{}.Validate(false, "", nil))
	assert.NoError(t, FieldConfig{TestPlanName: "Test Plan"}.Validate(false, "CYP-10", nil))
	assert.NoError(t, FieldConfig{TestEnvironmentsID: "customfield_67890"}.Validate(false, "", []string{"staging"}))

	assert.EqualError(t, FieldConfig{TestEnvironmentsName: "Test Environments"}.Validate(false, "CYP-10", nil),
		"a test plan issue key (CYP-10) was configured without the test plan field ID or name")
	assert.EqualError(t, FieldConfig{TestPlanID: "customfield_12345"}.Validate(false, "CYP-10", []string{"staging", "Chrome 114"}),
		"test environments (staging, Chrome 114) were configured without the test environments field ID or name")
}
