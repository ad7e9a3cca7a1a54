package upload

import (
	"context"
	"fmt"

	"github.com/bitrise-steplib/steps-xray-results-upload/jira"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
)

// Phases are the steps of an upload run.
type Phases interface {
	UploadFeatureFiles(ctx context.Context, params RuntimeParameters) error
	BuildMultipartInfo(ctx context.Context, params RuntimeParameters) (xray.MultipartInfo, error)
	UploadCypressResults(ctx context.Context, params RuntimeParameters, info xray.MultipartInfo) (string, error)
	UploadCucumberResults(ctx context.Context, params RuntimeParameters, info xray.MultipartInfo) (string, error)
}

// Result ...
type Result struct {
	// TestExecutionIssueKey is empty when the results did not end up in a single test execution issue.
	TestExecutionIssueKey string
}

// Orchestrator runs the upload phases.
type Orchestrator interface {
	Run(ctx context.Context, params RuntimeParameters) (Result, error)
}

type orchestrator struct {
	phases Phases
	jira   jira.Client
	logger logging.Logger
}

// NewOrchestrator ...
func NewOrchestrator(phases Phases, jiraClient jira.Client, logger logging.Logger) Orchestrator {
	return &orchestrator{
		phases: phases,
		jira:   jiraClient,
		logger: logger,
	}
}

// Run uploads feature files and test results. Only failures of building the execution issue data are returned,
// the failure of an upload phase is logged and does not stop the others.
func (o orchestrator) Run(ctx context.Context, params RuntimeParameters) (Result, error) {
	opts := params.Options

	if err := o.phases.UploadFeatureFiles(ctx, params); err != nil {
		o.logger.Message(logging.LevelError, fmt.Sprintf("Failed to upload feature files.\n\n  Caused by: %s", err))
	}

	if !opts.UploadResults {
		o.logger.Message(logging.LevelInfo, "Skipping results upload: Plugin is configured to not upload test results.")
		return Result{}, nil
	}

	containsCypress := params.containsCypressTests()
	containsCucumber := params.containsCucumberTests()
	if !containsCypress && !containsCucumber {
		o.logger.Message(logging.LevelWarning, "Skipping results upload: No test results were found. Make sure the Cypress results contain Cypress or Cucumber tests.")
		return Result{}, nil
	}

	info, err := o.phases.BuildMultipartInfo(ctx, params)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build test execution issue data: %w", err)
	}

	var cypressKey, cucumberKey string
	if containsCypress {
		cypressKey, err = o.phases.UploadCypressResults(ctx, params, info)
		if err != nil {
			o.logger.Message(logging.LevelError, fmt.Sprintf("Failed to upload Cypress test results.\n\n  Caused by: %s", err))
		}
	}
	if containsCucumber {
		cucumberKey, err = o.phases.UploadCucumberResults(ctx, params, info)
		if err != nil {
			o.logger.Message(logging.LevelError, fmt.Sprintf("Failed to upload Cucumber test results.\n\n  Caused by: %s", err))
		}
	}

	key := ValidateExecutionKeys(cypressKey, cucumberKey, o.jira, o.logger)
	if key == "" {
		return Result{}, nil
	}

	if opts.UploadVideos {
		o.attachVideos(ctx, key, params.Results.Videos())
	}

	if opts.TestExecution.TransitionID != "" && opts.TestExecution.IssueKey == "" && !opts.IsCloud {
		o.transition(ctx, key, opts.TestExecution.TransitionID)
	}

	return Result{TestExecutionIssueKey: key}, nil
}

func (o orchestrator) attachVideos(ctx context.Context, issueKey string, videos []string) {
	if len(videos) == 0 {
		return
	}

	o.logger.Message(logging.LevelInfo, fmt.Sprintf("Attaching %d videos to issue: %s", len(videos), issueKey))
	if _, err := o.jira.AddAttachment(ctx, issueKey, videos...); err != nil {
		o.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to attach videos to issue: %s\n\n  Caused by: %s", issueKey, err))
	}
}

// transition moves newly created server test execution issues into the configured status,
// the multipart import endpoints ignore the transition of the info part there.
func (o orchestrator) transition(ctx context.Context, issueKey, transitionID string) {
	o.logger.Message(logging.LevelInfo, fmt.Sprintf("Transitioning test execution issue %s (transition ID: %s)", issueKey, transitionID))
	if err := o.jira.TransitionIssue(ctx, issueKey, jira.Transition{ID: transitionID}); err != nil {
		o.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to transition test execution issue %s\n\n  Caused by: %s", issueKey, err))
	}
}

// ValidateExecutionKeys decides which test execution issue the results were uploaded to.
// It returns an empty key when the Cypress and Cucumber results ended up in different issues.
func ValidateExecutionKeys(cypressKey, cucumberKey string, jiraClient jira.Client, logger logging.Logger) string {
	switch {
	case cypressKey != "" && cucumberKey != "":
		if cypressKey == cucumberKey {
			logger.Message(logging.LevelNotice, fmt.Sprintf("Uploaded Cypress and Cucumber test results to test execution issue: %s (%s)", cypressKey, jiraClient.BrowseURL(cypressKey)))
			return cypressKey
		}

		logger.Message(logging.LevelWarning, fmt.Sprintf(`Cucumber and Cypress test results were uploaded to different test execution issues:

  Cypress test results:  %s
  Cucumber test results: %s

This happens when no test execution issue key is configured and Xray creates a separate issue for each import.
Set the test_execution_issue_key input to upload all results to the same issue.

Videos will not be attached and the test execution issue will not be transitioned.`, jiraClient.BrowseURL(cypressKey), jiraClient.BrowseURL(cucumberKey)))
		return ""
	case cypressKey != "":
		logger.Message(logging.LevelNotice, fmt.Sprintf("Uploaded Cypress test results to test execution issue: %s (%s)", cypressKey, jiraClient.BrowseURL(cypressKey)))
		return cypressKey
	case cucumberKey != "":
		logger.Message(logging.LevelNotice, fmt.Sprintf("Uploaded Cucumber test results to test execution issue: %s (%s)", cucumberKey, jiraClient.BrowseURL(cucumberKey)))
		return cucumberKey
	default:
		return ""
	}
}
