package upload

import (
	"github.com/bitrise-steplib/steps-xray-results-upload/cypress"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
)

// RuntimeParameters is everything one upload run works with. It is not modified during the run.
type RuntimeParameters struct {
	Results cypress.Results
	Options Options
}

// Options are the merged Jira, Xray, Cucumber and plugin options.
type Options struct {
	ProjectKey string
	IsCloud    bool

	UploadResults            bool
	UploadScreenshots        bool
	UploadVideos             bool
	UploadFeatures           bool
	OnlyLastAttempt          bool
	NormalizeScreenshotNames bool

	StatusOverrides status.Overrides
	Aggregate       status.AggregateFunc

	TestExecution    TestExecutionOptions
	TestPlanKey      string
	TestEnvironments []string

	Cucumber CucumberOptions
}

// TestExecutionOptions describe the test execution issue the results are uploaded to.
// An empty IssueKey means a new issue is created.
type TestExecutionOptions struct {
	IssueKey     string
	Summary      string
	Description  string
	IssueType    string
	Labels       []string
	TransitionID string
}

// CucumberOptions ...
type CucumberOptions struct {
	ReportPath           string
	FeatureFileExtension string
	FeatureFiles         []string
	TestPrefix           string
	PreconditionPrefix   string
}

func (p RuntimeParameters) containsCypressTests() bool {
	return p.Results.ContainsCypressTests(p.Options.Cucumber.FeatureFileExtension)
}

func (p RuntimeParameters) containsCucumberTests() bool {
	if p.Options.Cucumber.ReportPath == "" {
		return false
	}
	return p.Results.ContainsCucumberTests(p.Options.Cucumber.FeatureFileExtension)
}

func (p RuntimeParameters) featureFiles() []string {
	if len(p.Options.Cucumber.FeatureFiles) > 0 {
		return p.Options.Cucumber.FeatureFiles
	}
	return p.Results.SpecFiles(p.Options.Cucumber.FeatureFileExtension)
}
