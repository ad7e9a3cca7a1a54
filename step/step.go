package step

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitrise-io/go-steputils/v2/stepconf"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/pathutil"
	"github.com/bitrise-steplib/steps-xray-results-upload/conversion"
	"github.com/bitrise-steplib/steps-xray-results-upload/cucumber"
	"github.com/bitrise-steplib/steps-xray-results-upload/cypress"
	"github.com/bitrise-steplib/steps-xray-results-upload/evidence"
	"github.com/bitrise-steplib/steps-xray-results-upload/jira"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	"github.com/bitrise-steplib/steps-xray-results-upload/multipart"
	"github.com/bitrise-steplib/steps-xray-results-upload/output"
	"github.com/bitrise-steplib/steps-xray-results-upload/snapshot"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
	"github.com/bitrise-steplib/steps-xray-results-upload/upload"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"github.com/kballard/go-shellquote"
)

const (
	defaultFeatureFileExtension      = ".feature"
	defaultTestExecutionIssueType    = "Test Execution"
	defaultTestPlanFieldName         = "Test Plan"
	defaultTestEnvironmentsFieldName = "Test Environments"
)

// Input ...
type Input struct {
	// Results
	CypressResultsPath   string `env:"cypress_results_path,required"`
	CucumberReportPath   string `env:"cucumber_report_path"`
	EvidenceManifestPath string `env:"evidence_manifest_path"`

	// Jira
	JiraURL        string          `env:"jira_url,required"`
	JiraProjectKey string          `env:"jira_project_key,required"`
	JiraUsername   string          `env:"jira_username"`
	JiraAPIToken   stepconf.Secret `env:"jira_api_token,required"`

	JiraFieldIDTestPlan           string `env:"jira_field_id_test_plan"`
	JiraFieldIDTestEnvironments   string `env:"jira_field_id_test_environments"`
	JiraFieldNameTestPlan         string `env:"jira_field_name_test_plan"`
	JiraFieldNameTestEnvironments string `env:"jira_field_name_test_environments"`

	// Xray
	IsCloud          bool            `env:"is_cloud,opt[yes,no]"`
	XrayClientID     string          `env:"xray_client_id"`
	XrayClientSecret stepconf.Secret `env:"xray_client_secret"`

	// Upload
	UploadResults            bool `env:"upload_results,opt[yes,no]"`
	UploadScreenshots        bool `env:"upload_screenshots,opt[yes,no]"`
	UploadVideos             bool `env:"upload_videos,opt[yes,no]"`
	UploadFeatures           bool `env:"upload_features,opt[yes,no]"`
	OnlyLastAttempt          bool `env:"only_last_attempt,opt[yes,no]"`
	NormalizeScreenshotNames bool `env:"normalize_screenshot_names,opt[yes,no]"`

	// Cucumber
	FeatureFileExtension       string `env:"feature_file_extension"`
	FeatureFiles               string `env:"feature_files"`
	CucumberTestPrefix         string `env:"cucumber_test_prefix"`
	CucumberPreconditionPrefix string `env:"cucumber_precondition_prefix"`

	// Test execution issue
	TestExecutionIssueKey         string `env:"test_execution_issue_key"`
	TestExecutionIssueSummary     string `env:"test_execution_issue_summary"`
	TestExecutionIssueDescription string `env:"test_execution_issue_description"`
	TestExecutionIssueType        string `env:"test_execution_issue_type"`
	TestExecutionIssueLabels      string `env:"test_execution_issue_labels"`
	TestExecutionTransitionID     string `env:"test_execution_transition_id"`
	TestPlanIssueKey              string `env:"test_plan_issue_key"`
	TestEnvironments              string `env:"test_environments"`

	// Statuses
	StatusPassed              string `env:"status_passed"`
	StatusFailed              string `env:"status_failed"`
	StatusPending             string `env:"status_pending"`
	StatusSkipped             string `env:"status_skipped"`
	StatusAggregateExpression string `env:"status_aggregate_expression"`

	// Debug
	Verbose bool `env:"verbose,opt[yes,no]"`

	// Output export
	DeployDir string `env:"BITRISE_DEPLOY_DIR"`
}

// Config ...
type Config struct {
	ResultsPath          string
	EvidenceManifestPath string
	DeployDir            string

	JiraURL      string
	JiraUsername string
	JiraAPIToken stepconf.Secret
	JiraFields   multipart.FieldConfig

	XrayClientID     string
	XrayClientSecret stepconf.Secret

	Options upload.Options
}

// XrayConfigParser ...
type XrayConfigParser struct {
	inputParser  stepconf.InputParser
	logger       log.Logger
	pathModifier pathutil.PathModifier
}

// NewXrayConfigParser ...
func NewXrayConfigParser(inputParser stepconf.InputParser, logger log.Logger, pathModifier pathutil.PathModifier) XrayConfigParser {
	return XrayConfigParser{
		inputParser:  inputParser,
		logger:       logger,
		pathModifier: pathModifier,
	}
}

// ProcessConfig ...
func (s XrayConfigParser) ProcessConfig() (Config, error) {
	var input Input
	err := s.inputParser.Parse(&input)
	if err != nil {
		return Config{}, err
	}

	stepconf.Print(input)
	s.logger.Println()

	s.logger.EnableDebugLog(input.Verbose)

	if input.IsCloud {
		if input.XrayClientID == "" || input.XrayClientSecret == "" {
			return Config{}, errors.New("Xray cloud requires both Xray Client ID (xray_client_id) and Xray Client Secret (xray_client_secret)")
		}
		if input.JiraUsername == "" {
			return Config{}, errors.New("Jira cloud requires the Jira username (jira_username) of the API token owner")
		}
	}

	resultsPath, err := s.pathModifier.AbsPath(input.CypressResultsPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute Cypress results path: %w", err)
	}

	cucumberReportPath, err := s.absPathIfSet(input.CucumberReportPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute Cucumber report path: %w", err)
	}

	evidenceManifestPath, err := s.absPathIfSet(input.EvidenceManifestPath)
	if err != nil {
		return Config{}, fmt.Errorf("failed to get absolute evidence manifest path: %w", err)
	}

	testEnvironments, err := splitList("test_environments", input.TestEnvironments)
	if err != nil {
		return Config{}, err
	}
	featureFiles, err := splitList("feature_files", input.FeatureFiles)
	if err != nil {
		return Config{}, err
	}
	labels, err := splitList("test_execution_issue_labels", input.TestExecutionIssueLabels)
	if err != nil {
		return Config{}, err
	}

	var aggregate status.AggregateFunc
	if input.StatusAggregateExpression != "" {
		aggregate, err = status.CompileAggregateExpression(input.StatusAggregateExpression)
		if err != nil {
			return Config{}, fmt.Errorf("invalid Status Aggregate Expression (status_aggregate_expression): %w", err)
		}
	}

	fields := multipart.FieldConfig{
		TestPlanID:           input.JiraFieldIDTestPlan,
		TestPlanName:         valueOrDefault(input.JiraFieldNameTestPlan, defaultTestPlanFieldName),
		TestEnvironmentsID:   input.JiraFieldIDTestEnvironments,
		TestEnvironmentsName: valueOrDefault(input.JiraFieldNameTestEnvironments, defaultTestEnvironmentsFieldName),
	}
	if err := fields.Validate(input.IsCloud, input.TestPlanIssueKey, testEnvironments); err != nil {
		return Config{}, err
	}

	if input.IsCloud && input.TestExecutionTransitionID != "" {
		s.logger.Warnf("Test Execution Transition ID (test_execution_transition_id) is only applied on Xray server, it will be ignored.")
	}

	return Config{
		ResultsPath:          resultsPath,
		EvidenceManifestPath: evidenceManifestPath,
		DeployDir:            input.DeployDir,

		JiraURL:      input.JiraURL,
		JiraUsername: input.JiraUsername,
		JiraAPIToken: input.JiraAPIToken,
		JiraFields:   fields,

		XrayClientID:     input.XrayClientID,
		XrayClientSecret: input.XrayClientSecret,

		Options: upload.Options{
			ProjectKey: input.JiraProjectKey,
			IsCloud:    input.IsCloud,

			UploadResults:            input.UploadResults,
			UploadScreenshots:        input.UploadScreenshots,
			UploadVideos:             input.UploadVideos,
			UploadFeatures:           input.UploadFeatures,
			OnlyLastAttempt:          input.OnlyLastAttempt,
			NormalizeScreenshotNames: input.NormalizeScreenshotNames,

			StatusOverrides: status.Overrides{
				Passed:  input.StatusPassed,
				Failed:  input.StatusFailed,
				Pending: input.StatusPending,
				Skipped: input.StatusSkipped,
			},
			Aggregate: aggregate,

			TestExecution: upload.TestExecutionOptions{
				IssueKey:     input.TestExecutionIssueKey,
				Summary:      input.TestExecutionIssueSummary,
				Description:  input.TestExecutionIssueDescription,
				IssueType:    valueOrDefault(input.TestExecutionIssueType, defaultTestExecutionIssueType),
				Labels:       labels,
				TransitionID: input.TestExecutionTransitionID,
			},
			TestPlanKey:      input.TestPlanIssueKey,
			TestEnvironments: testEnvironments,

			Cucumber: upload.CucumberOptions{
				ReportPath:           cucumberReportPath,
				FeatureFileExtension: valueOrDefault(input.FeatureFileExtension, defaultFeatureFileExtension),
				FeatureFiles:         featureFiles,
				TestPrefix:           input.CucumberTestPrefix,
				PreconditionPrefix:   input.CucumberPreconditionPrefix,
			},
		},
	}, nil
}

func (s XrayConfigParser) absPathIfSet(pth string) (string, error) {
	if pth == "" {
		return "", nil
	}
	return s.pathModifier.AbsPath(pth)
}

// ClientFactory creates the Jira and Xray clients of a config.
type ClientFactory interface {
	JiraClient(cfg Config) jira.Client
	XrayClient(cfg Config) xray.Client
}

type clientFactory struct {
	logger log.Logger
}

// NewClientFactory ...
func NewClientFactory(logger log.Logger) ClientFactory {
	return clientFactory{logger: logger}
}

func (f clientFactory) JiraClient(cfg Config) jira.Client {
	return jira.NewClient(cfg.JiraURL, cfg.JiraUsername, string(cfg.JiraAPIToken), f.logger)
}

func (f clientFactory) XrayClient(cfg Config) xray.Client {
	if cfg.Options.IsCloud {
		return xray.NewCloudClient(xray.CloudURL, cfg.XrayClientID, string(cfg.XrayClientSecret), f.logger)
	}
	return xray.NewServerClient(cfg.JiraURL, cfg.JiraUsername, string(cfg.JiraAPIToken), f.logger)
}

// XrayUploader ...
type XrayUploader struct {
	logger         log.Logger
	clientFactory  ClientFactory
	outputExporter output.Exporter
}

// NewXrayUploader ...
func NewXrayUploader(logger log.Logger, clientFactory ClientFactory, outputExporter output.Exporter) XrayUploader {
	return XrayUploader{
		logger:         logger,
		clientFactory:  clientFactory,
		outputExporter: outputExporter,
	}
}

// Result ...
type Result struct {
	TestExecutionIssueKey      string
	TestExecutionIssueURL      string
	NonAttributableScreenshots []string
}

// Run ...
func (s XrayUploader) Run(ctx context.Context, cfg Config) (Result, error) {
	if err := cfg.JiraFields.Validate(cfg.Options.IsCloud, cfg.Options.TestPlanKey, cfg.Options.TestEnvironments); err != nil {
		return Result{}, err
	}

	results, err := cypress.ReadResults(cfg.ResultsPath)
	if err != nil {
		return Result{}, err
	}

	s.logger.Infof("Cypress results")
	s.logger.Printf("- cypressVersion: %s", results.CypressVersion)
	s.logger.Printf("- browser: %s (%s)", results.BrowserName, results.BrowserVersion)
	s.logger.Println()

	collection := evidence.NewCollection()
	if cfg.EvidenceManifestPath != "" {
		collection, err = evidence.LoadManifest(cfg.EvidenceManifestPath)
		if err != nil {
			return Result{}, err
		}
	}

	jiraClient := s.clientFactory.JiraClient(cfg)
	xrayClient := s.clientFactory.XrayClient(cfg)
	logger := logging.NewLogger(s.logger)

	phases := upload.NewPhases(
		xrayClient,
		snapshot.NewManager(jiraClient, logger),
		multipart.NewBuilder(cfg.Options.IsCloud, jiraClient, cfg.JiraFields, logger),
		conversion.NewConverter(logger, collection, collection, evidence.NewEncoder()),
		cucumber.NewConverter(logger),
		s.outputExporter,
		logger,
	)
	orchestrator := upload.NewOrchestrator(phases, jiraClient, logger)

	uploadResult, err := orchestrator.Run(ctx, upload.RuntimeParameters{Results: results, Options: cfg.Options})
	if err != nil {
		return Result{}, err
	}

	result := Result{TestExecutionIssueKey: uploadResult.TestExecutionIssueKey}
	if result.TestExecutionIssueKey != "" {
		result.TestExecutionIssueURL = jiraClient.BrowseURL(result.TestExecutionIssueKey)
	}

	if cfg.Options.UploadResults && cfg.Options.UploadScreenshots {
		runConverter := results.NewRunConverter(cfg.Options.ProjectKey, cfg.Options.Cucumber.FeatureFileExtension)
		result.NonAttributableScreenshots = runConverter.NonAttributableScreenshots(cypress.ConversionOptions{OnlyLastAttempt: cfg.Options.OnlyLastAttempt})
	}

	return result, nil
}

// Export ...
func (s XrayUploader) Export(result Result) error {
	if result.TestExecutionIssueKey != "" {
		s.outputExporter.ExportTestExecutionIssue(result.TestExecutionIssueKey, result.TestExecutionIssueURL)
	}

	if err := s.outputExporter.ExportNonAttributableScreenshots(result.NonAttributableScreenshots); err != nil {
		return err
	}

	printUploadSummary(s.logger, result)

	return nil
}

func splitList(inputKey, value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	items, err := shellquote.Split(value)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s (%s): %w", inputKey, value, err)
	}
	return items, nil
}

func valueOrDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}
