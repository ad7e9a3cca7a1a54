package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bitrise-io/bitrise/configs"
	"github.com/bitrise-io/go-utils/v2/env"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-xray-results-upload/cucumber"
	"github.com/bitrise-steplib/steps-xray-results-upload/testaddon"
	"github.com/bitrise-steplib/steps-xray-results-upload/upload"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"github.com/jstemmer/go-junit-report/v2/junit"
)

const (
	testExecutionIssueKeyEnvKey      = "XRAY_TEST_EXECUTION_ISSUE_KEY"
	testExecutionIssueURLEnvKey      = "XRAY_TEST_EXECUTION_ISSUE_URL"
	cypressResultsPathEnvKey         = "XRAY_CYPRESS_RESULTS_PATH"
	cucumberResultsPathEnvKey        = "XRAY_CUCUMBER_RESULTS_PATH"
	nonAttributableScreenshotsEnvKey = "XRAY_NON_ATTRIBUTABLE_SCREENSHOTS_ZIP_PATH"

	cypressBundleName  = "Xray Cypress results"
	cucumberBundleName = "Xray Cucumber results"
)

// OutputExporter is implemented by *export.Exporter of go-steputils.
type OutputExporter interface {
	ExportOutputFilesZip(key string, sourcePaths []string, zipPath string) error
}

// Exporter exports the step outputs. It also records the uploaded payloads as an upload.EventSink.
type Exporter interface {
	upload.EventSink
	ExportTestExecutionIssue(key, url string)
	ExportNonAttributableScreenshots(screenshots []string) error
}

type exporter struct {
	deployDir         string
	statusTokens      testaddon.StatusTokens
	envRepository     env.Repository
	logger            log.Logger
	outputExporter    OutputExporter
	testAddonExporter testaddon.Exporter
}

// NewExporter ...
func NewExporter(deployDir string, statusTokens testaddon.StatusTokens, envRepository env.Repository, logger log.Logger, outputExporter OutputExporter, testAddonExporter testaddon.Exporter) Exporter {
	return &exporter{
		deployDir:         deployDir,
		statusTokens:      statusTokens,
		envRepository:     envRepository,
		logger:            logger,
		outputExporter:    outputExporter,
		testAddonExporter: testAddonExporter,
	}
}

func (e exporter) ExportTestExecutionIssue(key, url string) {
	if err := e.envRepository.Set(testExecutionIssueKeyEnvKey, key); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", testExecutionIssueKeyEnvKey, err)
	}
	if err := e.envRepository.Set(testExecutionIssueURLEnvKey, url); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", testExecutionIssueURLEnvKey, err)
	}
}

func (e exporter) ExportNonAttributableScreenshots(screenshots []string) error {
	if len(screenshots) == 0 {
		return nil
	}

	zipPath := filepath.Join(e.deployDir, "xray-non-attributable-screenshots.zip")
	if err := e.outputExporter.ExportOutputFilesZip(nonAttributableScreenshotsEnvKey, screenshots, zipPath); err != nil {
		return fmt.Errorf("failed to export %s: %w", nonAttributableScreenshotsEnvKey, err)
	}
	return nil
}

// Emit saves the uploaded payload to the deploy dir and exports a JUnit report of it for the test report add-on.
func (e exporter) Emit(event upload.Event) {
	switch event.Type {
	case upload.EventCypressUpload:
		payload, ok := event.Payload.(xray.ImportExecution)
		if !ok {
			e.logger.Warnf("Unexpected payload of %s event: %T", event.Type, event.Payload)
			return
		}
		e.exportPayload(cypressResultsPathEnvKey, "xray-cypress-results.json", payload)
		e.exportTestReport(cypressBundleName, testaddon.CypressSuites(cypressBundleName, payload.Tests, e.statusTokens))
	case upload.EventCucumberUpload:
		features, ok := event.Payload.([]cucumber.Feature)
		if !ok {
			e.logger.Warnf("Unexpected payload of %s event: %T", event.Type, event.Payload)
			return
		}
		e.exportPayload(cucumberResultsPathEnvKey, "xray-cucumber-results.json", features)
		e.exportTestReport(cucumberBundleName, testaddon.CucumberSuites(features))
	default:
		e.logger.Debugf("Ignoring event: %s", event.Type)
	}
}

func (e exporter) exportPayload(envKey, fileName string, payload interface{}) {
	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		e.logger.Warnf("Failed to encode uploaded results: %s", err)
		return
	}

	pth := filepath.Join(e.deployDir, fileName)
	if err := os.WriteFile(pth, content, 0600); err != nil {
		e.logger.Warnf("Failed to save uploaded results to %s: %s", pth, err)
		return
	}

	if err := e.envRepository.Set(envKey, pth); err != nil {
		e.logger.Warnf("Failed to export: %s: %s", envKey, err)
	}
}

func (e exporter) exportTestReport(bundleName string, suites junit.Testsuites) {
	addonResultPath := e.envRepository.Get(configs.BitrisePerStepTestResultDirEnvKey)
	if addonResultPath == "" {
		return
	}

	e.logger.Println()
	e.logger.Infof("Exporting test results")

	if err := e.testAddonExporter.ExportReport(testaddon.Report{
		Suites:          suites,
		TargetAddonPath: addonResultPath,
		BundleName:      bundleName,
	}); err != nil {
		e.logger.Warnf("Failed to export test results: %s", err)
	}
}
