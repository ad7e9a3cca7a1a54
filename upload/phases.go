package upload

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bitrise-steplib/steps-xray-results-upload/conversion"
	"github.com/bitrise-steplib/steps-xray-results-upload/cucumber"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	"github.com/bitrise-steplib/steps-xray-results-upload/multipart"
	"github.com/bitrise-steplib/steps-xray-results-upload/snapshot"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
)

type phases struct {
	xray              xray.Client
	snapshots         snapshot.Manager
	multipart         multipart.Builder
	converter         conversion.Converter
	cucumberConverter cucumber.Converter
	sink              EventSink
	logger            logging.Logger
}

// NewPhases ...
func NewPhases(
	xrayClient xray.Client,
	snapshots snapshot.Manager,
	multipartBuilder multipart.Builder,
	converter conversion.Converter,
	cucumberConverter cucumber.Converter,
	sink EventSink,
	logger logging.Logger,
) Phases {
	if sink == nil {
		sink = nopSink{}
	}

	return &phases{
		xray:              xrayClient,
		snapshots:         snapshots,
		multipart:         multipartBuilder,
		converter:         converter,
		cucumberConverter: cucumberConverter,
		sink:              sink,
		logger:            logger,
	}
}

// UploadFeatureFiles imports the feature files and restores the summaries and labels the import overwrote.
func (p phases) UploadFeatureFiles(ctx context.Context, params RuntimeParameters) error {
	opts := params.Options
	if !opts.UploadFeatures {
		return nil
	}

	files := params.featureFiles()
	if len(files) == 0 {
		p.logger.Message(logging.LevelDebug, "No feature files to upload")
		return nil
	}

	cucumberOpts := p.cucumberOptions(opts)

	var referencedKeys []string
	for _, file := range files {
		issues, err := cucumber.ParseFeatureFile(file, cucumberOpts)
		if err != nil {
			p.logger.Message(logging.LevelWarning, fmt.Sprintf("%s, its issues will not be backed up", err))
			continue
		}
		referencedKeys = append(referencedKeys, issues.Keys()...)
	}
	referencedKeys = unique(referencedKeys)

	backup := p.takeSnapshots(ctx, referencedKeys)

	var importErrs []error
	var updatedKeys []string
	for _, file := range files {
		p.logger.Message(logging.LevelInfo, fmt.Sprintf("Importing feature file: %s", file))

		resp, err := p.xray.ImportFeature(ctx, opts.ProjectKey, file)
		if err != nil {
			importErrs = append(importErrs, err)
			continue
		}
		if len(resp.Errors) > 0 {
			p.logger.Message(logging.LevelWarning, fmt.Sprintf("Encountered errors during feature file import of %s:\n\n  %s", file, strings.Join(resp.Errors, "\n  ")))
		}
		updatedKeys = append(updatedKeys, resp.UpdatedOrCreatedIssues...)
	}

	// Only previously existing issues can have been overwritten.
	referenced := map[string]bool{}
	for _, key := range referencedKeys {
		referenced[key] = true
	}
	var overwrittenKeys []string
	for _, key := range unique(updatedKeys) {
		if referenced[key] {
			overwrittenKeys = append(overwrittenKeys, key)
		}
	}

	if len(overwrittenKeys) > 0 {
		current := p.takeSnapshots(ctx, overwrittenKeys)
		p.snapshots.RestoreIssueSnapshots(ctx, current, backup)
	}

	return errors.Join(importErrs...)
}

func (p phases) takeSnapshots(ctx context.Context, keys []string) []snapshot.Snapshot {
	if len(keys) == 0 {
		return nil
	}

	issues := make([]snapshot.Issue, 0, len(keys))
	for _, key := range keys {
		issues = append(issues, snapshot.Issue{Key: key})
	}

	snapshots, errorMessages, err := p.snapshots.GetIssueSnapshots(ctx, issues)
	if err != nil {
		p.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to back up issue summaries and labels\n\n  Caused by: %s", err))
		return nil
	}
	for _, msg := range errorMessages {
		p.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to back up issue summary and labels: %s", msg))
	}
	return snapshots
}

// BuildMultipartInfo creates the test execution issue data shared by the Cypress and Cucumber imports.
func (p phases) BuildMultipartInfo(ctx context.Context, params RuntimeParameters) (xray.MultipartInfo, error) {
	opts := params.Options

	summary := opts.TestExecution.Summary
	if summary == "" && opts.TestExecution.IssueKey != "" {
		summary = p.existingSummary(ctx, opts.TestExecution.IssueKey)
	}
	if summary == "" {
		summary = fmt.Sprintf("Execution Results [%s]", params.Results.StartedTestsAt)
	}

	return p.multipart.Build(ctx, multipart.IssueData{
		ProjectKey:       opts.ProjectKey,
		Summary:          summary,
		Description:      opts.TestExecution.Description,
		IssueType:        opts.TestExecution.IssueType,
		Labels:           opts.TestExecution.Labels,
		TestPlanKey:      opts.TestPlanKey,
		TestEnvironments: opts.TestEnvironments,
		TransitionID:     opts.TestExecution.TransitionID,
		CypressVersion:   params.Results.CypressVersion,
		BrowserName:      params.Results.BrowserName,
		BrowserVersion:   params.Results.BrowserVersion,
	})
}

// existingSummary keeps the summary of an existing test execution issue, the import would overwrite it otherwise.
func (p phases) existingSummary(ctx context.Context, issueKey string) string {
	snapshots := p.takeSnapshots(ctx, []string{issueKey})
	for _, s := range snapshots {
		if s.Key == issueKey {
			return s.Summary
		}
	}
	return ""
}

// UploadCypressResults converts and imports the Cypress results.
func (p phases) UploadCypressResults(ctx context.Context, params RuntimeParameters, info xray.MultipartInfo) (string, error) {
	opts := params.Options

	tests, err := p.converter.ConvertCypressResults(params.Results, conversion.Options{
		ProjectKey:               opts.ProjectKey,
		IsCloud:                  opts.IsCloud,
		FeatureFileExtension:     opts.Cucumber.FeatureFileExtension,
		OnlyLastAttempt:          opts.OnlyLastAttempt,
		UploadScreenshots:        opts.UploadScreenshots,
		NormalizeScreenshotNames: opts.NormalizeScreenshotNames,
		StatusOverrides:          opts.StatusOverrides,
		Aggregate:                opts.Aggregate,
	})
	if err != nil {
		return "", err
	}

	payload := xray.ImportExecution{
		TestExecutionKey: opts.TestExecution.IssueKey,
		Tests:            tests,
	}

	p.logger.Message(logging.LevelInfo, fmt.Sprintf("Uploading %d Cypress test results", len(tests)))
	key, err := p.xray.ImportExecutionMultipart(ctx, payload, info)
	if err != nil {
		return "", err
	}

	p.sink.Emit(Event{Type: EventCypressUpload, Payload: payload, IssueKey: key})
	return key, nil
}

// UploadCucumberResults converts and imports the Cucumber report.
func (p phases) UploadCucumberResults(ctx context.Context, params RuntimeParameters, info xray.MultipartInfo) (string, error) {
	opts := params.Options

	features, err := cucumber.ReadReport(opts.Cucumber.ReportPath)
	if err != nil {
		return "", err
	}

	converted, err := p.cucumberConverter.ConvertReport(features, p.cucumberOptions(opts))
	if err != nil {
		return "", err
	}

	p.logger.Message(logging.LevelInfo, fmt.Sprintf("Uploading Cucumber test results of %d features", len(converted)))
	key, err := p.xray.ImportExecutionCucumberMultipart(ctx, converted, info)
	if err != nil {
		return "", err
	}

	p.sink.Emit(Event{Type: EventCucumberUpload, Payload: converted, IssueKey: key})
	return key, nil
}

func (p phases) cucumberOptions(opts Options) cucumber.Options {
	return cucumber.Options{
		ProjectKey:            opts.ProjectKey,
		TestPrefix:            opts.Cucumber.TestPrefix,
		PreconditionPrefix:    opts.Cucumber.PreconditionPrefix,
		UploadScreenshots:     opts.UploadScreenshots,
		TestExecutionIssueKey: opts.TestExecution.IssueKey,
	}
}

func unique(keys []string) []string {
	seen := map[string]bool{}
	var result []string
	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, key)
	}
	return result
}
