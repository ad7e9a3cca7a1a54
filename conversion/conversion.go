package conversion

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/bitrise-steplib/steps-xray-results-upload/cypress"
	"github.com/bitrise-steplib/steps-xray-results-upload/evidence"
	"github.com/bitrise-steplib/steps-xray-results-upload/issuekey"
	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
)

const timestampLayout = "2006-01-02T15:04:05Z"

// ErrNoTestsToUpload is returned when none of the tests could be converted.
var ErrNoTestsToUpload = errors.New("failed to convert Cypress tests into Xray tests: no Cypress tests to upload")

// Options ...
type Options struct {
	ProjectKey               string
	IsCloud                  bool
	FeatureFileExtension     string
	OnlyLastAttempt          bool
	UploadScreenshots        bool
	NormalizeScreenshotNames bool
	StatusOverrides          status.Overrides
	Aggregate                status.AggregateFunc
}

// Converter turns Cypress run results into Xray test results.
type Converter interface {
	ConvertCypressResults(results cypress.Results, opts Options) ([]xray.Test, error)
}

type converter struct {
	logger     logging.Logger
	evidence   evidence.EvidenceProvider
	parameters evidence.IterationParameterProvider
	encoder    evidence.Encoder
}

// NewConverter ...
func NewConverter(logger logging.Logger, evidenceProvider evidence.EvidenceProvider, parameterProvider evidence.IterationParameterProvider, encoder evidence.Encoder) Converter {
	return &converter{
		logger:     logger,
		evidence:   evidenceProvider,
		parameters: parameterProvider,
		encoder:    encoder,
	}
}

// group holds the conversions of one logical test, it is never empty.
type group struct {
	issueKey    string
	conversions []cypress.SuccessfulConversion
}

func (c converter) ConvertCypressResults(results cypress.Results, opts Options) ([]xray.Test, error) {
	runConverter := results.NewRunConverter(opts.ProjectKey, opts.FeatureFileExtension)
	conversionOpts := cypress.ConversionOptions{OnlyLastAttempt: opts.OnlyLastAttempt}

	successful, failed := runConverter.Conversions(conversionOpts)

	var attributable []cypress.SuccessfulConversion
	for _, conversion := range successful {
		if conversion.IssueKey == "" {
			failed = append(failed, cypress.FailedConversion{
				Err:   issuekey.NoIssueKeysError{Title: conversion.Title, ProjectKey: opts.ProjectKey},
				Spec:  conversion.Spec,
				Title: conversion.Title,
			})
			continue
		}
		attributable = append(attributable, conversion)
	}

	for _, f := range failed {
		c.logger.Message(logging.LevelWarning, fmt.Sprintf("File: %s\n\nSkipping result upload of test: %s\n\n  Caused by: %s", f.Spec.Filepath, f.Title, f.Err))
	}

	if len(attributable) == 0 {
		return nil, ErrNoTestsToUpload
	}

	if opts.UploadScreenshots {
		for _, screenshot := range runConverter.NonAttributableScreenshots(conversionOpts) {
			c.logger.Message(logging.LevelWarning, nonAttributableMessage(screenshot, opts.ProjectKey))
		}
	}

	var tests []xray.Test
	for _, g := range groupByIssueKey(attributable) {
		test := xray.Test{
			TestKey: g.issueKey,
			Start:   formatTimestamp(earliestStart(g.conversions)),
			Finish:  formatTimestamp(latestFinish(g.conversions)),
			Status:  c.testStatus(g, opts),
		}

		test.Evidence = c.testEvidence(g.issueKey, runConverter, conversionOpts, opts)

		if len(g.conversions) > 1 {
			test.Iterations = c.iterations(g, opts)
		}

		tests = append(tests, test)
	}

	return tests, nil
}

func (c converter) testEvidence(issueKey string, runConverter cypress.RunConverter, conversionOpts cypress.ConversionOptions, opts Options) []xray.Evidence {
	var items []xray.Evidence

	if opts.UploadScreenshots {
		screenshots := runConverter.Screenshots(issueKey, conversionOpts)
		if len(screenshots) > 0 {
			encoded, errs := c.encoder.EncodeScreenshots(screenshots, opts.NormalizeScreenshotNames)
			for _, err := range errs {
				c.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to attach screenshot to test %s: %s", issueKey, err))
			}
			items = append(items, encoded...)
		}
	}

	if c.evidence != nil {
		items = append(items, c.evidence.Evidence(issueKey)...)
	}

	if len(items) == 0 {
		return nil
	}
	return items
}

func (c converter) iterations(g group, opts Options) []xray.Iteration {
	iterations := make([]xray.Iteration, 0, len(g.conversions))
	for i, conversion := range g.conversions {
		parameters := []xray.Parameter{{Name: "iteration", Value: strconv.Itoa(i + 1)}}
		if c.parameters != nil {
			parameters = append(parameters, c.parameters.IterationParameters(g.issueKey, conversion.Title)...)
		}

		iterations = append(iterations, xray.Iteration{
			Parameters: parameters,
			Status:     status.Map(conversion.Status, opts.IsCloud, opts.StatusOverrides),
		})
	}
	return iterations
}

func (c converter) testStatus(g group, opts Options) string {
	if len(g.conversions) == 1 {
		return status.Map(g.conversions[0].Status, opts.IsCloud, opts.StatusOverrides)
	}

	statuses := make([]status.Status, 0, len(g.conversions))
	for _, conversion := range g.conversions {
		statuses = append(statuses, conversion.Status)
	}

	token, err := status.Aggregate(status.Count(statuses), opts.IsCloud, opts.StatusOverrides, opts.Aggregate)
	if err != nil {
		c.logger.Message(logging.LevelWarning, fmt.Sprintf("Failed to aggregate the status of test %s, using status %s instead\n\n  Caused by: %s", g.issueKey, token, err))
	}
	return token
}

func groupByIssueKey(conversions []cypress.SuccessfulConversion) []group {
	var groups []group
	indices := map[string]int{}
	for _, conversion := range conversions {
		i, ok := indices[conversion.IssueKey]
		if !ok {
			i = len(groups)
			indices[conversion.IssueKey] = i
			groups = append(groups, group{issueKey: conversion.IssueKey})
		}
		groups[i].conversions = append(groups[i].conversions, conversion)
	}
	return groups
}

func earliestStart(conversions []cypress.SuccessfulConversion) time.Time {
	earliest := conversions[0].StartedAt
	for _, conversion := range conversions[1:] {
		if conversion.StartedAt.Before(earliest) {
			earliest = conversion.StartedAt
		}
	}
	return earliest
}

func latestFinish(conversions []cypress.SuccessfulConversion) time.Time {
	latest := conversions[0].StartedAt.Add(conversions[0].Duration)
	for _, conversion := range conversions[1:] {
		if finish := conversion.StartedAt.Add(conversion.Duration); finish.After(latest) {
			latest = finish
		}
	}
	return latest
}

// formatTimestamp drops sub-second precision, the import format does not support it.
func formatTimestamp(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timestampLayout)
}

func nonAttributableMessage(screenshot, projectKey string) string {
	name := filepath.Base(screenshot)
	return fmt.Sprintf(`Screenshot cannot be attributed to a test and will not be uploaded: %s

  To upload screenshots, include test issue keys anywhere in their name:

    cy.screenshot("%s-123 %s")`, screenshot, projectKey, name[:len(name)-len(filepath.Ext(name))])
}
