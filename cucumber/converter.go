package cucumber

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/bitrise-steplib/steps-xray-results-upload/logging"
)

// ErrNoTestsToUpload is returned when no scenario of the report can be linked to a test issue.
var ErrNoTestsToUpload = errors.New("failed to convert Cucumber tests into Xray tests: no Cucumber tests to upload")

// Options ...
type Options struct {
	ProjectKey            string
	TestPrefix            string
	PreconditionPrefix    string
	UploadScreenshots     bool
	TestExecutionIssueKey string
}

// Converter prepares Cucumber reports for the Xray import.
type Converter interface {
	ConvertReport(features []Feature, opts Options) ([]Feature, error)
}

type converter struct {
	logger logging.Logger
}

// NewConverter ...
func NewConverter(logger logging.Logger) Converter {
	return &converter{logger: logger}
}

// ConvertReport keeps the scenarios tagged with a test issue key. Step attachments are removed unless screenshots are uploaded.
func (c converter) ConvertReport(features []Feature, opts Options) ([]Feature, error) {
	pattern := tagPattern(opts.TestPrefix, opts.ProjectKey)

	var converted []Feature
	scenarios := 0
	for _, feature := range features {
		var elements []Element
		featureScenarios := 0
		for _, element := range feature.Elements {
			if element.Type != elementTypeBackground {
				if len(tagKeys(element.Tags, pattern)) == 0 {
					c.logger.Message(logging.LevelWarning, noTestTagMessage(feature.URI, element.Name, opts))
					continue
				}
				featureScenarios++
			}

			if !opts.UploadScreenshots {
				element = withoutEmbeddings(element)
			}
			elements = append(elements, element)
		}

		if featureScenarios == 0 {
			continue
		}

		feature.Elements = elements
		if opts.TestExecutionIssueKey != "" {
			// Xray links the results to the first issue tag it finds.
			feature.Tags = append([]Tag{{Name: "@" + opts.TestExecutionIssueKey}}, feature.Tags...)
		}
		converted = append(converted, feature)
		scenarios += featureScenarios
	}

	if scenarios == 0 {
		return nil, ErrNoTestsToUpload
	}
	return converted, nil
}

func withoutEmbeddings(element Element) Element {
	strip := func(steps []Step) []Step {
		if steps == nil {
			return nil
		}
		stripped := make([]Step, len(steps))
		for i, step := range steps {
			step.Embeddings = nil
			stripped[i] = step
		}
		return stripped
	}

	element.Before = strip(element.Before)
	element.Steps = strip(element.Steps)
	element.After = strip(element.After)
	return element
}

func noTestTagMessage(uri, scenario string, opts Options) string {
	return fmt.Sprintf(`File: %s

Skipping result upload of scenario: %s

  No test issue keys found in tags.

  You can target existing test issues by adding a corresponding tag:

    @%s%s-123
    Scenario: %s`, uri, scenario, opts.TestPrefix, opts.ProjectKey, scenario)
}

// tagPattern matches tags such as @TestName:CYP-123 and captures the issue key.
func tagPattern(prefix, projectKey string) *regexp.Regexp {
	return regexp.MustCompile(`^@` + regexp.QuoteMeta(prefix) + `(` + regexp.QuoteMeta(projectKey) + `-\d+)$`)
}

func tagKeys(tags []Tag, pattern *regexp.Regexp) []string {
	var keys []string
	for _, tag := range tags {
		if match := pattern.FindStringSubmatch(tag.Name); match != nil {
			keys = append(keys, match[1])
		}
	}
	return keys
}
