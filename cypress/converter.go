package cypress

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bitrise-steplib/steps-xray-results-upload/issuekey"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
)

// SuccessfulConversion is one test attempt converted into a runner independent result.
// IssueKey is empty when the title does not reference an issue.
type SuccessfulConversion struct {
	IssueKey  string
	Title     string
	Status    status.Status
	StartedAt time.Time
	Duration  time.Duration
	Spec      SpecFile
}

// ErrNoAttempts is the cause of a failed conversion of a test without attempts.
var ErrNoAttempts = errors.New("the test has no attempts")

// FailedConversion is a test which could not be converted.
type FailedConversion struct {
	Err   error
	Spec  SpecFile
	Title string
}

// SpecFile ...
type SpecFile struct {
	Filepath string
}

// ConversionOptions ...
type ConversionOptions struct {
	// OnlyLastAttempt drops every attempt but the last one, together with its screenshots.
	OnlyLastAttempt bool
}

// RunConverter converts the runs of one results schema.
type RunConverter interface {
	Conversions(opts ConversionOptions) ([]SuccessfulConversion, []FailedConversion)
	Screenshots(issueKey string, opts ConversionOptions) []string
	NonAttributableScreenshots(opts ConversionOptions) []string
}

func testTitle(title []string) string {
	return strings.Join(title, " ")
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp (%s): %w", value, err)
	}
	return t, nil
}

// conversionsOf fans a converted attempt out to every issue key of the title.
func conversionsOf(projectKey string, conversion SuccessfulConversion) []SuccessfulConversion {
	keys, err := issuekey.Extract(conversion.Title, projectKey)
	if err != nil {
		return []SuccessfulConversion{conversion}
	}

	conversions := make([]SuccessfulConversion, 0, len(keys))
	for _, key := range keys {
		c := conversion
		c.IssueKey = key
		conversions = append(conversions, c)
	}
	return conversions
}
