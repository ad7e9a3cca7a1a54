package cypress

import (
	"time"

	"github.com/bitrise-steplib/steps-xray-results-upload/issuekey"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
)

type legacyConverter struct {
	projectKey string
	runs       []legacyRun
}

func newLegacyConverter(projectKey string, runs []legacyRun) RunConverter {
	return &legacyConverter{
		projectKey: projectKey,
		runs:       runs,
	}
}

func (c legacyConverter) Conversions(opts ConversionOptions) ([]SuccessfulConversion, []FailedConversion) {
	var successful []SuccessfulConversion
	var failed []FailedConversion

	for _, run := range c.runs {
		spec := SpecFile{Filepath: run.Spec.Absolute}

		for _, test := range run.Tests {
			title := testTitle(test.Title)

			if len(test.Attempts) == 0 {
				failed = append(failed, FailedConversion{Err: ErrNoAttempts, Spec: spec, Title: title})
				continue
			}

			for _, attempt := range attemptsOf(test, opts) {
				s, err := status.Parse(attempt.State)
				if err != nil {
					failed = append(failed, FailedConversion{Err: err, Spec: spec, Title: title})
					continue
				}

				startedAt, err := parseTimestamp(attempt.WallClockStartedAt)
				if err != nil {
					failed = append(failed, FailedConversion{Err: err, Spec: spec, Title: title})
					continue
				}

				successful = append(successful, conversionsOf(c.projectKey, SuccessfulConversion{
					Title:     title,
					Status:    s,
					StartedAt: startedAt,
					Duration:  time.Duration(attempt.WallClockDuration) * time.Millisecond,
					Spec:      spec,
				})...)
			}
		}
	}

	return successful, failed
}

func (c legacyConverter) Screenshots(issueKey string, opts ConversionOptions) []string {
	var screenshots []string
	for _, run := range c.runs {
		for _, test := range run.Tests {
			keys, err := issuekey.Extract(testTitle(test.Title), c.projectKey)
			if err != nil {
				continue
			}

			for _, key := range keys {
				if key != issueKey {
					continue
				}
				for _, attempt := range attemptsOf(test, opts) {
					for _, screenshot := range attempt.Screenshots {
						screenshots = append(screenshots, screenshot.Path)
					}
				}
			}
		}
	}
	return screenshots
}

func (c legacyConverter) NonAttributableScreenshots(opts ConversionOptions) []string {
	var screenshots []string
	for _, run := range c.runs {
		for _, test := range run.Tests {
			if _, err := issuekey.Extract(testTitle(test.Title), c.projectKey); err == nil {
				continue
			}
			for _, attempt := range attemptsOf(test, opts) {
				for _, screenshot := range attempt.Screenshots {
					screenshots = append(screenshots, screenshot.Path)
				}
			}
		}
	}
	return screenshots
}

func attemptsOf(test legacyTest, opts ConversionOptions) []legacyAttempt {
	if opts.OnlyLastAttempt && len(test.Attempts) > 0 {
		return test.Attempts[len(test.Attempts)-1:]
	}
	return test.Attempts
}
