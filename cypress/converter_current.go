package cypress

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bitrise-steplib/steps-xray-results-upload/issuekey"
	"github.com/bitrise-steplib/steps-xray-results-upload/status"
)

// Cypress 13 reports screenshots per run, so they are attributed to tests by the issue keys
// contained in their file names. A key which is a prefix of another key (CYP-1, CYP-12) matches both.

var attemptSuffixPattern = regexp.MustCompile(`\(attempt (\d+)\)`)

type currentConverter struct {
	projectKey string
	runs       []currentRun
}

func newCurrentConverter(projectKey string, runs []currentRun) RunConverter {
	return &currentConverter{
		projectKey: projectKey,
		runs:       runs,
	}
}

func (c currentConverter) Conversions(opts ConversionOptions) ([]SuccessfulConversion, []FailedConversion) {
	var successful []SuccessfulConversion
	var failed []FailedConversion

	for _, run := range c.runs {
		spec := SpecFile{Filepath: run.Spec.Absolute}

		runStartedAt, runErr := parseTimestamp(run.Stats.StartedAt)
		var elapsed time.Duration

		for _, test := range run.Tests {
			title := testTitle(test.Title)
			duration := time.Duration(test.Duration) * time.Millisecond
			startedAt := runStartedAt.Add(elapsed)
			elapsed += duration

			if runErr != nil {
				failed = append(failed, FailedConversion{Err: runErr, Spec: spec, Title: title})
				continue
			}

			attempts := test.Attempts
			if len(attempts) == 0 {
				failed = append(failed, FailedConversion{Err: ErrNoAttempts, Spec: spec, Title: title})
				continue
			}
			if opts.OnlyLastAttempt {
				attempts = attempts[len(attempts)-1:]
			}

			for _, attempt := range attempts {
				s, err := status.Parse(attempt.State)
				if err != nil {
					failed = append(failed, FailedConversion{Err: err, Spec: spec, Title: title})
					continue
				}

				successful = append(successful, conversionsOf(c.projectKey, SuccessfulConversion{
					Title:     title,
					Status:    s,
					StartedAt: startedAt,
					Duration:  duration,
					Spec:      spec,
				})...)
			}
		}
	}

	return successful, failed
}

func (c currentConverter) Screenshots(issueKey string, opts ConversionOptions) []string {
	var screenshots []string
	for _, run := range c.runs {
		for _, screenshot := range run.Screenshots {
			name := filepath.Base(screenshot.Path)
			if len(issuekey.ContainsAny(name, []string{issueKey})) == 0 {
				continue
			}
			if opts.OnlyLastAttempt && !isLastAttemptScreenshot(run, name) {
				continue
			}
			screenshots = append(screenshots, screenshot.Path)
		}
	}
	return screenshots
}

func (c currentConverter) NonAttributableScreenshots(opts ConversionOptions) []string {
	keys := c.issueKeys()

	var screenshots []string
	for _, run := range c.runs {
		for _, screenshot := range run.Screenshots {
			if len(issuekey.ContainsAny(filepath.Base(screenshot.Path), keys)) == 0 {
				screenshots = append(screenshots, screenshot.Path)
			}
		}
	}
	return screenshots
}

// issueKeys returns the keys referenced by any test of the converted runs, in order of appearance.
func (c currentConverter) issueKeys() []string {
	seen := map[string]bool{}
	var keys []string
	for _, run := range c.runs {
		for _, test := range run.Tests {
			testKeys, err := issuekey.Extract(testTitle(test.Title), c.projectKey)
			if err != nil {
				continue
			}
			for _, key := range testKeys {
				if !seen[key] {
					seen[key] = true
					keys = append(keys, key)
				}
			}
		}
	}
	return keys
}

// isLastAttemptScreenshot reports whether the screenshot was taken during the last attempt of the
// test it belongs to. Cypress names screenshots after the test title, the test with the longest
// matching title owns it. Screenshots without an owner are kept.
func isLastAttemptScreenshot(run currentRun, screenshotName string) bool {
	owner, ok := screenshotOwner(run, screenshotName)
	if !ok {
		return true
	}
	return attemptOf(screenshotName) >= len(owner.Attempts)
}

func screenshotOwner(run currentRun, screenshotName string) (currentTest, bool) {
	var owner currentTest
	longest := 0
	for _, test := range run.Tests {
		for _, title := range []string{strings.Join(test.Title, " -- "), testTitle(test.Title)} {
			if title != "" && strings.HasPrefix(screenshotName, title) && len(title) > longest {
				owner = test
				longest = len(title)
			}
		}
	}
	return owner, longest > 0
}

func attemptOf(screenshotName string) int {
	match := attemptSuffixPattern.FindStringSubmatch(screenshotName)
	if match == nil {
		return 1
	}
	attempt, err := strconv.Atoi(match[1])
	if err != nil {
		return 1
	}
	return attempt
}
