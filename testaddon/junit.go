package testaddon

import (
	"fmt"
	"time"

	"github.com/bitrise-steplib/steps-xray-results-upload/cucumber"
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
	"github.com/jstemmer/go-junit-report/v2/junit"
)

// Outcome is how a test result shows up in the JUnit report.
type Outcome int

const (
	// OutcomePassed ...
	OutcomePassed Outcome = iota
	// OutcomeFailed ...
	OutcomeFailed
	// OutcomeSkipped ...
	OutcomeSkipped
)

// StatusTokens are the Xray status strings the results were uploaded with.
type StatusTokens struct {
	Passed  string
	Failed  string
	Pending string
	Skipped string
}

// Outcome classifies an uploaded status. Unknown statuses, e.g. ones returned by a custom aggregation, count as failures.
func (s StatusTokens) Outcome(xrayStatus string) Outcome {
	switch xrayStatus {
	case s.Passed:
		return OutcomePassed
	case s.Failed:
		return OutcomeFailed
	case s.Pending, s.Skipped:
		return OutcomeSkipped
	default:
		return OutcomeFailed
	}
}

const xrayTimestampLayout = "2006-01-02T15:04:05Z"

// CypressSuites creates a report with one test case per uploaded Xray test.
func CypressSuites(name string, tests []xray.Test, tokens StatusTokens) junit.Testsuites {
	suite := junit.Testsuite{Name: name}

	for _, test := range tests {
		testcase := junit.Testcase{
			Name:      test.TestKey,
			Classname: name,
			Time:      duration(test.Start, test.Finish),
		}

		switch tokens.Outcome(test.Status) {
		case OutcomeFailed:
			testcase.Failure = &junit.Result{Message: fmt.Sprintf("Xray status: %s", test.Status)}
			suite.Failures++
		case OutcomeSkipped:
			testcase.Skipped = &junit.Result{Message: fmt.Sprintf("Xray status: %s", test.Status)}
			suite.Skipped++
		}

		suite.Tests++
		suite.Testcases = append(suite.Testcases, testcase)
	}

	return junit.Testsuites{Suites: []junit.Testsuite{suite}}
}

func duration(start, finish string) string {
	startTime, err := time.Parse(xrayTimestampLayout, start)
	if err != nil {
		return ""
	}
	finishTime, err := time.Parse(xrayTimestampLayout, finish)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%.3f", finishTime.Sub(startTime).Seconds())
}

// CucumberSuites creates a report with one suite per feature and one test case per scenario.
func CucumberSuites(features []cucumber.Feature) junit.Testsuites {
	var suites junit.Testsuites

	for _, feature := range features {
		suite := junit.Testsuite{Name: feature.Name}

		for _, element := range feature.Elements {
			if element.Type == "background" {
				continue
			}

			testcase := junit.Testcase{Name: element.Name, Classname: feature.Name}
			var nanos int64
			for _, step := range append(append(append([]cucumber.Step{}, element.Before...), element.Steps...), element.After...) {
				nanos += step.Result.Duration
				switch step.Result.Status {
				case "failed":
					if testcase.Failure == nil {
						testcase.Failure = &junit.Result{Message: fmt.Sprintf("%s%s", step.Keyword, step.Name), Data: step.Result.ErrorMessage}
					}
				case "skipped", "pending", "undefined":
					if testcase.Skipped == nil {
						testcase.Skipped = &junit.Result{Message: fmt.Sprintf("%s%s: %s", step.Keyword, step.Name, step.Result.Status)}
					}
				}
			}
			testcase.Time = fmt.Sprintf("%.3f", time.Duration(nanos).Seconds())

			switch {
			case testcase.Failure != nil:
				testcase.Skipped = nil
				suite.Failures++
			case testcase.Skipped != nil:
				suite.Skipped++
			}

			suite.Tests++
			suite.Testcases = append(suite.Testcases, testcase)
		}

		suites.Suites = append(suites.Suites, suite)
	}

	return suites
}
