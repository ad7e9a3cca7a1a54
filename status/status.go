package status

import (
	"fmt"
)

// Status is a runner independent test status.
type Status string

// Normalized statuses ...
const (
	Passed  Status = "passed"
	Failed  Status = "failed"
	Pending Status = "pending"
	Skipped Status = "skipped"
)

// Parse converts a raw runner state into a normalized status.
func Parse(state string) (Status, error) {
	switch Status(state) {
	case Passed, Failed, Pending, Skipped:
		return Status(state), nil
	default:
		return "", fmt.Errorf("unknown status: %s", state)
	}
}

// Overrides replaces the default status tokens. Empty fields keep the defaults.
type Overrides struct {
	Passed  string
	Failed  string
	Pending string
	Skipped string
}

var (
	serverVocabulary = map[Status]string{
		Passed:  "PASS",
		Failed:  "FAIL",
		Pending: "TODO",
		Skipped: "FAIL",
	}
	cloudVocabulary = map[Status]string{
		Passed:  "PASSED",
		Failed:  "FAILED",
		Pending: "TO DO",
		Skipped: "FAILED",
	}
)

// Map returns the Xray status token of a normalized status.
func Map(s Status, isCloud bool, overrides Overrides) string {
	if override := overrides.lookup(s); override != "" {
		return override
	}

	vocabulary := serverVocabulary
	if isCloud {
		vocabulary = cloudVocabulary
	}
	if token, ok := vocabulary[s]; ok {
		return token
	}
	return vocabulary[Failed]
}

func (o Overrides) lookup(s Status) string {
	switch s {
	case Passed:
		return o.Passed
	case Failed:
		return o.Failed
	case Pending:
		return o.Pending
	case Skipped:
		return o.Skipped
	}
	return ""
}
