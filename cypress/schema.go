package cypress

// Spec identifies the spec file of a run.
type Spec struct {
	Name          string `json:"name"`
	Relative      string `json:"relative"`
	Absolute      string `json:"absolute"`
	FileExtension string `json:"fileExtension"`
}

// Screenshot ...
type Screenshot struct {
	Name    string `json:"name"`
	TakenAt string `json:"takenAt"`
	Path    string `json:"path"`
	Height  int    `json:"height"`
	Width   int    `json:"width"`
}

// RunStats ...
type RunStats struct {
	Suites    int    `json:"suites"`
	Tests     int    `json:"tests"`
	Passes    int    `json:"passes"`
	Pending   int    `json:"pending"`
	Skipped   int    `json:"skipped"`
	Failures  int    `json:"failures"`
	StartedAt string `json:"startedAt"`
	EndedAt   string `json:"endedAt"`
	Duration  int64  `json:"duration"`
}

type header struct {
	CypressVersion string `json:"cypressVersion"`
	BrowserName    string `json:"browserName"`
	BrowserVersion string `json:"browserVersion"`
	StartedTestsAt string `json:"startedTestsAt"`
	EndedTestsAt   string `json:"endedTestsAt"`
}

// Schema of Cypress versions below 13: timing and screenshots live on the attempts.

type legacyResult struct {
	header
	Runs []legacyRun `json:"runs"`
}

type legacyRun struct {
	Stats RunStats     `json:"stats"`
	Tests []legacyTest `json:"tests"`
	Spec  Spec         `json:"spec"`
	Video *string      `json:"video"`
}

type legacyTest struct {
	Title        []string        `json:"title"`
	State        string          `json:"state"`
	DisplayError *string         `json:"displayError"`
	Attempts     []legacyAttempt `json:"attempts"`
}

type legacyAttempt struct {
	State              string       `json:"state"`
	WallClockStartedAt string       `json:"wallClockStartedAt"`
	WallClockDuration  int64        `json:"wallClockDuration"`
	Screenshots        []Screenshot `json:"screenshots"`
}

// Schema of Cypress 13 and above: timing lives on the test, screenshots on the run.

type currentResult struct {
	header
	Runs []currentRun `json:"runs"`
}

type currentRun struct {
	Stats       RunStats      `json:"stats"`
	Tests       []currentTest `json:"tests"`
	Screenshots []Screenshot  `json:"screenshots"`
	Spec        Spec          `json:"spec"`
	Video       *string       `json:"video"`
}

type currentTest struct {
	Title        []string         `json:"title"`
	State        string           `json:"state"`
	Duration     int64            `json:"duration"`
	DisplayError *string          `json:"displayError"`
	Attempts     []currentAttempt `json:"attempts"`
}

type currentAttempt struct {
	State string `json:"state"`
}
