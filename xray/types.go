package xray

// ImportExecution is the payload of the Xray JSON bulk import.
type ImportExecution struct {
	TestExecutionKey string `json:"testExecutionKey,omitempty"`
	Tests            []Test `json:"tests"`
}

// Test is the result of one logical test.
type Test struct {
	TestKey    string      `json:"testKey"`
	Start      string      `json:"start"`
	Finish     string      `json:"finish"`
	Status     string      `json:"status"`
	Evidence   []Evidence  `json:"evidence,omitempty"`
	Iterations []Iteration `json:"iterations,omitempty"`
}

// Evidence is a base64 encoded file attached to a test result.
type Evidence struct {
	ContentType string `json:"contentType" yaml:"contentType"`
	Data        string `json:"data" yaml:"data"`
	Filename    string `json:"filename" yaml:"filename"`
}

// Iteration is one execution of a parameterized test.
type Iteration struct {
	Parameters []Parameter `json:"parameters"`
	Status     string      `json:"status"`
}

// Parameter ...
type Parameter struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// MultipartInfo describes the test execution issue of a multipart import.
type MultipartInfo struct {
	Fields          map[string]interface{} `json:"fields"`
	HistoryMetadata map[string]interface{} `json:"historyMetadata,omitempty"`
	Properties      []interface{}          `json:"properties,omitempty"`
	Transition      *Transition            `json:"transition,omitempty"`
	Update          map[string]interface{} `json:"update,omitempty"`
	XrayFields      *XrayFields            `json:"xrayFields,omitempty"`
}

// Transition ...
type Transition struct {
	ID string `json:"id"`
}

// XrayFields links a cloud test execution to environments and a test plan.
type XrayFields struct {
	Environments []string `json:"environments,omitempty"`
	TestPlanKey  string   `json:"testPlanKey,omitempty"`
}

// ImportFeatureResponse lists the issues touched by a feature file import.
type ImportFeatureResponse struct {
	UpdatedOrCreatedIssues []string
	Errors                 []string
}
