package evidence

import (
	"github.com/bitrise-steplib/steps-xray-results-upload/xray"
)

// EvidenceProvider returns evidence collected for an issue during the test run.
type EvidenceProvider interface {
	Evidence(issueKey string) []xray.Evidence
}

// IterationParameterProvider returns the parameters a test ran with.
type IterationParameterProvider interface {
	IterationParameters(issueKey, testTitle string) []xray.Parameter
}

type iterationKey struct {
	issueKey  string
	testTitle string
}

// Collection is an in-memory store of evidence and iteration parameters.
type Collection struct {
	evidence   map[string][]xray.Evidence
	parameters map[iterationKey][]xray.Parameter
}

// NewCollection ...
func NewCollection() *Collection {
	return &Collection{
		evidence:   map[string][]xray.Evidence{},
		parameters: map[iterationKey][]xray.Parameter{},
	}
}

// AddEvidence ...
func (c *Collection) AddEvidence(issueKey string, e xray.Evidence) {
	c.evidence[issueKey] = append(c.evidence[issueKey], e)
}

// Evidence ...
func (c *Collection) Evidence(issueKey string) []xray.Evidence {
	return c.evidence[issueKey]
}

// AddIterationParameters appends parameters of a test. Later values of a name replace earlier ones.
func (c *Collection) AddIterationParameters(issueKey, testTitle string, parameters ...xray.Parameter) {
	key := iterationKey{issueKey: issueKey, testTitle: testTitle}
	for _, parameter := range parameters {
		replaced := false
		for i, existing := range c.parameters[key] {
			if existing.Name == parameter.Name {
				c.parameters[key][i] = parameter
				replaced = true
				break
			}
		}
		if !replaced {
			c.parameters[key] = append(c.parameters[key], parameter)
		}
	}
}

// IterationParameters ...
func (c *Collection) IterationParameters(issueKey, testTitle string) []xray.Parameter {
	return c.parameters[iterationKey{issueKey: issueKey, testTitle: testTitle}]
}
