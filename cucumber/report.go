package cucumber

import (
	"encoding/json"
	"fmt"
	"os"
)

// Feature is one entry of a Cucumber JSON report.
type Feature struct {
	URI         string    `json:"uri"`
	ID          string    `json:"id"`
	Keyword     string    `json:"keyword"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Line        int       `json:"line"`
	Tags        []Tag     `json:"tags,omitempty"`
	Elements    []Element `json:"elements"`
}

// Tag ...
type Tag struct {
	Name string `json:"name"`
	Line int    `json:"line,omitempty"`
}

// Element is a scenario or a background.
type Element struct {
	ID          string `json:"id,omitempty"`
	Keyword     string `json:"keyword"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Line        int    `json:"line"`
	Type        string `json:"type"`
	Tags        []Tag  `json:"tags,omitempty"`
	Before      []Step `json:"before,omitempty"`
	Steps       []Step `json:"steps"`
	After       []Step `json:"after,omitempty"`
}

const elementTypeBackground = "background"

// Step ...
type Step struct {
	Keyword    string          `json:"keyword,omitempty"`
	Name       string          `json:"name,omitempty"`
	Line       int             `json:"line,omitempty"`
	Hidden     bool            `json:"hidden,omitempty"`
	Match      json.RawMessage `json:"match,omitempty"`
	Arguments  json.RawMessage `json:"arguments,omitempty"`
	DocString  json.RawMessage `json:"doc_string,omitempty"`
	Rows       json.RawMessage `json:"rows,omitempty"`
	Result     Result          `json:"result"`
	Embeddings []Embedding     `json:"embeddings,omitempty"`
	Output     []string        `json:"output,omitempty"`
}

// Result ...
type Result struct {
	Status       string `json:"status"`
	Duration     int64  `json:"duration,omitempty"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// Embedding is a base64 encoded attachment of a step, screenshots included.
type Embedding struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
	Name     string `json:"name,omitempty"`
}

// ReadReport reads the Cucumber JSON report generated by the preprocessor.
func ReadReport(pth string) ([]Feature, error) {
	data, err := os.ReadFile(pth)
	if err != nil {
		return nil, fmt.Errorf("failed to read Cucumber report %s: %w", pth, err)
	}

	var features []Feature
	if err := json.Unmarshal(data, &features); err != nil {
		return nil, fmt.Errorf("failed to parse Cucumber report %s: %w", pth, err)
	}
	return features, nil
}
