package jira

import "encoding/json"

// Issue is a search result. Fields are kept raw so that each one can be decoded on its own.
type Issue struct {
	ID     string                     `json:"id"`
	Key    string                     `json:"key"`
	Fields map[string]json.RawMessage `json:"fields"`
}

// SearchRequest is the body of POST /rest/api/2/search.
type SearchRequest struct {
	JQL        string   `json:"jql"`
	Fields     []string `json:"fields,omitempty"`
	StartAt    int      `json:"startAt"`
	MaxResults int      `json:"maxResults,omitempty"`
}

// SearchResponse ...
type SearchResponse struct {
	StartAt    int     `json:"startAt"`
	MaxResults int     `json:"maxResults"`
	Total      int     `json:"total"`
	Issues     []Issue `json:"issues"`
}

// Field describes a system or custom issue field.
type Field struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Custom      bool         `json:"custom"`
	ClauseNames []string     `json:"clauseNames,omitempty"`
	Schema      *FieldSchema `json:"schema,omitempty"`
}

// FieldSchema ...
type FieldSchema struct {
	Type   string `json:"type"`
	Custom string `json:"custom,omitempty"`
}

// Transition ...
type Transition struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// Attachment ...
type Attachment struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
	Self     string `json:"self"`
	Size     int64  `json:"size"`
}
