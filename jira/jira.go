package jira

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-xray-results-upload/rest"
)

const searchPageSize = 100

// Client is the subset of the Jira REST API the upload relies on.
type Client interface {
	Search(ctx context.Context, jql string, fields []string) ([]Issue, error)
	EditIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error
	GetFields(ctx context.Context) ([]Field, error)
	TransitionIssue(ctx context.Context, issueKey string, transition Transition) error
	AddAttachment(ctx context.Context, issueKey string, filePaths ...string) ([]Attachment, error)
	BrowseURL(issueKey string) string
}

type client struct {
	rest *rest.Client
}

// NewClient creates a Jira client. Cloud instances authenticate with username and API token,
// server instances with a personal access token when username is empty.
func NewClient(baseURL, username, token string, logger log.Logger) Client {
	authorize := rest.BearerAuth(token)
	if username != "" {
		authorize = rest.BasicAuth(username, token)
	}

	return &client{rest: rest.NewClient(baseURL, authorize, logger)}
}

func (c client) Search(ctx context.Context, jql string, fields []string) ([]Issue, error) {
	var issues []Issue
	for {
		var resp SearchResponse
		req := SearchRequest{
			JQL:        jql,
			Fields:     fields,
			StartAt:    len(issues),
			MaxResults: searchPageSize,
		}
		if err := c.rest.DoJSON(ctx, http.MethodPost, "/rest/api/2/search", req, &resp); err != nil {
			return nil, fmt.Errorf("failed to search issues (%s): %w", jql, err)
		}

		issues = append(issues, resp.Issues...)
		if len(resp.Issues) == 0 || len(issues) >= resp.Total {
			return issues, nil
		}
	}
}

func (c client) EditIssue(ctx context.Context, issueKey string, fields map[string]interface{}) error {
	body := map[string]interface{}{"fields": fields}
	if err := c.rest.DoJSON(ctx, http.MethodPut, "/rest/api/2/issue/"+url.PathEscape(issueKey), body, nil); err != nil {
		return fmt.Errorf("failed to edit issue %s: %w", issueKey, err)
	}
	return nil
}

func (c client) GetFields(ctx context.Context) ([]Field, error) {
	var fields []Field
	if err := c.rest.DoJSON(ctx, http.MethodGet, "/rest/api/2/field", nil, &fields); err != nil {
		return nil, fmt.Errorf("failed to get fields: %w", err)
	}
	return fields, nil
}

func (c client) TransitionIssue(ctx context.Context, issueKey string, transition Transition) error {
	body := map[string]interface{}{"transition": transition}
	if err := c.rest.DoJSON(ctx, http.MethodPost, "/rest/api/2/issue/"+url.PathEscape(issueKey)+"/transitions", body, nil); err != nil {
		return fmt.Errorf("failed to transition issue %s: %w", issueKey, err)
	}
	return nil
}

func (c client) AddAttachment(ctx context.Context, issueKey string, filePaths ...string) ([]Attachment, error) {
	if len(filePaths) == 0 {
		return nil, nil
	}

	parts := make([]rest.Part, 0, len(filePaths))
	for _, pth := range filePaths {
		parts = append(parts, rest.Part{Name: "file", Path: pth})
	}

	var attachments []Attachment
	headers := map[string]string{"X-Atlassian-Token": "no-check"}
	if err := c.rest.DoMultipart(ctx, http.MethodPost, "/rest/api/2/issue/"+url.PathEscape(issueKey)+"/attachments", parts, headers, &attachments); err != nil {
		return nil, fmt.Errorf("failed to attach files to issue %s: %w", issueKey, err)
	}
	return attachments, nil
}

func (c client) BrowseURL(issueKey string) string {
	return c.rest.BaseURL() + "/browse/" + issueKey
}
