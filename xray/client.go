package xray

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"sync"
	"time"

	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-steplib/steps-xray-results-upload/rest"
)

// CloudURL is the base URL of the Xray cloud API.
const CloudURL = "https://xray.cloud.getxray.app/api/v2"

const (
	authenticateRetries  = 3
	authenticateWaitTime = 5 * time.Second
)

// Client imports results and feature files into Xray.
type Client interface {
	ImportExecutionMultipart(ctx context.Context, results ImportExecution, info MultipartInfo) (string, error)
	ImportExecutionCucumberMultipart(ctx context.Context, report interface{}, info MultipartInfo) (string, error)
	ImportFeature(ctx context.Context, projectKey, featureFilePath string) (ImportFeatureResponse, error)
}

type endpoints struct {
	executionMultipart         string
	executionCucumberMultipart string
	feature                    string
}

var serverEndpoints = endpoints{
	executionMultipart:         "/rest/raven/1.0/import/execution/multipart",
	executionCucumberMultipart: "/rest/raven/1.0/import/execution/cucumber/multipart",
	feature:                    "/rest/raven/1.0/import/feature",
}

var cloudEndpoints = endpoints{
	executionMultipart:         "/import/execution/multipart",
	executionCucumberMultipart: "/import/execution/cucumber/multipart",
	feature:                    "/import/feature",
}

type client struct {
	rest      *rest.Client
	endpoints endpoints
	isCloud   bool
}

// NewServerClient creates a client for Xray server and data center, which is served by the Jira instance itself.
func NewServerClient(jiraURL, username, token string, logger log.Logger) Client {
	authorize := rest.BearerAuth(token)
	if username != "" {
		authorize = rest.BasicAuth(username, token)
	}

	return &client{
		rest:      rest.NewClient(jiraURL, authorize, logger),
		endpoints: serverEndpoints,
	}
}

// NewCloudClient creates a client for Xray cloud. The bearer token is requested with the client credentials on first use.
func NewCloudClient(baseURL, clientID, clientSecret string, logger log.Logger) Client {
	auth := &cloudAuthenticator{
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
	}
	auth.rest = rest.NewClient(baseURL, nil, logger)

	return &client{
		rest:      rest.NewClient(baseURL, auth.authorize, logger),
		endpoints: cloudEndpoints,
		isCloud:   true,
	}
}

type executionResponse struct {
	Key           string `json:"key"`
	TestExecIssue struct {
		Key string `json:"key"`
	} `json:"testExecIssue"`
}

func (r executionResponse) issueKey() string {
	if r.TestExecIssue.Key != "" {
		return r.TestExecIssue.Key
	}
	return r.Key
}

func (c client) ImportExecutionMultipart(ctx context.Context, results ImportExecution, info MultipartInfo) (string, error) {
	key, err := c.importMultipart(ctx, c.endpoints.executionMultipart, results, info)
	if err != nil {
		return "", fmt.Errorf("failed to import execution results: %w", err)
	}
	return key, nil
}

func (c client) ImportExecutionCucumberMultipart(ctx context.Context, report interface{}, info MultipartInfo) (string, error) {
	key, err := c.importMultipart(ctx, c.endpoints.executionCucumberMultipart, report, info)
	if err != nil {
		return "", fmt.Errorf("failed to import Cucumber execution results: %w", err)
	}
	return key, nil
}

func (c client) importMultipart(ctx context.Context, path string, results interface{}, info MultipartInfo) (string, error) {
	resultsContent, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	infoContent, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to encode info: %w", err)
	}

	parts := []rest.Part{
		{Name: "results", Filename: "results.json", ContentType: "application/json", Content: resultsContent},
		{Name: "info", Filename: "info.json", ContentType: "application/json", Content: infoContent},
	}

	var resp executionResponse
	if err := c.rest.DoMultipart(ctx, http.MethodPost, path, parts, nil, &resp); err != nil {
		return "", err
	}
	if resp.issueKey() == "" {
		return "", fmt.Errorf("response of %s does not contain a test execution issue key", path)
	}
	return resp.issueKey(), nil
}

type issueReference struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Self string `json:"self"`
}

type serverFeatureResponse struct {
	TestIssues         []issueReference `json:"testIssues"`
	PreconditionIssues []issueReference `json:"preConditionIssues"`
	Errors             []string         `json:"errors"`
}

type cloudFeatureResponse struct {
	Errors                        []string         `json:"errors"`
	UpdatedOrCreatedTests         []issueReference `json:"updatedOrCreatedTests"`
	UpdatedOrCreatedPreconditions []issueReference `json:"updatedOrCreatedPreconditions"`
}

func (c client) ImportFeature(ctx context.Context, projectKey, featureFilePath string) (ImportFeatureResponse, error) {
	path := c.endpoints.feature + "?projectKey=" + url.QueryEscape(projectKey)
	parts := []rest.Part{{Name: "file", Filename: filepath.Base(featureFilePath), ContentType: "text/plain", Path: featureFilePath}}

	var raw json.RawMessage
	if err := c.rest.DoMultipart(ctx, http.MethodPost, path, parts, nil, &raw); err != nil {
		return ImportFeatureResponse{}, fmt.Errorf("failed to import feature file %s: %w", featureFilePath, err)
	}

	resp, err := c.parseFeatureResponse(raw)
	if err != nil {
		return ImportFeatureResponse{}, fmt.Errorf("failed to parse feature file import response of %s: %w", featureFilePath, err)
	}
	return resp, nil
}

func (c client) parseFeatureResponse(raw json.RawMessage) (ImportFeatureResponse, error) {
	var resp ImportFeatureResponse

	if c.isCloud {
		var cloud cloudFeatureResponse
		if err := json.Unmarshal(raw, &cloud); err != nil {
			return resp, err
		}
		resp.Errors = cloud.Errors
		resp.UpdatedOrCreatedIssues = append(keysOf(cloud.UpdatedOrCreatedTests), keysOf(cloud.UpdatedOrCreatedPreconditions)...)
		return resp, nil
	}

	// Older server versions respond with a plain list of issues.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		var issues []issueReference
		if err := json.Unmarshal(trimmed, &issues); err != nil {
			return resp, err
		}
		resp.UpdatedOrCreatedIssues = keysOf(issues)
		return resp, nil
	}

	var server serverFeatureResponse
	if err := json.Unmarshal(raw, &server); err != nil {
		return resp, err
	}
	resp.Errors = server.Errors
	resp.UpdatedOrCreatedIssues = append(keysOf(server.TestIssues), keysOf(server.PreconditionIssues)...)
	return resp, nil
}

func keysOf(issues []issueReference) []string {
	keys := make([]string, 0, len(issues))
	for _, issue := range issues {
		keys = append(keys, issue.Key)
	}
	return keys
}

type cloudAuthenticator struct {
	clientID     string
	clientSecret string
	rest         *rest.Client
	logger       log.Logger

	mu    sync.Mutex
	token string
}

func (a *cloudAuthenticator) authorize(ctx context.Context, req *http.Request) error {
	token, err := a.bearerToken(ctx)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

func (a *cloudAuthenticator) bearerToken(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.token != "" {
		return a.token, nil
	}

	body := map[string]string{
		"client_id":     a.clientID,
		"client_secret": a.clientSecret,
	}

	var token string
	err := retry.Times(authenticateRetries).Wait(authenticateWaitTime).Try(func(attempt uint) error {
		if attempt > 0 {
			a.logger.Warnf("Retrying Xray cloud authentication (attempt %d)", attempt)
		}
		return a.rest.DoJSON(ctx, http.MethodPost, "/authenticate", body, &token)
	})
	if err != nil {
		return "", fmt.Errorf("failed to authenticate to Xray cloud: %w", err)
	}

	a.token = token
	return token, nil
}
