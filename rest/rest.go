package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitrise-io/go-utils/v2/log"
	"github.com/bitrise-io/go-utils/v2/retryhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// Authorizer sets the credentials of a request.
type Authorizer func(ctx context.Context, req *http.Request) error

// BasicAuth ...
func BasicAuth(username, password string) Authorizer {
	return func(_ context.Context, req *http.Request) error {
		req.SetBasicAuth(username, password)
		return nil
	}
}

// BearerAuth ...
func BearerAuth(token string) Authorizer {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// Error is returned for responses outside of the 2xx range.
type Error struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Part is one part of a multipart request. Either Content or Path is set.
type Part struct {
	Name        string
	Filename    string
	ContentType string
	Content     []byte
	Path        string
}

// Client sends JSON and multipart requests with retries.
type Client struct {
	baseURL    string
	httpClient *retryablehttp.Client
	authorize  Authorizer
}

// NewClient ...
func NewClient(baseURL string, authorize Authorizer, logger log.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: retryhttp.NewClient(logger),
		authorize:  authorize,
	}
}

// BaseURL ...
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DoJSON sends body encoded as JSON and decodes the response into result when it is not nil.
func (c *Client) DoJSON(ctx context.Context, method, path string, body, result interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body of %s %s: %w", method, path, err)
		}
	}

	headers := map[string]string{"Accept": "application/json"}
	if body != nil {
		headers["Content-Type"] = "application/json"
	}

	return c.do(ctx, method, path, payload, headers, result)
}

// DoMultipart sends the parts as multipart/form-data.
func (c *Client) DoMultipart(ctx context.Context, method, path string, parts []Part, headers map[string]string, result interface{}) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, part := range parts {
		content := part.Content
		if part.Path != "" {
			var err error
			content, err = os.ReadFile(part.Path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", part.Path, err)
			}
		}

		filename := part.Filename
		if filename == "" && part.Path != "" {
			filename = filepath.Base(part.Path)
		}

		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, part.Name, escapeQuotes(filename)))
		contentType := part.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		w, err := writer.CreatePart(header)
		if err != nil {
			return fmt.Errorf("failed to create multipart field %s: %w", part.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return fmt.Errorf("failed to write multipart field %s: %w", part.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish multipart body: %w", err)
	}

	allHeaders := map[string]string{
		"Accept":       "application/json",
		"Content-Type": writer.FormDataContentType(),
	}
	for key, value := range headers {
		allHeaders[key] = value
	}

	return c.do(ctx, method, path, buf.Bytes(), allHeaders, result)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, headers map[string]string, result interface{}) error {
	var body interface{}
	if payload != nil {
		body = payload
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request %s %s: %w", method, path, err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	if c.authorize != nil {
		if err := c.authorize(ctx, req.Request); err != nil {
			return fmt.Errorf("failed to authorize request %s %s: %w", method, path, err)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Error{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}
