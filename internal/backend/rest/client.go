// Package rest implements the service.Service interface over the task REST API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"taskmgr/internal/config"
	"taskmgr/internal/service"
)

const (
	// APITimeout is the default timeout for API calls.
	APITimeout = config.DefaultTimeout

	// RequestIDHeader carries a per-request ID for log correlation.
	RequestIDHeader = "X-Request-Id"

	tasksPath = "tasks"
)

// Client implements service.Service over HTTP.
type Client struct {
	http    *http.Client
	base    *url.URL
	timeout time.Duration
	log     logr.Logger
}

// New creates a client from config. When a token is configured the
// client sends it as a bearer token.
func New(ctx context.Context, cfg *config.Config, log logr.Logger) (*Client, error) {
	tok, err := cfg.LoadToken()
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{}
	if tok != nil {
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(tok))
	}

	c, err := NewWithHTTPClient(httpClient, cfg.BaseURL, log)
	if err != nil {
		return nil, err
	}
	c.timeout = cfg.Timeout
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, baseURL string, log logr.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base_url %q: %w", baseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid base_url %q: scheme must be http or https", baseURL)
	}
	return &Client{
		http:    httpClient,
		base:    base,
		timeout: APITimeout,
		log:     log.WithName("rest"),
	}, nil
}

// ListTasks returns every task in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if _, err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// CreateTask posts a task without its ID and returns the stored copy.
// It returns (nil, nil) when the server answers 2xx without a body.
func (c *Client) CreateTask(ctx context.Context, task service.Task) (*service.Task, error) {
	body := createRequest{
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
	}
	var created *service.Task
	hasBody, err := c.do(ctx, http.MethodPost, tasksPath, body, &created)
	if err != nil {
		return nil, err
	}
	if !hasBody {
		return nil, nil
	}
	return created, nil
}

// DeleteTask deletes a task by ID.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, tasksPath+"/"+strconv.Itoa(id), nil, nil)
	return err
}

type createRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    int    `json:"priority"`
}

// do performs one request. If out is non-nil and the response has a body,
// the body is decoded into out. It reports whether a body was present.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return false, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	target := c.base.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return false, fmt.Errorf("building request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.V(1).Info("request failed", "method", method, "url", target.String(), "requestID", reqID, "error", err.Error())
		return false, wrapError(err)
	}
	defer googleapi.CloseBody(resp)

	c.log.V(1).Info("request done", "method", method, "url", target.String(), "requestID", reqID,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if err := googleapi.CheckResponse(resp); err != nil {
		return false, statusError(resp, err)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, wrapError(fmt.Errorf("reading response: %w", err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return false, nil
	}
	if out == nil {
		return true, nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("decoding response: %w", err)
	}
	return !bytes.Equal(bytes.TrimSpace(data), []byte("null")), nil
}

// statusError converts a non-2xx response into a service.StatusError.
func statusError(resp *http.Response, err error) error {
	code := resp.StatusCode
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		code = gerr.Code
	}
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(code)))
	if text == "" {
		text = http.StatusText(code)
	}
	return &service.StatusError{Code: code, Status: text}
}

// wrapError maps transport errors to user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return err
}
