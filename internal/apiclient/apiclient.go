// Package apiclient talks to a running focusflow server
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/store"
)

// UserHeader must match the header the server reads the acting user from.
const UserHeader = "X-User-ID"

const defaultTimeout = 15 * time.Second

var (
	errInvalidURL = &apperr.Error{
		Message: "invalid server url %q",
	}

	errRequest = &apperr.Error{
		Message: "%s %s: server responded with %d",
	}
)

// Client implements the store operations the timer and CLI commands need
// against the REST API.
type Client struct {
	http    *http.Client
	baseURL *url.URL
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func New(rawURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(rawURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errInvalidURL.Fmt(rawURL).Wrap(err)
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

type errorBody struct {
	Message string `json:"message"`
}

// do sends body (if any) as JSON and decodes the response into out (if
// any). A 404 is reported as store.ErrNotFound for entity.
func (c *Client) do(
	ctx context.Context,
	method, path, userID, entity string,
	body, out any,
) error {
	var r io.Reader

	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}

		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, r)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(UserHeader, userID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return responseError(resp, method, path, entity)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func responseError(resp *http.Response, method, path, entity string) error {
	var body errorBody

	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body)

	var cause error
	if body.Message != "" {
		cause = errors.New(body.Message)
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return store.ErrNotFound.Fmt(entity).Wrap(cause)
	case http.StatusBadRequest:
		return models.ErrInvalidInput.Fmt(entity).Wrap(cause)
	}

	return errRequest.Fmt(method, path, resp.StatusCode).Wrap(cause)
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User

	err := c.do(ctx, http.MethodGet, "/api/users/current", id, "user", nil, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (c *Client) UpdateUser(
	ctx context.Context,
	id string,
	patch *models.UserPatch,
) (*models.User, error) {
	var u models.User

	err := c.do(ctx, http.MethodPatch, "/api/users/current", id, "user", patch, &u)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// AddFocusTime reads the profile and writes back the new total. Concurrent
// writers can lose updates.
func (c *Client) AddFocusTime(
	ctx context.Context,
	id string,
	mins int,
) (*models.User, error) {
	u, err := c.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	total := u.TotalFocusTime + mins

	return c.UpdateUser(ctx, id, &models.UserPatch{TotalFocusTime: &total})
}

func (c *Client) ListTasks(ctx context.Context, userID string) ([]models.Task, error) {
	var tasks []models.Task

	err := c.do(ctx, http.MethodGet, "/api/tasks", userID, "task", nil, &tasks)

	return tasks, err
}

func (c *Client) CreateTask(
	ctx context.Context,
	userID string,
	in *models.NewTask,
) (*models.Task, error) {
	var t models.Task

	err := c.do(ctx, http.MethodPost, "/api/tasks", userID, "task", in, &t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *Client) UpdateTask(
	ctx context.Context,
	userID, id string,
	patch *models.TaskPatch,
) (*models.Task, error) {
	var t models.Task

	path := "/api/tasks/" + url.PathEscape(id)

	err := c.do(ctx, http.MethodPatch, path, userID, "task", patch, &t)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, userID, id string) error {
	path := "/api/tasks/" + url.PathEscape(id)

	return c.do(ctx, http.MethodDelete, path, userID, "task", nil, nil)
}

func (c *Client) ListFocusSessions(
	ctx context.Context,
	userID string,
) ([]models.FocusSession, error) {
	var sessions []models.FocusSession

	err := c.do(ctx, http.MethodGet, "/api/focus-sessions", userID, "session", nil, &sessions)

	return sessions, err
}

func (c *Client) CreateFocusSession(
	ctx context.Context,
	userID string,
	in *models.NewFocusSession,
) (*models.FocusSession, error) {
	var s models.FocusSession

	err := c.do(ctx, http.MethodPost, "/api/focus-sessions", userID, "session", in, &s)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Close is a no-op; it lets a Client stand in for a local store.
func (c *Client) Close() error {
	return nil
}

func (c *Client) String() string {
	return fmt.Sprintf("focusflow server at %s", c.baseURL)
}
