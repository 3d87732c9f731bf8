package taskflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// DefaultEndpoint is where the API is expected to listen if no other endpoint is configured.
const DefaultEndpoint = "http://localhost:3001"

// ClientOption configures a Client built with NewClient.
type ClientOption func(*Client) error

// WithEndpoint is a client option to set the base URL of the API, e.g., http://localhost:3001. The items
// collection is expected at /items under it.
func WithEndpoint(endpoint string) ClientOption {
	return func(c *Client) error {
		u, err := url.Parse(strings.TrimSuffix(endpoint, "/"))
		if err != nil {
			return fmt.Errorf("endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("endpoint %q: scheme must be http or https", endpoint)
		}
		c.endpoint = u.String()
		return nil
	}
}

// WithHTTPClient makes the client issue requests through hc, e.g., to set a timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		c.hc = hc
		return nil
	}
}

// WithWireLog is a client option to be passed to NewClient in order to log all requests and responses to the
// specified log file. Useful for debugging the client itself, shouldn't be needed in normal operation.
func WithWireLog(pathname string) ClientOption {
	return func(c *Client) error {
		f, err := os.OpenFile(pathname, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0600)
		if err == nil {
			c.wlog = f
		}
		return err
	}
}

// WithoutSchemaValidation turns off checking response bodies against the todo JSON schema before decoding.
func WithoutSchemaValidation() ClientOption {
	return func(c *Client) error {
		c.validate = false
		return nil
	}
}

// API is the set of remote operations the Store relies on. Client implements it.
type API interface {
	ListAll(ctx context.Context) ([]Todo, error)
	ListByCompletion(ctx context.Context, isComplete bool) ([]Todo, error)
	Create(ctx context.Context, in Input) (Todo, error)
	Update(ctx context.Context, todo Todo) (Todo, error)
	Remove(ctx context.Context, id ID) (ID, error)
}

// Client talks to the TaskFlow REST API. It keeps no state of its own besides its configuration; the todo
// collection is owned by a Store. Every method makes exactly one request and never retries.
type Client struct {
	endpoint string
	hc       *http.Client

	// If non-nil, log all requests and responses to this writer, one per line, in JSON format.
	wlog io.Writer

	validate bool
}

var _ API = (*Client)(nil)

// NewClient creates a client for the API at DefaultEndpoint, unless told otherwise by options.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		endpoint: DefaultEndpoint,
		hc:       http.DefaultClient,
		wlog:     io.Discard,
		validate: true,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Endpoint returns the base URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ListAll fetches every todo, in the order the server returns them.
func (c *Client) ListAll(ctx context.Context) ([]Todo, error) {
	return c.list(ctx, "list all", "/items")
}

// ListByCompletion fetches the todos whose isComplete flag equals the argument. Filtering is done by the
// server.
func (c *Client) ListByCompletion(ctx context.Context, isComplete bool) ([]Todo, error) {
	q := make(url.Values)
	q.Set("isComplete", strconv.FormatBool(isComplete))
	return c.list(ctx, "list by completion", "/items?"+q.Encode())
}

func (c *Client) list(ctx context.Context, op, path string) ([]Todo, error) {
	b, err := c.do(ctx, op, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if c.validate {
		if err := validateTodos(b); err != nil {
			return nil, &DecodeError{Op: op, Err: err}
		}
	}
	todos := []Todo{}
	if err := json.Unmarshal(b, &todos); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return todos, nil
}

// Create adds a new, incomplete todo. The returned todo carries the id assigned by the server.
func (c *Client) Create(ctx context.Context, in Input) (Todo, error) {
	return c.one(ctx, "create", http.MethodPost, "/items", in)
}

// Update replaces the todo with the same id on the server. The result is whatever the server answered
// with; no merging with the argument happens.
func (c *Client) Update(ctx context.Context, todo Todo) (Todo, error) {
	if todo.ID.IsZero() {
		return Todo{}, fmt.Errorf("update: %w", ErrZeroID)
	}
	return c.one(ctx, "update", http.MethodPut, itemPath(todo.ID), todo)
}

// Remove deletes the todo with the given id, and returns the id itself. The response body is ignored.
func (c *Client) Remove(ctx context.Context, id ID) (ID, error) {
	if id.IsZero() {
		return ID{}, fmt.Errorf("remove: %w", ErrZeroID)
	}
	if _, err := c.do(ctx, "remove", http.MethodDelete, itemPath(id), nil); err != nil {
		return ID{}, err
	}
	return id, nil
}

func (c *Client) one(ctx context.Context, op, method, path string, payload interface{}) (Todo, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Todo{}, fmt.Errorf("%s, marshal: %w", op, err)
	}
	b, err = c.do(ctx, op, method, path, b)
	if err != nil {
		return Todo{}, err
	}
	if c.validate {
		if err := validateTodo(b); err != nil {
			return Todo{}, &DecodeError{Op: op, Err: err}
		}
	}
	var todo Todo
	if err := json.Unmarshal(b, &todo); err != nil {
		return Todo{}, &DecodeError{Op: op, Err: err}
	}
	return todo, nil
}

func itemPath(id ID) string {
	return "/items/" + url.PathEscape(id.String())
}
