// Package api is the single gateway to the civic-issue backend. Every call
// goes through one request path that attaches the bearer token and turns a
// 401 into a cleared session plus an AuthExpired signal.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/me/civicflow/internal/config"
	"github.com/me/civicflow/internal/logging"
	"github.com/me/civicflow/pkg/model"
)

const (
	defaultRetryWaitMin = 100 * time.Millisecond
	defaultRetryWaitMax = 2 * time.Second
)

// Tokens is the part of the token store the gateway needs.
type Tokens interface {
	ValidToken() string
	ClearAll()
}

// Client talks to the backend on behalf of the console.
type Client struct {
	http    *retryablehttp.Client
	baseURL string
	tokens  Tokens
	logger  *slog.Logger

	mu          sync.Mutex
	subscribers map[int]func()
	nextSub     int
}

type idempotentKey struct{}

// New creates a Client for the API origin in cfg.
func New(cfg config.Config, tokens Tokens, logger *slog.Logger) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = cfg.HTTPRetries
	rc.RetryWaitMin = defaultRetryWaitMin
	rc.RetryWaitMax = defaultRetryWaitMax
	rc.HTTPClient.Timeout = cfg.HTTPTimeout
	rc.Logger = nil
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.CheckRetry = func(ctx context.Context, resp *http.Response, err error) (bool, error) {
		if ok, _ := ctx.Value(idempotentKey{}).(bool); !ok {
			return false, nil
		}
		if resp != nil && resp.StatusCode < 500 {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return &Client{
		http:        rc,
		baseURL:     strings.TrimRight(cfg.APIURL, "/"),
		tokens:      tokens,
		logger:      logging.OrDiscard(logger).With("component", "gateway"),
		subscribers: make(map[int]func()),
	}
}

// BaseURL returns the API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// OnAuthExpired registers fn to run once for every 401 response. The
// returned function removes the subscription.
func (c *Client) OnAuthExpired(fn func()) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Client) authExpired() {
	c.tokens.ClearAll()

	c.mu.Lock()
	subs := make([]func(), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		subs = append(subs, fn)
	}
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

// request describes one call.
type request struct {
	op            string
	method        string
	path          string
	body          any
	authenticated bool
}

// response is a completed call with a 2xx or error status.
type response struct {
	status int
	body   []byte
}

// send performs the HTTP exchange and applies the 401 rule. Non-2xx
// statuses other than 401 are returned as a response, not an error.
func (c *Client) send(ctx context.Context, r request) (*response, error) {
	var payload []byte
	if r.body != nil {
		var err error
		payload, err = json.Marshal(r.body)
		if err != nil {
			return nil, &FetchError{Op: r.op, Err: fmt.Errorf("marshal request: %w", err)}
		}
	}

	target, err := c.resolve(r.path)
	if err != nil {
		return nil, &FetchError{Op: r.op, Message: genericFailure, Err: err}
	}
	ctx = context.WithValue(ctx, idempotentKey{}, r.method == http.MethodGet)

	var body any
	if payload != nil {
		body = payload
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, r.method, target, body)
	if err != nil {
		return nil, &FetchError{Op: r.op, Err: fmt.Errorf("create request: %w", err)}
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.authenticated {
		if token := c.tokens.ValidToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	logger := c.logger.With("op", r.op, "method", r.method, "path", r.path, "request_id", reqID)
	logger.Debug("sending request")
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Debug("request failed", "error", err)
		return nil, &FetchError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: r.op, Status: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	logger.Debug("response", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && r.authenticated {
		logger.Info("session rejected by server")
		c.authExpired()
		return nil, ErrAuthExpired
	}
	return &response{status: resp.StatusCode, body: data}, nil
}

// resolve joins path onto the API origin. Absolute URLs are accepted only
// when they name that same origin.
func (c *Client) resolve(path string) (string, error) {
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if !u.IsAbs() && u.Host == "" {
		return c.baseURL + "/" + strings.TrimLeft(path, "/"), nil
	}
	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api url: %w", err)
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = base.Scheme
	}
	if !strings.EqualFold(scheme, base.Scheme) || !strings.EqualFold(u.Host, base.Host) {
		return "", fmt.Errorf("%w: %s", ErrForeignOrigin, u.Host)
	}
	return path, nil
}

// do runs an authenticated call and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	resp, err := c.send(ctx, request{op: op, method: method, path: path, body: body, authenticated: true})
	if err != nil {
		return err
	}
	if resp.status < 200 || resp.status > 299 {
		return statusError(op, resp)
	}
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return &FetchError{Op: op, Status: resp.status, Message: "invalid response", Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, op, path string, out any) error {
	return c.do(ctx, op, http.MethodGet, path, nil, out)
}

func statusError(op string, resp *response) error {
	msg := genericFailure
	if apiErr := model.ParseAPIError(resp.status, resp.body); apiErr != nil {
		msg = apiErr.Message
	}
	return &FetchError{Op: op, Status: resp.status, Message: msg}
}

// download fetches an arbitrary authenticated resource into w.
func (c *Client) download(ctx context.Context, op, path string, w io.Writer) (int64, error) {
	resp, err := c.send(ctx, request{op: op, method: http.MethodGet, path: path, authenticated: true})
	if err != nil {
		return 0, err
	}
	if resp.status < 200 || resp.status > 299 {
		return 0, statusError(op, resp)
	}
	n, err := w.Write(resp.body)
	if err != nil {
		return int64(n), &FetchError{Op: op, Status: resp.status, Err: fmt.Errorf("write download: %w", err)}
	}
	return int64(n), nil
}

// IsAuthExpired reports whether err came from a 401.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}
