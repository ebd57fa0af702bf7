package client

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

	"github.com/dmitrijs2005/gophsync/internal/client/models"
	"github.com/dmitrijs2005/gophsync/internal/common"
	"github.com/dmitrijs2005/gophsync/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// HTTPClient talks JSON over HTTP to the backend. It holds no per-call
// state: the bearer token is read from the SessionProvider on every request.
type HTTPClient struct {
	baseURL  string
	http     *http.Client
	sessions SessionProvider
	log      logging.Logger
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTimeout bounds each call, including reading the response body.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		h := *c.http
		h.Timeout = d
		c.http = &h
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func NewHTTPClient(baseURL string, sessions SessionProvider, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		sessions: sessions,
		log:      logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

var _ Client = (*HTTPClient)(nil)

// RequestOptions describes one call. An empty Method means GET; a nil Body
// sends no body. Header values override the defaults from AuthHeaders.
type RequestOptions struct {
	Method string
	Body   any
	Header http.Header
}

// AuthHeaders returns the JSON content type and, when the current session
// has an access token, the bearer Authorization header.
func (c *HTTPClient) AuthHeaders(ctx context.Context) http.Header {
	h := http.Header{}
	h.Set("Content-Type", "application/json")

	if c.sessions == nil {
		return h
	}
	s := c.sessions.CurrentSession(ctx)
	if s == nil || s.AccessToken == "" {
		return h
	}

	tok := &oauth2.Token{AccessToken: s.AccessToken, TokenType: "Bearer"}
	h.Set("Authorization", tok.Type()+" "+tok.AccessToken)
	return h
}

// Request performs one call against baseURL+endpoint and decodes a JSON
// response into out (which may be nil). Non-2xx statuses return *APIError,
// transport failures wrap ErrUnavailable.
func (c *HTTPClient) Request(ctx context.Context, endpoint string, opts RequestOptions, out any) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != nil {
		b, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}

	header := c.AuthHeaders(ctx)
	requestID := uuid.NewString()
	header.Set(common.RequestIDHeaderName, requestID)
	for k, v := range opts.Header {
		header[http.CanonicalHeaderKey(k)] = v
	}
	req.Header = header

	log := c.log.With("request_id", requestID, "method", method, "endpoint", endpoint)
	started := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn(ctx, "api request failed", "error", err)
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, endpoint, err)
	}
	defer resp.Body.Close()

	log.Debug(ctx, "api request done", "status", resp.StatusCode, "duration", time.Since(started))

	if resp.StatusCode/100 != 2 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &APIError{StatusCode: resp.StatusCode, StatusText: statusText(resp), Endpoint: endpoint}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s response: %w", method, endpoint, err)
	}
	return nil
}

// statusText extracts the reason phrase, e.g. "Not Found" from "404 Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	if text == "" {
		text = strconv.Itoa(resp.StatusCode)
	}
	return text
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginResponse, error) {
	var out models.LoginResponse
	err := c.Request(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   models.LoginRequest{Email: email, Password: password},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, r models.RegisterRequest) (*models.User, error) {
	var out models.User
	if err := c.Request(ctx, "/auth/register", RequestOptions{Method: http.MethodPost, Body: r}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.Request(ctx, "/auth/logout", RequestOptions{Method: http.MethodPost}, nil)
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Profile, error) {
	var out models.Profile
	if err := c.Request(ctx, "/user/profile", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error) {
	var out models.Profile
	if err := c.Request(ctx, "/user/profile", RequestOptions{Method: http.MethodPut, Body: patch}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SyncUser(ctx context.Context, payload models.SyncPayload) (*models.User, error) {
	var out models.User
	if err := c.Request(ctx, "/user-sync", RequestOptions{Method: http.MethodPost, Body: payload}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.Request(ctx, "/users", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.Request(ctx, "/users/"+url.PathEscape(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
