// Package teacherclient is a typed HTTP client for the teacher directory API.
package teacherclient

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

	"go.uber.org/zap"
)

// ErrUnavailable reports that the API could not be reached at all.
var ErrUnavailable = errors.New("teacher directory unavailable")

// APIError is a non-2xx response from the API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("teacher directory: %d %s: %s", e.Status, e.Code, e.Message)
}

// Teacher mirrors the joined profile returned by the API.
type Teacher struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	UniversityName string    `json:"university_name"`
	Department     string    `json:"department"`
	Gender         string    `json:"gender"`
	YearJoined     int       `json:"year_joined"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Registration is the POST /register payload.
type Registration struct {
	Email          string `json:"email"`
	Password       string `json:"password"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	UniversityName string `json:"university_name,omitempty"`
	Gender         string `json:"gender,omitempty"`
	YearJoined     *int   `json:"year_joined,omitempty"`
	Department     string `json:"department,omitempty"`
}

type authResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token sent on authenticated calls.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the logger used to report fallbacks.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithSampleFallback makes ListTeachers and GetTeacher answer from the built-in
// sample teachers when the API is unreachable. API errors are still returned.
func WithSampleFallback() Option {
	return func(c *Client) { c.fallback = true }
}

// Client talks to a teacher directory server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	fallback   bool
	logger     *zap.Logger
}

// NewClient constructs a client for the server at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, typically after Login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, in Registration) (string, error) {
	var out authResponse
	if err := c.do(ctx, http.MethodPost, "/register", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// ListTeachers returns all teachers matching query; an empty query lists everything.
func (c *Client) ListTeachers(ctx context.Context, query string) ([]Teacher, error) {
	path := "/teachers"
	if query != "" {
		path += "?" + url.Values{"q": {query}}.Encode()
	}
	var out struct {
		Data []Teacher `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	if c.useFallback(err) {
		c.logger.Warn("teacher directory unreachable; serving sample teachers", zap.Error(err))
		return FilterSamples(query), nil
	}
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetTeacher returns the teacher with the given user id.
func (c *Client) GetTeacher(ctx context.Context, userID string) (*Teacher, error) {
	var out struct {
		Data Teacher `json:"data"`
	}
	err := c.do(ctx, http.MethodGet, "/teachers/"+url.PathEscape(userID), nil, &out)
	if c.useFallback(err) {
		c.logger.Warn("teacher directory unreachable; serving sample teacher", zap.Error(err))
		if t, ok := SampleByUserID(userID); ok {
			return &t, nil
		}
		return nil, &APIError{Status: http.StatusNotFound, Code: "NOT_FOUND", Message: "Teacher not found"}
	}
	if err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// Me returns the caller's own teacher record.
func (c *Client) Me(ctx context.Context) (*Teacher, error) {
	var out struct {
		Data Teacher `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/me", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *Client) useFallback(err error) bool {
	return c.fallback && errors.Is(err, ErrUnavailable)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er errorResponse
		if json.NewDecoder(resp.Body).Decode(&er) == nil && er.Error.Message != "" {
			apiErr.Code = er.Error.Code
			apiErr.Message = er.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
