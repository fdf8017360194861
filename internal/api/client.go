package api

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

	"c4sg/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Client handles communication with the API server
type Client struct {
	// Base URL of the API server
	BaseURL string

	// Authentication token
	AuthToken string

	// HTTP client with a timeout
	client *http.Client

	// Token store for managing authentication tokens
	tokenStore *models.TokenStore

	// Optional client-side throttle
	limiter *rate.Limiter

	logger logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the request timeout of the underlying HTTP client
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

// WithRateLimit limits outgoing requests to rps per second. Zero or less disables the limit.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new API client
func NewClient(baseURL string, tokenStore *models.TokenStore, opts ...Option) *Client {
	token := ""
	if tokenStore != nil {
		storedToken, err := tokenStore.GetToken()
		if err == nil && storedToken != "" {
			token = storedToken
		}
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		AuthToken:  token,
		tokenStore: tokenStore,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: discard,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Error is returned when the server answers with an unexpected status code
type Error struct {
	Op         string
	StatusCode int

	// Message is the "message" field of a JSON error body, if any
	Message string

	Body string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

// Is lets errors.Is match models.ErrNotFound for 404 responses
func (e *Error) Is(target error) bool {
	return target == models.ErrNotFound && e.StatusCode == http.StatusNotFound
}

// MessageOf returns the message a user should see for err: the server-provided message
// when there is one, otherwise the error text.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

// request describes one call against the API
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	body   interface{}
}

// do sends the request and returns the raw response body of a 2xx answer
func (c *Client) do(ctx context.Context, r request) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("error waiting for rate limiter: %w", err)
		}
	}

	endpoint := c.BaseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}

	var reqBody io.Reader
	if r.body != nil {
		jsonData, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("error marshalling request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.WithFields(logrus.Fields{
		"method":     r.method,
		"path":       r.path,
		"request_id": requestID,
	})
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).Debug("request failed")
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			log.WithError(err).Warn("failed to close response body")
		}
	}(resp.Body)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	log.WithFields(logrus.Fields{
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{
			Op:         r.op,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(bodyBytes),
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	return bodyBytes, nil
}

// doJSON sends the request and decodes a non-empty response body into out
func (c *Client) doJSON(ctx context.Context, r request, out interface{}) error {
	body, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// token returns the bearer token for the next request
func (c *Client) token() string {
	if c.AuthToken != "" {
		return c.AuthToken
	}
	if c.tokenStore == nil {
		return ""
	}
	token, err := c.tokenStore.GetToken()
	if err != nil {
		return ""
	}
	return token
}
