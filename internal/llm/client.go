package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// maxResponseSize limits the LLM response body to prevent memory exhaustion.
const maxResponseSize = 10 * 1024 * 1024 // 10MB

// defaultMaxRetries is the number of additional attempts after a transient
// failure.
const defaultMaxRetries = 1

// retryBackoff is the pause before a retry attempt.
const retryBackoff = 2 * time.Second

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`    // "system" or "user"
	Content string `json:"content"` // Message content
}

// Request defines an LLM completion request.
type Request struct {
	// Model is the model identifier to use for this request.
	Model string

	// Messages is the conversation to send.
	Messages []Message

	// Temperature controls randomness. nil uses the endpoint default.
	Temperature *float64

	// MaxTokens limits response length. 0 uses the endpoint default.
	MaxTokens int

	// GroundedSearch enables the provider's web search grounding tool.
	// Responses then carry the grounding sources alongside the text.
	GroundedSearch bool
}

// TokenUsage represents token consumption details for an LLM call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// WebSource is one web page the provider consulted while answering a
// grounded request.
type WebSource struct {
	// Title is the page title as reported by the provider.
	Title string `json:"title"`

	// URI is the page URL. Providers may return intermediary redirect
	// URLs here; callers must resolve them before use.
	URI string `json:"uri"`
}

// Response contains the LLM completion result.
type Response struct {
	// Content is the generated text.
	Content string

	// Model is the model that produced the response.
	Model string

	// Usage contains token consumption metrics when the provider
	// reports them.
	Usage TokenUsage

	// Sources are the grounding web sources for GroundedSearch requests.
	Sources []WebSource
}

// Provider translates requests to and from a vendor wire format.
type Provider interface {
	// Name returns the provider identifier (e.g. "gemini").
	Name() string

	// BuildURL constructs the full API endpoint URL for a model.
	BuildURL(baseURL, model string) string

	// SetHeaders adds provider-specific headers, including authentication.
	SetHeaders(req *http.Request)

	// BuildRequestBody creates the JSON request body.
	BuildRequestBody(req Request) ([]byte, error)

	// ParseResponse extracts the response from provider-specific JSON.
	ParseResponse(body []byte, model string) (*Response, error)
}

// Client is a provider-agnostic LLM client with transient-failure retry.
type Client struct {
	provider   Provider
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithMaxRetries sets how many times a transient failure is retried.
func WithMaxRetries(n int) ClientOption {
	return func(client *Client) {
		if n >= 0 {
			client.maxRetries = n
		}
	}
}

// WithClientLogger sets the logger.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(client *Client) {
		client.logger = logger
	}
}

// NewClient creates a new LLM client for the given provider and base URL.
func NewClient(provider Provider, baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		provider:   provider,
		baseURL:    baseURL,
		maxRetries: defaultMaxRetries,
		httpClient: &http.Client{
			// Long-form article generation routinely takes minutes.
			Timeout: 10 * time.Minute,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Complete sends a completion request and returns the parsed response.
// Transient failures (network errors, 429, 5xx) are retried once with a
// short pause; everything else fails immediately.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("at least one message is required")
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying LLM request",
				"attempt", attempt+1,
				"model", req.Model,
				"error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		resp, err := c.doRequest(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", c.maxRetries+1, lastErr)
}

// GroundedSearch runs a web-grounded query and returns the pages the
// provider consulted, capped at maxResults. The generated answer text is
// discarded; only the grounding sources matter to callers.
func (c *Client) GroundedSearch(ctx context.Context, model, query string, maxResults int) ([]WebSource, error) {
	resp, err := c.Complete(ctx, Request{
		Model: model,
		Messages: []Message{
			{Role: "user", Content: fmt.Sprintf(
				"Find current, authoritative web pages about: %s. Prefer primary sources, studies, and official documentation.", query)},
		},
		GroundedSearch: true,
	})
	if err != nil {
		return nil, err
	}

	sources := resp.Sources
	if maxResults > 0 && len(sources) > maxResults {
		sources = sources[:maxResults]
	}
	return sources, nil
}

// doRequest executes a single HTTP request against the provider endpoint.
func (c *Client) doRequest(ctx context.Context, req Request) (*Response, error) {
	body, err := c.provider.BuildRequestBody(req)
	if err != nil {
		return nil, fmt.Errorf("build request body: %w", err)
	}

	url := c.provider.BuildURL(c.baseURL, req.Model)

	c.logger.Debug("sending LLM request",
		"provider", c.provider.Name(),
		"model", req.Model,
		"messages", len(req.Messages),
		"grounded", req.GroundedSearch)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create HTTP request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	c.provider.SetHeaders(httpReq)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &transientError{fmt.Errorf("HTTP request failed: %w", err)}
	}
	defer httpResp.Body.Close() //nolint:errcheck // Best-effort close on read path

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, &transientError{fmt.Errorf("read response body: %w", err)}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, classifyHTTPError(httpResp.StatusCode, respBody)
	}

	return c.provider.ParseResponse(respBody, req.Model)
}

// transientError marks a failure worth retrying.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// isTransient reports whether an error is retryable.
func isTransient(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}

// classifyHTTPError wraps API errors, marking retryable status codes as
// transient.
func classifyHTTPError(statusCode int, body []byte) error {
	bodyStr := string(body)
	if len(bodyStr) > 200 {
		bodyStr = bodyStr[:200] + "..."
	}

	err := fmt.Errorf("LLM API error (status %d): %s", statusCode, bodyStr)

	if statusCode == http.StatusTooManyRequests || statusCode >= 500 {
		return &transientError{err}
	}
	return err
}
