package dropea

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultEndpoint = "https://api.dropea.com/graphql/dropshippers"
	maxRetries      = 3
	retryDelay      = time.Second
)

// HTTPClient defines the interface for HTTP operations
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client handles communication with the Dropea dropshippers API
type Client struct {
	apiKey     string
	endpoint   string
	httpClient HTTPClient
	now        func() time.Time
}

// ClientOption allows configuring the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoint sets a custom API endpoint
func WithEndpoint(url string) ClientOption {
	return func(c *Client) {
		c.endpoint = url
	}
}

// WithClock sets the time source used to compute fetch windows
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a new Dropea API client
func NewClient(apiKey string, opts ...ClientOption) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv("DROPEA_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("DROPEA_API_KEY environment variable not set")
	}

	client := &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// doRequest performs an HTTP request with retry logic
func (c *Client) doRequest(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay * time.Duration(attempt))
		}

		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			retryAfter := resp.Header.Get("Retry-After")
			if seconds, err := strconv.Atoi(retryAfter); err == nil {
				time.Sleep(time.Duration(seconds) * time.Second)
			} else {
				time.Sleep(retryDelay * time.Duration(attempt+1))
			}
			lastErr = fmt.Errorf("rate limited: %d", resp.StatusCode)
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", maxRetries, lastErr)
}

// query posts a GraphQL query and decodes one page of orders. The body must
// be re-marshaled per call because doRequest may retry the request.
func (c *Client) query(queryText string, variables map[string]any) ([]Order, bool, error) {
	body, err := json.Marshal(graphQLRequest{Query: queryText, Variables: variables})
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequest("POST", c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, false, err
	}
	req.GetBody = func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(body)), nil
	}

	resp, err := c.doRequest(req)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("API request failed: %d", resp.StatusCode)
	}

	var result ordersResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, false, err
	}

	if len(result.Errors) > 0 {
		return nil, false, fmt.Errorf("dropea error: %s", result.Errors[0].Message)
	}

	return result.Data.Orders.Data, result.Data.Orders.HasMorePages, nil
}
