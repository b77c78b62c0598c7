package holidazeapi

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

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const defaultPageSize = 100

// APIError is a non-2xx response from the remote service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("holidaze api: %d %s", e.Status, e.Message)
}

// Client implements API against the Noroff Holidaze v2 REST service.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     zerolog.Logger
}

var _ API = (*Client)(nil)

// NewClient builds a Client from cfg. The underlying http.Client is safe for
// concurrent use; so is the Client.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: newBreaker("holidaze-remote", logger),
		logger:  logger,
	}
}

// newBreaker trips after consecutive transport or 5xx failures. Remote 4xx
// responses count as successes so a stream of bad user input cannot open the
// circuit.
func newBreaker(name string, logger zerolog.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 2
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			var apiErr *APIError
			return errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500
		},
	})
}

// envelope is the {data, meta} wrapper on every remote response.
type envelope struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta"`
}

type remoteError struct {
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
	Status string `json:"status"`
}

// doRequest issues one HTTP request through the circuit breaker and decodes
// the response envelope into result (which may be nil for 204 responses).
func (c *Client) doRequest(ctx context.Context, method, path string, params url.Values, auth *Auth, body, result any) (*Meta, error) {
	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, payload)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
		if auth.APIKey != "" {
			req.Header.Set("X-Noroff-API-Key", auth.APIKey)
		}
	}

	out, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			// Caller cancellation is not a remote failure.
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("send request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNoContent {
			return (*envelope)(nil), nil
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, &APIError{
				Status:  resp.StatusCode,
				Message: remoteMessage(raw, resp.Status),
			}
		}

		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return &env, nil
	})
	if err != nil {
		return nil, err
	}

	env, _ := out.(*envelope)
	if env == nil || result == nil {
		return nil, nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return nil, fmt.Errorf("decode response data: %w", err)
	}
	return env.Meta, nil
}

func remoteMessage(raw []byte, fallback string) string {
	var re remoteError
	if err := json.Unmarshal(raw, &re); err == nil && len(re.Errors) > 0 && re.Errors[0].Message != "" {
		return re.Errors[0].Message
	}
	return fallback
}
