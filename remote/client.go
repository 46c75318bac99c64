package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/cenkalti/backoff/v4"

	"github.com/schemaforge/schemaforge/logger"
	"github.com/schemaforge/schemaforge/metrics"
	"github.com/schemaforge/schemaforge/schema"
)

// Client is the HTTP implementation of Service. It speaks the index management
// surface of the search service: PUT/GET/DELETE on /indexes/{name} with an
// api-version query parameter on every call.
//
// Client implements the Service interface.
type Client struct {
	cfg        *Config
	httpClient *http.Client
	log        *logger.Logger
	meter      *metrics.Metrics
}

// NewClient creates a new search service client.
// Returns the concrete *Client type.
func NewClient(cfg *Config, log *logger.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("remote: config is required")
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("remote: service endpoint is required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultConfig().APIVersion
	}
	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		log: log,
	}, nil
}

// WithMetrics attaches a metrics collector. Every call attempt is counted in
// remote_calls_total by operation and outcome.
func (c *Client) WithMetrics(m *metrics.Metrics) *Client {
	c.meter = m
	return c
}

// APIVersion reports the configured service API version.
func (c *Client) APIVersion() string {
	return c.cfg.APIVersion
}

// TryCreateIndex submits the schema as an index creation against the service.
//
// An HTTP 400 with element-level details is a semantic rejection: the details
// are normalized into structured Rejections and returned as a non-accepted
// CreateResult, not as an error. Transport faults are retried with bounded
// backoff before escalating.
func (c *Client) TryCreateIndex(ctx context.Context, s *schema.SchemaDescriptor) (*CreateResult, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return nil, &FatalError{Op: "tryCreateIndex", Err: fmt.Errorf("failed to encode schema: %w", err)}
	}

	var result *CreateResult
	op := func() error {
		status, respBody, err := c.do(ctx, http.MethodPut, c.indexURL(s.IndexName), body)
		if err != nil {
			return err // classified by do
		}
		switch {
		case status == http.StatusOK || status == http.StatusCreated:
			result = &CreateResult{Accepted: true}
			return nil
		case status == http.StatusBadRequest:
			result = &CreateResult{Rejections: c.parseRejections(respBody)}
			return nil
		default:
			return c.classifyStatus("tryCreateIndex", status, respBody)
		}
	}
	if err := c.retry(ctx, "tryCreateIndex", op); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteIndex removes an index. Deleting an index that does not exist returns
// ErrIndexNotFound, which callers typically treat as success.
func (c *Client) DeleteIndex(ctx context.Context, name string) error {
	op := func() error {
		status, respBody, err := c.do(ctx, http.MethodDelete, c.indexURL(name), nil)
		if err != nil {
			return err
		}
		switch status {
		case http.StatusOK, http.StatusNoContent:
			return nil
		case http.StatusNotFound:
			return backoff.Permanent(ErrIndexNotFound)
		default:
			return c.classifyStatus("deleteIndex", status, respBody)
		}
	}
	return c.retry(ctx, "deleteIndex", op)
}

// GetIndexSchema fetches the deployed schema of an index.
func (c *Client) GetIndexSchema(ctx context.Context, name string) (*schema.SchemaDescriptor, error) {
	var out *schema.SchemaDescriptor
	op := func() error {
		status, respBody, err := c.do(ctx, http.MethodGet, c.indexURL(name), nil)
		if err != nil {
			return err
		}
		switch status {
		case http.StatusOK:
			var s schema.SchemaDescriptor
			if err := json.Unmarshal(respBody, &s); err != nil {
				return backoff.Permanent(&FatalError{Op: "getIndexSchema", Err: fmt.Errorf("failed to decode schema: %w", err)})
			}
			out = &s
			return nil
		case http.StatusNotFound:
			return backoff.Permanent(ErrIndexNotFound)
		default:
			return c.classifyStatus("getIndexSchema", status, respBody)
		}
	}
	if err := c.retry(ctx, "getIndexSchema", op); err != nil {
		return nil, err
	}
	return out, nil
}

// indexURL builds the management URL for one index.
func (c *Client) indexURL(name string) string {
	return fmt.Sprintf("%s/indexes/%s?api-version=%s",
		c.cfg.Endpoint, url.PathEscape(name), url.QueryEscape(c.cfg.APIVersion))
}

// do executes one HTTP request and reads the full body. Network-level errors
// come back unwrapped so retry can treat them as transient.
func (c *Client) do(ctx context.Context, method, u string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return 0, nil, backoff.Permanent(&FatalError{Op: method, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("api-key", c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, backoff.Permanent(ctx.Err())
		}
		return 0, nil, err // network fault: retryable
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// classifyStatus converts a non-success HTTP status into retryable or
// permanent errors. 401/403 means credentials were rejected: fatal, no retry.
func (c *Client) classifyStatus(op string, status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return backoff.Permanent(&FatalError{
			Op:  op,
			Err: fmt.Errorf("authentication rejected (status %d): %s", status, string(body)),
		})
	case status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= 500:
		return fmt.Errorf("service returned status %d: %s", status, string(body))
	default:
		return backoff.Permanent(&FatalError{
			Op:  op,
			Err: fmt.Errorf("unexpected status %d: %s", status, string(body)),
		})
	}
}

// retry runs op under the configured bounded exponential backoff. Whatever is
// still failing once the budget is spent escalates as *TransientError;
// permanent errors pass through untouched.
func (c *Client) retry(ctx context.Context, opName string, op backoff.Operation) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.InitialBackoff
	b.MaxInterval = c.cfg.MaxBackoff
	b.MaxElapsedTime = 0 // bounded by retry count, not wall clock

	attempts := 0
	wrapped := func() error {
		attempts++
		err := op()
		status := "ok"
		if err != nil {
			status = "error"
		}
		c.meter.IncrementRemoteCalls(opName, status)
		if err != nil && attempts > 1 {
			c.log.Debug("retrying remote call", err, map[string]interface{}{
				"operation": opName,
				"attempt":   attempts,
			})
		}
		return err
	}

	err := backoff.Retry(wrapped,
		backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.cfg.MaxRetries)), ctx))
	if err == nil {
		return nil
	}
	if IsFatalError(err) || IsNotFoundError(err) || ctx.Err() != nil {
		return err
	}
	return &TransientError{Op: opName, Err: err}
}

// parseRejections decodes the service's error body into structured rejections.
// Two shapes are handled: element-level details, and a bare top-level message.
func (c *Client) parseRejections(body []byte) []Rejection {
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details []struct {
				Target  string `json:"target"`
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || (envelope.Error.Message == "" && len(envelope.Error.Details) == 0) {
		return []Rejection{NormalizeDiagnostic("", "", string(body))}
	}
	if len(envelope.Error.Details) == 0 {
		return []Rejection{NormalizeDiagnostic("", envelope.Error.Code, envelope.Error.Message)}
	}
	rejections := make([]Rejection, 0, len(envelope.Error.Details))
	for _, d := range envelope.Error.Details {
		rejections = append(rejections, NormalizeDiagnostic(d.Target, d.Code, d.Message))
	}
	return rejections
}

var _ Service = (*Client)(nil)
