package index

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// maxResponseSize caps how much of an acknowledgment body is read.
	maxResponseSize = 1 << 20

	userAgent = "inventory-sync/1.0"
)

// Client defines the index operations used by the synchronizer.
type Client interface {
	// Upsert creates or fully replaces the document addressed by doc.ID.
	Upsert(ctx context.Context, doc Document) (Result, error)
	// Ping verifies that the index endpoint answers.
	Ping(ctx context.Context) error
}

// HTTPClient upserts documents over HTTP.
type HTTPClient struct {
	cfg           Config
	http          *http.Client
	retryInterval time.Duration
}

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.http = c
	}
}

// WithRetryInterval sets the initial backoff between retries.
func WithRetryInterval(d time.Duration) Option {
	return func(h *HTTPClient) {
		h.retryInterval = d
	}
}

// NewClient creates a new index client based on the configuration.
func NewClient(cfg Config, opts ...Option) (*HTTPClient, error) {
	if cfg.URL == "" {
		return nil, errors.New("index url is required")
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid index url: %w", err)
	}

	timeout := cfg.Timeout()
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	c := &HTTPClient{
		cfg: cfg,
		http: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		retryInterval: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// DocumentURL builds {url}/{index}/{docType}/{id}.
func (c *HTTPClient) DocumentURL(id int64) string {
	return fmt.Sprintf("%s/%s/%s/%d",
		strings.TrimRight(c.cfg.URL, "/"),
		url.PathEscape(c.cfg.IndexName()),
		url.PathEscape(c.cfg.DocTypeName()),
		id)
}

// Upsert sends the document with full-replace semantics.
// Transport errors and retryable statuses are retried with exponential backoff.
func (c *HTTPClient) Upsert(ctx context.Context, doc Document) (Result, error) {
	body, err := json.Marshal(doc.Fields)
	if err != nil {
		return Result{}, fmt.Errorf("failed to encode document %d: %w", doc.ID, err)
	}
	endpoint := c.DocumentURL(doc.ID)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.retryInterval
	b.MaxInterval = c.cfg.Timeout()

	maxTries := c.cfg.MaxRetries + 1
	if maxTries < 1 {
		maxTries = 1
	}

	return backoff.Retry(ctx, func() (Result, error) {
		res, err := c.put(ctx, endpoint, body)
		if err != nil {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) && !httpErr.Retryable() {
				return Result{}, backoff.Permanent(err)
			}
			return Result{}, err
		}
		if res.ID == "" {
			res.ID = strconv.FormatInt(doc.ID, 10)
		}
		return res, nil
	}, backoff.WithBackOff(b), backoff.WithMaxTries(uint(maxTries)))
}

func (c *HTTPClient) put(ctx context.Context, endpoint string, body []byte) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = resp.Status
		}
		return Result{}, NewHTTPError(resp.StatusCode, endpoint, msg)
	}

	var ack acknowledgment
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ack); err != nil {
			return Result{}, fmt.Errorf("failed to decode acknowledgment: %w", err)
		}
	}

	return Result{ID: ack.ID, Outcome: outcomeOf(ack, resp.StatusCode)}, nil
}

func outcomeOf(ack acknowledgment, status int) Outcome {
	switch {
	case ack.Created != nil:
		if *ack.Created {
			return OutcomeCreated
		}
		return OutcomeUpdated
	case ack.Result != "":
		if ack.Result == string(OutcomeCreated) {
			return OutcomeCreated
		}
		return OutcomeUpdated
	case status == http.StatusCreated:
		return OutcomeCreated
	default:
		return OutcomeUpdated
	}
}

// Ping issues a GET against the base URL.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach index: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewHTTPError(resp.StatusCode, c.cfg.URL, resp.Status)
	}
	return nil
}

func (c *HTTPClient) decorate(req *http.Request) {
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.cfg.HasCredentials() {
		req.SetBasicAuth(c.cfg.User, c.cfg.Password)
	}
}
