package client

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/de-tools/tally-gateway/pkg/tally/envelope"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultRetryWait = 500 * time.Millisecond
)

type Config struct {
	BaseURL string
	Timeout time.Duration
	// RetryCount applies to exports only and only to connection failures.
	RetryCount int
	RetryWait  time.Duration
}

// Recorder receives one observation per outbound call.
type Recorder interface {
	Record(operation, outcome string, duration time.Duration)
}

type Client struct {
	http     *resty.Client
	cfg      Config
	addr     string
	recorder Recorder
}

func New(cfg Config, recorder Recorder) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryWait <= 0 {
		cfg.RetryWait = DefaultRetryWait
	}

	addr := cfg.BaseURL
	if u, err := url.Parse(cfg.BaseURL); err == nil && u.Host != "" {
		addr = u.Host
	}

	return &Client{
		http: resty.New().
			SetTimeout(cfg.Timeout).
			SetHeader("Content-Type", "application/xml"),
		cfg:      cfg,
		addr:     addr,
		recorder: recorder,
	}
}

func (c *Client) Addr() string {
	return c.addr
}

// Close drops idle keep-alive connections to Tally.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// Send posts an export request. Connection failures are retried up to RetryCount
// times with exponential backoff; everything else fails on the first attempt.
func (c *Client) Send(ctx context.Context, operation, payload string) (envelope.Node, error) {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.cfg.RetryWait

	var node envelope.Node
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(max(c.cfg.RetryCount, 0))), ctx)
	err := backoff.Retry(func() error {
		var err error
		node, err = c.post(ctx, operation, payload)
		var connErr *ConnectionError
		if err != nil && !errors.As(err, &connErr) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)

	return node, err
}

// Import posts a write request exactly once. Tally imports are not idempotent.
func (c *Client) Import(ctx context.Context, operation, payload string) (envelope.Node, error) {
	return c.post(ctx, operation, payload)
}

func (c *Client) post(ctx context.Context, operation, payload string) (node envelope.Node, err error) {
	logger := zerolog.Ctx(ctx).With().
		Str("operation", operation).
		Str("tally", c.addr).
		Logger()
	start := time.Now()

	defer func() {
		c.record(operation, outcome(err), time.Since(start))
		if err != nil {
			logger.Warn().Err(err).Dur("elapsed", time.Since(start)).Msg("tally request failed")
		}
	}()

	logger.Debug().Int("bytes", len(payload)).Msg("sending request to tally")

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		Post(c.cfg.BaseURL)
	if err != nil {
		return envelope.Node{}, c.classify(err)
	}

	logger.Debug().
		Int("status", resp.StatusCode()).
		Int("bytes", len(resp.Body())).
		Dur("elapsed", time.Since(start)).
		Msg("tally responded")

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return envelope.Node{}, &TransportError{Kind: KindStatus, StatusCode: resp.StatusCode()}
	}

	node, err = envelope.Parse(resp.Body())
	if err != nil {
		return envelope.Node{}, &TransportError{Kind: KindParse, Err: err}
	}
	return node, nil
}

func (c *Client) classify(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &TransportError{Kind: KindTimeout, Timeout: c.cfg.Timeout, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.As(err, &dnsErr) {
		return &ConnectionError{Addr: c.addr, Err: err}
	}

	return &TransportError{Kind: KindRequest, Err: err}
}

func (c *Client) record(operation, result string, d time.Duration) {
	if c.recorder == nil {
		return
	}
	c.recorder.Record(operation, result, d)
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	var connErr *ConnectionError
	if errors.As(err, &connErr) {
		return "unreachable"
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return string(transportErr.Kind)
	}
	return "error"
}
