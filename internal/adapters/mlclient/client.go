// Package mlclient calls a remote classifier over its bare http wire
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"jobmail/internal/core/features"
	"jobmail/internal/core/label"
	perr "jobmail/internal/platform/errors"
	"jobmail/internal/platform/logger"
)

const (
	// BodyLimit caps the body runes sent upstream
	BodyLimit = 2000

	defaultBaseURL   = "http://localhost:8000"
	defaultTimeout   = 10 * time.Second
	defaultMaxRetry  = 2
	defaultRetryBase = 250 * time.Millisecond
	defaultTripAfter = 5
)

// Options configures the Client
type Options struct {
	BaseURL string
	Timeout time.Duration

	// retries cover transport errors and 502/503/504 only
	MaxRetries int
	RetryBase  time.Duration

	// TripAfter consecutive failed calls open the breaker
	TripAfter   int
	OpenTimeout time.Duration
}

// Request is the message sent upstream
type Request struct {
	Subject string `json:"subject"`
	From    string `json:"from"`
	Body    string `json:"body"`
}

// Result mirrors the remote classification payload
type Result struct {
	IsJobRelated bool        `json:"is_job_related"`
	EventType    label.Label `json:"event_type"`
	Confidence   float64     `json:"confidence"`
	Reason       string      `json:"reason"`
	ModelVersion string      `json:"model_version"`
}

// Client is a retrying classifier client behind a circuit breaker
type Client struct {
	http  *http.Client
	opts  Options
	cb    *gobreaker.CircuitBreaker
	log   logger.Logger
	sleep func(time.Duration)
}

// New creates a Client with defaults filled in
func New(o Options) *Client {
	if o.BaseURL == "" {
		o.BaseURL = defaultBaseURL
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	} else if o.MaxRetries == 0 {
		o.MaxRetries = defaultMaxRetry
	}
	if o.RetryBase <= 0 {
		o.RetryBase = defaultRetryBase
	}
	if o.TripAfter <= 0 {
		o.TripAfter = defaultTripAfter
	}
	if o.OpenTimeout <= 0 {
		o.OpenTimeout = 30 * time.Second
	}

	c := &Client{
		http:  &http.Client{Timeout: o.Timeout},
		opts:  o,
		log:   *logger.Named("mlclient"),
		sleep: time.Sleep,
	}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ml-classifier",
		MaxRequests: 3,
		Interval:    60 * time.Second,
		Timeout:     o.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(o.TripAfter)
		},
		// caller mistakes say nothing about upstream health
		IsSuccessful: func(err error) bool {
			switch perr.CodeOf(err) {
			case perr.ErrorCodeInvalidArgument, perr.ErrorCodeValidation:
				return true
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	})
	return c
}

// State reports the breaker state
func (c *Client) State() gobreaker.State { return c.cb.State() }

// Classify posts one message to {base}/classify; the body is cut to BodyLimit runes
func (c *Client) Classify(ctx context.Context, req Request) (Result, error) {
	req.Body = features.Truncate(req.Body, BodyLimit)
	payload, err := json.Marshal(req)
	if err != nil {
		return Result{}, perr.Wrap(err, perr.ErrorCodeJSON, "encode classify request")
	}

	out, err := c.cb.Execute(func() (any, error) {
		resp, err := c.do(ctx, http.MethodPost, "/classify", payload)
		if err != nil {
			return nil, err
		}
		defer func() { _ = resp.Body.Close() }()

		var res Result
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&res); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode classify response")
		}
		if !res.EventType.Valid() {
			return nil, perr.WithField(perr.Newf(perr.ErrorCodeUnknown, "classifier returned unknown label %q", res.EventType), "event_type")
		}
		return res, nil
	})
	if err != nil {
		return Result{}, breakerErr(err)
	}
	return out.(Result), nil
}

// Health calls GET {base}/health
func (c *Client) Health(ctx context.Context) error {
	_, err := c.cb.Execute(func() (any, error) {
		resp, err := c.do(ctx, http.MethodGet, "/health", nil)
		if err != nil {
			return nil, err
		}
		_ = drainAndClose(resp.Body)
		return nil, nil
	})
	return breakerErr(err)
}

func breakerErr(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "classifier circuit open")
	}
	return err
}

// do sends one request with retries on transient failures; 2xx responses are returned open
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	url := c.opts.BaseURL + path
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "classifier call canceled")
		}
		var rd io.Reader
		if body != nil {
			rd = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, rd)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "classifier request %s", url)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt >= c.opts.MaxRetries {
				return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "classifier %s %s", method, path)
			}
			c.retry(attempt, "transport error")
			continue
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return resp, nil
		case resp.StatusCode == http.StatusBadGateway ||
			resp.StatusCode == http.StatusServiceUnavailable ||
			resp.StatusCode == http.StatusGatewayTimeout:
			_ = drainAndClose(resp.Body)
			if attempt >= c.opts.MaxRetries {
				return nil, perr.Newf(perr.ErrorCodeUnavailable, "classifier unavailable: status %d", resp.StatusCode)
			}
			c.retry(attempt, "transient status")
		case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
			tail := readTail(resp.Body)
			return nil, perr.Newf(perr.ErrorCodeInvalidArgument, "classifier rejected request: status %d %s", resp.StatusCode, tail)
		case resp.StatusCode == http.StatusTooManyRequests:
			_ = drainAndClose(resp.Body)
			return nil, perr.New(perr.ErrorCodeTooManyRequests, "classifier rate limited")
		default:
			tail := readTail(resp.Body)
			return nil, perr.Newf(perr.ErrorCodeUnknown, "classifier unexpected status %d %s", resp.StatusCode, tail)
		}
	}
}

func (c *Client) retry(attempt int, why string) {
	back := c.opts.RetryBase << uint(attempt)
	if back > 5*time.Second {
		back = 5 * time.Second
	}
	c.log.Warn().Dur("retry_in", back).Int("attempt", attempt).Msg("classifier " + why + "; retrying")
	c.sleep(back)
}

func readTail(rc io.ReadCloser) string {
	b, _ := io.ReadAll(io.LimitReader(rc, 512))
	_ = rc.Close()
	return strings.TrimSpace(string(b))
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 64<<10))
	return rc.Close()
}
