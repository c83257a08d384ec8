// Package reviewapi submits code to the remote review service and
// normalizes whatever it answers with.
package reviewapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/coderev/internal/core/logging"
	"github.com/hay-kot/coderev/internal/core/review"
)

const (
	defaultAccept = "text/event-stream, application/json"
	readChunkSize = 4 << 10
	maxErrorBody  = 2 << 10
)

// ProgressFunc is called after each chunk of the response body is read
// with the total number of bytes received so far.
type ProgressFunc func(received int)

// Client posts review requests to a single endpoint.
type Client struct {
	endpoint string
	prompt   string
	language string
	accept   string
	http     *http.Client
	timeout  time.Duration
	progress ProgressFunc
	log      zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithPrompt sets the instruction prefix placed before the code.
func WithPrompt(prompt string) Option {
	return func(c *Client) { c.prompt = prompt }
}

// WithLanguage sets the language tag of the code fence.
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithAccept overrides the Accept header.
func WithAccept(accept string) Option {
	return func(c *Client) {
		if accept != "" {
			c.accept = accept
		}
	}
}

// WithTimeout bounds the whole request. Zero means no timeout. It applies
// to a copy of the HTTP client, so a client passed to WithHTTPClient is
// never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithProgress sets the default progress callback used by Submit.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) { c.progress = fn }
}

// New creates a client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		prompt:   review.DefaultPrompt,
		accept:   defaultAccept,
		http:     &http.Client{},
		log:      logging.Component("reviewapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Endpoint returns the URL requests are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit sends code for review using the client's default progress callback.
func (c *Client) Submit(ctx context.Context, code string) (*review.Outcome, error) {
	return c.SubmitFunc(ctx, code, c.progress)
}

// SubmitFunc sends code for review, calling progress as the body arrives.
// Blank code fails with review.ErrEmptyCode before any network call.
// Errors are one of review.ErrEmptyCode, *review.TransportError,
// *review.StatusError or review.ErrEmptyResponse.
func (c *Client) SubmitFunc(ctx context.Context, code string, progress ProgressFunc) (*review.Outcome, error) {
	req, err := review.NewRequest(code, c.prompt, c.language)
	if err != nil {
		return nil, err
	}

	requestID := logging.NewRequestID()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithEndpoint(ctx, c.endpoint)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &review.TransportError{Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", c.accept)

	c.log.Info().Ctx(ctx).
		Int("code_bytes", len(code)).
		Msg("submitting code for review")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.log.Error().Ctx(ctx).Err(err).Msg("review request failed")
		return nil, &review.TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp.Body, progress)
	if err != nil {
		c.log.Error().Ctx(ctx).Err(err).Msg("reading review response failed")
		return nil, &review.TransportError{Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.Debug().Ctx(ctx).
		Int("status", resp.StatusCode).
		Str("content_type", resp.Header.Get("Content-Type")).
		Int("body_bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("review response received")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Ctx(ctx).Int("status", resp.StatusCode).Msg("review service returned error status")
		return nil, &review.StatusError{Code: resp.StatusCode, Body: truncate(body, maxErrorBody)}
	}

	if strings.TrimSpace(body) == "" {
		return nil, review.ErrEmptyResponse
	}

	result := review.ParseResult(body)
	c.log.Info().Ctx(ctx).
		Str("shape", result.Shape).
		Int("content_bytes", len(result.Content)).
		Msg("review normalized")

	return &review.Outcome{
		RequestID: requestID,
		Result:    result,
		Raw:       body,
	}, nil
}

// readBody reads r to completion in fixed-size chunks so progress can be
// reported while a stream is still arriving.
func readBody(r io.Reader, progress ProgressFunc) (string, error) {
	var (
		b   strings.Builder
		buf = make([]byte, readChunkSize)
	)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			b.Write(buf[:n])
			if progress != nil {
				progress(b.Len())
			}
		}
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
