// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package client submits PDF documents to a remote text-extraction service
// and returns the extracted text as a stream.
//
// A call encodes the document and its ConvertOptions as multipart/form-data,
// POSTs it to <baseURL>/extract through an injected Sender, and classifies
// the response: HTTP 200 yields the body unread, any other status yields a
// RESPONSE_ERROR carrying the diagnostic body. Failures are *Error values
// with a Kind callers can branch on.
//
// The client holds no per-call state and is safe for concurrent use when
// the Sender is. It performs no retries and sets no timeouts of its own.
package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf2text/pkg/types"
)

// extractPath is appended to the normalized base URL.
const extractPath = "extract"

// Sender sends one HTTP request and returns its response. *http.Client
// satisfies it.
type Sender interface {
	Do(req *http.Request) (*http.Response, error)
}

// errNoResponse is the cause when a Sender reports success without a
// response to read.
var errNoResponse = errors.New("sender returned no response")

// SenderFunc adapts a function to Sender.
type SenderFunc func(req *http.Request) (*http.Response, error)

// Do calls f(req).
func (f SenderFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

// Client talks to one conversion service endpoint.
type Client struct {
	target    string
	sender    Sender
	userAgent string
	log       zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithSender sets the transport. The default is http.DefaultClient.
func WithSender(s Sender) Option {
	return func(c *Client) { c.sender = s }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgent sets the User-Agent header on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New returns a client for the service rooted at baseURL. "http://host" and
// "http://host/" both target "http://host/extract".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		target: targetURL(baseURL),
		sender: http.DefaultClient,
		log:    zerolog.Nop(),
	}
	for _, fn := range opts {
		fn(c)
	}
	return c
}

func targetURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + extractPath
}

// TargetURL returns the endpoint every request is sent to.
func (c *Client) TargetURL() string { return c.target }

// Extract converts doc and returns the extracted UTF-8 text. On success the
// caller owns the returned body and must close it. On failure no body is
// returned.
//
// Invalid options are reported as a plain validation error wrapping
// types.ErrInvalidFirstPage or types.ErrInvalidLastPage, not as an *Error.
func (c *Client) Extract(ctx context.Context, doc io.Reader, opts types.ConvertOptions) (io.ReadCloser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	enc, err := encodeRequest(doc, opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.target, enc.body)
	if err != nil {
		return nil, newError(KindRequest, err, "building request for %s", c.target)
	}
	req.Header.Set("Content-Type", enc.contentType())
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	c.log.Debug().
		Str("target", c.target).
		Str("boundary", enc.boundary).
		Int("body_bytes", enc.body.Len()).
		Str("format", opts.Format().String()).
		Msg("sending conversion request")

	resp, err := c.sender.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("kind", string(KindRequest)).Msg("conversion request failed")
		return nil, newError(KindRequest, err, "sending request to %s", c.target)
	}
	if resp == nil || resp.Body == nil {
		return nil, newError(KindRequest, errNoResponse, "sending request to %s", c.target)
	}

	body, err := classify(resp)
	if err != nil {
		c.log.Debug().Int("status", resp.StatusCode).Str("kind", string(KindOf(err))).Msg("conversion rejected")
		return nil, err
	}
	c.log.Debug().Int("status", resp.StatusCode).Msg("conversion accepted")
	return body, nil
}

// ExtractFile converts the PDF at inPath and writes the text to outPath.
// It returns the number of bytes written. Both the input file and the
// response body are closed before it returns.
func (c *Client) ExtractFile(ctx context.Context, inPath, outPath string, opts types.ConvertOptions) (int64, error) {
	doc, err := ReadDocument(inPath)
	if err != nil {
		return 0, err
	}
	body, err := c.Extract(ctx, doc, opts)
	if err != nil {
		return 0, err
	}
	defer body.Close()
	return WriteStream(body, outPath)
}

// ExtractJSON converts doc and decodes the response body as a JSON object.
// The body is closed before it returns.
func (c *Client) ExtractJSON(ctx context.Context, doc io.Reader, opts types.ConvertOptions) (map[string]any, error) {
	body, err := c.Extract(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	defer body.Close()
	return DecodeJSON(body)
}
