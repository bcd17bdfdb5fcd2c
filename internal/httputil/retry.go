// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides Sender decorators layered outside the
// conversion client: retry on rate limiting and static request headers.
package httputil

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pdf2text/pkg/client"
)

// RetryBaseDelay controls the base duration for exponential backoff on
// HTTP 429 responses. Tests override this to avoid real sleeps.
var RetryBaseDelay = 10 * time.Second

const defaultMaxRetries = 5

// RetrySender retries a request on HTTP 429 (Too Many Requests) with
// exponential backoff. The delay starts at RetryBaseDelay and doubles each
// attempt: 10 s, 20 s, 40 s, 80 s, 160 s.
//
// When MaxRetries is 0 the default (5) is used. On each 429 the response
// body is drained and closed before sleeping. If the request context is
// cancelled during a backoff wait Do returns ctx.Err(). After exhausting
// retries the last 429 response is returned so the caller can classify it.
type RetrySender struct {
	Next       client.Sender
	MaxRetries int
	Log        zerolog.Logger
}

// NewRetrySender wraps next. A negative maxRetries disables retrying.
func NewRetrySender(next client.Sender, maxRetries int, log zerolog.Logger) *RetrySender {
	return &RetrySender{Next: next, MaxRetries: maxRetries, Log: log}
}

// Do implements client.Sender.
func (s *RetrySender) Do(req *http.Request) (*http.Response, error) {
	maxRetries := s.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	}
	ctx := req.Context()

	for attempt := 0; ; attempt++ {
		attemptReq, err := rewind(req, attempt)
		if err != nil {
			return nil, err
		}

		resp, err := s.Next.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Exhausted retries: return the 429 response as-is.
		if maxRetries < 0 || attempt >= maxRetries {
			return resp, nil
		}

		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		backoff := time.Duration(math.Pow(2, float64(attempt))) * RetryBaseDelay
		s.Log.Warn().
			Dur("backoff", backoff).
			Int("attempt", attempt+1).
			Int("max_retries", maxRetries).
			Str("url", req.URL.String()).
			Msg("rate limited, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}
}

// rewind returns req for the first attempt and a clone with a fresh body
// for later ones.
func rewind(req *http.Request, attempt int) (*http.Request, error) {
	if attempt == 0 {
		return req, nil
	}
	clone := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return clone, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("retrying %s: request body cannot be replayed", req.URL)
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("retrying %s: %w", req.URL, err)
	}
	clone.Body = body
	return clone, nil
}
