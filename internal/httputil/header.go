// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"

	"github.com/pdiddy/pdf2text/pkg/client"
)

// HeaderSender sets fixed headers on every request before passing it on.
// Headers already present on the request are left alone.
type HeaderSender struct {
	Next    client.Sender
	Headers http.Header
}

// WithBearerToken wraps next so every request carries
// "Authorization: Bearer <token>". An empty token returns next unchanged.
func WithBearerToken(next client.Sender, token string) client.Sender {
	if token == "" {
		return next
	}
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	return &HeaderSender{Next: next, Headers: h}
}

// Do implements client.Sender.
func (s *HeaderSender) Do(req *http.Request) (*http.Response, error) {
	var clone *http.Request
	for name, values := range s.Headers {
		if req.Header.Get(name) != "" {
			continue
		}
		if clone == nil {
			clone = req.Clone(req.Context())
		}
		for _, v := range values {
			clone.Header.Add(name, v)
		}
	}
	if clone == nil {
		return s.Next.Do(req)
	}
	return s.Next.Do(clone)
}
