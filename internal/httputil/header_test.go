// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2text/pkg/client"
)

func recordingSender(got **http.Request) client.Sender {
	return client.SenderFunc(func(req *http.Request) (*http.Response, error) {
		*got = req
		return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader(""))}, nil
	})
}

func TestWithBearerToken(t *testing.T) {
	var got *http.Request
	next := recordingSender(&got)

	s := WithBearerToken(next, "tok-123")
	req, err := http.NewRequest(http.MethodPost, "http://host/extract", nil)
	require.NoError(t, err)

	_, err = s.Do(req)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", got.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("Authorization"), "caller's request must not be mutated")
}

func TestWithBearerToken_EmptyToken(t *testing.T) {
	var got *http.Request
	next := recordingSender(&got)
	_, wrapped := WithBearerToken(next, "").(*HeaderSender)
	assert.False(t, wrapped)
}

func TestHeaderSender_KeepsExisting(t *testing.T) {
	var got *http.Request
	s := &HeaderSender{
		Next:    recordingSender(&got),
		Headers: http.Header{"User-Agent": {"pdf2text/1"}},
	}
	req, err := http.NewRequest(http.MethodPost, "http://host/extract", nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")

	_, err = s.Do(req)
	require.NoError(t, err)
	assert.Same(t, req, got)
	assert.Equal(t, "custom", got.Header.Get("User-Agent"))
}
