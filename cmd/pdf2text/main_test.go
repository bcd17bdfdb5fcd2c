// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2text/internal/history"
	"github.com/pdiddy/pdf2text/pkg/types"
)

func newOptionsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addOptionFlags(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestOptionsFromFlags(t *testing.T) {
	first, last := 2, 9
	base := types.OptionsConfig{FirstPage: &first, LastPage: &last, Format: "layout"}

	t.Run("config values kept when flags unset", func(t *testing.T) {
		opts, err := optionsFromFlags(newOptionsCmd(t), base)
		require.NoError(t, err)
		assert.Equal(t, 2, opts.FirstPage())
		got, ok := opts.LastPage()
		assert.True(t, ok)
		assert.Equal(t, 9, got)
		assert.Equal(t, types.FormatLayout, opts.Format())
	})

	t.Run("flags override config", func(t *testing.T) {
		cmd := newOptionsCmd(t, "--first-page=3", "--last-page=4", "--password=pw",
			"--normalize-whitespace=false", "--format=raw")
		opts, err := optionsFromFlags(cmd, base)
		require.NoError(t, err)
		assert.Equal(t, 3, opts.FirstPage())
		got, _ := opts.LastPage()
		assert.Equal(t, 4, got)
		pw, ok := opts.Password()
		assert.True(t, ok)
		assert.Equal(t, "pw", pw)
		assert.False(t, opts.NormalizeWhitespace())
		assert.Equal(t, types.FormatRaw, opts.Format())
	})

	t.Run("invalid range rejected", func(t *testing.T) {
		_, err := optionsFromFlags(newOptionsCmd(t, "--first-page=10"), base)
		assert.ErrorIs(t, err, types.ErrInvalidLastPage)
	})

	t.Run("page zero rejected for both bounds", func(t *testing.T) {
		_, err := optionsFromFlags(newOptionsCmd(t, "--first-page=0"), types.OptionsConfig{})
		assert.ErrorIs(t, err, types.ErrInvalidFirstPage)

		_, err = optionsFromFlags(newOptionsCmd(t, "--last-page=0"), types.OptionsConfig{})
		assert.ErrorIs(t, err, types.ErrInvalidLastPage)
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		_, err := optionsFromFlags(newOptionsCmd(t, "--format=html"), types.OptionsConfig{})
		assert.ErrorIs(t, err, types.ErrInvalidFormat)
	})
}

func TestNewClient(t *testing.T) {
	_, err := newClient(types.ClientConfig{}, zerolog.Nop())
	assert.Error(t, err)

	t.Setenv("PDF2TEXT_SERVICE_TOKEN", "")

	// The .secrets/ lookup is relative to the working directory.
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".secrets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".secrets", "service-token"), []byte("tok\n"), 0o600))
	t.Chdir(dir)

	var gotAuth, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotUA = r.Header.Get("User-Agent")
		io.WriteString(w, "text")
	}))
	defer ts.Close()

	c, err := newClient(types.ClientConfig{
		BaseURL:    ts.URL,
		HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "pdf2text/test", MaxRetries: 2},
	}, zerolog.Nop())
	require.NoError(t, err)

	body, err := c.Extract(context.Background(), bytes.NewReader([]byte("%PDF")), types.DefaultConvertOptions())
	require.NoError(t, err)
	defer body.Close()

	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "pdf2text/test", gotUA)
}

func TestFormatHistory(t *testing.T) {
	var empty bytes.Buffer
	require.NoError(t, formatHistory(&empty, nil, false))
	assert.Contains(t, empty.String(), "No conversions recorded.")

	var emptyJSON bytes.Buffer
	require.NoError(t, formatHistory(&emptyJSON, nil, true))
	assert.JSONEq(t, `[]`, emptyJSON.String())

	entries := []history.Entry{{
		ID:          "id-1",
		DocumentID:  "a-very-long-document-identifier-name",
		Status:      types.ConversionFailed,
		ErrorKind:   "RESPONSE_ERROR",
		Error:       "conversion service returned HTTP 500: boom",
		ConvertedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}}
	var table bytes.Buffer
	require.NoError(t, formatHistory(&table, entries, false))
	out := table.String()
	assert.Contains(t, out, "2026-05-01 09:30:00")
	assert.Contains(t, out, "a-very-long-document-...")
	assert.Contains(t, out, "RESPONSE_ERROR")
	assert.Contains(t, out, "1 entries")
}
