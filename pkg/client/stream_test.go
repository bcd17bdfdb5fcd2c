// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pdf2text/pkg/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.pdf", "%PDF-1.7 contents")

	doc, err := ReadDocument(path)
	require.NoError(t, err)

	data, err := io.ReadAll(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 contents", string(data))

	// The handle is already released, so the file can be removed.
	require.NoError(t, os.Remove(path))
}

func TestReadDocument_Errors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string {
			return filepath.Join(t.TempDir(), "nope.pdf")
		}},
		{"directory", func(t *testing.T) string {
			return t.TempDir()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(tt.path(t))
			require.Error(t, err)
			assert.Equal(t, KindFileOpen, KindOf(err))
			assert.ErrorIs(t, err, ErrFileOpen)
		})
	}
}

func TestWriteStream(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	n, err := WriteStream(strings.NewReader("hello text"), out)
	require.NoError(t, err)
	assert.Equal(t, int64(len("hello text")), n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello text", string(data))
}

func TestWriteStream_Truncates(t *testing.T) {
	dir := t.TempDir()
	out := writeFile(t, dir, "out.txt", "a much longer previous content")

	_, err := WriteStream(strings.NewReader("short"), out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "short", string(data))
}

func TestWriteStream_Errors(t *testing.T) {
	t.Run("missing parent directory", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "missing", "out.txt")
		_, err := WriteStream(strings.NewReader("x"), out)
		require.Error(t, err)
		assert.Equal(t, KindFileWrite, KindOf(err))
	})

	t.Run("parent is a file", func(t *testing.T) {
		dir := t.TempDir()
		parent := writeFile(t, dir, "plain", "not a dir")
		_, err := WriteStream(strings.NewReader("x"), filepath.Join(parent, "out.txt"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrFileWrite)
	})

	t.Run("source fails mid-stream", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "out.txt")
		src := io.MultiReader(strings.NewReader("partial"), failingReader{err: errors.New("connection reset")})

		n, err := WriteStream(src, out)
		require.Error(t, err)
		assert.Equal(t, KindFileWrite, KindOf(err))
		assert.Equal(t, int64(len("partial")), n)

		assert.NoFileExists(t, out)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "temporary file removed")
	})

	t.Run("failure keeps previous output", func(t *testing.T) {
		dir := t.TempDir()
		out := writeFile(t, dir, "out.txt", "previous text")
		src := io.MultiReader(strings.NewReader("new"), failingReader{err: errors.New("connection reset")})

		_, err := WriteStream(src, out)
		require.Error(t, err)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "previous text", string(data))
	})
}

func TestDecodeJSON(t *testing.T) {
	got, err := DecodeJSON(strings.NewReader(`{"a":1}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, got)

	_, err = DecodeJSON(strings.NewReader("not json"))
	require.Error(t, err)
	assert.Equal(t, KindJSONDecode, KindOf(err))

	_, err = DecodeJSON(strings.NewReader(`[1,2]`))
	assert.ErrorIs(t, err, ErrJSONDecode)

	got, err = DecodeJSON(strings.NewReader(`null`))
	assert.Equal(t, KindJSONDecode, KindOf(err))
	assert.Nil(t, got)

	got, err = DecodeJSON(strings.NewReader(`{}`))
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.pdf", "%PDF")
	out := filepath.Join(dir, "in.txt")

	s := &fakeSender{status: http.StatusOK, body: "converted body"}
	c := New("http://host", WithSender(s))

	n, err := c.ExtractFile(context.Background(), in, out, types.DefaultConvertOptions())
	require.NoError(t, err)
	assert.Equal(t, int64(len("converted body")), n)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "converted body", string(data))
}

func TestExtractFile_Failures(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "in.pdf", "%PDF")

	tests := []struct {
		name     string
		in, out  string
		sender   *fakeSender
		wantKind Kind
	}{
		{"missing input", filepath.Join(dir, "missing.pdf"), filepath.Join(dir, "a.txt"), &fakeSender{status: http.StatusOK}, KindFileOpen},
		{"service rejects", in, filepath.Join(dir, "b.txt"), &fakeSender{status: http.StatusNotFound, body: "not found"}, KindResponse},
		{"transport fails", in, filepath.Join(dir, "c.txt"), &fakeSender{err: errors.New("timeout")}, KindRequest},
		{"unwritable output", in, filepath.Join(dir, "no", "d.txt"), &fakeSender{status: http.StatusOK, body: "x"}, KindFileWrite},
		{"body fails mid-stream", in, filepath.Join(dir, "e.txt"), &fakeSender{status: http.StatusOK, body: "half", bodyErr: errors.New("unexpected EOF")}, KindFileWrite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("http://host", WithSender(tt.sender))
			_, err := c.ExtractFile(context.Background(), tt.in, tt.out, types.DefaultConvertOptions())
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			assert.NoFileExists(t, tt.out)
		})
	}
}

func TestError_Format(t *testing.T) {
	cause := errors.New("root cause")
	e := &Error{Kind: KindRequest, Msg: "sending request", Err: cause}
	assert.Equal(t, "sending request: root cause", e.Error())
	assert.Same(t, cause, errors.Unwrap(e))

	bare := &Error{Kind: KindFileWrite}
	assert.Equal(t, "FILE_WRITE_ERROR", bare.Error())

	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}
