// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
)

var errNotObject = errors.New("body is not a JSON object")

// ReadDocument reads the file at path into memory and returns it as a
// document source. The file is closed before ReadDocument returns.
func ReadDocument(path string) (*bytes.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(KindFileOpen, err, "opening %s", path)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, newError(KindFileOpen, err, "reading %s", path)
	}
	return bytes.NewReader(data), nil
}

// WriteStream drains r into a file at path and returns the number of bytes
// written. The data goes to a temporary file in the same directory that is
// renamed over path only once r is fully drained, so a failed write never
// leaves a partial file at path. Every failure on this path is a
// FILE_WRITE_ERROR, including failure to create the file. r is not closed.
func WriteStream(r io.Reader, path string) (n int64, err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, newError(KindFileWrite, err, "creating %s", path)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	n, err = io.Copy(f, r)
	if err != nil {
		return n, newError(KindFileWrite, err, "writing %s", path)
	}
	if err = f.Chmod(0o644); err != nil {
		return n, newError(KindFileWrite, err, "writing %s", path)
	}
	if err = f.Close(); err != nil {
		return n, newError(KindFileWrite, err, "closing %s", path)
	}
	if err = os.Rename(tmp, path); err != nil {
		return n, newError(KindFileWrite, err, "replacing %s", path)
	}
	return n, nil
}

// DecodeJSON drains r and decodes it as a JSON object. Malformed input, or
// any JSON value other than an object (including null), is a
// JSON_DECODE_ERROR. r is not closed.
func DecodeJSON(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, newError(KindJSONDecode, err, "reading body")
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, newError(KindJSONDecode, err, "decoding body as JSON")
	}
	if out == nil {
		return nil, newError(KindJSONDecode, errNotObject, "decoding body as JSON")
	}
	return out, nil
}
