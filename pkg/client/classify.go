// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"fmt"
	"io"
	"net/http"
)

// classify returns resp.Body untouched for HTTP 200. Any other status,
// including other 2xx codes, drains and closes the body and returns a
// RESPONSE_ERROR whose cause is a *ServiceError holding the body verbatim.
func classify(resp *http.Response) (io.ReadCloser, error) {
	if resp.StatusCode == http.StatusOK {
		return resp.Body, nil
	}

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	var cause error = &ServiceError{StatusCode: resp.StatusCode, Body: string(data)}
	if err != nil {
		cause = fmt.Errorf("reading diagnostic body after %d bytes: %w", len(data), err)
	}
	return nil, newError(KindResponse, cause, "conversion service returned HTTP %d", resp.StatusCode)
}
