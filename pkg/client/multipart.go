// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package client

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"

	"github.com/pdiddy/pdf2text/pkg/types"
)

// Multipart field names understood by the conversion service.
const (
	fieldFile                = "file"
	fieldFirstPage           = "firstPage"
	fieldLastPage            = "lastPage"
	fieldPassword            = "password"
	fieldNormalizeWhitespace = "normalizeWhitespace"
	fieldFormat              = "format"

	documentFilename    = "file.pdf"
	documentContentType = "application/pdf"
)

// encodedRequest is the multipart body of one conversion call.
type encodedRequest struct {
	body     *bytes.Buffer
	boundary string
}

// contentType returns the Content-Type header value for the body.
func (r *encodedRequest) contentType() string {
	return "multipart/form-data; boundary=" + r.boundary
}

// encodeRequest writes the document part followed by the option fields in
// a fixed order: file, firstPage, normalizeWhitespace, format, then
// lastPage and password when set. Unset optional fields are omitted
// entirely; the service treats a missing field as unspecified.
//
// The document is copied fully into memory before returning. A read
// failure on doc is a FILE_OPEN_ERROR.
func encodeRequest(doc io.Reader, opts types.ConvertOptions) (*encodedRequest, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, fieldFile, documentFilename))
	h.Set("Content-Type", documentContentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("creating document part: %w", err)
	}
	if _, err := io.Copy(part, doc); err != nil {
		return nil, newError(KindFileOpen, err, "reading document source")
	}

	fields := []struct{ name, value string }{
		{fieldFirstPage, strconv.Itoa(opts.FirstPage())},
		{fieldNormalizeWhitespace, strconv.FormatBool(opts.NormalizeWhitespace())},
		{fieldFormat, opts.Format().String()},
	}
	if last, ok := opts.LastPage(); ok {
		fields = append(fields, struct{ name, value string }{fieldLastPage, strconv.Itoa(last)})
	}
	if pw, ok := opts.Password(); ok {
		fields = append(fields, struct{ name, value string }{fieldPassword, pw})
	}
	for _, f := range fields {
		if err := mw.WriteField(f.name, f.value); err != nil {
			return nil, fmt.Errorf("writing field %s: %w", f.name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}
	return &encodedRequest{body: &buf, boundary: mw.Boundary()}, nil
}
