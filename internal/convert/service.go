// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"

	"github.com/pdiddy/pdf2text/pkg/client"
	"github.com/pdiddy/pdf2text/pkg/types"
)

// ServiceConverter converts PDFs through the remote conversion service.
// The client is injected at construction time.
type ServiceConverter struct {
	client *client.Client
}

// NewServiceConverter returns a Converter backed by c.
func NewServiceConverter(c *client.Client) *ServiceConverter {
	return &ServiceConverter{client: c}
}

// Convert sends the PDF at pdfPath to the service and streams the text to
// textPath.
func (s *ServiceConverter) Convert(ctx context.Context, pdfPath, textPath string, opts types.ConvertOptions) (int64, error) {
	return s.client.ExtractFile(ctx, pdfPath, textPath, opts)
}
