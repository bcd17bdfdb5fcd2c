// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionStatus indicates the state of PDF-to-text conversion for a document.
type ConversionStatus string

const (
	ConversionNone    ConversionStatus = "none"
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// Document is one PDF queued for batch conversion.
type Document struct {
	// ID is a slug derived from the file name (e.g. "2301.07041").
	ID string `json:"id" yaml:"id"`

	// PDFPath is the local filesystem path to the PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// TextPath is where the extracted text is written.
	TextPath string `json:"text_path,omitempty" yaml:"text_path,omitempty"`
}

// Sidecar is the metadata written next to an extracted text file.
type Sidecar struct {
	DocumentID  string        `json:"document_id" yaml:"document_id"`
	SourcePDF   string        `json:"source_pdf" yaml:"source_pdf"`
	SHA256      string        `json:"sha256" yaml:"sha256"`
	Options     OptionsConfig `json:"options" yaml:"options"`
	Bytes       int64         `json:"bytes" yaml:"bytes"`
	ConvertedAt time.Time     `json:"converted_at" yaml:"converted_at"`
}
