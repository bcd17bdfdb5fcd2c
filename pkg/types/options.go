// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// DefaultFirstPage is the first page extracted when none is set.
const DefaultFirstPage = 1

// Option validation errors. These are caller programming errors, not
// failures reported by the conversion service.
var (
	ErrInvalidFirstPage = errors.New("invalid first page")
	ErrInvalidLastPage  = errors.New("invalid last page")
)

// ConvertOptions describes one conversion request. Values are immutable:
// fields are unexported and only the With* setters passed to
// NewConvertOptions can populate them.
//
// The zero value is valid and equals DefaultConvertOptions: first page 1,
// no last page, no password, whitespace normalization on, PLAIN format.
type ConvertOptions struct {
	// firstPage is stored minus one so the zero value means page 1.
	firstPage      int
	lastPage       int
	hasLastPage    bool
	password       string
	hasPassword    bool
	keepWhitespace bool
	format         Format
}

// ConvertOption sets one field while building a ConvertOptions.
type ConvertOption func(*ConvertOptions)

// WithFirstPage sets the first page to extract (1-based).
func WithFirstPage(n int) ConvertOption {
	return func(o *ConvertOptions) { o.firstPage = n - DefaultFirstPage }
}

// WithLastPage sets the last page to extract. Without it the service
// extracts to the end of the document.
func WithLastPage(n int) ConvertOption {
	return func(o *ConvertOptions) {
		o.lastPage = n
		o.hasLastPage = true
	}
}

// WithPassword sets the document decryption password. An empty string is
// still sent; omit the option for "no password".
func WithPassword(pw string) ConvertOption {
	return func(o *ConvertOptions) {
		o.password = pw
		o.hasPassword = true
	}
}

// WithNormalizeWhitespace controls whether runs of whitespace are collapsed.
func WithNormalizeWhitespace(on bool) ConvertOption {
	return func(o *ConvertOptions) { o.keepWhitespace = !on }
}

// WithFormat selects the output format.
func WithFormat(f Format) ConvertOption {
	return func(o *ConvertOptions) { o.format = f }
}

// DefaultConvertOptions returns the default options.
func DefaultConvertOptions() ConvertOptions {
	return ConvertOptions{format: FormatPlain}
}

// NewConvertOptions applies opts over the defaults and validates the result.
// Page bounds are checked client-side: firstPage >= 1 and, when a last page
// is set, lastPage >= firstPage.
func NewConvertOptions(opts ...ConvertOption) (ConvertOptions, error) {
	o := DefaultConvertOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if err := o.Validate(); err != nil {
		return ConvertOptions{}, err
	}
	return o, nil
}

// Validate checks the page bounds and the format. The zero value is valid.
func (o ConvertOptions) Validate() error {
	first := o.FirstPage()
	if first < 1 {
		return fmt.Errorf("%w: %d (must be >= 1)", ErrInvalidFirstPage, first)
	}
	if o.hasLastPage && o.lastPage < first {
		return fmt.Errorf("%w: %d (must be >= first page %d)", ErrInvalidLastPage, o.lastPage, first)
	}
	if !o.format.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidFormat, int(o.format))
	}
	return nil
}

// FirstPage returns the first page to extract.
func (o ConvertOptions) FirstPage() int { return o.firstPage + DefaultFirstPage }

// LastPage returns the last page and whether one was set.
func (o ConvertOptions) LastPage() (int, bool) { return o.lastPage, o.hasLastPage }

// Password returns the password and whether one was set.
func (o ConvertOptions) Password() (string, bool) { return o.password, o.hasPassword }

// NormalizeWhitespace reports whether whitespace runs are collapsed.
func (o ConvertOptions) NormalizeWhitespace() bool { return !o.keepWhitespace }

// Format returns the output format.
func (o ConvertOptions) Format() Format { return o.format }

// Fingerprint returns a stable string identifying the option values that
// affect extracted output. The password is reduced to its presence.
func (o ConvertOptions) Fingerprint() string {
	last := "end"
	if o.hasLastPage {
		last = fmt.Sprintf("%d", o.lastPage)
	}
	return fmt.Sprintf("first=%d;last=%s;password=%t;normalize=%t;format=%s",
		o.FirstPage(), last, o.hasPassword, o.NormalizeWhitespace(), o.format)
}

// Config returns the serializable form of o. The password is never
// included.
func (o ConvertOptions) Config() OptionsConfig {
	first := o.FirstPage()
	c := OptionsConfig{FirstPage: &first, Format: o.format.String()}
	if o.hasLastPage {
		last := o.lastPage
		c.LastPage = &last
	}
	normalize := o.NormalizeWhitespace()
	c.NormalizeWhitespace = &normalize
	return c
}
