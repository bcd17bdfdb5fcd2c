// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat reports an unknown output format.
var ErrInvalidFormat = errors.New("invalid format")

// Format selects the text layout the conversion service produces. The wire
// value is the member name returned by String.
type Format int

const (
	// FormatPlain is reading-order text without layout.
	FormatPlain Format = iota
	// FormatLayout keeps the physical column layout of each page.
	FormatLayout
	// FormatRaw emits text in content-stream order.
	FormatRaw
)

var formatNames = [...]string{
	FormatPlain:  "PLAIN",
	FormatLayout: "LAYOUT",
	FormatRaw:    "RAW",
}

// Formats lists every Format in declaration order.
func Formats() []Format {
	return []Format{FormatPlain, FormatLayout, FormatRaw}
}

// Valid reports whether f is a declared member.
func (f Format) Valid() bool {
	return f >= FormatPlain && int(f) < len(formatNames)
}

// String returns the canonical wire name.
func (f Format) String() string {
	if !f.Valid() {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat resolves a name case-insensitively.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats() {
		if strings.EqualFold(s, formatNames[f]) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidFormat, s, strings.Join(formatNames[:], ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, int(f))
	}
	return []byte(formatNames[f]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(b []byte) error {
	parsed, err := ParseFormat(string(b))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
