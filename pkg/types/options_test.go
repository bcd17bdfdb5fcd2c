// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestDefaultConvertOptions(t *testing.T) {
	for name, o := range map[string]ConvertOptions{
		"default":    DefaultConvertOptions(),
		"zero value": {},
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, o.Validate())
			assert.Equal(t, 1, o.FirstPage())
			_, hasLast := o.LastPage()
			assert.False(t, hasLast)
			_, hasPW := o.Password()
			assert.False(t, hasPW)
			assert.True(t, o.NormalizeWhitespace())
			assert.Equal(t, FormatPlain, o.Format())
		})
	}
}

func TestNewConvertOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    []ConvertOption
		wantErr error
	}{
		{"first page 1", []ConvertOption{WithFirstPage(1)}, nil},
		{"range", []ConvertOption{WithFirstPage(2), WithLastPage(9)}, nil},
		{"single page", []ConvertOption{WithFirstPage(4), WithLastPage(4)}, nil},
		{"last page with default first", []ConvertOption{WithLastPage(1)}, nil},
		{"first page zero", []ConvertOption{WithFirstPage(0)}, ErrInvalidFirstPage},
		{"first page negative", []ConvertOption{WithFirstPage(-3)}, ErrInvalidFirstPage},
		{"last before first", []ConvertOption{WithFirstPage(5), WithLastPage(4)}, ErrInvalidLastPage},
		{"last page zero", []ConvertOption{WithLastPage(0)}, ErrInvalidLastPage},
		{"unknown format", []ConvertOption{WithFormat(Format(42))}, ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConvertOptions(tt.opts...)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConvertOptions_Accessors(t *testing.T) {
	o, err := NewConvertOptions(
		WithFirstPage(2),
		WithLastPage(7),
		WithPassword(""),
		WithNormalizeWhitespace(false),
		WithFormat(FormatLayout),
	)
	require.NoError(t, err)

	assert.Equal(t, 2, o.FirstPage())
	last, ok := o.LastPage()
	assert.True(t, ok)
	assert.Equal(t, 7, last)
	pw, ok := o.Password()
	assert.True(t, ok, "an explicit empty password is still set")
	assert.Empty(t, pw)
	assert.False(t, o.NormalizeWhitespace())
	assert.Equal(t, FormatLayout, o.Format())
}

func TestConvertOptions_ValueSemantics(t *testing.T) {
	base, err := NewConvertOptions(WithFirstPage(3))
	require.NoError(t, err)

	derived, err := NewConvertOptions(WithFirstPage(5))
	require.NoError(t, err)

	assert.Equal(t, 3, base.FirstPage())
	assert.Equal(t, 5, derived.FirstPage())
}

func TestConvertOptions_Fingerprint(t *testing.T) {
	a, _ := NewConvertOptions(WithPassword("one"))
	b, _ := NewConvertOptions(WithPassword("two"))
	c, _ := NewConvertOptions(WithLastPage(3))

	assert.Equal(t, a.Fingerprint(), b.Fingerprint(), "password value must not leak into the fingerprint")
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Equal(t, "first=1;last=end;password=false;normalize=true;format=PLAIN", DefaultConvertOptions().Fingerprint())
}

func TestOptionsConfig_ConvertOptions(t *testing.T) {
	const doc = `
first_page: 2
last_page: 10
normalize_whitespace: false
format: layout
`
	var cfg OptionsConfig
	require.NoError(t, yaml.Unmarshal([]byte(doc), &cfg))

	o, err := cfg.ConvertOptions()
	require.NoError(t, err)
	assert.Equal(t, 2, o.FirstPage())
	last, ok := o.LastPage()
	assert.True(t, ok)
	assert.Equal(t, 10, last)
	assert.False(t, o.NormalizeWhitespace())
	assert.Equal(t, FormatLayout, o.Format())

	empty, err := OptionsConfig{}.ConvertOptions()
	require.NoError(t, err)
	assert.Equal(t, DefaultConvertOptions(), empty)

	zero := 0
	_, err = OptionsConfig{FirstPage: &zero}.ConvertOptions()
	assert.ErrorIs(t, err, ErrInvalidFirstPage, "an explicit page 0 is not treated as unset")

	_, err = OptionsConfig{Format: "docx"}.ConvertOptions()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
