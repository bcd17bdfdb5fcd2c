// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for talking to the conversion service.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "pdf2text/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds the caller-side retries on HTTP 429. Zero disables
	// retrying; the client itself never retries.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// OptionsConfig is the serializable form of ConvertOptions used in config
// files and history exports. Pointer fields distinguish "unset" from zero.
type OptionsConfig struct {
	FirstPage           *int    `json:"first_page,omitempty" yaml:"first_page,omitempty" mapstructure:"first_page"`
	LastPage            *int    `json:"last_page,omitempty" yaml:"last_page,omitempty" mapstructure:"last_page"`
	Password            *string `json:"-" yaml:"-" mapstructure:"password"`
	NormalizeWhitespace *bool   `json:"normalize_whitespace,omitempty" yaml:"normalize_whitespace,omitempty" mapstructure:"normalize_whitespace"`
	Format              string  `json:"format" yaml:"format" mapstructure:"format"`
}

// ConvertOptions builds validated options from the config form. Unset
// fields keep their defaults.
func (c OptionsConfig) ConvertOptions() (ConvertOptions, error) {
	var opts []ConvertOption
	if c.FirstPage != nil {
		opts = append(opts, WithFirstPage(*c.FirstPage))
	}
	if c.LastPage != nil {
		opts = append(opts, WithLastPage(*c.LastPage))
	}
	if c.Password != nil {
		opts = append(opts, WithPassword(*c.Password))
	}
	if c.NormalizeWhitespace != nil {
		opts = append(opts, WithNormalizeWhitespace(*c.NormalizeWhitespace))
	}
	if c.Format != "" {
		f, err := ParseFormat(c.Format)
		if err != nil {
			return ConvertOptions{}, err
		}
		opts = append(opts, WithFormat(f))
	}
	return NewConvertOptions(opts...)
}

// ClientConfig holds the settings needed to reach the conversion service.
type ClientConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the service root; "/extract" is appended after trimming
	// trailing slashes.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// Options are the default conversion options.
	Options OptionsConfig `json:"options" yaml:"options" mapstructure:"options"`
}

// BatchConfig holds settings for converting a directory of PDFs.
type BatchConfig struct {
	// PapersDir is the base directory (contains raw/ and text/).
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir"`

	// Sidecar writes a <name>.yaml metadata file next to each text output.
	Sidecar bool `json:"sidecar" yaml:"sidecar" mapstructure:"sidecar"`

	// Incremental skips documents whose content and options already
	// converted successfully according to the history ledger.
	Incremental bool `json:"incremental" yaml:"incremental" mapstructure:"incremental"`
}

// HistoryConfig holds settings for the conversion ledger.
type HistoryConfig struct {
	// Dir holds history.db and the export files.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of records listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups all settings read by the CLI.
type Config struct {
	Client  ClientConfig  `json:"client" yaml:"client" mapstructure:"client"`
	Batch   BatchConfig   `json:"batch" yaml:"batch" mapstructure:"batch"`
	History HistoryConfig `json:"history" yaml:"history" mapstructure:"history"`
}
