// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2text/internal/httputil"
	"github.com/pdiddy/pdf2text/internal/secrets"
	"github.com/pdiddy/pdf2text/pkg/client"
	"github.com/pdiddy/pdf2text/pkg/types"
)

// loadConfig decodes the merged defaults, config file, and environment.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// addOptionFlags registers the conversion option flags on cmd.
func addOptionFlags(fs *pflag.FlagSet) {
	fs.Int("first-page", 1, "first page to extract (1-based)")
	fs.Int("last-page", 0, "last page to extract (default: end of document)")
	fs.String("password", "", "document decryption password")
	fs.Bool("normalize-whitespace", true, "collapse runs of whitespace")
	fs.String("format", types.FormatPlain.String(), "output format: PLAIN, LAYOUT, or RAW")
}

// optionsFromFlags overlays explicitly set flags on the configured options.
func optionsFromFlags(cmd *cobra.Command, base types.OptionsConfig) (types.ConvertOptions, error) {
	fs := cmd.Flags()
	if fs.Changed("first-page") {
		first, _ := fs.GetInt("first-page")
		base.FirstPage = &first
	}
	if fs.Changed("last-page") {
		last, _ := fs.GetInt("last-page")
		base.LastPage = &last
	}
	if fs.Changed("password") {
		pw, _ := fs.GetString("password")
		base.Password = &pw
	}
	if fs.Changed("normalize-whitespace") {
		on, _ := fs.GetBool("normalize-whitespace")
		base.NormalizeWhitespace = &on
	}
	if fs.Changed("format") {
		base.Format, _ = fs.GetString("format")
	}
	opts, err := base.ConvertOptions()
	if err != nil {
		return types.ConvertOptions{}, fmt.Errorf("conversion options: %w", err)
	}
	return opts, nil
}

// newClient wires the transport stack: net/http, bearer token from
// PDF2TEXT_SERVICE_TOKEN or .secrets/, and optional 429 retries, in that
// order from the inside out.
func newClient(cfg types.ClientConfig, log zerolog.Logger) (*client.Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("no conversion service configured: set client.base_url or --base-url")
	}

	var sender client.Sender = &http.Client{Timeout: cfg.Timeout}

	token, err := secrets.ServiceToken(secrets.DefaultDir, log)
	if err != nil {
		return nil, err
	}
	sender = httputil.WithBearerToken(sender, token)

	if cfg.MaxRetries > 0 {
		sender = httputil.NewRetrySender(sender, cfg.MaxRetries, log)
	}

	return client.New(cfg.BaseURL,
		client.WithSender(sender),
		client.WithLogger(log),
		client.WithUserAgent(cfg.UserAgent),
	), nil
}
