// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdf2text CLI.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured in PersistentPreRunE and writes to stderr.
var logger = zerolog.Nop()

// rootCmd is the base command for the pdf2text CLI.
var rootCmd = &cobra.Command{
	Use:   "pdf2text",
	Short: "Extract text from PDF documents through a conversion service",
	Long: `pdf2text sends PDF documents to a remote text-extraction service and
writes the extracted text to stdout or to files.

Use extract for a single document, convert for a directory of PDFs, and
history to inspect past batch conversions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = newLogger(verbose)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debug().Str("config", f).Msg("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdf2text.yaml or ~/.config/pdf2text/pdf2text.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "log requests and responses at debug level")
	rootCmd.PersistentFlags().String("base-url", "", "conversion service base URL")
	viper.BindPFlag("client.base_url", rootCmd.PersistentFlags().Lookup("base-url"))
}

func setDefaults() {
	viper.SetDefault("client.base_url", "http://localhost:8080")
	viper.SetDefault("client.timeout", 2*time.Minute)
	viper.SetDefault("client.user_agent", "pdf2text/"+version)
	viper.SetDefault("client.max_retries", 0)
	viper.SetDefault("client.options.format", "")
	viper.SetDefault("batch.papers_dir", "papers")
	viper.SetDefault("batch.sidecar", false)
	viper.SetDefault("batch.incremental", false)
	viper.SetDefault("history.dir", ".pdf2text")
	viper.SetDefault("history.max_results", 20)
}

func initConfig() {
	// A missing .env file is normal.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn().Err(err).Msg("reading .env")
	}

	setDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdf2text")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdf2text"))
		}
	}

	viper.SetEnvPrefix("PDF2TEXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.ReadInConfig()
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(level).
		With().Timestamp().Logger()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
