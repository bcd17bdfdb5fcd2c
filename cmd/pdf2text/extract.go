// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pdf2text/pkg/client"
)

var extractCmd = &cobra.Command{
	Use:   "extract <pdf>",
	Short: "Extract the text of one PDF",
	Long: `Extract sends one PDF to the conversion service and writes the text to
stdout, or to the file given with --output. With --json the response body is
decoded as a JSON object and pretty-printed.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	opts, err := optionsFromFlags(cmd, cfg.Client.Options)
	if err != nil {
		return err
	}
	c, err := newClient(cfg.Client, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	output, _ := cmd.Flags().GetString("output")
	asJSON, _ := cmd.Flags().GetBool("json")

	switch {
	case asJSON:
		doc, err := client.ReadDocument(args[0])
		if err != nil {
			return err
		}
		obj, err := c.ExtractJSON(ctx, doc, opts)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(obj)

	case output != "":
		n, err := c.ExtractFile(ctx, args[0], output, opts)
		if err != nil {
			return err
		}
		logger.Info().Str("output", output).Int64("bytes", n).Msg("extracted")
		return nil

	default:
		doc, err := client.ReadDocument(args[0])
		if err != nil {
			return err
		}
		body, err := c.Extract(ctx, doc, opts)
		if err != nil {
			return err
		}
		defer body.Close()
		if _, err := io.Copy(cmd.OutOrStdout(), body); err != nil {
			return fmt.Errorf("writing text to stdout: %w", err)
		}
		return nil
	}
}

func init() {
	addOptionFlags(extractCmd.Flags())
	extractCmd.Flags().StringP("output", "o", "", "write text to this file instead of stdout")
	extractCmd.Flags().Bool("json", false, "decode the response as a JSON object")

	rootCmd.AddCommand(extractCmd)
}
