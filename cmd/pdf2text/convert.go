// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2text/internal/convert"
	"github.com/pdiddy/pdf2text/internal/history"
)

var convertCmd = &cobra.Command{
	Use:   "convert [pdfs...]",
	Short: "Convert many PDF files to text",
	Long: `Convert sends each PDF to the conversion service and writes
<papers-dir>/text/<name>.txt. Without arguments every PDF in
<papers-dir>/raw is converted. Existing outputs are skipped; with
--incremental they are reconverted only when the PDF or the options changed
since the last successful run. Every attempt is recorded in the history
ledger.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
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

	paths := args
	if len(paths) == 0 {
		paths, err = convert.DiscoverPDFs(cfg.Batch.PapersDir)
		if err != nil {
			return err
		}
	}
	if len(paths) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No PDFs to convert.")
		return nil
	}

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	b := &convert.Batch{
		Converter:   convert.NewServiceConverter(c),
		Options:     opts,
		PapersDir:   cfg.Batch.PapersDir,
		Sidecar:     cfg.Batch.Sidecar,
		Ledger:      store,
		Incremental: cfg.Batch.Incremental,
		Out:         cmd.OutOrStdout(),
	}
	result := b.RunPaths(cmd.Context(), paths)
	if result.HasFailures() {
		return fmt.Errorf("%d document(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	addOptionFlags(convertCmd.Flags())
	convertCmd.Flags().String("papers-dir", "papers", "base directory containing raw/ and text/")
	convertCmd.Flags().Bool("sidecar", false, "write <name>.yaml metadata next to each text file")
	convertCmd.Flags().Bool("incremental", false, "reconvert existing outputs only when content or options changed")

	viper.BindPFlag("batch.papers_dir", convertCmd.Flags().Lookup("papers-dir"))
	viper.BindPFlag("batch.sidecar", convertCmd.Flags().Lookup("sidecar"))
	viper.BindPFlag("batch.incremental", convertCmd.Flags().Lookup("incremental"))

	rootCmd.AddCommand(convertCmd)
}
