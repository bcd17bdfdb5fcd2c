// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdf2text/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the conversion history ledger",
	Long: `History reads the SQLite ledger written by convert. Use list to show
recent conversions or export to write the whole ledger as YAML or JSON.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(cmd.Context(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []history.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-24s  %-9s  %10s  %s\n", "When", "Document", "Status", "Bytes", "Error")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, e := range entries {
		doc := e.DocumentID
		if len(doc) > 24 {
			doc = doc[:21] + "..."
		}
		errText := e.ErrorKind
		if e.Error != "" {
			errText = strings.TrimSpace(errText + " " + e.Error)
		}
		if len(errText) > 40 {
			errText = errText[:37] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-24s  %-9s  %10d  %s\n",
			e.ConvertedAt.Format("2006-01-02 15:04:05"), doc, e.Status, e.Bytes, errText)
	}
	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context())
	case "json":
		path, err = store.ExportJSON(cmd.Context())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

func openHistory() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.NewStore(cfg.History)
}

func init() {
	historyCmd.PersistentFlags().String("history-dir", ".pdf2text", "directory holding history.db")
	viper.BindPFlag("history.dir", historyCmd.PersistentFlags().Lookup("history-dir"))

	historyListCmd.Flags().Int("limit", 0, "maximum entries to show (default from config)")
	historyListCmd.Flags().Bool("json", false, "output as JSON")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyListCmd, historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
