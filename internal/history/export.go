// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// ExportYAML writes the ledger to dir/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.List(ctx, exportLimit)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the ledger to dir/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.List(ctx, exportLimit)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}
