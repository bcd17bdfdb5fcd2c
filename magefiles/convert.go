//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every PDF under papers/raw into
// papers/text, skipping documents unchanged since their last conversion.
func Convert() error {
	mg.Deps(Build, Init)
	return sh.RunV(filepath.Join(binDir, binName), "convert", "--incremental", "--sidecar")
}
