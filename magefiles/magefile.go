//go:build mage

// Package main contains Mage build targets for pdf2text developer tooling.
package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// projectDirs maps the working directories the batch converter expects to
// their permissions. The secrets directory is private to the owner.
var projectDirs = map[string]os.FileMode{
	"papers/raw":  0o755,
	"papers/text": 0o755,
	".pdf2text":   0o755,
	".secrets":    0o700,
}

// Init creates the working directories in projectDirs.
func Init() error {
	for dir, perm := range projectDirs {
		if err := os.MkdirAll(dir, perm); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		if err := os.Chmod(dir, perm); err != nil {
			return fmt.Errorf("setting permissions on %s: %w", dir, err)
		}
		fmt.Printf("  %s (%v)\n", dir, perm)
	}
	return nil
}

const (
	binDir  = "bin"
	binName = "pdf2text"
	cmdPkg  = "./cmd/pdf2text"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	if err := sh.RunV("go", "build", "-ldflags", "-X main.version="+version, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests with the race detector.
func Test() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Vet runs go vet over all packages.
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Check runs Vet and Test.
func Check() {
	mg.SerialDeps(Vet, Test)
}

// Clean removes build output.
func Clean() error {
	return sh.Rm(binDir)
}

// Stats prints non-blank Go lines per top-level source tree, split into
// production and test code.
func Stats() error {
	fmt.Printf("%-10s %8s %8s\n", "tree", "prod", "test")
	var prodTotal, testTotal int
	for _, root := range []string{"cmd", "internal", "pkg"} {
		prod, test, err := countGoLines(root)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %8d %8d\n", root, prod, test)
		prodTotal += prod
		testTotal += test
	}
	fmt.Printf("%-10s %8d %8d\n", "total", prodTotal, testTotal)
	return nil
}

// countGoLines counts non-blank lines in the .go files under root.
func countGoLines(root string) (prod, test int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return err
		}
		n, err := nonBlankLines(path)
		if err != nil {
			return err
		}
		if strings.HasSuffix(path, "_test.go") {
			test += n
		} else {
			prod += n
		}
		return nil
	})
	return prod, test, err
}

func nonBlankLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			n++
		}
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
